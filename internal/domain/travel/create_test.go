package travel

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestUserCreate_ToUser(t *testing.T) {
	var req UserCreate
	body := `{"id":1,"email":"t@example.com","first_name":"Ada","last_name":"L","gender":"f","birth_date":-100}`
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	u, err := req.ToUser()
	if err != nil {
		t.Fatalf("ToUser: %v", err)
	}
	want := User{ID: 1, Email: "t@example.com", FirstName: "Ada", LastName: "L", Gender: "f", BirthDate: -100}
	if u != want {
		t.Errorf("ToUser = %+v, want %+v", u, want)
	}
}

func TestUserCreate_MissingField(t *testing.T) {
	var req UserCreate
	if err := json.Unmarshal([]byte(`{"id":1,"email":"t@example.com"}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, err := req.ToUser(); !errors.Is(err, ErrMissingField) {
		t.Errorf("ToUser without first_name: err = %v, want ErrMissingField", err)
	}
}

func TestUserCreate_NullField(t *testing.T) {
	var req UserCreate
	body := `{"id":1,"email":null,"first_name":"Ada","last_name":"L","gender":"f","birth_date":0}`
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, err := req.ToUser(); !errors.Is(err, ErrMissingField) {
		t.Errorf("ToUser with null email: err = %v, want ErrMissingField", err)
	}
}

func TestLocationCreate_ToLocation(t *testing.T) {
	var req LocationCreate
	body := `{"id":10,"place":"Beach","country":"Greece","city":"Athens","distance":3}`
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	loc, err := req.ToLocation()
	if err != nil {
		t.Fatalf("ToLocation: %v", err)
	}
	want := Location{ID: 10, Place: "Beach", Country: "Greece", City: "Athens", Distance: 3}
	if loc != want {
		t.Errorf("ToLocation = %+v, want %+v", loc, want)
	}

	var short LocationCreate
	if err := json.Unmarshal([]byte(`{"id":10}`), &short); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, err := short.ToLocation(); !errors.Is(err, ErrMissingField) {
		t.Errorf("ToLocation without fields: err = %v, want ErrMissingField", err)
	}
}

func TestVisitCreate_ToVisit(t *testing.T) {
	var req VisitCreate
	body := `{"id":100,"location":10,"user":1,"visited_at":1000,"mark":5}`
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	v, err := req.ToVisit()
	if err != nil {
		t.Fatalf("ToVisit: %v", err)
	}
	want := Visit{ID: 100, Location: 10, User: 1, VisitedAt: 1000, Mark: 5}
	if v != want {
		t.Errorf("ToVisit = %+v, want %+v", v, want)
	}

	var nulled VisitCreate
	if err := json.Unmarshal([]byte(`{"id":100,"location":10,"user":1,"visited_at":null,"mark":5}`), &nulled); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, err := nulled.ToVisit(); !errors.Is(err, ErrMissingField) {
		t.Errorf("ToVisit with null visited_at: err = %v, want ErrMissingField", err)
	}
}
