package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hlcup17/travels/internal/domain/travel"
	"github.com/hlcup17/travels/internal/service"
	"github.com/hlcup17/travels/internal/store"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter() (*gin.Engine, *service.TravelService) {
	svc := service.NewTravelService(zap.NewNop(), store.New())
	return NewRouter(zap.NewNop(), svc, 0), svc
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seed(t *testing.T, svc *service.TravelService) {
	t.Helper()
	if err := svc.CreateUser(travel.User{
		ID: 1, Email: "ann@example.com", FirstName: "Ann", LastName: "Lee",
		Gender: "f", BirthDate: -100,
	}); err != nil {
		t.Fatal(err)
	}
	if err := svc.CreateLocation(travel.Location{
		ID: 10, Place: "Beach", Country: "Greece", City: "Athens", Distance: 5,
	}); err != nil {
		t.Fatal(err)
	}
	if err := svc.CreateVisit(travel.Visit{
		ID: 100, Location: 10, User: 1, VisitedAt: 1000, Mark: 4,
	}); err != nil {
		t.Fatal(err)
	}
}

func TestRouter_GetEntities(t *testing.T) {
	r, svc := newTestRouter()
	seed(t, svc)

	tests := []struct {
		path string
		want string
	}{
		{"/users/1", `{"id":1,"email":"ann@example.com","first_name":"Ann","last_name":"Lee","gender":"f","birth_date":-100}`},
		{"/locations/10", `{"id":10,"place":"Beach","country":"Greece","city":"Athens","distance":5}`},
		{"/visits/100", `{"id":100,"location":10,"user":1,"visited_at":1000,"mark":4}`},
		{"/users/1/visits", `{"visits":[{"mark":4,"visited_at":1000,"place":"Beach"}]}`},
		{"/locations/10/avg", `{"avg":4.0}`},
	}
	for _, tt := range tests {
		w := do(r, http.MethodGet, tt.path, "")
		if w.Code != http.StatusOK {
			t.Errorf("GET %s: status = %d, want 200", tt.path, w.Code)
			continue
		}
		if got := w.Body.String(); got != tt.want {
			t.Errorf("GET %s:\ngot  %s\nwant %s", tt.path, got, tt.want)
		}
	}
}

func TestRouter_CreateFlow(t *testing.T) {
	r, _ := newTestRouter()

	posts := []struct {
		path, body string
	}{
		{"/users/new", `{"id":1,"email":"ann@example.com","first_name":"Ann","last_name":"Lee","gender":"f","birth_date":-100}`},
		{"/locations/new", `{"id":10,"place":"Beach","country":"Greece","city":"Athens","distance":5}`},
		{"/visits/new", `{"id":100,"location":10,"user":1,"visited_at":1000,"mark":4}`},
	}
	for _, p := range posts {
		w := do(r, http.MethodPost, p.path, p.body)
		if w.Code != http.StatusOK {
			t.Fatalf("POST %s: status = %d, body %q", p.path, w.Code, w.Body.String())
		}
		if w.Body.String() != "{}" {
			t.Errorf("POST %s: body = %q, want {}", p.path, w.Body.String())
		}
	}

	// the created graph serves immediately
	if w := do(r, http.MethodGet, "/locations/10/avg", ""); w.Body.String() != `{"avg":4.0}` {
		t.Errorf("avg after create = %s", w.Body.String())
	}
}

func TestRouter_UpdateFlow(t *testing.T) {
	r, svc := newTestRouter()
	seed(t, svc)

	// mark change shows in the average
	if w := do(r, http.MethodPost, "/visits/100", `{"mark":1}`); w.Code != http.StatusOK {
		t.Fatalf("patch visit: status = %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/locations/10/avg", ""); w.Body.String() != `{"avg":1.0}` {
		t.Errorf("avg after patch = %s", w.Body.String())
	}

	// place change shows in the visits projection
	if w := do(r, http.MethodPost, "/locations/10", `{"place":"Cove"}`); w.Code != http.StatusOK {
		t.Fatalf("patch location: status = %d", w.Code)
	}
	want := `{"visits":[{"mark":1,"visited_at":1000,"place":"Cove"}]}`
	if w := do(r, http.MethodGet, "/users/1/visits", ""); w.Body.String() != want {
		t.Errorf("visits after patch = %s, want %s", w.Body.String(), want)
	}

	// gender change shows through the gender filter
	if w := do(r, http.MethodPost, "/users/1", `{"gender":"m"}`); w.Code != http.StatusOK {
		t.Fatalf("patch user: status = %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/locations/10/avg?gender=m", ""); w.Body.String() != `{"avg":1.0}` {
		t.Errorf("avg gender=m after patch = %s", w.Body.String())
	}
	if w := do(r, http.MethodGet, "/locations/10/avg?gender=f", ""); w.Body.String() != `{"avg":0}` {
		t.Errorf("avg gender=f after patch = %s", w.Body.String())
	}
}

func TestRouter_Headers(t *testing.T) {
	r, svc := newTestRouter()
	seed(t, svc)

	w := do(r, http.MethodGet, "/users/1", "")
	if got := w.Header().Get("Server"); got != "Travels" {
		t.Errorf("Server = %q, want Travels", got)
	}
	if got := w.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", got)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID missing")
	}

	// error responses carry the same identity headers
	w = do(r, http.MethodGet, "/users/99", "")
	if got := w.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type on miss = %q, want application/json", got)
	}
}

func TestRouter_RequestIDEcho(t *testing.T) {
	r, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/users/1", nil)
	req.Header.Set("X-Request-ID", "corr-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); got != "corr-42" {
		t.Errorf("X-Request-ID = %q, want corr-42", got)
	}

	// an oversized inbound ID is replaced
	req = httptest.NewRequest(http.MethodGet, "/users/1", nil)
	req.Header.Set("X-Request-ID", strings.Repeat("x", 65))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); got == "" || len(got) > 64 {
		t.Errorf("oversized inbound ID not replaced, got %q", got)
	}
}

func TestRouter_Misses(t *testing.T) {
	r, svc := newTestRouter()
	seed(t, svc)

	tests := []struct {
		name         string
		method, path string
		body         string
		want         int
	}{
		{"unknown id", http.MethodGet, "/users/2", "", 404},
		{"non-numeric id", http.MethodGet, "/users/abc", "", 404},
		{"negative id", http.MethodGet, "/users/-1", "", 404},
		{"trailing slash", http.MethodGet, "/users/1/", "", 404},
		{"unknown path", http.MethodGet, "/countries", "", 404},
		{"root", http.MethodGet, "/", "", 404},
		{"unsupported method", http.MethodPut, "/users/1", `{"email":"x"}`, 404},
		{"delete", http.MethodDelete, "/users/1", "", 404},
		{"get on new", http.MethodGet, "/users/new", "", 404},
		{"visits of unknown user", http.MethodGet, "/users/2/visits", "", 404},
		{"avg of unknown location", http.MethodGet, "/locations/2/avg", "", 404},
		{"overflowing id", http.MethodGet, "/users/99999999999", "", 404},
		{"post to unknown id", http.MethodPost, "/users/2", `{"email":"x"}`, 404},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, tt.method, tt.path, tt.body)
			if w.Code != tt.want {
				t.Errorf("%s %s: status = %d, want %d", tt.method, tt.path, w.Code, tt.want)
			}
			if w.Body.Len() != 0 {
				t.Errorf("%s %s: body = %q, want empty", tt.method, tt.path, w.Body.String())
			}
		})
	}
}

func TestRouter_CreateValidation(t *testing.T) {
	r, svc := newTestRouter()
	seed(t, svc)

	tests := []struct {
		name string
		path string
		body string
		want int
	}{
		{"missing field", "/users/new", `{"id":2,"email":"e","first_name":"F","last_name":"L","gender":"m"}`, 400},
		{"explicit null", "/users/new", `{"id":2,"email":null,"first_name":"F","last_name":"L","gender":"m","birth_date":0}`, 400},
		{"empty body", "/users/new", ``, 400},
		{"whitespace body", "/users/new", "  \n\t", 400},
		{"null body", "/users/new", `null`, 400},
		{"malformed json", "/users/new", `{"id":2,`, 400},
		{"trailing json", "/users/new", `{"id":2,"email":"e","first_name":"F","last_name":"L","gender":"m","birth_date":0}{}`, 400},
		{"wrong type", "/users/new", `{"id":"two","email":"e","first_name":"F","last_name":"L","gender":"m","birth_date":0}`, 400},
		{"duplicate id", "/users/new", `{"id":1,"email":"e","first_name":"F","last_name":"L","gender":"m","birth_date":0}`, 400},
		{"unknown keys tolerated", "/users/new", `{"id":2,"email":"e","first_name":"F","last_name":"L","gender":"m","birth_date":0,"bogus":true}`, 200},
		{"visit unknown user", "/visits/new", `{"id":101,"location":10,"user":9,"visited_at":0,"mark":0}`, 400},
		{"visit unknown location", "/visits/new", `{"id":101,"location":9,"user":1,"visited_at":0,"mark":0}`, 400},
		{"location missing field", "/locations/new", `{"id":11,"place":"P","country":"C","city":"T"}`, 400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodPost, tt.path, tt.body)
			if w.Code != tt.want {
				t.Errorf("POST %s %s: status = %d, want %d", tt.path, tt.body, w.Code, tt.want)
			}
		})
	}
}

func TestRouter_UpdateValidation(t *testing.T) {
	r, svc := newTestRouter()
	seed(t, svc)

	tests := []struct {
		name string
		path string
		body string
		want int
	}{
		{"explicit null field", "/users/1", `{"email":null}`, 400},
		{"empty body", "/users/1", ``, 400},
		{"null body", "/users/1", `null`, 400},
		{"null body on visit", "/visits/100", `null`, 400},
		{"malformed json", "/users/1", `{"email"`, 400},
		{"wrong type", "/visits/100", `{"mark":"five"}`, 400},
		{"null on visit", "/visits/100", `{"visited_at":null}`, 400},
		{"empty patch ok", "/users/1", `{}`, 200},
		{"id key ignored", "/users/1", `{"id":999,"email":"new@example.com"}`, 200},
		{"unknown keys tolerated", "/locations/10", `{"bogus":1}`, 200},
		// body errors outrank existence, unknown keys alone do not
		{"bad body on unknown id", "/users/7", `{"email":null}`, 400},
		{"clean body on unknown id", "/users/7", `{"email":"x"}`, 404},
		{"visit patch unknown ref", "/visits/100", `{"user":9}`, 400},
		{"visit ref check on unknown visit", "/visits/999", `{"user":9}`, 400},
		{"valid ref on unknown visit", "/visits/999", `{"user":1}`, 404},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodPost, tt.path, tt.body)
			if w.Code != tt.want {
				t.Errorf("POST %s %s: status = %d, want %d", tt.path, tt.body, w.Code, tt.want)
			}
		})
	}

	// the id key in the body never renames the entity
	if w := do(r, http.MethodGet, "/users/999", ""); w.Code != http.StatusNotFound {
		t.Errorf("GET /users/999: status = %d, want 404", w.Code)
	}
	want := `{"id":1,"email":"new@example.com","first_name":"Ann","last_name":"Lee","gender":"f","birth_date":-100}`
	if w := do(r, http.MethodGet, "/users/1", ""); w.Body.String() != want {
		t.Errorf("GET /users/1 = %s, want %s", w.Body.String(), want)
	}
}

func TestRouter_QueryFilters(t *testing.T) {
	r, svc := newTestRouter()
	seed(t, svc)
	if err := svc.CreateLocation(travel.Location{ID: 20, Place: "Fjord", Country: "New Zealand", City: "Q", Distance: 50}); err != nil {
		t.Fatal(err)
	}
	if err := svc.CreateVisit(travel.Visit{ID: 101, Location: 20, User: 1, VisitedAt: 2000, Mark: 2}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want int
		body string
	}{
		{"bad fromDate", "/users/1/visits?fromDate=abc", 400, ""},
		{"valueless fromDate", "/users/1/visits?fromDate", 400, ""},
		{"unrecognized key", "/users/1/visits?foo=bar", 200, `{"visits":[{"mark":4,"visited_at":1000,"place":"Beach"},{"mark":2,"visited_at":2000,"place":"Fjord"}]}`},
		{"mark filter foreign to visits", "/users/1/visits?gender=m", 200, `{"visits":[{"mark":4,"visited_at":1000,"place":"Beach"},{"mark":2,"visited_at":2000,"place":"Fjord"}]}`},
		{"date window", "/users/1/visits?fromDate=1000&toDate=3000", 200, `{"visits":[{"mark":2,"visited_at":2000,"place":"Fjord"}]}`},
		{"country decoded", "/users/1/visits?country=New%20Zealand", 200, `{"visits":[{"mark":2,"visited_at":2000,"place":"Fjord"}]}`},
		{"plus literal", "/users/1/visits?country=New+Zealand", 200, `{"visits":[]}`},
		{"bad gender", "/locations/10/avg?gender=x", 400, ""},
		{"bad age", "/locations/10/avg?fromAge=abc", 400, ""},
		{"avg date filter", "/locations/10/avg?toDate=1000", 200, `{"avg":0}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodGet, tt.path, "")
			if w.Code != tt.want {
				t.Fatalf("GET %s: status = %d, want %d", tt.path, w.Code, tt.want)
			}
			if tt.body != "" && w.Body.String() != tt.body {
				t.Errorf("GET %s:\ngot  %s\nwant %s", tt.path, w.Body.String(), tt.body)
			}
			if tt.want == 400 && w.Body.Len() != 0 {
				t.Errorf("GET %s: error body = %q, want empty", tt.path, w.Body.String())
			}
		})
	}
}

func TestRouter_OverflowIDBodyCheckedFirst(t *testing.T) {
	r, svc := newTestRouter()
	seed(t, svc)

	// digits beyond int32 pass the shape gate; the body still parses first
	if w := do(r, http.MethodPost, "/users/99999999999", `{"email":null}`); w.Code != 400 {
		t.Errorf("bad body on overflowing id: status = %d, want 400", w.Code)
	}
	if w := do(r, http.MethodPost, "/users/99999999999", `{"email":"x"}`); w.Code != 404 {
		t.Errorf("clean body on overflowing id: status = %d, want 404", w.Code)
	}
}
