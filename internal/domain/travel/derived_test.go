package travel

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
)

func uv(visitID int32, visitedAt int64) UserVisit {
	return UserVisit{VisitID: visitID, View: VisitView{VisitedAt: visitedAt}}
}

func visitedAts(list []UserVisit) []int64 {
	out := make([]int64, len(list))
	for i := range list {
		out[i] = list[i].View.VisitedAt
	}
	return out
}

func TestNewUserVisit(t *testing.T) {
	v := Visit{ID: 100, Location: 10, User: 1, VisitedAt: 1000, Mark: 5}
	loc := Location{ID: 10, Place: "Fortress", Country: "Greece", City: "Athens", Distance: 12}

	got := NewUserVisit(v, loc)
	want := UserVisit{
		VisitID:    100,
		LocationID: 10,
		Distance:   12,
		Country:    "Greece",
		View:       VisitView{Mark: 5, VisitedAt: 1000, Place: "Fortress"},
	}
	if got != want {
		t.Errorf("NewUserVisit mismatch:\ngot  %swant %s", spew.Sdump(got), spew.Sdump(want))
	}
}

func TestNewLocationMark(t *testing.T) {
	v := Visit{ID: 100, Location: 10, User: 1, VisitedAt: 1000, Mark: 4}
	u := User{ID: 1, Gender: "m", BirthDate: -100}

	got := NewLocationMark(v, u)
	want := LocationMark{VisitID: 100, UserID: 1, Gender: Male, BirthDate: -100, VisitedAt: 1000, Mark: 4}
	if got != want {
		t.Errorf("NewLocationMark mismatch:\ngot  %swant %s", spew.Sdump(got), spew.Sdump(want))
	}
}

func TestInsertUserVisit_KeepsOrder(t *testing.T) {
	var list []UserVisit
	for _, in := range []UserVisit{uv(1, 300), uv(2, 100), uv(3, 200)} {
		list = InsertUserVisit(list, in)
	}

	want := []int64{100, 200, 300}
	got := visitedAts(list)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("visited_at order = %v, want %v", got, want)
		}
	}
}

func TestInsertUserVisit_EqualTimestampsKeepArrivalOrder(t *testing.T) {
	var list []UserVisit
	list = InsertUserVisit(list, uv(1, 100))
	list = InsertUserVisit(list, uv(2, 100))
	list = InsertUserVisit(list, uv(3, 50))

	wantIDs := []int32{3, 1, 2}
	for i, want := range wantIDs {
		if list[i].VisitID != want {
			t.Fatalf("tie order: visit IDs = %v, want %v", []int32{list[0].VisitID, list[1].VisitID, list[2].VisitID}, wantIDs)
		}
	}
}

func TestSortUserVisits_Stable(t *testing.T) {
	list := []UserVisit{uv(1, 200), uv(2, 100), uv(3, 100)}
	SortUserVisits(list)

	wantIDs := []int32{2, 3, 1}
	for i, want := range wantIDs {
		if list[i].VisitID != want {
			t.Fatalf("sorted IDs = %v, want %v", []int32{list[0].VisitID, list[1].VisitID, list[2].VisitID}, wantIDs)
		}
	}
}

func TestRemoveUserVisit(t *testing.T) {
	list := []UserVisit{uv(1, 100), uv(2, 200), uv(3, 300)}

	list = RemoveUserVisit(list, 2)
	if len(list) != 2 || list[0].VisitID != 1 || list[1].VisitID != 3 {
		t.Fatalf("after remove: %s", spew.Sdump(list))
	}

	// absent ID is a no-op
	list = RemoveUserVisit(list, 99)
	if len(list) != 2 {
		t.Errorf("remove of absent ID changed length to %d", len(list))
	}
}

func TestRemoveLocationMark(t *testing.T) {
	list := []LocationMark{{VisitID: 1}, {VisitID: 2}}

	list = RemoveLocationMark(list, 1)
	if len(list) != 1 || list[0].VisitID != 2 {
		t.Fatalf("after remove: %s", spew.Sdump(list))
	}

	list = RemoveLocationMark(list, 42)
	if len(list) != 1 {
		t.Errorf("remove of absent ID changed length to %d", len(list))
	}
}
