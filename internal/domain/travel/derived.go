package travel

import "sort"

// VisitView is the wire shape of one element of the visits projection.
type VisitView struct {
	Mark      int8   `json:"mark"`       //
	VisitedAt int64  `json:"visited_at"` //
	Place     string `json:"place"`      // denormalized from the visited Location
}

// UserVisit is one row of the per-user visit index: the fields the visit
// filters match on plus the pre-built response view, so the read path never
// touches the locations table.
type UserVisit struct {
	VisitID    int32     // Visit.ID, the key update fan-out locates rows by
	LocationID int32     // Location.ID backing the denormalized fields
	Distance   int32     // mirrors Location.Distance
	Country    string    // mirrors Location.Country
	View       VisitView // mirrors Visit.Mark/VisitedAt and Location.Place
}

// NewUserVisit builds the index row for v enriched with its location.
func NewUserVisit(v Visit, loc Location) UserVisit {
	return UserVisit{
		VisitID:    v.ID,
		LocationID: loc.ID,
		Distance:   loc.Distance,
		Country:    loc.Country,
		View: VisitView{
			Mark:      v.Mark,
			VisitedAt: v.VisitedAt,
			Place:     loc.Place,
		},
	}
}

// LocationMark is one row of the per-location mark index: the mark plus the
// visitor fields the average filters match on.
type LocationMark struct {
	VisitID   int32  // Visit.ID, the key update fan-out locates rows by
	UserID    int32  // User.ID backing the denormalized fields
	Gender    Gender // mirrors User.Gender
	BirthDate int64  // mirrors User.BirthDate
	VisitedAt int64  // mirrors Visit.VisitedAt
	Mark      int8   // mirrors Visit.Mark
}

// NewLocationMark builds the index row for v enriched with its visitor.
func NewLocationMark(v Visit, u User) LocationMark {
	return LocationMark{
		VisitID:   v.ID,
		UserID:    u.ID,
		Gender:    GenderOf(u.Gender),
		BirthDate: u.BirthDate,
		VisitedAt: v.VisitedAt,
		Mark:      v.Mark,
	}
}

// InsertUserVisit inserts uv keeping the list sorted nondecreasing by
// visited_at. The row lands at the first position whose visited_at strictly
// exceeds the new one, so rows with equal timestamps keep arrival order.
func InsertUserVisit(list []UserVisit, uv UserVisit) []UserVisit {
	at := len(list)
	for i := range list {
		if list[i].View.VisitedAt > uv.View.VisitedAt {
			at = i
			break
		}
	}
	list = append(list, UserVisit{})
	copy(list[at+1:], list[at:])
	list[at] = uv
	return list
}

// SortUserVisits restores the visited_at ordering after in-place edits.
// The sort is stable so rows with equal timestamps keep their order.
func SortUserVisits(list []UserVisit) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].View.VisitedAt < list[j].View.VisitedAt
	})
}

// RemoveUserVisit deletes the row carrying visitID, preserving order.
// The list is returned unchanged when no row matches.
func RemoveUserVisit(list []UserVisit, visitID int32) []UserVisit {
	for i := range list {
		if list[i].VisitID == visitID {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// RemoveLocationMark deletes the row carrying visitID.
// The list is returned unchanged when no row matches.
func RemoveLocationMark(list []LocationMark, visitID int32) []LocationMark {
	for i := range list {
		if list[i].VisitID == visitID {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
