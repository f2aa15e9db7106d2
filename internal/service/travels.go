package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/hlcup17/travels/internal/domain/travel"
	"github.com/hlcup17/travels/internal/store"
	"go.uber.org/zap"
)

var (
	// ErrDuplicateID rejects creation under an ID that already exists.
	ErrDuplicateID = errors.New("id already exists")
	// ErrMissingRef rejects visit writes referencing an absent user or location.
	ErrMissingRef = errors.New("referenced entity not found")
)

// -----------------------------------------------------------------------------
// TravelService
// -----------------------------------------------------------------------------
//
// Runtime model
//   • Single process, many concurrent requests, everything in memory.
//   • Reads hit one table; writes hit a primary table and fan out into the
//     derived indexes so the two query endpoints stay a single bounded scan:
//       UserVisits[uid]      mirrors (visit × its location), sorted by visited_at
//       LocationMarks[lid]   mirrors (visit × its visitor), unordered
//
// Fan-out per write
//   • user create      → empty UserVisits list, then the user row
//   • location create  → empty LocationMarks list, then the location row
//   • visit create     → one row into each index, then the visit row
//   • user update      → rewrite gender/birth_date on the user's rows in
//                        LocationMarks of every location the user visited
//   • location update  → rewrite distance/country/place on the location's rows
//                        in UserVisits of every user who visited it
//   • visit update     → refresh both index rows in place, or move them
//                        between lists when the user/location reference changed
//
// Consistency
//   • Each table locks per call (see store); a concurrent reader may observe
//     the store between two fan-out steps of one write. Per-table atomicity is
//     the contract; clients needing read-your-write ordering serialize
//     themselves.
//   • Index lists are copy-on-write: mutate the Load copy, publish via Save.

// TravelService owns the write fan-out and the query scans over the dual-index
// store.
type TravelService struct {
	log   *zap.Logger
	store *store.Store

	// now feeds the age filter cutoffs; injectable for tests.
	now func() time.Time
}

// NewTravelService constructs a TravelService over st.
func NewTravelService(log *zap.Logger, st *store.Store) *TravelService {
	return &TravelService{
		log:   log.Named("travels"),
		store: st,
		now:   time.Now,
	}
}

// GetUser returns the user by ID.
func (s *TravelService) GetUser(id int32) (travel.User, error) {
	u, ok := s.store.Users.Load(id)
	if !ok {
		return travel.User{}, fmt.Errorf("user %d: %w", id, store.ErrNotFound)
	}
	return u, nil
}

// GetLocation returns the location by ID.
func (s *TravelService) GetLocation(id int32) (travel.Location, error) {
	loc, ok := s.store.Locations.Load(id)
	if !ok {
		return travel.Location{}, fmt.Errorf("location %d: %w", id, store.ErrNotFound)
	}
	return loc, nil
}

// GetVisit returns the visit by ID.
func (s *TravelService) GetVisit(id int32) (travel.Visit, error) {
	v, ok := s.store.Visits.Load(id)
	if !ok {
		return travel.Visit{}, fmt.Errorf("visit %d: %w", id, store.ErrNotFound)
	}
	return v, nil
}

// CreateUser inserts a new user along with its empty visit index, so a
// subsequent visits query on the fresh user distinguishes "no visits yet"
// from "no such user".
func (s *TravelService) CreateUser(u travel.User) error {
	if s.store.Users.Exists(u.ID) {
		return fmt.Errorf("user %d: %w", u.ID, ErrDuplicateID)
	}
	s.store.UserVisits.Save(u.ID, []travel.UserVisit{})
	s.store.Users.Save(u.ID, u)
	return nil
}

// CreateLocation inserts a new location along with its empty mark index.
func (s *TravelService) CreateLocation(loc travel.Location) error {
	if s.store.Locations.Exists(loc.ID) {
		return fmt.Errorf("location %d: %w", loc.ID, ErrDuplicateID)
	}
	s.store.LocationMarks.Save(loc.ID, []travel.LocationMark{})
	s.store.Locations.Save(loc.ID, loc)
	return nil
}

// CreateVisit inserts a new visit and fans it out into both indexes. The
// referenced user and location must exist; nothing checks that the user's and
// location's index lists exist separately since creation always installs them.
func (s *TravelService) CreateVisit(v travel.Visit) error {
	if s.store.Visits.Exists(v.ID) {
		return fmt.Errorf("visit %d: %w", v.ID, ErrDuplicateID)
	}
	u, ok := s.store.Users.Load(v.User)
	if !ok {
		return fmt.Errorf("user %d: %w", v.User, ErrMissingRef)
	}
	loc, ok := s.store.Locations.Load(v.Location)
	if !ok {
		return fmt.Errorf("location %d: %w", v.Location, ErrMissingRef)
	}

	visits, _ := s.store.UserVisits.Load(v.User)
	visits = travel.InsertUserVisit(visits, travel.NewUserVisit(v, loc))
	s.store.UserVisits.Save(v.User, visits)

	marks, _ := s.store.LocationMarks.Load(v.Location)
	marks = append(marks, travel.NewLocationMark(v, u))
	s.store.LocationMarks.Save(v.Location, marks)

	s.store.Visits.Save(v.ID, v)
	return nil
}

// UpdateUser overlays the present patch fields onto the user and rewrites the
// visitor fields on every mark row the user owns.
func (s *TravelService) UpdateUser(id int32, p travel.UserPatch) error {
	u, ok := s.store.Users.Load(id)
	if !ok {
		return fmt.Errorf("user %d: %w", id, store.ErrNotFound)
	}
	p.Apply(&u)

	// Every location the user visited holds mark rows carrying the visitor's
	// gender and birth date.
	if visits, ok := s.store.UserVisits.Load(id); ok {
		gender := travel.GenderOf(u.Gender)
		for lid := range distinctLocations(visits) {
			marks, ok := s.store.LocationMarks.Load(lid)
			if !ok {
				continue
			}
			changed := false
			for i := range marks {
				if marks[i].UserID == id {
					marks[i].Gender = gender
					marks[i].BirthDate = u.BirthDate
					changed = true
				}
			}
			if changed {
				s.store.LocationMarks.Save(lid, marks)
			}
		}
	}

	s.store.Users.Save(id, u)
	return nil
}

// UpdateLocation overlays the present patch fields onto the location and
// rewrites the location fields on every visit row pointing at it.
func (s *TravelService) UpdateLocation(id int32, p travel.LocationPatch) error {
	loc, ok := s.store.Locations.Load(id)
	if !ok {
		return fmt.Errorf("location %d: %w", id, store.ErrNotFound)
	}
	p.Apply(&loc)

	// Every user who visited the location holds visit rows carrying the
	// location's distance, country and place.
	if marks, ok := s.store.LocationMarks.Load(id); ok {
		for uid := range distinctUsers(marks) {
			visits, ok := s.store.UserVisits.Load(uid)
			if !ok {
				continue
			}
			changed := false
			for i := range visits {
				if visits[i].LocationID == id {
					visits[i].Distance = loc.Distance
					visits[i].Country = loc.Country
					visits[i].View.Place = loc.Place
					changed = true
				}
			}
			if changed {
				s.store.UserVisits.Save(uid, visits)
			}
		}
	}

	s.store.Locations.Save(id, loc)
	return nil
}

// UpdateVisit overlays the patch onto the visit and reconciles both indexes.
// Reference checks precede the existence check: a patch naming an absent user
// or location is rejected even when the visit itself is unknown.
func (s *TravelService) UpdateVisit(id int32, p travel.VisitPatch) error {
	if uid, ok := p.User.Value(); ok && !s.store.Users.Exists(uid) {
		return fmt.Errorf("user %d: %w", uid, ErrMissingRef)
	}
	if lid, ok := p.Location.Value(); ok && !s.store.Locations.Exists(lid) {
		return fmt.Errorf("location %d: %w", lid, ErrMissingRef)
	}

	v0, ok := s.store.Visits.Load(id)
	if !ok {
		return fmt.Errorf("visit %d: %w", id, store.ErrNotFound)
	}
	v1 := v0
	p.Apply(&v1)

	s.reindexUserVisit(v0, v1)
	s.reindexLocationMark(v0, v1)

	s.store.Visits.Save(id, v1)
	return nil
}

// reindexUserVisit reconciles the UserVisits side after a visit update. When
// the owner changed the row moves between lists; otherwise it is refreshed in
// place, resorting only when visited_at moved.
func (s *TravelService) reindexUserVisit(v0, v1 travel.Visit) {
	if v1.User != v0.User {
		if old, ok := s.store.UserVisits.Load(v0.User); ok {
			old = travel.RemoveUserVisit(old, v0.ID)
			travel.SortUserVisits(old)
			s.store.UserVisits.Save(v0.User, old)
		}
		// The new owner's row is rebuilt from scratch against the current
		// location, which covers a simultaneous location change.
		loc, _ := s.store.Locations.Load(v1.Location)
		next, _ := s.store.UserVisits.Load(v1.User)
		next = append(next, travel.NewUserVisit(v1, loc))
		travel.SortUserVisits(next)
		s.store.UserVisits.Save(v1.User, next)
		return
	}

	visits, ok := s.store.UserVisits.Load(v1.User)
	if !ok {
		return
	}
	locationChanged := v1.Location != v0.Location
	var loc travel.Location
	if locationChanged {
		loc, _ = s.store.Locations.Load(v1.Location)
	}
	changed := false
	for i := range visits {
		if visits[i].VisitID != v1.ID {
			continue
		}
		visits[i].View.VisitedAt = v1.VisitedAt
		visits[i].View.Mark = v1.Mark
		if locationChanged {
			visits[i].LocationID = loc.ID
			visits[i].Distance = loc.Distance
			visits[i].Country = loc.Country
			visits[i].View.Place = loc.Place
		}
		changed = true
	}
	if !changed {
		return
	}
	if v1.VisitedAt != v0.VisitedAt {
		travel.SortUserVisits(visits)
	}
	s.store.UserVisits.Save(v1.User, visits)
}

// reindexLocationMark reconciles the LocationMarks side after a visit update.
// The list is unordered, so a move is remove-and-append and an in-place
// refresh never resorts.
func (s *TravelService) reindexLocationMark(v0, v1 travel.Visit) {
	if v1.Location != v0.Location {
		if old, ok := s.store.LocationMarks.Load(v0.Location); ok {
			old = travel.RemoveLocationMark(old, v0.ID)
			s.store.LocationMarks.Save(v0.Location, old)
		}
		// Rebuilt against the current visitor, covering a simultaneous user
		// change.
		u, _ := s.store.Users.Load(v1.User)
		next, _ := s.store.LocationMarks.Load(v1.Location)
		next = append(next, travel.NewLocationMark(v1, u))
		s.store.LocationMarks.Save(v1.Location, next)
		return
	}

	marks, ok := s.store.LocationMarks.Load(v1.Location)
	if !ok {
		return
	}
	userChanged := v1.User != v0.User
	var u travel.User
	if userChanged {
		u, _ = s.store.Users.Load(v1.User)
	}
	changed := false
	for i := range marks {
		if marks[i].VisitID != v1.ID {
			continue
		}
		marks[i].VisitedAt = v1.VisitedAt
		marks[i].Mark = v1.Mark
		if userChanged {
			marks[i].UserID = u.ID
			marks[i].Gender = travel.GenderOf(u.Gender)
			marks[i].BirthDate = u.BirthDate
		}
		changed = true
	}
	if changed {
		s.store.LocationMarks.Save(v1.Location, marks)
	}
}

func distinctLocations(visits []travel.UserVisit) map[int32]struct{} {
	out := make(map[int32]struct{}, len(visits))
	for i := range visits {
		out[visits[i].LocationID] = struct{}{}
	}
	return out
}

func distinctUsers(marks []travel.LocationMark) map[int32]struct{} {
	out := make(map[int32]struct{}, len(marks))
	for i := range marks {
		out[marks[i].UserID] = struct{}{}
	}
	return out
}
