package travel

import (
	"errors"
	"fmt"

	"github.com/hlcup17/travels/pkg/jsonx"
)

// ErrMissingField rejects create bodies with an absent or explicitly null
// required key.
var ErrMissingField = errors.New("missing required field")

func required[T any](f jsonx.Field[T], key string) (T, error) {
	v, ok := f.Value()
	if !ok {
		var zero T
		return zero, fmt.Errorf("%s: %w", key, ErrMissingField)
	}
	return v, nil
}

// UserCreate is the request schema for POST /users/new.
// Every field is required; explicit null is rejected like an absent key.
type UserCreate struct {
	ID        jsonx.Field[int32]  `json:"id"`         //
	Email     jsonx.Field[string] `json:"email"`      //
	FirstName jsonx.Field[string] `json:"first_name"` //
	LastName  jsonx.Field[string] `json:"last_name"`  //
	Gender    jsonx.Field[string] `json:"gender"`     //
	BirthDate jsonx.Field[int64]  `json:"birth_date"` //
}

// ToUser maps UserCreate → User, validating that every key is present.
func (req *UserCreate) ToUser() (User, error) {
	var u User
	var err error
	if u.ID, err = required(req.ID, "id"); err != nil {
		return User{}, err
	}
	if u.Email, err = required(req.Email, "email"); err != nil {
		return User{}, err
	}
	if u.FirstName, err = required(req.FirstName, "first_name"); err != nil {
		return User{}, err
	}
	if u.LastName, err = required(req.LastName, "last_name"); err != nil {
		return User{}, err
	}
	if u.Gender, err = required(req.Gender, "gender"); err != nil {
		return User{}, err
	}
	if u.BirthDate, err = required(req.BirthDate, "birth_date"); err != nil {
		return User{}, err
	}
	return u, nil
}

// LocationCreate is the request schema for POST /locations/new.
// Every field is required; explicit null is rejected like an absent key.
type LocationCreate struct {
	ID       jsonx.Field[int32]  `json:"id"`       //
	Place    jsonx.Field[string] `json:"place"`    //
	Country  jsonx.Field[string] `json:"country"`  //
	City     jsonx.Field[string] `json:"city"`     //
	Distance jsonx.Field[int32]  `json:"distance"` //
}

// ToLocation maps LocationCreate → Location, validating that every key is present.
func (req *LocationCreate) ToLocation() (Location, error) {
	var loc Location
	var err error
	if loc.ID, err = required(req.ID, "id"); err != nil {
		return Location{}, err
	}
	if loc.Place, err = required(req.Place, "place"); err != nil {
		return Location{}, err
	}
	if loc.Country, err = required(req.Country, "country"); err != nil {
		return Location{}, err
	}
	if loc.City, err = required(req.City, "city"); err != nil {
		return Location{}, err
	}
	if loc.Distance, err = required(req.Distance, "distance"); err != nil {
		return Location{}, err
	}
	return loc, nil
}

// VisitCreate is the request schema for POST /visits/new.
// Every field is required; explicit null is rejected like an absent key.
type VisitCreate struct {
	ID        jsonx.Field[int32] `json:"id"`         //
	Location  jsonx.Field[int32] `json:"location"`   //
	User      jsonx.Field[int32] `json:"user"`       //
	VisitedAt jsonx.Field[int64] `json:"visited_at"` //
	Mark      jsonx.Field[int8]  `json:"mark"`       //
}

// ToVisit maps VisitCreate → Visit, validating that every key is present.
func (req *VisitCreate) ToVisit() (Visit, error) {
	var v Visit
	var err error
	if v.ID, err = required(req.ID, "id"); err != nil {
		return Visit{}, err
	}
	if v.Location, err = required(req.Location, "location"); err != nil {
		return Visit{}, err
	}
	if v.User, err = required(req.User, "user"); err != nil {
		return Visit{}, err
	}
	if v.VisitedAt, err = required(req.VisitedAt, "visited_at"); err != nil {
		return Visit{}, err
	}
	if v.Mark, err = required(req.Mark, "mark"); err != nil {
		return Visit{}, err
	}
	return v, nil
}
