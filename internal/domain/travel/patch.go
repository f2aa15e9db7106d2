package travel

import (
	"errors"
	"fmt"

	"github.com/hlcup17/travels/pkg/jsonx"
)

// ErrNullField rejects explicit nulls in partial updates: a present key must
// carry a typed value.
var ErrNullField = errors.New("field cannot be null")

func notNull[T any](f jsonx.Field[T], key string) error {
	if f.Null {
		return fmt.Errorf("%s: %w", key, ErrNullField)
	}
	return nil
}

// UserPatch is the request schema for POST /users/{id}. A field is applied
// iff its key appears in the body; an "id" key, like any unknown key, is
// dropped at decode time.
type UserPatch struct {
	Email     jsonx.Field[string] `json:"email"`      //
	FirstName jsonx.Field[string] `json:"first_name"` //
	LastName  jsonx.Field[string] `json:"last_name"`  //
	Gender    jsonx.Field[string] `json:"gender"`     //
	BirthDate jsonx.Field[int64]  `json:"birth_date"` //
}

// Validate rejects explicit nulls.
func (p *UserPatch) Validate() error {
	if err := notNull(p.Email, "email"); err != nil {
		return err
	}
	if err := notNull(p.FirstName, "first_name"); err != nil {
		return err
	}
	if err := notNull(p.LastName, "last_name"); err != nil {
		return err
	}
	if err := notNull(p.Gender, "gender"); err != nil {
		return err
	}
	return notNull(p.BirthDate, "birth_date")
}

// Apply overlays the present fields onto u. Call Validate first; nulls are
// applied as if absent.
func (p *UserPatch) Apply(u *User) {
	if v, ok := p.Email.Value(); ok {
		u.Email = v
	}
	if v, ok := p.FirstName.Value(); ok {
		u.FirstName = v
	}
	if v, ok := p.LastName.Value(); ok {
		u.LastName = v
	}
	if v, ok := p.Gender.Value(); ok {
		u.Gender = v
	}
	if v, ok := p.BirthDate.Value(); ok {
		u.BirthDate = v
	}
}

// LocationPatch is the request schema for POST /locations/{id}.
type LocationPatch struct {
	Place    jsonx.Field[string] `json:"place"`    //
	Country  jsonx.Field[string] `json:"country"`  //
	City     jsonx.Field[string] `json:"city"`     //
	Distance jsonx.Field[int32]  `json:"distance"` //
}

// Validate rejects explicit nulls.
func (p *LocationPatch) Validate() error {
	if err := notNull(p.Place, "place"); err != nil {
		return err
	}
	if err := notNull(p.Country, "country"); err != nil {
		return err
	}
	if err := notNull(p.City, "city"); err != nil {
		return err
	}
	return notNull(p.Distance, "distance")
}

// Apply overlays the present fields onto loc. Call Validate first.
func (p *LocationPatch) Apply(loc *Location) {
	if v, ok := p.Place.Value(); ok {
		loc.Place = v
	}
	if v, ok := p.Country.Value(); ok {
		loc.Country = v
	}
	if v, ok := p.City.Value(); ok {
		loc.City = v
	}
	if v, ok := p.Distance.Value(); ok {
		loc.Distance = v
	}
}

// VisitPatch is the request schema for POST /visits/{id}.
type VisitPatch struct {
	Location  jsonx.Field[int32] `json:"location"`   //
	User      jsonx.Field[int32] `json:"user"`       //
	VisitedAt jsonx.Field[int64] `json:"visited_at"` //
	Mark      jsonx.Field[int8]  `json:"mark"`       //
}

// Validate rejects explicit nulls.
func (p *VisitPatch) Validate() error {
	if err := notNull(p.Location, "location"); err != nil {
		return err
	}
	if err := notNull(p.User, "user"); err != nil {
		return err
	}
	if err := notNull(p.VisitedAt, "visited_at"); err != nil {
		return err
	}
	return notNull(p.Mark, "mark")
}

// Apply overlays the present fields onto v. Call Validate first.
func (p *VisitPatch) Apply(v *Visit) {
	if x, ok := p.Location.Value(); ok {
		v.Location = x
	}
	if x, ok := p.User.Value(); ok {
		v.User = x
	}
	if x, ok := p.VisitedAt.Value(); ok {
		v.VisitedAt = x
	}
	if x, ok := p.Mark.Value(); ok {
		v.Mark = x
	}
}
