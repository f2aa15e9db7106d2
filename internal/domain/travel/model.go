// Package travel defines the primary entities of the travels service and the
// denormalized index rows derived from them.
package travel

// Gender is the two-valued tag carried on derived mark rows, pre-decoded so
// the gender filter compares a byte instead of a string.
type Gender uint8

const (
	Male Gender = iota
	Female
)

// GenderOf maps the wire representation to the internal tag:
// "m" is male, anything else is female.
func GenderOf(s string) Gender {
	if s == "m" {
		return Male
	}
	return Female
}

func (g Gender) String() string {
	if g == Male {
		return "m"
	}
	return "f"
}

// User is a registered traveler.
type User struct {
	ID        int32  `json:"id"`         //
	Email     string `json:"email"`      //
	FirstName string `json:"first_name"` //
	LastName  string `json:"last_name"`  //
	Gender    string `json:"gender"`     // stored as received; "m" means male, anything else female
	BirthDate int64  `json:"birth_date"` // epoch seconds, may be negative
}

// Location is a tourist attraction visits point at.
type Location struct {
	ID       int32  `json:"id"`       //
	Place    string `json:"place"`    // description of the place
	Country  string `json:"country"`  //
	City     string `json:"city"`     //
	Distance int32  `json:"distance"` // from the city center
}

// Visit links a User to a Location at a point in time with a mark.
type Visit struct {
	ID        int32 `json:"id"`         //
	Location  int32 `json:"location"`   // Location.ID
	User      int32 `json:"user"`       // User.ID
	VisitedAt int64 `json:"visited_at"` // epoch seconds
	Mark      int8  `json:"mark"`       //
}
