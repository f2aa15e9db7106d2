package service

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hlcup17/travels/internal/domain/travel"
	"github.com/hlcup17/travels/internal/store"
)

// ErrBadQuery rejects a recognized query parameter whose value fails to parse.
var ErrBadQuery = errors.New("bad query parameter")

// The filter grammar works on the raw query string: pairs split on '&', key
// and value on '='. Unrecognized keys are ignored entirely; a recognized key
// with an unparsable value fails the whole request. Repeating a key stacks
// predicates, all of which must pass.

type visitFilter func(*travel.UserVisit) bool
type markFilter func(*travel.LocationMark) bool

// UserVisits projects the user's visit rows passing every filter, in
// visited_at order. Existence wins over query validity: an unknown user is a
// miss even when the query is malformed.
//
// Recognized filters:
//   - fromDate: visited_at strictly after (epoch seconds)
//   - toDate: visited_at strictly before (epoch seconds)
//   - toDistance: location distance strictly under
//   - country: location country equals (percent-decoded; '+' stays literal)
func (s *TravelService) UserVisits(id int32, rawQuery string) ([]travel.VisitView, error) {
	visits, ok := s.store.UserVisits.Load(id)
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, store.ErrNotFound)
	}
	filters, err := parseVisitFilters(rawQuery)
	if err != nil {
		return nil, err
	}

	views := make([]travel.VisitView, 0, len(visits))
scan:
	for i := range visits {
		for _, keep := range filters {
			if !keep(&visits[i]) {
				continue scan
			}
		}
		views = append(views, visits[i].View)
	}
	return views, nil
}

// LocationAvg returns the mean mark over the location's rows passing every
// filter, formatted for the wire (see formatAvg). Existence wins over query
// validity, as in UserVisits.
//
// Recognized filters:
//   - fromDate: visited_at strictly after (epoch seconds)
//   - toDate: visited_at strictly before (epoch seconds)
//   - fromAge: visitor strictly older than the given years at current time
//   - toAge: visitor strictly younger
//   - gender: visitor gender is exactly "m" or "f"
func (s *TravelService) LocationAvg(id int32, rawQuery string) (string, error) {
	marks, ok := s.store.LocationMarks.Load(id)
	if !ok {
		return "", fmt.Errorf("location %d: %w", id, store.ErrNotFound)
	}
	filters, err := parseMarkFilters(rawQuery, s.now().UTC())
	if err != nil {
		return "", err
	}

	sum, count := 0, 0
scan:
	for i := range marks {
		for _, keep := range filters {
			if !keep(&marks[i]) {
				continue scan
			}
		}
		sum += int(marks[i].Mark)
		count++
	}
	return formatAvg(sum, count), nil
}

// splitPair separates one raw query pair. The value is the segment between
// the first and second '='; hasValue distinguishes "key" from "key=".
func splitPair(pair string) (key, value string, hasValue bool) {
	parts := strings.Split(pair, "=")
	if len(parts) > 1 {
		return parts[0], parts[1], true
	}
	return parts[0], "", false
}

func parseVisitFilters(rawQuery string) ([]visitFilter, error) {
	if rawQuery == "" {
		return nil, nil
	}
	var filters []visitFilter
	for _, pair := range strings.Split(rawQuery, "&") {
		key, value, hasValue := splitPair(pair)
		switch key {
		case "fromDate":
			from, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("fromDate %q: %w", value, ErrBadQuery)
			}
			filters = append(filters, func(uv *travel.UserVisit) bool {
				return uv.View.VisitedAt > from
			})
		case "toDate":
			to, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("toDate %q: %w", value, ErrBadQuery)
			}
			filters = append(filters, func(uv *travel.UserVisit) bool {
				return uv.View.VisitedAt < to
			})
		case "toDistance":
			n, err := strconv.ParseInt(value, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("toDistance %q: %w", value, ErrBadQuery)
			}
			under := int32(n)
			filters = append(filters, func(uv *travel.UserVisit) bool {
				return uv.Distance < under
			})
		case "country":
			// A bare "country" with no '=' carries no value to match on.
			if !hasValue {
				continue
			}
			country, err := url.PathUnescape(value)
			if err != nil {
				return nil, fmt.Errorf("country %q: %w", value, ErrBadQuery)
			}
			filters = append(filters, func(uv *travel.UserVisit) bool {
				return uv.Country == country
			})
		}
	}
	return filters, nil
}

func parseMarkFilters(rawQuery string, now time.Time) ([]markFilter, error) {
	if rawQuery == "" {
		return nil, nil
	}
	var filters []markFilter
	for _, pair := range strings.Split(rawQuery, "&") {
		key, value, _ := splitPair(pair)
		switch key {
		case "fromDate":
			from, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("fromDate %q: %w", value, ErrBadQuery)
			}
			filters = append(filters, func(m *travel.LocationMark) bool {
				return m.VisitedAt > from
			})
		case "toDate":
			to, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("toDate %q: %w", value, ErrBadQuery)
			}
			filters = append(filters, func(m *travel.LocationMark) bool {
				return m.VisitedAt < to
			})
		case "fromAge":
			cutoff, err := ageCutoff(now, value)
			if err != nil {
				return nil, err
			}
			filters = append(filters, func(m *travel.LocationMark) bool {
				return m.BirthDate < cutoff
			})
		case "toAge":
			cutoff, err := ageCutoff(now, value)
			if err != nil {
				return nil, err
			}
			filters = append(filters, func(m *travel.LocationMark) bool {
				return m.BirthDate > cutoff
			})
		case "gender":
			var want travel.Gender
			switch value {
			case "m":
				want = travel.Male
			case "f":
				want = travel.Female
			default:
				return nil, fmt.Errorf("gender %q: %w", value, ErrBadQuery)
			}
			filters = append(filters, func(m *travel.LocationMark) bool {
				return m.Gender == want
			})
		}
	}
	return filters, nil
}

// ageCutoff resolves an age bound to a birth_date cutoff: the current UTC
// wall clock with the year moved back by the given count. Negative counts are
// invalid, and so are bounds landing on a nonexistent calendar day (Feb 29
// moved to an off-leap year); time.Date would silently normalize those, which
// the month/day comparison detects.
func ageCutoff(now time.Time, value string) (int64, error) {
	years, err := strconv.ParseInt(value, 10, 32)
	if err != nil || years < 0 {
		return 0, fmt.Errorf("age %q: %w", value, ErrBadQuery)
	}
	shifted := time.Date(now.Year()-int(years), now.Month(), now.Day(),
		now.Hour(), now.Minute(), now.Second(), now.Nanosecond(), time.UTC)
	if shifted.Month() != now.Month() || shifted.Day() != now.Day() {
		return 0, fmt.Errorf("age %q: %w", value, ErrBadQuery)
	}
	return shifted.Unix(), nil
}

// formatAvg renders the mean of a mark subset for the wire: five fractional
// digits, trailing zeros stripped, at least one digit kept after the point.
// An empty subset renders as plain 0.
func formatAvg(sum, count int) string {
	if count == 0 {
		return "0"
	}
	avg := strconv.FormatFloat(float64(sum)/float64(count), 'f', 5, 64)
	avg = strings.TrimRight(avg, "0")
	if strings.HasSuffix(avg, ".") {
		avg += "0"
	}
	return avg
}
