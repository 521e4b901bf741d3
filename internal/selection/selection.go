// Package selection is the cascading selector state machine. [Reduce] is a
// pure function: it computes the complete next (country, city, period,
// submarket) tuple from the dataset and one event, so no partially updated
// state is ever observable.
package selection

import (
	"errors"
	"fmt"
	"slices"

	"github.com/couchcryptid/office-market-explorer/internal/domain"
)

// ErrUnknownEvent is returned by [ParseEventKind] for unsupported kinds.
var ErrUnknownEvent = errors.New("unknown selection event")

// EventKind names a selector interaction.
type EventKind string

const (
	// Loaded re-validates the whole tuple against a freshly loaded dataset.
	Loaded          EventKind = "loaded"
	SelectCountry   EventKind = "select_country"
	SelectCity      EventKind = "select_city"
	SelectPeriod    EventKind = "select_period"
	SelectSubmarket EventKind = "select_submarket"
)

// ParseEventKind validates an event kind received from a client.
func ParseEventKind(s string) (EventKind, error) {
	switch k := EventKind(s); k {
	case Loaded, SelectCountry, SelectCity, SelectPeriod, SelectSubmarket:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEvent, s)
}

// Event is one selector interaction. Value is ignored for [Loaded].
type Event struct {
	Kind  EventKind `json:"kind"`
	Value string    `json:"value"`
}

// Reduce returns the state after ev. Every level of the result is a valid key
// of its parent, or empty when the parent has no children. Values that do
// not exist in d fall back to the first key in document order (periods: the
// earliest quarter). An unknown event kind is treated as [Loaded].
func Reduce(d *domain.Dataset, s domain.Selection, ev Event) domain.Selection {
	next := s
	switch ev.Kind {
	case SelectCountry:
		next = domain.Selection{Country: ev.Value}
	case SelectCity:
		next = domain.Selection{Country: s.Country, City: ev.Value}
	case SelectPeriod:
		next.Period = ev.Value
	case SelectSubmarket:
		next.Submarket = ev.Value
	}
	return normalize(d, next, ev.Kind)
}

// normalize validates the tuple top-down. When a level had to fall back,
// every level below it restarts from its first key.
func normalize(d *domain.Dataset, s domain.Selection, kind EventKind) domain.Selection {
	var out domain.Selection

	out.Country = pick(countriesOf(d), s.Country)
	country := d.Country(out.Country)

	want := s
	if out.Country != s.Country {
		want.City, want.Period = "", ""
	}
	var cities []string
	if country != nil {
		cities = country.Cities.Keys()
	}
	out.City = pick(cities, want.City)
	city := country.City(out.City)

	if out.City != s.City {
		want.Period = ""
	}
	out.Period = pick(periodsOf(city), want.Period)
	period := city.Period(out.Period)

	subs := submarketsOf(period)
	cascaded := kind == SelectCountry || kind == SelectCity
	parentMoved := out.Country != s.Country || out.City != s.City
	periodMoved := out.Period != s.Period && kind != SelectPeriod
	switch {
	case cascaded || parentMoved || periodMoved:
		out.Submarket = first(subs)
	case s.Submarket == domain.WholeCity || slices.Contains(subs, s.Submarket):
		out.Submarket = s.Submarket
	default:
		out.Submarket = first(subs)
	}
	return out
}

// pick returns want when it is one of keys, otherwise the first key, or ""
// when keys is empty.
func pick(keys []string, want string) string {
	if slices.Contains(keys, want) {
		return want
	}
	return first(keys)
}

func first(keys []string) string {
	if len(keys) == 0 {
		return ""
	}
	return keys[0]
}

func countriesOf(d *domain.Dataset) []string {
	if d == nil {
		return nil
	}
	return d.Countries.Keys()
}

func periodsOf(c *domain.City) []string {
	if c == nil {
		return nil
	}
	return domain.SortPeriods(c.Periods.Keys())
}

func submarketsOf(p *domain.Period) []string {
	if p == nil {
		return nil
	}
	return p.Submarkets.Keys()
}
