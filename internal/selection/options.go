package selection

import "github.com/couchcryptid/office-market-explorer/internal/domain"

// Options lists the valid choices at each selector level for a state.
type Options struct {
	Countries  []string `json:"countries"`
	Cities     []string `json:"cities"`
	Periods    []string `json:"periods"`
	Submarkets []string `json:"submarkets"`
	// ShowSubmarkets is false when the selected period has no submarkets;
	// the submarket selector is then hidden and the view shows city totals.
	ShowSubmarkets bool `json:"showSubmarkets"`
}

// OptionsFor returns the selector options below each level of s. Missing
// levels yield empty lists.
func OptionsFor(d *domain.Dataset, s domain.Selection) Options {
	country := d.Country(s.Country)
	city := country.City(s.City)
	period := city.Period(s.Period)

	opts := Options{
		Countries:  nonNil(countriesOf(d)),
		Periods:    nonNil(periodsOf(city)),
		Submarkets: nonNil(submarketsOf(period)),
	}
	if country != nil {
		opts.Cities = country.Cities.Keys()
	}
	opts.Cities = nonNil(opts.Cities)
	opts.ShowSubmarkets = len(opts.Submarkets) > 0
	return opts
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
