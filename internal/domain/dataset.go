package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Dataset is the root of the market document: country → city → period →
// submarket. It is read-only once decoded.
type Dataset struct {
	Countries Index[*Country] `json:"countries"`
}

// Country groups the cities of one country.
type Country struct {
	Cities Index[*City] `json:"cities"`
}

// City holds one record per quarter and an optional city-wide leasing default.
type City struct {
	Periods Index[*Period] `json:"periods"`
	Leasing *Leasing       `json:"leasing,omitempty"`
}

// Period is one quarter of a city's market.
type Period struct {
	Market     *Market           `json:"market,omitempty"`
	Leasing    *Leasing          `json:"leasing,omitempty"`
	Submarkets Index[*Submarket] `json:"subMarkets"`
}

// Submarket carries district-level metrics and an optional leasing record.
type Submarket struct {
	Market
	Leasing *Leasing `json:"leasing,omitempty"`
}

// Market is the set of quantitative office-market metrics.
type Market struct {
	TotalStock        Value `json:"totalStock"`
	Vacancy           Value `json:"vacancy"`
	VacancyRate       Value `json:"vacancyRate"`
	TakeUp            Value `json:"takeUp"`
	NetAbsorption     Value `json:"netAbsorption"`
	CompletionsYTD    Value `json:"completionsYTD"`
	UnderConstruction Value `json:"underConstruction"`
	PrimeRent         Value `json:"primeRentEurSqmMonth"`
	AverageRent       Value `json:"averageRentEurSqmMonth"`
	PrimeYield        Value `json:"primeYield"`
}

// Leasing is the set of typical lease terms.
type Leasing struct {
	RentFree      Value `json:"rentFreeMonthPerYear"`
	LeaseLength   Value `json:"leaseLengthMonths"`
	FitOut        Value `json:"fitOutEurSqmShellCore"`
	ServiceCharge Value `json:"serviceChargeEurSqmMonth"`
}

// DecodeDataset reads a market document from r. The document must be the
// only JSON value in r.
func DecodeDataset(r io.Reader) (*Dataset, error) {
	dec := json.NewDecoder(r)
	var d Dataset
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	if err := dec.Decode(&json.RawMessage{}); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected value")
		}
		return nil, fmt.Errorf("decode dataset: trailing data after document: %w", err)
	}
	return &d, nil
}

// UnmarshalJSON accepts an empty array as an empty record.
func (l *Leasing) UnmarshalJSON(b []byte) error {
	if isEmptyArray(b) {
		*l = Leasing{}
		return nil
	}
	type plain Leasing
	if err := json.Unmarshal(b, (*plain)(l)); err != nil {
		return fmt.Errorf("decode leasing: %w", err)
	}
	return nil
}

// The lookups below are nil-safe so a path can be walked in one expression;
// a missing segment yields nil for every level below it.

// Country returns the named country or nil.
func (d *Dataset) Country(name string) *Country {
	if d == nil {
		return nil
	}
	c, _ := d.Countries.Get(name)
	return c
}

// City returns the named city or nil.
func (c *Country) City(name string) *City {
	if c == nil {
		return nil
	}
	city, _ := c.Cities.Get(name)
	return city
}

// Period returns the period with the given label or nil.
func (c *City) Period(label string) *Period {
	if c == nil {
		return nil
	}
	p, _ := c.Periods.Get(label)
	return p
}

// Submarket returns the named submarket or nil. [WholeCity] always yields nil.
func (p *Period) Submarket(name string) *Submarket {
	if p == nil || name == WholeCity {
		return nil
	}
	s, _ := p.Submarkets.Get(name)
	return s
}

func (m *Market) fields() []*Value {
	return []*Value{
		&m.TotalStock, &m.Vacancy, &m.VacancyRate, &m.TakeUp, &m.NetAbsorption,
		&m.CompletionsYTD, &m.UnderConstruction, &m.PrimeRent, &m.AverageRent, &m.PrimeYield,
	}
}

func (l *Leasing) fields() []*Value {
	return []*Value{&l.RentFree, &l.LeaseLength, &l.FitOut, &l.ServiceCharge}
}
