package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_WholeCity(t *testing.T) {
	d := loadFixture(t)

	eff := Resolve(d, Selection{Country: "Czech Republic", City: "Prague", Period: "Q1 2024"})
	require.False(t, eff.NoData())

	assert.Equal(t, Num(3850000), eff.Field(TotalStock))
	assert.Equal(t, Text("4,75 %"), eff.Field(PrimeYield))
	// period leasing over city leasing
	assert.Equal(t, Num(1.5), eff.Field(RentFree))
	assert.Equal(t, Text("150 - 200"), eff.Field(FitOut))
	assert.Equal(t, Num(4.2), eff.Field(ServiceCharge))
}

func TestResolve_SubmarketOverridesPerField(t *testing.T) {
	d := loadFixture(t)

	eff := Resolve(d, Selection{Country: "Czech Republic", City: "Prague", Period: "Q1 2024", Submarket: "Prague 1"})
	require.False(t, eff.NoData())

	assert.Equal(t, Num(500000), eff.Field(TotalStock))
	assert.Equal(t, Num(0.08), eff.Field(VacancyRate))
	assert.Equal(t, Num(30), eff.Field(PrimeRent))
	assert.Equal(t, Text("4,75 %"), eff.Field(PrimeYield), "null submarket field falls through")
	assert.Equal(t, Num(110000), eff.Field(TakeUp), "absent submarket field falls through")

	assert.Equal(t, Num(5.1), eff.Field(ServiceCharge))
	assert.Equal(t, Num(1.5), eff.Field(RentFree))
	assert.Equal(t, Num(60), eff.Field(LeaseLength))
}

func TestResolve_CityLeasingDefault(t *testing.T) {
	d := loadFixture(t)

	eff := Resolve(d, Selection{Country: "Czech Republic", City: "Prague", Period: "Q4 2023"})
	require.NotNil(t, eff.Leasing)
	assert.Equal(t, Num(1.0), eff.Field(RentFree))
	assert.Equal(t, Num(120), eff.Field(FitOut))
	assert.Equal(t, Num(4.0), eff.Field(ServiceCharge))
}

func TestResolve_NoLeasingAnywhere(t *testing.T) {
	d := loadFixture(t)

	eff := Resolve(d, Selection{Country: "Czech Republic", City: "Brno", Period: "Q1 2024"})
	require.False(t, eff.NoData())
	assert.Nil(t, eff.Leasing)
	assert.True(t, eff.Field(ServiceCharge).IsNull())
	assert.True(t, eff.Field(Vacancy).IsNull())
}

func TestResolve_MissingPathYieldsNoData(t *testing.T) {
	d := loadFixture(t)

	tests := []struct {
		name string
		sel  Selection
	}{
		{"unknown country", Selection{Country: "Atlantis", City: "Prague", Period: "Q1 2024"}},
		{"unknown city", Selection{Country: "Czech Republic", City: "Ostrava", Period: "Q1 2024"}},
		{"city without periods", Selection{Country: "Poland", City: "Warsaw", Period: "Q1 2024"}},
		{"unknown period", Selection{Country: "Czech Republic", City: "Prague", Period: "Q1 1999"}},
		{"unknown submarket", Selection{Country: "Czech Republic", City: "Prague", Period: "Q1 2024", Submarket: "Prague 9"}},
		{"empty selection", Selection{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eff := Resolve(d, tt.sel)
			assert.True(t, eff.NoData())
			assert.Nil(t, eff.Leasing)
			assert.True(t, eff.Field(TotalStock).IsNull())
		})
	}
}

func TestResolve_NilDataset(t *testing.T) {
	assert.True(t, Resolve(nil, Selection{Country: "Czech Republic"}).NoData())
}

func TestResolve_DoesNotMutateDataset(t *testing.T) {
	d := loadFixture(t)
	sel := Selection{Country: "Czech Republic", City: "Prague", Period: "Q1 2024", Submarket: "Prague 1"}

	_ = Resolve(d, sel)

	period := d.Country("Czech Republic").City("Prague").Period("Q1 2024")
	assert.Equal(t, Num(3850000), period.Market.TotalStock)
	assert.Equal(t, Num(4.2), period.Leasing.ServiceCharge)
	assert.True(t, period.Submarket("Prague 1").TakeUp.IsNull())
}
