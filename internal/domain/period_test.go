package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuarter(t *testing.T) {
	q, err := ParseQuarter("Q3 2024")
	require.NoError(t, err)
	assert.Equal(t, Quarter{Year: 2024, Quarter: 3}, q)
	assert.Equal(t, "Q3 2024", q.String())

	for _, bad := range []string{"Q5 2024", "q1 2024", "2024 Q1", "Q1", "", "Q1 24"} {
		_, err := ParseQuarter(bad)
		assert.ErrorIs(t, err, ErrInvalidPeriod, bad)
	}
}

func TestSortPeriods(t *testing.T) {
	in := []string{"Q1 2024", "Q4 2023", "bogus", "Q2 2023", "Q1 2023", "Q3 2023"}
	want := []string{"Q1 2023", "Q2 2023", "Q3 2023", "Q4 2023", "Q1 2024", "bogus"}

	got := SortPeriods(in)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SortPeriods mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "Q1 2024", in[0], "input must not be reordered")
}

func TestSortPeriods_YearBeforeQuarter(t *testing.T) {
	assert.Equal(t, []string{"Q4 2023", "Q1 2024"}, SortPeriods([]string{"Q1 2024", "Q4 2023"}))
}

func TestSortPeriods_InvalidKeepRelativeOrder(t *testing.T) {
	assert.Equal(t, []string{"Q2 2020", "zeta", "alpha"}, SortPeriods([]string{"zeta", "alpha", "Q2 2020"}))
}
