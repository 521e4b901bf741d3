package domain

import (
	"cmp"
	"fmt"
	"regexp"
	"slices"
	"strconv"
)

var periodRe = regexp.MustCompile(`^Q([1-4])\s+(\d{4})$`)

// Quarter is a parsed period label.
type Quarter struct {
	Year    int
	Quarter int
}

func (q Quarter) String() string { return fmt.Sprintf("Q%d %d", q.Quarter, q.Year) }

// ParseQuarter parses labels of the form "Q3 2024".
func ParseQuarter(label string) (Quarter, error) {
	m := periodRe.FindStringSubmatch(label)
	if m == nil {
		return Quarter{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, label)
	}
	q, _ := strconv.Atoi(m[1])
	y, _ := strconv.Atoi(m[2])
	return Quarter{Year: y, Quarter: q}, nil
}

// ComparePeriods orders two labels by year then quarter. Invalid labels sort
// after valid ones and compare equal to each other.
func ComparePeriods(a, b string) int {
	qa, errA := ParseQuarter(a)
	qb, errB := ParseQuarter(b)
	switch {
	case errA != nil && errB != nil:
		return 0
	case errA != nil:
		return 1
	case errB != nil:
		return -1
	}
	if c := cmp.Compare(qa.Year, qb.Year); c != 0 {
		return c
	}
	return cmp.Compare(qa.Quarter, qb.Quarter)
}

// SortPeriods returns labels in ascending chronological order. The input is
// not modified; ties keep their original order.
func SortPeriods(labels []string) []string {
	out := slices.Clone(labels)
	slices.SortStableFunc(out, ComparePeriods)
	return out
}
