package explorer

import (
	"fmt"

	"github.com/couchcryptid/office-market-explorer/internal/domain"
)

// SeriesRef addresses one trend line: a city, optionally narrowed to a
// submarket.
type SeriesRef struct {
	Country   string `json:"country"`
	City      string `json:"city"`
	Submarket string `json:"submarket"`
}

// Label names the series in legends: "city" or "city — submarket".
func (r SeriesRef) Label() string {
	if r.Submarket == domain.WholeCity {
		return r.City
	}
	return r.City + " — " + r.Submarket
}

// TrendPoint is a series point with its formatted value.
type TrendPoint struct {
	domain.Point
	Formatted string `json:"formatted"`
}

// Series is a trend line ready for charting.
type Series struct {
	Ref    SeriesRef         `json:"ref"`
	Label  string            `json:"label"`
	Metric domain.MetricInfo `json:"metric"`
	Points []TrendPoint      `json:"points"`
}

// CompareRow is a comparison row with formatted values. A missing side is
// rendered as the placeholder.
type CompareRow struct {
	domain.ComparisonRow
	BaseFormatted       string `json:"baseFormatted"`
	ComparisonFormatted string `json:"comparisonFormatted"`
}

// Comparison aligns two trend lines on the union of their periods.
type Comparison struct {
	Metric          domain.MetricInfo `json:"metric"`
	Base            SeriesRef         `json:"base"`
	Comparison      SeriesRef         `json:"comparison"`
	BaseLabel       string            `json:"baseLabel"`
	ComparisonLabel string            `json:"comparisonLabel"`
	Rows            []CompareRow      `json:"rows"`
}

// Trend returns the series of metric for ref, oldest period first.
func (e *Explorer) Trend(ref SeriesRef, metric domain.Metric) (Series, error) {
	s, err := e.snapshot()
	if err != nil {
		return Series{}, err
	}
	points := e.points(s, ref, metric)

	out := Series{
		Ref:    ref,
		Label:  ref.Label(),
		Metric: metric.Info(),
		Points: make([]TrendPoint, 0, len(points)),
	}
	for _, p := range points {
		out.Points = append(out.Points, TrendPoint{Point: p, Formatted: domain.FormatNumber(metric, p.Value)})
	}
	return out, nil
}

// Compare aligns the series of base and other. When other names a submarket
// that yields no points, the comparison falls back to other's whole city.
func (e *Explorer) Compare(base, other SeriesRef, metric domain.Metric) (Comparison, error) {
	s, err := e.snapshot()
	if err != nil {
		return Comparison{}, err
	}

	basePoints := e.points(s, base, metric)
	otherPoints := e.points(s, other, metric)
	if len(otherPoints) == 0 && other.Submarket != domain.WholeCity {
		other.Submarket = domain.WholeCity
		otherPoints = e.points(s, other, metric)
	}

	merged := domain.Compare(basePoints, otherPoints)
	out := Comparison{
		Metric:          metric.Info(),
		Base:            base,
		Comparison:      other,
		BaseLabel:       base.Label(),
		ComparisonLabel: other.Label(),
		Rows:            make([]CompareRow, 0, len(merged)),
	}
	for _, row := range merged {
		out.Rows = append(out.Rows, CompareRow{
			ComparisonRow:       row,
			BaseFormatted:       formatOptional(metric, row.Base),
			ComparisonFormatted: formatOptional(metric, row.Comparison),
		})
	}
	return out, nil
}

// points returns the cached series for ref, building it on a miss. Keys
// carry the dataset generation so a series built from a replaced dataset is
// never served.
func (e *Explorer) points(s *snapshot, ref SeriesRef, metric domain.Metric) []domain.Point {
	key := fmt.Sprintf("%d|%s|%s|%s|%s", s.generation, ref.Country, ref.City, ref.Submarket, metric)
	if points, ok := e.cache.get(key); ok {
		e.metrics.TrendCache.WithLabelValues("hit").Inc()
		return points
	}
	e.metrics.TrendCache.WithLabelValues("miss").Inc()

	points := domain.BuildTrend(s.dataset, ref.Country, ref.City, ref.Submarket, metric)
	e.cache.put(key, points)
	return points
}

func formatOptional(metric domain.Metric, v *float64) string {
	if v == nil {
		return domain.Placeholder
	}
	return domain.FormatNumber(metric, *v)
}
