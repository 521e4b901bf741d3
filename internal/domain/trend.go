package domain

// Point is one period of a trend series. Percent metrics are on the 0–100
// scale.
type Point struct {
	Period string  `json:"period"`
	Value  float64 `json:"value"`
}

// BuildTrend returns the value of metric for every period of the city,
// oldest first. When submarket names a district, each period uses that
// district's effective record, or the city-level record when the district is
// absent from the period. Periods whose value is null or unparseable are
// skipped. An unknown country or city yields an empty series.
func BuildTrend(d *Dataset, country, city, submarket string, metric Metric) []Point {
	c := d.Country(country).City(city)
	if c == nil {
		return nil
	}
	coerce := CoerceNumber
	if metric.IsPercent() {
		coerce = PercentValue
	}
	var points []Point
	for _, label := range SortPeriods(c.Periods.Keys()) {
		f, ok := coerce(resolveLenient(c, label, submarket).Field(metric))
		if !ok {
			continue
		}
		points = append(points, Point{Period: label, Value: f})
	}
	return points
}

// ComparisonRow aligns two series on one period. A nil side has no value for
// that period.
type ComparisonRow struct {
	Period     string   `json:"period"`
	Base       *float64 `json:"base"`
	Comparison *float64 `json:"comparison"`
}

// Compare merges two series on the union of their periods, oldest first.
func Compare(base, comparison []Point) []ComparisonRow {
	rows := make(map[string]*ComparisonRow, len(base)+len(comparison))
	var labels []string
	row := func(period string) *ComparisonRow {
		r, ok := rows[period]
		if !ok {
			r = &ComparisonRow{Period: period}
			rows[period] = r
			labels = append(labels, period)
		}
		return r
	}
	for _, p := range base {
		v := p.Value
		row(p.Period).Base = &v
	}
	for _, p := range comparison {
		v := p.Value
		row(p.Period).Comparison = &v
	}

	out := make([]ComparisonRow, 0, len(labels))
	for _, label := range SortPeriods(labels) {
		out = append(out, *rows[label])
	}
	return out
}
