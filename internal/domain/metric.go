package domain

import "fmt"

// Metric names one field of the market or leasing record. The string is the
// JSON key used in the dataset.
type Metric string

const (
	TotalStock        Metric = "totalStock"
	Vacancy           Metric = "vacancy"
	VacancyRate       Metric = "vacancyRate"
	TakeUp            Metric = "takeUp"
	NetAbsorption     Metric = "netAbsorption"
	CompletionsYTD    Metric = "completionsYTD"
	UnderConstruction Metric = "underConstruction"
	PrimeRent         Metric = "primeRentEurSqmMonth"
	AverageRent       Metric = "averageRentEurSqmMonth"
	PrimeYield        Metric = "primeYield"

	RentFree      Metric = "rentFreeMonthPerYear"
	LeaseLength   Metric = "leaseLengthMonths"
	FitOut        Metric = "fitOutEurSqmShellCore"
	ServiceCharge Metric = "serviceChargeEurSqmMonth"
)

// Display selects the formatter used for a metric.
type Display string

const (
	DisplayCount   Display = "count"
	DisplayMoney   Display = "money"
	DisplayPercent Display = "percent"
)

// MetricInfo describes how a metric is labelled and rendered.
type MetricInfo struct {
	Metric  Metric  `json:"metric"`
	Label   string  `json:"label"`
	Display Display `json:"display"`
	Leasing bool    `json:"leasing"`
}

var catalog = []MetricInfo{
	{TotalStock, "Total Stock (sqm)", DisplayCount, false},
	{Vacancy, "Vacancy (sqm)", DisplayCount, false},
	{VacancyRate, "Vacancy Rate (%)", DisplayPercent, false},
	{TakeUp, "Take-up (sqm)", DisplayCount, false},
	{NetAbsorption, "Net Absorption (sqm, YTD)", DisplayCount, false},
	{CompletionsYTD, "Completed (sqm, YTD)", DisplayCount, false},
	{UnderConstruction, "Under Construction (sqm)", DisplayCount, false},
	{PrimeRent, "Prime Rent (€/sqm/month)", DisplayMoney, false},
	{AverageRent, "Average Rent (€/sqm/month)", DisplayMoney, false},
	{PrimeYield, "Prime Yield (%)", DisplayPercent, false},
	{RentFree, "Typical rent-free period (month/year)", DisplayMoney, true},
	{LeaseLength, "Typical lease length (months)", DisplayCount, true},
	{FitOut, "Fit-out (€/sqm)", DisplayCount, true},
	{ServiceCharge, "Service charge (€/sqm/month)", DisplayMoney, true},
}

// chartable is the subset offered in the trend metric picker.
var chartable = []Metric{
	TotalStock, Vacancy, VacancyRate, PrimeRent, AverageRent, PrimeYield, FitOut, ServiceCharge,
}

var catalogByMetric = func() map[Metric]MetricInfo {
	m := make(map[Metric]MetricInfo, len(catalog))
	for _, info := range catalog {
		m[info.Metric] = info
	}
	return m
}()

// ParseMetric validates a metric name.
func ParseMetric(s string) (Metric, error) {
	m := Metric(s)
	if _, ok := catalogByMetric[m]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownMetric, s)
	}
	return m, nil
}

// Info returns the catalog entry for m. Unknown metrics get a count display
// and their raw name as label.
func (m Metric) Info() MetricInfo {
	if info, ok := catalogByMetric[m]; ok {
		return info
	}
	return MetricInfo{Metric: m, Label: string(m), Display: DisplayCount}
}

// IsPercent reports whether m is stored as a fraction or whole percent.
func (m Metric) IsPercent() bool { return m.Info().Display == DisplayPercent }

// IsLeasing reports whether m lives in the leasing record.
func (m Metric) IsLeasing() bool { return m.Info().Leasing }

// MarketMetrics lists the market table rows in display order.
func MarketMetrics() []MetricInfo { return filterCatalog(false) }

// LeasingMetrics lists the leasing table rows in display order.
func LeasingMetrics() []MetricInfo { return filterCatalog(true) }

// ChartMetrics lists the metrics offered for trend charts.
func ChartMetrics() []MetricInfo {
	out := make([]MetricInfo, 0, len(chartable))
	for _, m := range chartable {
		out = append(out, m.Info())
	}
	return out
}

func filterCatalog(leasing bool) []MetricInfo {
	var out []MetricInfo
	for _, info := range catalog {
		if info.Leasing == leasing {
			out = append(out, info)
		}
	}
	return out
}

func (m *Market) field(metric Metric) (Value, bool) {
	if m == nil {
		return Value{}, false
	}
	switch metric {
	case TotalStock:
		return m.TotalStock, true
	case Vacancy:
		return m.Vacancy, true
	case VacancyRate:
		return m.VacancyRate, true
	case TakeUp:
		return m.TakeUp, true
	case NetAbsorption:
		return m.NetAbsorption, true
	case CompletionsYTD:
		return m.CompletionsYTD, true
	case UnderConstruction:
		return m.UnderConstruction, true
	case PrimeRent:
		return m.PrimeRent, true
	case AverageRent:
		return m.AverageRent, true
	case PrimeYield:
		return m.PrimeYield, true
	}
	return Value{}, false
}

func (l *Leasing) field(metric Metric) (Value, bool) {
	if l == nil {
		return Value{}, false
	}
	switch metric {
	case RentFree:
		return l.RentFree, true
	case LeaseLength:
		return l.LeaseLength, true
	case FitOut:
		return l.FitOut, true
	case ServiceCharge:
		return l.ServiceCharge, true
	}
	return Value{}, false
}
