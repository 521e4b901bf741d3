package domain

// Effective is the resolved view of one selection. Either record is nil when
// no level of the path carries it.
type Effective struct {
	Market  *Market
	Leasing *Leasing
}

// NoData reports whether the selection resolved to no market record.
func (e Effective) NoData() bool { return e.Market == nil }

// Field returns the effective value of metric, or a null Value.
func (e Effective) Field(metric Metric) Value {
	if metric.IsLeasing() {
		v, _ := e.Leasing.field(metric)
		return v
	}
	v, _ := e.Market.field(metric)
	return v
}

// Resolve returns the effective records for sel. A country, city or period
// missing from d, or a named submarket missing from the period, yields an
// empty Effective. Resolve never panics on partial data.
func Resolve(d *Dataset, sel Selection) Effective {
	city := d.Country(sel.Country).City(sel.City)
	period := city.Period(sel.Period)
	if period == nil {
		return Effective{}
	}
	var sub *Submarket
	if sel.Submarket != WholeCity {
		if sub = period.Submarket(sel.Submarket); sub == nil {
			return Effective{}
		}
	}
	return effective(city, period, sub)
}

// resolveLenient is Resolve for series building: a submarket missing from a
// period falls back to the city-level record of that period.
func resolveLenient(city *City, label, submarket string) Effective {
	period := city.Period(label)
	if period == nil {
		return Effective{}
	}
	return effective(city, period, period.Submarket(submarket))
}

func effective(city *City, period *Period, sub *Submarket) Effective {
	var subMarket *Market
	var subLeasing *Leasing
	if sub != nil {
		subMarket = &sub.Market
		subLeasing = sub.Leasing
	}
	return Effective{
		Market:  overlayMarket(period.Market, subMarket),
		Leasing: overlayLeasing(city.Leasing, period.Leasing, subLeasing),
	}
}

// overlayMarket layers the non-null fields of each record over the previous
// ones, broadest first. The inputs are never modified.
func overlayMarket(layers ...*Market) *Market {
	var out *Market
	for _, m := range layers {
		if m == nil {
			continue
		}
		if out == nil {
			out = &Market{}
		}
		overlay(out.fields(), m.fields())
	}
	return out
}

func overlayLeasing(layers ...*Leasing) *Leasing {
	var out *Leasing
	for _, l := range layers {
		if l == nil {
			continue
		}
		if out == nil {
			out = &Leasing{}
		}
		overlay(out.fields(), l.fields())
	}
	return out
}

func overlay(dst, src []*Value) {
	for i, v := range src {
		if !v.IsNull() {
			*dst[i] = *v
		}
	}
}
