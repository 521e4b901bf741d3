package explorer

import (
	"context"

	"github.com/couchcryptid/office-market-explorer/internal/domain"
	"github.com/couchcryptid/office-market-explorer/internal/selection"
)

// CityTotal labels the whole-city submarket choice in titles.
const CityTotal = "City total"

// Row is one formatted line of the market or leasing table.
type Row struct {
	Metric  domain.Metric  `json:"metric"`
	Label   string         `json:"label"`
	Display domain.Display `json:"display"`
	Value   string         `json:"value"`
	Raw     domain.Value   `json:"raw"`
}

// View is a selection rendered for display.
type View struct {
	Selection domain.Selection  `json:"selection"`
	Options   selection.Options `json:"options"`
	Title     string            `json:"title"`
	NoData    bool              `json:"noData"`
	Market    []Row             `json:"market"`
	Leasing   []Row             `json:"leasing"`
}

// SelectResult is the state after a selector event.
type SelectResult struct {
	Selection domain.Selection  `json:"selection"`
	Options   selection.Options `json:"options"`
}

// View normalises sel against the current dataset and renders it. A
// selection with no market record yields NoData and empty tables.
func (e *Explorer) View(sel domain.Selection) (View, error) {
	s, err := e.snapshot()
	if err != nil {
		return View{}, err
	}

	sel = selection.Reduce(s.dataset, sel, selection.Event{Kind: selection.Loaded})
	eff := domain.Resolve(s.dataset, sel)

	v := View{
		Selection: sel,
		Options:   selection.OptionsFor(s.dataset, sel),
		Title:     Title(sel),
		NoData:    eff.NoData(),
		Market:    []Row{},
		Leasing:   []Row{},
	}
	if v.NoData {
		e.metrics.NoDataViews.Inc()
		return v, nil
	}
	v.Market = rows(eff, domain.MarketMetrics())
	if eff.Leasing != nil {
		v.Leasing = rows(eff, domain.LeasingMetrics())
	}
	return v, nil
}

// Select applies ev to sel and publishes the change when a publisher is
// configured. Publishing failures are logged and counted, never returned.
func (e *Explorer) Select(ctx context.Context, sel domain.Selection, ev selection.Event) (SelectResult, error) {
	s, err := e.snapshot()
	if err != nil {
		return SelectResult{}, err
	}

	next := selection.Reduce(s.dataset, sel, ev)
	e.metrics.SelectionEvents.WithLabelValues(string(ev.Kind)).Inc()

	if e.publisher != nil && ev.Kind != selection.Loaded && next != sel {
		change := domain.NewSelectionChange(string(ev.Kind), ev.Value, sel, next)
		if err := e.publisher.Publish(ctx, change); err != nil {
			e.metrics.PublishErrors.Inc()
			e.logger.Warn("publish selection change failed", "error", err, "kind", ev.Kind, "id", change.ID)
		} else {
			e.metrics.EventsPublished.Inc()
		}
	}

	return SelectResult{Selection: next, Options: selection.OptionsFor(s.dataset, next)}, nil
}

// Title renders "city — period — submarket" with [CityTotal] for the whole
// city.
func Title(sel domain.Selection) string {
	sub := sel.Submarket
	if sub == domain.WholeCity {
		sub = CityTotal
	}
	return sel.City + " — " + sel.Period + " — " + sub
}

func rows(eff domain.Effective, metrics []domain.MetricInfo) []Row {
	out := make([]Row, 0, len(metrics))
	for _, info := range metrics {
		raw := eff.Field(info.Metric)
		out = append(out, Row{
			Metric:  info.Metric,
			Label:   info.Label,
			Display: info.Display,
			Value:   domain.FormatMetric(info.Metric, raw),
			Raw:     raw,
		})
	}
	return out
}
