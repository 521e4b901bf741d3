package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// WholeCity is the submarket value meaning "no submarket, city totals".
const WholeCity = ""

// Selection is the (country, city, period, submarket) tuple behind the
// selectors.
type Selection struct {
	Country   string `json:"country"`
	City      string `json:"city"`
	Period    string `json:"period"`
	Submarket string `json:"submarket"`
}

// SelectionChange records one applied selector event. It is published
// downstream when selection events are enabled.
type SelectionChange struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	Value      string    `json:"value"`
	From       Selection `json:"from"`
	To         Selection `json:"to"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewSelectionChange stamps a change with the package clock and a
// deterministic ID over its content.
func NewSelectionChange(kind, value string, from, to Selection) SelectionChange {
	at := clock.Now().UTC()
	return SelectionChange{
		ID:         generateID(kind, value, from, to, at),
		Kind:       kind,
		Value:      value,
		From:       from,
		To:         to,
		OccurredAt: at,
	}
}

// generateID produces a deterministic ID from the change's key fields, so a
// replayed change keeps its ID.
func generateID(kind, value string, from, to Selection, at time.Time) string {
	input := fmt.Sprintf("%s|%s|%s|%s|%s", kind, value, selectionKey(from), selectionKey(to), at.Format(time.RFC3339Nano))
	hash := sha256.Sum256([]byte(input))
	short := hex.EncodeToString(hash[:8])
	if kind == "" {
		return short
	}
	return kind + "-" + short
}

func selectionKey(s Selection) string {
	return s.Country + "/" + s.City + "/" + s.Period + "/" + s.Submarket
}
