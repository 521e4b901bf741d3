package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrDataLoad marks every failure to fetch or decode the dataset.
	ErrDataLoad = errors.New("dataset load failed")
	// ErrNoData is returned when a selection resolves to no market record.
	ErrNoData = errors.New("no data for selection")
	// ErrUnknownMetric is returned for metric names outside the catalog.
	ErrUnknownMetric = errors.New("unknown metric")
	// ErrInvalidPeriod is returned for labels not shaped like "Q1 2024".
	ErrInvalidPeriod = errors.New("invalid period label")
)

// LoadError describes a failed dataset load. It matches [ErrDataLoad] with
// errors.Is and unwraps to the underlying cause.
type LoadError struct {
	Source string // URL or file path
	Status int    // HTTP status; zero when no response was received
	Err    error
}

func (e *LoadError) Error() string {
	switch {
	case e.Status != 0 && e.Err != nil:
		return fmt.Sprintf("load dataset from %s: status %d: %v", e.Source, e.Status, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("load dataset from %s: status %d", e.Source, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("load dataset from %s: %v", e.Source, e.Err)
	default:
		return "load dataset from " + e.Source
	}
}

func (e *LoadError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrDataLoad}
	}
	return []error{ErrDataLoad, e.Err}
}
