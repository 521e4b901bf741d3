package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/couchcryptid/office-market-explorer/internal/domain"
)

// maxErrorBody caps how much of a failed response is quoted in errors.
const maxErrorBody = 512

// HTTPSource fetches the dataset document with a single GET request. Failures
// are never retried.
type HTTPSource struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPSource creates a source for the dataset at url.
func NewHTTPSource(url string, timeout time.Duration, logger *slog.Logger) *HTTPSource {
	return &HTTPSource{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Fetch downloads and decodes the dataset. Every failure is a *domain.LoadError.
func (s *HTTPSource) Fetch(ctx context.Context) (*domain.Dataset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, &domain.LoadError{Source: s.url, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, &domain.LoadError{Source: s.url, Err: fmt.Errorf("dataset request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		loadErr := &domain.LoadError{Source: s.url, Status: resp.StatusCode}
		if msg := strings.TrimSpace(string(body)); msg != "" {
			loadErr.Err = errors.New(msg)
		}
		return nil, loadErr
	}

	d, err := domain.DecodeDataset(resp.Body)
	if err != nil {
		return nil, &domain.LoadError{Source: s.url, Status: resp.StatusCode, Err: err}
	}
	s.logger.Debug("dataset fetched", "url", s.url, "status", resp.StatusCode)
	return d, nil
}

// String identifies the source in logs.
func (s *HTTPSource) String() string { return s.url }
