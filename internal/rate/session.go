package rate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"rateproxy/internal/domain"
)

// Session owns the currency catalog, the rate table and their freshness
// status for one app session. Tables are replaced wholesale per refresh
// cycle, never mutated in place, and always as a pair.
type Session struct {
	http    *http.Client
	baseURL string

	mu      sync.RWMutex
	catalog domain.Catalog
	rates   domain.RateTable
	status  domain.Status
}

// NewSession creates a session against the given backend base URL. An empty
// URL puts the session in fallback-only mode: Refresh skips network I/O and
// installs the built-in tables. A trailing slash is stripped.
func NewSession(httpClient *http.Client, backendURL string) *Session {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Session{
		http:    httpClient,
		baseURL: strings.TrimSuffix(backendURL, "/"),
		catalog: BuiltinCatalog(),
		rates:   DeriveFallbackRates(FallbackBase),
		status:  domain.StatusFallback,
	}
}

// SetBackendURL reconfigures the backend address. The caller is expected to
// run Refresh afterwards; the tables keep their previous values until then.
func (s *Session) SetBackendURL(backendURL string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.baseURL = strings.TrimSuffix(backendURL, "/")
}

// Catalog returns the current currency catalog.
func (s *Session) Catalog() domain.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

// Rates returns the current rate table.
func (s *Session) Rates() domain.RateTable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rates
}

// Status returns the current freshness status.
func (s *Session) Status() domain.Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Snapshot returns the catalog, the rate table and the status as one
// consistent set from the same refresh cycle.
func (s *Session) Snapshot() (domain.Catalog, domain.RateTable, domain.Status) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog, s.rates, s.status
}

// Refresh runs one fetch cycle and returns the resulting status. It never
// returns an error: every failure degrades to the built-in tables and a
// fallback status, so the caller always has a renderable, consistent set.
//
// The two sub-fetches run concurrently. A sub-fetch that completes with a
// non-success outcome (bad HTTP status, malformed body, non-success result)
// only falls back its own table, but a transport-level error on either one
// resets both tables to the built-ins — even when the other sub-fetch had
// already succeeded. That asymmetry is intentional and kept as observed
// behavior.
func (s *Session) Refresh(ctx context.Context) domain.Status {
	s.mu.Lock()
	s.status = domain.StatusLoading
	baseURL := s.baseURL
	s.mu.Unlock()

	if baseURL == "" {
		s.install(BuiltinCatalog(), DeriveFallbackRates(FallbackBase), domain.StatusFallback)
		return domain.StatusFallback
	}

	var (
		catalog    domain.Catalog
		catalogErr error
		rates      domain.RateTable
		ratesErr   error
	)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		catalog, catalogErr = s.fetchCatalog(ctx, baseURL)
	}()
	go func() {
		defer wg.Done()
		rates, ratesErr = s.fetchRates(ctx, baseURL)
	}()
	wg.Wait()

	if catalogErr != nil || ratesErr != nil {
		logrus.WithFields(logrus.Fields{
			"catalog_err": catalogErr,
			"rates_err":   ratesErr,
		}).Warn("Rate refresh failed, using built-in tables")
		s.install(BuiltinCatalog(), DeriveFallbackRates(FallbackBase), domain.StatusFallback)
		return domain.StatusFallback
	}

	status := domain.StatusLive
	if catalog == nil {
		catalog = BuiltinCatalog()
		status = domain.StatusFallback
	}
	if rates == nil {
		rates = DeriveFallbackRates(FallbackBase)
		status = domain.StatusFallback
	}

	s.install(catalog, rates, status)
	return status
}

func (s *Session) install(catalog domain.Catalog, rates domain.RateTable, status domain.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = catalog
	s.rates = rates
	s.status = status
}

type codesPayload struct {
	Result         string     `json:"result"`
	SupportedCodes [][]string `json:"supported_codes"`
}

// fetchCatalog fetches the backend code catalog. A nil catalog with a nil
// error means the sub-fetch completed but was not successful; a non-nil
// error means the request itself failed at the transport level.
func (s *Session) fetchCatalog(ctx context.Context, baseURL string) (domain.Catalog, error) {
	body, err := s.get(ctx, baseURL+"/codes")
	if err != nil {
		return nil, err
	}
	if body == nil {
		return nil, nil
	}

	var payload codesPayload
	if jsonErr := json.Unmarshal(body, &payload); jsonErr != nil {
		return nil, nil
	}
	if payload.Result != "success" || payload.SupportedCodes == nil {
		return nil, nil
	}

	catalog := make(domain.Catalog, len(payload.SupportedCodes))
	for _, pair := range payload.SupportedCodes {
		if len(pair) < 2 {
			return nil, nil
		}
		catalog[strings.ToUpper(pair[0])] = pair[1]
	}
	return catalog, nil
}

type ratesPayload struct {
	Result          string           `json:"result"`
	BaseCode        string           `json:"base_code"`
	ConversionRates domain.RateTable `json:"conversion_rates"`
}

// fetchRates fetches the backend rate table against the USD numeraire,
// with the same nil/nil convention as fetchCatalog.
func (s *Session) fetchRates(ctx context.Context, baseURL string) (domain.RateTable, error) {
	body, err := s.get(ctx, baseURL+"/rates?base="+FallbackBase)
	if err != nil {
		return nil, err
	}
	if body == nil {
		return nil, nil
	}

	var payload ratesPayload
	if jsonErr := json.Unmarshal(body, &payload); jsonErr != nil {
		return nil, nil
	}
	if payload.Result != "success" || payload.ConversionRates == nil {
		return nil, nil
	}

	table := payload.ConversionRates.Clone()
	base := payload.BaseCode
	if base == "" {
		base = FallbackBase
	}
	// The numeraire is always present at exactly 1.
	table[base] = 1
	return table, nil
}

// get performs one GET. A nil body with a nil error means the server
// answered with a non-success HTTP status, which callers treat the same
// as a malformed body.
func (s *Session) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}
