package rate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"rateproxy/internal/domain"
)

const validCodesBody = `{"result":"success","supported_codes":[["USD","US Dollar"],["EUR","Euro"],["KRW","South Korean Won"]]}`
const validRatesBody = `{"result":"success","base_code":"USD","conversion_rates":{"USD":0.9999999,"EUR":0.93,"KRW":1350.5}}`

// backend builds a fake proxy whose /codes and /rates responses are
// supplied per test.
func backend(t *testing.T, codes, rates http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/codes", codes)
	mux.HandleFunc("/rates", rates)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func respond(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func dropConnection(w http.ResponseWriter, _ *http.Request) {
	hj, ok := w.(http.Hijacker)
	if !ok {
		panic("response writer does not support hijacking")
	}
	conn, _, err := hj.Hijack()
	if err != nil {
		panic(err)
	}
	_ = conn.Close()
}

func TestSession_NoBackendConfigured(t *testing.T) {
	s := NewSession(nil, "")

	status := s.Refresh(context.Background())

	catalog, rates, gotStatus := s.Snapshot()
	require.Equal(t, domain.StatusFallback, status)
	require.Equal(t, domain.StatusFallback, gotStatus)
	require.Equal(t, BuiltinCatalog(), catalog)
	require.Equal(t, DeriveFallbackRates("USD"), rates)
}

func TestSession_BothSubFetchesSucceed(t *testing.T) {
	srv := backend(t,
		respond(http.StatusOK, validCodesBody),
		respond(http.StatusOK, validRatesBody),
	)
	s := NewSession(srv.Client(), srv.URL)

	status := s.Refresh(context.Background())

	require.Equal(t, domain.StatusLive, status)
	catalog, rates, _ := s.Snapshot()
	require.Equal(t, domain.Catalog{
		"USD": "US Dollar",
		"EUR": "Euro",
		"KRW": "South Korean Won",
	}, catalog)
	// The numeraire is forced to exactly 1 regardless of the upstream value.
	require.Equal(t, 1.0, rates["USD"])
	require.InDelta(t, 0.93, rates["EUR"], 1e-12)
	require.InDelta(t, 1350.5, rates["KRW"], 1e-12)
}

func TestSession_RatesResultErrorKeepsParsedCatalog(t *testing.T) {
	srv := backend(t,
		respond(http.StatusOK, validCodesBody),
		respond(http.StatusOK, `{"result":"error","error-type":"quota-reached"}`),
	)
	s := NewSession(srv.Client(), srv.URL)

	status := s.Refresh(context.Background())

	catalog, rates, _ := s.Snapshot()
	require.Equal(t, domain.StatusFallback, status)
	require.Contains(t, catalog, "KRW") // catalog came from the successful sub-fetch
	require.Equal(t, DeriveFallbackRates("USD"), rates)
}

func TestSession_CodesHTTPErrorKeepsParsedRates(t *testing.T) {
	srv := backend(t,
		respond(http.StatusInternalServerError, `{"error":"boom"}`),
		respond(http.StatusOK, validRatesBody),
	)
	s := NewSession(srv.Client(), srv.URL)

	status := s.Refresh(context.Background())

	catalog, rates, _ := s.Snapshot()
	require.Equal(t, domain.StatusFallback, status)
	require.Equal(t, BuiltinCatalog(), catalog)
	require.Equal(t, 1.0, rates["USD"])
	require.InDelta(t, 1350.5, rates["KRW"], 1e-12)
}

func TestSession_MalformedBodiesFallBack(t *testing.T) {
	cases := []struct {
		name  string
		codes string
		rates string
	}{
		{name: "non-json bodies", codes: "<html>", rates: "{"},
		{name: "codes missing supported_codes", codes: `{"result":"success"}`, rates: validRatesBody},
		{name: "codes entry too short", codes: `{"result":"success","supported_codes":[["USD"]]}`, rates: validRatesBody},
		{name: "rates missing conversion_rates", codes: validCodesBody, rates: `{"result":"success","base_code":"USD"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := backend(t,
				respond(http.StatusOK, tc.codes),
				respond(http.StatusOK, tc.rates),
			)
			s := NewSession(srv.Client(), srv.URL)

			require.Equal(t, domain.StatusFallback, s.Refresh(context.Background()))
		})
	}
}

func TestSession_TransportErrorResetsBothTables(t *testing.T) {
	// /codes answers with a perfectly valid catalog while /rates drops the
	// connection. The transport-level failure still resets both tables.
	srv := backend(t,
		respond(http.StatusOK, validCodesBody),
		dropConnection,
	)
	s := NewSession(srv.Client(), srv.URL)

	status := s.Refresh(context.Background())

	catalog, rates, _ := s.Snapshot()
	require.Equal(t, domain.StatusFallback, status)
	require.Equal(t, BuiltinCatalog(), catalog)
	require.NotContains(t, catalog, "KRW")
	require.Equal(t, DeriveFallbackRates("USD"), rates)
}

func TestSession_TrailingSlashStripped(t *testing.T) {
	var codesPath, ratesBase string
	srv := backend(t,
		func(w http.ResponseWriter, r *http.Request) {
			codesPath = r.URL.Path
			respond(http.StatusOK, validCodesBody)(w, r)
		},
		func(w http.ResponseWriter, r *http.Request) {
			ratesBase = r.URL.Query().Get("base")
			respond(http.StatusOK, validRatesBody)(w, r)
		},
	)
	s := NewSession(srv.Client(), srv.URL+"/")

	require.Equal(t, domain.StatusLive, s.Refresh(context.Background()))
	require.Equal(t, "/codes", codesPath)
	require.Equal(t, "USD", ratesBase)
}

func TestSession_SetBackendURLSwitchesToFallbackOnly(t *testing.T) {
	srv := backend(t,
		respond(http.StatusOK, validCodesBody),
		respond(http.StatusOK, validRatesBody),
	)
	s := NewSession(srv.Client(), srv.URL)
	require.Equal(t, domain.StatusLive, s.Refresh(context.Background()))

	s.SetBackendURL("")
	require.Equal(t, domain.StatusFallback, s.Refresh(context.Background()))
	_, rates, _ := s.Snapshot()
	require.Equal(t, DeriveFallbackRates("USD"), rates)
}
