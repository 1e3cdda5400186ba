package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"rateproxy/internal/adapters/upstream"
	"rateproxy/internal/api"
	"rateproxy/internal/config"
	httpserver "rateproxy/internal/platform/http"
	"rateproxy/internal/proxy/handler"
)

// Run wires the proxy components and blocks until shutdown.
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}

	// Logger
	logrus.SetOutput(os.Stdout)
	if parsedLvl, parseErr := logrus.ParseLevel(appCfg.Logging.Level); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
	logrus.Info("✅ Config initialization successful")

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Base HTTP client (configurable timeout)
	httpTimeout := time.Duration(appCfg.HTTPClient.TimeoutSeconds) * time.Second
	if httpTimeout <= 0 {
		httpTimeout = 10 * time.Second
	}
	baseHTTPClient := &http.Client{Timeout: httpTimeout}

	// A missing key is not fatal: /health stays up and the data endpoints
	// answer 500 without making outbound calls.
	if appCfg.ExchangeRateAPI.APIKey == "" {
		logrus.Warn("No exchange rate api key configured, data endpoints will answer with errors")
	}
	upstreamClient := upstream.NewClient(
		baseHTTPClient,
		appCfg.ExchangeRateAPI.BaseURL,
		appCfg.ExchangeRateAPI.APIKey,
	)

	proxyHandler := handler.NewHandler(upstreamClient)
	router := api.NewRouter(proxyHandler, appCfg.CORS.Origins())

	logrus.Info("Starting http server")
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		stop()
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}
