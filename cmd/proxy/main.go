package main

import (
	"github.com/sirupsen/logrus"

	"rateproxy/internal/app"
)

// @title Rate Proxy API
// @version 1.0
// @description Read-only proxy for a third-party exchange-rate provider.
// @BasePath /
func main() {
	if err := app.Run(); err != nil {
		logrus.WithError(err).Fatal("proxy terminated")
	}
}
