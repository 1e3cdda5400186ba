package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"rateproxy/internal/rate"
)

// convert fetches a catalog and rate table from a rate proxy (or falls back
// to the built-in tables) and converts an amount between two currencies.
func main() {
	backend := pflag.String("backend", "", "rate proxy base URL (empty runs offline on built-in tables)")
	from := pflag.String("from", "USD", "source currency code")
	to := pflag.String("to", "EUR", "target currency code")
	amount := pflag.Float64("amount", 1, "amount to convert, expressed in the edited side")
	editTarget := pflag.Bool("edit-target", false, "treat --amount as the target amount and compute the source")
	timeout := pflag.Duration("timeout", 10*time.Second, "fetch timeout")
	pflag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	session := rate.NewSession(&http.Client{Timeout: *timeout}, *backend)
	session.Refresh(ctx)
	catalog, table, status := session.Snapshot()

	conv := rate.Conversion{
		Source: strings.ToUpper(*from),
		Target: strings.ToUpper(*to),
	}
	if *editTarget {
		conv.Edited = rate.SideTarget
	}

	source, target := conv.Amounts(table, *amount)
	fmt.Printf("%s (%s) -> %s (%s)\n",
		conv.Source, nameOf(catalog, conv.Source),
		conv.Target, nameOf(catalog, conv.Target))
	fmt.Printf("rate:   %.6f\n", conv.Rate(table))
	fmt.Printf("amount: %.4f %s = %.4f %s\n", source, conv.Source, target, conv.Target)
	fmt.Printf("status: %s\n", status)
}

func nameOf(catalog map[string]string, code string) string {
	if name, ok := catalog[code]; ok {
		return name
	}
	return "unknown"
}
