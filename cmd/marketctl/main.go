// Command marketctl queries an office-market dataset file from the terminal.
//
// Usage:
//
//	marketctl view --country "Czech Republic" --city Prague --period "Q1 2024"
//	marketctl trend --city Prague --metric primeRentEurSqmMonth
//	marketctl compare --city Prague --with-country Hungary --with-city Budapest --metric primeYield
//	marketctl validate --file data/mock/market_data.json
package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
