package main

import (
	"fmt"
	"os"

	"github.com/emmalilie/scouting-strategy-yr2526/internal/extract"
)

// Runs the extraction chain against a saved roster page so a new site's
// markup can be checked without hitting the network.
//
//	go run scripts/preview-extract.go page.html https://uclabruins.com
func main() {
	if len(os.Args) < 3 {
		fmt.Fprintf(os.Stderr, "usage: %s <roster.html> <base-url>\n", os.Args[0])
		os.Exit(1)
	}

	html, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading page: %v\n", err)
		os.Exit(1)
	}

	chain := extract.NewChain(nil)
	players, strategy := chain.Extract(html, os.Args[2])

	fmt.Printf("strategy: %s, players: %d\n\n", strategy, len(players))
	for _, p := range players {
		fmt.Printf("  %-28s %-8s %-24s %s\n", p.Name, p.Year, p.Hometown, p.ProfileURL)
	}
}
