// Command simulate runs a deck simulation from the command line, without
// the WebSocket server. It reads the same JSON run request the server
// accepts and prints a per-turn summary.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/manacurve/manasim/internal/montecarlo"
	"github.com/manacurve/manasim/internal/server"
	"github.com/manacurve/manasim/internal/sim/mana"
)

func main() {
	var (
		requestPath = flag.String("request", "", "path to a JSON run request (required)")
		iterations  = flag.Int("iterations", 0, "override iteration count")
		seed        = flag.Int64("seed", 0, "override random seed")
		jsonOut     = flag.Bool("json", false, "print full results as JSON instead of a summary")
	)
	flag.Parse()

	if *requestPath == "" {
		fmt.Fprintln(os.Stderr, "usage: simulate -request deck.json [-iterations N] [-seed S] [-json]")
		os.Exit(2)
	}

	data, err := os.ReadFile(*requestPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read request: %v\n", err)
		os.Exit(1)
	}

	var req server.RunRequest
	if err := json.Unmarshal(data, &req); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to parse request: %v\n", err)
		os.Exit(1)
	}
	if *iterations > 0 {
		req.Config.Iterations = *iterations
	}
	if *seed != 0 {
		req.Config.Seed = *seed
	}

	cfg, err := req.Config.ToConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}
	dk, err := req.Deck.ToDeck()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid deck: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Simulating %q: %d cards, %d iterations, %d turns\n",
		dk.Name, dk.Size(), cfg.Iterations, cfg.Turns)

	started := time.Now()
	lastPct := -1
	progress := func(completed, total int) {
		pct := completed * 100 / total
		if pct/10 > lastPct/10 {
			fmt.Printf("  %d%% (%d/%d)\n", pct, completed, total)
			lastPct = pct
		}
	}

	driver := montecarlo.NewDriver(zap.NewNop())
	results, err := driver.Run(cfg, dk, progress)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Simulation failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Done in %s\n\n", time.Since(started).Round(time.Millisecond))

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode results: %v\n", err)
			os.Exit(1)
		}
		return
	}

	printSummary(results)
}

func printSummary(res *montecarlo.SimulationResults) {
	fmt.Printf("Turn  Lands  Untapped  Mana   Drawn\n")
	for i := 0; i < res.Turns; i++ {
		fmt.Printf("%4d  %5.2f  %8.2f  %5.2f  %5.2f\n",
			i+1,
			res.Lands.Mean[i],
			res.UntappedLands.Mean[i],
			res.ManaTotal.Mean[i],
			res.CardsDrawn.Mean[i],
		)
	}

	colors := make([]mana.Color, 0, len(res.ManaByColor))
	for c := range res.ManaByColor {
		colors = append(colors, c)
	}
	sort.Slice(colors, func(i, j int) bool { return colors[i] < colors[j] })
	fmt.Printf("\nMana by color (final turn):")
	for _, c := range colors {
		series := res.ManaByColor[c]
		if series.Mean[res.Turns-1] > 0 {
			fmt.Printf("  %s=%.2f", c, series.Mean[res.Turns-1])
		}
	}
	fmt.Println()

	if len(res.KeyCards) > 0 {
		fmt.Printf("\nKey card playability (%% of games castable):\n")
		names := make([]string, 0, len(res.KeyCards))
		for name := range res.KeyCards {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			play := res.KeyCards[name]
			fmt.Printf("  %s:", name)
			for i := 0; i < res.Turns; i++ {
				fmt.Printf(" T%d=%.0f%%", i+1, play.Sustained[i])
			}
			fmt.Println()
		}
	}

	if res.Mulligans > 0 {
		fmt.Printf("\nMulligans: %d across %d hands kept\n", res.Mulligans, res.HandsKept)
	}
}
