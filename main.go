package main

import (
	"flag"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"camelup/ev"
	"camelup/experiments"
	"camelup/experiments/metrics"
	"camelup/game"
)

func main() {
	trials := flag.Int("trials", 10000, "Monte Carlo trials per estimate")
	legs := flag.Int("legs", 200, "Trial legs for the strategy comparison")
	goroutines := flag.Int("goroutines", 1, "Worker goroutines for parallel trials")
	budget := flag.Duration("budget", 0, "Wall-clock budget per estimate (overrides -trials)")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "Random seed")
	outDir := flag.String("out", "", "Directory for CSV records (disabled when empty)")
	verbose := flag.Bool("v", false, "Debug logging")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	rng := rand.New(rand.NewSource(*seed))
	options := []ev.Option{
		ev.WithTrials(*trials),
		ev.WithGoroutines(*goroutines),
		ev.WithDuration(*budget),
	}
	engine := ev.NewEngine(rng, options...)

	board, bag := experiments.RandomStart(game.StandardCamels, game.StandardTrackLength, rng)
	printLegAnalysis(engine, board, bag, *trials)

	start := func(rng *rand.Rand) (*game.Board, *game.DiceBag) {
		return experiments.RandomStart(game.StandardCamels, game.StandardTrackLength, rng)
	}
	comparator := experiments.NewComparator(engine, *legs, start, rng)
	report, results, err := comparator.Run()
	if err != nil {
		log.Fatal().Err(err).Msg("strategy comparison failed")
	}
	printReport(report)

	if *outDir != "" {
		writeRecords(*outDir, report, results)
	}
}

// printLegAnalysis estimates and prints win probabilities and action values
// for one sample starting snapshot.
func printLegAnalysis(engine *ev.Engine, board *game.Board, bag *game.DiceBag, trials int) {
	p := message.NewPrinter(language.English)
	p.Printf("Sample leg (%d trials per estimate):\n", trials)
	p.Printf("  %s\n", board)

	values, err := engine.ActionValues(board, bag, ev.NewTicketBook())
	if err != nil {
		log.Fatal().Err(err).Msg("leg analysis failed")
	}

	actions := make([]ev.Action, 0, len(values))
	for a := range values {
		actions = append(actions, a)
	}
	sort.Slice(actions, func(i, j int) bool {
		if values[actions[i]] != values[actions[j]] {
			return values[actions[i]] > values[actions[j]]
		}
		return actions[i].String() < actions[j].String()
	})

	p.Printf("Actions by expected value:\n")
	for _, a := range actions {
		p.Printf("  %-28s %.2f coins\n", a, values[a])
	}
}

func printReport(report experiments.Report) {
	p := message.NewPrinter(language.English)
	p.Printf("Strategy comparison over %d legs:\n", report.Legs)
	p.Printf("  random policy mean payoff:  %.3f coins\n", report.RandomMean)
	p.Printf("  optimal policy mean payoff: %.3f coins\n", report.OptimalMean)
	p.Printf("  skill factor:               %.1f%%\n", report.SkillFactor)

	camels := make([]game.Camel, 0, len(report.WinProbabilities))
	for c := range report.WinProbabilities {
		camels = append(camels, c)
	}
	sort.Slice(camels, func(i, j int) bool {
		return report.WinProbabilities[camels[i]] > report.WinProbabilities[camels[j]]
	})
	p.Printf("Mean first-place probability per camel:\n")
	for _, c := range camels {
		p.Printf("  %-8s %.3f\n", c, report.WinProbabilities[c])
	}
}

func writeRecords(dir string, report experiments.Report, results []experiments.LegResult) {
	writer, err := metrics.NewWriter(dir, "strategy_comparison")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create metrics writer")
	}

	records := make([]metrics.LegRecord, len(results))
	for i, r := range results {
		records[i] = metrics.LegRecord{
			Leg:    r.Leg,
			Policy: r.Policy,
			Action: r.Action.String(),
			Payout: r.Payout,
		}
	}
	if err := writer.WriteLegRecords(records); err != nil {
		log.Fatal().Err(err).Msg("failed to write leg records")
	}
	if err := writer.WriteSummary(metrics.SummaryRecord{
		Legs:        report.Legs,
		RandomMean:  report.RandomMean,
		OptimalMean: report.OptimalMean,
		SkillFactor: report.SkillFactor,
	}); err != nil {
		log.Fatal().Err(err).Msg("failed to write summary")
	}
	log.Info().Msgf("stored records in %s", writer.BaseDir())
}
