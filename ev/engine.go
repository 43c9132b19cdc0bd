package ev

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"camelup/game"
)

const defaultTrials = 5000

// ErrNoTrials signals that no simulation trials produced an estimate, either
// because the requested trial count was degenerate or because a wall-clock
// budget elapsed before the first trial completed.
var ErrNoTrials = errors.New("no simulation trials produced an estimate")

type Option func(e *Engine)

// WithTrials sets the number of independent trials per estimate.
func WithTrials(trials int) Option {
	return func(e *Engine) {
		e.trials = trials
	}
}

// WithDuration replaces the fixed trial count with a wall-clock budget:
// workers run trials until the budget elapses and whatever tallies have
// accumulated form the estimate.
func WithDuration(duration time.Duration) Option {
	return func(e *Engine) {
		if duration > 0 {
			e.duration = duration
		}
	}
}

// WithGoroutines sets the number of worker goroutines. Trials are fully
// independent, so workers only merge additive tallies. One goroutine is the
// sequential reference path.
func WithGoroutines(goroutines int) Option {
	return func(e *Engine) {
		if goroutines > 0 {
			e.goroutines = goroutines
		}
	}
}

// Engine estimates leg outcomes by repeated random playouts from a fixed
// starting snapshot. Every trial runs on its own clone of the board and bag,
// so trials never interfere with each other.
type Engine struct {
	goroutines int
	trials     int
	duration   time.Duration
	rng        *rand.Rand
}

// NewEngine returns an engine drawing all of its randomness from rng.
// Worker goroutines derive their own streams from it, so a fixed seed with
// one goroutine reproduces estimates exactly.
func NewEngine(rng *rand.Rand, options ...Option) *Engine {
	e := &Engine{
		goroutines: 1,
		trials:     defaultTrials,
		rng:        rng,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// WinProbabilities estimates the chance of each camel on the board to finish
// the current leg in first place. The estimates sum to 1 and converge to the
// true probabilities as the trial count grows.
func (e *Engine) WinProbabilities(b *game.Board, bag *game.DiceBag) (map[game.Camel]float64, error) {
	if err := validateSnapshot(b, bag); err != nil {
		return nil, err
	}
	var wins map[game.Camel]int
	var total int
	switch {
	case e.duration > 0:
		wins, total = e.countdown(b, bag)
	case e.trials <= 0:
		return nil, fmt.Errorf("%w: %d trials requested", ErrNoTrials, e.trials)
	default:
		wins, total = e.run(b, bag)
	}
	if total == 0 {
		return nil, fmt.Errorf("%w: budget elapsed before the first trial", ErrNoTrials)
	}

	probs := make(map[game.Camel]float64)
	for _, c := range b.Camels() {
		probs[c] = float64(wins[c]) / float64(total)
	}
	return probs, nil
}

// ActionValues prices every currently legal action. The pyramid ticket is a
// guaranteed coin; a betting ticket pays its claim-order payout only if the
// backed camel finishes first. Camels with all four tickets claimed are not
// legal bets and do not appear in the result.
func (e *Engine) ActionValues(b *game.Board, bag *game.DiceBag, book *TicketBook) (map[Action]float64, error) {
	probs, err := e.WinProbabilities(b, bag)
	if err != nil {
		return nil, err
	}
	return ValuesFromProbabilities(probs, book), nil
}

// ValuesFromProbabilities prices the legal actions against already-estimated
// win probabilities.
func ValuesFromProbabilities(probs map[game.Camel]float64, book *TicketBook) map[Action]float64 {
	values := map[Action]float64{TakePyramid(): float64(PyramidPayout)}
	for camel, p := range probs {
		if payout, ok := book.NextPayout(camel); ok {
			values[BetOn(camel)] = float64(payout) * p
		}
	}
	return values
}

// run executes a fixed number of trials, fanning out over workers when more
// than one goroutine is configured.
func (e *Engine) run(b *game.Board, bag *game.DiceBag) (map[game.Camel]int, int) {
	if e.goroutines <= 1 {
		wins := make(map[game.Camel]int)
		for i := 0; i < e.trials; i++ {
			wins[trial(b, bag, e.rng)]++
		}
		return wins, e.trials
	}

	task := make(chan struct{}, e.trials)
	for i := 0; i < e.trials; i++ {
		task <- struct{}{}
	}
	close(task)

	results := make(chan map[game.Camel]int, e.goroutines)
	var wg sync.WaitGroup
	for i := 0; i < e.goroutines; i++ {
		worker := rand.New(rand.NewSource(e.rng.Uint64()))
		wg.Add(1)
		go func() {
			defer wg.Done()
			wins := make(map[game.Camel]int)
			for range task {
				wins[trial(b, bag, worker)]++
			}
			results <- wins
		}()
	}
	wg.Wait()
	close(results)

	return merge(results), e.trials
}

// countdown runs trials until the wall-clock budget elapses and keeps
// whatever tallies accumulated. Precision degrades gracefully with a small
// budget instead of failing.
func (e *Engine) countdown(b *game.Board, bag *game.DiceBag) (map[game.Camel]int, int) {
	done := make(chan struct{})
	results := make(chan map[game.Camel]int, e.goroutines)
	var total atomic.Int64

	var wg sync.WaitGroup
	for i := 0; i < e.goroutines; i++ {
		worker := rand.New(rand.NewSource(e.rng.Uint64()))
		wg.Add(1)
		go func() {
			defer wg.Done()
			wins := make(map[game.Camel]int)
			for {
				select {
				case <-done:
					results <- wins
					return
				default:
					wins[trial(b, bag, worker)]++
					total.Add(1)
				}
			}
		}()
	}

	<-time.After(e.duration)
	close(done)
	wg.Wait()
	close(results)

	log.Debug().Msgf("completed %d trials within %s budget", total.Load(), e.duration)

	return merge(results), int(total.Load())
}

// trial plays one full leg on fresh clones and returns the winner.
func trial(b *game.Board, bag *game.DiceBag, rng *rand.Rand) game.Camel {
	ranking := game.SimulateLeg(b.Clone(), bag.Clone(), rng)
	return ranking[0]
}

func merge(results chan map[game.Camel]int) map[game.Camel]int {
	wins := make(map[game.Camel]int)
	for r := range results {
		for c, n := range r {
			wins[c] += n
		}
	}
	return wins
}

// validateSnapshot surfaces caller bugs before any simulation starts: the
// board must hold each camel exactly once and every camel in the bag must be
// on the track.
func validateSnapshot(b *game.Board, bag *game.DiceBag) error {
	if err := b.Validate(); err != nil {
		return err
	}
	for _, c := range bag.Remaining() {
		if !b.Contains(c) {
			return fmt.Errorf("%w: camel %s has a die but is not on the board", game.ErrInvalidState, c)
		}
	}
	return nil
}
