package experiments

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"camelup/ev"
	"camelup/game"
)

// StartFunc produces the starting snapshot for one trial leg.
type StartFunc func(rng *rand.Rand) (*game.Board, *game.DiceBag)

// RandomStart deals the standard opening: every camel rolls its die once, in
// a shuffled order, and starts on the rolled cell, stacking on top of any
// camel already there. A full dice bag is returned alongside.
func RandomStart(camels []game.Camel, trackLength int, rng *rand.Rand) (*game.Board, *game.DiceBag) {
	board := game.NewBoard(trackLength)
	order := append([]game.Camel(nil), camels...)
	rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	for _, c := range order {
		board.Place(c, game.RollDie(rng))
	}
	return board, game.NewDiceBag(camels...)
}

// Report aggregates realized payoffs for both policies across all trial
// legs. The skill factor is the percentage improvement of EV-informed play
// over random play; near zero means chance dominates.
type Report struct {
	Legs             int
	RandomMean       float64
	OptimalMean      float64
	SkillFactor      float64
	WinProbabilities map[game.Camel]float64 // averaged over all trial legs
}

// LegResult records one policy's choice and realized payout on one trial leg.
type LegResult struct {
	Leg    int
	Policy string
	Action ev.Action
	Payout int
}

// Comparator measures how much expected-value-informed play beats random
// play over many independently generated legs.
type Comparator struct {
	engine *ev.Engine
	legs   int
	start  StartFunc
	rng    *rand.Rand
}

// NewComparator wires a comparator over the given engine. Every leg starts
// from a fresh snapshot produced by start.
func NewComparator(engine *ev.Engine, legs int, start StartFunc, rng *rand.Rand) *Comparator {
	if legs <= 0 {
		panic("comparator needs at least one trial leg")
	}
	return &Comparator{
		engine: engine,
		legs:   legs,
		start:  start,
		rng:    rng,
	}
}

// Run plays every trial leg under both policies and aggregates the realized
// payoffs. Both policies see the same starting snapshot and the same EV
// mapping; their payoffs come from independent playouts.
func (c *Comparator) Run() (Report, []LegResult, error) {
	var randomTotal, optimalTotal int
	probTotals := make(map[game.Camel]float64)
	results := make([]LegResult, 0, c.legs*2)

	log.Info().Msgf("comparing policies over %d trial legs...", c.legs)

	for leg := 1; leg <= c.legs; leg++ {
		board, bag := c.start(c.rng)
		book := ev.NewTicketBook()

		probs, err := c.engine.WinProbabilities(board, bag)
		if err != nil {
			return Report{}, nil, fmt.Errorf("leg %d: %w", leg, err)
		}
		for camel, p := range probs {
			probTotals[camel] += p
		}
		values := ev.ValuesFromProbabilities(probs, book)

		randomPayout := c.realize(board, bag, book, RandomPolicy(values, c.rng), leg, "random", &results)
		optimalPayout := c.realize(board, bag, book, GreedyPolicy(values, c.rng), leg, "optimal", &results)
		randomTotal += randomPayout
		optimalTotal += optimalPayout
	}

	report := Report{
		Legs:             c.legs,
		RandomMean:       float64(randomTotal) / float64(c.legs),
		OptimalMean:      float64(optimalTotal) / float64(c.legs),
		WinProbabilities: make(map[game.Camel]float64, len(probTotals)),
	}
	for camel, total := range probTotals {
		report.WinProbabilities[camel] = total / float64(c.legs)
	}
	if report.RandomMean != 0 {
		report.SkillFactor = (report.OptimalMean - report.RandomMean) / report.RandomMean * 100
	}

	log.Info().Msgf("compared policies over %d legs: random=%.3f optimal=%.3f skill=%.1f%%",
		c.legs, report.RandomMean, report.OptimalMean, report.SkillFactor)

	return report, results, nil
}

// realize plays the chosen action out against one fresh playout of the leg
// and returns the coins actually won.
func (c *Comparator) realize(board *game.Board, bag *game.DiceBag, book *ev.TicketBook,
	action ev.Action, leg int, policy string, results *[]LegResult) int {
	payout := 0
	switch action.Kind {
	case ev.PyramidTicket:
		payout = ev.PyramidPayout
	case ev.BettingTicket:
		// The chosen action came from the legal set, so a ticket is open.
		ticket, _ := book.NextPayout(action.Camel)
		ranking := game.SimulateLeg(board.Clone(), bag.Clone(), c.rng)
		if ranking[0] == action.Camel {
			payout = ticket
		}
	}
	*results = append(*results, LegResult{
		Leg:    leg,
		Policy: policy,
		Action: action,
		Payout: payout,
	})
	return payout
}
