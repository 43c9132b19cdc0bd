package game

import "golang.org/x/exp/rand"

// MoveOutcome records one resolved pyramid roll: which camel was drawn and
// how far its group moved.
type MoveOutcome struct {
	Camel Camel
	Steps int
}

// Step draws one camel from the bag, rolls its die and moves it together
// with every camel stacked above it. It reports whether the move reached the
// finish boundary, which ends the leg even if dice remain in the bag.
func Step(b *Board, bag *DiceBag, rng *rand.Rand) (MoveOutcome, bool) {
	camel := bag.Draw(rng)
	steps := RollDie(rng)
	finished := b.MoveStack(camel, steps)
	return MoveOutcome{Camel: camel, Steps: steps}, finished
}

// SimulateLeg plays the leg out on the given board and bag, mutating both,
// until the bag is empty or a camel reaches the finish. It returns the final
// ranking, first place first. The result is a pure function of the inputs
// and the injected random source: the same seed reproduces the same leg.
func SimulateLeg(b *Board, bag *DiceBag, rng *rand.Rand) []Camel {
	for !bag.Empty() {
		if _, finished := Step(b, bag, rng); finished {
			break
		}
	}
	return b.Ranking()
}
