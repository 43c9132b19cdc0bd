package ev

import "camelup/game"

// Enumerate computes exact first-place probabilities by walking every draw
// order and die face of the remaining bag. The cost grows as |bag|! * 3^|bag|,
// so it is meant for small bags and as a validation oracle for the Monte
// Carlo engine.
func Enumerate(b *game.Board, bag *game.DiceBag) (map[game.Camel]float64, error) {
	if err := validateSnapshot(b, bag); err != nil {
		return nil, err
	}
	probs := make(map[game.Camel]float64)
	for _, c := range b.Camels() {
		probs[c] = 0
	}
	enumerate(b, bag, 1.0, probs)
	return probs, nil
}

func enumerate(b *game.Board, bag *game.DiceBag, weight float64, probs map[game.Camel]float64) {
	if bag.Empty() {
		winner, _ := b.Leader()
		probs[winner] += weight
		return
	}

	remaining := bag.Remaining()
	faces := game.MaxDieFace - game.MinDieFace + 1
	branch := weight / float64(len(remaining)*faces)

	for _, camel := range remaining {
		for steps := game.MinDieFace; steps <= game.MaxDieFace; steps++ {
			next := b.Clone()
			if next.MoveStack(camel, steps) {
				// Finish crossed: the leg ends with dice still in the bag.
				winner, _ := next.Leader()
				probs[winner] += branch
				continue
			}
			nextBag := bag.Clone()
			nextBag.Remove(camel)
			enumerate(next, nextBag, branch, probs)
		}
	}
}
