package game

import "golang.org/x/exp/rand"

// Movement die faces. Every face is equally likely, independent of which
// camel was drawn.
const (
	MinDieFace = 1
	MaxDieFace = 3
)

// RollDie samples one movement die face.
func RollDie(rng *rand.Rand) int {
	return MinDieFace + rng.Intn(MaxDieFace-MinDieFace+1)
}

// DiceBag holds the camels whose movement die has not yet been drawn this
// leg. The bag shrinks by exactly one camel per draw and the leg is over at
// the latest when it empties.
type DiceBag struct {
	camels []Camel
}

// NewDiceBag returns a bag containing the given camels.
func NewDiceBag(camels ...Camel) *DiceBag {
	return &DiceBag{camels: append([]Camel(nil), camels...)}
}

// Len returns the number of camels still in the bag.
func (d *DiceBag) Len() int { return len(d.camels) }

// Empty reports whether every die has been drawn.
func (d *DiceBag) Empty() bool { return len(d.camels) == 0 }

// Remaining returns a copy of the camels still in the bag.
func (d *DiceBag) Remaining() []Camel {
	return append([]Camel(nil), d.camels...)
}

// Clone returns an independent copy of the bag.
func (d *DiceBag) Clone() *DiceBag {
	return NewDiceBag(d.camels...)
}

// Draw removes and returns a uniformly chosen camel. Drawing from an empty
// bag is an internal logic error: callers check Empty first.
func (d *DiceBag) Draw(rng *rand.Rand) Camel {
	if len(d.camels) == 0 {
		panic("draw from empty dice bag")
	}
	i := rng.Intn(len(d.camels))
	c := d.camels[i]
	d.camels = append(d.camels[:i], d.camels[i+1:]...)
	return c
}

// Remove takes a specific camel out of the bag and reports whether it was
// present. Used by the exact enumerator, which walks draws in a fixed order.
func (d *DiceBag) Remove(c Camel) bool {
	for i, camel := range d.camels {
		if camel == c {
			d.camels = append(d.camels[:i], d.camels[i+1:]...)
			return true
		}
	}
	return false
}
