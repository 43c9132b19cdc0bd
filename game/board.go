package game

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidState signals a snapshot that violates the board invariants:
// a camel appearing more than once, a camel missing from the track, or a
// dice bag referencing a camel that is not on the board. It indicates a
// caller bug and is not recovered from.
var ErrInvalidState = errors.New("invalid board state")

// Board holds the camels on the track. Each cell keeps its stack in
// bottom-to-top order, so the topmost camel of a cell is last in its slice.
// Boards are cheap to clone; every simulation trial mutates its own copy.
type Board struct {
	cells  [][]Camel
	finish int // index of the finish cell; reaching it ends the leg
}

// NewBoard returns an empty board whose finish cell sits at trackLength.
func NewBoard(trackLength int) *Board {
	if trackLength <= 0 {
		panic("track length must be positive")
	}
	return &Board{
		cells:  make([][]Camel, trackLength+1),
		finish: trackLength,
	}
}

// Finish returns the index of the finish cell.
func (b *Board) Finish() int { return b.finish }

// Place puts a camel on top of the stack at the given cell. It is used to
// build the starting snapshot; movement during a leg goes through MoveStack.
func (b *Board) Place(c Camel, cell int) {
	if cell < 0 || cell >= len(b.cells) {
		panic(fmt.Sprintf("cell %d out of bounds", cell))
	}
	b.cells[cell] = append(b.cells[cell], c)
}

// Clone returns a deep, independent copy of the board.
func (b *Board) Clone() *Board {
	cells := make([][]Camel, len(b.cells))
	for i, stack := range b.cells {
		if len(stack) == 0 {
			continue
		}
		cells[i] = append([]Camel(nil), stack...)
	}
	return &Board{cells: cells, finish: b.finish}
}

// find returns the cell index and stack index of a camel.
func (b *Board) find(c Camel) (cell int, height int, ok bool) {
	for i, stack := range b.cells {
		for j, camel := range stack {
			if camel == c {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

// Contains reports whether the camel is somewhere on the track.
func (b *Board) Contains(c Camel) bool {
	_, _, ok := b.find(c)
	return ok
}

// MoveStack moves the camel, together with every camel stacked above it,
// forward by steps. The moving group lands on top of whatever already
// occupies the target cell with its internal order preserved; camels below
// the moved camel stay at the origin. The target is clamped to the finish
// cell. MoveStack reports whether the move reached the finish boundary,
// which ends the leg regardless of the bag.
func (b *Board) MoveStack(c Camel, steps int) bool {
	cell, height, ok := b.find(c)
	if !ok {
		panic(fmt.Sprintf("camel %s is not on the board", c))
	}
	target := cell + steps
	finished := target >= b.finish
	if target > b.finish {
		target = b.finish
	}
	moving := b.cells[cell][height:]
	b.cells[cell] = b.cells[cell][:height]
	b.cells[target] = append(b.cells[target], moving...)
	return finished
}

// Ranking returns the camels in race order: furthest cell first, and within
// a cell from the top of the stack down.
func (b *Board) Ranking() []Camel {
	var order []Camel
	for cell := len(b.cells) - 1; cell >= 0; cell-- {
		stack := b.cells[cell]
		for i := len(stack) - 1; i >= 0; i-- {
			order = append(order, stack[i])
		}
	}
	return order
}

// Leader returns the camel currently in first place, or false on an empty
// board.
func (b *Board) Leader() (Camel, bool) {
	for cell := len(b.cells) - 1; cell >= 0; cell-- {
		if stack := b.cells[cell]; len(stack) > 0 {
			return stack[len(stack)-1], true
		}
	}
	return "", false
}

// Camels returns every camel on the board, scanning cells from start to
// finish and stacks bottom-up.
func (b *Board) Camels() []Camel {
	var camels []Camel
	for _, stack := range b.cells {
		camels = append(camels, stack...)
	}
	return camels
}

// Validate checks that no camel occupies more than one stack position and
// that the board is not empty.
func (b *Board) Validate() error {
	seen := make(map[Camel]bool)
	for _, stack := range b.cells {
		for _, c := range stack {
			if seen[c] {
				return fmt.Errorf("%w: camel %s appears more than once", ErrInvalidState, c)
			}
			seen[c] = true
		}
	}
	if len(seen) == 0 {
		return fmt.Errorf("%w: no camels on the board", ErrInvalidState)
	}
	return nil
}

// String renders the occupied cells with each stack bottom-to-top.
func (b *Board) String() string {
	var sb strings.Builder
	for i, stack := range b.cells {
		if len(stack) == 0 {
			continue
		}
		names := make([]string, len(stack))
		for j, c := range stack {
			names[j] = string(c)
		}
		if sb.Len() > 0 {
			sb.WriteString(" ")
		}
		fmt.Fprintf(&sb, "[%d: %s]", i, strings.Join(names, " "))
	}
	return sb.String()
}
