package ev

import (
	"errors"
	"fmt"

	"camelup/game"
)

// LegPayouts maps ticket claim order (first claimed ticket first) to the
// coins paid if the backed camel finishes the leg in first place. A camel
// that does not finish first pays nothing regardless of position.
var LegPayouts = [...]int{5, 3, 2, 1}

// ErrTicketsExhausted signals a bet on a camel whose four tickets are all
// claimed. It marks the action as disallowed, not a fatal condition.
var ErrTicketsExhausted = errors.New("no betting tickets left")

// TicketBook tracks how many betting tickets have been claimed per camel
// during the current leg. The claim position, not the camel's eventual
// finish position, decides the payout.
type TicketBook struct {
	claimed map[game.Camel]int
}

// NewTicketBook returns a book with all tickets still available.
func NewTicketBook() *TicketBook {
	return &TicketBook{claimed: make(map[game.Camel]int)}
}

// Claimed returns how many tickets have been taken on the camel.
func (t *TicketBook) Claimed(c game.Camel) int { return t.claimed[c] }

// NextPayout returns the payout of the next available ticket on the camel,
// or false when all four tickets are gone.
func (t *TicketBook) NextPayout(c game.Camel) (int, bool) {
	n := t.claimed[c]
	if n >= len(LegPayouts) {
		return 0, false
	}
	return LegPayouts[n], true
}

// Take claims the next ticket on the camel and returns its 1-based claim
// position. Taking a fifth ticket fails with ErrTicketsExhausted.
func (t *TicketBook) Take(c game.Camel) (int, error) {
	n := t.claimed[c]
	if n >= len(LegPayouts) {
		return 0, fmt.Errorf("%w for camel %s", ErrTicketsExhausted, c)
	}
	t.claimed[c] = n + 1
	return n + 1, nil
}

// Clone returns an independent copy of the book.
func (t *TicketBook) Clone() *TicketBook {
	claimed := make(map[game.Camel]int, len(t.claimed))
	for c, n := range t.claimed {
		claimed[c] = n
	}
	return &TicketBook{claimed: claimed}
}
