package ev

import (
	"fmt"

	"camelup/game"
)

// Kind distinguishes the player actions the engine can price.
type Kind int

const (
	// PyramidTicket rolls the pyramid for a guaranteed coin.
	PyramidTicket Kind = iota
	// BettingTicket backs a camel to finish the leg in first place.
	BettingTicket
)

// PyramidPayout is the fixed coin value of the pyramid ticket.
const PyramidPayout = 1

// Action is one legal choice on a player's turn. Actions are value types
// and usable as map keys.
type Action struct {
	Kind  Kind
	Camel game.Camel // set for BettingTicket only
}

// TakePyramid returns the pyramid ticket action.
func TakePyramid() Action { return Action{Kind: PyramidTicket} }

// BetOn returns the betting ticket action for a camel.
func BetOn(c game.Camel) Action { return Action{Kind: BettingTicket, Camel: c} }

func (a Action) String() string {
	switch a.Kind {
	case PyramidTicket:
		return "pyramid ticket"
	case BettingTicket:
		return fmt.Sprintf("betting ticket on %s", a.Camel)
	default:
		return "unknown action"
	}
}
