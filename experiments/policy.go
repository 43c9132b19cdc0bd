package experiments

import (
	"sort"

	"golang.org/x/exp/rand"

	"camelup/ev"
)

// Policy picks one action from the engine's EV mapping. Policies are plain
// functions so the comparator stays agnostic to how many exist.
type Policy func(values map[ev.Action]float64, rng *rand.Rand) ev.Action

// RandomPolicy picks a legal action uniformly at random.
func RandomPolicy(values map[ev.Action]float64, rng *rand.Rand) ev.Action {
	actions := sortedActions(values)
	return actions[rng.Intn(len(actions))]
}

// GreedyPolicy picks the action with the highest estimated value, breaking
// ties by action name so repeated runs stay reproducible.
func GreedyPolicy(values map[ev.Action]float64, rng *rand.Rand) ev.Action {
	actions := sortedActions(values)
	best := actions[0]
	for _, a := range actions[1:] {
		if values[a] > values[best] {
			best = a
		}
	}
	return best
}

// sortedActions fixes a deterministic order: map iteration order must not
// leak into policy choices.
func sortedActions(values map[ev.Action]float64) []ev.Action {
	actions := make([]ev.Action, 0, len(values))
	for a := range values {
		actions = append(actions, a)
	}
	sort.Slice(actions, func(i, j int) bool {
		return actions[i].String() < actions[j].String()
	})
	return actions
}
