package experiments

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"camelup/ev"
)

func TestGreedyPolicy(t *testing.T) {
	t.Run("picks the highest-value action", func(t *testing.T) {
		values := map[ev.Action]float64{
			ev.TakePyramid():  1.0,
			ev.BetOn("Red"):   3.2,
			ev.BetOn("Blue"):  0.4,
			ev.BetOn("Green"): 2.1,
		}

		got := GreedyPolicy(values, rand.New(rand.NewSource(1)))

		require.Equal(t, ev.BetOn("Red"), got)
	})

	t.Run("breaks ties deterministically", func(t *testing.T) {
		values := map[ev.Action]float64{
			ev.BetOn("Red"):  2.0,
			ev.BetOn("Blue"): 2.0,
		}

		first := GreedyPolicy(values, rand.New(rand.NewSource(1)))
		for i := 0; i < 10; i++ {
			require.Equal(t, first, GreedyPolicy(values, rand.New(rand.NewSource(uint64(i)))),
				"Tie-break must not depend on map iteration order or the rng")
		}
	})
}

func TestRandomPolicy(t *testing.T) {
	t.Run("returns a legal action", func(t *testing.T) {
		values := map[ev.Action]float64{
			ev.TakePyramid(): 1.0,
			ev.BetOn("Red"):  0.7,
		}
		rng := rand.New(rand.NewSource(2))

		for i := 0; i < 20; i++ {
			got := RandomPolicy(values, rng)
			require.Contains(t, values, got)
		}
	})

	t.Run("eventually visits every action", func(t *testing.T) {
		values := map[ev.Action]float64{
			ev.TakePyramid(): 1.0,
			ev.BetOn("Red"):  0.7,
			ev.BetOn("Blue"): 0.2,
		}
		rng := rand.New(rand.NewSource(3))

		seen := make(map[ev.Action]bool)
		for i := 0; i < 200; i++ {
			seen[RandomPolicy(values, rng)] = true
		}

		require.Len(t, seen, len(values), "Uniform choice should cover all actions")
	})
}
