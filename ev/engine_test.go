package ev

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"camelup/game"
)

func newEngineFixture() (*game.Board, *game.DiceBag) {
	board := game.NewBoard(16)
	board.Place("Red", 1)
	board.Place("Blue", 2)
	board.Place("Green", 2)
	board.Place("Yellow", 3)
	board.Place("Purple", 3)
	return board, game.NewDiceBag(game.StandardCamels...)
}

func TestWinProbabilities(t *testing.T) {
	t.Run("estimates sum to one", func(t *testing.T) {
		board, bag := newEngineFixture()
		engine := NewEngine(rand.New(rand.NewSource(1)), WithTrials(2000))

		probs, err := engine.WinProbabilities(board, bag)

		require.NoError(t, err)
		require.Len(t, probs, len(game.StandardCamels))
		sum := 0.0
		for _, p := range probs {
			sum += p
		}
		require.InDelta(t, 1.0, sum, 1e-9,
			"Each trial has exactly one winner")
	})

	t.Run("converges to the exact enumeration", func(t *testing.T) {
		board := game.NewBoard(16)
		board.Place("A", 3)
		board.Place("B", 5)
		bag := game.NewDiceBag("A", "B")
		engine := NewEngine(rand.New(rand.NewSource(2)), WithTrials(30000))

		probs, err := engine.WinProbabilities(board, bag)

		require.NoError(t, err)
		require.InDelta(t, 17.0/18.0, probs["B"], 0.01,
			"Monte Carlo estimate should approach the enumerated probability")
		require.InDelta(t, 1.0/18.0, probs["A"], 0.01)
	})

	t.Run("parallel trials merge additively", func(t *testing.T) {
		board, bag := newEngineFixture()
		engine := NewEngine(rand.New(rand.NewSource(3)),
			WithTrials(4000), WithGoroutines(8))

		probs, err := engine.WinProbabilities(board, bag)

		require.NoError(t, err)
		sum := 0.0
		for _, p := range probs {
			sum += p
		}
		require.InDelta(t, 1.0, sum, 1e-9)
	})

	t.Run("wall-clock budget yields a partial estimate", func(t *testing.T) {
		board, bag := newEngineFixture()
		engine := NewEngine(rand.New(rand.NewSource(4)),
			WithDuration(20*time.Millisecond), WithGoroutines(2))

		probs, err := engine.WinProbabilities(board, bag)

		require.NoError(t, err)
		sum := 0.0
		for _, p := range probs {
			sum += p
		}
		require.InDelta(t, 1.0, sum, 1e-9)
	})

	t.Run("degenerate trial count is rejected", func(t *testing.T) {
		board, bag := newEngineFixture()
		engine := NewEngine(rand.New(rand.NewSource(5)), WithTrials(0))

		_, err := engine.WinProbabilities(board, bag)

		require.ErrorIs(t, err, ErrNoTrials,
			"Zero trials should not silently divide by zero")
	})

	t.Run("inconsistent snapshot is rejected", func(t *testing.T) {
		board := game.NewBoard(16)
		board.Place("Red", 1)
		bag := game.NewDiceBag("Red", "Blue")
		engine := NewEngine(rand.New(rand.NewSource(6)))

		_, err := engine.WinProbabilities(board, bag)

		require.ErrorIs(t, err, game.ErrInvalidState)
	})
}

func TestActionValues(t *testing.T) {
	t.Run("pyramid ticket is always worth exactly one coin", func(t *testing.T) {
		board, bag := newEngineFixture()
		engine := NewEngine(rand.New(rand.NewSource(7)), WithTrials(500))

		values, err := engine.ActionValues(board, bag, NewTicketBook())

		require.NoError(t, err)
		require.Equal(t, 1.0, values[TakePyramid()],
			"The pyramid payout is guaranteed, not probabilistic")
	})

	t.Run("bet values never exceed their payout", func(t *testing.T) {
		board, bag := newEngineFixture()
		engine := NewEngine(rand.New(rand.NewSource(8)), WithTrials(2000))
		book := NewTicketBook()

		values, err := engine.ActionValues(board, bag, book)

		require.NoError(t, err)
		for action, value := range values {
			if action.Kind != BettingTicket {
				continue
			}
			payout, ok := book.NextPayout(action.Camel)
			require.True(t, ok)
			require.LessOrEqual(t, value, float64(payout),
				"EV cannot exceed the maximum possible payout")
		}
	})

	t.Run("exhausted camels are excluded, not priced at zero", func(t *testing.T) {
		board, bag := newEngineFixture()
		engine := NewEngine(rand.New(rand.NewSource(9)), WithTrials(500))
		book := NewTicketBook()
		for i := 0; i < 4; i++ {
			_, err := book.Take("Red")
			require.NoError(t, err)
		}

		values, err := engine.ActionValues(board, bag, book)

		require.NoError(t, err)
		require.NotContains(t, values, BetOn("Red"),
			"A fifth ticket is an illegal action, not a zero-value one")
		require.Contains(t, values, BetOn("Blue"))
	})
}

func TestValuesFromProbabilities(t *testing.T) {
	t.Run("bet value scales payout by win probability", func(t *testing.T) {
		probs := map[game.Camel]float64{"Red": 0.5, "Blue": 0.5}
		book := NewTicketBook()
		_, err := book.Take("Blue")
		require.NoError(t, err)

		values := ValuesFromProbabilities(probs, book)

		require.InDelta(t, 2.5, values[BetOn("Red")], 1e-9, "First ticket pays 5")
		require.InDelta(t, 1.5, values[BetOn("Blue")], 1e-9, "Second ticket pays 3")
	})
}
