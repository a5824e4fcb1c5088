// Package options declares the per-player generation options: each one a
// bounded integer range or a toggle with a default. Resolved Options are
// read-only for the rest of a generation pass.
package options

import (
	"fmt"
	"strconv"

	"nonogram.ap/internal/protocol"
)

type Range struct {
	Key         string
	DisplayName string
	Doc         string
	Min         int
	Max         int
	Default     int
}

func (r Range) Contains(v int) bool { return v >= r.Min && v <= r.Max }

type Toggle struct {
	Key         string
	DisplayName string
	Doc         string
	Default     bool
}

var (
	StartingLives = Range{
		Key: "starting_lives", DisplayName: "Starting Lives",
		Doc: "Number of lives you start each puzzle with.",
		Min: 1, Max: 10, Default: 3,
	}
	StartingCoins = Range{
		Key: "starting_coins", DisplayName: "Starting Coins",
		Doc: "Number of coins you start with.",
		Min: 0, Max: 50, Default: 5,
	}
	StartingHints = Range{
		Key: "starting_hints", DisplayName: "Starting Hints",
		Doc: "Number of row/column hints revealed at the start of each puzzle.",
		Min: 0, Max: 5, Default: 1,
	}
	CoinsPerBundle = Range{
		Key: "coins_per_bundle", DisplayName: "Coins Per Bundle",
		Doc: "Number of coins received from each Coin Bundle item.",
		Min: 1, Max: 20, Default: 5,
	}
	ExtraLivesInPool = Range{
		Key: "extra_lives_in_pool", DisplayName: "Extra Lives in Pool",
		Doc: "Number of Extra Life items in the item pool.",
		Min: 0, Max: 10, Default: 5,
	}
	HintRevealsInPool = Range{
		Key: "hint_reveals_in_pool", DisplayName: "Hint Reveals in Pool",
		Doc: "Number of Hint Reveal items in the item pool.",
		Min: 0, Max: 20, Default: 10,
	}
	CoinBundlesInPool = Range{
		Key: "coin_bundles_in_pool", DisplayName: "Coin Bundles in Pool",
		Doc: "Number of Coin Bundle items in the item pool.",
		Min: 0, Max: 30, Default: 15,
	}
	CellSolvesInPool = Range{
		Key: "cell_solves_in_pool", DisplayName: "Random Cell Solves in Pool",
		Doc: "Number of Random Cell Solve items in the item pool.",
		Min: 0, Max: 10, Default: 3,
	}
	// Capped at the number of per-count puzzle locations so every value
	// names an existing milestone.
	GoalPuzzles = Range{
		Key: "goal_puzzles", DisplayName: "Goal Puzzles",
		Doc: "Number of puzzles required to complete the goal.",
		Min: 1, Max: 64, Default: 64,
	}

	DeathLink = Toggle{
		Key: "death_link", DisplayName: "Death Link",
		Doc: "When you lose all lives, everyone with DeathLink enabled dies. When you receive a DeathLink, you lose a life.",
	}
)

// Ranges lists every integer option in declaration order.
var Ranges = []Range{
	StartingLives,
	StartingCoins,
	StartingHints,
	CoinsPerBundle,
	ExtraLivesInPool,
	HintRevealsInPool,
	CoinBundlesInPool,
	CellSolvesInPool,
	GoalPuzzles,
}

var Toggles = []Toggle{DeathLink}

// Options is one player's resolved option set.
type Options struct {
	StartingLives     int  `yaml:"starting_lives" json:"starting_lives"`
	StartingCoins     int  `yaml:"starting_coins" json:"starting_coins"`
	StartingHints     int  `yaml:"starting_hints" json:"starting_hints"`
	CoinsPerBundle    int  `yaml:"coins_per_bundle" json:"coins_per_bundle"`
	ExtraLivesInPool  int  `yaml:"extra_lives_in_pool" json:"extra_lives_in_pool"`
	HintRevealsInPool int  `yaml:"hint_reveals_in_pool" json:"hint_reveals_in_pool"`
	CoinBundlesInPool int  `yaml:"coin_bundles_in_pool" json:"coin_bundles_in_pool"`
	CellSolvesInPool  int  `yaml:"cell_solves_in_pool" json:"cell_solves_in_pool"`
	GoalPuzzles       int  `yaml:"goal_puzzles" json:"goal_puzzles"`
	DeathLink         bool `yaml:"death_link" json:"death_link"`
}

func Defaults() Options {
	var o Options
	for _, r := range Ranges {
		*o.intField(r.Key) = r.Default
	}
	o.DeathLink = DeathLink.Default
	return o
}

func (o *Options) intField(key string) *int {
	switch key {
	case StartingLives.Key:
		return &o.StartingLives
	case StartingCoins.Key:
		return &o.StartingCoins
	case StartingHints.Key:
		return &o.StartingHints
	case CoinsPerBundle.Key:
		return &o.CoinsPerBundle
	case ExtraLivesInPool.Key:
		return &o.ExtraLivesInPool
	case HintRevealsInPool.Key:
		return &o.HintRevealsInPool
	case CoinBundlesInPool.Key:
		return &o.CoinBundlesInPool
	case CellSolvesInPool.Key:
		return &o.CellSolvesInPool
	case GoalPuzzles.Key:
		return &o.GoalPuzzles
	}
	return nil
}

func (o *Options) boolField(key string) *bool {
	if key == DeathLink.Key {
		return &o.DeathLink
	}
	return nil
}

// Int returns the value of an integer option by key.
func (o Options) Int(key string) (int, error) {
	p := o.intField(key)
	if p == nil {
		return 0, protocol.NotFound("option", key)
	}
	return *p, nil
}

// Validate checks every value against its declared range.
func (o Options) Validate() error {
	for _, r := range Ranges {
		v := *o.intField(r.Key)
		if !r.Contains(v) {
			return protocol.Configuration(
				fmt.Sprintf("%s must be in [%d, %d]", r.Key, r.Min, r.Max),
				map[string]string{r.Key: strconv.Itoa(v)},
			)
		}
	}
	return nil
}

// Metadata renders every value as strings, for error context.
func (o Options) Metadata() map[string]string {
	out := make(map[string]string, len(Ranges)+len(Toggles))
	for _, r := range Ranges {
		out[r.Key] = strconv.Itoa(*o.intField(r.Key))
	}
	for _, t := range Toggles {
		out[t.Key] = strconv.FormatBool(*o.boolField(t.Key))
	}
	return out
}
