// Package slotdata exports the options the client needs at session start.
package slotdata

import (
	"nonogram.ap/internal/protocol"
	"nonogram.ap/internal/sim/options"
)

// Fill returns the slot data mapping for o. Pool counts and DeathLink are
// not part of the client contract; the host signals DeathLink itself.
func Fill(o options.Options) (map[string]any, error) {
	sd := map[string]any{
		protocol.KeyStartingLives:  o.StartingLives,
		protocol.KeyStartingCoins:  o.StartingCoins,
		protocol.KeyStartingHints:  o.StartingHints,
		protocol.KeyCoinsPerBundle: o.CoinsPerBundle,
		protocol.KeyGoalPuzzles:    o.GoalPuzzles,
	}
	if err := protocol.ValidateSlotData(sd); err != nil {
		return nil, protocol.Configuration(err.Error(), nil)
	}
	return sd, nil
}
