// Package goal wires the victory condition: the Goal event location becomes
// reachable once the configured milestone is, and a player is done once they
// hold the Victory event item.
package goal

import (
	"fmt"
	"strconv"

	"nonogram.ap/internal/protocol"
	"nonogram.ap/internal/sim/catalogs"
	"nonogram.ap/internal/sim/host"
	"nonogram.ap/internal/sim/options"
)

// MilestoneName is the location a player must reach to finish with n
// completed puzzles.
func MilestoneName(n int) string { return catalogs.PuzzleLocationName(n) }

// Rule returns the Goal access rule for o, failing when the milestone does
// not name a catalog location.
func Rule(cat *catalogs.Catalog, o options.Options) (host.Rule, error) {
	name := MilestoneName(o.GoalPuzzles)
	if _, err := cat.LocationByName(name); err != nil {
		return host.Rule{}, protocol.Configuration(
			fmt.Sprintf("goal milestone %q is not a location", name),
			map[string]string{options.GoalPuzzles.Key: strconv.Itoa(o.GoalPuzzles)},
		)
	}
	return host.CanReachLocation(name), nil
}

// Wire attaches the goal rule to the Goal location.
func Wire(cat *catalogs.Catalog, goalLoc *host.Location, o options.Options) error {
	if goalLoc == nil || goalLoc.Name != catalogs.LocationGoal {
		return protocol.NotFound("location", catalogs.LocationGoal)
	}
	r, err := Rule(cat, o)
	if err != nil {
		return err
	}
	goalLoc.Rule = r
	return nil
}

// Completion is the per-player completion predicate.
func Completion() host.Rule { return host.HasItem(catalogs.ItemVictory) }
