// Package regions builds a player's region graph: an entry region with no
// checks connected unconditionally to the puzzle area that holds them all.
package regions

import (
	"nonogram.ap/internal/sim/catalogs"
	"nonogram.ap/internal/sim/host"
)

// Graph is what Build hands to the host, kept for the later stages.
type Graph struct {
	Menu       *host.Region
	PuzzleArea *host.Region
	Goal       *host.Location
}

// Fillable returns the locations that need an item from the pool.
func (g *Graph) Fillable() []*host.Location {
	out := make([]*host.Location, 0, len(g.PuzzleArea.Locations))
	for _, loc := range g.PuzzleArea.Locations {
		if !loc.IsEvent() {
			out = append(out, loc)
		}
	}
	return out
}

// Build creates the graph for player and appends both regions to mw. The
// Goal event location gets the event item locked onto it; its access rule is
// attached later by goal wiring. A catalog without fillable locations yields a
// puzzle area holding only the Goal.
func Build(cat *catalogs.Catalog, mw host.Multiworld, player int, game string) (*Graph, error) {
	menu := host.NewRegion(catalogs.RegionMenu, player)
	area := host.NewRegion(catalogs.RegionPuzzleArea, player)
	menu.Connect(area, host.Always())

	for _, d := range cat.FillableLocations() {
		area.AddLocation(d.Name, d.Code)
	}

	goalDef, err := cat.LocationByName(catalogs.LocationGoal)
	if err != nil {
		return nil, err
	}
	victory, err := cat.ItemByName(catalogs.ItemVictory)
	if err != nil {
		return nil, err
	}
	goal := area.AddLocation(goalDef.Name, 0)
	goal.PlaceLockedItem(&host.Item{
		Name:           victory.Name,
		Game:           game,
		Classification: victory.Classification,
		Player:         player,
	})

	mw.AddRegions(menu, area)
	return &Graph{Menu: menu, PuzzleArea: area, Goal: goal}, nil
}
