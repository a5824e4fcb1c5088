package catalogs

import (
	"fmt"

	"nonogram.ap/internal/protocol"
	"nonogram.ap/internal/sim/host"
)

// Item names.
const (
	ItemPlaceX             = "Place X"
	ItemAutoX              = "Auto-X"
	ItemGreyCompletedHints = "Grey Completed Hints"
	ItemDragPainting       = "Drag Painting"
	ItemCheckMistakes      = "Check Mistakes"
	ItemHintReveal         = "Hint Reveal"
	ItemExtraLife          = "Extra Life"
	ItemCoinBundle         = "Coin Bundle"
	ItemRandomCellSolve    = "Random Cell Solve"
	ItemVictory            = "Victory"
)

// Location and region names.
const (
	LocationFirstLine = "First Line Completed"
	LocationGoal      = "Goal"

	RegionMenu       = "Menu"
	RegionPuzzleArea = "Puzzle Area"
)

// PuzzleCount is the number of per-count puzzle locations.
const PuzzleCount = 64

// Group names.
const (
	GroupSettings    = "Settings"
	GroupProgression = "Progression"
	GroupConsumables = "Consumables"
)

func itemTable() []ItemDef {
	return []ItemDef{
		{Name: ItemPlaceX, Code: protocol.ItemSettingsBase + 1, Classification: host.Progression,
			Description: "Unlock the ability to mark cells with X"},
		{Name: ItemAutoX, Code: protocol.ItemSettingsBase + 2, Classification: host.Useful,
			Description: "Unlock automatic X marking for completed rows/columns"},
		{Name: ItemGreyCompletedHints, Code: protocol.ItemSettingsBase + 3, Classification: host.Useful,
			Description: "Unlock greying out of completed hint numbers"},
		{Name: ItemDragPainting, Code: protocol.ItemSettingsBase + 4, Classification: host.Useful,
			Description: "Unlock click and drag to paint multiple cells"},
		{Name: ItemCheckMistakes, Code: protocol.ItemSettingsBase + 5, Classification: host.Useful,
			Description: "Unlock highlighting of incorrectly filled cells"},

		// Needed for the larger puzzles.
		{Name: ItemHintReveal, Code: protocol.ItemHintBase + 1, Classification: host.Progression,
			Description: "Reveals 1 additional random row or column hint per puzzle"},

		{Name: ItemExtraLife, Code: protocol.ItemLifeBase + 1, Classification: host.Useful,
			Description: "Permanently increases your maximum lives by 1"},
		{Name: ItemCoinBundle, Code: protocol.ItemCoinBase + 1, Classification: host.Filler,
			Description: "Grants coins to spend in the shop"},
		{Name: ItemRandomCellSolve, Code: protocol.ItemConsumableBase + 1, Classification: host.Useful,
			Description: "Automatically solves one random unsolved cell"},

		{Name: ItemVictory, Classification: host.Progression},
	}
}

// PuzzleLocationName names the location checked after completing n 5x5
// puzzles: "Complete 1 5x5 Puzzle", "Complete 2 5x5 Puzzles", ...
func PuzzleLocationName(n int) string {
	if n == 1 {
		return "Complete 1 5x5 Puzzle"
	}
	return fmt.Sprintf("Complete %d 5x5 Puzzles", n)
}

func locationTable() []LocationDef {
	out := make([]LocationDef, 0, PuzzleCount+2)
	out = append(out, LocationDef{
		Name:        LocationFirstLine,
		Code:        protocol.LocationMilestoneBase + 1,
		Region:      RegionPuzzleArea,
		Description: "Complete your first row or column",
	})
	for n := 1; n <= PuzzleCount; n++ {
		desc := fmt.Sprintf("Complete %d 5x5 puzzles", n)
		if n == 1 {
			desc = "Complete 1 5x5 puzzle"
		}
		out = append(out, LocationDef{
			Name:        PuzzleLocationName(n),
			Code:        protocol.PuzzleLocationCode(n),
			Region:      RegionPuzzleArea,
			Description: desc,
		})
	}
	out = append(out, LocationDef{Name: LocationGoal, Region: RegionPuzzleArea})
	return out
}

func itemGroups() map[string][]string {
	return map[string][]string{
		GroupSettings: {
			ItemPlaceX,
			ItemAutoX,
			ItemGreyCompletedHints,
			ItemDragPainting,
			ItemCheckMistakes,
		},
		GroupProgression: {
			ItemPlaceX,
			ItemHintReveal,
		},
		GroupConsumables: {
			ItemExtraLife,
			ItemCoinBundle,
			ItemRandomCellSolve,
		},
	}
}

var defaultCatalog = mustNew(itemTable(), locationTable(), itemGroups())

func mustNew(items []ItemDef, locations []LocationDef, groups map[string][]string) *Catalog {
	c, err := New(items, locations, groups)
	if err != nil {
		panic(fmt.Sprintf("catalogs: built-in tables: %v", err))
	}
	return c
}

// Default returns the shared built-in catalog. It is safe for concurrent use.
func Default() *Catalog { return defaultCatalog }
