package protocol

// Slot data keys sent to the client on connect.
const (
	KeyStartingLives  = "starting_lives"
	KeyStartingCoins  = "starting_coins"
	KeyStartingHints  = "starting_hints"
	KeyCoinsPerBundle = "coins_per_bundle"
	KeyGoalPuzzles    = "goal_puzzles"
)

// SlotDataKeys lists every key the client reads, in export order.
var SlotDataKeys = []string{
	KeyStartingLives,
	KeyStartingCoins,
	KeyStartingHints,
	KeyCoinsPerBundle,
	KeyGoalPuzzles,
}

// SlotData is the typed view of the slot data mapping. The exporter emits a
// flat map; this struct is what a client decodes it into.
type SlotData struct {
	StartingLives  int `json:"starting_lives"`
	StartingCoins  int `json:"starting_coins"`
	StartingHints  int `json:"starting_hints"`
	CoinsPerBundle int `json:"coins_per_bundle"`
	GoalPuzzles    int `json:"goal_puzzles"`
}

// DataPackage is the per-game name/ID table the host ships to every client.
type DataPackage struct {
	Game             string              `json:"game"`
	Version          string              `json:"version"`
	ItemNameToID     map[string]int64    `json:"item_name_to_id"`
	LocationNameToID map[string]int64    `json:"location_name_to_id"`
	ItemNameGroups   map[string][]string `json:"item_name_groups"`
	Checksum         string              `json:"checksum"`
}
