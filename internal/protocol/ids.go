package protocol

// Item and location codes are partitioned into fixed ranges so the client can
// decode a bare integer without the data package. These values are shared
// with the client's item/location constants; renumbering breaks deployed
// clients.
const (
	rangeWidth = 1000

	ItemSettingsBase   int64 = 8000000 // 8000001-8000999
	ItemHintBase       int64 = 8001000 // 8001001-8001999
	ItemLifeBase       int64 = 8002000 // 8002001-8002999
	ItemCoinBase       int64 = 8003000 // 8003001-8003999
	ItemConsumableBase int64 = 8004000 // 8004001-8004999

	LocationMilestoneBase int64 = 9000000 // 9000001-9000999
	LocationPuzzleBase    int64 = 9001000 // 9001001-9001999, base + completed count
)

type ItemCategory string

const (
	ItemCategorySettings   ItemCategory = "settings"
	ItemCategoryHint       ItemCategory = "hint"
	ItemCategoryLife       ItemCategory = "life"
	ItemCategoryCoin       ItemCategory = "coin"
	ItemCategoryConsumable ItemCategory = "consumable"
)

type LocationCategory string

const (
	LocationCategoryMilestone LocationCategory = "milestone"
	LocationCategoryPuzzle    LocationCategory = "puzzle"
)

var itemBases = []struct {
	base int64
	cat  ItemCategory
}{
	{ItemSettingsBase, ItemCategorySettings},
	{ItemHintBase, ItemCategoryHint},
	{ItemLifeBase, ItemCategoryLife},
	{ItemCoinBase, ItemCategoryCoin},
	{ItemConsumableBase, ItemCategoryConsumable},
}

var locationBases = []struct {
	base int64
	cat  LocationCategory
}{
	{LocationMilestoneBase, LocationCategoryMilestone},
	{LocationPuzzleBase, LocationCategoryPuzzle},
}

// ItemCategoryOf decodes the category of an item code. Offset 0 of each range
// is reserved and never assigned.
func ItemCategoryOf(code int64) (ItemCategory, bool) {
	for _, b := range itemBases {
		if inRange(code, b.base) {
			return b.cat, true
		}
	}
	return "", false
}

// LocationCategoryOf decodes the category of a location code.
func LocationCategoryOf(code int64) (LocationCategory, bool) {
	for _, b := range locationBases {
		if inRange(code, b.base) {
			return b.cat, true
		}
	}
	return "", false
}

// PuzzleLocationCode is the location code for completing n 5x5 puzzles.
func PuzzleLocationCode(n int) int64 { return LocationPuzzleBase + int64(n) }

func inRange(code, base int64) bool {
	return code > base && code < base+rangeWidth
}
