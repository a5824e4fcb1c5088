package catalogs

import (
	"errors"
	"testing"

	"nonogram.ap/internal/protocol"
	"nonogram.ap/internal/sim/host"
)

func TestDefault_ItemNameToIDDistinctPositive(t *testing.T) {
	ids := Default().ItemNameToID()
	if len(ids) != 9 {
		t.Fatalf("expected 9 coded items, got %d", len(ids))
	}
	if _, ok := ids[ItemVictory]; ok {
		t.Fatalf("event item must not appear in item_name_to_id")
	}
	seen := map[int64]string{}
	for name, id := range ids {
		if id <= 0 {
			t.Fatalf("%s: non-positive id %d", name, id)
		}
		if prev, dup := seen[id]; dup {
			t.Fatalf("id %d shared by %s and %s", id, prev, name)
		}
		seen[id] = name
	}
}

func TestDefault_LocationNameToIDDistinctPositive(t *testing.T) {
	ids := Default().LocationNameToID()
	if len(ids) != PuzzleCount+1 {
		t.Fatalf("expected %d coded locations, got %d", PuzzleCount+1, len(ids))
	}
	if _, ok := ids[LocationGoal]; ok {
		t.Fatalf("event location must not appear in location_name_to_id")
	}
	seen := map[int64]string{}
	for name, id := range ids {
		if id <= 0 {
			t.Fatalf("%s: non-positive id %d", name, id)
		}
		if prev, dup := seen[id]; dup {
			t.Fatalf("id %d shared by %s and %s", id, prev, name)
		}
		seen[id] = name
	}
}

// Wire contract with the client. Changing any of these is a breaking change.
func TestDefault_StableCodes(t *testing.T) {
	items := map[string]int64{
		ItemPlaceX:             8000001,
		ItemAutoX:              8000002,
		ItemGreyCompletedHints: 8000003,
		ItemDragPainting:       8000004,
		ItemCheckMistakes:      8000005,
		ItemHintReveal:         8001001,
		ItemExtraLife:          8002001,
		ItemCoinBundle:         8003001,
		ItemRandomCellSolve:    8004001,
	}
	got := Default().ItemNameToID()
	for name, want := range items {
		if got[name] != want {
			t.Fatalf("item %s: got %d want %d", name, got[name], want)
		}
	}
	locs := Default().LocationNameToID()
	if locs[LocationFirstLine] != 9000001 {
		t.Fatalf("first line: %d", locs[LocationFirstLine])
	}
	if locs["Complete 1 5x5 Puzzle"] != 9001001 || locs["Complete 64 5x5 Puzzles"] != 9001064 {
		t.Fatalf("puzzle range: 1=%d 64=%d", locs["Complete 1 5x5 Puzzle"], locs["Complete 64 5x5 Puzzles"])
	}
}

func TestDefault_CodesStayInTheirCategory(t *testing.T) {
	want := map[string]protocol.ItemCategory{
		ItemPlaceX:          protocol.ItemCategorySettings,
		ItemCheckMistakes:   protocol.ItemCategorySettings,
		ItemHintReveal:      protocol.ItemCategoryHint,
		ItemExtraLife:       protocol.ItemCategoryLife,
		ItemCoinBundle:      protocol.ItemCategoryCoin,
		ItemRandomCellSolve: protocol.ItemCategoryConsumable,
	}
	ids := Default().ItemNameToID()
	for name, cat := range want {
		got, ok := protocol.ItemCategoryOf(ids[name])
		if !ok || got != cat {
			t.Fatalf("%s: category %q want %q", name, got, cat)
		}
	}
}

func TestLookup_NotFound(t *testing.T) {
	c := Default()
	if _, err := c.ItemByName("Triple Jump"); !errors.Is(err, protocol.ErrNotFound) {
		t.Fatalf("expected NotFound for item, got %v", err)
	}
	if _, err := c.LocationByName("Puzzle 1 Complete"); !errors.Is(err, protocol.ErrNotFound) {
		t.Fatalf("expected NotFound for location, got %v", err)
	}
	_, err := c.GroupMembers("Traps")
	var pe *protocol.Error
	if !errors.As(err, &pe) || pe.Metadata["category"] != "group" || pe.Metadata["name"] != "Traps" {
		t.Fatalf("expected group NotFound with context, got %v", err)
	}
}

func TestLookup_Known(t *testing.T) {
	c := Default()
	it, err := c.ItemByName(ItemVictory)
	if err != nil {
		t.Fatalf("victory: %v", err)
	}
	if !it.IsEvent() || it.Classification != host.Progression {
		t.Fatalf("victory should be a progression event: %+v", it)
	}
	loc, err := c.LocationByName(LocationGoal)
	if err != nil || !loc.IsEvent() || loc.Region != RegionPuzzleArea {
		t.Fatalf("goal: %+v err=%v", loc, err)
	}
}

func TestGroupMembers(t *testing.T) {
	c := Default()
	s, err := c.GroupMembers(GroupSettings)
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	if s.Size() != 5 || !s.Has(ItemCheckMistakes) || s.Has(ItemHintReveal) {
		t.Fatalf("settings group wrong, size=%d", s.Size())
	}
	// A returned set is a copy.
	s.Put("Triple Jump")
	again, _ := c.GroupMembers(GroupSettings)
	if again.Has("Triple Jump") {
		t.Fatalf("GroupMembers leaked catalog state")
	}
	for _, g := range c.GroupNames() {
		members, _ := c.GroupMembers(g)
		members.Each(func(name string) {
			if _, err := c.ItemByName(name); err != nil {
				t.Fatalf("group %s references %s: %v", g, name, err)
			}
		})
	}
}

func TestPuzzleLocationName(t *testing.T) {
	if got := PuzzleLocationName(1); got != "Complete 1 5x5 Puzzle" {
		t.Fatalf("singular: %q", got)
	}
	if got := PuzzleLocationName(2); got != "Complete 2 5x5 Puzzles" {
		t.Fatalf("plural: %q", got)
	}
}

func TestLocationsByRegion(t *testing.T) {
	by := Default().LocationsByRegion()
	if len(by) != 1 {
		t.Fatalf("expected one region, got %v", by)
	}
	area := by[RegionPuzzleArea]
	if len(area) != PuzzleCount+2 {
		t.Fatalf("puzzle area: %d locations", len(area))
	}
	if area[0] != LocationFirstLine || area[len(area)-1] != LocationGoal {
		t.Fatalf("table order not preserved: first=%q last=%q", area[0], area[len(area)-1])
	}
}

func TestNew_RejectsBadTables(t *testing.T) {
	region := RegionPuzzleArea
	cases := []struct {
		name   string
		items  []ItemDef
		locs   []LocationDef
		groups map[string][]string
	}{
		{"dup item name", []ItemDef{{Name: "A", Code: 8000001}, {Name: "A", Code: 8000002}}, nil, nil},
		{"dup item code", []ItemDef{{Name: "A", Code: 8000001}, {Name: "B", Code: 8000001}}, nil, nil},
		{"item out of range", []ItemDef{{Name: "A", Code: 42}}, nil, nil},
		{"location in item range", nil, []LocationDef{{Name: "L", Code: 8000001, Region: region}}, nil},
		{"dup location code", nil, []LocationDef{{Name: "L", Code: 9000001, Region: region}, {Name: "M", Code: 9000001, Region: region}}, nil},
		{"location without region", nil, []LocationDef{{Name: "L", Code: 9000001}}, nil},
		{"group with unknown item", []ItemDef{{Name: "A", Code: 8000001}}, nil, map[string][]string{"G": {"B"}}},
	}
	for _, tc := range cases {
		if _, err := New(tc.items, tc.locs, tc.groups); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func TestNew_ZeroFillableLocations(t *testing.T) {
	c, err := New(itemTable(), []LocationDef{{Name: LocationGoal, Region: RegionPuzzleArea}}, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if n := len(c.FillableLocations()); n != 0 {
		t.Fatalf("expected no fillable locations, got %d", n)
	}
	if len(c.LocationNameToID()) != 0 {
		t.Fatalf("expected empty location id map")
	}
}

func TestDataPackage_Deterministic(t *testing.T) {
	a := Default().DataPackage()
	b, err := New(itemTable(), locationTable(), itemGroups())
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if a.Checksum == "" || a.Checksum != b.DataPackage().Checksum {
		t.Fatalf("checksum not stable: %q vs %q", a.Checksum, b.DataPackage().Checksum)
	}
	if a.Game != protocol.Game || len(a.ItemNameGroups) != 3 {
		t.Fatalf("data package header: %+v", a)
	}
	if Default().ItemsDigest != b.ItemsDigest || Default().LocationsDigest != b.LocationsDigest {
		t.Fatalf("table digests not stable")
	}
}
