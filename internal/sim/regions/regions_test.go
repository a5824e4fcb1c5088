package regions

import (
	"errors"
	"testing"

	"nonogram.ap/internal/protocol"
	"nonogram.ap/internal/sim/catalogs"
	"nonogram.ap/internal/sim/host"
)

type recorder struct {
	regions []*host.Region
	pool    []*host.Item
}

func (r *recorder) AddRegions(regions ...*host.Region)                { r.regions = append(r.regions, regions...) }
func (r *recorder) AddToItemPool(items ...*host.Item)                 { r.pool = append(r.pool, items...) }
func (r *recorder) SetCompletionCondition(player int, rule host.Rule) {}

func TestBuild_DefaultCatalog(t *testing.T) {
	mw := &recorder{}
	g, err := Build(catalogs.Default(), mw, 3, protocol.Game)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(mw.regions) != 2 || mw.regions[0] != g.Menu || mw.regions[1] != g.PuzzleArea {
		t.Fatalf("expected menu and puzzle area appended in order, got %d regions", len(mw.regions))
	}
	if len(g.Menu.Locations) != 0 {
		t.Fatalf("menu must have no locations")
	}
	if len(g.Menu.Exits) != 1 || g.Menu.Exits[0].Target != g.PuzzleArea || g.Menu.Exits[0].Rule.Kind != host.RuleAlways {
		t.Fatalf("menu must connect to puzzle area unconditionally")
	}
	if n := len(g.Fillable()); n != catalogs.PuzzleCount+1 {
		t.Fatalf("fillable: got %d want %d", n, catalogs.PuzzleCount+1)
	}
	if len(g.PuzzleArea.Locations) != catalogs.PuzzleCount+2 {
		t.Fatalf("puzzle area should also hold the goal")
	}
	if g.PuzzleArea.Locations[0].Name != catalogs.LocationFirstLine {
		t.Fatalf("catalog order not kept: %s", g.PuzzleArea.Locations[0].Name)
	}
	for _, loc := range g.PuzzleArea.Locations {
		if loc.Player != 3 || loc.Parent != g.PuzzleArea {
			t.Fatalf("%s: owner/parent wrong", loc.Name)
		}
	}
}

func TestBuild_GoalLockedEvent(t *testing.T) {
	g, err := Build(catalogs.Default(), &recorder{}, 1, protocol.Game)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if g.Goal.Name != catalogs.LocationGoal || !g.Goal.IsEvent() {
		t.Fatalf("goal should be a code-less event: %+v", g.Goal)
	}
	if !g.Goal.Locked || g.Goal.Item == nil || g.Goal.Item.Name != catalogs.ItemVictory || !g.Goal.Item.IsEvent() {
		t.Fatalf("victory must be locked on goal: %+v", g.Goal.Item)
	}
	if g.Goal.Item.Classification != host.Progression {
		t.Fatalf("victory should be progression")
	}
}

func TestBuild_ZeroFillableLocations(t *testing.T) {
	cat, err := catalogs.New(
		catalogs.Default().Items(),
		[]catalogs.LocationDef{{Name: catalogs.LocationGoal, Region: catalogs.RegionPuzzleArea}},
		nil,
	)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	g, err := Build(cat, &recorder{}, 1, protocol.Game)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(g.Fillable()) != 0 || len(g.PuzzleArea.Locations) != 1 {
		t.Fatalf("expected only the goal, got %d locations", len(g.PuzzleArea.Locations))
	}
}

func TestBuild_MissingGoalIsNotFound(t *testing.T) {
	cat, err := catalogs.New(catalogs.Default().Items(), nil, nil)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	mw := &recorder{}
	if _, err := Build(cat, mw, 1, protocol.Game); !errors.Is(err, protocol.ErrNotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
	if len(mw.regions) != 0 {
		t.Fatalf("nothing should be appended on failure")
	}
}
