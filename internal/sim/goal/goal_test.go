package goal

import (
	"errors"
	"testing"

	"nonogram.ap/internal/protocol"
	"nonogram.ap/internal/sim/catalogs"
	"nonogram.ap/internal/sim/host"
	"nonogram.ap/internal/sim/options"
)

func TestMilestoneName_SingularPlural(t *testing.T) {
	if got := MilestoneName(1); got != "Complete 1 5x5 Puzzle" {
		t.Fatalf("n=1: %q", got)
	}
	if got := MilestoneName(64); got != "Complete 64 5x5 Puzzles" {
		t.Fatalf("n=64: %q", got)
	}
}

func TestMilestoneName_ResolvesAcrossOptionRange(t *testing.T) {
	cat := catalogs.Default()
	for n := options.GoalPuzzles.Min; n <= options.GoalPuzzles.Max; n++ {
		if _, err := cat.LocationByName(MilestoneName(n)); err != nil {
			t.Fatalf("goal_puzzles=%d: %v", n, err)
		}
	}
}

type state struct {
	reached map[string]bool
	items   map[string]bool
}

func (s state) CanReachLocation(name string, player int) bool { return s.reached[name] }
func (s state) Has(item string, player int) bool              { return s.items[item] }

func TestWire_SingleGoalPuzzle(t *testing.T) {
	cat := catalogs.Default()
	o := options.Defaults()
	o.GoalPuzzles = 1

	goalLoc := &host.Location{Name: catalogs.LocationGoal, Rule: host.Always()}
	if err := Wire(cat, goalLoc, o); err != nil {
		t.Fatalf("wire: %v", err)
	}
	if goalLoc.Rule != host.CanReachLocation("Complete 1 5x5 Puzzle") {
		t.Fatalf("rule: %s", goalLoc.Rule)
	}

	s := state{reached: map[string]bool{}, items: map[string]bool{}}
	if goalLoc.Rule.Eval(s, 1) {
		t.Fatalf("goal reachable before milestone")
	}
	if Completion().Eval(s, 1) {
		t.Fatalf("complete without victory")
	}
	s.reached["Complete 1 5x5 Puzzle"] = true
	if !goalLoc.Rule.Eval(s, 1) {
		t.Fatalf("goal should be reachable after milestone")
	}
	s.items[catalogs.ItemVictory] = true
	if !Completion().Eval(s, 1) {
		t.Fatalf("victory held but not complete")
	}
}

func TestRule_UnknownMilestoneFailsFast(t *testing.T) {
	cat, err := catalogs.New(
		catalogs.Default().Items(),
		catalogs.Default().Locations()[:11], // milestones 1..10 only
		nil,
	)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	o := options.Defaults()
	o.GoalPuzzles = 11
	_, err = Rule(cat, o)
	if !errors.Is(err, protocol.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	var pe *protocol.Error
	if !errors.As(err, &pe) || pe.Metadata["goal_puzzles"] != "11" {
		t.Fatalf("error lacks option context: %v", err)
	}

	goalLoc := &host.Location{Name: catalogs.LocationGoal, Rule: host.Always()}
	if err := Wire(cat, goalLoc, o); err == nil {
		t.Fatalf("wire should fail")
	}
	if goalLoc.Rule.Kind != host.RuleAlways {
		t.Fatalf("failed wiring must leave the rule untouched")
	}
}

func TestWire_RequiresGoalLocation(t *testing.T) {
	if err := Wire(catalogs.Default(), nil, options.Defaults()); !errors.Is(err, protocol.ErrNotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}
