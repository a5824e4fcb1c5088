package slotdata

import (
	"encoding/json"
	"errors"
	"testing"

	"nonogram.ap/internal/protocol"
	"nonogram.ap/internal/sim/options"
)

func TestFill_Defaults(t *testing.T) {
	sd, err := Fill(options.Defaults())
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	want := map[string]int{
		"starting_lives":   3,
		"starting_coins":   5,
		"starting_hints":   1,
		"coins_per_bundle": 5,
		"goal_puzzles":     64,
	}
	if len(sd) != len(want) {
		t.Fatalf("expected exactly %d keys, got %v", len(want), sd)
	}
	for k, v := range want {
		if sd[k] != v {
			t.Fatalf("%s: got %v want %d", k, sd[k], v)
		}
	}
	for _, k := range protocol.SlotDataKeys {
		if _, ok := sd[k]; !ok {
			t.Fatalf("missing documented key %s", k)
		}
	}
}

func TestFill_ExcludesPoolAndDeathLink(t *testing.T) {
	o := options.Defaults()
	o.DeathLink = true
	sd, err := Fill(o)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	for _, k := range []string{"death_link", "extra_lives_in_pool", "hint_reveals_in_pool", "coin_bundles_in_pool", "cell_solves_in_pool"} {
		if _, ok := sd[k]; ok {
			t.Fatalf("%s must not be exported", k)
		}
	}
}

func TestFill_RoundTripsIntoClientShape(t *testing.T) {
	o := options.Defaults()
	o.StartingLives, o.CoinsPerBundle, o.GoalPuzzles = 10, 20, 1
	sd, err := Fill(o)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	raw, err := json.Marshal(sd)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, err := protocol.DecodeSlotData(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != (protocol.SlotData{StartingLives: 10, StartingCoins: 5, StartingHints: 1, CoinsPerBundle: 20, GoalPuzzles: 1}) {
		t.Fatalf("client view: %+v", got)
	}
}

// The embedded schema and the option ranges describe the same bounds.
func TestFill_SchemaMatchesOptionRanges(t *testing.T) {
	exported := []options.Range{
		options.StartingLives,
		options.StartingCoins,
		options.StartingHints,
		options.CoinsPerBundle,
		options.GoalPuzzles,
	}
	for _, r := range exported {
		for _, v := range []int{r.Min, r.Max} {
			sd := defaultsMap()
			sd[r.Key] = v
			if err := protocol.ValidateSlotData(sd); err != nil {
				t.Fatalf("%s=%d should pass: %v", r.Key, v, err)
			}
		}
		for _, v := range []int{r.Min - 1, r.Max + 1} {
			sd := defaultsMap()
			sd[r.Key] = v
			if err := protocol.ValidateSlotData(sd); err == nil {
				t.Fatalf("%s=%d should fail", r.Key, v)
			}
		}
	}
}

func TestFill_InvalidOptionsRejected(t *testing.T) {
	o := options.Defaults()
	o.StartingLives = 0
	if _, err := Fill(o); !errors.Is(err, protocol.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func defaultsMap() map[string]any {
	sd, _ := Fill(options.Defaults())
	return sd
}
