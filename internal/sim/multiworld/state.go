package multiworld

import (
	"strconv"

	"github.com/zyedidia/generic/mapset"

	"nonogram.ap/internal/sim/host"
)

// State is a hand-driven reachability state: callers mark locations reached
// and collect items. It answers rule queries the way host search state does,
// without doing any search itself.
type State struct {
	reached mapset.Set[string]
	items   map[string]int
}

func NewState() *State {
	return &State{reached: mapset.New[string](), items: map[string]int{}}
}

func key(name string, player int) string { return strconv.Itoa(player) + "\x00" + name }

func (s *State) MarkReached(name string, player int) { s.reached.Put(key(name, player)) }

func (s *State) Collect(it *host.Item) { s.items[key(it.Name, it.Player)]++ }

func (s *State) CanReachLocation(name string, player int) bool {
	return s.reached.Has(key(name, player))
}

func (s *State) Has(item string, player int) bool { return s.items[key(item, player)] > 0 }

func (s *State) Count(item string, player int) int { return s.items[key(item, player)] }

// CollectIfReachable evaluates loc's rule and, when it holds, marks loc
// reached and collects its item. It reports whether the rule held.
func (s *State) CollectIfReachable(loc *host.Location) bool {
	if !loc.Rule.Eval(s, loc.Player) {
		return false
	}
	s.MarkReached(loc.Name, loc.Player)
	if loc.Item != nil {
		s.Collect(loc.Item)
	}
	return true
}

// Complete reports whether player's completion condition holds in mw.
func (s *State) Complete(mw *Multiworld, player int) bool {
	r, ok := mw.Completion[player]
	return ok && r.Eval(s, player)
}
