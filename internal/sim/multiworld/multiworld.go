package multiworld

import (
	"nonogram.ap/internal/sim/host"
)

// Multiworld is an in-memory host aggregate. Worlds append to it; nothing
// is ever removed.
type Multiworld struct {
	Regions    []*host.Region
	ItemPool   []*host.Item
	Completion map[int]host.Rule
}

func New() *Multiworld {
	return &Multiworld{Completion: map[int]host.Rule{}}
}

func (m *Multiworld) AddRegions(regions ...*host.Region) {
	m.Regions = append(m.Regions, regions...)
}

func (m *Multiworld) AddToItemPool(items ...*host.Item) {
	m.ItemPool = append(m.ItemPool, items...)
}

func (m *Multiworld) SetCompletionCondition(player int, rule host.Rule) {
	m.Completion[player] = rule
}

// Locations returns every location of player in region order.
func (m *Multiworld) Locations(player int) []*host.Location {
	var out []*host.Location
	for _, r := range m.Regions {
		if r.Player != player {
			continue
		}
		out = append(out, r.Locations...)
	}
	return out
}

func (m *Multiworld) Location(name string, player int) (*host.Location, bool) {
	for _, loc := range m.Locations(player) {
		if loc.Name == name {
			return loc, true
		}
	}
	return nil, false
}

func (m *Multiworld) Region(name string, player int) (*host.Region, bool) {
	for _, r := range m.Regions {
		if r.Player == player && r.Name == name {
			return r, true
		}
	}
	return nil, false
}

// PlayerItems returns player's share of the item pool, in pool order.
func (m *Multiworld) PlayerItems(player int) []*host.Item {
	var out []*host.Item
	for _, it := range m.ItemPool {
		if it.Player == player {
			out = append(out, it)
		}
	}
	return out
}
