// Package host declares the slice of the multiworld host this world consumes:
// items, locations, regions, access rules and the aggregate they are appended
// to. Reachability search belongs to the host; rules here only ask it
// questions through State.
package host

import "fmt"

type Classification uint8

const (
	Filler Classification = iota
	Progression
	Useful
)

func (c Classification) String() string {
	switch c {
	case Filler:
		return "filler"
	case Progression:
		return "progression"
	case Useful:
		return "useful"
	default:
		return fmt.Sprintf("classification(%d)", uint8(c))
	}
}

func (c Classification) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Classification) UnmarshalText(b []byte) error {
	switch string(b) {
	case "filler":
		*c = Filler
	case "progression":
		*c = Progression
	case "useful":
		*c = Useful
	default:
		return fmt.Errorf("unknown classification %q", string(b))
	}
	return nil
}

// Item is one placed-or-placeable item instance owned by a player.
// Code 0 marks an event item that never crosses the wire.
type Item struct {
	Name           string
	Game           string
	Code           int64
	Classification Classification
	Player         int
}

func (it *Item) IsEvent() bool { return it.Code == 0 }

// Location is one check in a region. Code 0 marks an event location.
type Location struct {
	Name   string
	Code   int64
	Player int
	Parent *Region
	Rule   Rule

	Item   *Item
	Locked bool
}

func (l *Location) IsEvent() bool { return l.Code == 0 }

// PlaceLockedItem pins it to l; the host's fill skips locked locations.
func (l *Location) PlaceLockedItem(it *Item) {
	l.Item = it
	l.Locked = true
}

// Entrance is a one-way connection between two regions.
type Entrance struct {
	Name   string
	Parent *Region
	Target *Region
	Rule   Rule
}

type Region struct {
	Name      string
	Player    int
	Exits     []*Entrance
	Locations []*Location
}

func NewRegion(name string, player int) *Region {
	return &Region{Name: name, Player: player}
}

// Connect adds an exit from r to target gated by rule.
func (r *Region) Connect(target *Region, rule Rule) *Entrance {
	e := &Entrance{
		Name:   r.Name + " -> " + target.Name,
		Parent: r,
		Target: target,
		Rule:   rule,
	}
	r.Exits = append(r.Exits, e)
	return e
}

// AddLocation creates a location owned by r's player and appends it.
func (r *Region) AddLocation(name string, code int64) *Location {
	loc := &Location{Name: name, Code: code, Player: r.Player, Parent: r, Rule: Always()}
	r.Locations = append(r.Locations, loc)
	return loc
}

// Multiworld is the host aggregate. Worlds only append to it.
type Multiworld interface {
	AddRegions(regions ...*Region)
	AddToItemPool(items ...*Item)
	SetCompletionCondition(player int, rule Rule)
}
