// Package pool sizes and builds a player's item pool so that it holds exactly
// one item per fillable location.
package pool

import (
	"fmt"
	"strconv"

	"nonogram.ap/internal/protocol"
	"nonogram.ap/internal/sim/catalogs"
	"nonogram.ap/internal/sim/host"
	"nonogram.ap/internal/sim/options"
)

// FillerItem backfills whatever the requested counts leave open.
const FillerItem = catalogs.ItemCoinBundle

// Count resolves how many copies of an item are requested: either a fixed
// number or the value of a named option.
type Count struct {
	Fixed  int
	Option string
}

func (c Count) Resolve(o options.Options) (int, error) {
	if c.Option == "" {
		return c.Fixed, nil
	}
	return o.Int(c.Option)
}

// stackable items pull their count from an option; every other coded item is
// requested once.
var stackable = map[string]Count{
	catalogs.ItemHintReveal:      {Option: options.HintRevealsInPool.Key},
	catalogs.ItemExtraLife:       {Option: options.ExtraLivesInPool.Key},
	catalogs.ItemCoinBundle:      {Option: options.CoinBundlesInPool.Key},
	catalogs.ItemRandomCellSolve: {Option: options.CellSolvesInPool.Key},
}

// CountFor returns the count rule for a catalog item.
func CountFor(name string) Count {
	if c, ok := stackable[name]; ok {
		return c
	}
	return Count{Fixed: 1}
}

type Entry struct {
	Item  string `json:"item"`
	Count int    `json:"count"`
}

// Plan is the pool composition before any instance exists.
type Plan struct {
	Requested []Entry `json:"requested"` // catalog order, zero counts kept
	Filler    Entry   `json:"filler"`

	RequestedCount int `json:"requested_count"`
	FillableCount  int `json:"fillable_count"`
}

// Size is the final pool length; always FillableCount for a valid plan.
func (p Plan) Size() int { return p.RequestedCount + p.Filler.Count }

// Composition merges requested and filler counts per item, catalog order.
func (p Plan) Composition() []Entry {
	out := make([]Entry, 0, len(p.Requested))
	for _, e := range p.Requested {
		if e.Item == p.Filler.Item {
			e.Count += p.Filler.Count
		}
		if e.Count > 0 {
			out = append(out, e)
		}
	}
	return out
}

// NewPlan computes per-item counts for o. Requesting more items than there
// are fillable locations is a configuration error.
func NewPlan(cat *catalogs.Catalog, o options.Options) (Plan, error) {
	p := Plan{
		Filler:        Entry{Item: FillerItem},
		FillableCount: len(cat.FillableLocations()),
	}
	if _, err := cat.ItemByName(FillerItem); err != nil {
		return Plan{}, err
	}
	for _, d := range cat.Items() {
		if d.IsEvent() {
			continue
		}
		n, err := CountFor(d.Name).Resolve(o)
		if err != nil {
			return Plan{}, fmt.Errorf("count for %s: %w", d.Name, err)
		}
		p.Requested = append(p.Requested, Entry{Item: d.Name, Count: n})
		p.RequestedCount += n
	}

	p.Filler.Count = p.FillableCount - p.RequestedCount
	if p.Filler.Count < 0 {
		md := map[string]string{
			"fillable":  strconv.Itoa(p.FillableCount),
			"requested": strconv.Itoa(p.RequestedCount),
		}
		for _, c := range stackable {
			v, _ := o.Int(c.Option)
			md[c.Option] = strconv.Itoa(v)
		}
		return Plan{}, protocol.Configuration(
			fmt.Sprintf("item pool requests %d items for %d locations", p.RequestedCount, p.FillableCount),
			md,
		)
	}
	return p, nil
}

// Build materializes the plan into item instances: requested items in
// catalog order, then the filler.
func Build(cat *catalogs.Catalog, p Plan, player int, game string) ([]*host.Item, error) {
	out := make([]*host.Item, 0, p.Size())
	add := func(name string, n int) error {
		d, err := cat.ItemByName(name)
		if err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			out = append(out, &host.Item{
				Name:           d.Name,
				Game:           game,
				Code:           d.Code,
				Classification: d.Classification,
				Player:         player,
			})
		}
		return nil
	}
	for _, e := range p.Requested {
		if err := add(e.Item, e.Count); err != nil {
			return nil, err
		}
	}
	if err := add(p.Filler.Item, p.Filler.Count); err != nil {
		return nil, err
	}
	return out, nil
}
