// Package world is the per-player generation pass. The host drives it in a
// fixed order: CreateRegions, CreateItems, SetRules, FillSlotData. Generate
// runs the whole pass after a preflight that rejects bad configurations
// before anything reaches the host.
package world

import (
	"fmt"
	"strconv"

	"nonogram.ap/internal/protocol"
	"nonogram.ap/internal/sim/catalogs"
	"nonogram.ap/internal/sim/goal"
	"nonogram.ap/internal/sim/host"
	"nonogram.ap/internal/sim/options"
	"nonogram.ap/internal/sim/pool"
	"nonogram.ap/internal/sim/regions"
	"nonogram.ap/internal/sim/slotdata"
)

type World struct {
	cfg Config
	cat *catalogs.Catalog
	mw  host.Multiworld

	graph *regions.Graph
	plan  *pool.Plan
	rules bool
}

func New(cfg Config, cat *catalogs.Catalog, mw host.Multiworld) (*World, error) {
	if cat == nil {
		cat = catalogs.Default()
	}
	w := &World{cfg: cfg, cat: cat, mw: mw}
	if err := cfg.validate(); err != nil {
		return nil, w.wrap(err)
	}
	return w, nil
}

func (w *World) Player() int                { return w.cfg.Player }
func (w *World) Name() string               { return w.cfg.Name }
func (w *World) Options() options.Options   { return w.cfg.Options }
func (w *World) Catalog() *catalogs.Catalog { return w.cat }

// Graph is nil until CreateRegions has run.
func (w *World) Graph() *regions.Graph { return w.graph }

// Plan returns the pool composition once CreateItems has run.
func (w *World) Plan() (pool.Plan, bool) {
	if w.plan == nil {
		return pool.Plan{}, false
	}
	return *w.plan, true
}

// CreateItem returns a fresh instance of a catalog item owned by this player.
func (w *World) CreateItem(name string) (*host.Item, error) {
	d, err := w.cat.ItemByName(name)
	if err != nil {
		return nil, w.wrap(err)
	}
	return &host.Item{
		Name:           d.Name,
		Game:           protocol.Game,
		Code:           d.Code,
		Classification: d.Classification,
		Player:         w.cfg.Player,
	}, nil
}

// Preflight runs every configuration check of the pass without touching
// the host.
func (w *World) Preflight() error {
	if err := w.cfg.Options.Validate(); err != nil {
		return w.wrap(err)
	}
	if _, err := pool.NewPlan(w.cat, w.cfg.Options); err != nil {
		return w.wrap(err)
	}
	if _, err := goal.Rule(w.cat, w.cfg.Options); err != nil {
		return w.wrap(err)
	}
	return nil
}

func (w *World) CreateRegions() error {
	if w.graph != nil {
		return w.stageErr("regions already created")
	}
	g, err := regions.Build(w.cat, w.mw, w.cfg.Player, protocol.Game)
	if err != nil {
		return w.wrap(err)
	}
	w.graph = g
	return nil
}

// CreateItems appends exactly one item per fillable location to the host
// pool, or nothing at all if the options request too many items.
func (w *World) CreateItems() error {
	if w.graph == nil {
		return w.stageErr("CreateItems before CreateRegions")
	}
	if w.plan != nil {
		return w.stageErr("items already created")
	}
	p, err := pool.NewPlan(w.cat, w.cfg.Options)
	if err != nil {
		return w.wrap(err)
	}
	if fillable := len(w.graph.Fillable()); p.Size() != fillable {
		return w.wrap(protocol.Configuration("item pool does not match the region graph", map[string]string{
			"pool":     strconv.Itoa(p.Size()),
			"fillable": strconv.Itoa(fillable),
		}))
	}
	items, err := pool.Build(w.cat, p, w.cfg.Player, protocol.Game)
	if err != nil {
		return w.wrap(err)
	}
	w.mw.AddToItemPool(items...)
	w.plan = &p
	return nil
}

// SetRules wires the goal and registers the completion condition.
func (w *World) SetRules() error {
	if w.graph == nil {
		return w.stageErr("SetRules before CreateRegions")
	}
	if w.rules {
		return w.stageErr("rules already set")
	}
	if err := goal.Wire(w.cat, w.graph.Goal, w.cfg.Options); err != nil {
		return w.wrap(err)
	}
	w.mw.SetCompletionCondition(w.cfg.Player, goal.Completion())
	w.rules = true
	return nil
}

func (w *World) FillSlotData() (map[string]any, error) {
	sd, err := slotdata.Fill(w.cfg.Options)
	if err != nil {
		return nil, w.wrap(err)
	}
	return sd, nil
}

// Generate runs the full pass and returns the slot data.
func (w *World) Generate() (map[string]any, error) {
	if err := w.Preflight(); err != nil {
		return nil, err
	}
	for _, stage := range []func() error{w.CreateRegions, w.CreateItems, w.SetRules} {
		if err := stage(); err != nil {
			return nil, err
		}
	}
	return w.FillSlotData()
}

func (w *World) stageErr(msg string) error {
	return w.wrap(&protocol.Error{Code: protocol.ErrCodeInternal, Message: msg})
}

func (w *World) wrap(err error) error {
	if err == nil {
		return nil
	}
	return protocol.WithMetadata(err, map[string]string{
		"player": strconv.Itoa(w.cfg.Player),
		"slot":   w.cfg.Name,
	})
}

func (w *World) String() string {
	return fmt.Sprintf("%s (player %d)", w.cfg.Name, w.cfg.Player)
}
