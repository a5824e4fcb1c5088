package multiworld

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"nonogram.ap/internal/protocol"
	"nonogram.ap/internal/sim/catalogs"
	"nonogram.ap/internal/sim/goal"
	"nonogram.ap/internal/sim/options"
	"nonogram.ap/internal/sim/world"
)

const tracerName = "nonogram.ap/internal/sim/multiworld"

// Generate runs every player's pass in slot order against a fresh aggregate.
// A slot that fails preflight contributes nothing to the aggregate; all slot
// errors are returned together so every bad configuration is reported in one
// run. A zero seed is replaced with a random one.
func Generate(ctx context.Context, cfg Config, cat *catalogs.Catalog) (*Result, *Multiworld, error) {
	if cat == nil {
		cat = catalogs.Default()
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	if cfg.Seed == 0 {
		s, err := NewSeed()
		if err != nil {
			return nil, nil, err
		}
		cfg.Seed = s
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "multiworld.generate")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("nonogram.seed", cfg.Seed),
		attribute.Int("nonogram.players", len(cfg.Players)),
	)

	mw := New()
	res := &Result{
		RunID:       ulid.Make().String(),
		Seed:        cfg.Seed,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339Nano),
		DataPackage: cat.DataPackage(),
	}

	var errs []error
	for i, p := range cfg.Players {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		sr, err := generateSlot(ctx, cfg.Seed, i+1, p, cat, mw)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		res.Slots = append(res.Slots, sr)
	}
	if err := errors.Join(errs...); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generation failed")
		return res, mw, err
	}
	return res, mw, nil
}

func generateSlot(ctx context.Context, seed int64, slot int, p PlayerSpec, cat *catalogs.Catalog, mw *Multiworld) (SlotResult, error) {
	_, span := otel.Tracer(tracerName).Start(ctx, "multiworld.slot", trace.WithAttributes(
		attribute.Int("nonogram.slot", slot),
		attribute.String("nonogram.slot_name", p.Name),
	))
	defer span.End()

	opts, err := options.Resolve(p.Options, slotRand(seed, slot))
	if err != nil {
		err = protocol.WithMetadata(err, map[string]string{"player": strconv.Itoa(slot), "slot": p.Name})
		span.RecordError(err)
		return SlotResult{}, err
	}
	w, err := world.New(world.Config{Player: slot, Name: p.Name, Options: opts}, cat, mw)
	if err != nil {
		span.RecordError(err)
		return SlotResult{}, err
	}
	sd, err := w.Generate()
	if err != nil {
		span.RecordError(err)
		return SlotResult{}, err
	}
	plan, _ := w.Plan()
	span.SetAttributes(
		attribute.Int("nonogram.pool_size", plan.Size()),
		attribute.String("nonogram.goal", goal.MilestoneName(opts.GoalPuzzles)),
	)
	return SlotResult{
		Slot:       slot,
		Name:       p.Name,
		Game:       p.Game,
		Options:    opts,
		SlotData:   sd,
		Pool:       plan.Composition(),
		Locations:  locationResults(mw.Locations(slot)),
		Completion: mw.Completion[slot],
	}, nil
}
