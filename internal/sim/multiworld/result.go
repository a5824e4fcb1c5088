package multiworld

import (
	"nonogram.ap/internal/protocol"
	"nonogram.ap/internal/sim/host"
	"nonogram.ap/internal/sim/options"
	"nonogram.ap/internal/sim/pool"
)

// Result is everything a generation run produced, in archive form.
type Result struct {
	RunID       string               `json:"run_id"`
	Seed        int64                `json:"seed"`
	CreatedAt   string               `json:"created_at"`
	DataPackage protocol.DataPackage `json:"data_package"`
	Slots       []SlotResult         `json:"slots"`
}

type SlotResult struct {
	Slot       int              `json:"slot"`
	Name       string           `json:"name"`
	Game       string           `json:"game"`
	Options    options.Options  `json:"options"`
	SlotData   map[string]any   `json:"slot_data"`
	Pool       []pool.Entry     `json:"pool"`
	Locations  []LocationResult `json:"locations"`
	Completion host.Rule        `json:"completion"`
}

type LocationResult struct {
	Name       string    `json:"name"`
	Code       int64     `json:"code,omitempty"`
	Region     string    `json:"region"`
	LockedItem string    `json:"locked_item,omitempty"`
	Rule       host.Rule `json:"rule"`
}

func locationResults(locs []*host.Location) []LocationResult {
	out := make([]LocationResult, 0, len(locs))
	for _, l := range locs {
		lr := LocationResult{Name: l.Name, Code: l.Code, Rule: l.Rule}
		if l.Parent != nil {
			lr.Region = l.Parent.Name
		}
		if l.Locked && l.Item != nil {
			lr.LockedItem = l.Item.Name
		}
		out = append(out, lr)
	}
	return out
}
