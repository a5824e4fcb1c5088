package protocol

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/slot_data.schema.json
var SlotDataSchema string

const slotDataSchemaURL = "slot_data.schema.json"

var (
	slotSchemaOnce sync.Once
	slotSchema     *jsonschema.Schema
	slotSchemaErr  error
)

func compiledSlotDataSchema() (*jsonschema.Schema, error) {
	slotSchemaOnce.Do(func() {
		slotSchema, slotSchemaErr = jsonschema.CompileString(slotDataSchemaURL, SlotDataSchema)
	})
	return slotSchema, slotSchemaErr
}

// ValidateSlotData checks v against the slot data schema. v is encoded to
// JSON first, so anything the exporter hands the host is checked in the
// exact shape the client will receive.
func ValidateSlotData(v any) error {
	s, err := compiledSlotDataSchema()
	if err != nil {
		return fmt.Errorf("compile slot data schema: %w", err)
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode slot data: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decode slot data: %w", err)
	}
	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("slot data: %w", err)
	}
	return nil
}
