package protocol

import "encoding/json"

// Game is the name the host and the client use to identify this world.
const Game = "Nonogram"

// Version of the generation contract (ID tables + slot data). Bump on any
// change a deployed client would notice.
const Version = "1.0"

// DecodeSlotData parses slot data as received by the client.
func DecodeSlotData(b []byte) (SlotData, error) {
	var sd SlotData
	err := json.Unmarshal(b, &sd)
	return sd, err
}
