package world

import (
	"fmt"
	"strings"

	"nonogram.ap/internal/protocol"
	"nonogram.ap/internal/sim/options"
)

type Config struct {
	Player  int // 1-based slot number assigned by the host
	Name    string
	Options options.Options
}

func (c Config) validate() error {
	if c.Player <= 0 {
		return protocol.Configuration(fmt.Sprintf("player number must be > 0, got %d", c.Player), nil)
	}
	if strings.TrimSpace(c.Name) == "" {
		return protocol.Configuration("slot name must not be empty", nil)
	}
	return c.Options.Validate()
}
