package multiworld

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"nonogram.ap/internal/protocol"
)

// MaxNameLength matches the host's slot name limit.
const MaxNameLength = 16

// Config is a multiworld generation request: a seed and one document per
// player in the host's player-file layout.
type Config struct {
	Seed    int64        `yaml:"seed"`
	Players []PlayerSpec `yaml:"players"`
}

type PlayerSpec struct {
	Name    string         `yaml:"name"`
	Game    string         `yaml:"game"`
	Options map[string]any `yaml:"Nonogram"`
}

func Load(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		cfg := defaults()
		cfg.Normalize()
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return Parse(b)
}

func Parse(b []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, protocol.BadRequest("multiworld yaml", err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ParsePlayer reads a single player file.
func ParsePlayer(b []byte) (PlayerSpec, error) {
	var p PlayerSpec
	if err := yaml.Unmarshal(b, &p); err != nil {
		return p, protocol.BadRequest("player yaml", err)
	}
	p.normalize()
	return p, nil
}

func defaults() Config {
	return Config{
		Players: []PlayerSpec{
			{Name: "Player1", Game: protocol.Game},
		},
	}
}

func (p *PlayerSpec) normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Game = strings.TrimSpace(p.Game)
	if p.Game == "" {
		p.Game = protocol.Game
	}
	if p.Options == nil {
		p.Options = map[string]any{}
	}
}

func (c *Config) Normalize() {
	if c == nil {
		return
	}
	for i := range c.Players {
		c.Players[i].normalize()
		if c.Players[i].Name == "" {
			c.Players[i].Name = fmt.Sprintf("Player%d", i+1)
		}
	}
}

func (c Config) Validate() error {
	if len(c.Players) == 0 {
		return protocol.Configuration("players must not be empty", nil)
	}
	seen := map[string]bool{}
	for i, p := range c.Players {
		if p.Game != protocol.Game {
			return protocol.Configuration(fmt.Sprintf("players[%d] game %q is not %s", i, p.Game, protocol.Game),
				map[string]string{"slot": p.Name})
		}
		if len(p.Name) > MaxNameLength {
			return protocol.Configuration(fmt.Sprintf("players[%d] name longer than %d", i, MaxNameLength),
				map[string]string{"slot": p.Name})
		}
		key := strings.ToLower(p.Name)
		if seen[key] {
			return protocol.Configuration(fmt.Sprintf("duplicate player name: %s", p.Name),
				map[string]string{"slot": p.Name})
		}
		seen[key] = true
	}
	return nil
}
