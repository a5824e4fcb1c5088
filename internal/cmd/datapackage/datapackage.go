// Package datapackage prints the game's data package: the name/ID tables
// and item groups the host ships to clients.
package datapackage

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/caarlos0/env/v11"

	"nonogram.ap/internal/persistence/indexdb"
	"nonogram.ap/internal/sim/catalogs"
)

// Config holds datapackage command configuration.
type Config struct {
	Indent  bool   `env:"NONOGRAM_DATAPACKAGE_INDENT" envDefault:"true"`
	Out     string `env:"NONOGRAM_DATAPACKAGE_OUT"`
	IndexDB string `env:"NONOGRAM_INDEX_DB"`
}

// ParseConfig parses env, then flags, into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	fs.BoolVar(&cfg.Indent, "indent", cfg.Indent, "indent the json output")
	fs.StringVar(&cfg.Out, "out", cfg.Out, "write to this file instead of stdout")
	fs.StringVar(&cfg.IndexDB, "index-db", cfg.IndexDB, "also store the catalog in this sqlite index")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run writes the data package as JSON.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	cat := catalogs.Default()

	var (
		b   []byte
		err error
	)
	dp := cat.DataPackage()
	if cfg.Indent {
		b, err = json.MarshalIndent(dp, "", "  ")
	} else {
		b, err = json.Marshal(dp)
	}
	if err != nil {
		return fmt.Errorf("encode data package: %w", err)
	}
	b = append(b, '\n')

	if cfg.Out != "" {
		if err := os.WriteFile(cfg.Out, b, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", cfg.Out, err)
		}
	} else if _, err := out.Write(b); err != nil {
		return err
	}

	if cfg.IndexDB != "" {
		idx, err := indexdb.OpenSQLite(cfg.IndexDB)
		if err != nil {
			return fmt.Errorf("open index: %w", err)
		}
		defer idx.Close()
		if err := idx.UpsertCatalog(ctx, cat); err != nil {
			return fmt.Errorf("index catalog: %w", err)
		}
	}
	return nil
}
