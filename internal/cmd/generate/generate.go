// Package generate implements the multiworld generation command: resolve
// player options, run every world pass, then archive and index the result.
package generate

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/caarlos0/env/v11"

	"nonogram.ap/internal/persistence/archive"
	"nonogram.ap/internal/persistence/indexdb"
	"nonogram.ap/internal/persistence/r2s3"
	"nonogram.ap/internal/platform/otel"
	"nonogram.ap/internal/sim/catalogs"
	"nonogram.ap/internal/sim/multiworld"
)

const serviceName = "nonogram-generate"

// Config holds generate command configuration.
type Config struct {
	MultiworldFile string `env:"NONOGRAM_MULTIWORLD_FILE"`
	PlayersDir     string `env:"NONOGRAM_PLAYERS_DIR"`
	OutDir         string `env:"NONOGRAM_OUT_DIR"  envDefault:"output"`
	IndexDB        string `env:"NONOGRAM_INDEX_DB"`
	Seed           int64  `env:"NONOGRAM_SEED"`

	R2        R2Config
	Telemetry otel.Config
}

// R2Config enables mirroring archives to a bucket when Mirror is set.
type R2Config struct {
	Mirror          bool   `env:"NONOGRAM_R2_MIRROR"`
	Endpoint        string `env:"NONOGRAM_R2_ENDPOINT"`
	Bucket          string `env:"NONOGRAM_R2_BUCKET"`
	AccessKeyID     string `env:"NONOGRAM_R2_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"NONOGRAM_R2_SECRET_ACCESS_KEY"`
	Prefix          string `env:"NONOGRAM_R2_PREFIX"`
}

// ParseConfig parses env, then flags, into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs.StringVar(&cfg.MultiworldFile, "multiworld", cfg.MultiworldFile, "multiworld yaml (seed and players)")
	fs.StringVar(&cfg.PlayersDir, "players", cfg.PlayersDir, "directory of player yaml files appended after the multiworld file")
	fs.StringVar(&cfg.OutDir, "out", cfg.OutDir, "archive output directory")
	fs.StringVar(&cfg.IndexDB, "index-db", cfg.IndexDB, "sqlite index path (empty to disable)")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "generation seed (0 keeps the file's seed or picks one)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run executes one generation.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	logger := log.New(errOut, "[generate] ", log.LstdFlags)

	shutdown, err := otel.Setup(ctx, serviceName, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Printf("tracing shutdown: %v", err)
		}
	}()

	mwCfg, err := loadMultiworld(cfg)
	if err != nil {
		return err
	}
	cat := catalogs.Default()

	res, _, err := multiworld.Generate(ctx, mwCfg, cat)
	if err != nil {
		for _, e := range unjoin(err) {
			logger.Printf("slot failed: %v", e)
		}
		return fmt.Errorf("generation failed: %w", err)
	}
	logger.Printf("generated run=%s seed=%d players=%d", res.RunID, res.Seed, len(res.Slots))

	path, err := archive.WriteResult(cfg.OutDir, res)
	if err != nil {
		return fmt.Errorf("write archive: %w", err)
	}
	logger.Printf("archived %s", path)

	if cfg.IndexDB != "" {
		if err := index(ctx, cfg.IndexDB, cat, res, path); err != nil {
			return err
		}
		logger.Printf("indexed run=%s db=%s", res.RunID, cfg.IndexDB)
	}

	mirror, err := buildMirror(cfg.R2, logger)
	if err != nil {
		return err
	}
	if err := mirror.Upload(ctx, path, archive.MetaPath(cfg.OutDir, res.RunID)); err != nil {
		return fmt.Errorf("mirror archive: %w", err)
	}

	fmt.Fprintf(out, "run %s seed %d\n", res.RunID, res.Seed)
	for _, s := range res.Slots {
		fmt.Fprintf(out, "  slot %d %s goal_puzzles=%d\n", s.Slot, s.Name, s.Options.GoalPuzzles)
	}
	fmt.Fprintf(out, "archive %s\n", path)
	return nil
}

func loadMultiworld(cfg Config) (multiworld.Config, error) {
	var mwCfg multiworld.Config
	if cfg.MultiworldFile != "" || cfg.PlayersDir == "" {
		c, err := multiworld.Load(cfg.MultiworldFile)
		if err != nil {
			return multiworld.Config{}, fmt.Errorf("load multiworld: %w", err)
		}
		mwCfg = c
	}
	if cfg.PlayersDir != "" {
		players, err := loadPlayersDir(cfg.PlayersDir)
		if err != nil {
			return multiworld.Config{}, err
		}
		mwCfg.Players = append(mwCfg.Players, players...)
	}
	if cfg.Seed != 0 {
		mwCfg.Seed = cfg.Seed
	}
	return mwCfg, nil
}

// loadPlayersDir reads *.yaml and *.yml in name order, one player per file.
func loadPlayersDir(dir string) ([]multiworld.PlayerSpec, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read players dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".yaml" || ext == ".yml" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	players := make([]multiworld.PlayerSpec, 0, len(names))
	for _, name := range names {
		b, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read player %s: %w", name, err)
		}
		p, err := multiworld.ParsePlayer(b)
		if err != nil {
			return nil, fmt.Errorf("player %s: %w", name, err)
		}
		players = append(players, p)
	}
	return players, nil
}

func index(ctx context.Context, path string, cat *catalogs.Catalog, res *multiworld.Result, archivePath string) error {
	idx, err := indexdb.OpenSQLite(path)
	if err != nil {
		return fmt.Errorf("open index: %w", err)
	}
	defer idx.Close()
	if err := idx.UpsertCatalog(ctx, cat); err != nil {
		return fmt.Errorf("index catalog: %w", err)
	}
	if err := idx.RecordRun(ctx, res, archivePath); err != nil {
		return fmt.Errorf("index run: %w", err)
	}
	return idx.Close()
}

func buildMirror(cfg R2Config, logger *log.Logger) (*r2s3.Mirror, error) {
	if !cfg.Mirror {
		return nil, nil
	}
	client, err := r2s3.New(cfg.Endpoint, cfg.Bucket, cfg.AccessKeyID, cfg.SecretAccessKey)
	if err != nil {
		return nil, fmt.Errorf("NONOGRAM_R2_MIRROR is set but the bucket config is incomplete: %w", err)
	}
	return r2s3.NewMirror(client, cfg.Prefix, logger), nil
}

func unjoin(err error) []error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}
