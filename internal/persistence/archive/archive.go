// Package archive stores generation results as zstd-compressed JSON, one
// file per run, with a small uncompressed sidecar for quick listing.
package archive

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/samber/oops"

	"nonogram.ap/internal/sim/multiworld"
)

const (
	resultExt = ".json.zst"
	metaExt   = ".meta.json"
)

type Meta struct {
	RunID     string   `json:"run_id"`
	Seed      int64    `json:"seed"`
	Slots     []string `json:"slots"`
	Archive   string   `json:"archive"`
	Checksum  string   `json:"data_package_checksum"`
	CreatedAt string   `json:"created_at"`
}

// Path is where WriteResult puts runID under dir.
func Path(dir, runID string) string {
	return filepath.Join(dir, runID+resultExt)
}

// MetaPath is the sidecar WriteResult leaves next to the archive.
func MetaPath(dir, runID string) string {
	return filepath.Join(dir, runID+metaExt)
}

// WriteResult writes res to dir/<run_id>.json.zst and returns the path.
func WriteResult(dir string, res *multiworld.Result) (string, error) {
	if res == nil || res.RunID == "" {
		return "", oops.Errorf("archive: result without run id")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", oops.Wrapf(err, "create archive dir %s", dir)
	}
	path := Path(dir, res.RunID)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", oops.Wrapf(err, "open archive %s", path)
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return "", oops.Wrapf(err, "zstd writer")
	}
	bw := bufio.NewWriterSize(enc, 64*1024)
	if err := json.NewEncoder(bw).Encode(res); err != nil {
		_ = enc.Close()
		return "", oops.Wrapf(err, "encode result %s", res.RunID)
	}
	if err := bw.Flush(); err != nil {
		_ = enc.Close()
		return "", oops.Wrapf(err, "flush archive %s", path)
	}
	if err := enc.Close(); err != nil {
		return "", oops.Wrapf(err, "close zstd stream %s", path)
	}
	if err := f.Close(); err != nil {
		return "", oops.Wrapf(err, "close archive %s", path)
	}

	meta := Meta{
		RunID:     res.RunID,
		Seed:      res.Seed,
		Archive:   filepath.Base(path),
		Checksum:  res.DataPackage.Checksum,
		CreatedAt: res.CreatedAt,
	}
	for _, s := range res.Slots {
		meta.Slots = append(meta.Slots, s.Name)
	}
	// Sidecar is best effort; the archive is the source of truth.
	if b, err := json.MarshalIndent(meta, "", "  "); err == nil {
		_ = os.WriteFile(MetaPath(dir, res.RunID), b, 0o644)
	}
	return path, nil
}

func ReadResult(path string) (*multiworld.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, oops.Wrapf(err, "open archive %s", path)
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, oops.Wrapf(err, "zstd reader")
	}
	defer dec.Close()

	var res multiworld.Result
	if err := json.NewDecoder(bufio.NewReader(dec)).Decode(&res); err != nil {
		return nil, oops.Wrapf(err, "decode archive %s", path)
	}
	return &res, nil
}

// List returns the run ids archived under dir, oldest first. Run ids are
// ULIDs so lexical order is creation order.
func List(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*"+resultExt))
	if err != nil {
		return nil, oops.Wrapf(err, "list archives in %s", dir)
	}
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, strings.TrimSuffix(filepath.Base(m), resultExt))
	}
	sort.Strings(ids)
	return ids, nil
}
