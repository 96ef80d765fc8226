package scan

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/a2y-d5l/linegrep/internal/config"
	"github.com/a2y-d5l/linegrep/internal/util"
	"go.uber.org/zap"
)

// put writes one record to out in the format requested by cfg.
func put(out io.Writer, cfg *config.Config, record string) error {
	switch {
	case cfg.JSONLines:
		return json.NewEncoder(out).Encode(struct {
			Line string `json:"line"`
		}{record})
	case cfg.NullTerm:
		_, err := io.WriteString(out, record+"\x00")
		return err
	default:
		_, err := fmt.Fprintln(out, record)
		return err
	}
}

// Scan returns the records for files: file order first, then line order.
// It never fails; unreadable files contribute nothing. Up to cfg.MaxProcs
// files are read at once, and results are merged in input order so the
// output is the same as a sequential scan. Once ctx is done, files that
// have not started yet are skipped.
func Scan(ctx context.Context, cfg *config.Config, files []string) []string {
	m := matcherFor(cfg)
	pool := util.NewPool(cfg.MaxProcs)

	// One slot per file keeps the merge ordered without locking.
	slots := make([][]string, len(files))

	for i, path := range files {
		if ctx.Err() != nil {
			break
		}
		i, path := i, path
		pool.Do(func() {
			if ctx.Err() == nil {
				slots[i] = File(path, m, cfg)
			}
		})
	}
	pool.Wait()

	var out []string
	for _, recs := range slots {
		out = append(out, recs...)
	}
	return out
}

// Run performs the scan and writes records to out. If ctx ends before the
// scan completes nothing is written and the returned error wraps ctx.Err().
func Run(ctx context.Context, out io.Writer, cfg *config.Config, log *zap.Logger) error {
	records := Scan(ctx, cfg, cfg.Files)
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("scan interrupted: %w", err)
	}
	log.Debug("scan finished",
		zap.Int("files", len(cfg.Files)),
		zap.Int("records", len(records)),
	)

	for _, rec := range records {
		if err := put(out, cfg, rec); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return nil
}
