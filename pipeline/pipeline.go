// Package pipeline runs one fetch, compare, transform and persist pass.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/setanarut/flairsync"
	"github.com/setanarut/flairsync/config"
	"github.com/setanarut/flairsync/scrape"
	"github.com/setanarut/flairsync/utils"
)

// Mode selects which metadata file a run produces.
type Mode int

const (
	// ModeOffsets scrapes flair names, offsets and descriptions.
	ModeOffsets Mode = iota
	// ModeColors classifies every sheet cell into the default palette.
	ModeColors
)

func (m Mode) String() string {
	if m == ModeColors {
		return "colors"
	}
	return "offsets"
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "offsets":
		return ModeOffsets, nil
	case "colors":
		return ModeColors, nil
	default:
		return 0, fmt.Errorf("unknown mode %q", s)
	}
}

// Fetcher is the network side of a run.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
	Image(ctx context.Context, url string) (image.Image, error)
}

// Report summarizes a finished run.
type Report struct {
	Mode        Mode
	State       flairsync.State
	Diff        image.Rectangle
	Fingerprint uint64
	Distance    int
	// Records is the number of metadata entries written, 0 when unchanged.
	Records int
}

type Pipeline struct {
	cfg     config.Config
	fetcher Fetcher
	logger  *slog.Logger
}

func New(cfg config.Config, fetcher Fetcher, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{cfg: cfg, fetcher: fetcher, logger: logger}
}

func (p *Pipeline) outputs(mode Mode) config.Outputs {
	if mode == ModeColors {
		return p.cfg.Colors
	}
	return p.cfg.Offsets
}

// Run fetches the sprite sheet and, when it differs from the baseline,
// regenerates the upscaled sheet and the mode's metadata file.
//
// All outputs are computed before anything is written, and the baseline is
// replaced last. If the metadata write fails the previous upscaled image is put
// back, so the image and metadata on disk always come from the same run. A run
// that fails part way leaves the baseline untouched, so the next run redoes the
// whole pass.
func (p *Pipeline) Run(ctx context.Context, mode Mode) (Report, error) {
	out := p.outputs(mode)
	logger := p.logger.With("mode", mode)
	report := Report{Mode: mode}

	sheet, err := p.fetcher.Image(ctx, p.cfg.SheetURL)
	if err != nil {
		return report, err
	}
	cols, rows := flairsync.GridSize(sheet)
	logger.Debug("fetched sprite sheet", "bounds", sheet.Bounds(), "cols", cols, "rows", rows)

	det := flairsync.NewDetector(out.Baseline)
	det.Strict = !p.cfg.SeedBaseline
	res, err := det.Check(sheet)
	if err != nil {
		return report, err
	}
	report.State = res.State
	report.Diff = res.Diff
	report.Fingerprint = res.Fingerprint
	report.Distance = res.Distance

	if !res.State.Changed() {
		logger.Info("no new flairs", "baseline", out.Baseline, "fingerprint", fmt.Sprintf("%016x", res.Fingerprint))
		return report, nil
	}
	logger.Info("sprite sheet changed", "state", res.State, "diff", res.Diff, "distance", res.Distance)

	metadata, n, err := p.metadata(ctx, mode, sheet)
	if err != nil {
		return report, err
	}
	upscaled, err := utils.EncodePNG(utils.Upscale(sheet, flairsync.UpscaleFactor))
	if err != nil {
		return report, flairsync.Wrap(err, flairsync.KindFileWrite, "encode upscaled sheet")
	}

	restore, err := snapshot(out.Image)
	if err != nil {
		return report, err
	}
	if err := writeFile(out.Image, upscaled); err != nil {
		return report, err
	}
	if err := writeFile(out.Metadata, metadata); err != nil {
		if rerr := restore(); rerr != nil {
			logger.Error("failed to restore previous image", "path", out.Image, "err", rerr)
		}
		return report, err
	}
	if err := det.Commit(sheet); err != nil {
		return report, err
	}
	report.Records = n

	logger.Info("outputs written", "image", out.Image, "metadata", out.Metadata, "records", n)
	return report, nil
}

func (p *Pipeline) metadata(ctx context.Context, mode Mode, sheet image.Image) ([]byte, int, error) {
	switch mode {
	case ModeColors:
		method, err := p.cfg.PaletteMethod()
		if err != nil {
			return nil, 0, flairsync.Wrap(err, flairsync.KindConfig, "quantizer")
		}
		c := flairsync.NewClassifier()
		c.Extractor.Method = method
		pairs, err := c.Classify(sheet)
		if err != nil {
			return nil, 0, err
		}
		data, err := pairs.Marshal()
		return data, len(pairs), err
	default:
		page, err := p.fetcher.Get(ctx, p.cfg.ProfileURL)
		if err != nil {
			return nil, 0, err
		}
		records, err := scrape.ParseProfile(bytes.NewReader(page))
		if err != nil {
			return nil, 0, err
		}
		p.logger.Debug("scraped profile", "flairs", len(records))
		data, err := records.Marshal()
		return data, len(records), err
	}
}

// snapshot returns a func that puts path back the way it is now: the old
// content is rewritten, or the file removed if there was none.
func snapshot(path string) (func() error, error) {
	prev, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return func() error {
			if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			return nil
		}, nil
	case err != nil:
		return nil, flairsync.Wrap(err, flairsync.KindFileWrite, "read previous output").WithMetadata("path", path)
	}
	return func() error { return utils.WriteFileAtomic(path, prev) }, nil
}

func writeFile(path string, data []byte) error {
	if err := utils.WriteFileAtomic(path, data); err != nil {
		return flairsync.Wrap(err, flairsync.KindFileWrite, "write output").WithMetadata("path", path)
	}
	return nil
}
