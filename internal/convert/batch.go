package convert

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"skillport/internal/construct"
	"skillport/internal/logging"
)

// Item is the outcome of converting one document in a batch.
type Item struct {
	Source   string
	Output   string
	Warnings []construct.Warning
	Err      error
}

// Report summarizes a batch run.
type Report struct {
	RunID     string
	Target    construct.Platform
	StartedAt time.Time
	Duration  time.Duration
	Items     []Item

	// SettingsPath is set when a derived platform settings file was
	// written alongside the converted documents.
	SettingsPath string
}

// WarningCount sums warnings across all items.
func (r *Report) WarningCount() int {
	n := 0
	for _, it := range r.Items {
		n += len(it.Warnings)
	}
	return n
}

// FailureCount counts items that errored.
func (r *Report) FailureCount() int {
	n := 0
	for _, it := range r.Items {
		if it.Err != nil {
			n++
		}
	}
	return n
}

// BatchOptions controls a batch run.
type BatchOptions struct {
	Target  construct.Platform
	OutRoot string

	// Jobs caps concurrent conversions; <=0 means one per document.
	Jobs int

	// DryRun skips all writes.
	DryRun bool
}

// Batch converts documents in parallel. Per-document failures are
// recorded on the report, not returned; only context cancellation
// aborts the run. Documents may be processed concurrently because the
// taxonomy is read-only and each conversion builds its state fresh.
func (c *Converter) Batch(ctx context.Context, docs []Document, opts BatchOptions) (*Report, error) {
	if _, err := construct.ParseTarget(string(opts.Target)); err != nil {
		return nil, err
	}

	report := &Report{
		RunID:     uuid.NewString(),
		Target:    opts.Target,
		StartedAt: time.Now(),
		Items:     make([]Item, len(docs)),
	}
	log := logging.Get(logging.CategoryConvert).With(zap.String("run", report.RunID))

	g, ctx := errgroup.WithContext(ctx)
	if opts.Jobs > 0 {
		g.SetLimit(opts.Jobs)
	}

	settings := make([]*ClaudeSettings, len(docs))
	for i, doc := range docs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			item, analysis := c.convertOne(doc, opts)
			if item.Err == nil && analysis != nil && opts.Target == construct.PlatformClaude {
				settings[i] = SettingsFromAnalysis(analysis)
			}
			report.Items[i] = item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if opts.Target == construct.PlatformClaude && !opts.DryRun {
		merged := &ClaudeSettings{}
		for _, s := range settings {
			merged.Merge(s)
		}
		if !merged.Empty() {
			path, err := c.writeSettings(merged, opts.OutRoot)
			if err != nil {
				log.Warn("settings file not written", zap.Error(err))
			} else {
				report.SettingsPath = path
			}
		}
	}

	report.Duration = time.Since(report.StartedAt)
	log.Info("batch complete",
		zap.Int("documents", len(docs)),
		zap.Int("warnings", report.WarningCount()),
		zap.Int("failures", report.FailureCount()),
	)
	return report, nil
}

func (c *Converter) convertOne(doc Document, opts BatchOptions) (Item, *construct.Analysis) {
	item := Item{Source: doc.Path}

	data, err := os.ReadFile(doc.Path)
	if err != nil {
		item.Err = err
		return item, nil
	}

	converted, err := c.Convert(string(data), doc.Platform, opts.Target)
	if err != nil {
		item.Err = err
		return item, nil
	}
	item.Warnings = converted.Warnings

	name := DocumentName(doc.Path, converted.Meta.Name)
	item.Output = filepath.Join(opts.OutRoot, TargetRelPath(name, opts.Target))
	if opts.DryRun {
		return item, converted.Analysis
	}

	if err := os.MkdirAll(filepath.Dir(item.Output), 0755); err != nil {
		item.Err = err
		return item, nil
	}
	if err := os.WriteFile(item.Output, []byte(converted.Content), 0644); err != nil {
		item.Err = err
	}
	return item, converted.Analysis
}

func (c *Converter) writeSettings(s *ClaudeSettings, outRoot string) (string, error) {
	data, err := s.Marshal()
	if err != nil {
		return "", err
	}
	path := filepath.Join(outRoot, ".claude", "settings.json")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return "", err
	}
	return path, nil
}
