// Package convert orchestrates whole-document conversion: frontmatter
// mapping, body analysis, per-platform transformation, output layout,
// and the parallel batch driver. It is the adapter layer around the
// detect and transform engines; the engines themselves stay pure.
package convert

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"skillport/internal/config"
	"skillport/internal/construct"
	"skillport/internal/detect"
	"skillport/internal/frontmatter"
	"skillport/internal/logging"
	"skillport/internal/transform"
)

// Converter converts documents between platforms using one shared
// configuration. Safe for concurrent use; every conversion builds its
// analysis and transformer fresh.
type Converter struct {
	cfg *config.Config
	log *zap.Logger
}

// New builds a Converter.
func New(cfg *config.Config) *Converter {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Converter{
		cfg: cfg,
		log: logging.Get(logging.CategoryConvert),
	}
}

// Converted is the result of one document conversion.
type Converted struct {
	// Content is the full rewritten document (header + body).
	Content string

	// Warnings aggregates header warnings followed by body warnings,
	// in document order.
	Warnings []construct.Warning

	// Meta is the neutral header model, for output naming.
	Meta *frontmatter.Meta

	// Analysis is the body's content analysis, for diagnostics and
	// settings derivation.
	Analysis *construct.Analysis
}

// Convert converts a full document from the source platform to the
// target platform.
func (c *Converter) Convert(doc string, source, target construct.Platform) (*Converted, error) {
	if _, err := construct.ParseTarget(string(target)); err != nil {
		return nil, err
	}

	meta, body, err := frontmatter.Parse(doc, source)
	if err != nil {
		return nil, err
	}
	_, _, hadHeader := frontmatter.Split(doc)

	analysis := detect.Analyze(body)
	c.log.Debug("analyzed document",
		zap.String("source", string(source)),
		zap.String("target", string(target)),
		zap.Int("constructs", analysis.Count()),
	)

	limit := c.cfg.WorkingSetLimit(string(target), transform.DefaultWorkingSetLimit(target))
	tr, err := transform.New(target, transform.WithWorkingSetLimit(limit))
	if err != nil {
		return nil, err
	}
	result, err := tr.Transform(analysis)
	if err != nil {
		return nil, fmt.Errorf("transform body: %w", err)
	}

	var out strings.Builder
	var warnings []construct.Warning
	if hadHeader {
		header, hw, err := frontmatter.Render(meta, target)
		if err != nil {
			return nil, err
		}
		out.WriteString(header)
		warnings = append(warnings, hw...)
	}
	out.WriteString(result.Content)
	warnings = append(warnings, result.Warnings...)

	return &Converted{
		Content:  out.String(),
		Warnings: warnings,
		Meta:     meta,
		Analysis: analysis,
	}, nil
}
