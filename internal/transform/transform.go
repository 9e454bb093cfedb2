// Package transform implements the per-platform rewriting engine. A
// Transformer takes a construct.Analysis and produces the rewritten
// body plus warnings, applying one rewrite policy per (construct kind,
// target platform) pair.
//
// Each Transform call is a single-pass, stateless function of its
// input: no retries, no partial output. A missing policy is a
// configuration error and fails the whole call.
package transform

import (
	"fmt"
	"strings"

	"skillport/internal/construct"
)

// ConfigError reports a construct kind with no rewrite policy for the
// requested target platform: taxonomy/transformer drift that must fail
// loudly rather than silently drop content.
type ConfigError struct {
	Kind   construct.Kind
	Target construct.Platform
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("no rewrite policy for construct %q on target platform %q", e.Kind, e.Target)
}

// Option adjusts a Transformer.
type Option func(*Transformer)

// WithWorkingSetLimit overrides the target platform's documented
// working-set limit (0 = unlimited). Used by the decomposition policy.
func WithWorkingSetLimit(n int) Option {
	return func(t *Transformer) { t.limit = n }
}

// Transformer rewrites analyses for one target platform.
type Transformer struct {
	target construct.Platform
	limit  int
}

// New builds a Transformer. The target platform is validated up front;
// an unrecognized identifier is rejected before any work begins.
func New(target construct.Platform, opts ...Option) (*Transformer, error) {
	if _, err := construct.ParseTarget(string(target)); err != nil {
		return nil, err
	}
	t := &Transformer{
		target: target,
		limit:  defaultWorkingSetLimit[target],
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Target returns the transformer's target platform.
func (t *Transformer) Target() construct.Platform { return t.target }

// Transform rewrites the analysis for the target platform. Plain prose
// between constructs is emitted unchanged; the output is the
// concatenation, in original order, of rewritten segments and the
// unmatched text between them.
func (t *Transformer) Transform(a *construct.Analysis) (*construct.Result, error) {
	var out strings.Builder
	var warnings []construct.Warning

	last := 0
	for _, c := range a.Constructs {
		out.WriteString(a.Source[last:c.Span.Start])
		seg, ws, err := t.render(c)
		if err != nil {
			return nil, err
		}
		out.WriteString(seg)
		warnings = append(warnings, ws...)
		last = c.Span.End
	}
	out.WriteString(a.Source[last:])

	return &construct.Result{Content: out.String(), Warnings: warnings}, nil
}

// render rewrites one construct, children first (innermost-out), so the
// parent's policy sees the already-rewritten child text.
func (t *Transformer) render(c *construct.Construct) (string, []construct.Warning, error) {
	body := c.Raw
	var warnings []construct.Warning

	if len(c.Children) > 0 {
		var b strings.Builder
		last := 0
		for _, ch := range c.Children {
			b.WriteString(c.Raw[last : ch.Span.Start-c.Span.Start])
			seg, ws, err := t.render(ch)
			if err != nil {
				return "", nil, err
			}
			b.WriteString(seg)
			warnings = append(warnings, ws...)
			last = ch.Span.End - c.Span.Start
		}
		b.WriteString(c.Raw[last:])
		body = b.String()
	}

	p, ok := policyFor(c.Kind, t.target)
	if !ok {
		return "", nil, &ConfigError{Kind: c.Kind, Target: t.target}
	}

	switch p.Strategy {
	case StrategyPass:
		return body, warnings, nil

	case StrategyRewrite:
		return p.rewrite(c, body), warnings, nil

	case StrategyDegrade:
		text := p.rewrite(c, body)
		if p.Note != "" {
			text += " *(" + p.Note + ")*"
		}
		warnings = append(warnings, construct.Warning{
			Kind:     c.Kind,
			Severity: construct.SeverityDegraded,
			Message:  p.warnMessage(c, t.target),
		})
		return text, warnings, nil

	case StrategyDecompose:
		text, ws := t.decompose(c, body)
		return text, append(warnings, ws...), nil

	case StrategyRemove:
		warnings = append(warnings, construct.Warning{
			Kind:     c.Kind,
			Severity: construct.SeverityUnsupported,
			Message:  p.warnMessage(c, t.target),
		})
		return "", warnings, nil
	}

	return "", nil, &ConfigError{Kind: c.Kind, Target: t.target}
}
