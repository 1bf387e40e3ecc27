// internal/pipeline/pipeline.go
package pipeline

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/sanspareilsmyn/gfflens/internal/config"
	"github.com/sanspareilsmyn/gfflens/internal/stats"
)

// Attribute columns in real annotation files can exceed bufio's default
// 64 KiB token limit.
const maxLineBytes = 4 * 1024 * 1024

// Pipeline runs one aggregation pass: scan the GFF source line by line,
// accumulate statistics, write the JSON report. Processing is a single
// sequential traversal of a single input; there is nothing to parallelize
// here that would survive the rounding rules (see stats.Aggregator.Merge).
type Pipeline struct {
	cfg    *config.Config
	logger *zap.Logger
}

// New creates a pipeline for the given configuration.
func New(cfg *config.Config, logger *zap.Logger) *Pipeline {
	logger.Info("Pipeline initialized",
		zap.String("input", cfg.Input.Path),
		zap.String("report", cfg.Report.Path),
		zap.String("filter_type", cfg.Input.FilterType),
	)
	return &Pipeline{cfg: cfg, logger: logger}
}

// Run executes the pass. Context cancellation is honored between lines;
// the scan itself is a bounded linear pass over one file.
func (p *Pipeline) Run(ctx context.Context) error {
	sugar := p.logger.Sugar()

	in, err := os.Open(p.cfg.Input.Path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOpenInput, err)
	}
	defer func() {
		_ = in.Close()
	}()

	agg := stats.New(p.cfg.Input.FilterType)
	if err := p.scan(ctx, in, agg); err != nil {
		return err
	}

	report := agg.Finalize()
	sugar.Infow("Aggregation complete",
		"total_features", report.TotalFeatures,
		"feature_types", len(report.ByType),
		"skipped_lines", agg.Skipped(),
	)

	if err := p.writeReport(report); err != nil {
		return err
	}
	sugar.Infow("Report written", "path", p.cfg.Report.Path)
	return nil
}

func (p *Pipeline) scan(ctx context.Context, r io.Reader, agg *stats.Aggregator) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		agg.Ingest(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrScanInput, err)
	}
	return nil
}

// writeReport serializes the report to report.path, or to stdout when the
// path is "-".
func (p *Pipeline) writeReport(report stats.Report) error {
	if p.cfg.Report.Path == "-" {
		return encodeReport(os.Stdout, report)
	}

	f, err := os.Create(p.cfg.Report.Path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	if err := encodeReport(f, report); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}

// encodeReport writes the report as 2-space-indented JSON.
func encodeReport(w io.Writer, report stats.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}
