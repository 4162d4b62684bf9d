package cmd

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"

	"github.com/nanopore-tools/h5audit/internal/analyzer"
	"github.com/nanopore-tools/h5audit/internal/config"
	"github.com/nanopore-tools/h5audit/internal/report"
)

// runAnalysis scans every path and writes the report to w. Nothing is
// written unless all files were scanned and the report rendered.
func runAnalysis(w io.Writer, stdin io.Reader, logger *slog.Logger, cfg *config.Config, paths []string) error {
	a := analyzer.New(analyzer.Options{
		RepeatPrefix: cfg.RepeatPrefix,
		Stdin:        stdin,
	}, logger)

	if err := a.ScanFiles(paths); err != nil {
		return err
	}
	res := a.Result()

	var buf bytes.Buffer
	if err := report.Write(&buf, res.Tree, res.Classification, cfg.ReportOptions()); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	_, err := buf.WriteTo(w)
	return err
}
