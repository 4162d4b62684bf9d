// Package analyzer scans dump reports in order, recording the hierarchy of
// the first one and the values of all of them.
package analyzer

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/nanopore-tools/h5audit/internal/aggregate"
	"github.com/nanopore-tools/h5audit/internal/hier"
	"github.com/nanopore-tools/h5audit/internal/input"
	"github.com/nanopore-tools/h5audit/internal/parser"
	"github.com/nanopore-tools/h5audit/internal/report"
)

// Options configures an Analyzer.
type Options struct {
	RepeatPrefix string    // Group name prefix that triggers repeat collapsing; empty disables it
	Stdin        io.Reader // Source for the "-" path; os.Stdin when nil
}

// DefaultOptions returns options with the standard repeat prefix.
func DefaultOptions() Options {
	return Options{RepeatPrefix: hier.DefaultRepeatPrefix}
}

// Analyzer holds the state shared across all scanned files.
type Analyzer struct {
	builder *hier.Builder
	agg     *aggregate.Aggregator
	opener  *input.Opener
	logger  *slog.Logger
	files   int
}

// Result is the outcome of a completed run.
type Result struct {
	Tree           *hier.Tree
	Aggregator     *aggregate.Aggregator
	Classification *report.Classification
	Files          int
}

// New creates an Analyzer. A nil logger discards diagnostics.
func New(opts Options, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Analyzer{
		builder: hier.NewBuilder(hier.WithRepeatPrefix(opts.RepeatPrefix)),
		agg:     aggregate.New(),
		opener:  &input.Opener{Stdin: opts.Stdin},
		logger:  logger,
	}
}

// ScanFiles scans each path in order. The first error aborts the run.
func (a *Analyzer) ScanFiles(paths []string) error {
	for _, path := range paths {
		if err := a.scanFile(path); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

func (a *Analyzer) scanFile(path string) error {
	rc, err := a.opener.Open(path)
	if err != nil {
		return err
	}
	defer rc.Close()

	return a.ScanReader(path, rc)
}

// ScanReader scans one complete dump report. Structure is recorded only
// while the builder is still recording; values are always aggregated.
func (a *Analyzer) ScanReader(name string, r io.Reader) error {
	s := parser.NewScanner(r)
	for s.Scan() {
		line := s.Line()

		if a.builder.Recording() {
			a.builder.Feed(line)
			if !a.builder.Recording() {
				a.logFrozen(name, s.LineNumber())
			}
		}

		if err := a.agg.Feed(line); err != nil {
			return &parser.LineError{Line: s.LineNumber(), Err: err}
		}
	}
	if err := s.Err(); err != nil {
		return err
	}

	if a.builder.Recording() {
		a.builder.EndFile()
		a.logFrozen(name, s.LineNumber())
	}
	a.files++

	a.logger.Debug("scanned dump report",
		"file", name,
		"lines", s.LineNumber(),
		"leaves", a.agg.Len())
	return nil
}

func (a *Analyzer) logFrozen(name string, line int) {
	groups, leaves := a.builder.Tree().Stats()
	a.logger.Debug("structure recording stopped",
		"reason", a.builder.FreezeReason().String(),
		"file", name,
		"line", line,
		"depth", a.builder.Depth(),
		"groups", groups,
		"leaves", leaves)
}

// Result classifies the aggregated values. Call it after the last file.
func (a *Analyzer) Result() *Result {
	cls := report.Classify(a.agg)
	a.logger.Debug("classified leaves",
		"files", a.files,
		"constant", len(cls.Constant),
		"variable", len(cls.Variable),
		"valueless", a.agg.Len()-len(cls.Constant)-len(cls.Variable))

	return &Result{
		Tree:           a.builder.Tree(),
		Aggregator:     a.agg,
		Classification: cls,
		Files:          a.files,
	}
}
