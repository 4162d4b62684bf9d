// Package aggregate collects the distinct values observed for every leaf
// name across all scanned dump reports.
package aggregate

import (
	"errors"
	"fmt"
	"slices"

	"github.com/nanopore-tools/h5audit/internal/parser"
)

// ErrValueWithoutLeaf is returned for a value line seen before any
// ATTRIBUTE or DATASET declaration.
var ErrValueWithoutLeaf = errors.New("value without a preceding leaf declaration")

// Aggregator maps leaf names to their distinct raw value strings.
// Leaves are identified by bare name, so equal names in different groups
// share one entry.
type Aggregator struct {
	values  map[string]map[string]struct{}
	current string
	hasLeaf bool
}

// New creates an empty Aggregator.
func New() *Aggregator {
	return &Aggregator{
		values: make(map[string]map[string]struct{}),
	}
}

// Feed applies one classified line.
func (a *Aggregator) Feed(line parser.Line) error {
	switch line.Kind {
	case parser.LeafDecl:
		a.current = line.Name
		a.hasLeaf = true
		if _, ok := a.values[line.Name]; !ok {
			a.values[line.Name] = make(map[string]struct{})
		}
	case parser.Value:
		if !a.hasLeaf {
			return fmt.Errorf("%w: %q", ErrValueWithoutLeaf, line.Payload)
		}
		a.values[a.current][line.Payload] = struct{}{}
	}
	return nil
}

// Count returns the number of distinct values seen for name.
func (a *Aggregator) Count(name string) int {
	return len(a.values[name])
}

// Values returns the distinct values seen for name, sorted.
func (a *Aggregator) Values(name string) []string {
	set := a.values[name]
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// Names returns every declared leaf name, sorted.
func (a *Aggregator) Names() []string {
	out := make([]string, 0, len(a.values))
	for name := range a.values {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// Len returns the number of declared leaf names.
func (a *Aggregator) Len() int {
	return len(a.values)
}
