// Package report classifies leaves as constant or variable and renders the
// recorded hierarchy once per class.
package report

import "github.com/nanopore-tools/h5audit/internal/aggregate"

// Classification partitions leaf names by how many distinct values they had.
// Leaves that never carried a value belong to neither class.
type Classification struct {
	Constant map[string]string   // Leaf name -> its single value
	Variable map[string]struct{} // Leaves with two or more values
}

// Classify partitions the aggregated leaves.
func Classify(agg *aggregate.Aggregator) *Classification {
	c := &Classification{
		Constant: make(map[string]string),
		Variable: make(map[string]struct{}),
	}
	for _, name := range agg.Names() {
		switch n := agg.Count(name); {
		case n == 1:
			c.Constant[name] = agg.Values(name)[0]
		case n >= 2:
			c.Variable[name] = struct{}{}
		}
	}
	return c
}

// IsConstant reports whether name had exactly one distinct value.
func (c *Classification) IsConstant(name string) bool {
	_, ok := c.Constant[name]
	return ok
}

// IsVariable reports whether name had two or more distinct values.
func (c *Classification) IsVariable(name string) bool {
	_, ok := c.Variable[name]
	return ok
}

// Value returns the single value of a constant leaf.
func (c *Classification) Value(name string) (string, bool) {
	v, ok := c.Constant[name]
	return v, ok
}

// ConstantFilter selects constant leaves, showing their value if requested.
func (c *Classification) ConstantFilter(showValues bool) Filter {
	f := Filter{Include: c.IsConstant}
	if showValues {
		f.Value = c.Value
	}
	return f
}

// VariableFilter selects variable leaves.
func (c *Classification) VariableFilter() Filter {
	return Filter{Include: c.IsVariable}
}
