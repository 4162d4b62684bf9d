package hier

import (
	"strings"

	"github.com/nanopore-tools/h5audit/internal/parser"
)

// DefaultRepeatPrefix names the per-read groups of multi-read files.
// Such siblings share one layout, so recording stops at the second one.
const DefaultRepeatPrefix = "read_"

// FreezeReason tells why structure recording stopped.
type FreezeReason int

const (
	NotFrozen FreezeReason = iota
	FrozenRepeatGroup
	FrozenEndOfFile
)

func (r FreezeReason) String() string {
	switch r {
	case FrozenRepeatGroup:
		return "repeated group"
	case FrozenEndOfFile:
		return "end of first file"
	default:
		return "recording"
	}
}

// Builder records the hierarchy from the structural pass.
type Builder struct {
	tree         *Tree
	cursor       int
	depth        int
	openedAt     []int // Brace depth at which each open group was opened
	recording    bool
	seenRepeat   bool
	repeatPrefix string
	frozen       FreezeReason
}

// Option configures a Builder.
type Option func(*Builder)

// WithRepeatPrefix overrides DefaultRepeatPrefix. An empty prefix disables
// repeat detection.
func WithRepeatPrefix(prefix string) Option {
	return func(b *Builder) {
		b.repeatPrefix = prefix
	}
}

// NewBuilder creates a Builder positioned at the root group.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		tree:         NewTree(),
		cursor:       RootIndex,
		recording:    true,
		repeatPrefix: DefaultRepeatPrefix,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Feed applies one classified line. It is a no-op once recording stopped.
func (b *Builder) Feed(line parser.Line) {
	if !b.recording {
		return
	}

	switch line.Kind {
	case parser.GroupOpen:
		if b.isRepeatGroup(line.Name) {
			if b.seenRepeat {
				b.freeze(FrozenRepeatGroup)
				return
			}
			b.seenRepeat = true
		}
		b.openedAt = append(b.openedAt, b.depth)
		b.cursor = b.tree.add(b.cursor, GroupNode, line.Name)
	case parser.LeafDecl:
		b.tree.add(b.cursor, LeafNode, line.Name)
	}

	if line.Opens {
		b.depth++
	}
	if line.Closes {
		b.depth--
		// The group opened at this depth has just closed.
		if n := len(b.openedAt); n > 0 && b.openedAt[n-1] == b.depth {
			b.openedAt = b.openedAt[:n-1]
			b.cursor = b.tree.nodes[b.cursor].Parent
		}
	}
}

func (b *Builder) isRepeatGroup(name string) bool {
	return b.repeatPrefix != "" &&
		strings.HasPrefix(name, b.repeatPrefix) &&
		len(name) > len(b.repeatPrefix)
}

// EndFile marks the end of an input file. Structure comes from the first
// file only.
func (b *Builder) EndFile() {
	if b.recording {
		b.freeze(FrozenEndOfFile)
	}
}

func (b *Builder) freeze(reason FreezeReason) {
	b.recording = false
	b.frozen = reason
	b.openedAt = nil
}

// Recording reports whether new structure is still being recorded.
func (b *Builder) Recording() bool {
	return b.recording
}

// FreezeReason reports why recording stopped, or NotFrozen.
func (b *Builder) FreezeReason() FreezeReason {
	return b.frozen
}

// Depth returns the current brace depth of the structural pass.
func (b *Builder) Depth() int {
	return b.depth
}

// Tree returns the recorded hierarchy.
func (b *Builder) Tree() *Tree {
	return b.tree
}
