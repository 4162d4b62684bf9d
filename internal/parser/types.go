package parser

import (
	"errors"
	"fmt"
)

// Kind is the structural role of a dump line.
type Kind int

const (
	Ignorable Kind = iota // Carries no group, leaf or value event
	GroupOpen             // GROUP "name" {
	LeafDecl              // ATTRIBUTE "name" { or DATASET "name" {
	Value                 // (0): payload
)

func (k Kind) String() string {
	switch k {
	case GroupOpen:
		return "group"
	case LeafDecl:
		return "leaf"
	case Value:
		return "value"
	default:
		return "ignorable"
	}
}

// Line is the classification of a single dump line.
type Line struct {
	Kind    Kind   // Structural role
	Name    string // Unquoted group or leaf name (GroupOpen, LeafDecl)
	Payload string // Value text with tokens rejoined by single spaces (Value)
	Opens   bool   // Line has a "{" token
	Closes  bool   // Line has a "}" token
}

var (
	// ErrMalformedLine is returned for lines that lack a token a rule needs.
	ErrMalformedLine = errors.New("malformed dump line")
)

// LineError ties a classification failure to its 1-based line number.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}
