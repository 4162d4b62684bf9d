package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	keywordGroup     = "GROUP"
	keywordAttribute = "ATTRIBUTE"
	keywordDataset   = "DATASET"

	// rootGroupToken names the file root; it opens no group of its own.
	rootGroupToken = `"/"`

	// scalarIndexToken precedes the value of a rank-0 attribute or dataset.
	scalarIndexToken = "(0):"

	openBrace  = "{"
	closeBrace = "}"
)

// Classify tags a dump line by its structural role.
// Brace tokens are detected independently of the line's kind; several
// braces of the same kind on one line still move the depth by one.
func Classify(line string) (Line, error) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return Line{}, fmt.Errorf("%w: empty line", ErrMalformedLine)
	}

	var result Line

	switch tokens[0] {
	case keywordGroup:
		if len(tokens) < 2 {
			return Line{}, fmt.Errorf("%w: GROUP without a name", ErrMalformedLine)
		}
		if tokens[1] != rootGroupToken {
			result.Kind = GroupOpen
			result.Name = unquote(tokens[1])
		}
	case keywordAttribute, keywordDataset:
		if len(tokens) < 2 {
			return Line{}, fmt.Errorf("%w: %s without a name", ErrMalformedLine, tokens[0])
		}
		result.Kind = LeafDecl
		result.Name = unquote(tokens[1])
	case scalarIndexToken:
		result.Kind = Value
		result.Payload = strings.Join(tokens[1:], " ")
	}

	// Only whole brace tokens count; braces inside quoted payloads do not.
	for _, tok := range tokens {
		switch tok {
		case openBrace:
			result.Opens = true
		case closeBrace:
			result.Closes = true
		}
	}

	return result, nil
}

// unquote strips one pair of surrounding double quotes.
func unquote(tok string) string {
	if len(tok) >= 2 && strings.HasPrefix(tok, `"`) && strings.HasSuffix(tok, `"`) {
		return tok[1 : len(tok)-1]
	}
	return tok
}

// Scanner classifies a dump report line by line. Lines may be of any
// length; h5dump -w 0 prints a whole dataset on one line.
type Scanner struct {
	reader  *bufio.Reader
	line    Line
	lineNum int
	done    bool
	err     error
}

// NewScanner creates a Scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{reader: bufio.NewReaderSize(r, 64*1024)}
}

// Scan advances to the next line. It returns false at end of input or on
// the first error, which is then available from Err.
func (s *Scanner) Scan() bool {
	if s.err != nil || s.done {
		return false
	}

	text, err := s.reader.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			s.err = fmt.Errorf("reading line %d: %w", s.lineNum+1, err)
			return false
		}
		s.done = true
		if text == "" {
			return false
		}
	}
	s.lineNum++

	text = strings.TrimSuffix(text, "\n")
	text = strings.TrimSuffix(text, "\r")

	line, err := Classify(text)
	if err != nil {
		s.err = &LineError{Line: s.lineNum, Err: err}
		return false
	}
	s.line = line
	return true
}

// Line returns the most recently classified line.
func (s *Scanner) Line() Line {
	return s.line
}

// LineNumber returns the 1-based number of the most recently read line.
func (s *Scanner) LineNumber() int {
	return s.lineNum
}

// Err returns the first error encountered by Scan.
func (s *Scanner) Err() error {
	return s.err
}
