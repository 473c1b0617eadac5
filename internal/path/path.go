// Package path turns dotted path strings such as "foo.bar[2].baz" into
// traversal steps.
//
// Two tokenizers live here. Parse is strict and is what reads and writes go
// through. Tokenize is loose and only feeds existence checks: it never
// rejects input, so a path Parse refuses can still be probed.
package path

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mcncl/jsonmodel/internal/errors"
)

// StepKind distinguishes property descents from index descents.
type StepKind int

const (
	PropertyStep StepKind = iota
	IndexStep
)

func (k StepKind) String() string {
	if k == IndexStep {
		return "index"
	}
	return "property"
}

// Step is one unit of traversal: a named member of an object or a position
// in an array.
type Step struct {
	Kind  StepKind
	Name  string // PropertyStep only
	Index int    // IndexStep only
}

// Property returns a step into the object member name.
func Property(name string) Step { return Step{Kind: PropertyStep, Name: name} }

// Index returns a step into array position i.
func Index(i int) Step { return Step{Kind: IndexStep, Index: i} }

func (s Step) String() string {
	if s.Kind == IndexStep {
		return "[" + strconv.Itoa(s.Index) + "]"
	}
	return s.Name
}

var (
	identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	indexedPattern    = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\[([0-9]+)\]$`)
	looseSeparators   = regexp.MustCompile(`[.\[\]]`)
)

// IsIdentifier reports whether name can be written as a bare path segment.
func IsIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}

// Parse splits p on '.' and converts every segment into steps. A segment
// "name" yields one property step; "name[digits]" yields a property step
// followed by an index step.
//
// Empty segments, including the one an empty path produces, are rejected
// along with anything else that fits neither form.
func Parse(p string) ([]Step, error) {
	segments := strings.Split(p, ".")
	steps := make([]Step, 0, len(segments))

	for _, segment := range segments {
		if identifierPattern.MatchString(segment) {
			steps = append(steps, Property(segment))
			continue
		}

		m := indexedPattern.FindStringSubmatch(segment)
		if m == nil {
			return nil, &errors.MalformedPathError{Path: p, Segment: segment}
		}
		// Leading zeros are fine; values beyond int are not.
		idx, err := strconv.Atoi(m[2])
		if err != nil {
			return nil, &errors.MalformedPathError{Path: p, Segment: segment}
		}
		steps = append(steps, Property(m[1]), Index(idx))
	}

	return steps, nil
}

// Tokenize splits p on '.', '[' and ']' and keeps the non-empty pieces.
// Nothing is validated.
func Tokenize(p string) []string {
	pieces := looseSeparators.Split(p, -1)
	tokens := pieces[:0]
	for _, piece := range pieces {
		if piece != "" {
			tokens = append(tokens, piece)
		}
	}
	return tokens
}

// Format renders steps back into path syntax. Index steps attach to the
// preceding segment, so Format(Parse(p)) == p for every p Parse accepts
// without leading zeros.
func Format(steps []Step) string {
	var b strings.Builder
	for i, step := range steps {
		if step.Kind == PropertyStep && i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(step.String())
	}
	return b.String()
}
