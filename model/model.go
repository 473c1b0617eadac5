// Package model gives path-based read and write access to a JSON document.
//
// Paths are dot-separated member names with optional bracketed indexes:
//
//	m, _ := model.Parse(`{"foo": {"bar": [1, 2, 3]}}`)
//	v, ok, err := m.Get("foo.bar[1]") // 2, true, nil
//	err = m.Set("foo.baz.qux[2]", model.StringValue("x"))
//	out, _ := m.Export() // {"foo":{"bar":[1,2,3],"baz":{"qux":[null,null,"x"]}}}
//
// Set never fails because of the shape of the document. Missing containers
// are created, and a node of the wrong kind on the way is replaced by an
// empty container of the kind the path needs, discarding what it held.
//
// A Model is not safe for concurrent use.
package model

import (
	"io"

	"github.com/mcncl/jsonmodel/internal/analyzer"
	"github.com/mcncl/jsonmodel/internal/errors"
	"github.com/mcncl/jsonmodel/internal/models"
	"github.com/mcncl/jsonmodel/internal/parser"
)

type (
	// Value is a node of the document tree.
	Value = models.Value
	// Kind identifies the JSON type of a Value.
	Kind = models.Kind
	// Object is an ordered JSON object.
	Object = models.JSONObject
	// MalformedPathError is returned by Get and Set for paths outside the
	// grammar.
	MalformedPathError = errors.MalformedPathError
	// PathInfo describes one node listed by Paths.
	PathInfo = analyzer.PathInfo
	// AnalysisResult is what Paths returns.
	AnalysisResult = analyzer.AnalysisResult
)

const (
	KindNull   = models.Null
	KindBool   = models.Bool
	KindNumber = models.Number
	KindString = models.String
	KindObject = models.Object
	KindArray  = models.Array
)

// ErrMalformedPath matches every MalformedPathError via errors.Is.
var ErrMalformedPath = errors.ErrMalformedPath

// Value constructors.
var (
	NullValue     = models.NullValue
	BoolValue     = models.BoolValue
	NumberValue   = models.NumberValue
	IntValue      = models.IntValue
	FloatValue    = models.FloatValue
	StringValue   = models.StringValue
	ObjectValue   = models.ObjectValue
	ArrayValue    = models.ArrayValue
	NewObject     = models.NewObject
	FromInterface = models.FromInterface
)

// Model owns a single JSON document.
type Model struct {
	root *models.Value

	logger         Logger
	faithfulExport bool
	parseOpts      []parser.Option
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger used for debug output. By default nothing is
// logged.
func WithLogger(l Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithFaithfulExport makes Export encode the root whatever its kind. Without
// it a root that is not an object exports as {}.
func WithFaithfulExport() Option {
	return func(m *Model) { m.faithfulExport = true }
}

// WithNormalizedKeys rewrites object keys to snake_case when a document is
// parsed, so keys like "first-name" become reachable as "first_name".
func WithNormalizedKeys() Option {
	return func(m *Model) { m.parseOpts = append(m.parseOpts, parser.WithNormalizedKeys()) }
}

// New returns a Model whose root is an empty object.
func New(opts ...Option) *Model {
	root := models.ObjectValue(nil)
	m := &Model{root: &root, logger: NopLogger{}}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Parse returns a Model holding the document in text. Any JSON value is
// accepted as the root.
func Parse(text string, opts ...Option) (*Model, error) {
	m := New(opts...)
	root, err := parser.ParseString(text, m.parseOpts...)
	if err != nil {
		return nil, err
	}
	return m.adopt(root), nil
}

// ParseReader is Parse for a reader.
func ParseReader(r io.Reader, opts ...Option) (*Model, error) {
	m := New(opts...)
	root, err := parser.Parse(r, m.parseOpts...)
	if err != nil {
		return nil, err
	}
	return m.adopt(root), nil
}

// ParseFile is Parse for the contents of a file.
func ParseFile(filePath string, opts ...Option) (*Model, error) {
	m := New(opts...)
	root, err := parser.ParseFile(filePath, m.parseOpts...)
	if err != nil {
		return nil, err
	}
	return m.adopt(root), nil
}

func (m *Model) adopt(root models.Value) *Model {
	m.root = &root
	m.logger.Debug("parsed document", "root", root.Kind(), "size", root.Len())
	return m
}

// Root returns the root of the document. It shares structure with the
// Model; Clone it before changing it.
func (m *Model) Root() Value {
	return *m.root
}

// Paths lists every node of the document with its path.
func (m *Model) Paths() AnalysisResult {
	return analyzer.NewAnalyzer().Analyze(*m.root)
}
