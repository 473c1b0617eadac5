package analyzer

import (
	"github.com/mcncl/jsonmodel/internal/models"
	"github.com/mcncl/jsonmodel/internal/path"
)

// PathInfo describes one node of a document.
type PathInfo struct {
	Path string
	Kind models.Kind
	// Depth counts steps from the root, so an index step adds one.
	Depth int
	// Addressable is false when no path accepted by the strict grammar
	// reaches the node, e.g. keys like "first-name" or nested arrays.
	Addressable bool
}

// AnalysisResult holds every path of a document in document order.
type AnalysisResult struct {
	Paths         []PathInfo
	Leaves        int
	Containers    int
	Unaddressable int
	MaxDepth      int
}

// Analyzer walks a value tree and lists the paths that lead to its nodes.
type Analyzer struct {
	// LeavesOnly skips objects and arrays in the output. Counts still
	// include them.
	LeavesOnly bool
}

// NewAnalyzer creates a new Analyzer instance.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze processes the tree rooted at root. The root itself has no path and
// is not listed.
func (a *Analyzer) Analyze(root models.Value) AnalysisResult {
	var result AnalysisResult
	a.analyzeChildren(root, nil, true, &result)
	return result
}

// analyzeNode records node and recurses into its children.
func (a *Analyzer) analyzeNode(node models.Value, steps []path.Step, addressable bool, result *AnalysisResult) {
	isContainer := node.IsObject() || node.IsArray()
	if isContainer {
		result.Containers++
	} else {
		result.Leaves++
	}
	if !addressable {
		result.Unaddressable++
	}
	if len(steps) > result.MaxDepth {
		result.MaxDepth = len(steps)
	}

	if !isContainer || !a.LeavesOnly {
		result.Paths = append(result.Paths, PathInfo{
			Path:        path.Format(steps),
			Kind:        node.Kind(),
			Depth:       len(steps),
			Addressable: addressable,
		})
	}

	a.analyzeChildren(node, steps, addressable, result)
}

func (a *Analyzer) analyzeChildren(node models.Value, steps []path.Step, addressable bool, result *AnalysisResult) {
	switch node.Kind() {
	case models.Object:
		obj := node.Object()
		for _, key := range obj.Keys() {
			member, _ := obj.Get(key)
			a.analyzeNode(member, appendStep(steps, path.Property(key)), addressable && path.IsIdentifier(key), result)
		}
	case models.Array:
		// An index can only follow a property name in the grammar.
		indexable := len(steps) > 0 && steps[len(steps)-1].Kind == path.PropertyStep
		for i, elem := range node.Elements() {
			a.analyzeNode(elem, appendStep(steps, path.Index(i)), addressable && indexable, result)
		}
	}
}

// appendStep copies steps so sibling branches never share a backing array.
func appendStep(steps []path.Step, step path.Step) []path.Step {
	out := make([]path.Step, len(steps), len(steps)+1)
	copy(out, steps)
	return append(out, step)
}

// Addressable returns the subset of paths the strict grammar can reach.
func (r AnalysisResult) Addressable() []string {
	var out []string
	for _, p := range r.Paths {
		if p.Addressable {
			out = append(out, p.Path)
		}
	}
	return out
}
