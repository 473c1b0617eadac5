package model

import (
	"github.com/mcncl/jsonmodel/internal/errors"
	"github.com/mcncl/jsonmodel/internal/formatter"
	"github.com/mcncl/jsonmodel/internal/models"
)

// Export encodes the document as compact JSON with members in insertion
// order.
//
// A root that is not an object exports as {} unless the Model was built
// with WithFaithfulExport.
func (m *Model) Export() (string, error) {
	return m.export(formatter.NewFormatter(), formatter.StyleCompact)
}

// ExportPretty is Export with one member or element per line, indented by
// indent. Short arrays of scalars stay on one line.
func (m *Model) ExportPretty(indent string) (string, error) {
	f := formatter.NewFormatter()
	f.Indent = indent
	return m.export(f, formatter.StylePretty)
}

// ExportYAML encodes the document as YAML, indenting nested blocks by
// indent spaces. The root rule of Export applies.
func (m *Model) ExportYAML(indent int) (string, error) {
	f := formatter.NewFormatter()
	f.YAMLIndent = indent
	return m.export(f, formatter.StyleYAML)
}

func (m *Model) export(f *formatter.Formatter, style formatter.Style) (string, error) {
	root := *m.root
	if !root.IsObject() && !m.faithfulExport {
		m.logger.Debug("exporting non-object root as empty object", "root", root.Kind())
		root = models.ObjectValue(nil)
	}

	out, err := f.Format(root, style)
	if err != nil {
		return "", errors.NewExportError("failed to encode document", err)
	}
	return out, nil
}
