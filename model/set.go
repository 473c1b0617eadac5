package model

import (
	"fmt"

	"github.com/mcncl/jsonmodel/internal/errors"
	"github.com/mcncl/jsonmodel/internal/models"
	"github.com/mcncl/jsonmodel/internal/path"
)

// Set stores a copy of v at p, creating whatever is missing on the way.
//
// Shape mismatches are resolved, not reported:
//   - a root that is not an object is replaced by an empty object first,
//     whatever p looks like;
//   - a node that a property step has to enter becomes an empty object if it
//     is not one already;
//   - a node that an index step has to enter becomes an empty array if it is
//     not one already, and the array is padded with nulls up to the index.
//
// Replaced nodes lose their previous content. The only error is a malformed
// p, in which case the document is left untouched.
func (m *Model) Set(p string, v Value) error {
	steps, err := path.Parse(p)
	if err != nil {
		return err
	}
	// v may share containers with the document, which the walk below can
	// change.
	v = v.Clone()

	if !m.root.IsObject() {
		m.logger.Debug("replacing root", "from", m.root.Kind(), "to", models.Object)
		m.root.ResetObject()
	}

	current := m.root
	for i, step := range steps {
		switch step.Kind {
		case path.PropertyStep:
			if !current.IsObject() {
				m.logger.Debug("retagged node", "path", path.Format(steps[:i]), "from", current.Kind(), "to", models.Object)
				current.ResetObject()
			}
			obj := current.Object()
			if !obj.Has(step.Name) {
				m.logger.Debug("created object", "path", path.Format(steps[:i+1]))
				obj.Set(step.Name, models.ObjectValue(nil))
			}
			current = obj.Ref(step.Name)
		case path.IndexStep:
			if !current.IsArray() {
				m.logger.Debug("retagged node", "path", path.Format(steps[:i]), "from", current.Kind(), "to", models.Array)
				current.ResetArray()
			}
			if step.Index >= current.Len() {
				m.logger.Debug("extended array", "path", path.Format(steps[:i]), "from", current.Len(), "to", step.Index+1)
			}
			current = current.Grow(step.Index)
		}
	}

	*current = v
	return nil
}

// SetAny converts x with FromInterface and stores it at p.
func (m *Model) SetAny(p string, x any) error {
	v, err := models.FromInterface(x)
	if err != nil {
		return errors.NewPathError(fmt.Sprintf("cannot store value at '%s'", p), err)
	}
	return m.Set(p, v)
}
