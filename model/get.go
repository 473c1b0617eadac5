package model

import (
	"github.com/mcncl/jsonmodel/internal/models"
	"github.com/mcncl/jsonmodel/internal/path"
)

// Get returns the value at p. The boolean is false when any step of p is
// missing from the document, which is different from finding a JSON null.
// Only a malformed p produces an error.
//
// The returned Value shares structure with the document.
func (m *Model) Get(p string) (Value, bool, error) {
	steps, err := path.Parse(p)
	if err != nil {
		return Value{}, false, err
	}

	node := m.lookup(steps)
	if node == nil {
		return Value{}, false, nil
	}
	return *node, true, nil
}

// lookup follows steps from the root without changing anything. Property
// steps only enter objects and index steps only enter arrays.
func (m *Model) lookup(steps []path.Step) *models.Value {
	current := m.root
	for _, step := range steps {
		switch step.Kind {
		case path.PropertyStep:
			current = current.Object().Ref(step.Name)
		case path.IndexStep:
			current = current.IndexRef(step.Index)
		}
		if current == nil {
			return nil
		}
	}
	return current
}
