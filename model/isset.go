package model

import (
	"strconv"

	"github.com/mcncl/jsonmodel/internal/path"
)

// Isset reports whether every piece of p resolves in the document.
//
// Unlike Get it does not validate p. The path is cut at '.', '[' and ']' and
// each piece is looked up as a member name, or as an array position written
// in plain decimal. Paths that Get would reject, such as "foo[abc]", simply
// report false. A member holding null counts as set, and an empty path is
// trivially set. This is not PHP's isset, which reports false for null;
// callers wanting that check Get and IsNull.
func (m *Model) Isset(p string) bool {
	current := m.root
	for _, token := range path.Tokenize(p) {
		if obj := current.Object(); obj.Has(token) {
			current = obj.Ref(token)
			continue
		}
		if i, ok := arrayPosition(token); ok && current.IsArray() {
			if elem := current.IndexRef(i); elem != nil {
				current = elem
				continue
			}
		}
		return false
	}
	return true
}

// arrayPosition accepts only the canonical form of a non-negative integer,
// so "1" is a position but "01", "+1" and "-1" are not.
func arrayPosition(token string) (int, bool) {
	i, err := strconv.Atoi(token)
	if err != nil || i < 0 || strconv.Itoa(i) != token {
		return 0, false
	}
	return i, true
}
