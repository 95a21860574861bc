// Package rules provides attribute removal rules applied to every element
// of a parsed XML document.
package rules

import (
	"slices"
	"strings"

	"github.com/beevik/etree"
)

// Rule is a single predicate -> removal step.
// Rules must not depend on each other: each one is evaluated on every
// element regardless of whether another rule matched.
type Rule interface {
	// Matches reports whether the rule applies to e.
	Matches(e *etree.Element) bool
	// Apply mutates e and returns the number of removed attributes.
	Apply(e *etree.Element) int
}

// AttrMatcher decides whether an attribute value qualifies for removal.
type AttrMatcher func(value string) bool

// RemoveAttr removes the unprefixed attribute Key when Match accepts its value.
// Namespaced attributes (e.g. foo:fill) are never touched.
type RemoveAttr struct {
	Key   string
	Match AttrMatcher
}

// Matches implements Rule.
func (r RemoveAttr) Matches(e *etree.Element) bool {
	a := lookup(e, r.Key)
	if a == nil {
		return false
	}

	return r.Match == nil || r.Match(a.Value)
}

// Apply implements Rule.
func (r RemoveAttr) Apply(e *etree.Element) int {
	removed := 0
	// removes every occurrence, duplicated attributes included
	e.Attr = slices.DeleteFunc(e.Attr, func(a etree.Attr) bool {
		if a.Space != "" || a.Key != r.Key {
			return false
		}

		if r.Match != nil && !r.Match(a.Value) {
			return false
		}

		removed++

		return true
	})

	return removed
}

// HasPrefix returns an AttrMatcher accepting values starting with prefix.
func HasPrefix(prefix string) AttrMatcher {
	return func(value string) bool {
		return strings.HasPrefix(value, prefix)
	}
}

// Equals returns an AttrMatcher accepting exactly want.
func Equals(want string) AttrMatcher {
	return func(value string) bool {
		return value == want
	}
}

// Any accepts every value.
func Any(string) bool { return true }

// Default returns the rule set used for sprite cleanup:
//   - fill starting with '#'
//   - fill equal to "none"
//   - every fill-rule
func Default() []Rule {
	return []Rule{
		RemoveAttr{Key: "fill", Match: HasPrefix("#")},
		RemoveAttr{Key: "fill", Match: Equals("none")},
		RemoveAttr{Key: "fill-rule", Match: Any},
	}
}

// Walk applies rs to root and all of its descendants, depth-first.
// It returns the total number of removed attributes.
func Walk(root *etree.Element, rs []Rule) int {
	if root == nil {
		return 0
	}

	removed := 0
	for _, r := range rs {
		if r.Matches(root) {
			removed += r.Apply(root)
		}
	}

	for _, child := range root.ChildElements() {
		removed += Walk(child, rs)
	}

	return removed
}

func lookup(e *etree.Element, key string) *etree.Attr {
	for i := range e.Attr {
		if e.Attr[i].Space == "" && e.Attr[i].Key == key {
			return &e.Attr[i]
		}
	}

	return nil
}
