// Package tags provides gameplay tag tokens and tag sets.
// Tags are opaque and compare by pointer identity.
package tags

import "sort"

// Tag is a gameplay tag token
type Tag struct {
	name string
}

// New creates a new tag. Use a Registry to share one tag per name.
func New(name string) *Tag {
	return &Tag{name: name}
}

// Name returns the display name of the tag
func (t *Tag) Name() string {
	if t == nil {
		return ""
	}
	return t.name
}

func (t *Tag) String() string { return t.Name() }

// Set is an unordered set of tags
type Set map[*Tag]struct{}

// NewSet creates a set holding the given tags
func NewSet(tags ...*Tag) Set {
	s := make(Set, len(tags))
	s.Add(tags...)
	return s
}

// Add inserts tags into the set, ignoring nil tags
func (s Set) Add(tags ...*Tag) {
	for _, t := range tags {
		if t == nil {
			continue
		}
		s[t] = struct{}{}
	}
}

// Contains reports whether the tag is in the set
func (s Set) Contains(t *Tag) bool {
	_, ok := s[t]
	return ok
}

// ContainsAll reports whether every tag is in the set
func (s Set) ContainsAll(tags []*Tag) bool {
	for _, t := range tags {
		if !s.Contains(t) {
			return false
		}
	}
	return true
}

// ContainsAny reports whether at least one tag is in the set
func (s Set) ContainsAny(tags []*Tag) bool {
	for _, t := range tags {
		if s.Contains(t) {
			return true
		}
	}
	return false
}

// Union returns a new set with the tags of both sets
func (s Set) Union(other Set) Set {
	out := make(Set, len(s)+len(other))
	for t := range s {
		out[t] = struct{}{}
	}
	for t := range other {
		out[t] = struct{}{}
	}
	return out
}

// Names returns the sorted tag names, for logging and display
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for t := range s {
		names = append(names, t.Name())
	}
	sort.Strings(names)
	return names
}

// Registry interns tags by name so that loaders resolve the same name to the
// same tag
type Registry struct {
	tags map[string]*Tag
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{tags: make(map[string]*Tag)}
}

// Get returns the tag registered under name, creating it on first use
func (r *Registry) Get(name string) *Tag {
	if t, ok := r.tags[name]; ok {
		return t
	}
	t := New(name)
	r.tags[name] = t
	return t
}

// Lookup returns the tag registered under name without creating it
func (r *Registry) Lookup(name string) (*Tag, bool) {
	t, ok := r.tags[name]
	return t, ok
}
