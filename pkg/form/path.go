package form

import (
	"slices"
	"strings"
)

// Path is a group path, outermost group first. The empty path is the root.
type Path []string

// ParsePath splits a dot separated group path. Empty segments are dropped.
func ParsePath(s string) Path {
	if s == "" {
		return nil
	}
	var p Path
	for seg := range strings.SplitSeq(s, ".") {
		if seg != "" {
			p = append(p, seg)
		}
	}
	return p
}

// String joins the path with dots.
func (p Path) String() string {
	return strings.Join(p, ".")
}

// IsRoot reports whether the path is empty.
func (p Path) IsRoot() bool {
	return len(p) == 0
}

// Equal reports exact segment equality.
func (p Path) Equal(o Path) bool {
	return slices.Equal(p, o)
}

// Child returns a new path with seg appended.
func (p Path) Child(seg string) Path {
	out := make(Path, 0, len(p)+1)
	out = append(out, p...)
	return append(out, seg)
}

// Key returns the dot qualified data key of a field inside the group.
func (p Path) Key(name string) string {
	if len(p) == 0 {
		return name
	}
	return p.String() + "." + name
}
