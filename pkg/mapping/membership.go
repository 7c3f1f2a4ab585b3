package mapping

import (
	"fmt"

	"github.com/matzehuels/assetmap/pkg/errors"
)

// Kind distinguishes the two grouping concepts of the inventory.
type Kind uint8

const (
	// KindNone marks a standalone display instance without membership.
	KindNone Kind = iota
	// KindSystem is a named system (e.g. "Prod").
	KindSystem
	// KindGroup is a named group (e.g. "Web").
	KindGroup
)

// String returns the wire name of the kind ("system", "group" or "").
func (k Kind) String() string {
	switch k {
	case KindSystem:
		return "system"
	case KindGroup:
		return "group"
	default:
		return ""
	}
}

// ParseKind parses "system" or "group".
func ParseKind(s string) (Kind, error) {
	switch s {
	case "system":
		return KindSystem, nil
	case "group":
		return KindGroup, nil
	}
	return KindNone, errors.New(errors.ErrCodeInvalidInput, "unknown membership kind %q", s)
}

// Membership is a tagged reference to a system or group by name.
// The zero value means "no membership".
type Membership struct {
	Kind Kind
	Name string
}

// System returns a system membership.
func System(name string) Membership { return Membership{Kind: KindSystem, Name: name} }

// Group returns a group membership.
func Group(name string) Membership { return Membership{Kind: KindGroup, Name: name} }

// IsZero reports whether m is the empty membership.
func (m Membership) IsZero() bool { return m.Kind == KindNone }

// Key returns the compound lookup key, e.g. "system:Prod".
func (m Membership) Key() string {
	return m.Kind.String() + ":" + m.Name
}

func (m Membership) String() string {
	if m.IsZero() {
		return "standalone"
	}
	return m.Key()
}

// index maps names to member node positions, preserving first-seen name order.
type index struct {
	names   []string
	members map[string][]int
}

func newIndex() index {
	return index{members: make(map[string][]int)}
}

func (ix *index) add(name string, node int) {
	if _, ok := ix.members[name]; !ok {
		ix.names = append(ix.names, name)
	}
	ix.members[name] = append(ix.members[name], node)
}

func (ix *index) count(name string) int { return len(ix.members[name]) }

// qualifies reports whether name has enough members to become a compound.
func (ix *index) qualifies(name string) bool {
	return ix.count(name) >= MinCompoundMembers
}

// dedupe drops empty and repeated names, keeping first occurrences in order.
func dedupe(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

var _ fmt.Stringer = Membership{}
