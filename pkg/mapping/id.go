package mapping

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Identifier prefixes for generated elements.
const (
	prefixSystem = "system"
	prefixGroup  = "group"
	prefixNode   = "node"
	prefixEdge   = "edge"
)

// ID is an opaque identifier generated during one mapping pass.
// It is only formatted as a string at the serialization boundary.
// The zero ID means "absent" (e.g. no parent compound).
type ID struct {
	prefix string
	n      int
}

// IsZero reports whether the ID is absent.
func (id ID) IsZero() bool { return id.n == 0 }

// String formats the ID as "{prefix}-{n}". The zero ID formats as "".
func (id ID) String() string {
	if id.IsZero() {
		return ""
	}
	return id.prefix + "-" + strconv.Itoa(id.n)
}

// allocator mints unique identifiers for a single pass.
// The counter is shared by all prefixes, so IDs never collide across kinds.
type allocator struct {
	pass string
	next int
}

func newAllocator(pass string) allocator {
	return allocator{pass: pass}
}

// generate returns the next identifier for the given prefix.
func (a *allocator) generate(prefix string) ID {
	a.next++
	if a.pass != "" {
		prefix += "." + a.pass
	}
	return ID{prefix: prefix, n: a.next}
}

func (a *allocator) reset() { a.next = 0 }

// newPass returns a short random pass token.
func newPass() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
