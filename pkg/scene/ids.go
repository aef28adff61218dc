package scene

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// ID is the unique monotonic identifier every scene primitive carries
// (§9 "Global mutable state"). It is strictly increasing within the
// allocator that produced it; wraparound is a bug, never triggered at
// realistic scene sizes.
type ID uint64

// IDAllocator hands out strictly increasing IDs. Implementations are
// expected to localize this per-layout or per-simulator rather than share
// one process-wide allocator, so tests stay hermetic.
type IDAllocator struct {
	next atomic.Uint64
}

// NewIDAllocator creates an allocator whose first ID is 1 (0 is never handed
// out; a LightRay that has not yet bounced marks its missing source
// primitive with a nil SourceItemID rather than an ID value).
func NewIDAllocator() *IDAllocator {
	return &IDAllocator{}
}

// Next returns the next strictly increasing ID.
func (a *IDAllocator) Next() ID {
	return ID(a.next.Add(1))
}

// AttributeID is the stable identity that distinguishes two otherwise-equal
// ShapeAttributes records, independent of the primitive ID sequence. Two
// primitives sharing the same optical properties (say, two walls both made
// of glass) still carry distinct AttributeIDs if they were constructed
// separately, which is what the tracer's "did the ray come from this
// surface" tie-break needs: a primitive ID match, not an attribute-value
// match.
type AttributeID uuid.UUID

// NewAttributeID mints a fresh stable identity.
func NewAttributeID() AttributeID {
	return AttributeID(uuid.New())
}

// String returns the canonical UUID string form.
func (id AttributeID) String() string {
	return uuid.UUID(id).String()
}
