package mms

// compactStringThreshold is the inline-storage cutoff, in bytes,
// above which a CompactString switches to a heap-backed representation.
const compactStringThreshold = 32

// CompactString is a string-like value with a small-buffer
// optimisation: values of compactStringThreshold bytes or fewer live
// in an inline array, longer values are heap-allocated. Exactly one
// representation is in use at any time. The zero value is the empty
// string, inline.
//
// Go's garbage collector makes the heap/inline split irrelevant to
// memory safety, but the distinction is kept because it is part of
// the data model: Bytes and Len must behave identically regardless of
// which representation backs a given value, and Clear must be
// idempotent in both.
type CompactString struct {
	inline   [compactStringThreshold]byte
	inlineN  int
	heap     []byte
	heapUsed bool
}

// NewCompactString copies s into a CompactString, choosing inline or
// heap storage by length.
func NewCompactString(s string) CompactString {
	var cs CompactString
	cs.Set(s)
	return cs
}

// Set replaces the value, choosing representation by length. A
// CompactString may be Set any number of times; the previous
// representation is simply discarded.
func (c *CompactString) Set(s string) {
	if len(s) <= compactStringThreshold {
		c.inlineN = copy(c.inline[:], s)
		c.heap = nil
		c.heapUsed = false
		return
	}
	c.heap = []byte(s)
	c.heapUsed = true
	c.inlineN = 0
}

// Len returns the length in bytes.
func (c CompactString) Len() int {
	if c.heapUsed {
		return len(c.heap)
	}
	return c.inlineN
}

// String returns the value as a Go string.
func (c CompactString) String() string {
	if c.heapUsed {
		return string(c.heap)
	}
	return string(c.inline[:c.inlineN])
}

// Bytes returns the value's bytes. The returned slice aliases
// CompactString's storage and must not be mutated by the caller.
func (c *CompactString) Bytes() []byte {
	if c.heapUsed {
		return c.heap
	}
	return c.inline[:c.inlineN]
}

// Clear resets the value to empty inline storage. Idempotent: calling
// Clear on an already-clear CompactString is a no-op.
func (c *CompactString) Clear() {
	c.inlineN = 0
	c.heap = nil
	c.heapUsed = false
}
