package buffer

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ErrOutOfRange is returned when an ordinal falls outside the live samples.
var ErrOutOfRange = errors.New("ordinal out of range")

// EvictPolicy controls how min/max react when a sample leaves the window.
type EvictPolicy int

const (
	// WidenOnly never shrinks min/max on eviction. Extremes that have left
	// the window keep widening the auto bounds until the next resize or
	// bulk replace.
	WidenOnly EvictPolicy = iota
	// RescanOnEvict rescans the live samples whenever the evicted value was
	// the current min or max.
	RescanOnEvict
)

func (p EvictPolicy) String() string {
	switch p {
	case WidenOnly:
		return "widen"
	case RescanOnEvict:
		return "rescan"
	default:
		return "unknown"
	}
}

// Buffer is a fixed-capacity circular buffer of samples with running
// min/max/sum. The backing slice always has exactly Capacity() slots; count
// tracks how many of them hold real samples.
//
// Buffer is not safe for concurrent use.
type Buffer struct {
	data  []float64
	count int
	next  int // slot the next Push overwrites

	min, max, sum float64
	policy        EvictPolicy
}

// New returns an empty buffer with the given capacity. Negative capacities
// are treated as zero.
func New(capacity int) *Buffer {
	if capacity < 0 {
		capacity = 0
	}
	b := &Buffer{data: make([]float64, capacity)}
	b.resetStats()
	return b
}

// FromValues returns a buffer holding values, with capacity len(values).
func FromValues(values []float64) *Buffer {
	b := &Buffer{}
	b.ReplaceAll(values)
	return b
}

// Mod returns the mathematical modulo of n by p (result in [0, p)).
// Go's % truncates toward zero, so negative n needs the extra wrap.
func Mod(n, p int) int {
	if p <= 0 {
		return 0
	}
	return ((n % p) + p) % p
}

// SetEvictPolicy selects how min/max behave on eviction.
func (b *Buffer) SetEvictPolicy(p EvictPolicy) { b.policy = p }

// EvictPolicy returns the active eviction policy.
func (b *Buffer) EvictPolicy() EvictPolicy { return b.policy }

// Push appends v, evicting the oldest sample when the buffer is full.
// A zero-capacity buffer ignores pushes.
func (b *Buffer) Push(v float64) {
	n := len(b.data)
	if n == 0 {
		return
	}

	full := b.count == n
	evicted := 0.0
	if full {
		evicted = b.data[b.next]
	}

	b.sum += v - evicted
	b.data[b.next] = v
	b.next = (b.next + 1) % n
	if !full {
		b.count++
	}

	if full && b.policy == RescanOnEvict && (evicted == b.min || evicted == b.max) {
		b.rescan()
		return
	}
	b.min = math.Min(b.min, v)
	b.max = math.Max(b.max, v)
}

// ReplaceAll overwrites the buffer with values. Capacity becomes len(values)
// and every value is live.
func (b *Buffer) ReplaceAll(values []float64) {
	b.data = append([]float64(nil), values...)
	b.count = len(b.data)
	b.next = 0
	b.rescan()
}

// SetCapacity resizes the buffer to n slots (rounded to the nearest
// integer). Values below 1 and the current capacity are ignored. The most
// recent min(count, n) samples are kept in order; extra slots are zero.
func (b *Buffer) SetCapacity(n float64) {
	size := int(math.Round(n))
	if size < 1 || size == len(b.data) {
		return
	}

	keep := min(b.count, size)
	resized := make([]float64, size)
	for i := 0; i < keep; i++ {
		resized[i] = b.data[b.slot(b.count-keep+i)]
	}

	b.data = resized
	b.count = keep
	b.next = keep % size
	b.rescan()
}

// Count returns the number of live samples.
func (b *Buffer) Count() int { return b.count }

// Capacity returns the number of slots.
func (b *Buffer) Capacity() int { return len(b.data) }

// Min returns the running minimum (+Inf when empty).
func (b *Buffer) Min() float64 { return b.min }

// Max returns the running maximum (-Inf when empty).
func (b *Buffer) Max() float64 { return b.max }

// Sum returns the sum of the live samples.
func (b *Buffer) Sum() float64 { return b.sum }

// Mean returns Sum()/Count(), or 0 when empty.
func (b *Buffer) Mean() float64 {
	if b.count == 0 {
		return 0
	}
	return b.sum / float64(b.count)
}

// ValueAt returns the sample at ordinal (0 = oldest live sample).
func (b *Buffer) ValueAt(ordinal int) (float64, error) {
	if ordinal < 0 || ordinal >= b.count {
		return 0, fmt.Errorf("value at %d (count %d): %w", ordinal, b.count, ErrOutOfRange)
	}
	return b.data[b.slot(ordinal)], nil
}

// First returns the oldest live sample, or 0 when empty.
func (b *Buffer) First() float64 {
	if b.count == 0 {
		return 0
	}
	return b.data[b.slot(0)]
}

// Last returns the newest live sample, or 0 when empty.
func (b *Buffer) Last() float64 {
	if b.count == 0 {
		return 0
	}
	return b.data[b.slot(b.count-1)]
}

// Values returns the live samples oldest first.
func (b *Buffer) Values() []float64 {
	if b.count == 0 {
		return nil
	}
	out := make([]float64, b.count)
	for i := range out {
		out[i] = b.data[b.slot(i)]
	}
	return out
}

// Slots returns a copy of the raw backing slots, including zero padding.
func (b *Buffer) Slots() []float64 {
	return append([]float64(nil), b.data...)
}

// slot maps an ordinal to its backing index.
func (b *Buffer) slot(ordinal int) int {
	return Mod(b.next-b.count+ordinal, len(b.data))
}

func (b *Buffer) resetStats() {
	b.min = math.Inf(1)
	b.max = math.Inf(-1)
	b.sum = 0
}

// rescan recomputes min/max/sum from the live samples.
func (b *Buffer) rescan() {
	live := b.Values()
	if len(live) == 0 {
		b.resetStats()
		return
	}
	b.min = floats.Min(live)
	b.max = floats.Max(live)
	b.sum = floats.Sum(live)
}
