// Package memory provides low-level in-memory primitives for columnar
// storage, currently a word-packed bitmap used as the validity indicator of
// typed columns.
package memory

import "iter"

// wordBits is the number of bits per storage word.
const wordBits = 8

// A Bitmap is a growable sequence of bits packed into bytes. The zero Bitmap
// is empty and ready for use.
//
// Bitmap is used as a column validity indicator: a value of 1 at position i
// means the element at i is valid (not null).
type Bitmap struct {
	words []byte
	size  int // Number of valid bits.
}

// NewBitmap creates a Bitmap that reads and writes bits from data. The
// capacity of the new Bitmap is sizeBits, rounded up to a whole word; its
// length is zero. Passing nil data preallocates a fresh buffer.
func NewBitmap(data []byte, sizeBits int) Bitmap {
	words := (sizeBits + wordBits - 1) / wordBits
	if data == nil {
		data = make([]byte, 0, words)
	}
	return Bitmap{words: data}
}

// Len returns the number of bits in the Bitmap.
func (b *Bitmap) Len() int { return b.size }

// Cap returns the number of bits the Bitmap can hold before growing.
func (b *Bitmap) Cap() int { return cap(b.words) * wordBits }

// Resize sets the length of the Bitmap to sizeBits. New bits are zero.
func (b *Bitmap) Resize(sizeBits int) {
	words := (sizeBits + wordBits - 1) / wordBits
	for len(b.words) < words {
		b.words = append(b.words, 0)
	}
	b.words = b.words[:words]
	b.size = sizeBits
}

// Grow ensures the Bitmap has capacity for at least sizeBits bits.
func (b *Bitmap) Grow(sizeBits int) {
	words := (sizeBits + wordBits - 1) / wordBits
	if cap(b.words) >= words {
		return
	}
	grown := make([]byte, len(b.words), words)
	copy(grown, b.words)
	b.words = grown
}

// Append adds a single bit to the end of the Bitmap.
func (b *Bitmap) Append(v bool) {
	if b.size%wordBits == 0 {
		b.words = append(b.words, 0)
	}
	if v {
		b.words[b.size/wordBits] |= 1 << (b.size % wordBits)
	}
	b.size++
}

// AppendCount adds count copies of v to the end of the Bitmap.
func (b *Bitmap) AppendCount(v bool, count int) {
	for range count {
		b.Append(v)
	}
}

// AppendValues adds each value in vs to the end of the Bitmap in order.
func (b *Bitmap) AppendValues(vs ...bool) {
	for _, v := range vs {
		b.Append(v)
	}
}

// AppendBitmap adds all bits of other to the end of the Bitmap.
func (b *Bitmap) AppendBitmap(other Bitmap) {
	for i := range other.size {
		b.Append(other.Get(i))
	}
}

// Get returns the bit at index i. Get panics if i is out of range.
func (b *Bitmap) Get(i int) bool {
	if i < 0 || i >= b.size {
		panic("memory: Bitmap index out of range")
	}
	return b.words[i/wordBits]&(1<<(i%wordBits)) != 0
}

// Set writes the bit at index i. Set panics if i is out of range.
func (b *Bitmap) Set(i int, v bool) {
	if i < 0 || i >= b.size {
		panic("memory: Bitmap index out of range")
	}
	if v {
		b.words[i/wordBits] |= 1 << (i % wordBits)
	} else {
		b.words[i/wordBits] &^= 1 << (i % wordBits)
	}
}

// SetRange writes all bits in the half-open range [start, end).
func (b *Bitmap) SetRange(start, end int, v bool) {
	for i := start; i < end; i++ {
		b.Set(i, v)
	}
}

// Count returns the number of bits equal to v.
func (b *Bitmap) Count(v bool) int {
	var set int
	for i := range b.size {
		if b.Get(i) {
			set++
		}
	}
	if v {
		return set
	}
	return b.size - set
}

// IterValues iterates over the indices of all bits equal to v, in ascending
// order. The iterator is restartable.
func (b *Bitmap) IterValues(v bool) iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := range b.size {
			if b.Get(i) == v && !yield(i) {
				return
			}
		}
	}
}

// Clone returns an independent copy of the Bitmap sharing no storage with b.
func (b *Bitmap) Clone() Bitmap {
	words := make([]byte, len(b.words))
	copy(words, b.words)
	return Bitmap{words: words, size: b.size}
}
