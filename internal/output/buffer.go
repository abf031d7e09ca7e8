// Package output holds the launcher's append-only output buffer.
package output

import (
	"strings"
	"sync"
)

// Stream identifies which child stream a segment came from.
type Stream int

// Stream values
const (
	Stdout Stream = iota
	Stderr
)

func (s Stream) String() string {
	if s == Stderr {
		return "stderr"
	}
	return "stdout"
}

// Segment is one appended piece of text.
type Segment struct {
	Stream Stream
	Text   string
}

// Buffer accumulates displayed text for a session. It only grows: there is no
// way to clear, truncate or reorder it.
type Buffer struct {
	mu       sync.RWMutex
	segments []Segment
	size     int
}

// New returns an empty buffer.
func New() *Buffer {
	return &Buffer{}
}

// Append adds text from the given stream. Empty text is ignored.
func (b *Buffer) Append(stream Stream, text string) {
	if text == "" {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.segments = append(b.segments, Segment{Stream: stream, Text: text})
	b.size += len(text)
}

// String returns the full buffer contents.
func (b *Buffer) String() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	var sb strings.Builder
	sb.Grow(b.size)
	for _, s := range b.segments {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// Segments returns a copy of the appended segments in order.
func (b *Buffer) Segments() []Segment {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Segment, len(b.segments))
	copy(out, b.segments)
	return out
}

// Len returns the buffer size in bytes.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.size
}
