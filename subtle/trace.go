// Package subtle provides the low-level AES engine behind aestrace.
// It works on raw bytes: GF(2^8) helpers, the S-boxes, the key schedule, the
// round transformations, and the ECB/CBC block drivers. Every step can report
// its intermediate state into a Trace.
// Most users should use the hex-level API in the parent package instead.
package subtle

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Trace is an append-only log of intermediate cipher states.
// A nil *Trace is valid and discards everything, so untraced callers pay
// only for the nil check.
type Trace struct {
	lines []string
}

// NewTrace returns an empty trace.
func NewTrace() *Trace {
	return &Trace{}
}

// Notef appends a free-form line.
func (t *Trace) Notef(format string, args ...interface{}) {
	if t == nil {
		return
	}
	t.lines = append(t.lines, fmt.Sprintf(format, args...))
}

// State appends "label:\t<hex>" with the bytes as one contiguous hex string.
func (t *Trace) State(label string, b []byte) {
	if t == nil {
		return
	}
	t.lines = append(t.lines, label+":\t"+hex.EncodeToString(b))
}

// Word appends "label:\t<hex>" with the bytes separated by spaces, the way
// key-schedule words are printed.
func (t *Trace) Word(label string, w []byte) {
	if t == nil {
		return
	}
	t.lines = append(t.lines, label+":\t"+spacedHex(w))
}

// Append adds all lines of other, in order.
func (t *Trace) Append(other *Trace) {
	if t == nil || other == nil {
		return
	}
	t.lines = append(t.lines, other.lines...)
}

// Lines returns a copy of the recorded lines.
func (t *Trace) Lines() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.lines))
	copy(out, t.lines)
	return out
}

// Len returns the number of recorded lines.
func (t *Trace) Len() int {
	if t == nil {
		return 0
	}
	return len(t.lines)
}

// String joins the lines with newlines.
func (t *Trace) String() string {
	if t == nil {
		return ""
	}
	return strings.Join(t.lines, "\n")
}

func spacedHex(b []byte) string {
	var sb strings.Builder
	for i, v := range b {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02x", v)
	}
	return sb.String()
}
