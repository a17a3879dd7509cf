package structbuf

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Dump renders one line per leaf field: path, type, offset, size and the
// current value. Intended for debugging layout mismatches against a shader.
func (r *Record) Dump() string {
	var b strings.Builder
	fmt.Fprintf(&b, "record: %d bytes, align %d", r.layout.size, r.layout.align)
	if r.layout.uniform {
		b.WriteString(", uniform")
	}
	b.WriteByte('\n')

	width := 0
	for i := range r.layout.fields {
		if n := len(r.layout.fields[i].Key()); n > width {
			width = n
		}
	}

	for i := range r.layout.fields {
		f := &r.layout.fields[i]
		v, _ := r.Get(f.Path...)
		fmt.Fprintf(&b, "  %-*s %-8s @%-5d %3dB  %v\n", width, f.Key(), f.Tag, f.Offset, f.Size, v)
	}
	return b.String()
}

// HexDump renders the backing buffer 16 bytes per line.
func (r *Record) HexDump() string {
	return hex.Dump(r.bytes)
}
