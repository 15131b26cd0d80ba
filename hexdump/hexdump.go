// Package hexdump renders raw track data as offset, hex and ASCII columns,
// 16 bytes to a line.
package hexdump

import (
	"fmt"
	"io"
	"strings"
)

const bytesPerLine = 16

// Lines formats the first limit bytes of data; limit <= 0 or beyond the end
// means the whole buffer. Bytes outside 32..126 show as '.' in the ASCII
// column.
func Lines(data []byte, limit int) []string {
	if limit <= 0 || limit > len(data) {
		limit = len(data)
	}
	var out []string
	for addr := 0; addr < limit; addr += bytesPerLine {
		end := addr + bytesPerLine
		if end > limit {
			end = limit
		}
		var b strings.Builder
		fmt.Fprintf(&b, "%04x ", addr)
		for _, c := range data[addr:end] {
			fmt.Fprintf(&b, "%02x ", c)
		}
		b.WriteString("  ")
		for _, c := range data[addr:end] {
			if c >= 32 && c < 127 {
				b.WriteByte(c)
			} else {
				b.WriteByte('.')
			}
		}
		out = append(out, b.String())
	}
	return out
}

// Dump writes Lines(data, limit) to w, one per line.
func Dump(w io.Writer, data []byte, limit int) error {
	for _, line := range Lines(data, limit) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
