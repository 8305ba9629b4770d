package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

const hexdumpWidth = 16

// diffMarks marks bytes of b different from a.
func diffMarks(a, b []byte) []bool {
	mark := make([]bool, len(b))
	for i := range b {
		mark[i] = i >= len(a) || a[i] != b[i]
	}
	return mark
}

func hexdump(offset int, data []byte, mark []bool) string {
	var sb strings.Builder
	red := color.New(color.FgRed)

	for len(data) > 0 {
		l := len(data)
		if l > hexdumpWidth {
			l = hexdumpWidth
		}
		work := data[:l]
		data = data[l:]
		var workMark []bool
		if mark != nil {
			workMark = mark[:l]
			mark = mark[l:]
		}

		fmt.Fprintf(&sb, "%08x ", offset)
		var ascii strings.Builder
		for i := 0; i < hexdumpWidth; i++ {
			if i >= len(work) {
				sb.WriteString("   ")
				continue
			}
			b := work[i]
			ch := "."
			if b >= 0x20 && b < 0x7f {
				ch = string(rune(b))
			}
			if workMark != nil && workMark[i] {
				sb.WriteString(red.Sprintf(" %02x", b))
				ascii.WriteString(red.Sprint(ch))
			} else {
				fmt.Fprintf(&sb, " %02x", b)
				ascii.WriteString(ch)
			}
		}
		sb.WriteString("  |" + ascii.String() + "|\n")
		offset += l
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
