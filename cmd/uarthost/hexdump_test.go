package main

import (
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
)

func TestHexdump(t *testing.T) {
	color.NoColor = true
	data := []byte("0123456789abcdef\x00A")
	out := hexdump(0x10, data, diffMarks(data, data))
	require.Equal(t,
		"00000010  30 31 32 33 34 35 36 37 38 39 61 62 63 64 65 66  |0123456789abcdef|\n"+
			"00000020  00 41"+strings.Repeat(" ", 3*14)+"  |.A|", out)
}

func TestDiffMarks(t *testing.T) {
	require.Equal(t, []bool{false, true, true}, diffMarks([]byte{1, 2}, []byte{1, 3, 4}))
}
