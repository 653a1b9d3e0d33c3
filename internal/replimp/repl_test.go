package replimp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStartPersistsStateAcrossChunks(t *testing.T) {
	in := strings.NewReader("x := 1;\n\ny := x + 1;\n\n")
	var out bytes.Buffer

	Start(in, &out)

	text := out.String()
	assert.Contains(t, text, "x = 1")
	assert.Contains(t, text, "x = 1\n  y = 2")
}

func TestStartReportsEvalErrorsWithoutAborting(t *testing.T) {
	in := strings.NewReader("z := 3 mod 2;\n\nw := z + 1;\n\n")
	var out bytes.Buffer

	Start(in, &out)

	text := out.String()
	assert.Contains(t, text, "error:")
	assert.Contains(t, text, "w = 1")
}
