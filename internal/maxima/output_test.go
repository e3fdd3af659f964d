package maxima

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutputResults(t *testing.T) {
	out := Output{
		"Maxima 5.47.0 https://maxima.sourceforge.io",
		"read and interpret /tmp/gapp-maxima-1.txt",
		"(%i1) display2d:false",
		"(%o1) false",
		"(%i2) ratsimp(a*b+a*c)",
		"(%o2) a*(c+b)",
		"(%o12)   x^2",
		"",
	}

	assert.Equal(t, []string{"false", "a*(c+b)", "x^2"}, out.Results())
	assert.Equal(t, "x^2", out.Last())
}

func TestOutputNoResults(t *testing.T) {
	out := Output{"(%i1) a", "batch done"}
	assert.Empty(t, out.Results())
	assert.Equal(t, "", out.Last())
	assert.Empty(t, Output(nil).Results())
}
