package numeric

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckFinite(t *testing.T) {
	assert.NoError(t, CheckFinite("x", 1.0))
	assert.Error(t, CheckFinite("x", math.NaN()))
	assert.Error(t, CheckFinite("x", math.Inf(1)))
	assert.Error(t, CheckFinite("x", math.Inf(-1)))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.5, Clamp(0.5, 0, 1))
	assert.Equal(t, 0.0, Clamp(-1, 0, 1))
	assert.Equal(t, 1.0, Clamp(2, 0, 1))
}

func TestLogSumExp(t *testing.T) {
	got := LogSumExp([]float64{0, 0})
	assert.InDelta(t, math.Log(2), got, 1e-9)
}
