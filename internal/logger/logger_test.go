package logger

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetLevel(INFO)
		SetOutput(os.Stdout)
	})

	SetLevel(WARN)
	Debug("hidden")
	Info("hidden too")
	Warn("visible")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible")
	assert.Contains(t, out, "[WARN]")
}

func TestFormatArgs(t *testing.T) {
	assert.Equal(t, "1.23", formatArgs(1.2345))
	assert.Equal(t, "boom", formatArgs(errors.New("boom")))
	assert.Equal(t, "nil", formatArgs(nil))
	assert.Equal(t, "a 7 0.50", formatArgs("a", 7, 0.5))
}
