package logging_test

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/agentstation/stacks/pkg/logging"
)

func TestDefaultWarn(t *testing.T) {
	original := *logging.Default()
	t.Cleanup(func() { *logging.Default() = original })

	var buf bytes.Buffer
	*logging.Default() = zerolog.New(&buf)

	logging.Warn().Str("output", "library.log").Msg("Falling back to stderr")

	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), "Falling back to stderr")
}

func TestTestLogger(t *testing.T) {
	tl := logging.NewTestLogger(t)

	assert.Equal(t, 0, tl.Count())
	assert.Empty(t, tl.Lines())

	tl.Debug().Msg("first")
	tl.Info().Msg("second")
	assert.Equal(t, 2, tl.Count())
	assert.True(t, tl.Contains("second"))

	tl.Clear()
	assert.Equal(t, 0, tl.Count())

	nop := logging.NewNopLogger()
	nop.Error().Msg("dropped")
}
