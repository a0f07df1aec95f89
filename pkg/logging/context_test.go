package logging_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/stacks/pkg/logging"
)

func TestContextFunctions(t *testing.T) {
	t.Run("FromContext falls back to default", func(t *testing.T) {
		assert.Equal(t, logging.Default(), logging.FromContext(context.Background()))
		//nolint:staticcheck // nil context is handled explicitly
		assert.Equal(t, logging.Default(), logging.FromContext(nil))
	})

	t.Run("WithLogger round trips", func(t *testing.T) {
		tl := logging.NewTestLogger(t)
		ctx := logging.WithLogger(context.Background(), tl.Logger)
		assert.Same(t, tl.Logger, logging.FromContext(ctx))
	})

	t.Run("fields are added to context logger", func(t *testing.T) {
		tl := logging.NewTestLogger(t)
		ctx := logging.WithLogger(context.Background(), tl.Logger)
		ctx = logging.WithOperation(ctx, "issue")
		ctx = logging.WithISBN(ctx, "111")

		logging.FromContext(ctx).Info().Msg("Book issued")

		assert.True(t, tl.Contains(`"operation":"issue"`))
		assert.True(t, tl.Contains(`"isbn":"111"`))
		assert.Equal(t, 1, tl.Count())
	})
}
