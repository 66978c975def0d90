package logx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContextIDs(t *testing.T) {
	ctx := WithTraceID(WithRequestID(context.Background(), "req-1"), "trace-1")

	require.Equal(t, "req-1", RequestID(ctx))
	require.Equal(t, "trace-1", TraceID(ctx))
	require.Empty(t, RequestID(context.Background()))
	require.NotNil(t, WithFields(ctx))
	require.Same(t, L(), WithFields(context.Background()))
}
