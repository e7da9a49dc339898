package contextutil_test

import (
	"context"
	"testing"

	"go-ems/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestMetadataRoundTrip(t *testing.T) {
	ctx := contextutil.WithRequestID(context.Background(), "REQ-1")
	ctx = contextutil.WithEmployeeID(ctx, "emp-1")

	md := contextutil.ExtractMetadata(ctx)

	assert.Equal(t, "REQ-1", md.RequestID)
	assert.Equal(t, "emp-1", md.EmployeeID)
}

func TestGetLogger_Fallbacks(t *testing.T) {
	fallback := zap.NewExample()

	assert.Same(t, fallback, contextutil.GetLogger(context.Background(), fallback))
	assert.NotNil(t, contextutil.GetLogger(context.Background(), nil))

	scoped := zap.NewExample()
	ctx := contextutil.WithLogger(context.Background(), scoped)
	assert.Same(t, scoped, contextutil.GetLogger(ctx, fallback))
}
