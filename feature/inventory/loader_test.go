package inventory

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestLoader(t *testing.T) {
	svc := newTestService(t, &fakePrimary{}, Options{})
	feature := NewFeature(svc.engine, Options{}, zap.NewNop())

	assert.Equal(t, "inventory", feature.Name())
	assert.True(t, feature.IsEnabled())
	assert.NoError(t, feature.Load(fiber.New()))

	assert.False(t, NewFeature(nil, Options{}, zap.NewNop()).IsEnabled())
}
