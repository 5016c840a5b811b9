package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUuidSaleIdGeneratorHandsOutDistinctUuids(t *testing.T) {
	// Arrange
	generator := &UuidSaleIdGenerator{}

	// Act
	first := generator.New()
	second := generator.New()

	// Assert
	assert.NotEqual(t, first, second)
	parsed, err := uuid.Parse(first)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), parsed.Version())
}
