package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFiltersBelowLevel(t *testing.T) {
	// Arrange
	var out bytes.Buffer
	logger := New(&out, "warn")

	// Act
	logger.Info("Sale started", "SaleId", "sale-1")
	logger.Warn("Operation failed", "Kind", "item_not_found")

	// Assert
	assert.NotContains(t, out.String(), "Sale started")
	assert.Contains(t, out.String(), "Operation failed")
	assert.Contains(t, out.String(), "Kind=item_not_found")
}

func TestNewDefaultsToInfo(t *testing.T) {
	var out bytes.Buffer
	logger := New(&out, "chatty")

	logger.Debug("hidden")
	logger.Info("shown")

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "shown")
}

func TestNewNopLoggerAcceptsKeyvals(t *testing.T) {
	logger := NewNopLogger()

	assert.NotPanics(t, func() {
		logger.Error("Operation failed", "Error", "boom")
	})
}
