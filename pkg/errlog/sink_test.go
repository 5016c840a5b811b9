package errlog

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pos-register/pkg/apperror"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readRecords(t *testing.T, data []byte) []map[string]any {
	var records []map[string]any
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		var record map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &record))
		records = append(records, record)
	}
	return records
}

func TestLogExceptionWritesOneRecord(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	sink := NewSink(&buf)

	// Act
	sink.LogException(apperror.NewItemNotFoundError("nope"))

	// Assert
	records := readRecords(t, buf.Bytes())
	require.Len(t, records, 1)
	assert.Equal(t, "item with identifier nope not found", records[0]["msg"])
	assert.Equal(t, "item_not_found", records[0]["kind"])
	assert.Equal(t, "ERROR", records[0]["level"])
	assert.NotEmpty(t, records[0]["time"])
	assert.Contains(t, records[0]["trace"], "TestLogExceptionWritesOneRecord")
}

func TestLogExceptionIgnoresNil(t *testing.T) {
	var buf bytes.Buffer
	sink := NewSink(&buf)

	sink.LogException(nil)

	assert.Zero(t, buf.Len())
}

func TestOriginTrailUsesDeepestStack(t *testing.T) {
	// Arrange
	origin := errors.New("disk on fire")
	wrapped := apperror.NewOperationFailedError("could not register item", errors.WithStack(origin))

	// Act
	trail := originTrail(wrapped)

	// Assert
	assert.Contains(t, trail, "TestOriginTrailUsesDeepestStack")
	assert.Contains(t, trail, "sink_test.go")
}

func TestOpenAppendsAcrossSinks(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), DefaultFileName)
	first, err := Open(path)
	require.NoError(t, err)
	first.LogException(errors.New("first"))
	require.NoError(t, first.Close())

	// Act
	second, err := Open(path)
	require.NoError(t, err)
	second.LogException(errors.New("second"))
	require.NoError(t, second.Close())

	// Assert
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "\n"))
	records := readRecords(t, data)
	assert.Equal(t, "first", records[0]["msg"])
	assert.Equal(t, "second", records[1]["msg"])
}
