package digest

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-self/rustrak/internal/apperr"
)

// NOTE: Worker.Process and writeTransactional require a real *pgxpool.Pool
// for transaction management and advisory locking (same constraint noted in
// privacy-service's service tests), so those paths are not unit-tested
// here. The pure helpers below are fully unit-testable.

func TestParseEventID_Valid(t *testing.T) {
	id := uuid.New()
	got, err := parseEventID(map[string]interface{}{"event_id": id.String()})
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestParseEventID_Missing(t *testing.T) {
	_, err := parseEventID(map[string]interface{}{})
	require.Error(t, err)
	appErr, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindValidation, appErr.Kind)
}

func TestParseEventID_Malformed(t *testing.T) {
	_, err := parseEventID(map[string]interface{}{"event_id": "not-a-uuid"})
	require.Error(t, err)
}

func TestIngestedAtOf_UsesStampedField(t *testing.T) {
	got := ingestedAtOf(map[string]interface{}{"_rustrak_ingested_at": float64(1700000000)}, time.Now())
	assert.Equal(t, int64(1700000000), got.Unix())
}

func TestIngestedAtOf_FallsBackWhenMissing(t *testing.T) {
	fallback := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	got := ingestedAtOf(map[string]interface{}{}, fallback)
	assert.Equal(t, fallback, got)
}

func TestTimestampOf_ParsesFloatUnix(t *testing.T) {
	got := timestampOf(map[string]interface{}{"timestamp": float64(1700000000)}, time.Now())
	assert.Equal(t, int64(1700000000), got.Unix())
}

func TestTimestampOf_ParsesRFC3339String(t *testing.T) {
	got := timestampOf(map[string]interface{}{"timestamp": "2023-11-14T22:13:20Z"}, time.Now())
	assert.Equal(t, int64(1700000000), got.Unix())
}

func TestTimestampOf_FallsBackWhenMissingOrUnparseable(t *testing.T) {
	fallback := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, fallback, timestampOf(map[string]interface{}{}, fallback))
	assert.Equal(t, fallback, timestampOf(map[string]interface{}{"timestamp": "not-a-time"}, fallback))
}

func TestOptionalString_PresentAndAbsent(t *testing.T) {
	present := optionalString(map[string]interface{}{"level": "error"}, "level")
	assert.True(t, present.Valid)
	assert.Equal(t, "error", present.String)

	absent := optionalString(map[string]interface{}{}, "level")
	assert.False(t, absent.Valid)

	empty := optionalString(map[string]interface{}{"level": ""}, "level")
	assert.False(t, empty.Valid)
}

func TestSDKInfo(t *testing.T) {
	name, version := sdkInfo(map[string]interface{}{
		"sdk": map[string]interface{}{"name": "sentry.go", "version": "1.2.3"},
	})
	assert.True(t, name.Valid)
	assert.Equal(t, "sentry.go", name.String)
	assert.True(t, version.Valid)
	assert.Equal(t, "1.2.3", version.String)
}

func TestSDKInfo_Missing(t *testing.T) {
	name, version := sdkInfo(map[string]interface{}{})
	assert.False(t, name.Valid)
	assert.False(t, version.Valid)
}
