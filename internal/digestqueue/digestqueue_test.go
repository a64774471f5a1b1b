package digestqueue_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/arc-self/rustrak/internal/digestqueue"
	"github.com/arc-self/rustrak/internal/spool"
)

func TestStampProjectID_AddsFieldWithoutDisturbingPayload(t *testing.T) {
	raw := []byte(`{"event_id":"9ec79c33-ec99-42ab-8353-589fcb2e04dc","message":"boom"}`)

	stamped, err := digestqueue.StampProjectID(raw, 42)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(stamped, &decoded))
	assert.Equal(t, "boom", decoded["message"])
	assert.Equal(t, float64(42), decoded["_rustrak_project_id"])
}

func TestStampProjectID_RejectsNonObjectPayload(t *testing.T) {
	_, err := digestqueue.StampProjectID([]byte(`[1,2,3]`), 1)
	assert.Error(t, err)
}

type recordingProcessor struct {
	calls []call
}

type call struct {
	projectID int32
	eventID   string
}

func (r *recordingProcessor) Process(_ context.Context, projectID int32, eventID string) error {
	r.calls = append(r.calls, call{projectID, eventID})
	return nil
}

func TestSweepSpoolDir_EmptyDirectoryRecoversNothing(t *testing.T) {
	store := spool.New(t.TempDir())
	q := digestqueue.New(nil, store, zap.NewNop())

	n, err := q.SweepSpoolDir(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestSweepSpoolDir_SkipsFilesMissingProjectID(t *testing.T) {
	store := spool.New(t.TempDir())
	eventID := "9ec79c33-ec99-42ab-8353-589fcb2e04dc"
	require.NoError(t, store.Write(eventID, []byte(`{"event_id":"`+eventID+`"}`)))

	q := digestqueue.New(nil, store, zap.NewNop())

	// nc is nil, so a file that *did* have project_id would panic trying
	// to publish; this asserts the missing-field path never reaches that
	// call and leaves the file in place without erroring the sweep.
	n, err := q.SweepSpoolDir(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	data, err := store.Read(eventID)
	require.NoError(t, err)
	assert.Contains(t, string(data), eventID)
}
