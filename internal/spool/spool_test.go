package spool_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-self/rustrak/internal/apperr"
	"github.com/arc-self/rustrak/internal/spool"
)

func TestWriteReadDelete_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := spool.New(dir)
	eventID := "9ec79c33-ec99-42ab-8353-589fcb2e04dc"

	require.NoError(t, s.Write(eventID, []byte(`{"a":1}`)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "9ec79c33ec9942ab8353589fcb2e04dc.json", entries[0].Name())

	data, err := s.Read(eventID)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(data))

	require.NoError(t, s.Delete(eventID))
	_, err = os.Stat(filepath.Join(dir, entries[0].Name()))
	assert.True(t, os.IsNotExist(err))
}

func TestDelete_MissingFileTolerated(t *testing.T) {
	s := spool.New(t.TempDir())
	err := s.Delete("9ec79c33-ec99-42ab-8353-589fcb2e04dc")
	assert.NoError(t, err)
}

func TestWrite_InvalidEventID(t *testing.T) {
	s := spool.New(t.TempDir())
	err := s.Write("not-a-uuid", []byte("x"))

	appErr, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindValidation, appErr.Kind)
}

func TestListEventIDs(t *testing.T) {
	dir := t.TempDir()
	s := spool.New(dir)
	id := "9ec79c33-ec99-42ab-8353-589fcb2e04dc"
	require.NoError(t, s.Write(id, []byte("{}")))

	ids, err := s.ListEventIDs()
	require.NoError(t, err)
	require.Len(t, ids, 1)
	assert.Equal(t, id, ids[0])
}

func TestDefaultDir(t *testing.T) {
	s := spool.New("")
	assert.Equal(t, spool.DefaultDir, s.Dir())
}
