package pagination

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-self/rustrak/internal/apperr"
)

func TestIssueCursor_EncodeDecode(t *testing.T) {
	c := IssueCursor{Sort: SortDigestOrder, Order: OrderDesc}.WithDigestOrder(42)

	encoded, err := c.Encode()
	require.NoError(t, err)

	decoded, err := DecodeIssueCursor(encoded)
	require.NoError(t, err)
	assert.Equal(t, SortDigestOrder, decoded.Sort)
	assert.Equal(t, OrderDesc, decoded.Order)
	require.NotNil(t, decoded.LastDigestOrder)
	assert.Equal(t, int32(42), *decoded.LastDigestOrder)
}

func TestIssueCursor_WithLastSeen(t *testing.T) {
	id := uuid.New()
	now := time.Now().UTC().Truncate(time.Second)
	c := IssueCursor{Sort: SortLastSeen, Order: OrderAsc}.WithLastSeen(now, id)

	encoded, err := c.Encode()
	require.NoError(t, err)

	decoded, err := DecodeIssueCursor(encoded)
	require.NoError(t, err)
	require.NotNil(t, decoded.LastSeen)
	require.NotNil(t, decoded.LastID)
	assert.True(t, now.Equal(*decoded.LastSeen))
	assert.Equal(t, id, *decoded.LastID)
}

func TestEventCursor_EncodeDecode(t *testing.T) {
	c := EventCursor{Order: OrderAsc, LastDigestOrder: 100}

	encoded, err := c.Encode()
	require.NoError(t, err)

	decoded, err := DecodeEventCursor(encoded)
	require.NoError(t, err)
	assert.Equal(t, OrderAsc, decoded.Order)
	assert.Equal(t, int32(100), decoded.LastDigestOrder)
}

func TestDecodeIssueCursor_InvalidEncoding(t *testing.T) {
	_, err := DecodeIssueCursor("not-valid-base64!!!")
	require.Error(t, err)
	appErr, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindValidation, appErr.Kind)
}

func TestDecodeIssueCursor_InvalidJSON(t *testing.T) {
	// valid base64url but not JSON
	_, err := DecodeIssueCursor("bm90LWpzb24")
	require.Error(t, err)
	appErr, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindValidation, appErr.Kind)
}

func TestNewOffsetResponse_CeilingDivision(t *testing.T) {
	resp := NewOffsetResponse([]int{1, 2, 3}, 45, 1, 20)
	assert.Equal(t, int64(3), resp.TotalPages)

	respExact := NewOffsetResponse([]int{1, 2, 3}, 40, 1, 20)
	assert.Equal(t, int64(2), respExact.TotalPages)
}

func TestDefaultQueries(t *testing.T) {
	q := DefaultListIssuesQuery()
	assert.Equal(t, int64(1), q.Page)
	assert.Equal(t, int64(PageSize), q.PerPage)
	assert.Equal(t, SortLastSeen, q.Sort)
	assert.Equal(t, OrderDesc, q.Order)
	assert.Equal(t, FilterOpen, q.Filter)

	eq := DefaultListEventsQuery()
	assert.Equal(t, OrderDesc, eq.Order)
	assert.Nil(t, eq.Cursor)
}
