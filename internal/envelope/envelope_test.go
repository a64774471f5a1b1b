package envelope_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-self/rustrak/internal/apperr"
	"github.com/arc-self/rustrak/internal/envelope"
)

func TestParse_HeaderOnly(t *testing.T) {
	data := []byte(`{"event_id":"abc"}` + "\n")

	env, err := envelope.Parse(data)

	require.NoError(t, err)
	assert.Equal(t, "abc", env.Headers.EventID)
	assert.Empty(t, env.Items)
}

func TestParse_ItemWithExplicitLength(t *testing.T) {
	payload := `{"message":"hi"}`
	data := []byte(`{"event_id":"abc"}` + "\n" +
		`{"type":"event","length":` + itoa(len(payload)) + `}` + "\n" +
		payload + "\n")

	env, err := envelope.Parse(data)

	require.NoError(t, err)
	require.Len(t, env.Items, 1)
	item, ok := env.FirstEventItem()
	require.True(t, ok)
	assert.Equal(t, payload, string(item.Payload))
}

func TestParse_ItemWithoutLength_ReadsToNewline(t *testing.T) {
	data := []byte(`{}` + "\n" + `{"type":"session"}` + "\n" + `{"status":"ok"}` + "\n")

	env, err := envelope.Parse(data)

	require.NoError(t, err)
	require.Len(t, env.Items, 1)
	assert.Equal(t, `{"status":"ok"}`, string(env.Items[0].Payload))
}

func TestParse_MalformedHeaderJSON(t *testing.T) {
	_, err := envelope.Parse([]byte("not json\n"))

	appErr, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindValidation, appErr.Kind)
}

func TestParse_OversizeHeader(t *testing.T) {
	huge := strings.Repeat("a", 9*1024)
	_, err := envelope.Parse([]byte(huge + "\n"))

	appErr, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindPayloadTooLarge, appErr.Kind)
}

func TestParse_TruncatedExplicitLengthPayload(t *testing.T) {
	data := []byte(`{}` + "\n" + `{"type":"event","length":100}` + "\n" + "short\n")

	_, err := envelope.Parse(data)

	appErr, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindValidation, appErr.Kind)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := ""
	for n > 0 {
		digits = string(rune('0'+n%10)) + digits
		n /= 10
	}
	return digits
}
