package decompress_test

import (
	"bytes"
	"compress/gzip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-self/rustrak/internal/apperr"
	"github.com/arc-self/rustrak/internal/decompress"
)

func TestBody_NoEncoding_PassThrough(t *testing.T) {
	out, err := decompress.Body([]byte(`{"a":1}`), "")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(out))
}

func TestBody_Gzip(t *testing.T) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, _ = w.Write([]byte(`{"a":1}`))
	require.NoError(t, w.Close())

	out, err := decompress.Body(buf.Bytes(), "gzip")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(out))
}

func TestBody_GzipWithoutMagic_PassesThrough(t *testing.T) {
	out, err := decompress.Body([]byte(`{"a":1}`), "gzip")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(out))
}

func TestBody_DeflateLooksLikeJSON_PassesThrough(t *testing.T) {
	out, err := decompress.Body([]byte(`[1,2,3]`), "deflate")
	require.NoError(t, err)
	assert.Equal(t, `[1,2,3]`, string(out))
}

func TestBody_UnknownEncoding(t *testing.T) {
	_, err := decompress.Body([]byte("x"), "compress")

	appErr, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindValidation, appErr.Kind)
}
