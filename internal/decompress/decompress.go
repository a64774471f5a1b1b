// Package decompress transparently inflates an ingested body according to
// its Content-Encoding header, enforcing size caps before and after decode.
package decompress

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"io"

	"github.com/andybalholm/brotli"

	"github.com/arc-self/rustrak/internal/apperr"
)

const (
	// MaxCompressedSize bounds the request body before decoding, 100 MiB.
	MaxCompressedSize = 100 * 1024 * 1024
	// MaxDecompressedSize bounds the result after decoding, 100 MiB.
	MaxDecompressedSize = 100 * 1024 * 1024
)

var gzipMagic = []byte{0x1f, 0x8b}

// Body decodes body according to contentEncoding ("", "gzip", "deflate",
// "br"). An empty encoding passes the body through unchanged.
func Body(body []byte, contentEncoding string) ([]byte, error) {
	if len(body) > MaxCompressedSize {
		return nil, apperr.PayloadTooLarge("compressed payload exceeds maximum size")
	}

	var (
		out []byte
		err error
	)

	switch contentEncoding {
	case "gzip":
		out, err = decodeGzip(body)
	case "deflate":
		out, err = decodeDeflate(body)
	case "br":
		out, err = decodeBrotli(body)
	case "":
		out = body
	default:
		return nil, apperr.Validation("unsupported Content-Encoding: " + contentEncoding)
	}
	if err != nil {
		return nil, err
	}

	if len(out) > MaxDecompressedSize {
		return nil, apperr.PayloadTooLarge("decompressed payload exceeds maximum size")
	}
	return out, nil
}

// decodeGzip assumes the body is already decompressed (defensive pass-
// through) if it lacks the gzip magic bytes — some proxies decompress
// before forwarding without clearing Content-Encoding.
func decodeGzip(data []byte) ([]byte, error) {
	if len(data) < 2 || !bytes.Equal(data[:2], gzipMagic) {
		return data, nil
	}

	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "invalid gzip data", err)
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "invalid gzip data", err)
	}
	return out, nil
}

func decodeDeflate(data []byte) ([]byte, error) {
	if looksLikeJSON(data) {
		return data, nil
	}

	r := flate.NewReader(bytes.NewReader(data))
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "invalid deflate data", err)
	}
	return out, nil
}

func decodeBrotli(data []byte) ([]byte, error) {
	if looksLikeJSON(data) {
		return data, nil
	}

	r := brotli.NewReader(bytes.NewReader(data))
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "invalid brotli data", err)
	}
	return out, nil
}

func looksLikeJSON(data []byte) bool {
	return len(data) > 0 && (data[0] == '{' || data[0] == '[')
}
