package grouping_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arc-self/rustrak/internal/grouping"
)

func TestKey_ExceptionAndTransaction(t *testing.T) {
	event := map[string]interface{}{
		"transaction": "/a",
		"exception": map[string]interface{}{
			"values": []interface{}{
				map[string]interface{}{"type": "TypeError", "value": "x is undefined"},
			},
		},
	}

	key, hash := grouping.Key(event)

	assert.Equal(t, "TypeError: x is undefined ⋄ /a", key)
	assert.Len(t, hash, 64)
}

func TestKey_CustomFingerprintWithDefaultSentinel(t *testing.T) {
	event := map[string]interface{}{
		"transaction": "/x",
		"fingerprint": []interface{}{"{{ default }}", "tenant-42"},
		"exception": map[string]interface{}{
			"values": []interface{}{
				map[string]interface{}{"type": "ValueError", "value": "bad"},
			},
		},
	}

	key, _ := grouping.Key(event)

	assert.Equal(t, "ValueError: bad ⋄ /x ⋄ tenant-42", key)
}

func TestKey_LogMessageFallback(t *testing.T) {
	event := map[string]interface{}{
		"logentry": map[string]interface{}{"message": "disk full\nmore detail"},
	}

	key, _ := grouping.Key(event)

	assert.Equal(t, "Log Message: disk full ⋄ <no transaction>", key)
}

func TestKey_UnknownFallback(t *testing.T) {
	key, _ := grouping.Key(map[string]interface{}{})
	assert.Equal(t, "Unknown ⋄ <no transaction>", key)
}

func TestKey_Deterministic(t *testing.T) {
	event := map[string]interface{}{
		"transaction": "/a",
		"exception": map[string]interface{}{
			"values": []interface{}{
				map[string]interface{}{"type": "Err", "value": "v"},
			},
		},
	}
	_, h1 := grouping.Key(event)
	_, h2 := grouping.Key(event)
	assert.Equal(t, h1, h2)
}

func TestDenormalizedFields_LastInAppFrame(t *testing.T) {
	event := map[string]interface{}{
		"exception": map[string]interface{}{
			"values": []interface{}{
				map[string]interface{}{
					"type":  "Err",
					"value": "v",
					"stacktrace": map[string]interface{}{
						"frames": []interface{}{
							map[string]interface{}{"filename": "vendor.js", "in_app": false},
							map[string]interface{}{"filename": "app.js", "module": "app", "function": "run", "in_app": true},
							map[string]interface{}{"filename": "runtime.js", "in_app": false},
						},
					},
				},
			},
		},
	}

	fields := grouping.DenormalizedFields(event)

	assert.Equal(t, "app.js", fields.LastFrameFilename)
	assert.Equal(t, "app", fields.LastFrameModule)
	assert.Equal(t, "run", fields.LastFrameFunction)
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "TypeError", grouping.Title("TypeError", ""))
	assert.Equal(t, "TypeError: boom", grouping.Title("TypeError", "boom\nmore"))
}
