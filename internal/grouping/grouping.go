// Package grouping derives a stable fingerprint from an ingested event's
// JSON payload. It is a pure, CPU-bound transform with no suspension
// points, deliberately free of any logger or I/O dependency so it stays
// trivially unit-testable.
package grouping

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// separator is the three-character diamond separator joining grouping key
// components: space, U+22C4, space.
const separator = " ⋄ "

const defaultSentinel = "{{ default }}"

// Fields holds the denormalized signature stored alongside an Issue/Event.
type Fields struct {
	CalculatedType     string
	CalculatedValue    string
	Transaction        string
	LastFrameFilename  string
	LastFrameModule    string
	LastFrameFunction  string
}

// Key computes the grouping key and its SHA-256 hex digest for an event
// payload, following the same extraction order as the reference grouping
// algorithm: exception chain, then log message, then "Unknown" fallback,
// with an optional custom fingerprint array overriding the default key.
func Key(event map[string]interface{}) (key string, hash string) {
	calcType, calcValue := typeAndValue(event)
	transaction := transactionOf(event)

	if fp, ok := event["fingerprint"].([]interface{}); ok {
		parts := make([]string, len(fp))
		for i, p := range fp {
			s, _ := p.(string)
			if s == defaultSentinel {
				parts[i] = defaultKey(calcType, calcValue, transaction)
			} else {
				parts[i] = s
			}
		}
		key = strings.Join(parts, separator)
	} else {
		key = defaultKey(calcType, calcValue, transaction)
	}

	sum := sha256.Sum256([]byte(key))
	return key, hex.EncodeToString(sum[:])
}

func defaultKey(calcType, calcValue, transaction string) string {
	return Title(calcType, calcValue) + separator + transaction
}

// Title renders the human-facing issue title from the calculated
// type/value pair: the bare type when value is empty, otherwise
// "Type: first line of value".
func Title(calcType, calcValue string) string {
	if calcValue == "" {
		return calcType
	}
	return calcType + ": " + firstLine(calcValue)
}

// DenormalizedFields extracts the full signature (type, value, transaction,
// last stack frame) used both for grouping and for Issue/Event denormalized
// columns.
func DenormalizedFields(event map[string]interface{}) Fields {
	calcType, calcValue := typeAndValue(event)
	filename, module, function := lastFrameInfo(event)
	return Fields{
		CalculatedType:    calcType,
		CalculatedValue:   calcValue,
		Transaction:       transactionOf(event),
		LastFrameFilename: filename,
		LastFrameModule:   module,
		LastFrameFunction: function,
	}
}

func typeAndValue(event map[string]interface{}) (string, string) {
	if exc := mainException(event); exc != nil {
		excType, _ := exc["type"].(string)
		if excType == "" {
			excType = "Error"
		}
		excValue, _ := exc["value"].(string)
		return truncate(excType, 128), truncate(excValue, 1024)
	}
	if msg, ok := logMessage(event); ok {
		return "Log Message", truncate(msg, 1024)
	}
	return "Unknown", ""
}

// mainException returns the last element of exception.values (or a bare
// exception array), the most specific exception in the chain.
func mainException(event map[string]interface{}) map[string]interface{} {
	raw, ok := event["exception"]
	if !ok {
		return nil
	}

	var values []interface{}
	switch exc := raw.(type) {
	case []interface{}:
		values = exc
	case map[string]interface{}:
		v, ok := exc["values"].([]interface{})
		if !ok {
			return nil
		}
		values = v
	default:
		return nil
	}

	if len(values) == 0 {
		return nil
	}
	last, _ := values[len(values)-1].(map[string]interface{})
	return last
}

func logMessage(event map[string]interface{}) (string, bool) {
	if logentry, ok := event["logentry"].(map[string]interface{}); ok {
		if msg, ok := logentry["message"].(string); ok {
			return firstLine(msg), true
		}
		if msg, ok := logentry["formatted"].(string); ok {
			return firstLine(msg), true
		}
	}

	switch message := event["message"].(type) {
	case string:
		return firstLine(message), true
	case map[string]interface{}:
		if msg, ok := message["message"].(string); ok {
			return firstLine(msg), true
		}
	}

	return "", false
}

func transactionOf(event map[string]interface{}) string {
	if t, ok := event["transaction"].(string); ok {
		return truncate(t, 200)
	}
	return "<no transaction>"
}

func lastFrameInfo(event map[string]interface{}) (filename, module, function string) {
	exc := mainException(event)
	if exc == nil {
		return "", "", ""
	}

	stacktrace, _ := exc["stacktrace"].(map[string]interface{})
	if stacktrace == nil {
		return "", "", ""
	}
	frames, _ := stacktrace["frames"].([]interface{})
	if len(frames) == 0 {
		return "", "", ""
	}

	frame := frames[len(frames)-1]
	for i := len(frames) - 1; i >= 0; i-- {
		f, ok := frames[i].(map[string]interface{})
		if !ok {
			continue
		}
		if inApp, _ := f["in_app"].(bool); inApp {
			frame = frames[i]
			break
		}
	}

	f, ok := frame.(map[string]interface{})
	if !ok {
		return "", "", ""
	}
	filename = truncateField(f, "filename")
	module = truncateField(f, "module")
	function = truncateField(f, "function")
	return filename, module, function
}

func truncateField(f map[string]interface{}, key string) string {
	s, _ := f[key].(string)
	return truncate(s, 255)
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}

// truncate cuts s to at most maxLen runes, matching the reference
// implementation's char-count (not byte-count) truncation.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen])
}
