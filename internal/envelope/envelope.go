// Package envelope splits a Sentry SDK envelope into its header and items.
// The format is strictly newline-framed: a JSON header line followed by
// zero or more (item-header-line, payload) pairs. Parsing is CPU-bound and
// must not suspend, so this package does no I/O of its own.
package envelope

import (
	"encoding/json"

	"github.com/arc-self/rustrak/internal/apperr"
)

const (
	// maxHeaderSize bounds any single header line (envelope or item), 8 KiB.
	maxHeaderSize = 8 * 1024
	// maxItemSize bounds a single item payload, 1 MiB.
	maxItemSize = 1024 * 1024
)

// SDKInfo carries the optional sdk block of the envelope header.
type SDKInfo struct {
	Name    string `json:"name,omitempty"`
	Version string `json:"version,omitempty"`
}

// Headers is the envelope's first JSON line.
type Headers struct {
	EventID string   `json:"event_id,omitempty"`
	DSN     string   `json:"dsn,omitempty"`
	SentAt  string   `json:"sent_at,omitempty"`
	SDK     *SDKInfo `json:"sdk,omitempty"`
}

// ItemHeaders is the JSON header line preceding an item's payload.
type ItemHeaders struct {
	Type        string `json:"type"`
	Length      *int   `json:"length,omitempty"`
	ContentType string `json:"content_type,omitempty"`
}

// Item is one parsed envelope entry.
type Item struct {
	Headers ItemHeaders
	Payload []byte
}

// Envelope is the fully parsed result.
type Envelope struct {
	Headers Headers
	Items   []Item
}

// FirstEventItem returns the first item with type "event", if any.
func (e *Envelope) FirstEventItem() (Item, bool) {
	for _, item := range e.Items {
		if item.Headers.Type == "event" {
			return item, true
		}
	}
	return Item{}, false
}

type parser struct {
	data []byte
	pos  int
}

// Parse splits an envelope byte slice into its header and items.
func Parse(data []byte) (*Envelope, error) {
	p := &parser{data: data}

	headerLine, err := p.readLine(maxHeaderSize)
	if err != nil {
		return nil, err
	}
	if len(headerLine) == 0 {
		return nil, apperr.Validation("empty envelope headers")
	}

	var headers Headers
	if err := json.Unmarshal(headerLine, &headers); err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "invalid envelope headers JSON", err)
	}

	var items []Item
	for !p.atEOF() {
		item, ok, err := p.parseItem()
		if err != nil {
			return nil, err
		}
		if ok {
			items = append(items, item)
		}
	}

	return &Envelope{Headers: headers, Items: items}, nil
}

func (p *parser) parseItem() (Item, bool, error) {
	headerLine, err := p.readLine(maxHeaderSize)
	if err != nil {
		return Item{}, false, err
	}
	if len(headerLine) == 0 {
		return Item{}, false, nil
	}

	var headers ItemHeaders
	if err := json.Unmarshal(headerLine, &headers); err != nil {
		return Item{}, false, apperr.Wrap(apperr.KindValidation, "invalid item headers JSON", err)
	}

	var payload []byte
	if headers.Length != nil {
		length := *headers.Length
		if length > maxItemSize {
			return Item{}, false, apperr.PayloadTooLarge("item payload exceeds maximum size")
		}
		payload, err = p.readBytes(length)
		if err != nil {
			return Item{}, false, err
		}
		p.skipNewline()
	} else {
		payload, err = p.readLine(maxItemSize)
		if err != nil {
			return Item{}, false, err
		}
	}

	return Item{Headers: headers, Payload: payload}, true, nil
}

func (p *parser) readLine(maxSize int) ([]byte, error) {
	start := p.pos
	end := p.pos

	for end < len(p.data) && p.data[end] != '\n' {
		end++
		if end-start > maxSize {
			return nil, apperr.PayloadTooLarge("line exceeds maximum size")
		}
	}

	line := p.data[start:end]
	if end < len(p.data) {
		p.pos = end + 1
	} else {
		p.pos = end
	}
	return line, nil
}

func (p *parser) readBytes(length int) ([]byte, error) {
	if p.pos+length > len(p.data) {
		return nil, apperr.Validation("unexpected EOF while reading item payload")
	}
	b := p.data[p.pos : p.pos+length]
	p.pos += length
	return b, nil
}

func (p *parser) skipNewline() {
	if p.pos < len(p.data) && p.data[p.pos] == '\n' {
		p.pos++
	}
}

func (p *parser) atEOF() bool {
	return p.pos >= len(p.data)
}
