package handler

import (
	"encoding/json"
	"time"

	"github.com/arc-self/rustrak/internal/apperr"
)

// ingestedAtField is a reserved key stamped onto every payload at ingress,
// mirroring digestqueue's project-ID stamp. It carries the true
// server-receipt instant (captured here, before spooling or queueing) so
// digest.go never has to approximate it with digest-processing time, which
// would skew the quota-window queries keyed on events.ingested_at.
const ingestedAtField = "_rustrak_ingested_at"

// withIngestMetadata validates the event payload parses as a JSON object
// (§4.G step 7), stamps the server-captured remote_addr and ingestedAt, and
// backfills timestamp with ingestedAt when the SDK omitted one so
// digest.go's timestampOf always has a value to fall back on.
func withIngestMetadata(raw []byte, remoteAddr string, ingestedAt time.Time) ([]byte, error) {
	var payload map[string]interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, apperr.Validation("event payload is not a JSON object")
	}

	payload[ingestedAtField] = float64(ingestedAt.Unix())
	if remoteAddr != "" {
		payload["remote_addr"] = remoteAddr
	}
	if _, ok := payload["timestamp"]; !ok {
		payload["timestamp"] = float64(ingestedAt.Unix())
	}

	out, err := json.Marshal(payload)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to re-marshal event payload", err)
	}
	return out, nil
}
