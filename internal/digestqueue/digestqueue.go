// Package digestqueue bridges the ingress handler's spool write to the
// digest worker via a NATS JetStream work queue, grounded in
// notification-service's EventConsumer pull/fetch/ack loop but driving
// digest.Worker.Process instead of webhook dispatch.
package digestqueue

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/arc-self/rustrak/internal/apperr"
	"github.com/arc-self/rustrak/internal/platform/natsclient"
	"github.com/arc-self/rustrak/internal/spool"
)

const (
	durableName  = "rustrak-digest-worker"
	fetchBatch   = 25
	fetchTimeout = 5 * time.Second

	// projectIDField is stamped into the spooled JSON payload alongside
	// the raw event body so a boot-time sweep can recover the
	// (project_id, event_id) pair for a spool file whose publish never
	// reached NATS — the original implementation had no durable queue at
	// all and could lose this association outright on crash; stamping it
	// onto the payload closes that gap without changing the spool file
	// format the digest worker already parses.
	projectIDField = "_rustrak_project_id"
)

// task is the message body published to the ingest stream.
type task struct {
	ProjectID int32  `json:"project_id"`
	EventID   string `json:"event_id"`
}

// Processor matches digest.Worker's Process method.
type Processor interface {
	Process(ctx context.Context, projectID int32, eventID string) error
}

// Queue publishes ingest tasks and runs the durable consumer that drains
// them into a Processor.
type Queue struct {
	nc     *natsclient.Client
	spool  *spool.Store
	logger *zap.Logger
}

// New constructs a Queue. Call ProvisionStream once at startup before
// Publish or Start.
func New(nc *natsclient.Client, store *spool.Store, logger *zap.Logger) *Queue {
	return &Queue{nc: nc, spool: store, logger: logger}
}

// StampProjectID embeds projectID into a raw event payload before it is
// handed to spool.Store.Write, so SweepSpoolDir can recover it later. It
// is additive: grouping and digest field extraction only read specific
// known keys and ignore this one, and the stamped key is harmless if it
// ends up persisted verbatim in the stored event row.
func StampProjectID(raw []byte, projectID int32) ([]byte, error) {
	var payload map[string]interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, apperr.Validation("event payload is not a JSON object")
	}
	payload[projectIDField] = projectID
	out, err := json.Marshal(payload)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to re-marshal stamped payload", err)
	}
	return out, nil
}

// Publish enqueues a digest task for a just-spooled event.
func (q *Queue) Publish(ctx context.Context, projectID int32, eventID string) error {
	body, err := json.Marshal(task{ProjectID: projectID, EventID: eventID})
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to marshal ingest task", err)
	}
	subject := subjectFor(projectID)
	if _, err := q.nc.JS.Publish(subject, body, nats.Context(ctx)); err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to publish ingest task", err)
	}
	return nil
}

// Start runs the durable pull consumer until ctx is cancelled, invoking
// proc.Process for each task and acking only on success. A processing
// failure NAKs the message for JetStream redelivery rather than dropping
// it, since digest.Worker.Process is safe to retry (duplicate suppression
// happens inside it).
func (q *Queue) Start(ctx context.Context, proc Processor) error {
	sub, err := q.nc.JS.PullSubscribe(
		natsclient.SubjectIngestTasks,
		durableName,
		nats.AckExplicit(),
		nats.ManualAck(),
	)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to create pull subscription", err)
	}

	q.logger.Info("digest queue consumer started",
		zap.String("subject", natsclient.SubjectIngestTasks),
		zap.String("durable", durableName))

	go func() {
		for {
			select {
			case <-ctx.Done():
				q.logger.Info("digest queue consumer stopping")
				return
			default:
			}

			msgs, err := sub.Fetch(fetchBatch, nats.MaxWait(fetchTimeout))
			if err != nil {
				if err == nats.ErrTimeout {
					continue
				}
				q.logger.Error("fetch error", zap.Error(err))
				continue
			}

			for _, msg := range msgs {
				q.processMessage(ctx, proc, msg)
			}
		}
	}()

	return nil
}

func (q *Queue) processMessage(ctx context.Context, proc Processor, msg *nats.Msg) {
	var t task
	if err := json.Unmarshal(msg.Data, &t); err != nil {
		q.logger.Error("malformed ingest task (terminating)", zap.Error(err))
		msg.Term()
		return
	}

	if err := proc.Process(ctx, t.ProjectID, t.EventID); err != nil {
		q.logger.Error("digest processing failed",
			zap.Int32("project_id", t.ProjectID), zap.String("event_id", t.EventID), zap.Error(err))
		msg.Nak()
		return
	}

	msg.Ack()
}

// SweepSpoolDir republishes a digest task for every file left in the
// spool directory, recovering project_id from the stamped payload field.
// Call once at startup (main does so right after Start), to redrive events whose publish to
// NATS never happened (the narrow crash window between the spool write
// and the JetStream publish).
func (q *Queue) SweepSpoolDir(ctx context.Context) (int, error) {
	ids, err := q.spool.ListEventIDs()
	if err != nil {
		return 0, err
	}

	recovered := 0
	for _, eventID := range ids {
		raw, err := q.spool.Read(eventID)
		if err != nil {
			q.logger.Error("spool sweep: read failed", zap.String("event_id", eventID), zap.Error(err))
			continue
		}

		var payload map[string]interface{}
		if err := json.Unmarshal(raw, &payload); err != nil {
			q.logger.Error("spool sweep: malformed payload, leaving for manual inspection",
				zap.String("event_id", eventID))
			continue
		}

		projectID, ok := projectIDFrom(payload)
		if !ok {
			q.logger.Error("spool sweep: missing project_id, leaving for manual inspection",
				zap.String("event_id", eventID))
			continue
		}

		if err := q.Publish(ctx, projectID, eventID); err != nil {
			q.logger.Error("spool sweep: republish failed",
				zap.Int32("project_id", projectID), zap.String("event_id", eventID), zap.Error(err))
			continue
		}
		recovered++
	}

	if recovered > 0 {
		q.logger.Info("spool sweep recovered stranded events", zap.Int("count", recovered))
	}
	return recovered, nil
}

func projectIDFrom(payload map[string]interface{}) (int32, bool) {
	v, ok := payload[projectIDField].(float64)
	if !ok {
		return 0, false
	}
	return int32(v), true
}

// subjectFor derives the per-project publish subject under the wildcard
// SubjectIngestTasks, so a future per-project consumer partition (not
// needed yet at single-consumer scale) can subscribe selectively without
// a stream reconfiguration.
func subjectFor(projectID int32) string {
	return "ingest.tasks." + strconv.Itoa(int(projectID))
}
