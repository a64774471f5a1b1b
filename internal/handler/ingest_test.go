package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/labstack/echo/v4"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/arc-self/rustrak/internal/digestqueue"
	"github.com/arc-self/rustrak/internal/handler"
	"github.com/arc-self/rustrak/internal/platform/natsclient"
	"github.com/arc-self/rustrak/internal/ratelimit"
	"github.com/arc-self/rustrak/internal/repository/db"
	"github.com/arc-self/rustrak/internal/spool"
)

const testSDKKey = "9ec79c33-ec99-42ab-8353-589fcb2e04dc"

// stubQuerier embeds the Querier interface (nil) and overrides only the
// methods an ingest request path touches, following the same
// override-what-you-need double pattern as fakeJetStream below.
type stubQuerier struct {
	db.Querier
	project      db.Project
	installation db.Installation
}

func newFullStubQuerier(project db.Project) stubQuerier {
	return stubQuerier{project: project, installation: db.Installation{ID: 1, NextQuotaCheck: 1}}
}

func (s stubQuerier) GetProjectByID(_ context.Context, _ int32) (db.Project, error) {
	return s.project, nil
}

func (s stubQuerier) GetInstallation(_ context.Context) (db.Installation, error) {
	return s.installation, nil
}

// fakeJetStream overrides only Publish; any other method
// call panics, which is the point — it surfaces an untested code path
// immediately rather than silently behaving like a real broker.
type fakeJetStream struct {
	nats.JetStreamContext
	published []string
}

func (f *fakeJetStream) Publish(subj string, data []byte, _ ...nats.PubOpt) (*nats.PubAck, error) {
	f.published = append(f.published, subj)
	return &nats.PubAck{}, nil
}

func newSDKKeyProject(id int32, sdkKey string) db.Project {
	var key pgtype.UUID
	_ = key.Scan(sdkKey)
	return db.Project{ID: id, Slug: "demo", Name: "Demo", SDKKey: key}
}

func TestDeprecatedStore_Returns400MigrationMessage(t *testing.T) {
	e := echo.New()
	h := handler.NewIngestHandler(nil, nil, nil, nil, zap.NewNop())
	h.Register(e)

	req := httptest.NewRequest(http.MethodPost, "/api/7/store/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "envelope/")
}

func TestEnvelope_RejectsMissingSentryKey(t *testing.T) {
	q := newFullStubQuerier(newSDKKeyProject(7, testSDKKey))
	rl := ratelimit.New(q, ratelimit.Config{PerMinute: 1000, PerHour: 1000}, ratelimit.Config{PerMinute: 1000, PerHour: 1000})
	store := spool.New(t.TempDir())
	queue := digestqueue.New(&natsclient.Client{JS: &fakeJetStream{}, Log: zap.NewNop()}, store, zap.NewNop())

	e := echo.New()
	h := handler.NewIngestHandler(q, rl, store, queue, zap.NewNop())
	h.Register(e)

	body := `{"event_id":"9ec79c33-ec99-42ab-8353-589fcb2e04dc"}` + "\n" +
		`{"type":"event"}` + "\n" +
		`{"message":"hi"}` + "\n"
	req := httptest.NewRequest(http.MethodPost, "/api/7/envelope/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestEnvelope_AcceptsValidEnvelopeAndPublishes(t *testing.T) {
	q := newFullStubQuerier(newSDKKeyProject(7, testSDKKey))
	rl := ratelimit.New(q, ratelimit.Config{PerMinute: 1000, PerHour: 1000}, ratelimit.Config{PerMinute: 1000, PerHour: 1000})
	store := spool.New(t.TempDir())
	js := &fakeJetStream{}
	queue := digestqueue.New(&natsclient.Client{JS: js, Log: zap.NewNop()}, store, zap.NewNop())

	e := echo.New()
	h := handler.NewIngestHandler(q, rl, store, queue, zap.NewNop())
	h.Register(e)

	eventID := "9ec79c33-ec99-42ab-8353-589fcb2e04dc"
	body := `{"event_id":"` + eventID + `"}` + "\n" +
		`{"type":"event"}` + "\n" +
		`{"message":"hi"}` + "\n"
	target := "/api/7/envelope/?sentry_key=" + testSDKKey
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), eventID)
	assert.Len(t, js.published, 1)

	staged, err := store.Read(eventID)
	require.NoError(t, err)
	assert.Contains(t, string(staged), `"_rustrak_project_id":7`)
}
