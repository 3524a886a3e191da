package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ati-intranet/portal/modules/jobs/domain/entities/job"
	"github.com/ati-intranet/portal/pkg/apiclient"
	"github.com/ati-intranet/portal/pkg/eventbus"
	"github.com/ati-intranet/portal/pkg/itf"
)

func newService(t *testing.T) (*JobService, *itf.Upstream, eventbus.EventBus) {
	t.Helper()
	up := itf.NewUpstream(t)
	c, err := apiclient.New(apiclient.Options{BaseURL: up.URL(), Timeout: time.Second})
	require.NoError(t, err)
	bus := eventbus.NewEventPublisher(nil)
	return NewJobService(c, bus), up, bus
}

func TestJobService_OpeningsNonArray(t *testing.T) {
	svc, up, _ := newService(t)
	up.JSON(http.MethodGet, "/jobs/openings", http.StatusOK, map[string]string{"error": "x"})

	list, err := svc.Openings(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestJobService_Refer(t *testing.T) {
	svc, up, bus := newService(t)
	up.JSON(http.MethodPost, "/jobs/refer", http.StatusCreated, map[string]any{"id": 1})

	var got *job.ReferredEvent
	bus.Subscribe(func(ev *job.ReferredEvent) { got = ev })

	err := svc.Refer(context.Background(), &job.Referral{JobOpeningID: "4", CandidateName: "Grace", CandidateEmail: "grace@ati.test"})
	require.NoError(t, err)

	var body map[string]any
	up.Last(t, http.MethodPost, "/jobs/refer").JSON(t, &body)
	assert.InDelta(t, 4, body["job_opening_id"], 0)
	assert.Equal(t, "grace@ati.test", body["candidate_email"])
	assert.Equal(t, "", body["candidate_phone"])
	require.NotNil(t, got)
	assert.Equal(t, "Grace", got.Referral.CandidateName)
}

func TestJobService_ReferFailure(t *testing.T) {
	svc, up, bus := newService(t)
	up.JSON(http.MethodPost, "/jobs/refer", http.StatusBadRequest, map[string]string{"message": "duplicate"})
	called := false
	bus.Subscribe(func(ev *job.ReferredEvent) { called = true })

	err := svc.Refer(context.Background(), &job.Referral{JobOpeningID: "4"})
	require.Error(t, err)
	assert.Equal(t, "duplicate", apiclient.Message(err, "fallback"))
	assert.False(t, called)
}
