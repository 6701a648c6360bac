package events

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ricekit/ricekit/internal/logger"
	"github.com/ricekit/ricekit/internal/model"
)

func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	log, err := logger.New(logger.Options{Level: "debug", Writer: &buf})
	require.NoError(t, err)
	return log, &buf
}

func TestLoggingPublisherWritesStructuredEntry(t *testing.T) {
	t.Parallel()

	log, buf := newTestLogger(t)
	pub := NewLoggingPublisher(log)

	err := pub.Publish(context.Background(), PipelineStarted{Module: "kitty", Event: "theme_apply"})
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "pipeline.started")
	require.Contains(t, out, "kitty")
	require.Contains(t, out, "theme_apply")
}

func TestLoggingPublisherDeliversToSubscribers(t *testing.T) {
	t.Parallel()

	log, _ := newTestLogger(t)
	pub := NewLoggingPublisher(log)

	var got []Notification
	sub, err := pub.Subscribe(KindActionFinished, func(_ context.Context, n Notification) error {
		got = append(got, n)
		return nil
	})
	require.NoError(t, err)

	result := model.ActionResult{Index: 0, Description: "shell: true", Status: model.StatusCompleted}
	require.NoError(t, pub.Publish(context.Background(), ActionFinished{Module: "kitty", Event: "theme_apply", Result: result}))
	require.NoError(t, pub.Publish(context.Background(), PipelineStarted{Module: "kitty", Event: "theme_apply"}))

	require.Len(t, got, 1)
	require.Equal(t, KindActionFinished, got[0].Kind())

	sub.Unsubscribe()
	require.NoError(t, pub.Publish(context.Background(), ActionFinished{Module: "kitty", Event: "theme_apply", Result: result}))
	require.Len(t, got, 1)
}

func TestLoggingPublisherSurvivesHandlerFailure(t *testing.T) {
	t.Parallel()

	log, _ := newTestLogger(t)
	pub := NewLoggingPublisher(log)

	_, err := pub.Subscribe(KindPipelineFinished, func(context.Context, Notification) error {
		return errors.New("boom")
	})
	require.NoError(t, err)

	var delivered int
	_, err = pub.Subscribe(KindPipelineFinished, func(context.Context, Notification) error {
		delivered++
		return nil
	})
	require.NoError(t, err)

	n := PipelineFinished{Result: model.PipelineResult{Module: "kitty", Event: "theme_apply"}}
	require.NoError(t, pub.Publish(context.Background(), n))
	require.Equal(t, 1, delivered, "failing handler must not block the next one")
}

func TestNotificationPayloads(t *testing.T) {
	t.Parallel()

	result := model.ActionResult{
		Index:       2,
		Description: `if "kitty" running`,
		Status:      model.StatusFailed,
		Error:       errors.New("exit status 1"),
		Duration:    120 * time.Millisecond,
	}
	payload := ActionFinished{Module: "kitty", Event: "theme_apply", Result: result}.Payload()
	require.Equal(t, "failed", payload["status"])
	require.Equal(t, "exit status 1", payload["error"])

	report := model.EventReport{
		Event: "theme_apply",
		Pipelines: []model.PipelineResult{
			{Module: "a", Actions: []model.ActionResult{{Status: model.StatusFailed}}},
			{Module: "b", Actions: []model.ActionResult{{Status: model.StatusCompleted}}},
		},
	}
	eventPayload := EventFinished{Report: report}.Payload()
	require.Equal(t, []string{"a"}, eventPayload["failed_modules"])
}

func TestCollectorRecordsByKind(t *testing.T) {
	t.Parallel()

	c := NewCollector()
	require.NoError(t, c.Publish(context.Background(), PipelineStarted{Module: "a", Event: "theme_apply"}))
	require.NoError(t, c.Publish(context.Background(), PipelineStarted{Module: "b", Event: "theme_apply"}))
	require.NoError(t, c.Publish(context.Background(), EventFinished{Report: model.EventReport{Event: "theme_apply"}}))

	require.Len(t, c.Notifications(), 3)
	require.Len(t, c.OfKind(KindPipelineStarted), 2)
	require.Len(t, c.OfKind(KindEventFinished), 1)
}
