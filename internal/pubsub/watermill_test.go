package pubsub

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/roster/internal/topicmgr"
)

type samplePayload struct {
	RoomID string `json:"room_id"`
	Count  int    `json:"count,omitempty"`
	Secret string `json:"-"`
}

var sampleEvent = NewEvent[samplePayload]("pubsubtest.sample.created", "Sample event for bridge tests")

func TestWatermillBridge_PublishSubscribe(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bridge := NewWatermillBridge()
	defer bridge.Close()

	received := make(chan Message, 1)
	err := bridge.Subscribe(ctx, "pubsubtest.raw", func(ctx context.Context, msg Message) error {
		received <- msg
		return nil
	})
	require.NoError(t, err)

	err = bridge.Publish(ctx, Message{
		Topic:    "pubsubtest.raw",
		UserID:   "user1",
		Payload:  []byte(`{"hello":"world"}`),
		Metadata: map[string]string{"request_id": "req-123"},
	})
	require.NoError(t, err)

	select {
	case msg := <-received:
		assert.Equal(t, "pubsubtest.raw", msg.Topic)
		assert.Equal(t, "user1", msg.UserID)
		assert.JSONEq(t, `{"hello":"world"}`, string(msg.Payload))
		assert.Equal(t, "req-123", msg.Metadata["request_id"])
		assert.NotContains(t, msg.Metadata, metaKeyTopic)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
	}
}

func TestWatermillBridge_HandlerErrorDoesNotRedeliver(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bridge := NewWatermillBridge()
	defer bridge.Close()

	calls := make(chan struct{}, 10)
	err := bridge.Subscribe(ctx, "pubsubtest.failing", func(ctx context.Context, msg Message) error {
		calls <- struct{}{}
		return errors.New("boom")
	})
	require.NoError(t, err)

	require.NoError(t, bridge.Publish(ctx, Message{Topic: "pubsubtest.failing", Payload: []byte("x")}))

	select {
	case <-calls:
	case <-time.After(2 * time.Second):
		t.Fatal("handler was never called")
	}

	// Give a redelivery a chance to show up.
	time.Sleep(100 * time.Millisecond)
	assert.Len(t, calls, 0)
}

func TestTypedEvent_Registration(t *testing.T) {
	topic, ok := topicmgr.Default().Get("pubsubtest.sample.created")
	require.True(t, ok)
	assert.Equal(t, "pubsubtest", topic.Module())
	assert.Equal(t, topicmgr.ScopeModule, topic.Scope())
	assert.Equal(t, []string{"room_id", "count"}, topic.Metadata()["payload_fields"])
	assert.Equal(t, "samplePayload", topic.Metadata()["type_name"])
	assert.Equal(t, "pubsubtest.sample.created", sampleEvent.Name())
}

func TestTypedEvent_PublishSubscribe(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bridge := NewWatermillBridge()
	defer bridge.Close()

	received := make(chan samplePayload, 1)
	err := Subscribe(ctx, bridge, sampleEvent, func(ctx context.Context, p samplePayload) error {
		received <- p
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, Publish(ctx, bridge, sampleEvent, samplePayload{RoomID: "demo-room", Count: 3, Secret: "s"}))

	select {
	case p := <-received:
		assert.Equal(t, samplePayload{RoomID: "demo-room", Count: 3}, p)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for typed event")
	}
}

func TestSetupTracing(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled tracing", func(t *testing.T) {
		tracer, shutdown, err := SetupTracing(ctx, TracingConfig{Enabled: false})
		require.NoError(t, err)
		require.NotNil(t, tracer)

		_, span := tracer.Start(ctx, "test")
		span.End()
		assert.NoError(t, shutdown(ctx))
	})

	t.Run("enabled tracing", func(t *testing.T) {
		cfg := DefaultTracingConfig()
		cfg.Enabled = true
		tracer, shutdown, err := SetupTracing(ctx, cfg)
		require.NoError(t, err)
		require.NotNil(t, tracer)

		bridge := NewWatermillBridge(WithTracer(tracer))
		defer bridge.Close()
		assert.NoError(t, bridge.Publish(ctx, Message{Topic: "pubsubtest.traced", Payload: []byte("{}")}))

		shutdownCtx, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
		defer cancel()
		// The collector is not running; only make sure shutdown returns.
		_ = shutdown(shutdownCtx)
	})
}
