package roster

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/roster/internal/pubsub"
	"github.com/nfrund/roster/internal/topicmgr"
)

// mockPublisher implements pubsub.Publisher for testing
type mockPublisher struct {
	messages []pubsub.Message
	err      error
	mu       sync.Mutex
}

func (m *mockPublisher) Publish(ctx context.Context, msg pubsub.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.messages = append(m.messages, msg)
	return nil
}

func (m *mockPublisher) Close() error {
	return nil
}

func (m *mockPublisher) getMessages() []pubsub.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]pubsub.Message, len(m.messages))
	copy(result, m.messages)
	return result
}

func TestRosterTopicsAreRegistered(t *testing.T) {
	for _, name := range []string{"roster.user.joined", "roster.user.left"} {
		topic, ok := topicmgr.Default().Get(name)
		require.True(t, ok, name)
		assert.Equal(t, "roster", topic.Module())
	}
}

func TestTopicFor(t *testing.T) {
	joined, err := TopicFor(EventJoined)
	require.NoError(t, err)
	assert.Equal(t, "roster.user.joined", joined.Name())

	left, err := TopicFor(EventLeft)
	require.NoError(t, err)
	assert.Equal(t, "roster.user.left", left.Name())

	_, err = TopicFor("renamed")
	assert.Error(t, err)
}

func TestPublisherNotifier(t *testing.T) {
	publisher := &mockPublisher{}
	store := NewStore(WithNotifier(PublisherNotifier(publisher)))
	ctx := context.Background()

	require.NoError(t, store.AddUser(ctx, "demo-room", "user1", "Alice"))
	store.RemoveUser(ctx, "demo-room", "user1")

	messages := publisher.getMessages()
	require.Len(t, messages, 2)
	assert.Equal(t, TopicUserJoined.Name(), messages[0].Topic)
	assert.Equal(t, TopicUserLeft.Name(), messages[1].Topic)
	assert.Contains(t, string(messages[0].Payload), `"username":"Alice"`)
	assert.Contains(t, string(messages[1].Payload), `"kind":"left"`)
}

func TestPublisherNotifier_WrapsPublishError(t *testing.T) {
	publisher := &mockPublisher{err: errors.New("bus closed")}
	n := PublisherNotifier(publisher)

	err := n.Notify(context.Background(), Event{Kind: EventJoined, RoomID: "r"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "roster.user.joined")
	assert.Contains(t, err.Error(), "bus closed")
}

func TestPublisherNotifier_OverWatermill(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bridge := pubsub.NewWatermillBridge()
	defer bridge.Close()

	received := make(chan Event, 2)
	handler := func(ctx context.Context, evt Event) error {
		received <- evt
		return nil
	}
	require.NoError(t, pubsub.Subscribe(ctx, bridge, TopicUserJoined, handler))
	require.NoError(t, pubsub.Subscribe(ctx, bridge, TopicUserLeft, handler))

	store := NewStore(WithNotifier(PublisherNotifier(bridge)))
	require.NoError(t, store.AddUser(ctx, "demo-room", "user1", "Alice"))

	select {
	case evt := <-received:
		assert.Equal(t, EventJoined, evt.Kind)
		assert.Equal(t, "demo-room", evt.RoomID)
		assert.Equal(t, "user1", evt.UserID)
		assert.NotEmpty(t, evt.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for join event")
	}

	store.RemoveUser(ctx, "demo-room", "user1")

	select {
	case evt := <-received:
		assert.Equal(t, EventLeft, evt.Kind)
		assert.Equal(t, "Alice", evt.Username)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for leave event")
	}
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	store := NewStore(WithNotifier(LogNotifier(logger)))
	ctx := context.Background()

	require.NoError(t, store.AddUser(ctx, "demo-room", "user1", "Alice"))
	store.RemoveUser(ctx, "demo-room", "user1")

	out := buf.String()
	assert.Contains(t, out, `msg="User joined room"`)
	assert.Contains(t, out, `msg="User left room"`)
	assert.Contains(t, out, "room_id=demo-room")
	assert.Contains(t, out, "username=Alice")
}

func TestMultiNotifier(t *testing.T) {
	first := &recordingNotifier{}
	second := &recordingNotifier{}
	failing := NotifierFunc(func(ctx context.Context, evt Event) error {
		return errors.New("sink down")
	})

	n := MultiNotifier(first, nil, failing, second)
	err := n.Notify(context.Background(), Event{Kind: EventJoined, RoomID: "r"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "sink down")
	assert.Len(t, first.getEvents(), 1)
	assert.Len(t, second.getEvents(), 1)
}
