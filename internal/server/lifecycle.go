package server

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nfrund/roster/internal/pubsub"
	"github.com/nfrund/roster/internal/topicmgr"
)

var (
	TopicServerStarted = topicmgr.DefineFramework(topicmgr.TopicConfig{
		Name:        "server.lifecycle.started",
		Description: "Published once the HTTP server is listening",
		Pattern:     "server.lifecycle.started",
		Example:     `{"addr":"[::]:8080","at":"2024-01-01T12:00:00Z"}`,
	})
	TopicServerStopped = topicmgr.DefineFramework(topicmgr.TopicConfig{
		Name:        "server.lifecycle.stopped",
		Description: "Published after the HTTP server has shut down",
		Pattern:     "server.lifecycle.stopped",
		Example:     `{"addr":"[::]:8080","at":"2024-01-01T12:05:00Z"}`,
	})
)

func init() {
	topicmgr.Default().MustRegister(TopicServerStarted)
	topicmgr.Default().MustRegister(TopicServerStopped)
}

// LifecycleEvent is the payload of the server lifecycle topics.
type LifecycleEvent struct {
	Addr string    `json:"addr"`
	At   time.Time `json:"at"`
}

func (s *Server) publishLifecycle(ctx context.Context, topic topicmgr.Topic, addr string) {
	payload, err := json.Marshal(LifecycleEvent{Addr: addr, At: time.Now()})
	if err != nil {
		s.logger.Error("Failed to marshal lifecycle event", "topic", topic.Name(), "error", err)
		return
	}
	err = s.Deps.Bridge.Publish(ctx, pubsub.Message{Topic: topic.Name(), Payload: payload})
	if err != nil {
		s.logger.Warn("Failed to publish lifecycle event", "topic", topic.Name(), "error", err)
	}
}
