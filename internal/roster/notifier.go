package roster

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nfrund/roster/internal/pubsub"
)

// EventKind distinguishes join from leave notifications.
type EventKind string

const (
	EventJoined EventKind = "joined"
	EventLeft   EventKind = "left"
)

// Event is delivered to the Notifier whenever a roster changes.
type Event struct {
	ID       string    `json:"id"`
	Kind     EventKind `json:"kind"`
	RoomID   string    `json:"room_id"`
	UserID   string    `json:"user_id"`
	Username string    `json:"username"`
	At       time.Time `json:"at"`
}

// Typed topics for roster notifications. They register with the default topic
// manager when the package is loaded.
var (
	TopicUserJoined = pubsub.NewEvent[Event]("roster.user.joined", "Published when a user joins a room roster")
	TopicUserLeft   = pubsub.NewEvent[Event]("roster.user.left", "Published when a user leaves a room roster")
)

// TopicFor returns the topic that carries events of the given kind.
func TopicFor(kind EventKind) (pubsub.Event[Event], error) {
	switch kind {
	case EventJoined:
		return TopicUserJoined, nil
	case EventLeft:
		return TopicUserLeft, nil
	default:
		return pubsub.Event[Event]{}, fmt.Errorf("unknown roster event kind %q", kind)
	}
}

// Notifier receives join and leave events from a Store. Errors are logged by
// the store; the roster change has already been applied.
type Notifier interface {
	Notify(ctx context.Context, evt Event) error
}

// NotifierFunc adapts a plain function to the Notifier interface.
type NotifierFunc func(ctx context.Context, evt Event) error

// Notify calls f(ctx, evt).
func (f NotifierFunc) Notify(ctx context.Context, evt Event) error {
	return f(ctx, evt)
}

// LogNotifier writes every event to logger.
func LogNotifier(logger *slog.Logger) Notifier {
	return NotifierFunc(func(ctx context.Context, evt Event) error {
		msg := "User joined room"
		if evt.Kind == EventLeft {
			msg = "User left room"
		}
		logger.InfoContext(ctx, msg,
			"event_id", evt.ID,
			"room_id", evt.RoomID,
			"user_id", evt.UserID,
			"username", evt.Username,
			"at", evt.At)
		return nil
	})
}

// PublisherNotifier publishes every event on its typed roster topic.
func PublisherNotifier(p pubsub.Publisher) Notifier {
	return NotifierFunc(func(ctx context.Context, evt Event) error {
		topic, err := TopicFor(evt.Kind)
		if err != nil {
			return err
		}
		if err := pubsub.Publish(ctx, p, topic, evt); err != nil {
			return fmt.Errorf("publish %s: %w", topic.Name(), err)
		}
		return nil
	})
}

// MultiNotifier delivers each event to every notifier in order and joins
// their errors.
func MultiNotifier(notifiers ...Notifier) Notifier {
	return NotifierFunc(func(ctx context.Context, evt Event) error {
		var errs []error
		for _, n := range notifiers {
			if n == nil {
				continue
			}
			if err := n.Notify(ctx, evt); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})
}
