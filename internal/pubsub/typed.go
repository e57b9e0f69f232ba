package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/nfrund/roster/internal/topicmgr"
)

// Event[T] wraps a topic name and provides type-safe publishing and
// subscribing. The topic is registered with the default topic manager.
type Event[T any] struct {
	topicName string
	config    topicmgr.TopicConfig
}

// NewEvent creates a typed event and registers it with the default manager.
// The payload fields listed in the topic metadata come from T's json tags.
// It panics if the topic cannot be registered, so define events at package
// level where a bad name stops startup.
func NewEvent[T any](name string, description string) Event[T] {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	fields := make([]string, 0)
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			tag := t.Field(i).Tag.Get("json")
			if tag == "" || tag == "-" {
				continue
			}
			fieldName, _, _ := strings.Cut(tag, ",")
			fields = append(fields, fieldName)
		}
	}

	// "roster.user.joined" belongs to module "roster".
	module, _, _ := strings.Cut(name, ".")

	config := topicmgr.TopicConfig{
		Name:        name,
		Module:      module,
		Description: description,
		Pattern:     name,
		Metadata: map[string]interface{}{
			"payload_fields": fields,
			"type_name":      t.Name(),
			"is_typed":       true,
		},
	}

	topicmgr.Default().MustRegister(topicmgr.DefineModule(config))

	return Event[T]{
		topicName: name,
		config:    config,
	}
}

// Name returns the topic name.
func (e Event[T]) Name() string {
	return e.topicName
}

// Config returns the topic configuration the event was registered with.
func (e Event[T]) Config() topicmgr.TopicConfig {
	return e.config
}

// Publish sends a typed event. The compiler ensures 'payload' matches 'T'.
func Publish[T any](ctx context.Context, p Publisher, event Event[T], payload T) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", event.Name(), err)
	}

	return p.Publish(ctx, Message{
		Topic:   event.Name(),
		Payload: data,
	})
}

// Subscribe listens on the event's topic and decodes each payload into T
// before calling handler. Payloads that fail to decode are reported as
// handler errors.
func Subscribe[T any](ctx context.Context, s Subscriber, event Event[T], handler func(ctx context.Context, payload T) error) error {
	return s.Subscribe(ctx, event.Name(), func(ctx context.Context, msg Message) error {
		var payload T
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return fmt.Errorf("unmarshal %s payload: %w", event.Name(), err)
		}
		return handler(ctx, payload)
	})
}
