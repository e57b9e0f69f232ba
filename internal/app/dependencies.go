package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/nfrund/roster/internal/config"
	"github.com/nfrund/roster/internal/pubsub"
	"github.com/nfrund/roster/internal/roster"
	"github.com/nfrund/roster/internal/topicmgr"
)

// Dependencies holds the core services shared by the HTTP server and the CLI.
type Dependencies struct {
	Bridge   *pubsub.WatermillBridge
	Store    *roster.Store
	TopicMgr *topicmgr.Manager

	shutdownTracing func(context.Context) error
}

// NewDependencies builds the pub/sub bridge and a roster store whose join and
// leave events are both logged and published on the bridge. Extra store
// options are applied after the defaults.
func NewDependencies(ctx context.Context, cfg *config.Config, opts ...roster.Option) (*Dependencies, error) {
	tracer, shutdown, err := pubsub.SetupTracing(ctx, cfg.Tracing)
	if err != nil {
		return nil, err
	}

	bridge := pubsub.NewWatermillBridge(pubsub.WithTracer(tracer))

	logger := slog.Default().With("component", "roster")
	storeOpts := append([]roster.Option{
		roster.WithLogger(logger),
		roster.WithNotifier(roster.MultiNotifier(
			roster.LogNotifier(logger),
			roster.PublisherNotifier(bridge),
		)),
	}, opts...)

	return &Dependencies{
		Bridge:          bridge,
		Store:           roster.NewStore(storeOpts...),
		TopicMgr:        topicmgr.Default(),
		shutdownTracing: shutdown,
	}, nil
}

// Close stops the bridge and flushes traces.
func (d *Dependencies) Close(ctx context.Context) error {
	return errors.Join(d.Bridge.Close(), d.shutdownTracing(ctx))
}
