package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/nfrund/roster/internal/app"
	"github.com/nfrund/roster/internal/config"
	"github.com/nfrund/roster/internal/logging"
	"github.com/nfrund/roster/internal/pubsub"
	"github.com/nfrund/roster/internal/roster"
)

// eventWait bounds how long the demo waits for an event to come back off the bus.
const eventWait = 5 * time.Second

var (
	demoRoom  string
	demoOut   string
	demoLeave []string
)

var demoUsers = []struct {
	ID, Username string
}{
	{"user1", "Alice"},
	{"user2", "Bob"},
	{"user3", "Charlie"},
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Replay the demo collaborative session",
	Long: `Create a roster for a room, join Alice, Bob and Charlie, and print the
session summary. Join and leave lines are printed as the events arrive on the
message bus, not when the store is called.

Examples:
  roster-cli demo
  roster-cli demo --room design-review
  roster-cli demo --leave user2 --out reports/demo.txt`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	level := "warn"
	if verbose {
		level = cfg.LogLevel
	}
	logging.New(cmd.ErrOrStderr(), cfg.LogFormat, level)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	deps, err := app.NewDependencies(ctx, cfg)
	if err != nil {
		return fmt.Errorf("build dependencies: %w", err)
	}
	defer deps.Close(context.Background())

	events := make(chan roster.Event, 1)
	forward := func(ctx context.Context, evt roster.Event) error {
		select {
		case events <- evt:
		case <-ctx.Done():
		}
		return nil
	}
	for _, topic := range []pubsub.Event[roster.Event]{roster.TopicUserJoined, roster.TopicUserLeft} {
		if err := pubsub.Subscribe(ctx, deps.Bridge, topic, forward); err != nil {
			return fmt.Errorf("subscribe %s: %w", topic.Name(), err)
		}
	}

	var report bytes.Buffer
	out := io.MultiWriter(cmd.OutOrStdout(), &report)

	for _, u := range demoUsers {
		if err := deps.Store.AddUser(ctx, demoRoom, u.ID, u.Username); err != nil {
			return err
		}
		if err := printNextEvent(ctx, out, events); err != nil {
			return err
		}
	}

	for _, userID := range demoLeave {
		if !deps.Store.HasUser(demoRoom, userID) {
			return fmt.Errorf("user %q is not in room %q", userID, demoRoom)
		}
		deps.Store.RemoveUser(ctx, demoRoom, userID)
		if err := printNextEvent(ctx, out, events); err != nil {
			return err
		}
	}

	info, err := deps.Store.SessionInfo(demoRoom)
	if err != nil {
		return err
	}
	writeSessionInfo(out, info)
	fmt.Fprintln(out, "\nReady for collaborative editing!")

	if demoOut != "" {
		if err := writeReport(appFs, demoOut, report.Bytes()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Report written to %s\n", demoOut)
	}
	return nil
}

func printNextEvent(ctx context.Context, w io.Writer, events <-chan roster.Event) error {
	select {
	case evt := <-events:
		verb := "joined"
		if evt.Kind == roster.EventLeft {
			verb = "left"
		}
		fmt.Fprintf(w, "User %s %s room %s\n", evt.Username, verb, evt.RoomID)
		return nil
	case <-time.After(eventWait):
		return fmt.Errorf("no roster event received within %s", eventWait)
	case <-ctx.Done():
		return ctx.Err()
	}
}

func writeSessionInfo(w io.Writer, info roster.SessionInfo) {
	active := strings.Join(info.ActiveUsers, ", ")
	if active == "" {
		active = "(none)"
	}
	fmt.Fprintln(w, "\nSession Info:")
	fmt.Fprintf(w, "Room ID: %s\n", info.RoomID)
	fmt.Fprintf(w, "Active Users: %s\n", active)
	fmt.Fprintf(w, "Total Users: %d\n", info.UserCount)
}

func writeReport(fs afero.Fs, path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report directory: %w", err)
		}
	}
	if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(demoCmd)

	demoCmd.Flags().StringVar(&demoRoom, "room", "demo-room", "Room to create the session in")
	demoCmd.Flags().StringVarP(&demoOut, "out", "o", "", "Also write the report to this file")
	demoCmd.Flags().StringSliceVar(&demoLeave, "leave", nil, "User ids to remove after everyone has joined")
}
