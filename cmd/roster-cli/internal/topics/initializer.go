package topics

import (
	"github.com/nfrund/roster/internal/roster"
	"github.com/nfrund/roster/internal/server"
	"github.com/nfrund/roster/internal/topicmgr"
)

// Manager returns the default topic manager after making sure every package
// that defines topics has registered them. Topics register at package load,
// so referencing one topic per package is enough.
func Manager() *topicmgr.Manager {
	_ = roster.TopicUserJoined
	_ = server.TopicServerStarted
	return topicmgr.Default()
}
