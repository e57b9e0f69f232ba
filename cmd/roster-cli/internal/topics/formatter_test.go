package topics

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/roster/internal/topicmgr"
)

func testTopics() []topicmgr.Topic {
	return []topicmgr.Topic{
		topicmgr.DefineModule(topicmgr.TopicConfig{
			Name:        "roster.user.joined",
			Module:      "roster",
			Description: "Published when a user joins a room roster",
			Pattern:     "roster.user.joined",
			Example:     `{"room_id":"demo-room"}`,
			Metadata:    map[string]interface{}{"type_name": "Event"},
		}),
		topicmgr.DefineFramework(topicmgr.TopicConfig{
			Name:        "server.lifecycle.started",
			Description: "Published once the HTTP server is listening",
			Pattern:     "server.lifecycle.started",
		}),
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, testTopics()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "NAME"))
	assert.Contains(t, lines[2], "roster.user.joined")
	assert.Contains(t, lines[2], "module")
	assert.Contains(t, lines[3], "framework")
	assert.Regexp(t, `framework\s+-\s+`, lines[3])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, testTopics()))

	var out struct {
		Topics []TopicDisplay `json:"topics"`
		Count  int            `json:"count"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, 2, out.Count)
	assert.Equal(t, "roster", out.Topics[0].Module)
	assert.Equal(t, "framework", out.Topics[1].Scope)
}

func TestWriteDetails(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDetails(&buf, testTopics()[1], "table"))

	out := buf.String()
	assert.Contains(t, out, "Name:        server.lifecycle.started")
	assert.Contains(t, out, "Module:      (framework)")
	assert.NotContains(t, out, "Metadata:")

	buf.Reset()
	require.NoError(t, WriteDetails(&buf, testTopics()[0], "table"))
	assert.Contains(t, buf.String(), "  type_name: Event")
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", truncateString("short", 10))
	assert.Equal(t, "abcd...", truncateString("abcdefghij", 7))
	assert.Equal(t, "...", truncateString("abcdef", 2))
}

func TestManagerIncludesRosterAndServerTopics(t *testing.T) {
	m := Manager()

	_, ok := m.Get("roster.user.left")
	assert.True(t, ok)
	_, ok = m.Get("server.lifecycle.stopped")
	assert.True(t, ok)
}
