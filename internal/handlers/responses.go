package handlers

import (
	"time"

	"github.com/nfrund/roster/internal/roster"
)

// ErrorResponse is the standard format for API error responses.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RoomListResponse lists the known rooms, oldest first.
type RoomListResponse struct {
	Rooms []string `json:"rooms"`
	Count int      `json:"count"`
}

// RosterResponse is the DTO for a room's current roster.
type RosterResponse struct {
	RoomID    string        `json:"room_id"`
	Usernames []string      `json:"usernames"`
	Users     []roster.User `json:"users"`
	Count     int           `json:"count"`
}

// SessionInfoResponse is the DTO for a session summary. Uptime is reported
// both as seconds and as a Go duration string.
type SessionInfoResponse struct {
	RoomID        string    `json:"room_id"`
	UserCount     int       `json:"user_count"`
	ActiveUsers   []string  `json:"active_users"`
	UptimeSeconds float64   `json:"uptime_seconds"`
	Uptime        string    `json:"uptime"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewSessionInfoResponse creates a SessionInfoResponse from a roster.SessionInfo.
func NewSessionInfoResponse(info roster.SessionInfo) *SessionInfoResponse {
	return &SessionInfoResponse{
		RoomID:        info.RoomID,
		UserCount:     info.UserCount,
		ActiveUsers:   info.ActiveUsers,
		UptimeSeconds: info.Uptime.Seconds(),
		Uptime:        info.Uptime.String(),
		CreatedAt:     info.CreatedAt,
	}
}
