package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"

	"github.com/nfrund/roster/internal/roster"
)

// RosterService is the part of roster.Store the HTTP layer needs.
type RosterService interface {
	AddUser(ctx context.Context, roomID, userID, username string) error
	RemoveUser(ctx context.Context, roomID, userID string)
	SessionInfo(roomID string) (roster.SessionInfo, error)
	Users(roomID string) []roster.User
	Rooms() []string
}

// RosterHandler handles roster-related HTTP requests
type RosterHandler struct {
	rosters RosterService
}

// NewRosterHandler creates a new roster handler
func NewRosterHandler(rosters RosterService) *RosterHandler {
	return &RosterHandler{
		rosters: rosters,
	}
}

// Register mounts the roster routes on g. writeMW applies only to the routes
// that change a roster.
func (h *RosterHandler) Register(g *echo.Group, writeMW ...echo.MiddlewareFunc) {
	g.GET("", h.ListRooms)
	g.GET("/:roomID", h.GetSessionInfo)
	g.GET("/:roomID/users", h.GetRoster)
	g.POST("/:roomID/users", h.JoinRoom, writeMW...)
	g.DELETE("/:roomID/users/:userID", h.LeaveRoom, writeMW...)
}

// ListRooms returns every room that has a session.
func (h *RosterHandler) ListRooms(c echo.Context) error {
	rooms := h.rosters.Rooms()
	return c.JSON(http.StatusOK, RoomListResponse{Rooms: rooms, Count: len(rooms)})
}

// JoinRoom adds the posted user to the room's roster.
func (h *RosterHandler) JoinRoom(c echo.Context) error {
	var req JoinRoomRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "invalid_request",
			Message: "request body must be JSON with user_id and username",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "validation_failed",
			Message: err.Error(),
		})
	}

	err := h.rosters.AddUser(c.Request().Context(), req.RoomID, req.UserID, req.Username)
	if errors.Is(err, roster.ErrUserAlreadyJoined) {
		return c.JSON(http.StatusConflict, ErrorResponse{
			Code:    "already_joined",
			Message: err.Error(),
		})
	}
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]string{
		"room_id":  req.RoomID,
		"user_id":  req.UserID,
		"username": req.Username,
	})
}

// LeaveRoom removes the user from the room. Unknown rooms and users succeed.
func (h *RosterHandler) LeaveRoom(c echo.Context) error {
	h.rosters.RemoveUser(c.Request().Context(), c.Param("roomID"), c.Param("userID"))
	return c.NoContent(http.StatusNoContent)
}

// GetRoster returns the room's users in join order.
func (h *RosterHandler) GetRoster(c echo.Context) error {
	roomID := c.Param("roomID")
	// One snapshot so usernames and users always agree.
	users := h.rosters.Users(roomID)

	return c.JSON(http.StatusOK, RosterResponse{
		RoomID:    roomID,
		Usernames: lo.Map(users, func(u roster.User, _ int) string { return u.Username }),
		Users:     users,
		Count:     len(users),
	})
}

// GetSessionInfo returns the session summary or 404 for unknown rooms.
func (h *RosterHandler) GetSessionInfo(c echo.Context) error {
	info, err := h.rosters.SessionInfo(c.Param("roomID"))
	if errors.Is(err, roster.ErrSessionNotFound) {
		return c.JSON(http.StatusNotFound, ErrorResponse{
			Code:    "session_not_found",
			Message: err.Error(),
		})
	}
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, NewSessionInfoResponse(info))
}

// HealthCheck reports that the service is up.
func (h *RosterHandler) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
