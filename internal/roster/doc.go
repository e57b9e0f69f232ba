// Package roster tracks which users are currently joined to which
// collaborative rooms.
//
// A Store owns one session per room. Sessions are created by the first
// AddUser for a room and keep their users in join order. Join and leave
// events go to an optional Notifier, either the structured log or the
// pub/sub bus.
package roster
