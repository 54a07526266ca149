package entity

import "time"

// Follow is a directed edge: follower follows following.
// The pair (FollowerID, FollowingID) is unique and self-edges are forbidden,
// both enforced by the database schema.
type Follow struct {
	FollowerID  string
	FollowingID string
	CreatedAt   time.Time
}
