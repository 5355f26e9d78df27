package domain

import "time"

// Follow is a directed edge between two profiles: the profile with FollowerID
// follows the profile with FollowedID. That direction is canonical throughout
// the app - a profile's followers are the rows where it appears as FollowedID.
// The pair is unique, so an edge either exists once or not at all.
type Follow struct {
	ID         int       `json:"id"`
	FollowerID int       `json:"follower_id" gorm:"notNull;uniqueIndex:uix_follows_edge"`
	FollowedID int       `json:"followed_id" gorm:"notNull;uniqueIndex:uix_follows_edge"`
	CreatedAt  time.Time `json:"created_at"`
}

// FollowService manages the follow graph.
//
// Toggle flips the edge follower -> followed and reports whether the edge
// exists after the call. It is a toggle, not a set: two sequential calls
// return the graph to its original state. Both arms of the toggle are single
// conditional writes, so concurrent toggles cannot duplicate an edge.
type FollowService interface {
	IsFollowing(followerID, followedID int) (bool, error)
	Toggle(followerID, followedID int) (following bool, err error)
	Followers(profileID int) ([]Profile, error)
}
