// Package model defines domain entities for the application.
package model

import "time"

// LinkItem represents a saved link owned by a user.
// Owner is always stamped by the server from the authenticated
// principal, never taken from client input. The derived fields
// (WordCount, ReadingTime, Summary, Label) are filled in by the
// analysis collaborator after creation.
type LinkItem struct {
	ID          string    `json:"id"`
	Owner       string    `json:"owner"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	WordCount   int       `json:"word_count"`
	ReadingTime int       `json:"reading_time"`
	Summary     string    `json:"summary"`
	Label       string    `json:"label"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewLinkItem creates an unpersisted link for the given owner.
// ID and timestamps are assigned by the orchestration service and the
// repository during Create.
func NewLinkItem(owner, url, title, description string) *LinkItem {
	return &LinkItem{
		Owner:       owner,
		URL:         url,
		Title:       title,
		Description: description,
	}
}

// LinkQuery scopes repository reads and carries the authorization
// context of the requesting principal. An empty Owner matches links of
// every owner; FromAdmin records whether the principal may bypass the
// ownership check.
type LinkQuery struct {
	ID        string
	Owner     string
	FromAdmin bool
}

// Matches reports whether the item satisfies the query filters.
// Empty fields match everything.
func (q LinkQuery) Matches(item *LinkItem) bool {
	if q.ID != "" && item.ID != q.ID {
		return false
	}
	if q.Owner != "" && item.Owner != q.Owner {
		return false
	}
	return true
}
