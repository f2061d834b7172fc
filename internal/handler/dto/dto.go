// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"time"

	"github.com/linkstash/linkstash/internal/model"
)

// RegisterRequest represents the request body for registering a user.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Admin    bool   `json:"admin,omitempty"`
}

// LoginRequest represents the request body for logging in.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token string `json:"token"`
}

// UserResponse represents a user in API responses.
// The password hash never leaves the server.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Admin     bool      `json:"admin"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateLinkRequest represents the request body for saving a link.
type CreateLinkRequest struct {
	URL         string `json:"url"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// UpdateLinkRequest represents the request body for updating a link.
type UpdateLinkRequest struct {
	URL         string `json:"url"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// LinkResponse represents a saved link in API responses.
type LinkResponse struct {
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

// LinkListResponse represents a list of saved links.
type LinkListResponse struct {
	Data []*LinkResponse `json:"data"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ToUserResponse converts a UserInfo model to UserResponse DTO.
func ToUserResponse(info *model.UserInfo) *UserResponse {
	return &UserResponse{
		ID:        info.ID,
		Email:     info.Email,
		Admin:     info.Admin,
		Verified:  info.Verified,
		CreatedAt: info.CreatedAt,
		UpdatedAt: info.UpdatedAt,
	}
}

// ToLinkResponse converts a LinkItem model to LinkResponse DTO.
func ToLinkResponse(item *model.LinkItem) *LinkResponse {
	return &LinkResponse{
		ID:          item.ID,
		Owner:       item.Owner,
		URL:         item.URL,
		Title:       item.Title,
		Description: item.Description,
		WordCount:   item.WordCount,
		ReadingTime: item.ReadingTime,
		Summary:     item.Summary,
		Label:       item.Label,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

// ToLinkListResponse converts a slice of LinkItem models.
func ToLinkListResponse(items []*model.LinkItem) *LinkListResponse {
	data := make([]*LinkResponse, 0, len(items))
	for _, item := range items {
		data = append(data, ToLinkResponse(item))
	}
	return &LinkListResponse{Data: data}
}
