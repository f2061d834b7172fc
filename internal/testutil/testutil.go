// Package testutil provides helpers shared by tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/linkstash/linkstash/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

// TruncateTables empties the links and users tables between
// integration tests.
func TruncateTables(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, "TRUNCATE links, users"); err != nil {
		return fmt.Errorf("truncate tables: %w", err)
	}
	return nil
}

// NewTestLink creates a test link with sensible defaults.
func NewTestLink(t testing.TB, owner string) *model.LinkItem {
	t.Helper()
	now := time.Now().UTC()
	return &model.LinkItem{
		Owner:       owner,
		URL:         "http://example.com/article",
		Title:       "An article",
		Description: "Test link",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// NewTestUser creates a test user with sensible defaults. The password
// field holds an opaque placeholder hash; use auth.HashPassword when a
// verifiable hash is needed.
func NewTestUser(t testing.TB, email string) *model.UserInfo {
	t.Helper()
	now := time.Now().UTC()
	return &model.UserInfo{
		Email:     email,
		Password:  fmt.Sprintf("hash-%d", now.UnixNano()),
		Verified:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UniqueEmail generates a unique email address for tests.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@test.com", prefix, time.Now().UnixNano())
}
