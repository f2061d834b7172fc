package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/linkstash/linkstash/internal/apperr"
	"github.com/linkstash/linkstash/internal/auth"
	"github.com/linkstash/linkstash/internal/model"
	"github.com/linkstash/linkstash/internal/repository"
)

type output struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Admin  bool   `json:"admin"`
}

func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		email       = flag.String("email", "admin@linkstash.local", "Admin email")
		password    = flag.String("password", "", "Admin password")
		format      = flag.String("format", "plain", "Output format: plain or json")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}
	if *password == "" {
		fmt.Fprintln(os.Stderr, "password is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pg, err := repository.NewPostgres(ctx, *databaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}
	defer pg.Close()

	if err := pg.Migrate(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "run migrations:", err)
		os.Exit(1)
	}

	hash, err := auth.HashPassword(*password)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hash password:", err)
		os.Exit(1)
	}

	now := time.Now().UTC()
	info := &model.UserInfo{
		Email:     *email,
		Password:  hash,
		Admin:     true,
		Verified:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := pg.Users().Create(ctx, info)
	if err != nil {
		var exists apperr.UserAlreadyExistsError
		if errors.As(err, &exists) {
			fmt.Fprintln(os.Stderr, "admin user already exists:", *email)
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "create admin user:", err)
		os.Exit(1)
	}

	out := output{
		UserID: created.ID,
		Email:  created.Email,
		Admin:  created.Admin,
	}

	switch strings.ToLower(*format) {
	case "plain":
		fmt.Println(out.UserID)
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(out)
	default:
		fmt.Fprintln(os.Stderr, "invalid format; use plain or json")
		os.Exit(1)
	}
}
