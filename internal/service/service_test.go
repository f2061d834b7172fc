package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/linkstash/linkstash/internal/apperr"
	"github.com/linkstash/linkstash/internal/model"
)

// fakeLinks is a function-field stub for repository.Links. Unset
// fields panic so a test that exercises an unexpected call fails
// loudly.
type fakeLinks struct {
	findFn   func(ctx context.Context, query model.LinkQuery) ([]*model.LinkItem, error)
	getFn    func(ctx context.Context, query model.LinkQuery) (*model.LinkItem, error)
	createFn func(ctx context.Context, item *model.LinkItem) (*model.LinkItem, error)
	updateFn func(ctx context.Context, query model.LinkQuery, item *model.LinkItem) (*model.LinkItem, error)
	deleteFn func(ctx context.Context, query model.LinkQuery) error
}

func (f *fakeLinks) Find(ctx context.Context, query model.LinkQuery) ([]*model.LinkItem, error) {
	return f.findFn(ctx, query)
}

func (f *fakeLinks) Get(ctx context.Context, query model.LinkQuery) (*model.LinkItem, error) {
	return f.getFn(ctx, query)
}

func (f *fakeLinks) Create(ctx context.Context, item *model.LinkItem) (*model.LinkItem, error) {
	return f.createFn(ctx, item)
}

func (f *fakeLinks) Update(ctx context.Context, query model.LinkQuery, item *model.LinkItem) (*model.LinkItem, error) {
	return f.updateFn(ctx, query, item)
}

func (f *fakeLinks) Delete(ctx context.Context, query model.LinkQuery) error {
	return f.deleteFn(ctx, query)
}

// fakeUsers is a minimal in-memory repository.Users keyed by email,
// tracking how many creates happened.
type fakeUsers struct {
	mu      sync.Mutex
	byEmail map[string]*model.UserInfo
	creates int
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byEmail: make(map[string]*model.UserInfo)}
}

func (f *fakeUsers) Get(_ context.Context, query model.UserQuery) (*model.UserInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	info, ok := f.byEmail[query.Email]
	if !ok {
		return nil, apperr.UserNotFoundError{Email: query.Email}
	}
	clone := *info
	return &clone, nil
}

func (f *fakeUsers) Create(_ context.Context, info *model.UserInfo) (*model.UserInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byEmail[info.Email]; ok {
		return nil, apperr.UserAlreadyExistsError{Email: info.Email}
	}
	f.creates++
	clone := *info
	clone.ID = fmt.Sprintf("user-%d", f.creates)
	f.byEmail[info.Email] = &clone
	out := clone
	return &out, nil
}

// countingAnalyzer records every item handed to Analyze and optionally
// fails with err.
type countingAnalyzer struct {
	mu    sync.Mutex
	calls int
	last  *model.LinkItem
	err   error
}

func (a *countingAnalyzer) Analyze(_ context.Context, item *model.LinkItem) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls++
	a.last = item
	return a.err
}

func (a *countingAnalyzer) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.calls
}

var errBroken = errors.New("broken repository")
