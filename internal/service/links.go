package service

import (
	"context"
	"time"

	"github.com/linkstash/linkstash/internal/analysis"
	"github.com/linkstash/linkstash/internal/apperr"
	"github.com/linkstash/linkstash/internal/metrics"
	"github.com/linkstash/linkstash/internal/model"
	"github.com/linkstash/linkstash/internal/repository"
)

// LinkService orchestrates link CRUD with ownership enforcement and
// content analysis. Every read and write goes through an ownership
// check before the caller sees or touches a record.
type LinkService struct {
	repo     repository.Links
	analyzer analysis.Analyzer
	metrics  metrics.Recorder
}

// NewLinkService creates a LinkService.
func NewLinkService(repo repository.Links, analyzer analysis.Analyzer, recorder metrics.Recorder) *LinkService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &LinkService{
		repo:     repo,
		analyzer: analyzer,
		metrics:  recorder,
	}
}

// Search returns the links visible to the caller. Admin callers see
// every stored link; everyone else only their own.
func (s *LinkService) Search(ctx context.Context, query model.LinkQuery) ([]*model.LinkItem, error) {
	if query.FromAdmin {
		query.Owner = ""
	}
	return s.repo.Find(ctx, query)
}

// Get returns the link identified by the query id. The record is
// fetched by id alone, then checked against the query owner: a link
// that exists but belongs to someone else is an AuthorizationError,
// not a LinkNotFoundError. Admin callers pass the check regardless of
// owner.
func (s *LinkService) Get(ctx context.Context, query model.LinkQuery) (*model.LinkItem, error) {
	item, err := s.repo.Get(ctx, model.LinkQuery{ID: query.ID})
	if err != nil {
		return nil, err
	}
	if item.Owner != query.Owner && !query.FromAdmin {
		return nil, apperr.AuthorizationError{Msg: "User is not authorized to access resource"}
	}
	return item, nil
}

// Create persists the link and then submits it for analysis. The
// record stays persisted even when analysis fails, but the failure is
// reported to the caller.
func (s *LinkService) Create(ctx context.Context, item *model.LinkItem) (*model.LinkItem, error) {
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	created, err := s.repo.Create(ctx, item)
	if err != nil {
		return nil, err
	}
	s.metrics.IncLinkCreated()

	if err := s.analyze(ctx, created); err != nil {
		return nil, err
	}

	return created, nil
}

// Update replaces the link identified by the query id. The stored
// record's owner and creation time always survive the update, whatever
// the caller sent. Analysis is resubmitted only when the URL actually
// changed.
func (s *LinkService) Update(ctx context.Context, query model.LinkQuery, item *model.LinkItem) (*model.LinkItem, error) {
	stored, err := s.Get(ctx, query)
	if err != nil {
		return nil, err
	}

	item.ID = stored.ID
	item.Owner = stored.Owner
	item.CreatedAt = stored.CreatedAt
	item.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, model.LinkQuery{ID: stored.ID}, item)
	if err != nil {
		return nil, err
	}
	s.metrics.IncLinkUpdated()

	if updated.URL != stored.URL {
		if err := s.analyze(ctx, updated); err != nil {
			return nil, err
		}
	}

	return updated, nil
}

// Delete removes the link identified by the query id, subject to the
// same ownership check as Get.
func (s *LinkService) Delete(ctx context.Context, query model.LinkQuery) error {
	stored, err := s.Get(ctx, query)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, model.LinkQuery{ID: stored.ID}); err != nil {
		return err
	}
	s.metrics.IncLinkDeleted()

	return nil
}

func (s *LinkService) analyze(ctx context.Context, item *model.LinkItem) error {
	if s.analyzer == nil {
		return nil
	}
	s.metrics.IncAnalysisCalled()
	if err := s.analyzer.Analyze(ctx, item); err != nil {
		s.metrics.IncAnalysisFailed()
		return err
	}
	return nil
}
