package compliance

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/dhnext/launchpad/internal/application"
	domain "github.com/dhnext/launchpad/internal/domain/compliance"
	"github.com/dhnext/launchpad/internal/domain/workspace"
)

// excerptLen caps how much of a bad page payload ends up in an error message
const excerptLen = 200

// Service implements the compliance check use-case.
// Satu check = satu fetch + satu extraction, tanpa retry.
type Service struct {
	Fetcher   domain.PageFetcher
	Extractor domain.Extractor
	Store     workspace.Store
	Clock     application.Clock
}

func NewService(fetcher domain.PageFetcher, extractor domain.Extractor, store workspace.Store, clock application.Clock) *Service {
	if clock == nil {
		clock = application.SystemClock{}
	}
	return &Service{Fetcher: fetcher, Extractor: extractor, Store: store, Clock: clock}
}

// RunComplianceCheck fetch page → normalize → extract → simpan ke store.
// It never returns an error: every failure becomes an error envelope.
func (s *Service) RunComplianceCheck(ctx context.Context, tenant, pageURL string) domain.Result {
	now := s.Clock.Now()
	logger := log.With().
		Str("check_id", uuid.NewString()).
		Str("tenant", tenant).
		Str("strategy", string(s.Extractor.Strategy())).
		Logger()

	page, items, err := s.extract(ctx, pageURL)
	if err != nil {
		logger.Warn().Err(err).Str("page_url", pageURL).Msg("compliance check failed")
		return domain.Failed(err.Error(), now)
	}

	result := domain.Succeeded(page.Title, pageURL, items, s.Extractor.Strategy(), now)

	value, err := workspace.EncodeResult(result)
	if err == nil {
		err = s.Store.Set(ctx, tenant, workspace.KeyComplianceResult, value)
	}
	if err != nil {
		logger.Error().Err(err).Msg("failed to persist compliance result")
		return domain.Failed(domain.ErrSaveFailed.Error(), now)
	}

	logger.Info().Str("page_title", page.Title).Int("items", len(items)).Msg("compliance check complete")
	return result
}

func (s *Service) extract(ctx context.Context, pageURL string) (*domain.Page, []domain.Item, error) {
	pageID, err := domain.ExtractPageID(pageURL)
	if err != nil {
		return nil, nil, err
	}

	page, err := s.Fetcher.FetchPage(ctx, pageID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch page %s: %w", pageID, err)
	}

	body, ok := page.StorageValue()
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", domain.ErrMalformedPageResponse, excerpt(page))
	}

	items := s.Extractor.Extract(ctx, domain.Normalize(body))
	return page, items, nil
}

func excerpt(page *domain.Page) string {
	if page == nil {
		return "<empty>"
	}
	raw := page.Raw
	if len(raw) == 0 {
		raw, _ = json.Marshal(page)
	}
	return lo.Substring(string(raw), 0, excerptLen)
}
