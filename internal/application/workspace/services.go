package workspace

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dhnext/launchpad/internal/domain/compliance"
	domain "github.com/dhnext/launchpad/internal/domain/workspace"
)

// Service stores the tenant's saved link and serves the panel's initial data
type Service struct {
	Store domain.Store
}

func NewService(store domain.Store) *Service {
	return &Service{Store: store}
}

// SaveLink overwrites the tenant's link. The link is stored as given.
func (s *Service) SaveLink(ctx context.Context, tenant, link string) error {
	if strings.TrimSpace(tenant) == "" {
		return domain.ErrInvalidTenant
	}

	value, err := domain.EncodeLink(link)
	if err != nil {
		return fmt.Errorf("failed to encode link: %w", err)
	}

	if err := s.Store.Set(ctx, tenant, domain.KeyConfluenceLink, value); err != nil {
		return fmt.Errorf("failed to save link: %w", err)
	}
	return nil
}

// InitialData loads the last result and link; absent keys come back nil
func (s *Service) InitialData(ctx context.Context, tenant string) (domain.InitialData, error) {
	var data domain.InitialData
	if strings.TrimSpace(tenant) == "" {
		return data, domain.ErrInvalidTenant
	}

	raw, err := s.Store.Get(ctx, tenant, domain.KeyComplianceResult)
	if err != nil {
		return data, fmt.Errorf("failed to load compliance result: %w", err)
	}
	if raw != nil {
		var result compliance.Result
		if err := json.Unmarshal(raw, &result); err != nil {
			return data, fmt.Errorf("%w: %s: %v", domain.ErrCorruptValue, domain.KeyComplianceResult, err)
		}
		data.ComplianceResult = &result
	}

	raw, err = s.Store.Get(ctx, tenant, domain.KeyConfluenceLink)
	if err != nil {
		return data, fmt.Errorf("failed to load link: %w", err)
	}
	if raw != nil {
		var link string
		if err := json.Unmarshal(raw, &link); err != nil {
			return data, fmt.Errorf("%w: %s: %v", domain.ErrCorruptValue, domain.KeyConfluenceLink, err)
		}
		data.ConfluenceLink = &link
	}

	return data, nil
}
