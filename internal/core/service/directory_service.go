package service

import (
	"context"
	"fmt"

	"github.com/99minutos/backoffice/internal/core/domain"
	"github.com/99minutos/backoffice/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
	maxPage          = 100000
)

// DirectoryService serves the user management listing.
type DirectoryService struct {
	dir ports.UserDirectory
}

func NewDirectoryService(dir ports.UserDirectory) *DirectoryService {
	return &DirectoryService{dir: dir}
}

// ListPrincipals returns one page of principals. Page defaults to 1, capped
// at 100000; limit defaults to 20, capped at 100.
func (s *DirectoryService) ListPrincipals(ctx context.Context, filter ports.ListPrincipalsFilter) (*ports.ListPrincipalsResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Page > maxPage {
		filter.Page = maxPage
	}
	if filter.Limit < 1 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}

	items, total, err := s.dir.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: list principals: %w", domain.ErrAuthFailure, err)
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &ports.ListPrincipalsResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}
