package service

import (
	"context"
	"fmt"

	"github.com/Rrens/shopchat/internal/domain"
)

// RequestService lists persisted chat requests for the back-office
type RequestService struct {
	repo domain.RequestRepository
}

func NewRequestService(repo domain.RequestRepository) *RequestService {
	return &RequestService{repo: repo}
}

// Recent returns up to limit records, newest first. Non-positive or
// oversized limits fall back to domain.MaxRequestListLimit.
func (s *RequestService) Recent(ctx context.Context, limit int) ([]domain.RequestRecord, error) {
	if limit <= 0 || limit > domain.MaxRequestListLimit {
		limit = domain.MaxRequestListLimit
	}

	records, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	if records == nil {
		records = []domain.RequestRecord{}
	}
	return records, nil
}
