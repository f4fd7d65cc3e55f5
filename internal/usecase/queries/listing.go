package queries

import (
	"context"

	"ev-carbon-market/internal/infra"
	"ev-carbon-market/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrListingNotFound = errs.New("listing not found")

type MarketplaceSearch struct {
	Page  PageRequest
	Sort  SortKey
	Price PriceRange
}

func (s *MarketplaceSearch) Validate() error {
	if err := s.Page.Validate(); err != nil {
		return err
	}
	if s.Sort == "" {
		s.Sort = SortNewest
	}
	if !s.Sort.IsValid() {
		return ErrInvalidSortKey
	}
	return s.Price.Validate()
}

type ListingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ListingView, error)
	// SearchActive lists ACTIVE listings, filtered and sorted.
	SearchActive(ctx context.Context, search MarketplaceSearch) ([]*ListingView, error)
	ListBySeller(ctx context.Context, sellerID uuid.UUID, page PageRequest) ([]*ListingView, error)
}

type ListingViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ListingView, error)
	FindActive(ctx context.Context, search MarketplaceSearch) ([]*ListingView, error)
	FindBySeller(ctx context.Context, sellerID uuid.UUID, limit, offset int32) ([]*ListingView, error)
}

type listingQueriesImpl struct {
	repo ListingViewRepo
}

func NewListingQueries(repo ListingViewRepo) ListingQueries {
	return &listingQueriesImpl{repo: repo}
}

func (q *listingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ListingView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *listingQueriesImpl) SearchActive(ctx context.Context, search MarketplaceSearch) ([]*ListingView, error) {
	if err := search.Validate(); err != nil {
		return nil, err
	}
	return q.repo.FindActive(ctx, search)
}

func (q *listingQueriesImpl) ListBySeller(ctx context.Context, sellerID uuid.UUID, page PageRequest) ([]*ListingView, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	return q.repo.FindBySeller(ctx, sellerID, page.Limit(), page.Offset())
}
