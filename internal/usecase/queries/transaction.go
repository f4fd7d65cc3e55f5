package queries

import (
	"context"

	"ev-carbon-market/internal/domain/user"
	"ev-carbon-market/internal/infra"
	"ev-carbon-market/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrTransactionNotFound   = errs.New("transaction not found")
	ErrTransactionForbidden  = errs.New("transaction not visible to requester")
)

type TransactionQueries interface {
	// GetByID restricts access to the buyer, the seller, and auditors
	// (CVA/admin).
	GetByID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, id uuid.UUID) (*TransactionView, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page PageRequest) ([]*TransactionView, error)
}

type TransactionViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*TransactionView, error)
	FindByParticipant(ctx context.Context, userID uuid.UUID, limit, offset int32) ([]*TransactionView, error)
}

type transactionQueriesImpl struct {
	repo TransactionViewRepo
}

func NewTransactionQueries(repo TransactionViewRepo) TransactionQueries {
	return &transactionQueriesImpl{repo: repo}
}

func (q *transactionQueriesImpl) GetByID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, id uuid.UUID) (*TransactionView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}

	if view.BuyerID != actorID && view.SellerID != actorID &&
		!user.CanPerform(actorRole, user.ActionViewAnyTransaction) {
		return nil, ErrTransactionForbidden
	}
	return view, nil
}

func (q *transactionQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID, page PageRequest) ([]*TransactionView, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	return q.repo.FindByParticipant(ctx, userID, page.Limit(), page.Offset())
}
