package queries

import (
	"context"

	"ev-carbon-market/internal/domain/user"
	"ev-carbon-market/internal/infra"
	"ev-carbon-market/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrDisputeNotFound  = errs.New("dispute not found")
	ErrDisputeForbidden = errs.New("dispute not visible to requester")
)

type DisputeQueries interface {
	GetByID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, id uuid.UUID) (*DisputeView, error)
	ListByTransaction(ctx context.Context, transactionID uuid.UUID) ([]*DisputeView, error)
}

type DisputeViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*DisputeView, error)
	FindByTransaction(ctx context.Context, transactionID uuid.UUID) ([]*DisputeView, error)
}

type disputeQueriesImpl struct {
	repo    DisputeViewRepo
	txnRepo TransactionViewRepo
}

func NewDisputeQueries(repo DisputeViewRepo, txnRepo TransactionViewRepo) DisputeQueries {
	return &disputeQueriesImpl{repo: repo, txnRepo: txnRepo}
}

func (q *disputeQueriesImpl) GetByID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, id uuid.UUID) (*DisputeView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrDisputeNotFound
		}
		return nil, err
	}

	if user.CanPerform(actorRole, user.ActionAdministerDispute) {
		return view, nil
	}

	txn, err := q.txnRepo.FindByID(ctx, view.TransactionID)
	if err != nil {
		return nil, err
	}
	if txn.BuyerID != actorID && txn.SellerID != actorID {
		return nil, ErrDisputeForbidden
	}
	return view, nil
}

func (q *disputeQueriesImpl) ListByTransaction(ctx context.Context, transactionID uuid.UUID) ([]*DisputeView, error) {
	return q.repo.FindByTransaction(ctx, transactionID)
}
