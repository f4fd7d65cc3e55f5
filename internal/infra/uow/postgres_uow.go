package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"ev-carbon-market/internal/domain/listing"
	"ev-carbon-market/internal/domain/trade"
	"ev-carbon-market/internal/infra/db"
	"ev-carbon-market/internal/infra/readstore"
	"ev-carbon-market/internal/infra/repository"
	"ev-carbon-market/internal/pkg/errs"
	"ev-carbon-market/internal/usecase/shared"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool *pgxpool.Pool
}

func NewPostgresUoW(pool *pgxpool.Pool) shared.UnitOfWork {
	return &PostgresUoW{pool: pool}
}

// ReadCommitted prevents dirty reads while allowing concurrent writes
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

func (u *PostgresUoW) Reads() shared.CommandReads {
	return &commandReads{dbtx: u.pool}
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	const maxRetries = 3
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		tx := &pgTx{dbtx: pgxTx}

		err = fn(ctx, tx)
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !shouldRetry(err, attempt, maxRetries) {
			if attempt == maxRetries {
				slog.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	// mask the high bit so the conversion stays positive
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx db.DBTX

	// Lazy-initialized repositories
	creditRepo      shared.CreditRepository
	listingRepo     shared.ListingRepository
	transactionRepo shared.TransactionRepository
	disputeRepo     shared.DisputeRepository
	journeyRepo     shared.JourneyRepository
	inspectionRepo  shared.InspectionRepository
	stationRepo     shared.StationRepository
	walletRepo      shared.WalletRepository
}

func (t *pgTx) Credits() shared.CreditRepository {
	if t.creditRepo == nil {
		t.creditRepo = repository.NewCreditRepository(t.dbtx)
	}
	return t.creditRepo
}

func (t *pgTx) Listings() shared.ListingRepository {
	if t.listingRepo == nil {
		t.listingRepo = repository.NewListingRepository(t.dbtx)
	}
	return t.listingRepo
}

func (t *pgTx) Transactions() shared.TransactionRepository {
	if t.transactionRepo == nil {
		t.transactionRepo = repository.NewTransactionRepository(t.dbtx)
	}
	return t.transactionRepo
}

func (t *pgTx) Disputes() shared.DisputeRepository {
	if t.disputeRepo == nil {
		t.disputeRepo = repository.NewDisputeRepository(t.dbtx)
	}
	return t.disputeRepo
}

func (t *pgTx) Journeys() shared.JourneyRepository {
	if t.journeyRepo == nil {
		t.journeyRepo = repository.NewJourneyRepository(t.dbtx)
	}
	return t.journeyRepo
}

func (t *pgTx) Inspections() shared.InspectionRepository {
	if t.inspectionRepo == nil {
		t.inspectionRepo = repository.NewInspectionRepository(t.dbtx)
	}
	return t.inspectionRepo
}

func (t *pgTx) Stations() shared.StationRepository {
	if t.stationRepo == nil {
		t.stationRepo = repository.NewStationRepository(t.dbtx)
	}
	return t.stationRepo
}

func (t *pgTx) Wallets() shared.WalletRepository {
	if t.walletRepo == nil {
		t.walletRepo = repository.NewWalletRepository(t.dbtx)
	}
	return t.walletRepo
}

type commandReads struct {
	dbtx db.DBTX

	// Lazy-initialized readstores
	listingStore     *readstore.ListingReadStore
	transactionStore *readstore.TransactionReadStore
}

func (r *commandReads) ListingByID(ctx context.Context, id uuid.UUID) (*shared.ListingSnapshot, error) {
	if r.listingStore == nil {
		r.listingStore = readstore.NewListingReadStore(r.dbtx)
	}

	view, err := r.listingStore.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	kind, err := listing.NewType(view.Type)
	if err != nil {
		return nil, errs.Wrap(err, "invalid listing kind value")
	}
	status, err := listing.NewStatus(view.Status)
	if err != nil {
		return nil, errs.Wrap(err, "invalid listing status value")
	}
	return &shared.ListingSnapshot{
		ID:        view.ID,
		CreditID:  view.CreditID,
		SellerID:  view.SellerID,
		Kind:      kind,
		Price:     view.Price,
		Status:    status,
		CreatedAt: view.CreatedAt,
	}, nil
}

func (r *commandReads) TransactionByID(ctx context.Context, id uuid.UUID) (*shared.TransactionSnapshot, error) {
	if r.transactionStore == nil {
		r.transactionStore = readstore.NewTransactionReadStore(r.dbtx)
	}

	view, err := r.transactionStore.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	status, err := trade.NewTransactionStatus(view.Status)
	if err != nil {
		return nil, errs.Wrap(err, "invalid transaction status value")
	}
	return &shared.TransactionSnapshot{
		ID:        view.ID,
		CreditID:  view.CreditID,
		ListingID: view.ListingID,
		BuyerID:   view.BuyerID,
		SellerID:  view.SellerID,
		Amount:    view.Amount,
		Status:    status,
	}, nil
}

func (r *commandReads) JourneyByID(ctx context.Context, id uuid.UUID) (*shared.JourneySnapshot, error) {
	return repository.NewJourneyRepository(r.dbtx).FindByID(ctx, id)
}
