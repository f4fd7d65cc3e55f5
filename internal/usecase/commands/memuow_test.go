//go:build unit

package commands_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ev-carbon-market/internal/domain/credit"
	"ev-carbon-market/internal/domain/journey"
	"ev-carbon-market/internal/domain/listing"
	"ev-carbon-market/internal/domain/trade"
	"ev-carbon-market/internal/infra"
	"ev-carbon-market/internal/usecase/shared"
)

// memState backs an in-memory unit of work. Rollback is not modelled, so
// failure cases only assert on state the command checked before writing.
type memState struct {
	credits      map[uuid.UUID]*credit.Credit
	listings     map[uuid.UUID]*listing.Listing
	transactions map[uuid.UUID]*trade.Transaction
	disputes     map[uuid.UUID]*trade.Dispute
	journeys     map[uuid.UUID]*shared.JourneySnapshot
	appointments map[uuid.UUID]*journey.Appointment
	stations     map[uuid.UUID]*shared.StationSnapshot
	wallets      map[uuid.UUID]decimal.Decimal
}

func newMemState() *memState {
	return &memState{
		credits:      map[uuid.UUID]*credit.Credit{},
		listings:     map[uuid.UUID]*listing.Listing{},
		transactions: map[uuid.UUID]*trade.Transaction{},
		disputes:     map[uuid.UUID]*trade.Dispute{},
		journeys:     map[uuid.UUID]*shared.JourneySnapshot{},
		appointments: map[uuid.UUID]*journey.Appointment{},
		stations:     map[uuid.UUID]*shared.StationSnapshot{},
		wallets:      map[uuid.UUID]decimal.Decimal{},
	}
}

type memUoW struct {
	st *memState
	// beforeWithin, when set, runs once at the start of the next write
	// transaction. Used to simulate a concurrent writer slipping in
	// between the snapshot read and the reservation.
	beforeWithin func(st *memState)
}

func (u *memUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if u.beforeWithin != nil {
		hook := u.beforeWithin
		u.beforeWithin = nil
		hook(u.st)
	}
	return fn(ctx, &memTx{st: u.st})
}

func (u *memUoW) Reads() shared.CommandReads { return &memReads{st: u.st} }

type memTx struct {
	st *memState
}

func (t *memTx) Credits() shared.CreditRepository           { return &memCredits{st: t.st} }
func (t *memTx) Listings() shared.ListingRepository         { return &memListings{st: t.st} }
func (t *memTx) Transactions() shared.TransactionRepository { return &memTransactions{st: t.st} }
func (t *memTx) Disputes() shared.DisputeRepository         { return &memDisputes{st: t.st} }
func (t *memTx) Journeys() shared.JourneyRepository         { return &memJourneys{st: t.st} }
func (t *memTx) Inspections() shared.InspectionRepository   { return &memInspections{st: t.st} }
func (t *memTx) Stations() shared.StationRepository         { return &memStations{st: t.st} }
func (t *memTx) Wallets() shared.WalletRepository           { return &memWallets{st: t.st} }

type memReads struct {
	st *memState
}

func (r *memReads) ListingByID(_ context.Context, id uuid.UUID) (*shared.ListingSnapshot, error) {
	l, ok := r.st.listings[id]
	if !ok {
		return nil, infra.NewRepoErr("listing not found", infra.KindNotFound)
	}
	return &shared.ListingSnapshot{
		ID:        l.ID(),
		CreditID:  l.CreditID(),
		SellerID:  l.SellerID(),
		Kind:      l.Kind(),
		Price:     l.Price().Decimal(),
		Status:    l.Status(),
		CreatedAt: l.CreatedAt(),
	}, nil
}

func (r *memReads) TransactionByID(_ context.Context, id uuid.UUID) (*shared.TransactionSnapshot, error) {
	txn, ok := r.st.transactions[id]
	if !ok {
		return nil, infra.NewRepoErr("transaction not found", infra.KindNotFound)
	}
	return &shared.TransactionSnapshot{
		ID:        txn.ID(),
		CreditID:  txn.CreditID(),
		ListingID: txn.ListingID(),
		BuyerID:   txn.BuyerID(),
		SellerID:  txn.SellerID(),
		Amount:    txn.Amount(),
		Status:    txn.Status(),
	}, nil
}

func (r *memReads) JourneyByID(_ context.Context, id uuid.UUID) (*shared.JourneySnapshot, error) {
	jr, ok := r.st.journeys[id]
	if !ok {
		return nil, infra.NewRepoErr("journey not found", infra.KindNotFound)
	}
	snapshot := *jr
	return &snapshot, nil
}

type memCredits struct {
	st *memState
}

func (r *memCredits) Create(_ context.Context, c *credit.Credit) error {
	r.st.credits[c.ID()] = c
	return nil
}

func (r *memCredits) FindByID(_ context.Context, id uuid.UUID) (*credit.Credit, error) {
	c, ok := r.st.credits[id]
	if !ok {
		return nil, infra.NewRepoErr("credit not found", infra.KindNotFound)
	}
	return c, nil
}

func (r *memCredits) FindByJourneyID(_ context.Context, journeyID uuid.UUID) (*credit.Credit, error) {
	for _, c := range r.st.credits {
		if c.JourneyID() == journeyID {
			return c, nil
		}
	}
	return nil, infra.NewRepoErr("credit not found", infra.KindNotFound)
}

func (r *memCredits) Save(_ context.Context, c *credit.Credit) error {
	r.st.credits[c.ID()] = c
	return nil
}

type memListings struct {
	st *memState
}

func (r *memListings) Create(_ context.Context, l *listing.Listing) error {
	r.st.listings[l.ID()] = l
	return nil
}

func (r *memListings) FindByID(_ context.Context, id uuid.UUID) (*listing.Listing, error) {
	l, ok := r.st.listings[id]
	if !ok {
		return nil, infra.NewRepoErr("listing not found", infra.KindNotFound)
	}
	return l, nil
}

func (r *memListings) HasOpenForCredit(_ context.Context, creditID uuid.UUID) (bool, error) {
	for _, l := range r.st.listings {
		if l.CreditID() != creditID {
			continue
		}
		if l.Status() == listing.StatusActive || l.Status() == listing.StatusPendingTransaction {
			return true, nil
		}
	}
	return false, nil
}

func (r *memListings) TransitionStatus(_ context.Context, id uuid.UUID, from, to listing.Status) error {
	l, ok := r.st.listings[id]
	if !ok {
		return infra.NewRepoErr("listing not found", infra.KindNotFound)
	}
	if l.Status() != from {
		return infra.NewRepoErr("listing status moved concurrently", infra.KindConflict)
	}
	r.st.listings[id] = listing.Reconstruct(
		l.ID(), l.CreditID(), l.SellerID(), l.Kind(), l.Price(), to, l.CreatedAt(), l.UpdatedAt(),
	)
	return nil
}

func (r *memListings) UpdatePrice(_ context.Context, id uuid.UUID, price listing.Price) error {
	l, ok := r.st.listings[id]
	if !ok {
		return infra.NewRepoErr("listing not found", infra.KindNotFound)
	}
	if l.Status() != listing.StatusActive {
		return infra.NewRepoErr("listing is not active", infra.KindConflict)
	}
	r.st.listings[id] = listing.Reconstruct(
		l.ID(), l.CreditID(), l.SellerID(), l.Kind(), price, l.Status(), l.CreatedAt(), l.UpdatedAt(),
	)
	return nil
}

type memTransactions struct {
	st *memState
}

func (r *memTransactions) Create(_ context.Context, txn *trade.Transaction) error {
	r.st.transactions[txn.ID()] = txn
	return nil
}

func (r *memTransactions) FindByID(_ context.Context, id uuid.UUID) (*trade.Transaction, error) {
	txn, ok := r.st.transactions[id]
	if !ok {
		return nil, infra.NewRepoErr("transaction not found", infra.KindNotFound)
	}
	return txn, nil
}

func (r *memTransactions) Save(_ context.Context, txn *trade.Transaction) error {
	r.st.transactions[txn.ID()] = txn
	return nil
}

type memDisputes struct {
	st *memState
}

func (r *memDisputes) Create(_ context.Context, d *trade.Dispute) error {
	r.st.disputes[d.ID()] = d
	return nil
}

func (r *memDisputes) FindByID(_ context.Context, id uuid.UUID) (*trade.Dispute, error) {
	d, ok := r.st.disputes[id]
	if !ok {
		return nil, infra.NewRepoErr("dispute not found", infra.KindNotFound)
	}
	return d, nil
}

func (r *memDisputes) HasOpenForTransaction(_ context.Context, transactionID uuid.UUID) (bool, error) {
	for _, d := range r.st.disputes {
		if d.TransactionID() == transactionID && d.Status() == trade.DisputeOpen {
			return true, nil
		}
	}
	return false, nil
}

func (r *memDisputes) Save(_ context.Context, d *trade.Dispute) error {
	r.st.disputes[d.ID()] = d
	return nil
}

type memJourneys struct {
	st *memState
}

func (r *memJourneys) FindByID(_ context.Context, id uuid.UUID) (*shared.JourneySnapshot, error) {
	jr, ok := r.st.journeys[id]
	if !ok {
		return nil, infra.NewRepoErr("journey not found", infra.KindNotFound)
	}
	snapshot := *jr
	return &snapshot, nil
}

func (r *memJourneys) TransitionVerificationStatus(_ context.Context, id uuid.UUID, from, to journey.VerificationStatus) error {
	jr, ok := r.st.journeys[id]
	if !ok {
		return infra.NewRepoErr("journey not found", infra.KindNotFound)
	}
	if jr.VerificationStatus != from {
		return infra.NewRepoErr("journey status moved concurrently", infra.KindConflict)
	}
	jr.VerificationStatus = to
	return nil
}

type memInspections struct {
	st *memState
}

func (r *memInspections) Create(_ context.Context, a *journey.Appointment) error {
	r.st.appointments[a.ID()] = a
	return nil
}

func (r *memInspections) FindByID(_ context.Context, id uuid.UUID) (*journey.Appointment, error) {
	a, ok := r.st.appointments[id]
	if !ok {
		return nil, infra.NewRepoErr("appointment not found", infra.KindNotFound)
	}
	return a, nil
}

func (r *memInspections) FindByJourneyID(_ context.Context, journeyID uuid.UUID) (*journey.Appointment, error) {
	for _, a := range r.st.appointments {
		if a.JourneyID() == journeyID {
			return a, nil
		}
	}
	return nil, infra.NewRepoErr("appointment not found", infra.KindNotFound)
}

func (r *memInspections) Save(_ context.Context, a *journey.Appointment) error {
	r.st.appointments[a.ID()] = a
	return nil
}

type memStations struct {
	st *memState
}

func (r *memStations) FindByID(_ context.Context, id uuid.UUID) (*shared.StationSnapshot, error) {
	s, ok := r.st.stations[id]
	if !ok {
		return nil, infra.NewRepoErr("station not found", infra.KindNotFound)
	}
	return s, nil
}

type memWallets struct {
	st *memState
}

func (r *memWallets) Credit(_ context.Context, userID uuid.UUID, amount decimal.Decimal) error {
	r.st.wallets[userID] = r.st.wallets[userID].Add(amount)
	return nil
}

func (r *memWallets) Debit(_ context.Context, userID uuid.UUID, amount decimal.Decimal) error {
	balance := r.st.wallets[userID].Sub(amount)
	if balance.IsNegative() {
		return infra.NewRepoErr("insufficient wallet balance", infra.KindConflict)
	}
	r.st.wallets[userID] = balance
	return nil
}

type scriptedGateway struct {
	err   error
	calls []shared.ChargeRequest
}

func (g *scriptedGateway) Charge(_ context.Context, req shared.ChargeRequest) (*shared.ChargeResult, error) {
	g.calls = append(g.calls, req)
	if g.err != nil {
		return nil, g.err
	}
	return &shared.ChargeResult{ProviderReference: "sim-" + req.Reference.String()}, nil
}

type captureAudit struct {
	events []string
}

func (a *captureAudit) Record(_ context.Context, event string, _, _ uuid.UUID, _ map[string]any) {
	a.events = append(a.events, event)
}

type capturedNote struct {
	userID uuid.UUID
	title  string
}

type captureNotifier struct {
	notes []capturedNote
}

func (n *captureNotifier) Notify(_ context.Context, userID uuid.UUID, title, _ string, _ uuid.UUID) {
	n.notes = append(n.notes, capturedNote{userID: userID, title: title})
}

func mustPrice(s string) listing.Price {
	p, err := listing.ParsePrice(s)
	if err != nil {
		panic(err)
	}
	return p
}

// seedListedCredit stores a VERIFIED-then-LISTED credit with an ACTIVE
// fixed-price listing for it, the state a purchase starts from.
func seedListedCredit(st *memState, sellerID uuid.UUID, price string, now time.Time) (*credit.Credit, *listing.Listing) {
	verifierID := uuid.New()
	verifiedAt := now.Add(-2 * time.Hour)
	listedAt := now.Add(-time.Hour)
	co2 := decimal.RequireFromString("25")
	cr := credit.Reconstruct(
		uuid.New(), sellerID, uuid.New(),
		co2, credit.CreditAmount(co2, credit.StatusListed),
		credit.StatusListed,
		&verifierID, &verifiedAt, &listedAt,
		now.Add(-3*time.Hour), listedAt,
	)
	st.credits[cr.ID()] = cr
	l := listing.NewFixed(cr.ID(), sellerID, mustPrice(price), now.Add(-time.Hour))
	st.listings[l.ID()] = l
	return cr, l
}
