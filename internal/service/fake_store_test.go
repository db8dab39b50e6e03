package service_test

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/Behyna/paygate/internal/account"
	"github.com/Behyna/paygate/internal/model"
	"github.com/Behyna/paygate/internal/repository"
)

// fakeStore is an in-memory transaction store with the same conditional-update contract as the gorm repository.
// WithTx serializes transactions and restores the snapshot when fn fails.
type fakeStore struct {
	txMu   sync.Mutex
	mu     sync.Mutex
	nextID int64
	rows   map[string]model.Transaction
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: make(map[string]model.Transaction)}
}

func (s *fakeStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := make(map[string]model.Transaction, len(s.rows))
	for k, v := range s.rows {
		snapshot[k] = v
	}
	nextID := s.nextID
	s.mu.Unlock()

	if err := fn(ctx); err != nil {
		s.mu.Lock()
		s.rows = snapshot
		s.nextID = nextID
		s.mu.Unlock()
		return err
	}

	return nil
}

func (s *fakeStore) Create(_ context.Context, tx *model.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.rows[tx.ExternalID]; exists {
		return repository.ErrTransactionExisted
	}

	s.nextID++
	tx.ID = s.nextID
	s.rows[tx.ExternalID] = *tx
	return nil
}

func (s *fakeStore) GetByExternalID(_ context.Context, externalID string) (*model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, ok := s.rows[externalID]
	if !ok {
		return nil, repository.ErrTransactionNotFound
	}
	return &tx, nil
}

func (s *fakeStore) GetPendingByOrderID(_ context.Context, orderID string) (*model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, tx := range s.rows {
		if tx.OrderID == orderID && tx.State == model.TransactionStatePending {
			return &tx, nil
		}
	}
	return nil, repository.ErrTransactionNotFound
}

func (s *fakeStore) UpdateState(_ context.Context, tx *model.Transaction, expected model.TransactionState) error {
	if !expected.CanTransitionTo(tx.State) {
		return repository.ErrIllegalTransition
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.rows[tx.ExternalID]
	if !ok || stored.State != expected {
		return repository.ErrNoRowsAffected
	}

	stored.State = tx.State
	stored.PaidAt = tx.PaidAt
	stored.CancelledAt = tx.CancelledAt
	stored.Reason = tx.Reason
	s.rows[tx.ExternalID] = stored
	return nil
}

func (s *fakeStore) ListPaidBetween(_ context.Context, from, to time.Time) ([]model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var txs []model.Transaction
	for _, tx := range s.rows {
		if tx.PaidAt != nil && !tx.CreatedAt.Before(from) && !tx.CreatedAt.After(to) {
			txs = append(txs, tx)
		}
	}

	sort.Slice(txs, func(i, j int) bool { return txs[i].CreatedAt.Before(txs[j].CreatedAt) })
	return txs, nil
}

func (s *fakeStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

func (s *fakeStore) row(externalID string) model.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rows[externalID]
}

// fakeAccounts resolves numeric order ids present in payable and counts credits per user.
type fakeAccounts struct {
	mu        sync.Mutex
	price     int64
	payable   map[int64]bool
	credits   map[int64]int
	creditErr error
}

func newFakeAccounts(price int64, users ...int64) *fakeAccounts {
	a := &fakeAccounts{price: price, payable: make(map[int64]bool), credits: make(map[int64]int)}
	for _, id := range users {
		a.payable[id] = true
	}
	return a
}

func (a *fakeAccounts) Resolve(_ context.Context, orderID string) (account.Payer, error) {
	id, err := strconv.ParseInt(orderID, 10, 64)
	if err != nil {
		return account.Payer{}, account.ErrAccountNotFound
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	payable, ok := a.payable[id]
	if !ok {
		return account.Payer{}, account.ErrAccountNotFound
	}
	if !payable {
		return account.Payer{}, account.ErrAccountNotPayable
	}
	return account.Payer{UserID: id, Amount: a.price}, nil
}

func (a *fakeAccounts) Credit(_ context.Context, userID int64) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.creditErr != nil {
		return a.creditErr
	}
	a.credits[userID]++
	return nil
}

func (a *fakeAccounts) creditCount(userID int64) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.credits[userID]
}
