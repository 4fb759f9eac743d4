// Package memorystore implements the database Storage interface in memory.
// It backs standalone runs and the test suite, where its failure injection
// hook exercises the rollback paths.
package memorystore

import (
	"context"
	"errors"
	"sync"

	"github.com/ARYANPANWAR893/payo/foundation/ledger/database"
)

// ErrInjectedFailure is returned by Apply once the configured failure point
// is reached.
var ErrInjectedFailure = errors.New("injected storage failure")

// Store is an in-memory Storage implementation.
type Store struct {
	mu       sync.Mutex
	accounts map[database.AccountID]database.Account
	chains   map[database.AccountID][]database.Block
	trans    []database.Tx
	requests map[string]database.MoneyRequest

	applies int
	failOn  int
}

// New constructs an empty in-memory store.
func New() *Store {
	return &Store{
		accounts: make(map[database.AccountID]database.Account),
		chains:   make(map[database.AccountID][]database.Block),
		requests: make(map[string]database.MoneyRequest),
	}
}

// FailOnApply makes the n-th future call to Apply fail without mutating
// anything. n counts from 1.
func (s *Store) FailOnApply(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failOn = s.applies + n
}

// Load returns everything the store holds.
func (s *Store) Load(ctx context.Context) (database.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var snapshot database.Snapshot
	for _, account := range s.accounts {
		snapshot.Accounts = append(snapshot.Accounts, account)
	}
	for _, chain := range s.chains {
		snapshot.Blocks = append(snapshot.Blocks, chain...)
	}
	snapshot.Trans = append(snapshot.Trans, s.trans...)
	for _, request := range s.requests {
		snapshot.Requests = append(snapshot.Requests, request)
	}

	return snapshot, nil
}

// Apply commits the change to the store, all of it or none of it.
func (s *Store) Apply(ctx context.Context, change database.Change) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.applies++
	if s.failOn > 0 && s.applies >= s.failOn {
		s.failOn = 0
		return ErrInjectedFailure
	}

	for _, tr := range change.Truncate {
		chain := s.chains[tr.AccountID]
		if uint64(len(chain)) <= tr.FromIndex {
			return database.ErrInsufficientBlocks
		}
		s.chains[tr.AccountID] = chain[:tr.FromIndex]
	}
	for _, block := range change.Append {
		s.chains[block.AccountID] = append(s.chains[block.AccountID], block)
	}
	for _, account := range change.Accounts {
		s.accounts[account.AccountID] = account
	}
	s.trans = append(s.trans, change.Trans...)
	for _, request := range change.Requests {
		s.requests[request.ID] = request
	}

	return nil
}
