// Package state is the core API for the ledger and implements all the
// business rules and processing. It keeps every account's balance equal to
// the length of that account's chain and exposes mint and burn as the only
// mutation primitives.
package state

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/ARYANPANWAR893/payo/foundation/ledger/database"
	"github.com/ARYANPANWAR893/payo/foundation/ledger/genesis"
)

// EventHandler defines a function that is called when events occur in the
// processing of ledger operations.
type EventHandler func(v string, args ...any)

// Config represents the configuration required to start the ledger.
type Config struct {
	Genesis   genesis.Genesis
	Storage   database.Storage
	Validator database.Validator
	EvHandler EventHandler
}

// State manages the ledger database and serializes mutation per account.
type State struct {
	evHandler EventHandler
	genesis   genesis.Genesis
	db        *database.Database

	mu    sync.Mutex
	locks map[database.AccountID]*sync.Mutex
}

// New constructs the ledger state, rehydrates the database from storage, and
// creates the genesis file's seed accounts on first startup.
func New(cfg Config) (*State, error) {
	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	db, err := database.New(cfg.Storage, cfg.Validator, ev)
	if err != nil {
		return nil, err
	}

	s := State{
		evHandler: ev,
		genesis:   cfg.Genesis,
		db:        db,
		locks:     make(map[database.AccountID]*sync.Mutex),
	}

	if err := s.seedAccounts(); err != nil {
		return nil, err
	}

	return &s, nil
}

// CreateAccount registers a new account with a zero balance and a fresh
// chain.
func (s *State) CreateAccount(ctx context.Context, name string, email string) (database.Account, error) {
	account, err := s.db.CreateAccount(ctx, database.NewAccountID(), name, email)
	if err != nil {
		return database.Account{}, err
	}

	s.evHandler("state: create account: account[%s] email[%s]", account.AccountID, account.Email)

	return account, nil
}

// seedAccounts creates the genesis file's accounts with pre-minted chains so
// the balance/chain invariant holds from the first request. Accounts already
// present in storage are left alone.
func (s *State) seedAccounts() error {
	ctx := context.Background()

	for _, seed := range s.genesis.Accounts {
		accountID, err := database.ToAccountID(seed.AccountID)
		if err != nil {
			return fmt.Errorf("genesis account %q: %w", seed.AccountID, err)
		}

		if _, err := s.db.Query(accountID); err == nil {
			continue
		}

		if _, err := s.db.CreateAccount(ctx, accountID, seed.Name, seed.Email); err != nil {
			return fmt.Errorf("creating genesis account %s: %w", accountID, err)
		}

		if seed.Balance > 0 {
			if err := s.Mint(ctx, accountID, seed.Balance); err != nil {
				return fmt.Errorf("minting genesis balance for %s: %w", accountID, err)
			}
		}

		s.evHandler("state: seeded account[%s] balance[%d]", accountID, seed.Balance)
	}

	return nil
}

// lockAccounts serializes ledger mutation per account. Locks are always
// acquired in ascending account id order so multi-account operations cannot
// deadlock. The returned function releases the locks.
func (s *State) lockAccounts(accountIDs ...database.AccountID) func() {
	ids := make([]database.AccountID, 0, len(accountIDs))
	seen := make(map[database.AccountID]bool, len(accountIDs))
	for _, id := range accountIDs {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	locks := make([]*sync.Mutex, 0, len(ids))
	for _, id := range ids {
		locks = append(locks, s.accountLock(id))
	}
	for _, l := range locks {
		l.Lock()
	}

	return func() {
		for i := len(locks) - 1; i >= 0; i-- {
			locks[i].Unlock()
		}
	}
}

// accountLock returns the mutex owned by the account, creating it on first
// use.
func (s *State) accountLock(accountID database.AccountID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, exists := s.locks[accountID]
	if !exists {
		l = &sync.Mutex{}
		s.locks[accountID] = l
	}

	return l
}
