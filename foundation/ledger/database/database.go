// Package database handles all lower level support for maintaining the
// account directory and the per-account ledger chains. The in-memory copy is
// authoritative for reads; every mutation is written through Storage first so
// a failed persistence attempt leaves memory untouched.
package database

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/ARYANPANWAR893/payo/foundation/ledger/blockhash"
)

// ErrAccountNotFound is returned when an account does not exist.
var ErrAccountNotFound = errors.New("account does not exist")

// Database manages the accounts and the chain owned by each account.
type Database struct {
	mu        sync.RWMutex
	storage   Storage
	validator Validator
	evHandler func(v string, args ...any)

	accounts map[AccountID]Account
	chains   map[AccountID][]Block
	trans    []Tx
	requests map[string]MoneyRequest
}

// New constructs the database and rehydrates it from storage. Every loaded
// chain is validated before the database is handed out.
func New(storage Storage, validator Validator, evHandler func(v string, args ...any)) (*Database, error) {
	if validator == nil {
		validator = LinkValidator{}
	}

	db := Database{
		storage:   storage,
		validator: validator,
		evHandler: evHandler,
		accounts:  make(map[AccountID]Account),
		chains:    make(map[AccountID][]Block),
		requests:  make(map[string]MoneyRequest),
	}

	snapshot, err := storage.Load(context.Background())
	if err != nil {
		return nil, fmt.Errorf("loading storage snapshot: %w", err)
	}

	for _, account := range snapshot.Accounts {
		db.accounts[account.AccountID] = account
	}
	for _, block := range snapshot.Blocks {
		db.chains[block.AccountID] = append(db.chains[block.AccountID], block)
	}
	db.trans = append(db.trans, snapshot.Trans...)
	for _, request := range snapshot.Requests {
		db.requests[request.ID] = request
	}

	for accountID, account := range db.accounts {
		if err := db.validateChain(accountID); err != nil {
			return nil, fmt.Errorf("account %s: %w", accountID, err)
		}
		if got := uint64(len(db.chains[accountID])) - 1; got != account.Balance {
			return nil, fmt.Errorf("account %s: balance %d does not match chain length %d", accountID, account.Balance, got)
		}

		evHandler("database: account: %s, balance: %d", accountID, account.Balance)
	}

	return &db, nil
}

// CreateAccount adds a new account with a zero balance and establishes its
// chain with a genesis block.
func (db *Database) CreateAccount(ctx context.Context, accountID AccountID, name string, email string) (Account, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, exists := db.accounts[accountID]; exists {
		return Account{}, fmt.Errorf("account %s already exists", accountID)
	}

	account := newAccount(accountID, name, email)
	for _, existing := range db.accounts {
		if existing.Email == account.Email {
			return Account{}, fmt.Errorf("email %s already registered", account.Email)
		}
	}

	genesis := newGenesisBlock(accountID)
	change := Change{
		Accounts: []Account{account},
		Append:   []Block{genesis},
	}

	if err := db.storage.Apply(ctx, change); err != nil {
		return Account{}, fmt.Errorf("persisting account: %w", err)
	}

	db.accounts[accountID] = account
	db.chains[accountID] = []Block{genesis}

	return account, nil
}

// Query returns a copy of the account.
func (db *Database) Query(accountID AccountID) (Account, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	account, exists := db.accounts[accountID]
	if !exists {
		return Account{}, ErrAccountNotFound
	}

	return account, nil
}

// QueryByEmail returns the account registered under the email address.
func (db *Database) QueryByEmail(email string) (Account, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	email = strings.ToLower(strings.TrimSpace(email))
	for _, account := range db.accounts {
		if account.Email == email {
			return account, nil
		}
	}

	return Account{}, ErrAccountNotFound
}

// Accounts returns a copy of all accounts in a consistent order.
func (db *Database) Accounts() []Account {
	db.mu.RLock()
	defer db.mu.RUnlock()

	accounts := make([]Account, 0, len(db.accounts))
	for _, account := range db.accounts {
		accounts = append(accounts, account)
	}
	sort.Sort(byAccount(accounts))

	return accounts
}

// LastBlock returns the highest-index block of the account's chain.
func (db *Database) LastBlock(accountID AccountID) (Block, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	chain, exists := db.chains[accountID]
	if !exists || len(chain) == 0 {
		return Block{}, ErrAccountNotFound
	}

	return chain[len(chain)-1], nil
}

// ChainLength returns the number of blocks in the account's chain excluding
// the genesis block. Under the ledger invariant this equals the balance.
func (db *Database) ChainLength(accountID AccountID) uint64 {
	db.mu.RLock()
	defer db.mu.RUnlock()

	chain := db.chains[accountID]
	if len(chain) == 0 {
		return 0
	}

	return uint64(len(chain)) - 1
}

// QueryBlocks returns a copy of the account's chain including genesis.
func (db *Database) QueryBlocks(accountID AccountID) ([]Block, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	chain, exists := db.chains[accountID]
	if !exists {
		return nil, ErrAccountNotFound
	}

	blocks := make([]Block, len(chain))
	copy(blocks, chain)

	return blocks, nil
}

// QueryTransactions returns every transaction the account sent or received,
// most recent last.
func (db *Database) QueryTransactions(accountID AccountID) []Tx {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var trans []Tx
	for _, tx := range db.trans {
		if tx.FromID == accountID || tx.ToID == accountID {
			trans = append(trans, tx)
		}
	}

	return trans
}

// QueryRequest returns a copy of the money request.
func (db *Database) QueryRequest(requestID string) (MoneyRequest, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	request, exists := db.requests[requestID]
	if !exists {
		return MoneyRequest{}, ErrRequestNotFound
	}

	return request, nil
}

// RequestsForPayer returns every money request addressed to the payer.
func (db *Database) RequestsForPayer(payerID AccountID) []MoneyRequest {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var requests []MoneyRequest
	for _, request := range db.requests {
		if request.PayerID == payerID {
			requests = append(requests, request)
		}
	}
	sort.Slice(requests, func(i, j int) bool { return requests[i].TimeStamp < requests[j].TimeStamp })

	return requests
}

// ApplyChange validates the change against the current chains, persists it
// through storage as one atomic unit, and only then commits it to memory. On
// any failure the database is left exactly as before the attempt.
func (db *Database) ApplyChange(ctx context.Context, change Change) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	// Tails after the truncations in this change, so appends validate against
	// the chain state the change will produce.
	tails := make(map[AccountID]Block)

	for _, tr := range change.Truncate {
		chain, exists := db.chains[tr.AccountID]
		if !exists || len(chain) == 0 {
			return ErrAccountNotFound
		}

		lastIndex := chain[len(chain)-1].Index
		if tr.FromIndex < 1 || tr.FromIndex > lastIndex {
			return ErrInsufficientBlocks
		}

		tails[tr.AccountID] = chain[tr.FromIndex-1]
	}

	for _, block := range change.Append {
		prev, staged := tails[block.AccountID]
		if !staged {
			chain := db.chains[block.AccountID]
			if len(chain) == 0 {
				// First block of a fresh chain must be a well-formed genesis.
				if block.Index != 0 || block.PrevHash != blockhash.GenesisPrevHash {
					return fmt.Errorf("account %s: chain must start with a genesis block", block.AccountID)
				}
				if block.Hash != blockhash.Hash(block.Index, block.Payload, block.PrevHash) {
					return fmt.Errorf("account %s: genesis hash does not match its content", block.AccountID)
				}
				tails[block.AccountID] = block
				continue
			}
			prev = chain[len(chain)-1]
		}

		if err := db.validator.Validate(block, prev); err != nil {
			return fmt.Errorf("account %s: %w", block.AccountID, err)
		}
		tails[block.AccountID] = block
	}

	if err := db.storage.Apply(ctx, change); err != nil {
		return fmt.Errorf("persisting change: %w", err)
	}

	for _, tr := range change.Truncate {
		db.chains[tr.AccountID] = db.chains[tr.AccountID][:tr.FromIndex]
	}
	for _, block := range change.Append {
		db.chains[block.AccountID] = append(db.chains[block.AccountID], block)
	}
	for _, account := range change.Accounts {
		db.accounts[account.AccountID] = account
	}
	db.trans = append(db.trans, change.Trans...)
	for _, request := range change.Requests {
		db.requests[request.ID] = request
	}

	return nil
}

// ValidateChain walks the account's chain with the configured validation
// strategy and reports the first broken link.
func (db *Database) ValidateChain(accountID AccountID) error {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.validateChain(accountID)
}

// validateChain expects the caller to hold at least a read lock.
func (db *Database) validateChain(accountID AccountID) error {
	chain, exists := db.chains[accountID]
	if !exists || len(chain) == 0 {
		return ErrAccountNotFound
	}

	genesis := chain[0]
	if genesis.Index != 0 || genesis.PrevHash != blockhash.GenesisPrevHash {
		return errors.New("chain does not start with a genesis block")
	}
	if genesis.Hash != blockhash.Hash(genesis.Index, genesis.Payload, genesis.PrevHash) {
		return errors.New("genesis hash does not match its content")
	}

	for i := 1; i < len(chain); i++ {
		if err := db.validator.Validate(chain[i], chain[i-1]); err != nil {
			return err
		}
	}

	return nil
}
