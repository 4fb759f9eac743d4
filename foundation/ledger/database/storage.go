package database

import "context"

// Truncation removes every block at or above FromIndex from an account's
// chain. FromIndex must never reach the genesis block at index 0.
type Truncation struct {
	AccountID AccountID
	FromIndex uint64
}

// Change is one atomic unit of ledger mutation: balance updates, chain
// appends and truncations, and the transaction and request records produced
// alongside them. A change is applied in full or not at all.
type Change struct {
	Accounts []Account
	Append   []Block
	Truncate []Truncation
	Trans    []Tx
	Requests []MoneyRequest
}

// Snapshot is the complete persisted ledger state, used to rehydrate the
// in-memory database at startup. Blocks are ordered by account and index.
type Snapshot struct {
	Accounts []Account
	Blocks   []Block
	Trans    []Tx
	Requests []MoneyRequest
}

// Storage represents the durable persistence behind the database. Apply must
// be atomic: either the whole change is durable or none of it is.
type Storage interface {
	Load(ctx context.Context) (Snapshot, error)
	Apply(ctx context.Context, change Change) error
}
