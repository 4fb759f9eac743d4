package database

import (
	"errors"
	"fmt"
	"time"

	"github.com/ARYANPANWAR893/payo/foundation/ledger/blockhash"
)

// ErrInsufficientBlocks is returned when a tail truncation asks for more
// blocks than the chain holds above its genesis block. Reaching this error
// through the ledger engine signals balance/chain divergence.
var ErrInsufficientBlocks = errors.New("insufficient blocks in chain")

// Block represents one whole currency unit in an account's chain. Blocks are
// immutable once appended; the only chain mutations are appends at the tail
// and truncation from the tail.
type Block struct {
	AccountID AccountID `json:"account_id"`
	Index     uint64    `json:"index"`
	Payload   string    `json:"payload"`
	PrevHash  string    `json:"previous_hash"`
	Hash      string    `json:"hash"`
	TimeStamp uint64    `json:"timestamp"`
}

// NewBlock constructs the next block in an account's chain, computing its own
// hash from the canonical fields after construction.
func NewBlock(accountID AccountID, index uint64, payload string, prevHash string) Block {
	return Block{
		AccountID: accountID,
		Index:     index,
		Payload:   payload,
		PrevHash:  prevHash,
		Hash:      blockhash.Hash(index, payload, prevHash),
		TimeStamp: uint64(time.Now().UTC().UnixMilli()),
	}
}

// newGenesisBlock seeds a fresh chain. The genesis block carries index 0 and
// the sentinel previous hash, is never counted toward the balance, and is
// never removable.
func newGenesisBlock(accountID AccountID) Block {
	return NewBlock(accountID, 0, "Genesis Block", blockhash.GenesisPrevHash)
}

// ----------------------------------------------------------------------------

// Validator decides whether a block may follow prev in a chain. The strategy
// is pluggable so a stronger admission gate can be swapped in without
// touching the chain store.
type Validator interface {
	Validate(block Block, prev Block) error
}

// LinkValidator enforces index continuity and hash linkage. It is the default
// validation strategy.
type LinkValidator struct{}

// Validate checks the block extends prev with correct linkage.
func (LinkValidator) Validate(block Block, prev Block) error {
	if block.Index != prev.Index+1 {
		return fmt.Errorf("block index %d does not follow %d", block.Index, prev.Index)
	}

	if block.PrevHash != prev.Hash {
		return fmt.Errorf("block %d previous hash mismatch", block.Index)
	}

	if block.Hash != blockhash.Hash(block.Index, block.Payload, block.PrevHash) {
		return fmt.Errorf("block %d hash does not match its content", block.Index)
	}

	return nil
}
