package state

import (
	"context"
	"fmt"

	"github.com/ARYANPANWAR893/payo/foundation/ledger/database"
	"github.com/ARYANPANWAR893/payo/foundation/ledger/metrics"
)

// unitPayload is the content every ordinary block carries. One block, one
// whole currency unit.
const unitPayload = "Added 1 USD"

// Mint appends units blocks to the account's chain and credits the balance
// by the same amount. The operation is all or nothing.
func (s *State) Mint(ctx context.Context, accountID database.AccountID, units uint64) error {
	return s.mint(ctx, accountID, units, unitPayload)
}

// Deposit mints units whose external payment capture has been confirmed. The
// capture reference is recorded in the block payloads; the ledger never
// initiates or verifies the capture itself.
func (s *State) Deposit(ctx context.Context, accountID database.AccountID, units uint64, captureRef string) error {
	payload := unitPayload
	if captureRef != "" {
		payload = fmt.Sprintf("%s [capture %s]", unitPayload, captureRef)
	}

	return s.mint(ctx, accountID, units, payload)
}

// Burn removes units blocks from the tail of the account's chain and debits
// the balance by the same amount.
func (s *State) Burn(ctx context.Context, accountID database.AccountID, units uint64) error {
	if units == 0 {
		return ErrInvalidAmount
	}

	unlock := s.lockAccounts(accountID)
	defer unlock()

	tr, account, err := s.burnChange(accountID, units)
	if err != nil {
		return err
	}

	change := database.Change{
		Accounts: []database.Account{account},
		Truncate: []database.Truncation{tr},
	}
	if err := s.db.ApplyChange(ctx, change); err != nil {
		return fmt.Errorf("burn: %w", err)
	}

	metrics.BlocksBurned.Add(float64(units))
	s.evHandler("state: burn: account[%s] units[%d] balance[%d]", accountID, units, account.Balance)

	return nil
}

// Withdraw burns units from the account.
func (s *State) Withdraw(ctx context.Context, accountID database.AccountID, units uint64) error {
	return s.Burn(ctx, accountID, units)
}

// mint runs the full mint under the account lock.
func (s *State) mint(ctx context.Context, accountID database.AccountID, units uint64, payload string) error {
	if units == 0 {
		return ErrInvalidAmount
	}

	unlock := s.lockAccounts(accountID)
	defer unlock()

	blocks, account, err := s.mintChange(accountID, units, payload)
	if err != nil {
		return err
	}

	change := database.Change{
		Accounts: []database.Account{account},
		Append:   blocks,
	}
	if err := s.db.ApplyChange(ctx, change); err != nil {
		return fmt.Errorf("mint: %w", err)
	}

	metrics.BlocksMinted.Add(float64(units))
	s.evHandler("state: mint: account[%s] units[%d] balance[%d]", accountID, units, account.Balance)

	return nil
}

// mintChange builds the blocks crediting units to the account, each linked
// to the hash of its predecessor starting from the current chain tail. The
// caller must hold the account lock.
func (s *State) mintChange(accountID database.AccountID, units uint64, payload string) ([]database.Block, database.Account, error) {
	account, err := s.db.Query(accountID)
	if err != nil {
		return nil, database.Account{}, err
	}

	prev, err := s.db.LastBlock(accountID)
	if err != nil {
		return nil, database.Account{}, err
	}

	blocks := make([]database.Block, 0, units)
	for i := uint64(0); i < units; i++ {
		block := database.NewBlock(accountID, prev.Index+1, payload, prev.Hash)
		blocks = append(blocks, block)
		prev = block
	}

	account.Balance += units

	return blocks, account, nil
}

// burnChange computes the tail truncation debiting units from the account.
// The balance check runs against the account record; the chain length check
// guards the invariant and can only trip if balance and chain diverged. The
// caller must hold the account lock.
func (s *State) burnChange(accountID database.AccountID, units uint64) (database.Truncation, database.Account, error) {
	account, err := s.db.Query(accountID)
	if err != nil {
		return database.Truncation{}, database.Account{}, err
	}

	if units > account.Balance {
		return database.Truncation{}, database.Account{}, ErrInsufficientFunds
	}

	if length := s.db.ChainLength(accountID); units > length {
		s.evHandler("state: burn: FAULT: account[%s] balance[%d] chain[%d] diverged", accountID, account.Balance, length)
		return database.Truncation{}, database.Account{}, database.ErrInsufficientBlocks
	}

	last, err := s.db.LastBlock(accountID)
	if err != nil {
		return database.Truncation{}, database.Account{}, err
	}

	account.Balance -= units

	tr := database.Truncation{
		AccountID: accountID,
		FromIndex: last.Index - units + 1,
	}

	return tr, account, nil
}
