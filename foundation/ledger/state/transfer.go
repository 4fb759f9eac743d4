package state

import (
	"context"
	"fmt"

	"github.com/ARYANPANWAR893/payo/foundation/ledger/database"
	"github.com/ARYANPANWAR893/payo/foundation/ledger/metrics"
)

// Fee returns the transfer fee for the amount at the basis-point rate,
// rounded half up to the nearest whole unit. The fee is burned: the sender
// is debited the full amount and the fee's blocks are never minted anywhere.
func Fee(amount uint64, bps uint16) uint64 {
	return (amount*uint64(bps) + 5000) / 10000
}

// Transfer moves amount from the sender to the recipient, deducting the fee
// from the credited side, and records the resulting transaction. The debit,
// credit, and transaction record form one atomic unit under the pair lock;
// a failed transfer leaves both accounts exactly as before the attempt.
func (s *State) Transfer(ctx context.Context, fromID database.AccountID, toID database.AccountID, amount uint64) (database.Tx, error) {
	if amount == 0 {
		return database.Tx{}, ErrInvalidAmount
	}
	if fromID == toID {
		return database.Tx{}, ErrSameAccount
	}

	unlock := s.lockAccounts(fromID, toID)
	defer unlock()

	if _, err := s.db.Query(toID); err != nil {
		return database.Tx{}, err
	}

	tr, sender, err := s.burnChange(fromID, amount)
	if err != nil {
		return database.Tx{}, err
	}

	fee := Fee(amount, s.genesis.FeeBps)
	credit := amount - fee

	accounts := []database.Account{sender}
	var blocks []database.Block
	if credit > 0 {
		var recipient database.Account
		blocks, recipient, err = s.mintChange(toID, credit, unitPayload)
		if err != nil {
			return database.Tx{}, err
		}
		accounts = append(accounts, recipient)
	}

	tx := database.NewTx(fromID, toID, credit, fee)

	change := database.Change{
		Accounts: accounts,
		Append:   blocks,
		Truncate: []database.Truncation{tr},
		Trans:    []database.Tx{tx},
	}
	if err := s.db.ApplyChange(ctx, change); err != nil {
		return database.Tx{}, fmt.Errorf("transfer: %w", err)
	}

	metrics.BlocksBurned.Add(float64(amount))
	metrics.BlocksMinted.Add(float64(credit))
	metrics.Transfers.Inc()
	s.evHandler("state: transfer: from[%s] to[%s] amount[%d] fee[%d]", fromID, toID, amount, fee)

	return tx, nil
}
