package state

import (
	"fmt"

	"github.com/ARYANPANWAR893/payo/foundation/ledger/database"
	"github.com/ARYANPANWAR893/payo/foundation/ledger/genesis"
)

// Genesis returns a copy of the genesis information.
func (s *State) Genesis() genesis.Genesis {
	return s.genesis
}

// QueryAccount returns a copy of the account.
func (s *State) QueryAccount(accountID database.AccountID) (database.Account, error) {
	return s.db.Query(accountID)
}

// QueryAccountByEmail returns the account registered under the email.
func (s *State) QueryAccountByEmail(email string) (database.Account, error) {
	return s.db.QueryByEmail(email)
}

// Accounts returns a copy of all accounts.
func (s *State) Accounts() []database.Account {
	return s.db.Accounts()
}

// QueryChain returns a copy of the account's chain including genesis.
func (s *State) QueryChain(accountID database.AccountID) ([]database.Block, error) {
	return s.db.QueryBlocks(accountID)
}

// QueryTransactions returns the account's transaction history.
func (s *State) QueryTransactions(accountID database.AccountID) ([]database.Tx, error) {
	if _, err := s.db.Query(accountID); err != nil {
		return nil, err
	}

	return s.db.QueryTransactions(accountID), nil
}

// QueryRequests returns every money request addressed to the payer.
func (s *State) QueryRequests(payerID database.AccountID) ([]database.MoneyRequest, error) {
	if _, err := s.db.Query(payerID); err != nil {
		return nil, err
	}

	return s.db.RequestsForPayer(payerID), nil
}

// VerifyChain validates the account's hash linkage and checks the balance
// against the chain length.
func (s *State) VerifyChain(accountID database.AccountID) error {
	account, err := s.db.Query(accountID)
	if err != nil {
		return err
	}

	if err := s.db.ValidateChain(accountID); err != nil {
		return err
	}

	if length := s.db.ChainLength(accountID); length != account.Balance {
		return fmt.Errorf("balance %d does not match chain length %d", account.Balance, length)
	}

	return nil
}
