package database

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// AccountID uniquely identifies a ledger account and owns exactly one chain.
type AccountID string

// ToAccountID converts a string to an account ID and validates the string is
// formatted correctly.
func ToAccountID(s string) (AccountID, error) {
	a := AccountID(s)
	if !a.IsAccountID() {
		return "", errors.New("invalid account id format")
	}

	return a, nil
}

// NewAccountID generates a new unique account ID.
func NewAccountID() AccountID {
	return AccountID(uuid.NewString())
}

// IsAccountID returns true if the account ID is a valid uuid string.
func (a AccountID) IsAccountID() bool {
	_, err := uuid.Parse(string(a))
	return err == nil
}

// Account represents an account in the ledger. The balance is expressed in
// whole currency units and always equals the number of non-genesis blocks in
// the account's chain.
type Account struct {
	AccountID AccountID
	Name      string
	Email     string
	Balance   uint64
}

// newAccount creates a new account with a zero balance. Balance is only ever
// changed in lockstep with chain mutation.
func newAccount(accountID AccountID, name string, email string) Account {
	return Account{
		AccountID: accountID,
		Name:      name,
		Email:     strings.ToLower(strings.TrimSpace(email)),
	}
}

// ----------------------------------------------------------------------------

// byAccount provides sorting support by the account id value.
type byAccount []Account

// Len returns the number of accounts in the list.
func (ba byAccount) Len() int {
	return len(ba)
}

// Less helps sort the list by account id in ascending order
// to keep the accounts in a consistent order.
func (ba byAccount) Less(i, j int) bool {
	return ba[i].AccountID < ba[j].AccountID
}

// Swap moves accounts in the order of the account id value.
func (ba byAccount) Swap(i, j int) {
	ba[i], ba[j] = ba[j], ba[i]
}
