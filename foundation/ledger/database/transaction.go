package database

import (
	"time"

	"github.com/google/uuid"
)

// Tx is the immutable record of a completed transfer or accepted money
// request. Amount carries the credited value with the fee already deducted.
type Tx struct {
	ID        string    `json:"id"`
	FromID    AccountID `json:"from_id"`
	ToID      AccountID `json:"to_id"`
	Amount    uint64    `json:"amount"`
	Fee       uint64    `json:"fee"`
	TimeStamp uint64    `json:"timestamp"`
}

// NewTx creates a new transaction record.
func NewTx(fromID AccountID, toID AccountID, amount uint64, fee uint64) Tx {
	return Tx{
		ID:        uuid.NewString(),
		FromID:    fromID,
		ToID:      toID,
		Amount:    amount,
		Fee:       fee,
		TimeStamp: uint64(time.Now().UTC().UnixMilli()),
	}
}
