package database

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrRequestNotFound is returned when a money request does not exist.
var ErrRequestNotFound = errors.New("money request does not exist")

// RequestStatus represents the lifecycle state of a money request.
type RequestStatus string

// The set of money request states. Pending is the only non-terminal state.
const (
	StatusPending  RequestStatus = "Pending"
	StatusAccepted RequestStatus = "Accepted"
	StatusRejected RequestStatus = "Rejected"
)

// MoneyRequest is an ask from a requester for the designated payer to send a
// specified amount. It is created Pending and transitions exactly once to
// Accepted or Rejected.
type MoneyRequest struct {
	ID          string        `json:"id"`
	RequesterID AccountID     `json:"requester_id"`
	PayerID     AccountID     `json:"payer_id"`
	Amount      uint64        `json:"amount"`
	Status      RequestStatus `json:"status"`
	TimeStamp   uint64        `json:"timestamp"`
}

// NewMoneyRequest creates a new pending money request.
func NewMoneyRequest(requesterID AccountID, payerID AccountID, amount uint64) MoneyRequest {
	return MoneyRequest{
		ID:          uuid.NewString(),
		RequesterID: requesterID,
		PayerID:     payerID,
		Amount:      amount,
		Status:      StatusPending,
		TimeStamp:   uint64(time.Now().UTC().UnixMilli()),
	}
}

// Terminal returns true once the request has been accepted or rejected.
func (mr MoneyRequest) Terminal() bool {
	return mr.Status != StatusPending
}
