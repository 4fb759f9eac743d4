package state

import (
	"context"
	"fmt"

	"github.com/ARYANPANWAR893/payo/foundation/ledger/database"
	"github.com/ARYANPANWAR893/payo/foundation/ledger/metrics"
)

// RequestMoney creates a pending money request from the requester against
// the payer registered under the email address. No balance is affected until
// the payer resolves the request.
func (s *State) RequestMoney(ctx context.Context, requesterID database.AccountID, payerEmail string, amount uint64) (database.MoneyRequest, error) {
	if amount == 0 {
		return database.MoneyRequest{}, ErrInvalidAmount
	}

	if _, err := s.db.Query(requesterID); err != nil {
		return database.MoneyRequest{}, err
	}

	payer, err := s.db.QueryByEmail(payerEmail)
	if err != nil {
		return database.MoneyRequest{}, err
	}
	if payer.AccountID == requesterID {
		return database.MoneyRequest{}, ErrSameAccount
	}

	request := database.NewMoneyRequest(requesterID, payer.AccountID, amount)

	change := database.Change{Requests: []database.MoneyRequest{request}}
	if err := s.db.ApplyChange(ctx, change); err != nil {
		return database.MoneyRequest{}, fmt.Errorf("request money: %w", err)
	}

	s.evHandler("state: request money: requester[%s] payer[%s] amount[%d]", requesterID, payer.AccountID, amount)

	return request, nil
}

// AcceptRequest settles a pending money request. Only the designated payer
// may accept. The debit, credit, transaction record, and status transition
// form one atomic unit; when the payer's funds are insufficient the request
// stays pending and can be retried or rejected.
func (s *State) AcceptRequest(ctx context.Context, requestID string, actingID database.AccountID) (database.Tx, error) {
	request, err := s.db.QueryRequest(requestID)
	if err != nil {
		return database.Tx{}, err
	}
	if request.PayerID != actingID {
		return database.Tx{}, ErrUnauthorized
	}

	unlock := s.lockAccounts(request.PayerID, request.RequesterID)
	defer unlock()

	// Re-read under the account locks; a concurrent accept or reject can
	// have resolved the request while we waited.
	request, err = s.db.QueryRequest(requestID)
	if err != nil {
		return database.Tx{}, err
	}
	if request.Terminal() {
		return database.Tx{}, ErrInvalidRequestState
	}

	tr, payer, err := s.burnChange(request.PayerID, request.Amount)
	if err != nil {
		return database.Tx{}, err
	}

	fee := Fee(request.Amount, s.genesis.FeeBps)
	credit := request.Amount - fee

	accounts := []database.Account{payer}
	var blocks []database.Block
	if credit > 0 {
		var requester database.Account
		blocks, requester, err = s.mintChange(request.RequesterID, credit, unitPayload)
		if err != nil {
			return database.Tx{}, err
		}
		accounts = append(accounts, requester)
	}

	tx := database.NewTx(request.PayerID, request.RequesterID, credit, fee)
	request.Status = database.StatusAccepted

	change := database.Change{
		Accounts: accounts,
		Append:   blocks,
		Truncate: []database.Truncation{tr},
		Trans:    []database.Tx{tx},
		Requests: []database.MoneyRequest{request},
	}
	if err := s.db.ApplyChange(ctx, change); err != nil {
		return database.Tx{}, fmt.Errorf("accept request: %w", err)
	}

	metrics.BlocksBurned.Add(float64(request.Amount))
	metrics.BlocksMinted.Add(float64(credit))
	metrics.Transfers.Inc()
	metrics.RequestsResolved.WithLabelValues(string(database.StatusAccepted)).Inc()
	s.evHandler("state: accept request: request[%s] payer[%s] requester[%s] amount[%d] fee[%d]",
		request.ID, request.PayerID, request.RequesterID, request.Amount, fee)

	return tx, nil
}

// RejectRequest declines a pending money request. Only the designated payer
// may reject. No balance is affected.
func (s *State) RejectRequest(ctx context.Context, requestID string, actingID database.AccountID) error {
	request, err := s.db.QueryRequest(requestID)
	if err != nil {
		return err
	}
	if request.PayerID != actingID {
		return ErrUnauthorized
	}

	unlock := s.lockAccounts(request.PayerID)
	defer unlock()

	request, err = s.db.QueryRequest(requestID)
	if err != nil {
		return err
	}
	if request.Terminal() {
		return ErrInvalidRequestState
	}

	request.Status = database.StatusRejected

	change := database.Change{Requests: []database.MoneyRequest{request}}
	if err := s.db.ApplyChange(ctx, change); err != nil {
		return fmt.Errorf("reject request: %w", err)
	}

	metrics.RequestsResolved.WithLabelValues(string(database.StatusRejected)).Inc()
	s.evHandler("state: reject request: request[%s] payer[%s]", request.ID, request.PayerID)

	return nil
}
