// Package public maintains the group of handlers for public access to the
// ledger.
package public

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	v1 "github.com/ARYANPANWAR893/payo/business/web/v1"
	"github.com/ARYANPANWAR893/payo/foundation/ledger/database"
	"github.com/ARYANPANWAR893/payo/foundation/ledger/state"
	"github.com/ARYANPANWAR893/payo/foundation/web"
)

// Handlers manages the set of ledger endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
}

// CreateAccount registers a new account with a fresh chain.
func (h Handlers) CreateAccount(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var app appNewAccount
	if err := web.Decode(r, &app); err != nil {
		return err
	}

	account, err := h.State.CreateAccount(ctx, app.Name, app.Email)
	if err != nil {
		return v1.NewRequestError(err, http.StatusConflict)
	}

	return web.Respond(ctx, w, toAppAccount(account), http.StatusCreated)
}

// Accounts returns the current balances for all accounts or a single one.
func (h Handlers) Accounts(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	accountStr := web.Param(r, "account")

	if accountStr == "" {
		accounts := h.State.Accounts()
		resp := make([]appAccount, 0, len(accounts))
		for _, account := range accounts {
			resp = append(resp, toAppAccount(account))
		}
		return web.Respond(ctx, w, resp, http.StatusOK)
	}

	accountID, err := database.ToAccountID(accountStr)
	if err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	account, err := h.State.QueryAccount(accountID)
	if err != nil {
		return toRequestError(err)
	}

	return web.Respond(ctx, w, toAppAccount(account), http.StatusOK)
}

// Blocks returns the account's chain including the genesis block.
func (h Handlers) Blocks(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	accountID, err := database.ToAccountID(web.Param(r, "account"))
	if err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	blocks, err := h.State.QueryChain(accountID)
	if err != nil {
		return toRequestError(err)
	}

	resp := make([]appBlock, 0, len(blocks))
	for _, block := range blocks {
		resp = append(resp, toAppBlock(block))
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Verify validates the account's hash linkage and balance/chain agreement.
func (h Handlers) Verify(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	accountID, err := database.ToAccountID(web.Param(r, "account"))
	if err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	if err := h.State.VerifyChain(accountID); err != nil {
		if errors.Is(err, database.ErrAccountNotFound) {
			return v1.NewRequestError(err, http.StatusNotFound)
		}
		return err
	}

	resp := struct {
		Status string `json:"status"`
	}{
		Status: "chain verified",
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Transactions returns the account's transaction history.
func (h Handlers) Transactions(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	accountID, err := database.ToAccountID(web.Param(r, "account"))
	if err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	trans, err := h.State.QueryTransactions(accountID)
	if err != nil {
		return toRequestError(err)
	}

	resp := make([]appTx, 0, len(trans))
	for _, tx := range trans {
		resp = append(resp, toAppTx(tx))
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Requests returns the money requests addressed to the account.
func (h Handlers) Requests(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	accountID, err := database.ToAccountID(web.Param(r, "account"))
	if err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	requests, err := h.State.QueryRequests(accountID)
	if err != nil {
		return toRequestError(err)
	}

	resp := make([]appRequest, 0, len(requests))
	for _, request := range requests {
		resp = append(resp, toAppRequest(request))
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Deposit mints units whose external payment capture has been confirmed.
func (h Handlers) Deposit(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var app appDeposit
	if err := web.Decode(r, &app); err != nil {
		return err
	}

	accountID, err := database.ToAccountID(app.AccountID)
	if err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	h.Log.Infow("deposit", "traceid", v.TraceID, "account", accountID, "units", app.Units, "capture", app.CaptureRef)

	if err := h.State.Deposit(ctx, accountID, app.Units, app.CaptureRef); err != nil {
		return toRequestError(err)
	}

	account, err := h.State.QueryAccount(accountID)
	if err != nil {
		return toRequestError(err)
	}

	return web.Respond(ctx, w, toAppAccount(account), http.StatusOK)
}

// Withdraw burns units from the account.
func (h Handlers) Withdraw(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var app appWithdraw
	if err := web.Decode(r, &app); err != nil {
		return err
	}

	accountID, err := database.ToAccountID(app.AccountID)
	if err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	h.Log.Infow("withdraw", "traceid", v.TraceID, "account", accountID, "units", app.Units)

	if err := h.State.Withdraw(ctx, accountID, app.Units); err != nil {
		return toRequestError(err)
	}

	account, err := h.State.QueryAccount(accountID)
	if err != nil {
		return toRequestError(err)
	}

	return web.Respond(ctx, w, toAppAccount(account), http.StatusOK)
}

// Transfer moves an amount between two accounts, minus the fee.
func (h Handlers) Transfer(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var app appTransfer
	if err := web.Decode(r, &app); err != nil {
		return err
	}

	fromID, err := database.ToAccountID(app.FromID)
	if err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}
	toID, err := database.ToAccountID(app.ToID)
	if err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	h.Log.Infow("transfer", "traceid", v.TraceID, "from", fromID, "to", toID, "amount", app.Amount)

	tx, err := h.State.Transfer(ctx, fromID, toID, app.Amount)
	if err != nil {
		return toRequestError(err)
	}

	return web.Respond(ctx, w, toAppTx(tx), http.StatusOK)
}

// RequestMoney creates a pending money request against the payer.
func (h Handlers) RequestMoney(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var app appNewRequest
	if err := web.Decode(r, &app); err != nil {
		return err
	}

	requesterID, err := database.ToAccountID(app.RequesterID)
	if err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	request, err := h.State.RequestMoney(ctx, requesterID, app.PayerEmail, app.Amount)
	if err != nil {
		return toRequestError(err)
	}

	return web.Respond(ctx, w, toAppRequest(request), http.StatusCreated)
}

// AcceptRequest settles a pending money request as the designated payer.
func (h Handlers) AcceptRequest(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	requestID := web.Param(r, "id")

	var app appResolveRequest
	if err := web.Decode(r, &app); err != nil {
		return err
	}

	actingID, err := database.ToAccountID(app.AccountID)
	if err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	tx, err := h.State.AcceptRequest(ctx, requestID, actingID)
	if err != nil {
		return toRequestError(err)
	}

	return web.Respond(ctx, w, toAppTx(tx), http.StatusOK)
}

// RejectRequest declines a pending money request as the designated payer.
func (h Handlers) RejectRequest(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	requestID := web.Param(r, "id")

	var app appResolveRequest
	if err := web.Decode(r, &app); err != nil {
		return err
	}

	actingID, err := database.ToAccountID(app.AccountID)
	if err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	if err := h.State.RejectRequest(ctx, requestID, actingID); err != nil {
		return toRequestError(err)
	}

	resp := struct {
		Status string `json:"status"`
	}{
		Status: "request rejected",
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// toRequestError maps ledger errors to trusted request errors. Anything not
// matched, the internal chain divergence fault included, surfaces as a 500.
func toRequestError(err error) error {
	switch {
	case errors.Is(err, database.ErrAccountNotFound), errors.Is(err, database.ErrRequestNotFound):
		return v1.NewRequestError(err, http.StatusNotFound)

	case errors.Is(err, state.ErrInsufficientFunds),
		errors.Is(err, state.ErrInvalidAmount),
		errors.Is(err, state.ErrSameAccount):
		return v1.NewRequestError(err, http.StatusBadRequest)

	case errors.Is(err, state.ErrUnauthorized):
		return v1.NewRequestError(err, http.StatusUnauthorized)

	case errors.Is(err, state.ErrInvalidRequestState):
		return v1.NewRequestError(err, http.StatusConflict)
	}

	return err
}
