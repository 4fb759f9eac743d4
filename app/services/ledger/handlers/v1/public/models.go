package public

import "github.com/ARYANPANWAR893/payo/foundation/ledger/database"

type appNewAccount struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

type appDeposit struct {
	AccountID  string `json:"account_id" validate:"required,uuid"`
	Units      uint64 `json:"units" validate:"required,gt=0"`
	CaptureRef string `json:"capture_ref" validate:"required"`
}

type appWithdraw struct {
	AccountID string `json:"account_id" validate:"required,uuid"`
	Units     uint64 `json:"units" validate:"required,gt=0"`
}

type appTransfer struct {
	FromID string `json:"from_id" validate:"required,uuid"`
	ToID   string `json:"to_id" validate:"required,uuid"`
	Amount uint64 `json:"amount" validate:"required,gt=0"`
}

type appNewRequest struct {
	RequesterID string `json:"requester_id" validate:"required,uuid"`
	PayerEmail  string `json:"payer_email" validate:"required,email"`
	Amount      uint64 `json:"amount" validate:"required,gt=0"`
}

type appResolveRequest struct {
	AccountID string `json:"account_id" validate:"required,uuid"`
}

// ----------------------------------------------------------------------------

type appAccount struct {
	AccountID string `json:"account_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Balance   uint64 `json:"balance"`
}

func toAppAccount(account database.Account) appAccount {
	return appAccount{
		AccountID: string(account.AccountID),
		Name:      account.Name,
		Email:     account.Email,
		Balance:   account.Balance,
	}
}

type appBlock struct {
	AccountID string `json:"account_id"`
	Index     uint64 `json:"index"`
	Payload   string `json:"payload"`
	PrevHash  string `json:"previous_hash"`
	Hash      string `json:"hash"`
	TimeStamp uint64 `json:"timestamp"`
}

func toAppBlock(block database.Block) appBlock {
	return appBlock{
		AccountID: string(block.AccountID),
		Index:     block.Index,
		Payload:   block.Payload,
		PrevHash:  block.PrevHash,
		Hash:      block.Hash,
		TimeStamp: block.TimeStamp,
	}
}

type appTx struct {
	ID        string `json:"id"`
	FromID    string `json:"from_id"`
	ToID      string `json:"to_id"`
	Amount    uint64 `json:"amount"`
	Fee       uint64 `json:"fee"`
	TimeStamp uint64 `json:"timestamp"`
}

func toAppTx(tx database.Tx) appTx {
	return appTx{
		ID:        tx.ID,
		FromID:    string(tx.FromID),
		ToID:      string(tx.ToID),
		Amount:    tx.Amount,
		Fee:       tx.Fee,
		TimeStamp: tx.TimeStamp,
	}
}

type appRequest struct {
	ID          string `json:"id"`
	RequesterID string `json:"requester_id"`
	PayerID     string `json:"payer_id"`
	Amount      uint64 `json:"amount"`
	Status      string `json:"status"`
	TimeStamp   uint64 `json:"timestamp"`
}

func toAppRequest(request database.MoneyRequest) appRequest {
	return appRequest{
		ID:          request.ID,
		RequesterID: string(request.RequesterID),
		PayerID:     string(request.PayerID),
		Amount:      request.Amount,
		Status:      string(request.Status),
		TimeStamp:   request.TimeStamp,
	}
}
