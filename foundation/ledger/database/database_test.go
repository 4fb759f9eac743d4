package database_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ARYANPANWAR893/payo/foundation/ledger/blockhash"
	"github.com/ARYANPANWAR893/payo/foundation/ledger/database"
	"github.com/ARYANPANWAR893/payo/foundation/ledger/storage/memorystore"
)

func noEv(v string, args ...any) {}

func newDatabase(t *testing.T) (*database.Database, *memorystore.Store) {
	t.Helper()

	store := memorystore.New()
	db, err := database.New(store, nil, noEv)
	require.NoError(t, err)

	return db, store
}

func TestCreateAccount(t *testing.T) {
	db, _ := newDatabase(t)
	ctx := context.Background()

	accountID := database.NewAccountID()
	account, err := db.CreateAccount(ctx, accountID, "Kennedy", "Kennedy@Payo.dev ")
	require.NoError(t, err)

	assert.Equal(t, accountID, account.AccountID)
	assert.Equal(t, "kennedy@payo.dev", account.Email)
	assert.Equal(t, uint64(0), account.Balance)

	blocks, err := db.QueryBlocks(accountID)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, uint64(0), blocks[0].Index)
	assert.Equal(t, blockhash.GenesisPrevHash, blocks[0].PrevHash)
	assert.Equal(t, uint64(0), db.ChainLength(accountID))

	require.NoError(t, db.ValidateChain(accountID))
}

func TestCreateAccountDuplicates(t *testing.T) {
	db, _ := newDatabase(t)
	ctx := context.Background()

	accountID := database.NewAccountID()
	_, err := db.CreateAccount(ctx, accountID, "Kennedy", "kennedy@payo.dev")
	require.NoError(t, err)

	_, err = db.CreateAccount(ctx, accountID, "Kennedy", "other@payo.dev")
	assert.Error(t, err)

	_, err = db.CreateAccount(ctx, database.NewAccountID(), "Imposter", "KENNEDY@payo.dev")
	assert.Error(t, err)
}

func TestQueryByEmail(t *testing.T) {
	db, _ := newDatabase(t)
	ctx := context.Background()

	accountID := database.NewAccountID()
	_, err := db.CreateAccount(ctx, accountID, "Kennedy", "kennedy@payo.dev")
	require.NoError(t, err)

	account, err := db.QueryByEmail("  Kennedy@Payo.Dev ")
	require.NoError(t, err)
	assert.Equal(t, accountID, account.AccountID)

	_, err = db.QueryByEmail("nobody@payo.dev")
	assert.ErrorIs(t, err, database.ErrAccountNotFound)
}

func TestApplyChangeAppend(t *testing.T) {
	db, _ := newDatabase(t)
	ctx := context.Background()

	accountID := database.NewAccountID()
	_, err := db.CreateAccount(ctx, accountID, "Kennedy", "kennedy@payo.dev")
	require.NoError(t, err)

	last, err := db.LastBlock(accountID)
	require.NoError(t, err)

	b1 := database.NewBlock(accountID, last.Index+1, "Added 1 USD", last.Hash)
	b2 := database.NewBlock(accountID, b1.Index+1, "Added 1 USD", b1.Hash)

	change := database.Change{
		Append:   []database.Block{b1, b2},
		Accounts: []database.Account{{AccountID: accountID, Name: "Kennedy", Email: "kennedy@payo.dev", Balance: 2}},
	}
	require.NoError(t, db.ApplyChange(ctx, change))

	assert.Equal(t, uint64(2), db.ChainLength(accountID))
	require.NoError(t, db.ValidateChain(accountID))
}

func TestApplyChangeRejectsBrokenLink(t *testing.T) {
	db, _ := newDatabase(t)
	ctx := context.Background()

	accountID := database.NewAccountID()
	_, err := db.CreateAccount(ctx, accountID, "Kennedy", "kennedy@payo.dev")
	require.NoError(t, err)

	bad := database.NewBlock(accountID, 1, "Added 1 USD", blockhash.ZeroHash)
	err = db.ApplyChange(ctx, database.Change{Append: []database.Block{bad}})
	assert.Error(t, err)

	assert.Equal(t, uint64(0), db.ChainLength(accountID))
}

func TestApplyChangeTruncationGuard(t *testing.T) {
	db, _ := newDatabase(t)
	ctx := context.Background()

	accountID := database.NewAccountID()
	_, err := db.CreateAccount(ctx, accountID, "Kennedy", "kennedy@payo.dev")
	require.NoError(t, err)

	last, err := db.LastBlock(accountID)
	require.NoError(t, err)
	b1 := database.NewBlock(accountID, last.Index+1, "Added 1 USD", last.Hash)
	require.NoError(t, db.ApplyChange(ctx, database.Change{Append: []database.Block{b1}}))

	// Removing the genesis block is never allowed.
	err = db.ApplyChange(ctx, database.Change{Truncate: []database.Truncation{{AccountID: accountID, FromIndex: 0}}})
	assert.ErrorIs(t, err, database.ErrInsufficientBlocks)

	// Removing past the end of the chain is rejected.
	err = db.ApplyChange(ctx, database.Change{Truncate: []database.Truncation{{AccountID: accountID, FromIndex: 2}}})
	assert.ErrorIs(t, err, database.ErrInsufficientBlocks)

	assert.Equal(t, uint64(1), db.ChainLength(accountID))

	// A valid truncation removes the non-genesis tail.
	err = db.ApplyChange(ctx, database.Change{Truncate: []database.Truncation{{AccountID: accountID, FromIndex: 1}}})
	require.NoError(t, err)
	assert.Equal(t, uint64(0), db.ChainLength(accountID))
	require.NoError(t, db.ValidateChain(accountID))
}

func TestApplyChangeStorageFailureLeavesMemoryUntouched(t *testing.T) {
	db, store := newDatabase(t)
	ctx := context.Background()

	accountID := database.NewAccountID()
	_, err := db.CreateAccount(ctx, accountID, "Kennedy", "kennedy@payo.dev")
	require.NoError(t, err)

	last, err := db.LastBlock(accountID)
	require.NoError(t, err)
	b1 := database.NewBlock(accountID, last.Index+1, "Added 1 USD", last.Hash)

	store.FailOnApply(1)
	err = db.ApplyChange(ctx, database.Change{Append: []database.Block{b1}})
	assert.ErrorIs(t, err, memorystore.ErrInjectedFailure)

	assert.Equal(t, uint64(0), db.ChainLength(accountID))
	require.NoError(t, db.ValidateChain(accountID))
}

func TestNewRehydratesFromStorage(t *testing.T) {
	store := memorystore.New()
	db, err := database.New(store, nil, noEv)
	require.NoError(t, err)
	ctx := context.Background()

	accountID := database.NewAccountID()
	_, err = db.CreateAccount(ctx, accountID, "Kennedy", "kennedy@payo.dev")
	require.NoError(t, err)

	last, err := db.LastBlock(accountID)
	require.NoError(t, err)
	b1 := database.NewBlock(accountID, last.Index+1, "Added 1 USD", last.Hash)
	change := database.Change{
		Append:   []database.Block{b1},
		Accounts: []database.Account{{AccountID: accountID, Name: "Kennedy", Email: "kennedy@payo.dev", Balance: 1}},
	}
	require.NoError(t, db.ApplyChange(ctx, change))

	// A second database over the same storage sees the same state.
	db2, err := database.New(store, nil, noEv)
	require.NoError(t, err)

	account, err := db2.Query(accountID)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), account.Balance)
	assert.Equal(t, uint64(1), db2.ChainLength(accountID))
	require.NoError(t, db2.ValidateChain(accountID))
}

func TestLinkValidator(t *testing.T) {
	accountID := database.NewAccountID()
	prev := database.NewBlock(accountID, 3, "Added 1 USD", blockhash.ZeroHash)

	var v database.LinkValidator

	good := database.NewBlock(accountID, 4, "Added 1 USD", prev.Hash)
	assert.NoError(t, v.Validate(good, prev))

	skipped := database.NewBlock(accountID, 5, "Added 1 USD", prev.Hash)
	assert.Error(t, v.Validate(skipped, prev))

	unlinked := database.NewBlock(accountID, 4, "Added 1 USD", blockhash.ZeroHash)
	assert.Error(t, v.Validate(unlinked, prev))

	tampered := good
	tampered.Payload = "Added 10 USD"
	assert.Error(t, v.Validate(tampered, prev))
}
