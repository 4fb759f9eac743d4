package memorystore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ARYANPANWAR893/payo/foundation/ledger/database"
	"github.com/ARYANPANWAR893/payo/foundation/ledger/storage/memorystore"
)

func TestApplyAndLoad(t *testing.T) {
	store := memorystore.New()
	ctx := context.Background()

	accountID := database.NewAccountID()
	genesis := database.NewBlock(accountID, 0, "Genesis Block", "0")
	b1 := database.NewBlock(accountID, 1, "Added 1 USD", genesis.Hash)

	change := database.Change{
		Accounts: []database.Account{{AccountID: accountID, Name: "Kennedy", Email: "kennedy@payo.dev", Balance: 1}},
		Append:   []database.Block{genesis, b1},
		Trans:    []database.Tx{database.NewTx(accountID, accountID, 1, 0)},
		Requests: []database.MoneyRequest{database.NewMoneyRequest(accountID, accountID, 1)},
	}
	require.NoError(t, store.Apply(ctx, change))

	snapshot, err := store.Load(ctx)
	require.NoError(t, err)

	require.Len(t, snapshot.Accounts, 1)
	assert.Equal(t, uint64(1), snapshot.Accounts[0].Balance)
	require.Len(t, snapshot.Blocks, 2)
	assert.Len(t, snapshot.Trans, 1)
	assert.Len(t, snapshot.Requests, 1)
}

func TestTruncate(t *testing.T) {
	store := memorystore.New()
	ctx := context.Background()

	accountID := database.NewAccountID()
	genesis := database.NewBlock(accountID, 0, "Genesis Block", "0")
	b1 := database.NewBlock(accountID, 1, "Added 1 USD", genesis.Hash)
	b2 := database.NewBlock(accountID, 2, "Added 1 USD", b1.Hash)

	require.NoError(t, store.Apply(ctx, database.Change{Append: []database.Block{genesis, b1, b2}}))

	err := store.Apply(ctx, database.Change{Truncate: []database.Truncation{{AccountID: accountID, FromIndex: 1}}})
	require.NoError(t, err)

	snapshot, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, snapshot.Blocks, 1)
	assert.Equal(t, uint64(0), snapshot.Blocks[0].Index)

	// Truncating at or past the chain end is rejected.
	err = store.Apply(ctx, database.Change{Truncate: []database.Truncation{{AccountID: accountID, FromIndex: 5}}})
	assert.ErrorIs(t, err, database.ErrInsufficientBlocks)
}

func TestFailOnApply(t *testing.T) {
	store := memorystore.New()
	ctx := context.Background()

	accountID := database.NewAccountID()
	genesis := database.NewBlock(accountID, 0, "Genesis Block", "0")

	require.NoError(t, store.Apply(ctx, database.Change{Append: []database.Block{genesis}}))

	store.FailOnApply(2)

	b1 := database.NewBlock(accountID, 1, "Added 1 USD", genesis.Hash)
	require.NoError(t, store.Apply(ctx, database.Change{Append: []database.Block{b1}}))

	b2 := database.NewBlock(accountID, 2, "Added 1 USD", b1.Hash)
	err := store.Apply(ctx, database.Change{Append: []database.Block{b2}})
	assert.ErrorIs(t, err, memorystore.ErrInjectedFailure)

	// The failed apply mutated nothing and the hook is one-shot.
	snapshot, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, snapshot.Blocks, 2)

	require.NoError(t, store.Apply(ctx, database.Change{Append: []database.Block{b2}}))
}
