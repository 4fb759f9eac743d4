package pgstore_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ARYANPANWAR893/payo/foundation/ledger/database"
	"github.com/ARYANPANWAR893/payo/foundation/ledger/storage/pgstore"
)

// newStore connects to the database named by LEDGER_DB_URL. The test suite
// skips when the variable is unset so unit runs need no database.
func newStore(t *testing.T) *pgstore.Store {
	t.Helper()

	dsn := os.Getenv("LEDGER_DB_URL")
	if dsn == "" {
		t.Skip("set LEDGER_DB_URL to run postgres storage tests")
	}

	store, err := pgstore.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(store.Close)

	return store
}

func TestApplyAndLoadRoundTrip(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	accountID := database.NewAccountID()
	genesis := database.NewBlock(accountID, 0, "Genesis Block", "0")
	b1 := database.NewBlock(accountID, 1, "Added 1 USD", genesis.Hash)

	change := database.Change{
		Accounts: []database.Account{{AccountID: accountID, Name: "Kennedy", Email: string(accountID) + "@payo.dev", Balance: 1}},
		Append:   []database.Block{genesis, b1},
	}
	require.NoError(t, store.Apply(ctx, change))

	snapshot, err := store.Load(ctx)
	require.NoError(t, err)

	var account *database.Account
	for i := range snapshot.Accounts {
		if snapshot.Accounts[i].AccountID == accountID {
			account = &snapshot.Accounts[i]
		}
	}
	require.NotNil(t, account)
	assert.Equal(t, uint64(1), account.Balance)

	var blocks []database.Block
	for _, block := range snapshot.Blocks {
		if block.AccountID == accountID {
			blocks = append(blocks, block)
		}
	}
	require.Len(t, blocks, 2)
	assert.Equal(t, genesis.Hash, blocks[0].Hash)
	assert.Equal(t, b1.Hash, blocks[1].Hash)
}

func TestApplyTruncation(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	accountID := database.NewAccountID()
	genesis := database.NewBlock(accountID, 0, "Genesis Block", "0")
	b1 := database.NewBlock(accountID, 1, "Added 1 USD", genesis.Hash)
	b2 := database.NewBlock(accountID, 2, "Added 1 USD", b1.Hash)

	change := database.Change{
		Accounts: []database.Account{{AccountID: accountID, Name: "Kennedy", Email: string(accountID) + "@payo.dev", Balance: 2}},
		Append:   []database.Block{genesis, b1, b2},
	}
	require.NoError(t, store.Apply(ctx, change))

	change = database.Change{
		Accounts: []database.Account{{AccountID: accountID, Name: "Kennedy", Email: string(accountID) + "@payo.dev", Balance: 0}},
		Truncate: []database.Truncation{{AccountID: accountID, FromIndex: 1}},
	}
	require.NoError(t, store.Apply(ctx, change))

	snapshot, err := store.Load(ctx)
	require.NoError(t, err)

	var blocks []database.Block
	for _, block := range snapshot.Blocks {
		if block.AccountID == accountID {
			blocks = append(blocks, block)
		}
	}
	require.Len(t, blocks, 1)
	assert.Equal(t, uint64(0), blocks[0].Index)
}
