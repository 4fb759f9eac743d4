package blockhash_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ARYANPANWAR893/payo/foundation/ledger/blockhash"
)

func TestHashDeterministic(t *testing.T) {
	h1 := blockhash.Hash(1, "Added 1 USD", blockhash.GenesisPrevHash)
	h2 := blockhash.Hash(1, "Added 1 USD", blockhash.GenesisPrevHash)
	assert.Equal(t, h1, h2)
}

func TestHashFormat(t *testing.T) {
	h := blockhash.Hash(0, "Genesis Block", blockhash.GenesisPrevHash)
	assert.True(t, strings.HasPrefix(h, "0x"))
	assert.Len(t, h, 66)
}

func TestHashInputSensitivity(t *testing.T) {
	base := blockhash.Hash(1, "Added 1 USD", blockhash.GenesisPrevHash)

	assert.NotEqual(t, base, blockhash.Hash(2, "Added 1 USD", blockhash.GenesisPrevHash))
	assert.NotEqual(t, base, blockhash.Hash(1, "Added 2 USD", blockhash.GenesisPrevHash))
	assert.NotEqual(t, base, blockhash.Hash(1, "Added 1 USD", base))
}

func TestZeroHashDistinct(t *testing.T) {
	assert.NotEqual(t, blockhash.ZeroHash, blockhash.GenesisPrevHash)
	assert.Len(t, blockhash.ZeroHash, 66)
}
