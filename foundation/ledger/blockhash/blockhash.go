// Package blockhash computes the deterministic content hash that links a
// ledger block to its predecessor.
package blockhash

import (
	"crypto/sha256"
	"encoding/json"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// GenesisPrevHash is the sentinel previous hash carried by every genesis block.
const GenesisPrevHash = "0"

// ZeroHash is the hash value returned when the input cannot be serialized.
const ZeroHash = "0x0000000000000000000000000000000000000000000000000000000000000000"

// canonical is the fixed field set that participates in a block's hash. The
// timestamp is excluded so a chain can be re-verified from persisted rows
// alone. The JSON keys are already in sorted order, which keeps the digest
// independent of field insertion order.
type canonical struct {
	Index    uint64 `json:"index"`
	Payload  string `json:"payload"`
	PrevHash string `json:"previous_hash"`
}

// Hash returns the 0x-prefixed sha256 digest over a block's canonical fields.
// Same input always yields the same output.
func Hash(index uint64, payload string, prevHash string) string {
	data, err := json.Marshal(canonical{
		Index:    index,
		Payload:  payload,
		PrevHash: prevHash,
	})
	if err != nil {
		return ZeroHash
	}

	hash := sha256.Sum256(data)
	return hexutil.Encode(hash[:])
}
