// Package genesis maintains access to the genesis file.
package genesis

import (
	"encoding/json"
	"os"
	"time"
)

// SeedAccount is an account created with a pre-minted chain at first startup.
type SeedAccount struct {
	AccountID string `json:"account_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Balance   uint64 `json:"balance"`
}

// Genesis is the genesis file.
type Genesis struct {
	Date     time.Time     `json:"date"`
	ChainID  uint16        `json:"chain_id"`
	FeeBps   uint16        `json:"fee_bps"`
	Accounts []SeedAccount `json:"accounts"`
}

// Load loads the genesis file from its default location.
func Load() (Genesis, error) {
	return LoadFromFile("zblock/genesis.json")
}

// LoadFromFile loads the genesis file from the specified path.
func LoadFromFile(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, err
	}

	var genesis Genesis
	if err := json.Unmarshal(content, &genesis); err != nil {
		return Genesis{}, err
	}

	return genesis, nil
}
