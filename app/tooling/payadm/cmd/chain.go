package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/ARYANPANWAR893/payo/foundation/ledger/blockhash"
	"github.com/ARYANPANWAR893/payo/foundation/ledger/database"
)

var (
	chainAccount string
	chainVerify  bool
)

var chainCmd = &cobra.Command{
	Use:   "chain",
	Short: "Dump an account's block chain",
	Run:   chainRun,
}

func init() {
	rootCmd.AddCommand(chainCmd)
	chainCmd.Flags().StringVarP(&chainAccount, "account", "a", "", "Account ID.")
	chainCmd.Flags().BoolVarP(&chainVerify, "verify", "v", false, "Recompute the hash linkage locally.")
	chainCmd.MarkFlagRequired("account")
}

type blockInfo struct {
	Index    uint64 `json:"index"`
	Payload  string `json:"payload"`
	PrevHash string `json:"previous_hash"`
	Hash     string `json:"hash"`
}

func chainRun(cmd *cobra.Command, args []string) {
	if _, err := database.ToAccountID(chainAccount); err != nil {
		log.Fatal(err)
	}

	var blocks []blockInfo
	resp, err := client().R().SetResult(&blocks).Get("/v1/accounts/" + chainAccount + "/blocks")
	check(resp, err)

	for _, block := range blocks {
		fmt.Printf("%4d  %s  %q\n", block.Index, block.Hash, block.Payload)
	}

	if !chainVerify {
		return
	}

	for i, block := range blocks {
		if got := blockhash.Hash(block.Index, block.Payload, block.PrevHash); got != block.Hash {
			log.Fatalf("block %d: hash mismatch: got %s, chain has %s", block.Index, got, block.Hash)
		}
		if i > 0 && block.PrevHash != blocks[i-1].Hash {
			log.Fatalf("block %d: broken link to block %d", block.Index, blocks[i-1].Index)
		}
	}

	fmt.Printf("chain verified: %d blocks\n", len(blocks))
}
