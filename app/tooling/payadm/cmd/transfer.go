package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	transferFrom   string
	transferTo     string
	transferAmount uint64
)

var transferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "Transfer units between two accounts",
	Run:   transferRun,
}

func init() {
	rootCmd.AddCommand(transferCmd)
	transferCmd.Flags().StringVarP(&transferFrom, "from", "f", "", "Sender account ID.")
	transferCmd.Flags().StringVarP(&transferTo, "to", "t", "", "Recipient account ID.")
	transferCmd.Flags().Uint64VarP(&transferAmount, "amount", "v", 0, "Amount to send.")
	transferCmd.MarkFlagRequired("from")
	transferCmd.MarkFlagRequired("to")
	transferCmd.MarkFlagRequired("amount")
}

type txInfo struct {
	ID     string `json:"id"`
	FromID string `json:"from_id"`
	ToID   string `json:"to_id"`
	Amount uint64 `json:"amount"`
	Fee    uint64 `json:"fee"`
}

func transferRun(cmd *cobra.Command, args []string) {
	body := struct {
		FromID string `json:"from_id"`
		ToID   string `json:"to_id"`
		Amount uint64 `json:"amount"`
	}{
		FromID: transferFrom,
		ToID:   transferTo,
		Amount: transferAmount,
	}

	var tx txInfo
	resp, err := client().R().SetBody(body).SetResult(&tx).Post("/v1/transfer")
	check(resp, err)

	fmt.Printf("tx %s: %s -> %s credited %d (fee %d)\n", tx.ID, tx.FromID, tx.ToID, tx.Amount, tx.Fee)
}
