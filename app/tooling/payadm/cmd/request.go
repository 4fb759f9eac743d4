package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	requestRequester string
	requestPayer     string
	requestAmount    uint64
)

var requestCmd = &cobra.Command{
	Use:   "request",
	Short: "Create a money request against a payer",
	Run:   requestRun,
}

func init() {
	rootCmd.AddCommand(requestCmd)
	requestCmd.Flags().StringVarP(&requestRequester, "requester", "r", "", "Requester account ID.")
	requestCmd.Flags().StringVarP(&requestPayer, "payer", "p", "", "Payer email address.")
	requestCmd.Flags().Uint64VarP(&requestAmount, "amount", "v", 0, "Amount to request.")
	requestCmd.MarkFlagRequired("requester")
	requestCmd.MarkFlagRequired("payer")
	requestCmd.MarkFlagRequired("amount")
}

func requestRun(cmd *cobra.Command, args []string) {
	body := struct {
		RequesterID string `json:"requester_id"`
		PayerEmail  string `json:"payer_email"`
		Amount      uint64 `json:"amount"`
	}{
		RequesterID: requestRequester,
		PayerEmail:  requestPayer,
		Amount:      requestAmount,
	}

	var request struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	resp, err := client().R().SetBody(body).SetResult(&request).Post("/v1/requests")
	check(resp, err)

	fmt.Printf("request %s is %s\n", request.ID, request.Status)
}
