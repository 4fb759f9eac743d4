package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	depositAccount string
	depositUnits   uint64
	depositCapture string
)

var depositCmd = &cobra.Command{
	Use:   "deposit",
	Short: "Mint units against a confirmed payment capture",
	Run:   depositRun,
}

func init() {
	rootCmd.AddCommand(depositCmd)
	depositCmd.Flags().StringVarP(&depositAccount, "account", "a", "", "Account ID.")
	depositCmd.Flags().Uint64VarP(&depositUnits, "units", "v", 0, "Units to mint.")
	depositCmd.Flags().StringVarP(&depositCapture, "capture", "c", "", "External payment capture reference.")
	depositCmd.MarkFlagRequired("account")
	depositCmd.MarkFlagRequired("units")
	depositCmd.MarkFlagRequired("capture")
}

func depositRun(cmd *cobra.Command, args []string) {
	body := struct {
		AccountID  string `json:"account_id"`
		Units      uint64 `json:"units"`
		CaptureRef string `json:"capture_ref"`
	}{
		AccountID:  depositAccount,
		Units:      depositUnits,
		CaptureRef: depositCapture,
	}

	var account accountInfo
	resp, err := client().R().SetBody(body).SetResult(&account).Post("/v1/deposit")
	check(resp, err)

	fmt.Printf("%s balance is now %d\n", account.AccountID, account.Balance)
}
