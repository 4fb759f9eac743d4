package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/ARYANPANWAR893/payo/foundation/ledger/database"
)

var balanceAccount string

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show an account balance, or all balances",
	Run:   balanceRun,
}

func init() {
	rootCmd.AddCommand(balanceCmd)
	balanceCmd.Flags().StringVarP(&balanceAccount, "account", "a", "", "Account ID. Empty lists all accounts.")
}

type accountInfo struct {
	AccountID string `json:"account_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Balance   uint64 `json:"balance"`
}

func balanceRun(cmd *cobra.Command, args []string) {
	if balanceAccount == "" {
		var accounts []accountInfo
		resp, err := client().R().SetResult(&accounts).Get("/v1/accounts")
		check(resp, err)

		for _, account := range accounts {
			fmt.Printf("%s  %-20s  %d\n", account.AccountID, account.Name, account.Balance)
		}
		return
	}

	if _, err := database.ToAccountID(balanceAccount); err != nil {
		log.Fatal(err)
	}

	var account accountInfo
	resp, err := client().R().SetResult(&account).Get("/v1/accounts/" + balanceAccount)
	check(resp, err)

	fmt.Printf("%s  %-20s  %d\n", account.AccountID, account.Name, account.Balance)
}
