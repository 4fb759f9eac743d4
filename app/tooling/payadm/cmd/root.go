package cmd

import (
	"fmt"
	"os"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"
)

var url string

var rootCmd = &cobra.Command{
	Use:   "payadm",
	Short: "Ledger administration tool",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&url, "url", "w", "http://localhost:8080", "URL of the ledger service.")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// client constructs a resty client bound to the configured service URL.
func client() *resty.Client {
	return resty.New().SetBaseURL(url)
}

// check fails the command on transport errors or non-2xx responses.
func check(resp *resty.Response, err error) {
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if resp.IsError() {
		fmt.Printf("%s: %s\n", resp.Status(), resp.String())
		os.Exit(1)
	}
}
