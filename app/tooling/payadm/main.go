// Payadm is an administration tool for querying and exercising a running
// ledger service.
package main

import "github.com/ARYANPANWAR893/payo/app/tooling/payadm/cmd"

func main() {
	cmd.Execute()
}
