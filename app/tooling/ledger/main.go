// This program provides tooling for computing hashes, mining single blocks
// and running scripted scenarios against the ledger.
package main

import "github.com/ardanlabs/ledger/app/tooling/ledger/cmd"

func main() {
	cmd.Execute()
}
