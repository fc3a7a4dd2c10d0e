package main

import "wallet-ledger/cmd/ledger-cli/cmd"

func main() {
	cmd.Execute()
}
