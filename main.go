package main

import (
	"os"

	"github.com/SriHarshaKodavati/openBill/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
