package main

import (
	"fmt"
	"os"

	"expensetracker/internal/cli"
	"expensetracker/internal/logger"
)

func main() {
	defer logger.Sync()

	if err := cli.Execute(os.Args[1:], os.Stdout, os.Stderr, cli.OpenDatabase); err != nil {
		fmt.Fprintf(os.Stderr, "tracker: %v\n", err)
		os.Exit(1)
	}
}
