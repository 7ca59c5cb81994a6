package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"confscan/internal/dialect"
)

var dialectsCmd = &cobra.Command{
	Use:   "dialects",
	Short: "List registered dialect names and their grammar kind",
	Args:  cobra.NoArgs,
	RunE:  runDialects,
}

func runDialects(cmd *cobra.Command, args []string) error {
	for _, name := range dialect.Names() {
		kind, ok := dialect.Lookup(name)
		if !ok {
			// Names отдаёт только ключи реестра, сюда попасть нельзя.
			continue
		}
		fmt.Fprintf(os.Stdout, "%-10s %s\n", name, kind)
	}
	return nil
}
