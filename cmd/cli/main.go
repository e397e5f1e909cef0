// Command cli runs operator tasks against the simplifytour database.
package main

import (
	"log"

	"github.com/spf13/cobra"

	"simplifytour/cmd/cli/internal/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "simplifytour-cli",
		Short:        "Operator commands for simplifytour",
		SilenceUsage: true,
	}
	commands.Register(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}
