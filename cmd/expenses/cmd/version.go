package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the expenses CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("expenses version %s\n", version)
		fmt.Println("Household expense report generator")
		fmt.Println("https://github.com/rustyeddy/expenses")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
