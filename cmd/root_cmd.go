package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cifq",
	Short: "Cifq is a tool for building and emitting mmCIF data files.",
	Long:  "Cifq builds mmCIF object trees from plain data maps (YAML or JSON) and re-emits them as syntactically valid CIF text.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of Cifq",
	Long:  `All software has versions. This is Cifq's`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Cifq v0.1 -- HEAD")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cifCmd)
}
