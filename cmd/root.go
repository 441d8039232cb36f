package cmd

import (
	"github.com/kyubxy/simai-analyzer/constants"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "simai",
	Short: "simai chart analyzer",
	Long:  `Reads simai charts and maidata.txt files into timed, linked charts.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		constants.LoadEnv()
	},
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
