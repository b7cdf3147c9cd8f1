// Package cli wires the cobranza commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cobranza-network/cobranza/internal/api"
)

var (
	cfgPath  string
	dataPath string
)

var rootCmd = &cobra.Command{
	Use:   "cobranza",
	Short: "Collections analytics daemon",
	Long: `cobranza serves a debt-collection analytics dashboard: a roster of
clientes, per-cliente interaction statistics, portfolio KPIs and the
cliente/agente relationship graph, all computed from an in-memory dataset.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to config.toml")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "Dataset JSON file (default: embedded sample)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the cobranza version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(os.Stdout, "cobranza", api.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
