package main

import (
	"github.com/spf13/cobra"

	"github.com/arturoeanton/go-decision-memory/pkg/config"
)

var initDBCmd = &cobra.Command{
	Use:   "init-db",
	Short: "Create the provenance schema if absent",
	Long:  `Creates the sources, source_chunks, decisions, and decision_citations tables. Safe to run repeatedly.`,
	RunE:  runInitDB,
}

func init() {
	rootCmd.AddCommand(initDBCmd)
}

func runInitDB(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	st, err := newStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.InitSchema(cmd.Context()); err != nil {
		return err
	}
	cmd.Println("Schema ready.")
	return nil
}
