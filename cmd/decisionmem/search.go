package main

import (
	"github.com/spf13/cobra"

	"github.com/arturoeanton/go-decision-memory/internal/service"
	"github.com/arturoeanton/go-decision-memory/pkg/config"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Find stored decisions by semantic similarity",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 5, "Maximum number of results")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	provider, err := newProvider(cfg)
	if err != nil {
		return err
	}

	st, err := newStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	svc := service.NewSearchService(provider, st)
	matches, err := svc.Search(cmd.Context(), args[0], searchLimit)
	if err != nil {
		return err
	}

	if len(matches) == 0 {
		cmd.Println("No matching decisions.")
		return nil
	}
	for _, m := range matches {
		cmd.Printf("%.3f  %s\n       %s\n", m.Similarity, m.Title, m.Decision.Decision)
	}
	return nil
}
