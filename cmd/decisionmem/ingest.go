package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arturoeanton/go-decision-memory/internal/domain"
	"github.com/arturoeanton/go-decision-memory/internal/service"
	"github.com/arturoeanton/go-decision-memory/pkg/config"
)

var (
	ingestFile   string
	ingestKind   string
	ingestTitle  string
	ingestURL    string
	ingestAuthor string
	ingestAsJSON bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Extract decision cards from a text file",
	Long: `Runs the full extraction pipeline on one document: chunk, detect
candidates, synthesize decisions, verify citations, embed, and persist.
Prints the accepted decision cards on success.`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestFile, "file", "f", "", "Path to the source text file (required)")
	ingestCmd.Flags().StringVarP(&ingestKind, "source-kind", "k", "", "Source kind: chat_log, pull_request, meeting_notes, wiki_page (required)")
	ingestCmd.Flags().StringVar(&ingestTitle, "title", "", "Source title")
	ingestCmd.Flags().StringVar(&ingestURL, "url", "", "Source URL")
	ingestCmd.Flags().StringVar(&ingestAuthor, "author", "", "Source author")
	ingestCmd.Flags().BoolVar(&ingestAsJSON, "json", true, "Print accepted decisions as indented JSON")
	_ = ingestCmd.MarkFlagRequired("file")
	_ = ingestCmd.MarkFlagRequired("source-kind")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
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

	text, err := os.ReadFile(ingestFile)
	if err != nil {
		return fmt.Errorf("read source file: %w", err)
	}

	svc := service.NewIngestService(provider, st)
	decisions, err := svc.Ingest(cmd.Context(), service.IngestRequest{
		Kind:   domain.SourceKind(ingestKind),
		Title:  ingestTitle,
		URL:    ingestURL,
		Author: ingestAuthor,
		Text:   string(text),
	})
	if err != nil {
		return err
	}

	if decisions == nil {
		decisions = []domain.Decision{}
	}

	if ingestAsJSON {
		out, err := json.MarshalIndent(decisions, "", "  ")
		if err != nil {
			return fmt.Errorf("encode decisions: %w", err)
		}
		cmd.Println(string(out))
		return nil
	}

	if len(decisions) == 0 {
		cmd.Println("No decisions extracted.")
		return nil
	}
	for _, d := range decisions {
		cmd.Printf("- %s\n  %s\n  confidence=%.2f citations=%d\n", d.Title, d.Decision, d.Confidence, len(d.Citations))
	}
	return nil
}
