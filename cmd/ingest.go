package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wandergenie/wandergenie/internal/app"
	"github.com/wandergenie/wandergenie/internal/knowledge"
)

var ingestFlags struct {
	file        string
	destination string
	country     string
	category    string
}

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest a travel document into the knowledge base",
	Long: `Ingest reads a plain-text travel guide, splits it into overlapping
chunks, embeds each chunk, and stores the result for retrieval.`,
	Example: `  wandergenie ingest --file guides/kyoto.txt --destination Kyoto --country Japan`,
	RunE:    runIngest,
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestFlags.file, "file", "f", "", "path to a plain-text guide (required)")
	ingestCmd.Flags().StringVarP(&ingestFlags.destination, "destination", "d", "", "city the guide covers (required)")
	ingestCmd.Flags().StringVarP(&ingestFlags.country, "country", "c", "Unknown", "country the city belongs to")
	ingestCmd.Flags().StringVar(&ingestFlags.category, "category", "overview", "guide category")
	_ = ingestCmd.MarkFlagRequired("file")
	_ = ingestCmd.MarkFlagRequired("destination")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	text, err := os.ReadFile(ingestFlags.file)
	if err != nil {
		return fmt.Errorf("reading %s: %w", ingestFlags.file, err)
	}

	a, err := app.New(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	n, err := a.Ingestor.Ingest(ctx, string(text), knowledge.Metadata{
		Type:        "city_guide",
		Destination: ingestFlags.destination,
		Country:     ingestFlags.country,
		Category:    ingestFlags.category,
		Source:      ingestFlags.file,
	})
	if err != nil {
		return fmt.Errorf("ingesting document: %w", err)
	}

	fmt.Printf("Ingested %d chunks for %s\n", n, ingestFlags.destination)
	return nil
}
