package cli

import (
	"fmt"
	"io"

	"github.com/example/sozluk/internal/dataset"
	"github.com/example/sozluk/internal/excel"
	"github.com/spf13/cobra"
)

func newImportCommand() *cobra.Command {
	config := excel.DefaultImportConfig()

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import words from an .xlsx or .csv file",
		Long: `Import words from a spreadsheet. Rows are matched to existing entries by
headword and book: matches are updated, everything else is created.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			config.FilePath = args[0]
			result, err := a.importer.ImportFile(cmd.Context(), config)
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), result)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&config.SheetName, "sheet", "", "Sheet to import (default: first sheet)")
	flags.IntVar(&config.StartRow, "start-row", config.StartRow, "First data row, 1-based")
	flags.StringVar(&config.WordColumn, "word-col", config.WordColumn, "Column holding the headword")
	flags.StringVar(&config.MeaningColumn, "meaning-col", config.MeaningColumn, "Column holding the meaning")
	flags.StringVar(&config.BookColumn, "book-col", config.BookColumn, "Column holding the book")
	flags.StringVar(&config.QuoteColumn, "quote-col", config.QuoteColumn, "Column holding the quote")
	flags.StringVar(&config.CategoryColumn, "category-col", config.CategoryColumn, "Column holding the category")
	return cmd
}

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the built-in dictionary into the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.importer.Seed(cmd.Context(), dataset.Words())
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), result)
			return nil
		},
	}
}

func printResult(w io.Writer, result *excel.ImportResult) {
	fmt.Fprintf(w, "Processed: %d\nCreated:   %d\nUpdated:   %d\nSkipped:   %d\n",
		result.TotalProcessed, result.Created, result.Updated, result.Skipped)
	if len(result.Errors) > 0 {
		fmt.Fprintf(w, "\nErrors (%d):\n", len(result.Errors))
		for _, e := range result.Errors {
			fmt.Fprintf(w, "  %s\n", e)
		}
	}
}
