package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rpggio/jobtracker/internal/csvio"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import companies or applications from a CSV file",
}

var importFile string

func init() {
	for _, kind := range []string{csvio.KindCompanies, csvio.KindApplications} {
		importCmd.AddCommand(&cobra.Command{
			Use:   kind,
			Short: fmt.Sprintf("Import %s from a CSV file", kind),
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runImport(cmd, kind)
			},
		})
	}
	importCmd.PersistentFlags().StringVarP(&importFile, "file", "f", "", "Path to the CSV file")
	_ = importCmd.MarkPersistentFlagRequired("file")

	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, kind string) error {
	f, err := os.Open(importFile)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	a, err := loadApp(os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := importCSV(cmd.Context(), a, kind, f)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), result)
}

// importCSV runs one import and returns its stats.
func importCSV(ctx context.Context, a *app, kind string, r io.Reader) (any, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	switch kind {
	case csvio.KindCompanies:
		return a.imports.ImportCompanies(ctx, r)
	case csvio.KindApplications:
		return a.imports.ImportApplications(ctx, r)
	default:
		return nil, fmt.Errorf("unknown import kind %q", kind)
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
