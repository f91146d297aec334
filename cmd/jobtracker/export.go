package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rpggio/jobtracker/internal/csvio"
	"github.com/rpggio/jobtracker/internal/domain/company"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const exportKindAll = "all"

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export companies and applications as dated CSV files",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

var (
	exportKind string
	exportDir  string
)

func init() {
	exportCmd.Flags().StringVar(&exportKind, "kind", exportKindAll, "companies, applications or all")
	exportCmd.Flags().StringVar(&exportDir, "dir", "", "Output directory (overrides JOBTRACKER_EXPORT_DIR)")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	dir := exportDir
	if dir == "" {
		dir = a.cfg.Export.Dir
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	paths, err := exportFiles(ctx, a.companies.List(ctx), exportKind, dir, time.Now())
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	return nil
}

// exportFiles writes one CSV file per requested kind into dir and returns
// the written paths in kind order.
func exportFiles(ctx context.Context, companies []company.Company, kind, dir string, now time.Time) ([]string, error) {
	var kinds []string
	switch kind {
	case exportKindAll:
		kinds = []string{csvio.KindCompanies, csvio.KindApplications}
	case csvio.KindCompanies, csvio.KindApplications:
		kinds = []string{kind}
	default:
		return nil, fmt.Errorf("unknown export kind %q (want companies, applications or all)", kind)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating export directory: %w", err)
	}

	paths := make([]string, len(kinds))
	g, ctx := errgroup.WithContext(ctx)
	for i, k := range kinds {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path := filepath.Join(dir, csvio.ExportFileName(k, now))
			if err := writeExport(path, k, companies); err != nil {
				return fmt.Errorf("exporting %s: %w", k, err)
			}
			paths[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

func writeExport(path, kind string, companies []company.Company) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if kind == csvio.KindCompanies {
		err = csvio.WriteCompanies(f, companies)
	} else {
		err = csvio.WriteApplications(f, companies)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
