package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/JonMunkholm/committees/internal/core"
	"github.com/JonMunkholm/committees/internal/table"
	"github.com/JonMunkholm/committees/internal/views"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// viewQuery is the search, filter and sort state applied before export.
// A sort column makes the export follow that order.
type viewQuery struct {
	search  string
	filters []string
	sortBy  string
	desc    bool
}

// parseFilter splits a key=value flag.
func parseFilter(s string) (key, value string, err error) {
	key, value, ok := strings.Cut(s, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", "", fmt.Errorf("filter %q: want key=value", s)
	}
	return key, strings.TrimSpace(value), nil
}

func (q viewQuery) apply(v *table.View) error {
	v.SetSearch(q.search)
	for _, f := range q.filters {
		key, value, err := parseFilter(f)
		if err != nil {
			return err
		}
		if err := v.SetFilter(key, value); err != nil {
			return err
		}
	}
	if q.sortBy != "" {
		if _, err := v.ToggleSort(q.sortBy); err != nil {
			return err
		}
		if q.desc {
			v.ToggleSort(q.sortBy)
		}
		v.SetExportFollowsSort(true)
	}
	return nil
}

func newExportCommand() *cobra.Command {
	var (
		viewKey string
		format  string
		out     string
		query   viewQuery
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export one view as xlsx, pdf or csv",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := table.ParseFormat(format)
			if err != nil {
				return err
			}
			cfg, ok := views.Get(viewKey)
			if !ok {
				return fmt.Errorf("%w: %s", core.ErrUnknownView, viewKey)
			}

			rt, err := openApp(cmd.Context(), 1)
			if err != nil {
				return err
			}
			defer rt.Close()

			if out == "" {
				out = cfg.Export.FileName(cfg.Key, f)
			}
			var w io.Writer = cmd.OutOrStdout()
			if out != "-" {
				file, err := os.Create(out)
				if err != nil {
					return err
				}
				defer file.Close()
				w = file
			}

			n, err := exportView(cmd.Context(), rt, viewKey, f, query, w)
			if err != nil {
				return err
			}
			if out != "-" {
				fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d records to %s\n", n, out)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&viewKey, "view", "", "View key (see 'tablectl views')")
	cmd.Flags().StringVar(&format, "format", "csv", "Export format: xlsx|pdf|csv")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output path, '-' for stdout (default: the view's export file name)")
	cmd.Flags().StringVar(&query.search, "search", "", "Search text")
	cmd.Flags().StringArrayVar(&query.filters, "filter", nil, "Column filter as key=value (repeatable)")
	cmd.Flags().StringVar(&query.sortBy, "sort", "", "Sort by column accessor")
	cmd.Flags().BoolVar(&query.desc, "desc", false, "Sort descending")
	cmd.MarkFlagRequired("view")
	cmd.Example = `  # Committee members in Virginia as Excel
  tablectl export --view committee-member --format xlsx --filter State=VA

  # Committees as CSV on stdout
  tablectl export --view committees -o -`
	return cmd
}

func newExportAllCommand() *cobra.Command {
	var (
		format   string
		dir      string
		parallel int
	)

	cmd := &cobra.Command{
		Use:   "export-all",
		Short: "Export every view into a directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := table.ParseFormat(format)
			if err != nil {
				return err
			}
			if parallel < 1 {
				parallel = 1
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}

			rt, err := openApp(cmd.Context(), parallel)
			if err != nil {
				return err
			}
			defer rt.Close()

			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(parallel)
			for _, cfg := range views.All() {
				g.Go(func() error {
					path := filepath.Join(dir, cfg.Export.FileName(cfg.Key, f))
					n, err := exportFile(ctx, rt, cfg.Key, f, path)
					if err != nil {
						return fmt.Errorf("%s: %w", cfg.Key, err)
					}
					fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d records to %s\n", n, path)
					return nil
				})
			}
			return g.Wait()
		},
	}

	cmd.Flags().StringVar(&format, "format", "xlsx", "Export format: xlsx|pdf|csv")
	cmd.Flags().StringVar(&dir, "dir", ".", "Output directory")
	cmd.Flags().IntVar(&parallel, "parallel", 2, "Views exported at once")
	return cmd
}

func exportFile(ctx context.Context, rt *app, key string, f table.Format, path string) (int, error) {
	file, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	n, err := exportView(ctx, rt, key, f, viewQuery{}, file)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
	}
	return n, err
}

// exportView loads key, applies q and writes the export. It returns the
// number of exported records.
func exportView(ctx context.Context, rt *app, key string, f table.Format, q viewQuery, w io.Writer) (int, error) {
	inst, err := rt.load(ctx, key)
	if err != nil {
		return 0, err
	}
	defer rt.service.Unmount(key, inst.ID.String())

	if err := q.apply(inst.View); err != nil {
		return 0, err
	}
	n := len(inst.View.ExportRecords())
	if err := rt.service.Export(ctx, inst, f, w); err != nil {
		return 0, err
	}
	slog.Debug("exported view", "view", key, "format", string(f), "records", n)
	return n, nil
}
