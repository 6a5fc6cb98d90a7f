package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"mercator-hq/rustalize/pkg/catalog"
	"mercator-hq/rustalize/pkg/cli"
)

var catalogFlags struct {
	kind   string
	name   string
	file   string
	limit  int
	offset int
	format string
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Query the declaration catalog",
	Long: `Query declarations recorded by the index command.

Subcommands:
  list  - List records with filters
  show  - Print one record and its document

Examples:
  # List every trait
  rustalize catalog list --kind trait

  # Find declarations whose name contains "Point"
  rustalize catalog list --name Point --format json

  # Show one record
  rustalize catalog show 1b4e28ba-2fa1-11d2-883f-0016d3cca427`,
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog records",
	RunE:  listCatalog,
}

var catalogShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show a catalog record",
	Args:  cobra.ExactArgs(1),
	RunE:  showCatalog,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogListCmd, catalogShowCmd)

	catalogListCmd.Flags().StringVar(&catalogFlags.kind, "kind", "", "filter by kind: trait, struct, enum")
	catalogListCmd.Flags().StringVar(&catalogFlags.name, "name", "", "filter by name substring")
	catalogListCmd.Flags().StringVar(&catalogFlags.file, "file", "", "filter by source file")
	catalogListCmd.Flags().IntVar(&catalogFlags.limit, "limit", catalog.DefaultQueryLimit, "max results")
	catalogListCmd.Flags().IntVar(&catalogFlags.offset, "offset", 0, "pagination offset")
	catalogListCmd.Flags().StringVar(&catalogFlags.format, "format", "text", "output format: text, json, yaml")

	catalogShowCmd.Flags().StringVar(&catalogFlags.format, "format", "text", "output format: text, json, yaml")
}

// recordTable prints records as aligned columns.
type recordTable []*catalog.Record

func (t recordTable) write(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tKIND\tNAME\tMEMBERS\tFILE")
	for _, r := range t {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", r.ID, r.Kind, r.Name, r.Members, r.File)
	}
	return tw.Flush()
}

func listCatalog(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(catalogFlags.format, cli.FormatText, cli.FormatJSON, cli.FormatYAML)
	if err != nil {
		return cli.NewCommandError("catalog list", err)
	}
	switch catalogFlags.kind {
	case "", "trait", "struct", "enum":
	default:
		return cli.NewCommandError("catalog list", fmt.Errorf("invalid kind %q: must be 'trait', 'struct', or 'enum'", catalogFlags.kind))
	}

	e, err := setup(cmd)
	if err != nil {
		return err
	}

	store, err := e.openCatalog()
	if err != nil {
		return cli.NewCommandError("catalog list", err)
	}
	defer store.Close()

	q := &catalog.Query{
		Kind:   catalogFlags.kind,
		Name:   catalogFlags.name,
		File:   catalogFlags.file,
		Limit:  catalogFlags.limit,
		Offset: catalogFlags.offset,
	}
	records, err := store.List(e.ctx, q)
	if err != nil {
		return cli.NewCommandError("catalog list", err)
	}

	if format != cli.FormatText {
		if err := cli.NewFormatter(format).FormatTo(e.out, records); err != nil {
			return cli.NewCommandError("catalog list", err)
		}
		return nil
	}

	total, err := store.Count(e.ctx, q)
	if err != nil {
		return cli.NewCommandError("catalog list", err)
	}
	if err := recordTable(records).write(e.out); err != nil {
		return cli.NewCommandError("catalog list", err)
	}
	fmt.Fprintf(e.out, "\nShowing %d of %d record(s)\n", len(records), total)
	return nil
}

func showCatalog(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(catalogFlags.format, cli.FormatText, cli.FormatJSON, cli.FormatYAML)
	if err != nil {
		return cli.NewCommandError("catalog show", err)
	}

	e, err := setup(cmd)
	if err != nil {
		return err
	}

	store, err := e.openCatalog()
	if err != nil {
		return cli.NewCommandError("catalog show", err)
	}
	defer store.Close()

	record, err := store.Get(e.ctx, args[0])
	if errors.Is(err, catalog.ErrNotFound) {
		return cli.NewFindingsError("catalog show", fmt.Errorf("no record with ID %q", args[0]))
	}
	if err != nil {
		return cli.NewCommandError("catalog show", err)
	}

	if format != cli.FormatText {
		if err := cli.NewFormatter(format).FormatTo(e.out, record); err != nil {
			return cli.NewCommandError("catalog show", err)
		}
		return nil
	}

	fmt.Fprintf(e.out, "ID:         %s\n", record.ID)
	fmt.Fprintf(e.out, "Kind:       %s\n", record.Kind)
	fmt.Fprintf(e.out, "Name:       %s\n", record.Name)
	fmt.Fprintf(e.out, "File:       %s\n", record.File)
	fmt.Fprintf(e.out, "Members:    %d\n", record.Members)
	fmt.Fprintf(e.out, "Hash:       %s\n", record.Hash)
	fmt.Fprintf(e.out, "Indexed at: %s\n", record.IndexedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(e.out, "\n%s", record.Document)
	return nil
}
