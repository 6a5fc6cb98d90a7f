package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"mercator-hq/rustalize/pkg/cli"
	"mercator-hq/rustalize/pkg/decl/ast"
	"mercator-hq/rustalize/pkg/decl/export"
)

const formatTree cli.OutputFormat = "tree"

var parseFlags struct {
	expr   string
	format string
	color  string
}

var parseCmd = &cobra.Command{
	Use:   "parse [file...]",
	Short: "Parse declarations and print their trees",
	Long: `Parse trait, struct, and enum declarations and print the result.

Each file may hold several declarations; each one ends at the brace that
closes its body. Use "-" to read from standard input.

Examples:
  # Print trees for a file
  rustalize parse shapes.rs

  # Parse one declaration from the command line
  rustalize parse --expr "pub enum Color { Red, Green, Blue }"

  # Export as YAML or JSON
  rustalize parse shapes.rs --format yaml

  # Force colored output
  rustalize parse shapes.rs --color`,
	RunE: parseDeclarations,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseFlags.expr, "expr", "e", "", "declaration text to parse")
	parseCmd.Flags().StringVar(&parseFlags.format, "format", "tree", "output format: tree, yaml, json")
	parseCmd.Flags().StringVar(&parseFlags.color, "color", "", "color mode: auto, always, never (default: render.color)")
	parseCmd.Flags().Lookup("color").NoOptDefVal = "always"
}

func parseDeclarations(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(parseFlags.format, formatTree, cli.FormatYAML, cli.FormatJSON)
	if err != nil {
		return cli.NewCommandError("parse", err)
	}
	if parseFlags.expr == "" && len(args) == 0 {
		return cli.NewCommandError("parse", fmt.Errorf("either --expr or at least one file must be specified"))
	}

	e, err := setup(cmd)
	if err != nil {
		return err
	}
	p := e.newParser()

	var nodes []*ast.Node
	if parseFlags.expr != "" {
		node, err := p.Parse(parseFlags.expr)
		if err != nil {
			return cli.NewFindingsError("parse", err)
		}
		nodes = append(nodes, node)
	}

	for _, path := range args {
		var parsed []*ast.Node
		if path == "-" {
			data, readErr := io.ReadAll(cmd.InOrStdin())
			if readErr != nil {
				return cli.NewCommandError("parse", fmt.Errorf("failed to read stdin: %w", readErr))
			}
			parsed, err = p.ParseAll("<stdin>", string(data))
		} else {
			parsed, err = p.ParseFile(path)
		}
		if err != nil {
			return cli.NewFindingsError("parse", err)
		}
		nodes = append(nodes, parsed...)
	}

	e.logger.DebugContext(e.ctx, "declarations parsed", "count", len(nodes))

	switch format {
	case cli.FormatYAML:
		return writeDocument(e.out, export.YAML, nodes)
	case cli.FormatJSON:
		return writeDocument(e.out, export.JSON, nodes)
	}

	renderer := e.newRenderer(parseFlags.color)
	for i, node := range nodes {
		if i > 0 {
			fmt.Fprintln(e.out)
		}
		if err := renderer.Render(e.out, node); err != nil {
			return cli.NewCommandError("parse", err)
		}
	}
	return nil
}

func writeDocument(w io.Writer, encode func(...*ast.Node) ([]byte, error), nodes []*ast.Node) error {
	data, err := encode(nodes...)
	if err != nil {
		return cli.NewCommandError("parse", err)
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	if _, err := w.Write(data); err != nil {
		return cli.NewCommandError("parse", err)
	}
	return nil
}
