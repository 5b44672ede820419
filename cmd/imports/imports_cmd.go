package imports

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	graphlib "github.com/dominikbraun/graph"
	"github.com/dominikbraun/graph/draw"
	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/bagsakan/cmd/run"
)

const (
	formatText = "text"
	formatDOT  = "dot"
)

// NewCommand returns a new imports command instance.
func NewCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "imports",
		Short: "Print the resolved import graph of the scanned sources",
		Long: `Scan the configured sources and print every import edge the resolver
followed. Paths inside the project are shown relative to it.

Examples:
  bagsakan imports
  bagsakan imports --format dot | dot -Tsvg > imports.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImports(cmd, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "Output format (text, dot)")

	return cmd
}

func runImports(cmd *cobra.Command, format string) error {
	if format != formatText && format != formatDOT {
		return errors.WithHint(errors.Newf("unknown format %q", format), "supported formats: text, dot")
	}

	session, err := run.NewSession(run.EnvFromCommand(cmd))
	if err != nil {
		return err
	}
	res, err := session.Scan()
	if err != nil {
		return err
	}

	adjacency, err := relativeAdjacency(res.Registry.ImportGraph(), session.Dir)
	if err != nil {
		return err
	}
	if format == formatDOT {
		return writeDOT(cmd.OutOrStdout(), adjacency)
	}
	return writeText(cmd.OutOrStdout(), adjacency)
}

// relativeAdjacency maps each file to its sorted import targets, with paths
// under dir made relative.
func relativeAdjacency(g graphlib.Graph[string, string], dir string) (map[string][]string, error) {
	adjacency, err := g.AdjacencyMap()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read import graph")
	}
	out := make(map[string][]string, len(adjacency))
	for from, edges := range adjacency {
		targets := make([]string, 0, len(edges))
		for to := range edges {
			targets = append(targets, relative(dir, to))
		}
		sort.Strings(targets)
		out[relative(dir, from)] = targets
	}
	return out, nil
}

func relative(dir, path string) string {
	rel, err := filepath.Rel(dir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func sortedFiles(adjacency map[string][]string) []string {
	files := make([]string, 0, len(adjacency))
	for file := range adjacency {
		files = append(files, file)
	}
	sort.Strings(files)
	return files
}

func writeText(w io.Writer, adjacency map[string][]string) error {
	for _, file := range sortedFiles(adjacency) {
		if _, err := fmt.Fprintln(w, file); err != nil {
			return err
		}
		for _, target := range adjacency[file] {
			if _, err := fmt.Fprintf(w, "  -> %s\n", target); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeDOT(w io.Writer, adjacency map[string][]string) error {
	g := graphlib.New(graphlib.StringHash, graphlib.Directed())
	files := sortedFiles(adjacency)
	for _, file := range files {
		if err := g.AddVertex(file); err != nil && !errors.Is(err, graphlib.ErrVertexAlreadyExists) {
			return errors.Wrapf(err, "failed to add %s to graph", file)
		}
	}
	for _, file := range files {
		for _, target := range adjacency[file] {
			if err := g.AddEdge(file, target); err != nil && !errors.Is(err, graphlib.ErrEdgeAlreadyExists) {
				return errors.Wrapf(err, "failed to add edge %s -> %s", file, target)
			}
		}
	}
	return draw.DOT(g, w)
}
