package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gvmanaged/pkg/diagram"
)

func newKindsCmd() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "kinds [prefix]",
		Short: "List the diagram node kinds",
		Long: `List the node kinds diagram manifests can use, grouped by namespace.

Kinds are written without the "diagrams." package prefix, which diagram nodes
add by default. An optional prefix filters the list, e.g. "aws.compute".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix := ""
			if len(args) == 1 {
				prefix = args[0]
			}
			kinds := diagram.Filter(diagram.Kinds(), prefix)
			if len(kinds) == 0 {
				printWarning("No kinds match %q", prefix)
				return nil
			}
			if plain {
				for _, k := range kinds {
					fmt.Fprintln(cmd.OutOrStdout(), k)
				}
				return nil
			}
			printKinds(cmd.OutOrStdout(), kinds)
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print one kind per line without styling")
	return cmd
}

// printKinds prints kinds grouped by namespace. kinds must be sorted.
func printKinds(w io.Writer, kinds []string) {
	current := ""
	for _, k := range kinds {
		i := strings.LastIndexByte(k, '.')
		ns, symbol := k[:i], k[i+1:]
		if ns != current {
			if current != "" {
				fmt.Fprintln(w)
			}
			fmt.Fprintln(w, StyleTitle.Render(ns))
			current = ns
		}
		fmt.Fprintln(w, "  "+StyleValue.Render(symbol))
	}
}
