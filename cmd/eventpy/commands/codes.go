package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/eventpy/eventpy/internal/config"
	"github.com/eventpy/eventpy/internal/registry"
)

var codesVariant string

var codesCmd = &cobra.Command{
	Use:   "codes",
	Short: "List the command codes of a variant",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		name := codesVariant
		if name == "" {
			name = config.GetString("variant")
		}
		v, err := registry.ParseVariant(name)
		if err != nil {
			return err
		}
		return printCodes(cmd.OutOrStdout(), registry.Default(v))
	},
}

func init() {
	codesCmd.Flags().StringVar(&codesVariant, "variant", "", "engine generation: mv or mz")
}

func printCodes(out io.Writer, t *registry.Table) error {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "CODE\tKIND\tROLE\tFAMILY\tPARAMS")
	for _, e := range t.Entries() {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", e.Code, e.Kind, e.Role, e.Family, paramRange(e))
	}
	return w.Flush()
}

func paramRange(e registry.Entry) string {
	switch {
	case e.MaxParams == registry.Unbounded:
		return fmt.Sprintf("%d+", e.MinParams)
	case e.MinParams == e.MaxParams:
		return fmt.Sprint(e.MinParams)
	default:
		return fmt.Sprintf("%d-%d", e.MinParams, e.MaxParams)
	}
}
