package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newDownloadCmd is a stub surface: fetching HPO ontology releases and
// disease annotation corpora (phenotype.hpoa, the various inheritance and
// gene-to-phenotype files) is delegated to an external helper outside this
// engine's scope. The subcommand exists so `lirical download --help`
// documents where that data belongs.
func newDownloadCmd() *cobra.Command {
	var assembly string

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Print where to obtain HPO/disease annotation data (not implemented)",
		Long: `lirical does not fetch HPO releases or disease annotation corpora itself.

Populate --data-dir with:
  hpo-ontology.yaml    is_a edges, term names, and obsolete-id aliases
  disease-corpus.yaml  disease phenotype annotations, inheritance modes,
                        gene links, and gene background rates

Both files use the YAML layouts read by lirical's fixture loader; no
converter from the official HPO and HPOA releases is included.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "lirical download does not fetch data automatically for assembly %s; see --help\n", assembly)
			return nil
		},
	}

	cmd.Flags().StringVar(&assembly, "assembly", "hg38", "genome assembly (informational only)")
	return cmd
}
