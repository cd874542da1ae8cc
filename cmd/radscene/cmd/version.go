package cmd

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/msto63/radscene/pkg/core/version"
)

var versionJSON bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Zeigt die Version an",
	RunE: func(cmd *cobra.Command, args []string) error {
		info := version.Info()
		out := cmd.OutOrStdout()

		if versionJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(info)
		}

		fmt.Fprintf(out, "radscene v%s\n", info.Version)
		fmt.Fprintf(out, "  Git Commit:   %s\n", info.Commit)
		fmt.Fprintf(out, "  Build Date:   %s\n", info.BuildDate)
		fmt.Fprintf(out, "  Go Version:   %s\n", info.GoVersion)
		fmt.Fprintf(out, "  OS/Arch:      %s\n", info.Platform)
		fmt.Fprintf(out, "  Store Schema: %d\n", info.Schema)

		names := make([]string, 0, len(info.Component))
		for name := range info.Component {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(out, "  %-13s %s\n", name+":", info.Component[name])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Ausgabe als JSON")
}
