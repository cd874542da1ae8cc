package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	mdwlog "github.com/msto63/radscene/foundation/core/log"
)

var (
	storeListLimit int
	storeFormat    string
	storeOlderThan time.Duration
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Verwaltet gespeicherte Parse-Laeufe",
	Long: `Verwaltet die mit 'radscene parse --store' gespeicherten Laeufe.

Der Scene Store ist eine SQLite-Datenbank (Pfad aus [store] path).`,
}

var storeListCmd = &cobra.Command{
	Use:   "list",
	Short: "Listet gespeicherte Laeufe (neueste zuerst)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		runs, err := st.ListRuns(cmd.Context(), storeListLimit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(runs) == 0 {
			fmt.Fprintln(out, "Keine gespeicherten Laeufe.")
			return nil
		}

		fmt.Fprintf(out, "%-36s  %-19s  %7s  %s\n", "ID", "ERSTELLT", "OBJEKTE", "QUELLEN")
		for _, run := range runs {
			fmt.Fprintf(out, "%-36s  %-19s  %7d  %s\n",
				run.ID,
				run.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				run.RecordCount,
				strings.Join(run.Sources, ", "))
		}
		return nil
	},
}

var storeShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Gibt die Objekte eines Laufs aus",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		renderer, err := newRenderer(storeFormat)
		if err != nil {
			return err
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		prims, err := st.LoadRun(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return renderer.Render(cmd.OutOrStdout(), prims)
	},
}

var storeDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Loescht einen Lauf",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.DeleteRun(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Lauf %s geloescht.\n", args[0])
		return nil
	},
}

var storeStatsCmd = &cobra.Command{
	Use:   "stats <id>",
	Short: "Zeigt die Anzahl der Objekte pro Typ",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		run, err := st.GetRun(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		counts, err := st.TypeStats(cmd.Context(), run.ID)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Lauf %s (%d Objekte)\n", run.ID, run.RecordCount)
		for _, tc := range counts {
			fmt.Fprintf(out, "  %-16s %d\n", tc.Type, tc.Count)
		}
		return nil
	},
}

var storePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Loescht alte Laeufe und komprimiert die Datenbank",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		removed, err := st.Prune(cmd.Context(), storeOlderThan)
		if err != nil {
			return err
		}
		if err := st.Vacuum(cmd.Context()); err != nil {
			return err
		}

		appLogger.Info("Store pruned", mdwlog.Fields{"removed": removed, "older_than": storeOlderThan.String()})
		fmt.Fprintf(cmd.OutOrStdout(), "%d Laeufe geloescht.\n", removed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(storeCmd)
	storeCmd.AddCommand(storeListCmd, storeShowCmd, storeDeleteCmd, storeStatsCmd, storePruneCmd)

	storeListCmd.Flags().IntVarP(&storeListLimit, "limit", "n", 20, "Maximale Anzahl Laeufe")
	storeShowCmd.Flags().StringVarP(&storeFormat, "format", "f", "", "Ausgabeformat: json, jsonl, yaml, text")
	storePruneCmd.Flags().DurationVar(&storeOlderThan, "older-than", 30*24*time.Hour, "Laeufe aelter als diese Dauer loeschen")
}
