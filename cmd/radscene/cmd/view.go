package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/msto63/radscene/internal/source"
	"github.com/msto63/radscene/internal/tui/sceneviewer"
)

var viewRunID string

var viewCmd = &cobra.Command{
	Use:   "view [dateien...]",
	Short: "Startet den interaktiven Scene Viewer",
	Long: `Startet den interaktiven Scene Viewer.

Ohne --run werden die angegebenen Dateien gelesen und geparst,
mit --run wird ein gespeicherter Lauf aus dem Scene Store geladen.

Tastenkuerzel:
  Tab / 1-3   Filter (1=ALLE, 2=POLYGON, 3=GENERIC)
  /           Nach Namen suchen (Enter uebernimmt, Esc leert)
  Enter       Details (Objekt als JSON) ein/aus
  g / G       Zum Anfang / Ende springen
  PgUp/PgDn   Scrollen
  r           Neu laden
  q / Ctrl+C  Beenden`,
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)

	viewCmd.Flags().StringVar(&viewRunID, "run", "", "ID eines gespeicherten Laufs")
}

func runView(cmd *cobra.Command, args []string) error {
	// the alt screen owns the terminal while the viewer runs
	appLogger = appLogger.WithOutput(io.Discard)

	return sceneviewer.Run(sceneviewer.Config{Load: viewLoader(cmd.InOrStdin(), viewRunID, args)})
}

// viewLoader loads a stored run when runID is set and parses the inputs
// otherwise
func viewLoader(stdin io.Reader, runID string, args []string) sceneviewer.LoadFunc {
	if runID != "" {
		return loadStoredRun(runID)
	}

	if len(args) == 0 {
		args = []string{"."}
	}
	reader := newReader(stdin)

	return func(ctx context.Context) (*sceneviewer.Scene, error) {
		result, docs, _, err := parseInputs(ctx, reader, args)
		if err != nil {
			return nil, err
		}
		return &sceneviewer.Scene{
			Source:     joinPaths(source.Paths(docs)),
			Primitives: result.Primitives,
		}, nil
	}
}

func loadStoredRun(id string) sceneviewer.LoadFunc {
	return func(ctx context.Context) (*sceneviewer.Scene, error) {
		st, err := openStore()
		if err != nil {
			return nil, err
		}
		defer st.Close()

		run, err := st.GetRun(ctx, id)
		if err != nil {
			return nil, err
		}
		prims, err := st.LoadRun(ctx, id)
		if err != nil {
			return nil, err
		}
		return &sceneviewer.Scene{
			Source:     "Lauf " + run.ID + ": " + joinPaths(run.Sources),
			Primitives: prims,
		}, nil
	}
}

func joinPaths(paths []string) string {
	switch len(paths) {
	case 0:
		return "-"
	case 1:
		return paths[0]
	default:
		return fmt.Sprintf("%s (+%d)", paths[0], len(paths)-1)
	}
}
