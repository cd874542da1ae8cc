package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	mdwerror "github.com/msto63/radscene/foundation/core/error"
	mdwlog "github.com/msto63/radscene/foundation/core/log"
	"github.com/msto63/radscene/foundation/rad/parser"
	"github.com/msto63/radscene/internal/render"
	"github.com/msto63/radscene/internal/source"
	"github.com/msto63/radscene/internal/store"
	"github.com/msto63/radscene/internal/watch"
	"github.com/msto63/radscene/pkg/core/cache"
)

// parseCache holds results per input text so watch and reload cycles with
// known content skip parsing
var parseCache = cache.New[*parser.Result](cache.DefaultConfig())

var (
	parseFormat string
	parseOutput string
	parseWatch  bool
	parseStore  bool
	parseStats  bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [dateien|verzeichnisse|-]...",
	Short: "Parst Radiance Szenen",
	Long: `Liest Radiance Szenenbeschreibungen und gibt die enthaltenen
Primitive aus.

Eingaben:
  datei.rad      einzelne Datei
  verzeichnis/   alle Dateien mit bekannter Endung (nicht rekursiv)
  -              Standardeingabe (default ohne Argumente)

Mehrere Eingaben werden in der angegebenen Reihenfolge zusammengefuegt.

Formate:
  json    JSON-Array (default)
  jsonl   ein Objekt pro Zeile
  yaml    YAML-Liste
  text    Tabelle mit Typ-Zusammenfassung`,
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "",
		"Ausgabeformat: json, jsonl, yaml, text (default aus Config)")
	parseCmd.Flags().StringVarP(&parseOutput, "output", "o", "",
		"Ausgabedatei (default: stdout)")
	parseCmd.Flags().BoolVar(&parseWatch, "watch", false,
		"Eingaben beobachten und bei Aenderung neu parsen")
	parseCmd.Flags().BoolVar(&parseStore, "store", false,
		"Ergebnis zusaetzlich im Scene Store speichern")
	parseCmd.Flags().BoolVar(&parseStats, "stats", false,
		"Typ-Zusammenfassung auf stderr ausgeben")
}

func runParse(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{source.Stdin}
	}

	renderer, err := newRenderer(parseFormat)
	if err != nil {
		return err
	}

	if parseWatch {
		for _, arg := range args {
			if arg == source.Stdin {
				return mdwerror.New("--watch cannot read standard input").
					WithCode(mdwerror.CodeInvalidInput).
					WithOperation("parse")
			}
		}
	}

	var sceneStore *store.SQLiteSceneStore
	if parseStore {
		sceneStore, err = openStore()
		if err != nil {
			return err
		}
		defer sceneStore.Close()
	}

	cycle := &parseCycle{
		reader:   newReader(cmd.InOrStdin()),
		args:     args,
		renderer: renderer,
		stdout:   cmd.OutOrStdout(),
		stderr:   cmd.ErrOrStderr(),
		store:    sceneStore,
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if _, err := cycle.run(ctx, false); err != nil {
		return err
	}
	if !parseWatch {
		return nil
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := watch.New(watch.Config{
		Paths:    args,
		Match:    cycle.reader.HasSceneExtension,
		Debounce: appConfig.Input.WatchDebounce.Duration,
		OnChange: func(ctx context.Context) {
			if _, err := cycle.run(ctx, true); err != nil {
				appLogger.LogError(err)
			}
		},
		Logger: componentLogger("watch"),
	})
	if err != nil {
		return err
	}

	appLogger.Info("Watching inputs", mdwlog.Fields{"paths": strings.Join(args, ",")})
	return watcher.Run(ctx)
}

// parseCycle reads, parses and writes the inputs once per call. lastKey is
// the content key of the last complete write.
type parseCycle struct {
	reader   *source.Reader
	args     []string
	renderer render.Renderer
	stdout   io.Writer
	stderr   io.Writer
	store    *store.SQLiteSceneStore
	lastKey  string
}

// run reports whether output was written. With skipUnchanged a cycle whose
// content matches the last write does nothing.
func (c *parseCycle) run(ctx context.Context, skipUnchanged bool) (bool, error) {
	result, docs, key, err := parseInputs(ctx, c.reader, c.args)
	if err != nil {
		return false, err
	}
	if skipUnchanged && key == c.lastKey {
		appLogger.Debug("Inputs unchanged, output skipped")
		return false, nil
	}

	if err := writeRecords(c.stdout, c.renderer, result); err != nil {
		return false, err
	}

	if parseStats {
		printStats(c.stderr, result)
	}

	if c.store != nil {
		saved, err := c.store.SaveRun(ctx, source.Paths(docs), result.Primitives)
		if err != nil {
			return true, err
		}
		appLogger.Info("Run stored", mdwlog.Fields{"run_id": saved.ID, "records": saved.RecordCount})
	}

	c.lastKey = key
	return true, nil
}

func newRenderer(format string) (render.Renderer, error) {
	if format == "" {
		format = appConfig.Output.Format
	}
	return render.ForFormat(format, render.Options{
		Pretty: appConfig.IsPretty(),
		Indent: appConfig.Indent(),
	})
}

func newReader(stdin io.Reader) *source.Reader {
	return source.NewReader(source.Config{
		Extensions:     appConfig.Input.Extensions,
		MaxConcurrency: appConfig.Input.MaxConcurrency,
		Stdin:          stdin,
		Logger:         componentLogger("source"),
	})
}

func openStore() (*store.SQLiteSceneStore, error) {
	return store.NewSQLiteSceneStore(store.SQLiteSceneConfig{Path: appConfig.Store.Path})
}

// parseInputs reads every input and parses the joined text. It also returns
// the content key of that text.
func parseInputs(ctx context.Context, reader *source.Reader, args []string) (*parser.Result, []source.Document, string, error) {
	text, docs, err := reader.Read(ctx, args)
	if err != nil {
		return nil, nil, "", err
	}

	key := cache.ContentKey(text)
	result, cached, err := parseCache.GetOrSet(key, func() (*parser.Result, error) {
		p, err := parser.New(parser.Options{
			Logger: appLogger,
			Source: strings.Join(source.Paths(docs), ","),
		})
		if err != nil {
			return nil, err
		}
		return p.Parse(text), nil
	})
	if err != nil {
		return nil, nil, "", err
	}
	if cached {
		appLogger.Debug("Parse result reused", mdwlog.Fields{"records": len(result.Primitives)})
	}
	return result, docs, key, nil
}

// writeRecords renders into memory first so -o never leaves a partial file
func writeRecords(stdout io.Writer, renderer render.Renderer, result *parser.Result) error {
	var buf bytes.Buffer
	if err := renderer.Render(&buf, result.Primitives); err != nil {
		return err
	}

	if parseOutput == "" {
		_, err := stdout.Write(buf.Bytes())
		return err
	}

	if err := os.WriteFile(parseOutput, buf.Bytes(), 0644); err != nil {
		return mdwerror.Wrap(err, "failed to write output").
			WithCode(mdwerror.CodeRenderError).
			WithDetail("path", parseOutput).
			WithOperation("parse")
	}
	appLogger.Debug("Output written", mdwlog.Fields{"path": parseOutput, "bytes": buf.Len()})
	return nil
}

func printStats(w io.Writer, result *parser.Result) {
	stats := result.Stats
	fmt.Fprintf(w, "Segmente: %d  Objekte: %d  Verworfen: %d  Eckpunkte: %d\n",
		stats.Segments, stats.Records, stats.Dropped, stats.Vertices)
	for _, tc := range render.TypeSummary(result.Primitives) {
		fmt.Fprintf(w, "  %-16s %d\n", tc.Type, tc.Count)
	}
}
