// ============================================================================
// radscene - Radiance Scene Toolkit
// ============================================================================
//
// Package:     source
// Description: Reads scene files concurrently and joins them in input order
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package source

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	mdwerror "github.com/msto63/radscene/foundation/core/error"
	"github.com/msto63/radscene/pkg/core/logging"
)

// Stdin is the argument that selects standard input
const Stdin = "-"

// Document is the text of one input
type Document struct {
	Path string
	Text string
}

// Config holds reader settings
type Config struct {
	// Extensions selects files inside directory arguments
	Extensions []string

	// MaxConcurrency limits parallel reads (default: 4)
	MaxConcurrency int

	// Stdin replaces os.Stdin for the "-" argument
	Stdin io.Reader

	Logger *logging.Logger
}

// Reader reads scene inputs
type Reader struct {
	extensions     []string
	maxConcurrency int
	stdin          io.Reader
	logger         *logging.Logger
}

// NewReader creates a new reader
func NewReader(cfg Config) *Reader {
	if cfg.MaxConcurrency < 1 {
		cfg.MaxConcurrency = 4
	}
	if cfg.Stdin == nil {
		cfg.Stdin = os.Stdin
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.New("source")
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = []string{".rad"}
	}

	return &Reader{
		extensions:     cfg.Extensions,
		maxConcurrency: cfg.MaxConcurrency,
		stdin:          cfg.Stdin,
		logger:         cfg.Logger,
	}
}

// Expand resolves directory arguments to the matching files inside them,
// sorted by name. Other arguments are returned unchanged.
func (r *Reader) Expand(args []string) ([]string, error) {
	paths := make([]string, 0, len(args))
	for _, arg := range args {
		if arg == Stdin {
			paths = append(paths, arg)
			continue
		}

		info, err := os.Stat(arg)
		if err != nil {
			return nil, readError(err, arg)
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, readError(err, arg)
		}

		var matched []string
		for _, entry := range entries {
			if entry.IsDir() || !r.HasSceneExtension(entry.Name()) {
				continue
			}
			matched = append(matched, filepath.Join(arg, entry.Name()))
		}
		sort.Strings(matched)

		if len(matched) == 0 {
			r.logger.Warn("Directory contains no scene files", "dir", arg, "extensions", strings.Join(r.extensions, " "))
		}
		paths = append(paths, matched...)
	}
	return paths, nil
}

// HasSceneExtension reports whether name ends in one of the configured
// extensions
func (r *Reader) HasSceneExtension(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range r.extensions {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

// ReadAll reads every path concurrently. The documents keep the order of
// paths. The first failure cancels pending reads and is returned; no
// partial result is returned with it.
func (r *Reader) ReadAll(ctx context.Context, paths []string) ([]Document, error) {
	stdinCount := 0
	for _, path := range paths {
		if path == Stdin {
			stdinCount++
		}
	}
	if stdinCount > 1 {
		return nil, mdwerror.New("standard input given more than once").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("source.ReadAll")
	}

	docs := make([]Document, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.maxConcurrency)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			text, err := r.readOne(path)
			if err != nil {
				return err
			}
			docs[i] = Document{Path: path, Text: text}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, doc := range docs {
		r.logger.Debug("Source read", "path", doc.Path, "bytes", len(doc.Text))
	}
	return docs, nil
}

// Read expands args, reads them and joins their text with newlines
func (r *Reader) Read(ctx context.Context, args []string) (string, []Document, error) {
	paths, err := r.Expand(args)
	if err != nil {
		return "", nil, err
	}

	docs, err := r.ReadAll(ctx, paths)
	if err != nil {
		return "", nil, err
	}
	return Join(docs), docs, nil
}

func (r *Reader) readOne(path string) (string, error) {
	if path == Stdin {
		data, err := io.ReadAll(r.stdin)
		if err != nil {
			return "", readError(err, "<stdin>")
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", readError(err, path)
	}
	return string(data), nil
}

// Join concatenates document texts with a newline between documents
func Join(docs []Document) string {
	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Text
	}
	return strings.Join(texts, "\n")
}

// Paths returns the paths of docs in order
func Paths(docs []Document) []string {
	paths := make([]string, len(docs))
	for i, doc := range docs {
		paths[i] = doc.Path
	}
	return paths
}

func readError(err error, path string) error {
	return mdwerror.Wrap(err, "failed to read "+path).
		WithCode(mdwerror.CodeFileRead).
		WithDetail("path", path).
		WithOperation("source.Read")
}
