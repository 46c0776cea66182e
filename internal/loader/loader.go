// Package loader reads vehicle definition documents from disk.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"attachsearch/internal/domain"
)

// Options configures an XMLLoader.
type Options struct {
	// Workers bounds concurrent file parses. Zero means GOMAXPROCS.
	Workers int
	// Strict fails the whole load on the first malformed document instead
	// of skipping it.
	Strict bool
	// Extensions are the file suffixes picked up when walking directories.
	Extensions []string
	Logger     *log.Logger
}

// XMLLoader implements domain.VehicleLoader over vehicle XML files.
type XMLLoader struct {
	workers    int
	strict     bool
	extensions []string
	log        *log.Logger
}

var _ domain.VehicleLoader = (*XMLLoader)(nil)

// NewXMLLoader creates a loader with defaults applied.
func NewXMLLoader(opts Options) *XMLLoader {
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = []string{".xml"}
	}
	exts := make([]string, len(opts.Extensions))
	for i, e := range opts.Extensions {
		e = strings.ToLower(e)
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		exts[i] = e
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &XMLLoader{workers: opts.Workers, strict: opts.Strict, extensions: exts, log: opts.Logger}
}

// Load parses every vehicle document reachable from paths. Each path may be
// a directory (walked recursively), a file, or a glob pattern. Vehicles come
// back in discovery order regardless of how parsing was scheduled.
func (l *XMLLoader) Load(ctx context.Context, paths []string) ([]*domain.Vehicle, domain.LoadReport, error) {
	files, err := l.Discover(paths)
	if err != nil {
		return nil, domain.LoadReport{}, err
	}
	l.log.Debug("discovered documents", "files", len(files))

	type outcome struct {
		parsed Parsed
		err    error
	}
	results := make([]outcome, len(files))
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p, err := l.parseFile(path)
			if err != nil && l.strict && !errors.Is(err, domain.ErrNotVehicle) {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = outcome{parsed: p, err: err}
			l.log.Debug("parsed", "file", path, "done", done.Add(1), "total", len(files))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, domain.LoadReport{}, err
	}

	report := domain.LoadReport{Files: len(files)}
	vehicles := make([]*domain.Vehicle, 0, len(files))
	for i, r := range results {
		switch {
		case errors.Is(r.err, domain.ErrNotVehicle):
			report.Ignored++
		case r.err != nil:
			report.Issues = append(report.Issues, domain.LoadIssue{Path: files[i], Reason: r.err.Error()})
			l.log.Warn("skipped document", "file", files[i], "err", r.err)
		default:
			if r.parsed.Dropped > 0 {
				reason := fmt.Sprintf("dropped %d joint(s) without jointType", r.parsed.Dropped)
				report.Issues = append(report.Issues, domain.LoadIssue{Path: files[i], Reason: reason})
				l.log.Warn("dropped untyped joints", "file", files[i], "count", r.parsed.Dropped)
			}
			vehicles = append(vehicles, r.parsed.Vehicle)
		}
	}
	report.Vehicles = len(vehicles)
	return vehicles, report, nil
}

func (l *XMLLoader) parseFile(path string) (Parsed, error) {
	f, err := os.Open(path)
	if err != nil {
		return Parsed{}, err
	}
	defer f.Close()
	return Parse(f, path, l.strict)
}

// Discover expands paths into the ordered, de-duplicated list of documents
// to parse. Directory walks are lexical; glob matches are sorted.
func (l *XMLLoader) Discover(paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	add := func(p string) {
		p = filepath.Clean(p)
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		files = append(files, p)
	}

	for _, p := range paths {
		matches, err := filepath.Glob(p)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", p, err)
		}
		if matches == nil {
			matches = []string{p}
		}
		for _, m := range matches {
			info, err := os.Stat(m)
			if err != nil {
				return nil, err
			}
			if !info.IsDir() {
				add(m)
				continue
			}
			err = filepath.WalkDir(m, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if !d.IsDir() && l.wanted(path) {
					add(path)
				}
				return nil
			})
			if err != nil {
				return nil, fmt.Errorf("walk %s: %w", m, err)
			}
		}
	}
	return files, nil
}

func (l *XMLLoader) wanted(path string) bool {
	return slices.Contains(l.extensions, strings.ToLower(filepath.Ext(path)))
}
