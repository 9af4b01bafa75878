package catalog

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/algodocs/pkg/metrics"
)

//go:embed pages/*.yaml
var builtinPages embed.FS

// Builtin returns the pages shipped with the binary.
func Builtin() fs.FS {
	sub, err := fs.Sub(builtinPages, "pages")
	if err != nil {
		panic(err)
	}
	return sub
}

// LoadResult reports the outcome of one page file.
type LoadResult struct {
	// Source is the file the page came from.
	Source string
	// Path is the page path, empty on failure.
	Path string
	// Fixes lists the repairs Normalize made.
	Fixes []string
	// Error is set if the file could not be read or parsed.
	Error error
}

// Loader reads page files from the built-in set and any extra directories.
// Pages in extra directories replace built-in pages with the same path.
type Loader struct {
	builtin fs.FS
	dirs    []string
	log     *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithDirs adds directories of *.yaml page files.
func WithDirs(dirs ...string) LoaderOption {
	return func(l *Loader) { l.dirs = append(l.dirs, dirs...) }
}

// WithBuiltin replaces the built-in pages. A nil fsys disables them.
func WithBuiltin(fsys fs.FS) LoaderOption {
	return func(l *Loader) { l.builtin = fsys }
}

// WithLogger sets the logger used to report skipped files and repairs.
func WithLogger(log *slog.Logger) LoaderOption {
	return func(l *Loader) {
		if log != nil {
			l.log = log
		}
	}
}

// NewLoader returns a loader for the built-in pages plus opts.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{builtin: Builtin(), log: slog.Default()}
	for _, opt := range opts {
		opt(l)
	}
	l.log = l.log.With("component", "catalog")
	return l
}

type pageFile struct {
	name string
	read func() ([]byte, error)
}

// Load parses every page file concurrently. A bad file is skipped and
// reported in the results; only cancellation fails the load.
func (l *Loader) Load(ctx context.Context) (*Catalog, []LoadResult, error) {
	defer metrics.Timer(metrics.CatalogLoad)()
	files, listErrs := l.files()

	results := make([]LoadResult, len(files))
	pages := make([]Page, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, f := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, fixes, err := parsePage(f)
			results[i] = LoadResult{Source: f.name, Path: p.Path, Fixes: fixes, Error: err}
			pages[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, results, fmt.Errorf("loading catalog: %w", err)
	}

	var loaded []Page
	for i, r := range results {
		if r.Error != nil {
			l.log.Warn("skipping page file", "file", r.Source, "err", r.Error)
			continue
		}
		for _, fix := range r.Fixes {
			l.log.Warn("repaired page", "file", r.Source, "page", r.Path, "fix", fix)
		}
		loaded = append(loaded, pages[i])
	}
	results = append(results, listErrs...)
	for _, r := range listErrs {
		l.log.Warn("skipping page directory", "dir", r.Source, "err", r.Error)
	}

	l.log.Debug("catalog loaded", "pages", len(loaded), "files", len(files))
	return New(loaded...), results, nil
}

func (l *Loader) files() ([]pageFile, []LoadResult) {
	var files []pageFile
	var errs []LoadResult

	if l.builtin != nil {
		names, err := fs.Glob(l.builtin, "*.yaml")
		if err != nil {
			errs = append(errs, LoadResult{Source: "builtin", Error: err})
		}
		sort.Strings(names)
		for _, name := range names {
			fsys, name := l.builtin, name
			files = append(files, pageFile{
				name: path.Join("builtin", name),
				read: func() ([]byte, error) { return fs.ReadFile(fsys, name) },
			})
		}
	}

	for _, dir := range l.dirs {
		entries, err := os.ReadDir(dir)
		if errors.Is(err, fs.ErrNotExist) {
			l.log.Debug("page directory absent", "dir", dir)
			continue
		}
		if err != nil {
			errs = append(errs, LoadResult{Source: dir, Error: err})
			continue
		}
		for _, e := range entries {
			ext := strings.ToLower(filepath.Ext(e.Name()))
			if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
				continue
			}
			full := filepath.Join(dir, e.Name())
			files = append(files, pageFile{
				name: full,
				read: func() ([]byte, error) { return os.ReadFile(full) },
			})
		}
	}
	return files, errs
}

func parsePage(f pageFile) (Page, []string, error) {
	data, err := f.read()
	if err != nil {
		return Page{}, nil, err
	}
	var p Page
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Page{}, nil, fmt.Errorf("parsing %s: %w", f.name, err)
	}
	if p.Path == "" {
		stem := strings.TrimSuffix(path.Base(filepath.ToSlash(f.name)), path.Ext(f.name))
		p.Path = "/docs/" + stem
	}
	return p, Normalize(&p), nil
}
