package inspector

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/maruel/natural"

	"github.com/catalystneuro/nwbinspector/pkg/core"
	"github.com/catalystneuro/nwbinspector/pkg/nwb"
)

// ReadCheckName is the check name on the ERROR message emitted for a file
// that cannot be opened or decoded.
const ReadCheckName = "read_nwbfile"

// DataFileExt is the extension of the files picked up from a directory.
const DataFileExt = ".nwb"

// InspectOptions controls a run over one or more files.
type InspectOptions struct {
	// Config reclassifies or skips checks by name.
	Config CheckConfig

	// CheckOptions overrides check tunables, keyed by check name.
	CheckOptions map[string]map[string]any

	// Select restricts the run to the named checks. It cannot be combined
	// with Ignore.
	Select []string

	// Ignore removes the named checks from the run.
	Ignore []string

	// Threshold drops findings of lower importance. ERROR and
	// PYNWB_VALIDATION findings are always kept.
	Threshold core.Importance

	// SkipValidation turns off the structural validator.
	SkipValidation bool

	Logger *slog.Logger
}

type dataFile interface {
	Read() (*nwb.NWBFile, error)
	Close() error
}

func openFile(path string) (dataFile, error) {
	return nwb.Open(path)
}

type run struct {
	checks    []*Check
	threshold core.Importance
	validate  bool
	logger    *slog.Logger
	open      func(string) (dataFile, error)
}

func newRun(checks []*Check, opts InspectOptions) (*run, error) {
	if len(opts.Select) > 0 && len(opts.Ignore) > 0 {
		return nil, &UsageError{Err: ErrSelectAndIgnore}
	}
	if !opts.Threshold.Valid() || opts.Threshold.IsAdministrative() {
		return nil, &UsageError{Err: fmt.Errorf("invalid importance threshold %s", opts.Threshold)}
	}

	checks, err := ConfigureChecks(opts.Config, checks)
	if err != nil {
		return nil, err
	}
	checks = WithOptions(checks, opts.CheckOptions)

	selected := make(map[string]bool, len(opts.Select))
	for _, n := range opts.Select {
		selected[n] = true
	}
	ignored := make(map[string]bool, len(opts.Ignore))
	for _, n := range opts.Ignore {
		ignored[n] = true
	}
	checks = slices.DeleteFunc(checks, func(c *Check) bool {
		if len(selected) > 0 && !selected[c.Name()] {
			return true
		}
		// Findings of these checks would be dropped anyway.
		return ignored[c.Name()] || c.Importance() < opts.Threshold
	})

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &run{
		checks:    checks,
		threshold: opts.Threshold,
		validate:  !opts.SkipValidation,
		logger:    logger,
		open:      openFile,
	}, nil
}

// InspectFile inspects a single data file. Option errors are returned
// before any work starts; everything else is reported in the stream.
func InspectFile(ctx context.Context, path string, checks []*Check, opts InspectOptions) (*Stream, error) {
	r, err := newRun(checks, opts)
	if err != nil {
		return nil, err
	}
	return newStream(ctx, r.file(path)), nil
}

// InspectAll inspects path, which is either a data file or a directory
// whose data files are inspected in natural order.
func InspectAll(ctx context.Context, path string, checks []*Check, opts InspectOptions) (*Stream, error) {
	r, err := newRun(checks, opts)
	if err != nil {
		return nil, err
	}
	files, err := DiscoverFiles(path)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("discovered files", slog.String("path", path), slog.Int("count", len(files)))

	return newStream(ctx, func(yield func(core.InspectorMessage) bool) {
		for _, f := range files {
			for m := range r.file(f) {
				if !yield(m) {
					return
				}
			}
		}
	}), nil
}

// DiscoverFiles expands path into the data files to inspect.
func DiscoverFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%s should be a directory or an NWB file: %w", path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", path, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != DataFileExt {
			continue
		}
		files = append(files, filepath.Join(path, e.Name()))
	}
	slices.SortFunc(files, NaturalCompare)
	return files, nil
}

// NaturalCompare orders strings so that embedded numbers compare by value:
// "f2" sorts before "f10".
func NaturalCompare(a, b string) int {
	switch {
	case natural.Less(a, b):
		return -1
	case natural.Less(b, a):
		return 1
	}
	return 0
}

func (r *run) keep(m core.InspectorMessage) bool {
	return m.Importance.IsAdministrative() || m.Importance >= r.threshold
}

// file yields the findings for one file. The file stays open only while
// the sequence is being consumed.
func (r *run) file(path string) iter.Seq[core.InspectorMessage] {
	return func(yield func(core.InspectorMessage) bool) {
		emit := func(m core.InspectorMessage) bool {
			if !r.keep(m) {
				return true
			}
			return yield(m.WithFile(path))
		}

		r.logger.Debug("inspecting file", slog.String("path", path))
		f, err := r.open(path)
		if err != nil {
			emit(r.readError(path, err))
			return
		}
		defer f.Close()

		root, err := f.Read()
		if err != nil {
			emit(r.readError(path, err))
			return
		}

		if r.validate {
			for _, ve := range nwb.Validate(root) {
				m := core.NewMessage(ve.Reason, core.PyNWBValidation,
					core.WithCheck(ve.Name), core.WithLocation(ve.Location))
				if !emit(m) {
					return
				}
			}
		}

		for m := range runChecks(root, r.checks, r.logger) {
			if !emit(m) {
				return
			}
		}
	}
}

func (r *run) readError(path string, err error) core.InspectorMessage {
	fe := &FileReadError{Path: path, Err: err}
	r.logger.Warn("cannot read file", slog.String("path", path), slog.Any("error", err))
	return core.NewMessage(fe.Error(), core.Error, core.WithCheck(ReadCheckName))
}
