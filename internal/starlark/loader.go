package starlark

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"go.starlark.net/starlark"

	"github.com/catalystneuro/nwbinspector/pkg/inspector"
)

// ModuleExt is the extension of rule module files.
const ModuleExt = ".star"

// Module is a loaded rule module.
type Module struct {
	// Name is derived from the filename (e.g. "lab" from "lab.star").
	Name string

	// Path is the path of the .star file.
	Path string

	// Checks are the definitions registered by the module, in call order.
	Checks []inspector.CheckDef
}

// Loader loads rule modules from files and directories.
type Loader struct {
	paths  []string
	pool   *ThreadPool
	logger *slog.Logger
}

// NewLoader creates a loader for the given paths. A path is either a .star
// file or a directory whose .star files are loaded in name order.
func NewLoader(logger *slog.Logger, paths ...string) *Loader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{
		paths:  paths,
		pool:   NewThreadPool(0, logger),
		logger: logger,
	}
}

// Load executes every module. The first failing module aborts the load.
func (l *Loader) Load() ([]*Module, error) {
	var modules []*Module
	for _, p := range l.paths {
		files, err := expand(p)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			m, err := l.loadFile(f)
			if err != nil {
				return nil, err
			}
			modules = append(modules, m)
		}
	}
	return modules, nil
}

func expand(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &LoadError{File: path, Err: err}
	}
	if !info.IsDir() {
		if filepath.Ext(path) != ModuleExt {
			return nil, &LoadError{File: path, Err: fmt.Errorf("not a %s file", ModuleExt)}
		}
		return []string{path}, nil
	}

	files, err := filepath.Glob(filepath.Join(path, "*"+ModuleExt))
	if err != nil {
		return nil, &LoadError{File: path, Err: err}
	}
	return files, nil
}

// loadFile executes a single .star file and collects its checks.
func (l *Loader) loadFile(path string) (*Module, error) {
	content, err := os.ReadFile(path) //nolint:gosec // G304: path is a user-supplied rule module
	if err != nil {
		return nil, &LoadError{File: path, Err: err}
	}

	name := strings.TrimSuffix(filepath.Base(path), ModuleExt)
	m := &module{name: name, pool: l.pool}

	thread := &starlark.Thread{
		Name: "load:" + name,
		Print: func(_ *starlark.Thread, msg string) {
			l.logger.Debug("rule module output", slog.String("module", name), slog.String("msg", msg))
		},
	}

	globals, err := starlark.ExecFile(thread, path, content, m.predeclared()) //nolint:staticcheck // SA1019: ExecFileOptions needs explicit syntax options
	if err != nil {
		return nil, &LoadError{File: path, Err: err}
	}
	// Rules run after loading; module state is read-only from then on.
	globals.Freeze()

	if len(m.defs) == 0 {
		l.logger.Warn("rule module registers no checks", slog.String("path", path))
	}
	l.logger.Debug("loaded rule module", slog.String("module", name), slog.Int("checks", len(m.defs)))

	return &Module{Name: name, Path: path, Checks: m.defs}, nil
}

// Register adds the checks of every module to reg in load order.
func Register(reg *inspector.Registry, modules []*Module) {
	for _, m := range modules {
		for _, def := range m.Checks {
			reg.Register(def)
		}
	}
}

// LoadError reports a rule module that could not be loaded.
type LoadError struct {
	File string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("rule module %s: %v", e.File, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
