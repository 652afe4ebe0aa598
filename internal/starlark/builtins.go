package starlark

import (
	"errors"
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"

	"github.com/catalystneuro/nwbinspector/pkg/core"
	"github.com/catalystneuro/nwbinspector/pkg/inspector"
	"github.com/catalystneuro/nwbinspector/pkg/nwb"
)

const findingConstructor = starlark.String("finding")

// module collects the checks registered while a rule module executes.
type module struct {
	name string
	pool *ThreadPool
	defs []inspector.CheckDef
}

// predeclared returns the globals available to a rule module.
func (m *module) predeclared() starlark.StringDict {
	return starlark.StringDict{
		"register_check": starlark.NewBuiltin("register_check", m.registerCheck),
		"finding":        starlark.NewBuiltin("finding", finding),
	}
}

func (m *module) registerCheck(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		name, importance, neurodataType, description string
		fn                                           starlark.Callable
		options                                      *starlark.Dict
		order                                        int
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"name", &name,
		"importance", &importance,
		"neurodata_type", &neurodataType,
		"fn", &fn,
		"options?", &options,
		"description?", &description,
		"order?", &order,
	); err != nil {
		return nil, err
	}

	if name == "" {
		return nil, fmt.Errorf("%s: name cannot be empty", b.Name())
	}
	if neurodataType == "" {
		return nil, fmt.Errorf("%s: check %q needs a neurodata_type", b.Name(), name)
	}
	imp, ok := core.ParseImportance(importance)
	if !ok || imp.IsAdministrative() {
		return nil, fmt.Errorf("%s: check %q has invalid importance %q", b.Name(), name, importance)
	}

	var opts map[string]any
	if options != nil {
		v, err := ToGo(options)
		if err != nil {
			return nil, fmt.Errorf("%s: check %q options: %w", b.Name(), name, err)
		}
		opts = v.(map[string]any)
	}
	if description == "" {
		if f, ok := fn.(*starlark.Function); ok {
			description = f.Doc()
		}
	}

	m.defs = append(m.defs, inspector.CheckDef{
		Name:          name,
		Importance:    imp,
		NeurodataType: neurodataType,
		Order:         order,
		Description:   description,
		Options:       opts,
		Func:          m.rule(name, fn),
	})
	return starlark.None, nil
}

// rule adapts a Starlark callable to a check. Functions declaring a single
// parameter receive only the object. Evaluation failures panic and are
// reported by the dispatcher as ERROR findings.
func (m *module) rule(name string, fn starlark.Callable) inspector.CheckFunc {
	withOptions := true
	if f, ok := fn.(*starlark.Function); ok && f.NumParams() == 1 {
		withOptions = false
	}
	threadName := m.name + ":" + name

	return func(obj nwb.Object, opts inspector.Options) inspector.Result {
		args := starlark.Tuple{ObjectValue(obj)}
		if withOptions {
			o, err := GoToStarlark(map[string]any(opts))
			if err != nil {
				panic(fmt.Errorf("options: %w", err))
			}
			args = append(args, o)
		}

		thread := m.pool.Get(threadName)
		v, err := starlark.Call(thread, fn, args, nil)
		if err != nil {
			var evalErr *starlark.EvalError
			if errors.As(err, &evalErr) {
				panic(errors.New(evalErr.Backtrace()))
			}
			panic(err)
		}
		m.pool.Put(thread)

		res, err := toResult(v)
		if err != nil {
			panic(err)
		}
		return res
	}
}

// finding(message, severity="NONE", object_type="", object_name="", location="")
func finding(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var message, objectType, objectName, location string
	severity := "NONE"
	if err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"message", &message,
		"severity?", &severity,
		"object_type?", &objectType,
		"object_name?", &objectName,
		"location?", &location,
	); err != nil {
		return nil, err
	}
	if _, ok := core.ParseSeverity(severity); !ok {
		return nil, fmt.Errorf("%s: unknown severity %q", b.Name(), severity)
	}
	return starlarkstruct.FromStringDict(findingConstructor, starlark.StringDict{
		"message":     starlark.String(message),
		"severity":    starlark.String(severity),
		"object_type": starlark.String(objectType),
		"object_name": starlark.String(objectName),
		"location":    starlark.String(location),
	}), nil
}

// toResult converts a rule's return value. A bare string is one finding.
func toResult(v starlark.Value) (inspector.Result, error) {
	switch val := v.(type) {
	case starlark.NoneType:
		return nil, nil
	case starlark.String:
		return inspector.Finding(string(val)), nil
	case *starlarkstruct.Struct:
		return toMessage(val)
	case *starlark.List, starlark.Tuple:
		seq := val.(starlark.Indexable)
		out := make(inspector.Messages, 0, seq.Len())
		for i := 0; i < seq.Len(); i++ {
			switch item := seq.Index(i).(type) {
			case starlark.String:
				out = append(out, inspector.Finding(string(item)))
			case *starlarkstruct.Struct:
				m, err := toMessage(item)
				if err != nil {
					return nil, fmt.Errorf("item %d: %w", i, err)
				}
				out = append(out, m)
			default:
				return nil, fmt.Errorf("item %d: rule returned %s, want string or finding", i, item.Type())
			}
		}
		return out, nil
	}
	return nil, fmt.Errorf("rule returned %s, want None, string, finding or list", v.Type())
}

func toMessage(s *starlarkstruct.Struct) (core.InspectorMessage, error) {
	if s.Constructor() != findingConstructor {
		return core.InspectorMessage{}, fmt.Errorf("rule returned struct %s, want finding", s.Constructor())
	}
	field := func(name string) string {
		v, err := s.Attr(name)
		if err != nil {
			return ""
		}
		str, _ := starlark.AsString(v)
		return str
	}
	severity, _ := core.ParseSeverity(field("severity"))
	opts := []core.MessageOption{core.WithSeverity(severity)}
	if t, n, l := field("object_type"), field("object_name"), field("location"); t != "" || n != "" || l != "" {
		opts = append(opts, core.WithObject(t, n, l))
	}
	return inspector.Finding(field("message"), opts...), nil
}
