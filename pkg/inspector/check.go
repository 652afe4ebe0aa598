package inspector

import (
	"fmt"
	"maps"
	"runtime/debug"

	"github.com/catalystneuro/nwbinspector/pkg/core"
	"github.com/catalystneuro/nwbinspector/pkg/nwb"
)

// Result is the value a CheckFunc returns. It is one of:
//
//   - nil: no finding
//   - core.InspectorMessage or *core.InspectorMessage: one finding
//   - Messages: any number of findings, reported in order
//   - string: one finding with that text
type Result any

// Messages is a sequence of findings returned by one check invocation.
type Messages []core.InspectorMessage

// CheckFunc inspects one object. opts holds the check's tunables with
// defaults applied.
type CheckFunc func(obj nwb.Object, opts Options) Result

// CheckDef describes a check at registration time.
type CheckDef struct {
	// Name identifies the check in configuration, select and ignore lists.
	Name string

	// Importance is the default importance of every finding.
	Importance core.Importance

	// NeurodataType is the tag of the objects the check applies to.
	// Objects of any subtype match as well.
	NeurodataType string

	// Order sorts the catalog; lower runs first. Checks with equal Order
	// keep their registration order.
	Order int

	// Description is a one-line summary shown by the checks command.
	Description string

	// Options are the tunables the check accepts, with their defaults.
	Options map[string]any

	Func CheckFunc
}

// Check is a registered check. Values handed out by Registry.Checks are
// copies; changing their importance or options leaves the registry alone.
type Check struct {
	def        CheckDef
	importance core.Importance
	options    map[string]any
	seq        int
}

// Name returns the check's name.
func (c *Check) Name() string { return c.def.Name }

// Importance returns the effective importance.
func (c *Check) Importance() core.Importance { return c.importance }

// DefaultImportance returns the importance the check was registered with.
func (c *Check) DefaultImportance() core.Importance { return c.def.Importance }

// NeurodataType returns the tag the check applies to.
func (c *Check) NeurodataType() string { return c.def.NeurodataType }

// Order returns the sort key.
func (c *Check) Order() int { return c.def.Order }

// Description returns the summary.
func (c *Check) Description() string { return c.def.Description }

// Options returns a copy of the effective tunables.
func (c *Check) Options() map[string]any { return copyOptions(c.options) }

// Applies reports whether the check should run on obj.
func (c *Check) Applies(obj nwb.Object) bool {
	return nwb.IsA(obj, c.def.NeurodataType)
}

func (c *Check) clone() *Check {
	cp := *c
	cp.options = copyOptions(c.options)
	return &cp
}

func (c *Check) withImportance(imp core.Importance) *Check {
	cp := c.clone()
	cp.importance = imp
	return cp
}

// Outcome is the result of one invocation: the findings, or the failure
// that prevented the check from producing them.
type Outcome struct {
	Messages []core.InspectorMessage
	Err      *RuleExecutionError
}

// Invoke runs the check on obj with its effective options. Panics and
// unusable return values are captured in Outcome.Err.
func (c *Check) Invoke(obj nwb.Object) Outcome {
	return c.invoke(obj, c.options)
}

// Run runs the check on obj and returns its findings. A failure is
// reported as a single ERROR message.
func (c *Check) Run(obj nwb.Object) []core.InspectorMessage {
	return c.Invoke(obj).Flatten()
}

// RunWithOptions is Run with extra tunables merged over the defaults.
func (c *Check) RunWithOptions(obj nwb.Object, opts map[string]any) []core.InspectorMessage {
	merged := copyOptions(c.options)
	maps.Copy(merged, opts)
	return c.invoke(obj, merged).Flatten()
}

func (c *Check) invoke(obj nwb.Object, opts map[string]any) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = Outcome{Err: &RuleExecutionError{
				Check:  c.def.Name,
				Object: describe(obj),
				Cause:  r,
				Stack:  debug.Stack(),
			}}
		}
	}()

	msgs, err := normalize(c.def.Func(obj, Options(opts)))
	if err != nil {
		return Outcome{Err: &RuleExecutionError{Check: c.def.Name, Object: describe(obj), Cause: err}}
	}
	for i := range msgs {
		msgs[i] = c.stamp(msgs[i], obj)
	}
	return Outcome{Messages: msgs}
}

// stamp fills in what the check knows about its own findings. Rules may
// point a finding at another object by setting its location fields.
func (c *Check) stamp(m core.InspectorMessage, obj nwb.Object) core.InspectorMessage {
	m.Importance = c.importance
	if m.CheckFunctionName == "" {
		m.CheckFunctionName = c.def.Name
	}
	if m.ObjectType == "" && m.ObjectName == "" && m.Location == "" && obj != nil {
		m.ObjectType = obj.TypeName()
		m.ObjectName = obj.Name()
		m.Location = obj.Path()
	}
	return m
}

// Flatten returns the findings, or one ERROR message describing the failure.
func (o Outcome) Flatten() []core.InspectorMessage {
	if o.Err != nil {
		return []core.InspectorMessage{o.Err.Message()}
	}
	return o.Messages
}

// Message converts the failure into an ERROR finding.
func (e *RuleExecutionError) Message() core.InspectorMessage {
	return core.NewMessage(e.Error(), core.Error, core.WithCheck(e.Check))
}

func normalize(r Result) ([]core.InspectorMessage, error) {
	switch v := r.(type) {
	case nil:
		return nil, nil
	case core.InspectorMessage:
		return []core.InspectorMessage{v}, nil
	case *core.InspectorMessage:
		if v == nil {
			return nil, nil
		}
		return []core.InspectorMessage{*v}, nil
	case Messages:
		return append([]core.InspectorMessage(nil), v...), nil
	case []core.InspectorMessage:
		return append([]core.InspectorMessage(nil), v...), nil
	case string:
		return []core.InspectorMessage{{Message: v}}, nil
	}
	return nil, fmt.Errorf("unsupported result type %T", r)
}

func describe(obj nwb.Object) string {
	if obj == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s '%s'", obj.TypeName(), obj.Path())
}

// Finding builds a message for a check to return. The dispatcher fills in
// the importance, the check name and the object fields.
func Finding(message string, opts ...core.MessageOption) core.InspectorMessage {
	return core.NewMessage(message, core.BestPracticeSuggestion, opts...)
}

func copyOptions(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	maps.Copy(out, in)
	return out
}
