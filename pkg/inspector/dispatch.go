package inspector

import (
	"context"
	"iter"
	"log/slog"

	"github.com/catalystneuro/nwbinspector/pkg/core"
	"github.com/catalystneuro/nwbinspector/pkg/nwb"
)

// RunChecks runs every check against every object of root it applies to.
//
// Checks form the outer loop and objects the inner one, both in their given
// order. A failing check yields one ERROR message and the run goes on.
func RunChecks(root *nwb.NWBFile, checks []*Check) *Stream {
	return newStream(context.Background(), runChecks(root, checks, slog.New(slog.DiscardHandler)))
}

func runChecks(root *nwb.NWBFile, checks []*Check, logger *slog.Logger) iter.Seq[core.InspectorMessage] {
	return func(yield func(core.InspectorMessage) bool) {
		objects := root.Objects()
		for _, c := range checks {
			for _, obj := range objects {
				if !c.Applies(obj) {
					continue
				}
				out := c.Invoke(obj)
				if out.Err != nil {
					logger.Warn("check failed",
						slog.String("check", c.Name()),
						slog.String("object", obj.Path()),
						slog.Any("cause", out.Err.Cause))
				}
				for _, m := range out.Flatten() {
					if !yield(m) {
						return
					}
				}
			}
		}
	}
}
