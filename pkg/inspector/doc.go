// Package inspector runs best-practice checks over NWB files.
//
// A Registry holds the checks loaded at startup. Each check declares the
// neurodata type it applies to and the importance of its findings:
//
//	reg := inspector.NewRegistry()
//	reg.Register(inspector.CheckDef{
//		Name:          "check_missing_unit",
//		Importance:    core.BestPracticeViolation,
//		NeurodataType: "TimeSeries",
//		Func:          checkMissingUnit,
//	})
//	reg.Freeze()
//
// InspectAll resolves the configuration against copies of the registered
// checks, walks the input files in natural order and returns a lazy Stream
// of findings. The organize and format functions turn collected findings
// into report lines for PrintToConsole and SaveReport.
package inspector
