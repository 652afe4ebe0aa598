// Package checks holds the built-in best-practice checks.
//
// Nothing is registered on import. Call Register, or use DefaultRegistry,
// to load the rule set into an inspector.Registry:
//
//	reg := checks.DefaultRegistry()
//	reg.Freeze()
package checks
