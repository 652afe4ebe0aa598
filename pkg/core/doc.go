// Package core defines the shared vocabulary of the inspector: the importance
// and severity scales and the InspectorMessage record every check emits.
//
// These types carry no behavior beyond ordering, naming and JSON encoding, so
// they can be imported from rule packages, the engine and the CLI without
// creating cycles.
package core
