// Package nwb is the object model the inspector consumes: a tree of named,
// typed objects with parent links, flattened into a single index on the root
// NWBFile.
//
// Type matching uses neurodata type tags rather than Go types. Every object
// carries its tag and the chain of ancestor tags it inherits from, so a check
// declared for "TimeSeries" also sees an "ElectricalSeries". Extension types
// declared by a data document join the chain of their declared parent.
//
// The on-disk reader decodes NWB object trees encoded as YAML or CBOR
// documents. HDF5 access is not implemented here; Open is the boundary where
// such a reader would plug in.
package nwb
