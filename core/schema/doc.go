// Package schema describes how logical row columns map onto a remote JSON
// resource.
//
// A Set is an ordered, case-insensitive collection of Field descriptors for
// one resource kind. Every Field carries a Placement that says where its value
// lives in the remote document:
//
//   - Flat: a top-level property (resource[RemoteName])
//   - NestedScalar: a property of a nested object (resource[Parent][RemoteName])
//   - NestedArray: a property collected from every element of an array of
//     objects (resource[Parent][i][RemoteName])
//
// Sets are built once from static tables and never mutated afterwards.
// Building a Set with duplicate names or a nested field without a parent
// panics, since those are programming errors in the static tables.
package schema
