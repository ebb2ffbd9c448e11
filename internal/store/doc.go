// Package store holds the session state container for the dashboard.
//
// A Store is constructed once per process with New and handed to the shell
// by reference. State is only ever changed by dispatching an Action: the
// pure Reduce function computes the next State, the store records the
// action in its activity log and then notifies every subscriber before the
// next dispatch is allowed to start.
//
// There is no package-level store. Tests construct their own.
package store
