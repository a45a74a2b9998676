// Package batch drives conversions: it resolves database records to script
// files, runs decode → timeline → serialize per record, and collects
// per-entry outcomes so one corrupt script never aborts the rest.
package batch
