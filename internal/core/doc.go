// Package core provides the business logic for CSV validation sessions.
// This package has no HTTP dependencies and can be used by any frontend.
//
// The central type is Processor, which owns a parsed Table and a RuleSet
// for its entire lifetime. Construction parses both inputs up front and
// fails fast on malformed rules or CSV; every later operation is a full,
// synchronous pass over the current table state:
//
//   - Summarize builds per-column error counts with first-example captures.
//   - ApplyBulkFix replaces exact matches in one column and recounts.
//   - SplitExport partitions rows into valid/invalid CSV outputs with
//     human-readable failure reasons.
//
// No validation state is cached between passes, so operations can be
// invoked independently and in any order. A Processor is not safe for
// concurrent use; callers serialize access (the web layer wraps each
// Processor in a Session that does exactly that).
package core
