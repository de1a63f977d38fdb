// Package export turns one Notion page into markdown files: the page
// body itself, plus its child databases rendered as tables, either as
// standalone files, inlined into the page, or both.
//
// Failure handling is asymmetric on purpose: anything scoped to a single
// database (fetch, render, discovery) degrades to a placeholder and a
// warning so the rest of the export survives, while page-level failures
// (content fetch, file writes) abort the run.
package export
