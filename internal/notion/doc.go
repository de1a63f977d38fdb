// Package notion provides a minimal client for the Notion API and a
// block-to-Markdown converter, covering what the exporter needs:
//   - API client with request pacing (one request per 200ms)
//   - Pages, databases, database queries, and block children
//   - Insertion-ordered database schemas
//   - Markdown conversion of a page's block tree
package notion
