// Orchestrates the export of one page and its child databases.

package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/hirosi1900day/notion-md/internal/notion"
)

// API is the subset of the Notion client the exporter uses.
type API interface {
	GetPage(ctx context.Context, id string) (*notion.Page, error)
	GetDatabase(ctx context.Context, id string) (*notion.Database, error)
	QueryDatabase(ctx context.Context, databaseID, cursor string) (*notion.QueryResponse, error)
	GetBlockChildren(ctx context.Context, blockID, cursor string) (*notion.BlocksResponse, error)
	GetBlockChildrenRecursive(ctx context.Context, blockID string) ([]notion.Block, error)
}

// Options controls how child databases are exported.
type Options struct {
	// SeparateDatabaseFiles writes each child database to its own file.
	SeparateDatabaseFiles bool
	// IncludeDBInPage appends each child database's table to the page file.
	IncludeDBInPage bool
}

// DatabaseExport records one separately saved database.
type DatabaseExport struct {
	ID    string
	Title string
	Path  string
	Rows  int
}

// Result is the outcome of an export run.
type Result struct {
	PagePath  string
	Databases []DatabaseExport
}

// childDBMarker matches the link marker the markdown converter emits for
// child_database blocks. The exporter renders those databases itself, so
// the marker lines are patched out of the converter's output. This is a
// compatibility fix against that converter's exact output format.
var childDBMarker = regexp.MustCompile(`🗃️ \[[^\]\n]*\]\(\)\n*`)

// Exporter exports a page and its child databases to markdown files.
type Exporter struct {
	api      API
	outDir   string
	progress ProgressReporter
	now      func() time.Time
	stats    Stats
}

// NewExporter creates an exporter writing into outDir.
func NewExporter(api API, outDir string, progress ProgressReporter) *Exporter {
	if progress == nil {
		progress = &NullProgress{}
	}
	return &Exporter{
		api:      api,
		outDir:   outDir,
		progress: progress,
		now:      time.Now,
	}
}

// ExportPage exports the page and returns the written file paths.
//
// Per-database failures degrade to placeholders and warnings; anything
// else (page content fetch, file writes) is returned as an error.
func (e *Exporter) ExportPage(ctx context.Context, pageID string, opts Options) (*Result, error) {
	start := e.now()

	if err := os.MkdirAll(e.outDir, 0o755); err != nil { //nolint:gosec // G301: 0o755 is intentional for data directories
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	// Page title is best effort; the body fetch below is what matters.
	pageTitle := "Untitled"
	if page, err := e.api.GetPage(ctx, pageID); err != nil {
		e.warnf("failed to get page %s: %v", pageID, err)
	} else {
		pageTitle = page.Title()
	}

	blocks, err := e.api.GetBlockChildrenRecursive(ctx, pageID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page content: %w", err)
	}
	body := childDBMarker.ReplaceAllString(notion.BlocksToMarkdown(blocks), "")

	children := e.findChildDatabases(ctx, pageID)
	e.progress.OnStart(len(children))

	result := &Result{}
	var inline strings.Builder
	for i, child := range children {
		e.progress.OnProgress(i+1, "Database: "+child.Title)

		schema, rows := e.fetchDatabase(ctx, child.ID)

		if opts.SeparateDatabaseFiles {
			path := filepath.Join(e.outDir, databaseFileName(child.ID))
			title := pageTitle + " - " + child.Title
			if err := e.writeDocument(path, title, RenderTable(schema, rows)); err != nil {
				return nil, fmt.Errorf("failed to write database file: %w", err)
			}
			result.Databases = append(result.Databases, DatabaseExport{
				ID:    child.ID,
				Title: child.Title,
				Path:  path,
				Rows:  len(rows),
			})
			e.stats.Files++
		}

		if opts.IncludeDBInPage {
			inline.WriteString("### " + child.Title + "\n\n")
			inline.WriteString(RenderTable(schema, rows))
			inline.WriteString("\n---\n\n")
		}

		e.stats.Databases++
		e.stats.Rows += len(rows)
	}

	var doc strings.Builder
	doc.WriteString(strings.TrimRight(body, "\n"))
	if opts.IncludeDBInPage && inline.Len() > 0 {
		doc.WriteString("\n\n## Embedded Databases\n\n")
		doc.WriteString(strings.TrimRight(inline.String(), "\n"))
	}
	if len(result.Databases) > 0 {
		doc.WriteString("\n\n## Database Files\n\n")
		for _, db := range result.Databases {
			doc.WriteString(fmt.Sprintf("- [%s](%s) (%d items)\n", db.Title, filepath.Base(db.Path), db.Rows))
		}
	}

	pagePath := filepath.Join(e.outDir, pageFileName(pageID))
	if err := e.writeDocument(pagePath, pageTitle, doc.String()); err != nil {
		return nil, fmt.Errorf("failed to write page file: %w", err)
	}
	result.PagePath = pagePath
	e.stats.Files++

	e.stats.Duration = time.Since(start)
	e.progress.OnComplete(e.stats)
	return result, nil
}

// Stats returns the counters accumulated by the last export.
func (e *Exporter) Stats() Stats {
	return e.stats
}

// writeDocument writes a markdown file in the export's document shape:
// title heading, body, rule, generation timestamp.
func (e *Exporter) writeDocument(path, title, body string) error {
	content := fmt.Sprintf("# %s\n\n%s\n\n---\n\n_generated at %s_\n",
		title, strings.TrimRight(body, "\n"), e.now().Format(time.RFC3339))
	return os.WriteFile(path, []byte(content), 0o644) //nolint:gosec // G306: 0o644 is intentional for readable files
}

// warnf logs a soft failure and counts it.
func (e *Exporter) warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	slog.Warn(msg)
	e.progress.OnWarning(msg)
	e.stats.SoftErrors++
}

func pageFileName(id string) string {
	return "notion_page_" + strings.ReplaceAll(id, "-", "") + ".md"
}

func databaseFileName(id string) string {
	return "notion_database_" + strings.ReplaceAll(id, "-", "") + ".md"
}
