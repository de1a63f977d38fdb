// Locates child databases among a page's direct children.

package export

import (
	"context"
)

// ChildDatabase identifies a database embedded in a page.
type ChildDatabase struct {
	ID    string
	Title string
}

// findChildDatabases lists up to 100 direct children of the page and
// returns the child_database blocks. It does not follow the cursor and
// does not recurse into nested blocks.
//
// On error the page is treated as having no child databases; callers
// cannot tell the two apart, which matches the export's soft-fail
// policy for per-database operations.
func (e *Exporter) findChildDatabases(ctx context.Context, pageID string) []ChildDatabase {
	resp, err := e.api.GetBlockChildren(ctx, pageID, "")
	if err != nil {
		e.warnf("failed to list children of page %s: %v", pageID, err)
		return nil
	}

	var found []ChildDatabase
	for i := range resp.Results {
		b := &resp.Results[i]
		if b.Type != "child_database" {
			continue
		}
		title := "Untitled Database"
		if b.ChildDatabase != nil && b.ChildDatabase.Title != "" {
			title = b.ChildDatabase.Title
		}
		found = append(found, ChildDatabase{ID: b.ID, Title: title})
	}
	return found
}
