// Fetches a database's schema and all its rows.

package export

import (
	"context"

	"github.com/hirosi1900day/notion-md/internal/notion"
)

// fetchDatabase retrieves a database's schema, then all rows by
// following the query cursor. The client paces requests, so consecutive
// pages are naturally spaced apart.
//
// Any failure, including one in the middle of pagination, degrades the
// whole database to an empty schema and no rows. One broken database
// must not take the rest of the export down with it.
func (e *Exporter) fetchDatabase(ctx context.Context, id string) (notion.Schema, []notion.Page) {
	db, err := e.api.GetDatabase(ctx, id)
	if err != nil {
		e.warnf("failed to get database %s: %v", id, err)
		return notion.Schema{}, nil
	}

	var rows []notion.Page
	var cursor string
	for {
		resp, err := e.api.QueryDatabase(ctx, id, cursor)
		if err != nil {
			e.warnf("failed to query database %s: %v", id, err)
			return notion.Schema{}, nil
		}

		rows = append(rows, resp.Results...)

		if !resp.HasMore || resp.NextCursor == nil {
			break
		}
		cursor = *resp.NextCursor
	}

	return db.Properties, rows
}
