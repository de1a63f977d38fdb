// Renders a database (schema + rows) as a markdown table.

package export

import (
	"strconv"
	"strings"

	"github.com/hirosi1900day/notion-md/internal/notion"
)

const (
	noItemsNotice         = "*No items in this database.*\n"
	conversionErrorNotice = "*Error converting database to markdown.*\n"
)

// RenderTable converts a database schema and its rows into a markdown
// table. Columns follow the schema's declared order. Missing or
// mismatched values render as empty cells; the table stays rectangular
// no matter what the rows contain.
//
// The function is pure: identical input yields identical output. If
// rendering panics the whole table is replaced by a fixed error notice.
func RenderTable(schema notion.Schema, rows []notion.Page) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = conversionErrorNotice
		}
	}()

	if len(rows) == 0 {
		return noItemsNotice
	}

	header := make([]string, 0, len(schema.Fields))
	separator := make([]string, 0, len(schema.Fields))
	for _, f := range schema.Fields {
		header = append(header, f.Property.Name)
		separator = append(separator, "---")
	}

	var sb strings.Builder
	sb.WriteString("| " + strings.Join(header, " | ") + " |\n")
	sb.WriteString("| " + strings.Join(separator, " | ") + " |\n")

	for i := range rows {
		cells := make([]string, 0, len(schema.Fields))
		for _, f := range schema.Fields {
			cells = append(cells, cellValue(rows[i].Properties[f.Key], f.Property.Type))
		}
		sb.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}

	return sb.String()
}

// cellValue maps a property value to cell text based on the schema's
// declared type. A value whose actual type differs leaves the typed
// field nil and falls through to the empty cell.
func cellValue(v notion.PropertyValue, fieldType string) string {
	switch fieldType {
	case "title":
		return firstPlainText(v.Title)
	case "rich_text":
		return firstPlainText(v.RichText)
	case "number":
		if v.Number != nil {
			return strconv.FormatFloat(*v.Number, 'f', -1, 64)
		}
	case "select":
		if v.Select != nil {
			return v.Select.Name
		}
	case "multi_select":
		if len(v.MultiSelect) > 0 {
			names := make([]string, 0, len(v.MultiSelect))
			for _, s := range v.MultiSelect {
				names = append(names, s.Name)
			}
			return strings.Join(names, ", ")
		}
	case "date":
		if v.Date != nil {
			return v.Date.Start
		}
	case "checkbox":
		if v.Checkbox != nil {
			if *v.Checkbox {
				return "✅"
			}
			return "❌"
		}
	case "url":
		if v.URL != nil {
			return *v.URL
		}
	}
	return ""
}

// firstPlainText returns the first rich text run's plain text.
func firstPlainText(rt []notion.RichText) string {
	if len(rt) == 0 {
		return ""
	}
	return rt[0].PlainText
}
