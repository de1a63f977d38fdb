// Converts Notion blocks to Markdown.

package notion

import (
	"fmt"
	"strings"
)

// BlocksToMarkdown converts a block tree to markdown.
//
// Child pages and child databases render as link markers; callers that
// export those separately are expected to replace or strip the markers.
func BlocksToMarkdown(blocks []Block) string {
	var sb strings.Builder
	writeBlocks(&sb, blocks, &listState{}, 0)
	return sb.String()
}

// listState tracks list context for proper markdown formatting.
type listState struct {
	numberedCount int
	inBulleted    bool
	inNumbered    bool
}

func writeBlocks(sb *strings.Builder, blocks []Block, ls *listState, depth int) {
	for i := range blocks {
		sb.WriteString(blockToMarkdown(&blocks[i], ls, depth))
		if len(blocks[i].Children) > 0 {
			childDepth := depth
			switch blocks[i].Type {
			case "bulleted_list_item", "numbered_list_item", "to_do", "toggle":
				childDepth++
			}
			writeBlocks(sb, blocks[i].Children, &listState{}, childDepth)
			if blocks[i].Type == "toggle" {
				sb.WriteString(strings.Repeat("  ", depth) + "</details>\n\n")
			}
		}
	}
}

// blockToMarkdown converts a single block to markdown.
func blockToMarkdown(block *Block, ls *listState, depth int) string {
	indent := strings.Repeat("  ", depth)

	// Reset list state for non-list blocks
	if block.Type != "bulleted_list_item" {
		ls.inBulleted = false
	}
	if block.Type != "numbered_list_item" {
		ls.inNumbered = false
		ls.numberedCount = 0
	}

	switch block.Type {
	case "paragraph":
		if block.Paragraph != nil {
			text := RichTextToMarkdown(block.Paragraph.RichText)
			if text == "" {
				return "\n"
			}
			return indent + text + "\n\n"
		}

	case "heading_1":
		if block.Heading1 != nil {
			return "# " + RichTextToMarkdown(block.Heading1.RichText) + "\n\n"
		}

	case "heading_2":
		if block.Heading2 != nil {
			return "## " + RichTextToMarkdown(block.Heading2.RichText) + "\n\n"
		}

	case "heading_3":
		if block.Heading3 != nil {
			return "### " + RichTextToMarkdown(block.Heading3.RichText) + "\n\n"
		}

	case "bulleted_list_item":
		if block.BulletedListItem != nil {
			prefix := ""
			if !ls.inBulleted {
				ls.inBulleted = true
				prefix = "\n"
			}
			return prefix + indent + "- " + RichTextToMarkdown(block.BulletedListItem.RichText) + "\n"
		}

	case "numbered_list_item":
		if block.NumberedListItem != nil {
			prefix := ""
			if !ls.inNumbered {
				ls.inNumbered = true
				ls.numberedCount = 0
				prefix = "\n"
			}
			ls.numberedCount++
			return fmt.Sprintf("%s%s%d. %s\n", prefix, indent, ls.numberedCount, RichTextToMarkdown(block.NumberedListItem.RichText))
		}

	case "to_do":
		if block.ToDo != nil {
			checkbox := "[ ]"
			if block.ToDo.Checked {
				checkbox = "[x]"
			}
			return indent + "- " + checkbox + " " + RichTextToMarkdown(block.ToDo.RichText) + "\n"
		}

	case "toggle":
		if block.Toggle != nil {
			return indent + "<details>\n" + indent + "<summary>" + RichTextToMarkdown(block.Toggle.RichText) + "</summary>\n\n"
		}

	case "code":
		if block.Code != nil {
			lang := block.Code.Language
			if lang == "plain text" {
				lang = ""
			}
			return "```" + lang + "\n" + RichTextToPlain(block.Code.RichText) + "\n```\n\n"
		}

	case "quote":
		if block.Quote != nil {
			lines := strings.Split(RichTextToMarkdown(block.Quote.RichText), "\n")
			quoted := make([]string, 0, len(lines))
			for _, line := range lines {
				quoted = append(quoted, "> "+line)
			}
			return strings.Join(quoted, "\n") + "\n\n"
		}

	case "callout":
		if block.Callout != nil {
			emoji := ""
			if block.Callout.Icon != nil && block.Callout.Icon.Emoji != "" {
				emoji = block.Callout.Icon.Emoji + " "
			}
			return "> " + emoji + RichTextToMarkdown(block.Callout.RichText) + "\n\n"
		}

	case "divider":
		return "---\n\n"

	case "image":
		if block.Image != nil {
			url := ""
			if block.Image.File != nil {
				url = block.Image.File.URL
			} else if block.Image.External != nil {
				url = block.Image.External.URL
			}
			caption := RichTextToPlain(block.Image.Caption)
			if caption == "" {
				caption = "image"
			}
			return fmt.Sprintf("![%s](%s)\n\n", caption, url)
		}

	case "bookmark":
		if block.Bookmark != nil {
			caption := RichTextToPlain(block.Bookmark.Caption)
			if caption == "" {
				caption = block.Bookmark.URL
			}
			return fmt.Sprintf("[%s](%s)\n\n", caption, block.Bookmark.URL)
		}

	case "embed":
		if block.Embed != nil {
			return fmt.Sprintf("[Embed](%s)\n\n", block.Embed.URL)
		}

	case "equation":
		if block.Equation != nil {
			return "$$\n" + block.Equation.Expression + "\n$$\n\n"
		}

	case "table":
		return "" // Table rows are children

	case "table_row":
		if block.TableRow != nil {
			cells := make([]string, 0, len(block.TableRow.Cells))
			for _, cell := range block.TableRow.Cells {
				cells = append(cells, RichTextToMarkdown(cell))
			}
			return "| " + strings.Join(cells, " | ") + " |\n"
		}

	case "child_page":
		if block.ChildPage != nil {
			return fmt.Sprintf("📄 [%s]()\n\n", block.ChildPage.Title)
		}

	case "child_database":
		if block.ChildDatabase != nil {
			return fmt.Sprintf("🗃️ [%s]()\n\n", block.ChildDatabase.Title)
		}
	}

	return ""
}

// RichTextToMarkdown converts rich text to markdown with formatting.
func RichTextToMarkdown(rt []RichText) string {
	parts := make([]string, 0, len(rt))
	for _, t := range rt {
		text := t.PlainText

		// Apply annotations
		if t.Annotations != nil {
			if t.Annotations.Code {
				text = "`" + text + "`"
			}
			if t.Annotations.Bold {
				text = "**" + text + "**"
			}
			if t.Annotations.Italic {
				text = "_" + text + "_"
			}
			if t.Annotations.Strikethrough {
				text = "~~" + text + "~~"
			}
			if t.Annotations.Underline {
				text = "<u>" + text + "</u>"
			}
		}

		// Apply link
		if t.Href != nil && *t.Href != "" {
			text = "[" + text + "](" + *t.Href + ")"
		}

		parts = append(parts, text)
	}
	return strings.Join(parts, "")
}
