// Tests for the Notion block to Markdown converter.

package notion

import (
	"strings"
	"testing"
)

func TestBlocksToMarkdown(t *testing.T) {
	tests := []struct {
		name   string
		blocks []Block
		want   string
	}{
		{
			"empty",
			[]Block{},
			"",
		},
		{
			"paragraph",
			[]Block{
				{Type: "paragraph", Paragraph: &TextBlock{RichText: []RichText{{PlainText: "Hello World"}}}},
			},
			"Hello World\n\n",
		},
		{
			"headings",
			[]Block{
				{Type: "heading_1", Heading1: &HeadingBlock{RichText: []RichText{{PlainText: "H1"}}}},
				{Type: "heading_2", Heading2: &HeadingBlock{RichText: []RichText{{PlainText: "H2"}}}},
				{Type: "heading_3", Heading3: &HeadingBlock{RichText: []RichText{{PlainText: "H3"}}}},
			},
			"# H1\n\n## H2\n\n### H3\n\n",
		},
		{
			"bulleted list",
			[]Block{
				{Type: "bulleted_list_item", BulletedListItem: &TextBlock{RichText: []RichText{{PlainText: "Item 1"}}}},
				{Type: "bulleted_list_item", BulletedListItem: &TextBlock{RichText: []RichText{{PlainText: "Item 2"}}}},
			},
			"\n- Item 1\n- Item 2\n",
		},
		{
			"numbered list",
			[]Block{
				{Type: "numbered_list_item", NumberedListItem: &TextBlock{RichText: []RichText{{PlainText: "First"}}}},
				{Type: "numbered_list_item", NumberedListItem: &TextBlock{RichText: []RichText{{PlainText: "Second"}}}},
			},
			"\n1. First\n2. Second\n",
		},
		{
			"todo items",
			[]Block{
				{Type: "to_do", ToDo: &ToDoBlock{RichText: []RichText{{PlainText: "Unchecked"}}, Checked: false}},
				{Type: "to_do", ToDo: &ToDoBlock{RichText: []RichText{{PlainText: "Checked"}}, Checked: true}},
			},
			"- [ ] Unchecked\n- [x] Checked\n",
		},
		{
			"code block",
			[]Block{
				{Type: "code", Code: &CodeBlock{RichText: []RichText{{PlainText: "fmt.Println(\"Hello\")"}}, Language: "go"}},
			},
			"```go\nfmt.Println(\"Hello\")\n```\n\n",
		},
		{
			"quote",
			[]Block{
				{Type: "quote", Quote: &TextBlock{RichText: []RichText{{PlainText: "A wise quote"}}}},
			},
			"> A wise quote\n\n",
		},
		{
			"divider",
			[]Block{
				{Type: "divider", Divider: &struct{}{}},
			},
			"---\n\n",
		},
		{
			"table rows",
			[]Block{
				{Type: "table", Table: &TableBlock{TableWidth: 2}, Children: []Block{
					{Type: "table_row", TableRow: &TableRowBlock{Cells: [][]RichText{{{PlainText: "a"}}, {{PlainText: "b"}}}}},
					{Type: "table_row", TableRow: &TableRowBlock{Cells: [][]RichText{{{PlainText: "c"}}, {{PlainText: "d"}}}}},
				}},
			},
			"| a | b |\n| c | d |\n",
		},
		{
			"child database marker",
			[]Block{
				{Type: "child_database", ChildDatabase: &ChildDatabaseBlock{Title: "Tasks"}},
			},
			"🗃️ [Tasks]()\n\n",
		},
		{
			"child page marker",
			[]Block{
				{Type: "child_page", ChildPage: &ChildPageBlock{Title: "Sub"}},
			},
			"📄 [Sub]()\n\n",
		},
		{
			"nested bulleted list",
			[]Block{
				{Type: "bulleted_list_item", BulletedListItem: &TextBlock{RichText: []RichText{{PlainText: "Parent"}}}, Children: []Block{
					{Type: "bulleted_list_item", BulletedListItem: &TextBlock{RichText: []RichText{{PlainText: "Child"}}}},
				}},
			},
			"\n- Parent\n\n  - Child\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BlocksToMarkdown(tt.blocks)
			if got != tt.want {
				t.Errorf("BlocksToMarkdown() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestRichTextToMarkdown(t *testing.T) {
	href := "https://example.com"
	tests := []struct {
		name string
		rt   []RichText
		want string
	}{
		{"plain text", []RichText{{PlainText: "Hello"}}, "Hello"},
		{
			"bold",
			[]RichText{{PlainText: "bold", Annotations: &Annotations{Bold: true}}},
			"**bold**",
		},
		{
			"italic",
			[]RichText{{PlainText: "italic", Annotations: &Annotations{Italic: true}}},
			"_italic_",
		},
		{
			"code",
			[]RichText{{PlainText: "code", Annotations: &Annotations{Code: true}}},
			"`code`",
		},
		{
			"strikethrough",
			[]RichText{{PlainText: "strike", Annotations: &Annotations{Strikethrough: true}}},
			"~~strike~~",
		},
		{
			"underline",
			[]RichText{{PlainText: "under", Annotations: &Annotations{Underline: true}}},
			"<u>under</u>",
		},
		{
			"link",
			[]RichText{{PlainText: "site", Href: &href}},
			"[site](https://example.com)",
		},
		{
			"multiple runs",
			[]RichText{{PlainText: "a"}, {PlainText: "b", Annotations: &Annotations{Bold: true}}},
			"a**b**",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RichTextToMarkdown(tt.rt); got != tt.want {
				t.Errorf("RichTextToMarkdown() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBlocksToMarkdownToggle(t *testing.T) {
	blocks := []Block{
		{Type: "toggle", Toggle: &TextBlock{RichText: []RichText{{PlainText: "More"}}}, Children: []Block{
			{Type: "paragraph", Paragraph: &TextBlock{RichText: []RichText{{PlainText: "Hidden"}}}},
		}},
	}
	got := BlocksToMarkdown(blocks)
	for _, want := range []string{"<details>", "<summary>More</summary>", "Hidden", "</details>"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
}
