package book

import (
	"encoding/json"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/booktest/internal/errors"
)

const summary = `# Summary

[Introduction](README.md)

# User Guide

- [First](first.md)
- [Second](./second.md)
    - [Third](nested/third.md)
    - [Not written yet]()

---

[Contributors](contributors.md)
`

func TestParseSummary(t *testing.T) {
	items, err := ParseSummary([]byte(summary))
	require.NoError(t, err)

	require.Len(t, items, 6)
	assert.Equal(t, "README.md", items[0].Chapter.Path)
	assert.Equal(t, "Introduction", items[0].Chapter.Name)
	assert.Equal(t, "User Guide", items[1].PartTitle)
	assert.Equal(t, "first.md", items[2].Chapter.Path)

	second := items[3].Chapter
	require.NotNil(t, second)
	assert.Equal(t, "second.md", second.Path)
	require.Len(t, second.SubItems, 2)
	assert.Equal(t, "nested/third.md", second.SubItems[0].Chapter.Path)
	assert.True(t, second.SubItems[1].Chapter.IsDraft())

	assert.True(t, items[4].Separator)
	assert.Equal(t, "contributors.md", items[5].Chapter.Path)
}

func TestParseSummary_RejectsEscapingPaths(t *testing.T) {
	_, err := ParseSummary([]byte("- [Oops](../outside.md)\n"))
	require.Error(t, err)

	_, err = ParseSummary([]byte("- [Oops](/etc/passwd)\n"))
	require.Error(t, err)
}

func TestParseSummary_ListItemWithoutLink(t *testing.T) {
	_, err := ParseSummary([]byte("- just text\n"))
	require.Error(t, err)
}

func TestChapters_DepthFirstSkipsGroupingAndDrafts(t *testing.T) {
	b := &Book{Items: []Item{
		{Chapter: &Chapter{Name: "first", Path: "first.md"}},
		{Separator: true},
		{PartTitle: "Part II"},
		{Chapter: &Chapter{Name: "second", Path: "second.md", SubItems: []Item{
			{Chapter: &Chapter{Name: "third", Path: "nested/third.md"}},
			{Chapter: &Chapter{Name: "draft"}},
		}}},
		{Chapter: &Chapter{Name: "fourth", Path: "fourth.md"}},
	}}

	assert.Equal(t, []string{"first.md", "second.md", "nested/third.md", "fourth.md"}, b.Paths())

	var nilBook *Book
	assert.Empty(t, nilBook.Chapters())
}

func TestBook_UnmarshalHostJSON(t *testing.T) {
	raw := `{
	  "sections": [
	    {"Chapter": {"name": "First", "content": "# First\n", "number": [1], "path": "first.md",
	      "sub_items": [{"Chapter": {"name": "Third", "content": "x", "path": "nested/third.md", "sub_items": []}}],
	      "parent_names": []}},
	    "Separator",
	    {"PartTitle": "Reference"},
	    {"Chapter": {"name": "Draft", "content": "", "path": null, "sub_items": []}}
	  ],
	  "__non_exhaustive": null
	}`

	var b Book
	require.NoError(t, json.Unmarshal([]byte(raw), &b))

	require.Len(t, b.Items, 4)
	assert.Equal(t, "# First\n", b.Items[0].Chapter.Content)
	assert.True(t, b.Items[1].Separator)
	assert.Equal(t, "Reference", b.Items[2].PartTitle)
	assert.True(t, b.Items[3].Chapter.IsDraft())
	assert.Equal(t, []string{"first.md", "nested/third.md"}, b.Paths())
}

func TestItem_UnmarshalUnknownTag(t *testing.T) {
	var it Item
	assert.Error(t, json.Unmarshal([]byte(`"Spacer"`), &it))
	assert.Error(t, json.Unmarshal([]byte(`{"Appendix": {}}`), &it))
}

func TestLoader_Load(t *testing.T) {
	fs := afero.NewMemMapFs()
	files := map[string]string{
		"book/src/SUMMARY.md":      "# Summary\n\n- [First](first.md)\n    - [Third](nested/third.md)\n",
		"book/src/first.md":        "# First\n\n```rust\nassert!(true);\n```\n",
		"book/src/nested/third.md": "# Third\n",
	}
	for p, content := range files {
		require.NoError(t, afero.WriteFile(fs, p, []byte(content), 0o644))
	}

	b, err := NewLoader(fs).Load("book/src", "My Book")
	require.NoError(t, err)

	assert.Equal(t, "My Book", b.Title)
	chapters := b.Chapters()
	require.Len(t, chapters, 2)
	assert.Equal(t, files["book/src/first.md"], chapters[0].Content)
	assert.Equal(t, files["book/src/nested/third.md"], chapters[1].Content)
}

func TestLoader_MissingChapterNamesPath(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "src/SUMMARY.md", []byte("- [Gone](gone.md)\n"), 0o644))

	_, err := NewLoader(fs).Load("src", "")
	require.Error(t, err)
	assert.Equal(t, errors.KindFileRead, errors.KindOf(err))
	assert.Contains(t, err.Error(), "gone.md")
}

func TestLoader_MissingSummary(t *testing.T) {
	_, err := NewLoader(afero.NewMemMapFs()).Load("src", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), SummaryFile)
}
