// Package book models a documentation book as an ordered tree of chapters and
// grouping nodes, and loads one from disk or from a host render context.
package book

import (
	"encoding/json"
	"fmt"
)

// Chapter is a single page of the book.
type Chapter struct {
	Name    string
	Content string
	// Path is the chapter file relative to the book's source directory, using
	// forward slashes. Draft chapters (listed without a file) have an empty Path.
	Path     string
	SubItems []Item
}

// IsDraft reports whether the chapter has no backing file.
func (c *Chapter) IsDraft() bool {
	return c.Path == ""
}

// Item is one node of the book tree: exactly one of Chapter, Separator or
// PartTitle is set.
type Item struct {
	Chapter   *Chapter
	Separator bool
	PartTitle string
}

// Book is the ordered tree of items making up a book.
type Book struct {
	Title string
	Items []Item
}

// Chapters returns every non-draft chapter in depth-first reading order.
// Separators and part titles are grouping nodes and never yield a chapter.
func (b *Book) Chapters() []*Chapter {
	if b == nil {
		return nil
	}
	var out []*Chapter
	var walk func(items []Item)
	walk = func(items []Item) {
		for _, it := range items {
			if it.Chapter == nil {
				continue
			}
			if !it.Chapter.IsDraft() {
				out = append(out, it.Chapter)
			}
			walk(it.Chapter.SubItems)
		}
	}
	walk(b.Items)
	return out
}

// Paths returns the Path of every chapter returned by Chapters, in order.
func (b *Book) Paths() []string {
	chapters := b.Chapters()
	paths := make([]string, 0, len(chapters))
	for _, ch := range chapters {
		paths = append(paths, ch.Path)
	}
	return paths
}

// UnmarshalJSON decodes the host's externally tagged item representation:
// {"Chapter": {...}}, "Separator" or {"PartTitle": "..."}.
func (i *Item) UnmarshalJSON(data []byte) error {
	var tag string
	if err := json.Unmarshal(data, &tag); err == nil {
		if tag != "Separator" {
			return fmt.Errorf("unknown book item %q", tag)
		}
		*i = Item{Separator: true}
		return nil
	}

	var tagged struct {
		Chapter   *chapterJSON `json:"Chapter"`
		PartTitle *string      `json:"PartTitle"`
	}
	if err := json.Unmarshal(data, &tagged); err != nil {
		return err
	}
	switch {
	case tagged.Chapter != nil:
		*i = Item{Chapter: tagged.Chapter.chapter()}
	case tagged.PartTitle != nil:
		*i = Item{PartTitle: *tagged.PartTitle}
	default:
		return fmt.Errorf("unknown book item %s", data)
	}
	return nil
}

// chapterJSON mirrors the host encoding, where a draft chapter's path is null.
type chapterJSON struct {
	Name     string  `json:"name"`
	Content  string  `json:"content"`
	Path     *string `json:"path"`
	SubItems []Item  `json:"sub_items"`
}

func (c *chapterJSON) chapter() *Chapter {
	ch := &Chapter{Name: c.Name, Content: c.Content, SubItems: c.SubItems}
	if c.Path != nil && *c.Path != "" {
		ch.Path = normalizePath(*c.Path)
	}
	return ch
}

// UnmarshalJSON decodes the host's book representation ({"sections": [...]}).
func (b *Book) UnmarshalJSON(data []byte) error {
	var raw struct {
		Sections []Item `json:"sections"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	b.Items = raw.Sections
	return nil
}
