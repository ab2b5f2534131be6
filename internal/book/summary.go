package book

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// SummaryFile is the table of contents every book source directory carries.
const SummaryFile = "SUMMARY.md"

// ParseSummary parses a SUMMARY.md table of contents into book items.
//
// Layout rules: a level-1 heading before any entry is the summary's own title
// and is ignored; later headings are part titles. Links in plain paragraphs are
// prefix/suffix chapters, links in (nested) lists are numbered chapters and
// their sub-chapters, and a thematic break is a separator. A link with an empty
// destination is a draft chapter. Chapter contents are left empty.
func ParseSummary(src []byte) ([]Item, error) {
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var items []Item
	seenEntry := false
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *gmast.Heading:
			if !seenEntry {
				seenEntry = true
				continue
			}
			items = append(items, Item{PartTitle: inlineText(node, src)})
		case *gmast.Paragraph:
			seenEntry = true
			for _, link := range links(node) {
				ch, err := chapterFromLink(link, src)
				if err != nil {
					return nil, err
				}
				items = append(items, Item{Chapter: ch})
			}
		case *gmast.List:
			seenEntry = true
			listed, err := parseList(node, src)
			if err != nil {
				return nil, err
			}
			items = append(items, listed...)
		case *gmast.ThematicBreak:
			seenEntry = true
			items = append(items, Item{Separator: true})
		}
	}
	return items, nil
}

func parseList(list *gmast.List, src []byte) ([]Item, error) {
	var items []Item
	for li := list.FirstChild(); li != nil; li = li.NextSibling() {
		var ch *Chapter
		var subs []Item
		for c := li.FirstChild(); c != nil; c = c.NextSibling() {
			if nested, ok := c.(*gmast.List); ok {
				listed, err := parseList(nested, src)
				if err != nil {
					return nil, err
				}
				subs = append(subs, listed...)
				continue
			}
			if ch != nil {
				continue
			}
			if found := links(c); len(found) > 0 {
				var err error
				if ch, err = chapterFromLink(found[0], src); err != nil {
					return nil, err
				}
			}
		}
		if ch == nil {
			return nil, fmt.Errorf("summary list item without a chapter link: %q", inlineText(li, src))
		}
		ch.SubItems = subs
		items = append(items, Item{Chapter: ch})
	}
	return items, nil
}

func chapterFromLink(link *gmast.Link, src []byte) (*Chapter, error) {
	ch := &Chapter{Name: inlineText(link, src)}
	dest := string(link.Destination)
	if dest == "" {
		return ch, nil
	}
	if unescaped, err := url.PathUnescape(dest); err == nil {
		dest = unescaped
	}
	p := normalizePath(dest)
	if path.IsAbs(p) || p == ".." || strings.HasPrefix(p, "../") {
		return nil, fmt.Errorf("chapter %q must be relative to the source directory, got %q", ch.Name, dest)
	}
	ch.Path = p
	return ch, nil
}

// links returns the links under n in document order, without descending into lists.
func links(n gmast.Node) []*gmast.Link {
	var out []*gmast.Link
	_ = gmast.Walk(n, func(c gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch node := c.(type) {
		case *gmast.List:
			if c != n {
				return gmast.WalkSkipChildren, nil
			}
		case *gmast.Link:
			out = append(out, node)
			return gmast.WalkSkipChildren, nil
		}
		return gmast.WalkContinue, nil
	})
	return out
}

// inlineText concatenates the literal text below n.
func inlineText(n gmast.Node, src []byte) string {
	var b strings.Builder
	_ = gmast.Walk(n, func(c gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch node := c.(type) {
		case *gmast.List:
			if c != n {
				return gmast.WalkSkipChildren, nil
			}
		case *gmast.Text:
			b.Write(node.Segment.Value(src))
			if node.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *gmast.String:
			b.Write(node.Value)
		}
		return gmast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

func normalizePath(p string) string {
	p = path.Clean(filepath.ToSlash(p))
	return strings.TrimPrefix(p, "./")
}
