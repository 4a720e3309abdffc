// Package dom is a small query layer over parsed HTML documents.
// Elements are located by tag name plus an exact-match attribute filter,
// the way quote-page markers are identified.
package dom

import (
	"fmt"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Attrs is an attribute filter. Every key must be present on an element
// with exactly the given value; the class attribute is compared as a whole
// string, not token by token.
type Attrs map[string]string

// String renders the filter as a CSS-like selector suffix, for error messages
func (a Attrs) String() string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "[%s=%q]", k, a[k])
	}
	return b.String()
}

// Document is a parsed HTML page
type Document struct {
	doc *goquery.Document
}

// Parse builds a Document from an HTML body
func Parse(body string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &Document{doc: doc}, nil
}

// FindOne returns the first element in document order matching tag and attrs
func (d *Document) FindOne(tag string, attrs Attrs) (*Element, bool) {
	return first(match(d.doc.Find(tag), attrs))
}

// FindAll returns every element matching tag and attrs, in document order
func (d *Document) FindAll(tag string, attrs Attrs) []*Element {
	return wrap(match(d.doc.Find(tag), attrs))
}

// Element is a single node of a Document
type Element struct {
	sel *goquery.Selection
}

// Text returns the combined text of the element and all its descendants
func (e *Element) Text() string {
	return e.sel.Text()
}

// Attr returns the value of the named attribute
func (e *Element) Attr(name string) (string, bool) {
	return e.sel.Attr(name)
}

// Children returns all descendants of the element with the given tag
func (e *Element) Children(tag string) []*Element {
	return wrap(e.sel.Find(tag))
}

// FindOne returns the first descendant matching tag and attrs
func (e *Element) FindOne(tag string, attrs Attrs) (*Element, bool) {
	return first(match(e.sel.Find(tag), attrs))
}

func match(sel *goquery.Selection, attrs Attrs) *goquery.Selection {
	if len(attrs) == 0 {
		return sel
	}
	return sel.FilterFunction(func(_ int, s *goquery.Selection) bool {
		for k, want := range attrs {
			if got, ok := s.Attr(k); !ok || got != want {
				return false
			}
		}
		return true
	})
}

func first(sel *goquery.Selection) (*Element, bool) {
	if sel.Length() == 0 {
		return nil, false
	}
	return &Element{sel: sel.First()}, true
}

func wrap(sel *goquery.Selection) []*Element {
	out := make([]*Element, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, &Element{sel: s})
	})
	return out
}
