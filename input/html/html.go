package html

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/htmlpix/core"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a parsed HTML document together with its style sheets.
type Document struct {
	Root        *html.Node
	Title       string
	Lang        string   // language of the root element, if given
	StyleSheets []string // in document order
	BaseDir     string   // directory of the document file, if read from a file
}

// Parse reads an HTML document. Linked style sheets are ignored.
func Parse(r io.Reader) (*Document, error) {
	return parse(r, "")
}

// ParseString parses an HTML document from a string.
func ParseString(s string) (*Document, error) {
	return parse(strings.NewReader(s), "")
}

// ParseFile reads an HTML document from a file. Style sheets linked with
// relative URLs are read from the file system; missing sheets are
// reported to the trace and skipped.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, core.WrapError(err, core.EMISSING, "HTML file %s not found", path)
		}
		return nil, core.WrapError(err, core.EINVALID, "cannot read HTML file %s", path)
	}
	return parse(bytes.NewReader(data), filepath.Dir(path))
}

func parse(r io.Reader, basedir string) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse HTML")
	}
	doc := &Document{Root: root, BaseDir: basedir}
	doc.collect(root)
	tracer().Debugf("parsed HTML document %q with %d style sheets", doc.Title, len(doc.StyleSheets))
	return doc, nil
}

func (doc *Document) collect(n *html.Node) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Html:
			doc.Lang = Attr(n, "lang")
		case atom.Title:
			if doc.Title == "" {
				doc.Title = strings.TrimSpace(TextContent(n))
			}
		case atom.Style:
			if media := Attr(n, "media"); media != "" {
				doc.StyleSheets = append(doc.StyleSheets, "@media "+media+" {"+TextContent(n)+"}")
			} else {
				doc.StyleSheets = append(doc.StyleSheets, TextContent(n))
			}
		case atom.Link:
			if strings.EqualFold(Attr(n, "rel"), "stylesheet") {
				doc.link(Attr(n, "href"))
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		doc.collect(c)
	}
}

func (doc *Document) link(href string) {
	if doc.BaseDir == "" || href == "" || strings.Contains(href, "://") {
		tracer().Infof("ignoring linked style sheet %q", href)
		return
	}
	path := href
	if !filepath.IsAbs(path) {
		path = filepath.Join(doc.BaseDir, filepath.FromSlash(href))
	}
	css, err := os.ReadFile(path)
	if err != nil {
		tracer().Errorf("cannot read style sheet: %v", err)
		return
	}
	doc.StyleSheets = append(doc.StyleSheets, string(css))
}

// Body returns the body element of the document, or nil.
func (doc *Document) Body() *html.Node {
	return Find(doc.Root, atom.Body)
}

// Find returns the first element of type a in the subtree of n, or nil.
func Find(n *html.Node, a atom.Atom) *html.Node {
	if n == nil {
		return nil
	}
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if f := Find(c, a); f != nil {
			return f
		}
	}
	return nil
}

// Attr returns the value of an attribute of n, or "".
func Attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

// TextContent concatenates the text nodes of the subtree of n.
func TextContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
