package fragment

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	shellPrefix = `<!doctype html><html lang=en><head><meta charset="utf-8"></head><body>`
	shellSuffix = `</body></html>`
)

// tableContext maps start tags that the parser drops outside a table to the
// element they are parsed under.
var tableContext = map[atom.Atom]atom.Atom{
	atom.Caption:  atom.Table,
	atom.Colgroup: atom.Table,
	atom.Thead:    atom.Table,
	atom.Tbody:    atom.Table,
	atom.Tfoot:    atom.Table,
	atom.Tr:       atom.Tbody,
	atom.Td:       atom.Tr,
	atom.Th:       atom.Tr,
	atom.Col:      atom.Colgroup,
}

// Document is a parsed fragment. The wrapping shell is kept private; callers
// only see the children of the container element.
type Document struct {
	root      *html.Node
	container *html.Node
	doc       *goquery.Document
}

// Parse wraps fragment in the document shell and parses it. Malformed markup
// is recovered by the parser; Parse never fails. A fragment opening with a
// table part (tr, td, thead, ...) is parsed inside a matching table so its
// rows and cells survive.
func Parse(fragment string) *Document {
	if ctx, ok := tableContext[leadingTag(fragment)]; ok {
		if d := parseInTable(fragment, ctx); d != nil {
			return d
		}
	}
	root, err := html.Parse(strings.NewReader(shellPrefix + fragment + shellSuffix))
	if err != nil {
		// html.Parse only reports reader errors, which a strings.Reader never
		// produces. Fall back to an empty shell regardless.
		root = emptyShell()
	}
	body := findBody(root)
	if body == nil {
		root = emptyShell()
		body = findBody(root)
	}
	return &Document{
		root:      root,
		container: body,
		doc:       goquery.NewDocumentFromNode(root),
	}
}

func parseInTable(fragment string, ctx atom.Atom) *Document {
	root := emptyShell()
	table := element(atom.Table)
	findBody(root).AppendChild(table)
	container := table
	if ctx != atom.Table {
		container = element(ctx)
		table.AppendChild(container)
	}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), container)
	if err != nil {
		return nil
	}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return &Document{
		root:      root,
		container: container,
		doc:       goquery.NewDocumentFromNode(root),
	}
}

// leadingTag returns the atom of the first start tag in fragment, or zero
// when text or an end tag comes first.
func leadingTag(fragment string) atom.Atom {
	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch z.Next() {
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			return atom.Lookup(name)
		case html.TextToken:
			if len(bytes.TrimSpace(z.Text())) > 0 {
				return 0
			}
		case html.CommentToken, html.DoctypeToken:
		default:
			return 0
		}
	}
}

// Body returns a selection holding the element that contains the fragment.
// Find/FindMatcher on it reach every element of the fragment.
func (d *Document) Body() *goquery.Selection {
	if d == nil || d.doc == nil {
		return &goquery.Selection{}
	}
	return d.doc.Selection.FindNodes(d.container)
}

// Find runs a CSS selector over the fragment.
func (d *Document) Find(selector string) *goquery.Selection {
	return d.Body().Find(selector)
}

// FindMatcher runs a precompiled matcher over the fragment.
func (d *Document) FindMatcher(m goquery.Matcher) *goquery.Selection {
	return d.Body().FindMatcher(m)
}

// Children returns the top-level nodes of the fragment in document order.
func (d *Document) Children() []*html.Node {
	if d == nil || d.container == nil {
		return nil
	}
	var nodes []*html.Node
	for c := d.container.FirstChild; c != nil; c = c.NextSibling {
		nodes = append(nodes, c)
	}
	return nodes
}

// Serialize renders the fragment without the wrapping shell. Output is
// normalised: void elements close with "/>", and quotes in text content are
// escaped as &#39; and &#34;.
func (d *Document) Serialize() string {
	if d == nil || d.container == nil {
		return ""
	}
	var buf bytes.Buffer
	for c := d.container.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			// Render only fails on writer errors or void elements with
			// children, neither of which a parsed tree in a buffer produces.
			continue
		}
	}
	return buf.String()
}

// Serialize is the functional form of (*Document).Serialize.
func Serialize(d *Document) string {
	return d.Serialize()
}

// RoundTrip parses and re-serialises fragment without mutation.
func RoundTrip(fragment string) string {
	return Parse(fragment).Serialize()
}

func findBody(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	if n.Type == html.ElementNode && n.DataAtom == atom.Body {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findBody(c); found != nil {
			return found
		}
	}
	return nil
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: a.String(), DataAtom: a}
}

func emptyShell() *html.Node {
	root := &html.Node{Type: html.DocumentNode}
	htmlNode := &html.Node{Type: html.ElementNode, Data: "html", DataAtom: atom.Html}
	head := &html.Node{Type: html.ElementNode, Data: "head", DataAtom: atom.Head}
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	htmlNode.AppendChild(head)
	htmlNode.AppendChild(body)
	root.AppendChild(htmlNode)
	return root
}
