package htmltable

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// ExtractPairs reads an HTML document and returns the first two cell
// values of every data row in the first <table> as (x, y) pairs.
// Header rows (cells marked <th>) and rows with fewer than two cells
// are skipped.
func ExtractPairs(r io.Reader) ([][2]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	table := findFirst(doc, "table")
	if table == nil {
		return nil, fmt.Errorf("no <table> element found")
	}

	var pairs [][2]string
	for _, row := range findAll(table, "tr") {
		cells := findAll(row, "td")
		if len(cells) < 2 {
			continue
		}
		x := strings.TrimSpace(text(cells[0]))
		y := strings.TrimSpace(text(cells[1]))
		if x == "" || y == "" {
			continue
		}
		pairs = append(pairs, [2]string{x, y})
	}

	if len(pairs) == 0 {
		return nil, fmt.Errorf("no data rows in table")
	}
	return pairs, nil
}

func findFirst(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func findAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == tag {
			out = append(out, c)
			continue
		}
		out = append(out, findAll(c, tag)...)
	}
	return out
}

func text(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(text(c))
	}
	return b.String()
}
