package scanner

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// refAttrs are the HTML attributes that can point at a static asset.
var refAttrs = map[string]bool{
	"src":    true,
	"href":   true,
	"poster": true,
}

// extractHTMLRefs parses HTML content and returns every attribute value
// that may name an asset: src, href, poster, and the URL components of
// srcset.
//
// Design decision: We use golang.org/x/net/html rather than regex
// because it correctly handles malformed markup, which is common in
// hand-written templates, and is easier to maintain than attribute
// regexes.
func extractHTMLRefs(content io.Reader) ([]string, error) {
	doc, err := html.Parse(content)
	if err != nil {
		return nil, err
	}

	var refs []string
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, attr := range n.Attr {
				key := strings.ToLower(attr.Key)
				switch {
				case refAttrs[key]:
					refs = append(refs, attr.Val)
				case key == "srcset":
					refs = append(refs, splitSrcset(attr.Val)...)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(doc)

	return refs, nil
}

// splitSrcset extracts the URL component of each srcset entry.
// Entries are comma-separated "url [descriptor]" pairs.
func splitSrcset(srcset string) []string {
	var urls []string
	for _, entry := range strings.Split(srcset, ",") {
		fields := strings.Fields(entry)
		if len(fields) > 0 {
			urls = append(urls, fields[0])
		}
	}
	return urls
}
