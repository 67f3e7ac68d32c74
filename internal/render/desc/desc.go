package desc

import (
	"strings"

	nethtml "golang.org/x/net/html"
)

// Lines renders a dish description to wrapped terminal lines. Descriptions
// come from the service as free text that may carry HTML markup; plain text
// passes through untouched apart from wrapping.
func Lines(raw string, width int) []string {
	text := Text(raw)
	if text == "" {
		return nil
	}
	return Wrap(text, width)
}

// Text strips any HTML markup from a description, collapsing whitespace and
// keeping paragraph breaks.
func Text(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "<") {
		return collapseWhitespace(raw)
	}

	doc, err := nethtml.Parse(strings.NewReader("<html><body>" + raw + "</body></html>"))
	if err != nil {
		return collapseWhitespace(raw)
	}
	body := findBody(doc)
	if body == nil {
		return collapseWhitespace(raw)
	}

	var b strings.Builder
	renderNode(&b, body)
	return tidyParagraphs(b.String())
}

func renderNode(b *strings.Builder, n *nethtml.Node) {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		switch child.Type {
		case nethtml.TextNode:
			b.WriteString(child.Data)
		case nethtml.ElementNode:
			switch child.Data {
			case "script", "style":
				continue
			case "br":
				b.WriteString("\n")
				continue
			}
			renderNode(b, child)
			if blockElement(child.Data) {
				b.WriteString("\n\n")
			}
		}
	}
}

func blockElement(tag string) bool {
	switch tag {
	case "p", "div", "li", "ul", "ol", "h1", "h2", "h3", "h4", "blockquote":
		return true
	}
	return false
}

func findBody(n *nethtml.Node) *nethtml.Node {
	if n.Type == nethtml.ElementNode && n.Data == "body" {
		return n
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if body := findBody(child); body != nil {
			return body
		}
	}
	return nil
}

func tidyParagraphs(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.Join(strings.Fields(line), " ")
		if trimmed == "" {
			if len(out) > 0 && out[len(out)-1] == "" {
				continue
			}
			out = append(out, "")
			continue
		}
		out = append(out, trimmed)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

func collapseWhitespace(s string) string {
	paragraphs := strings.Split(s, "\n")
	for i, p := range paragraphs {
		paragraphs[i] = strings.Join(strings.Fields(p), " ")
	}
	return strings.TrimSpace(strings.Join(paragraphs, "\n"))
}

// Wrap breaks text into lines of at most width runes, keeping paragraph
// breaks and splitting words longer than the width.
func Wrap(text string, width int) []string {
	if width < 1 {
		return []string{text}
	}
	paragraphs := strings.Split(text, "\n")
	out := make([]string, 0, len(paragraphs))

	for _, p := range paragraphs {
		words := strings.Fields(p)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := ""
		for _, word := range words {
			for len(word) > width {
				if line != "" {
					out = append(out, line)
					line = ""
				}
				out = append(out, word[:width])
				word = word[width:]
			}

			if line == "" {
				line = word
				continue
			}
			if len(line)+1+len(word) <= width {
				line += " " + word
				continue
			}
			out = append(out, line)
			line = word
		}
		if line != "" {
			out = append(out, line)
		}
	}

	return out
}
