package abstract

import (
	"html"
	"strings"
	"unicode/utf8"

	nethtml "golang.org/x/net/html"
)

const ellipsis = "…"

// Text flattens a post body to plain text. Block elements and <br> become
// line breaks; scripts, styles and images are dropped.
func Text(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	doc, err := nethtml.Parse(strings.NewReader("<html><body>" + raw + "</body></html>"))
	if err != nil {
		return normalizeText(html.UnescapeString(raw))
	}
	body := findBodyNode(doc)
	if body == nil {
		return normalizeText(html.UnescapeString(raw))
	}
	var b strings.Builder
	writeNode(&b, body)
	return normalizeText(b.String())
}

// Lines wraps the flattened body to width and keeps at most maxLines lines,
// marking a cut with an ellipsis. maxLines <= 0 keeps everything.
func Lines(raw string, width, maxLines int) []string {
	text := Text(raw)
	if text == "" {
		return nil
	}
	lines := wrapText(text, width)
	if maxLines <= 0 || len(lines) <= maxLines {
		return lines
	}
	lines = lines[:maxLines]
	last := lines[maxLines-1]
	if width > 0 && utf8.RuneCountInString(last)+1 > width {
		last = string([]rune(last)[:max(0, width-1)])
	}
	lines[maxLines-1] = last + ellipsis
	return lines
}

func writeNode(b *strings.Builder, node *nethtml.Node) {
	switch node.Type {
	case nethtml.TextNode:
		b.WriteString(node.Data)
		return
	case nethtml.ElementNode:
	default:
		return
	}
	tag := strings.ToLower(node.Data)
	switch tag {
	case "script", "style", "noscript", "img", "svg":
		return
	case "br":
		b.WriteString("\n")
		return
	}
	block := isBlockElement(tag)
	if block {
		b.WriteString("\n")
	}
	if tag == "li" {
		b.WriteString("- ")
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		writeNode(b, child)
	}
	if block {
		b.WriteString("\n")
	}
}

func isBlockElement(tag string) bool {
	switch tag {
	case "p", "div", "section", "article", "header", "footer", "blockquote", "pre",
		"ul", "ol", "li", "table", "tr", "h1", "h2", "h3", "h4", "h5", "h6", "figure", "hr":
		return true
	default:
		return false
	}
}

// normalizeText collapses whitespace inside lines and drops empty lines.
func normalizeText(s string) string {
	s = html.UnescapeString(s)
	parts := strings.Split(s, "\n")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.Join(strings.Fields(part), " ")
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	normalized := strings.Join(out, "\n")
	replacer := strings.NewReplacer(
		" .", ".",
		" ,", ",",
		" ;", ";",
		" !", "!",
		" ?", "?",
	)
	return replacer.Replace(normalized)
}

func wrapText(text string, width int) []string {
	if width < 1 {
		return strings.Split(text, "\n")
	}
	paragraphs := strings.Split(text, "\n")
	out := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		words := strings.Fields(p)
		line := ""
		for _, word := range words {
			for utf8.RuneCountInString(word) > width {
				if line != "" {
					out = append(out, line)
					line = ""
				}
				r := []rune(word)
				out = append(out, string(r[:width]))
				word = string(r[width:])
			}
			if line == "" {
				line = word
				continue
			}
			if utf8.RuneCountInString(line)+1+utf8.RuneCountInString(word) <= width {
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

func findBodyNode(node *nethtml.Node) *nethtml.Node {
	if node == nil {
		return nil
	}
	if node.Type == nethtml.ElementNode && strings.EqualFold(node.Data, "body") {
		return node
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if found := findBodyNode(child); found != nil {
			return found
		}
	}
	return nil
}
