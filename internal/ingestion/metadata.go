package ingestion

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/application-tailor/internal/types"
)

// pageMeta is what structured data and meta tags say about a posting.
type pageMeta struct {
	Title       string
	Company     string
	Description string
	Address     types.Address
}

// readMetadata reads schema.org JobPosting data and falls back to Open Graph tags and headings.
func readMetadata(html string) (pageMeta, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return pageMeta{}, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var meta pageMeta
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var data any
		if err := json.Unmarshal([]byte(s.Text()), &data); err != nil {
			return true
		}
		posting := findJobPosting(data)
		if posting == nil {
			return true
		}
		meta = fromJobPosting(posting)
		return false
	})

	if meta.Title == "" {
		meta.Title = firstNonEmpty(
			attr(doc, `meta[property="og:title"]`, "content"),
			doc.Find("h1").First().Text(),
			doc.Find("title").First().Text(),
		)
	}
	if meta.Company == "" {
		meta.Company = attr(doc, `meta[property="og:site_name"]`, "content")
	}
	meta.Title = strings.Join(strings.Fields(meta.Title), " ")
	meta.Company = strings.Join(strings.Fields(meta.Company), " ")
	return meta, nil
}

// findJobPosting returns the first JSON-LD object typed JobPosting, searching arrays and @graph.
func findJobPosting(v any) map[string]any {
	switch v := v.(type) {
	case []any:
		for _, item := range v {
			if found := findJobPosting(item); found != nil {
				return found
			}
		}
	case map[string]any:
		if hasType(v["@type"], "JobPosting") {
			return v
		}
		if graph, ok := v["@graph"]; ok {
			return findJobPosting(graph)
		}
	}
	return nil
}

func hasType(t any, want string) bool {
	switch t := t.(type) {
	case string:
		return t == want
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && s == want {
				return true
			}
		}
	}
	return false
}

func fromJobPosting(p map[string]any) pageMeta {
	meta := pageMeta{
		Title:       str(p["title"]),
		Description: str(p["description"]),
	}

	switch org := p["hiringOrganization"].(type) {
	case string:
		meta.Company = org
	case map[string]any:
		meta.Company = str(org["name"])
	}

	location := p["jobLocation"]
	if list, ok := location.([]any); ok && len(list) > 0 {
		location = list[0]
	}
	if loc, ok := location.(map[string]any); ok {
		if addr, ok := loc["address"].(map[string]any); ok {
			meta.Address = types.Address{
				Street:     str(addr["streetAddress"]),
				PostalCode: str(addr["postalCode"]),
				City:       str(addr["addressLocality"]),
			}
		}
	}
	return meta
}

// str returns strings as is and formats numbers, which some boards use for postal codes.
func str(v any) string {
	switch v := v.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return fmt.Sprintf("%.0f", v)
	default:
		return ""
	}
}

func attr(doc *goquery.Document, selector, name string) string {
	v, _ := doc.Find(selector).First().Attr(name)
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func hostOf(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}
