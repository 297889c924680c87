package scrape

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"
)

var recruitHref = regexp.MustCompile(`^/recruit/(\d+)$`)

// RecruitIDs collects the ids of every /recruit/<id> link on a search page.
// The result is deduplicated and sorted.
func RecruitIDs(page io.Reader) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(page)
	if err != nil {
		return nil, fmt.Errorf("failed to parse search page: %w", err)
	}

	seen := make(map[string]struct{})
	doc.Find("a[href]").Each(func(i int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if m := recruitHref.FindStringSubmatch(href); m != nil {
			seen[m[1]] = struct{}{}
		}
	})

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// JSONLDBlocks returns the non-empty bodies of all ld+json script tags.
func JSONLDBlocks(page io.Reader) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(page)
	if err != nil {
		return nil, fmt.Errorf("failed to parse recruit page: %w", err)
	}

	var blocks []string
	doc.Find(`script[type="application/ld+json"]`).Each(func(i int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text != "" {
			blocks = append(blocks, text)
		}
	})
	return blocks, nil
}

// ImageFromJSONLD returns the url of the first ImageObject found in a block's
// @graph. Blocks are tried in order; a block whose ImageObject has no url falls
// through to the next one. An unparsable block is an error.
func ImageFromJSONLD(blocks []string) (string, error) {
	for i, block := range blocks {
		if !gjson.Valid(block) {
			return "", fmt.Errorf("invalid JSON-LD in block %d", i)
		}

		graph := field(gjson.Parse(block), "@graph")
		if !graph.IsArray() {
			continue
		}

		var url string
		graph.ForEach(func(_, node gjson.Result) bool {
			if field(node, "@type").String() == "ImageObject" {
				url = field(node, "url").String()
				return false
			}
			return true
		})
		if url != "" {
			return url, nil
		}
	}
	return "", nil
}

// field looks up a top-level key without going through gjson path syntax,
// which treats a leading '@' as a modifier.
func field(obj gjson.Result, key string) gjson.Result {
	var out gjson.Result
	if !obj.IsObject() {
		return out
	}
	obj.ForEach(func(k, v gjson.Result) bool {
		if k.String() == key {
			out = v
			return false
		}
		return true
	})
	return out
}
