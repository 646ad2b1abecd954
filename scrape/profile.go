// Package scrape extracts flair records from a player profile page.
package scrape

import (
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/setanarut/flairsync"
)

// Markup selectors of the profile page.
const (
	containerSelector   = "div#all-flair"
	itemSelector        = "li"
	descriptionSelector = "div.flair-description"
)

// backgroundPosition matches the two offsets of a background-position. The px
// unit is optional since CSS allows a bare 0.
var backgroundPosition = regexp.MustCompile(`background-position:\s*(-?\d+)(?:px)?\s+(-?\d+)(?:px)?`)

// ParseProfile reads the profile HTML and returns every flair listed in the
// all-flair tab. Flair names use dots where the markup class uses hyphens.
func ParseProfile(r io.Reader) (flairsync.FlairRecords, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, flairsync.Wrap(err, flairsync.KindMarkupParse, "parse profile html")
	}
	container := doc.Find(containerSelector)
	if container.Length() == 0 {
		return nil, flairsync.Newf(flairsync.KindMarkupParse, "%s not found", containerSelector)
	}

	records := make(flairsync.FlairRecords)
	var parseErr error
	container.Find(itemSelector).EachWithBreak(func(i int, li *goquery.Selection) bool {
		name, rec, err := parseItem(li)
		if err != nil {
			parseErr = flairsync.Wrapf(err, flairsync.KindMarkupParse, "flair item %d", i)
			return false
		}
		records[name] = rec
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return records, nil
}

func parseItem(li *goquery.Selection) (string, flairsync.FlairRecord, error) {
	var rec flairsync.FlairRecord

	span := li.Find("span").First()
	if span.Length() == 0 {
		return "", rec, flairsync.New(flairsync.KindMarkupParse, "missing span")
	}
	class, _ := span.Attr("class")
	classes := strings.Fields(class)
	if len(classes) < 2 {
		return "", rec, flairsync.Newf(flairsync.KindMarkupParse, "span class %q has no flair name", class)
	}
	name := strings.ReplaceAll(classes[1], "-", ".")

	style, _ := span.Attr("style")
	offset, err := ParseOffset(style)
	if err != nil {
		return "", rec, err
	}
	desc := li.Find(descriptionSelector).First()
	if desc.Length() == 0 {
		return "", rec, flairsync.Newf(flairsync.KindMarkupParse, "flair %s has no description", name)
	}
	rec.Offset = offset
	rec.Description = strings.TrimSpace(desc.Text())
	return name, rec, nil
}

// ParseOffset reads the pixel pair out of a background-position style, for
// example "background-position: -32px -16px".
func ParseOffset(style string) ([2]int, error) {
	var off [2]int
	m := backgroundPosition.FindStringSubmatch(style)
	if m == nil {
		return off, flairsync.Newf(flairsync.KindMarkupParse, "no offset in style %q", style)
	}
	for i := range off {
		v, err := strconv.Atoi(m[i+1])
		if err != nil {
			return off, flairsync.Wrapf(err, flairsync.KindMarkupParse, "offset %q", m[i+1])
		}
		off[i] = v
	}
	return off, nil
}
