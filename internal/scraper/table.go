package scraper

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"

	"github.com/pfrederiksen/cbb-gamelogs/internal/gamelog"
)

// Table ids of the game log tables on a team's season pages.
const (
	BasicTableID    = "sgl-basic_NCAAM"
	AdvancedTableID = "sgl-advanced"
)

// gameNumberColumn is the site's running game counter.
const gameNumberColumn = "G"

// extractTable pulls the table with the given id out of page. Tables the site
// ships inside HTML comments are recovered. A page without the table returns
// gamelog.ErrNoDataForScope.
func extractTable(page []byte, id string) (gamelog.Table, error) {
	sel, err := findTable(page, id)
	if err != nil {
		return gamelog.Table{}, err
	}
	if sel.Length() == 0 {
		// Retry with comment markers removed.
		uncommented := bytes.ReplaceAll(bytes.ReplaceAll(page, []byte("<!--"), nil), []byte("-->"), nil)
		if sel, err = findTable(uncommented, id); err != nil {
			return gamelog.Table{}, err
		}
	}
	if sel.Length() == 0 {
		return gamelog.Table{}, errors.Wrapf(gamelog.ErrNoDataForScope, "table %q not found", id)
	}

	return tidy(readTable(sel.First())), nil
}

func findTable(page []byte, id string) (*goquery.Selection, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, errors.Wrap(err, "parsing HTML")
	}
	return doc.Find("table#" + id), nil
}

func cellTexts(row *goquery.Selection) []string {
	var cells []string
	row.Children().Filter("th, td").Each(func(_ int, c *goquery.Selection) {
		cells = append(cells, strings.TrimSpace(c.Text()))
	})
	return cells
}

// readTable returns the last header row (the first one groups columns under
// "School" and "Opponent") with duplicate names suffixed ".1", ".2" and blank
// names replaced by "Unnamed: <i>", and every body row padded to the header.
func readTable(table *goquery.Selection) gamelog.Table {
	var header []string
	table.Find("thead tr").Each(func(_ int, tr *goquery.Selection) {
		header = cellTexts(tr)
	})

	seen := make(map[string]int, len(header))
	cols := make([]string, len(header))
	for i, h := range header {
		if h == "" {
			h = "Unnamed: " + strconv.Itoa(i)
		}
		if n := seen[h]; n > 0 {
			cols[i] = h + "." + strconv.Itoa(n)
		} else {
			cols[i] = h
		}
		seen[h]++
	}

	var rows [][]string
	table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		cells := cellTexts(tr)
		for len(cells) < len(cols) {
			cells = append(cells, "")
		}
		rows = append(rows, cells)
	})

	return gamelog.Table{Columns: cols, Rows: rows}
}

// tidy drops the game counter and the unnamed spacer columns. The first
// unnamed column holds the venue marker and becomes Location.
func tidy(t gamelog.Table) gamelog.Table {
	var keep []int
	var cols []string
	location := false
	for i, c := range t.Columns {
		switch {
		case c == gameNumberColumn:
			continue
		case strings.HasPrefix(c, "Unnamed: "):
			if location {
				continue
			}
			location = true
			c = gamelog.ColLocation
		}
		keep = append(keep, i)
		cols = append(cols, c)
	}

	rows := make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		row := make([]string, 0, len(keep))
		for _, i := range keep {
			if i < len(r) {
				row = append(row, r[i])
			} else {
				row = append(row, "")
			}
		}
		rows = append(rows, row)
	}

	return gamelog.Table{Columns: cols, Rows: rows}
}
