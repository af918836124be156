// Package pagerange parses page selectors such as "1-3, 5, 7-9".
package pagerange

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// All selects every page. An empty selector means the same thing.
const All = "all"

// ErrInvalidRange is wrapped by every parse error.
var ErrInvalidRange = errors.New("invalid page range")

// Parse returns the 1-based page numbers selected by selector, ascending
// and without duplicates. pageCount bounds the selection.
func Parse(selector string, pageCount int) ([]int, error) {
	selector = strings.TrimSpace(selector)
	if selector == "" || strings.EqualFold(selector, All) {
		pages := make([]int, pageCount)
		for i := range pages {
			pages[i] = i + 1
		}
		return pages, nil
	}

	seen := make(map[int]bool)
	for _, part := range strings.Split(selector, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		from, to, err := parsePart(part)
		if err != nil {
			return nil, err
		}
		if to > pageCount {
			return nil, fmt.Errorf("%w: %q exceeds page count %d", ErrInvalidRange, part, pageCount)
		}
		for p := from; p <= to; p++ {
			seen[p] = true
		}
	}

	if len(seen) == 0 {
		return nil, fmt.Errorf("%w: %q selects no pages", ErrInvalidRange, selector)
	}

	pages := make([]int, 0, len(seen))
	for p := range seen {
		pages = append(pages, p)
	}
	sort.Ints(pages)
	return pages, nil
}

// parsePart handles a single "N" or "A-B" item.
func parsePart(part string) (int, int, error) {
	lo, hi, isRange := strings.Cut(part, "-")
	from, err := parsePage(lo, part)
	if err != nil {
		return 0, 0, err
	}
	if !isRange {
		return from, from, nil
	}

	to, err := parsePage(hi, part)
	if err != nil {
		return 0, 0, err
	}
	if from > to {
		return 0, 0, fmt.Errorf("%w: %q runs backwards", ErrInvalidRange, part)
	}
	return from, to, nil
}

func parsePage(s, part string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a page number", ErrInvalidRange, part)
	}
	if n < 1 {
		return 0, fmt.Errorf("%w: %q must start at page 1", ErrInvalidRange, part)
	}
	return n, nil
}
