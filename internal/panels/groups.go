package panels

import (
	"sort"

	"listingdash/domain/listing"

	"github.com/montanaflynn/stats"
)

// Count is the number of listings sharing a key
type Count struct {
	Key string
	N   int
}

type keyFunc func(listing.Listing) string
type valueFunc func(listing.Listing) float64

func byRoomType(l listing.Listing) string      { return l.RoomType }
func byBorough(l listing.Listing) string       { return l.Borough }
func byNeighbourhood(l listing.Listing) string { return l.Neighbourhood }
func byHost(l listing.Listing) string          { return l.HostName }

func price(l listing.Listing) float64        { return l.Price }
func availability(l listing.Listing) float64 { return float64(l.Availability365) }

// groupValues collects values per key; keys come back sorted ascending.
// Listings with a missing key are left out of every grouping.
func groupValues(view *listing.View, key keyFunc, value valueFunc) ([]string, map[string][]float64) {
	groups := make(map[string][]float64)
	for _, l := range view.Listings {
		k := key(l)
		if k == "" {
			continue
		}
		groups[k] = append(groups[k], value(l))
	}
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, groups
}

type aggregate func(stats.Float64Data) (float64, error)

func aggregateBy(view *listing.View, key keyFunc, value valueFunc, agg aggregate) ([]string, []float64) {
	if view.Empty() {
		return nil, nil
	}
	keys, groups := groupValues(view, key, value)
	out := make([]float64, len(keys))
	for i, k := range keys {
		v, err := agg(groups[k])
		if err != nil {
			continue
		}
		out[i] = v
	}
	return keys, out
}

// meanBy returns mean(value) per key with keys sorted
func meanBy(view *listing.View, key keyFunc, value valueFunc) ([]string, []float64) {
	return aggregateBy(view, key, value, stats.Mean)
}

// medianBy returns median(value) per key with keys sorted
func medianBy(view *listing.View, key keyFunc, value valueFunc) ([]string, []float64) {
	return aggregateBy(view, key, value, stats.Median)
}

// valueCounts counts listings per key, ordered by count descending and then by
// first occurrence in the view
func valueCounts(view *listing.View, key keyFunc) []Count {
	if view.Empty() {
		return nil
	}
	index := make(map[string]int)
	var counts []Count
	for _, l := range view.Listings {
		k := key(l)
		if k == "" {
			continue
		}
		i, ok := index[k]
		if !ok {
			i = len(counts)
			index[k] = i
			counts = append(counts, Count{Key: k})
		}
		counts[i].N++
	}
	if len(counts) == 0 {
		return nil
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].N > counts[j].N
	})
	return counts
}

// TopN returns the n most frequent keys with the valueCounts tie-break
func TopN(view *listing.View, key func(listing.Listing) string, n int) []Count {
	counts := valueCounts(view, key)
	if len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

// crosstab returns the row-normalised percentage table of rowKey x colKey.
// Rows and columns are sorted; each row sums to 100.
func crosstab(view *listing.View, rowKey, colKey keyFunc) (rows, cols []string, pct [][]float64) {
	if view.Empty() {
		return nil, nil, nil
	}
	cells := make(map[string]map[string]int)
	rowTotals := make(map[string]int)
	colSeen := make(map[string]bool)
	for _, l := range view.Listings {
		r, c := rowKey(l), colKey(l)
		if r == "" || c == "" {
			continue
		}
		if cells[r] == nil {
			cells[r] = make(map[string]int)
			rows = append(rows, r)
		}
		cells[r][c]++
		rowTotals[r]++
		if !colSeen[c] {
			colSeen[c] = true
			cols = append(cols, c)
		}
	}
	sort.Strings(rows)
	sort.Strings(cols)

	pct = make([][]float64, len(rows))
	for i, r := range rows {
		pct[i] = make([]float64, len(cols))
		for j, c := range cols {
			pct[i][j] = float64(cells[r][c]) / float64(rowTotals[r]) * 100
		}
	}
	return rows, cols, pct
}
