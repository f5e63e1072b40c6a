package vlan

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// MinID and MaxID bound valid 802.1Q VLAN ids.
const (
	MinID = 1
	MaxID = 4094
)

// Expand parses a switch-style VLAN expression ("134,137,1601-1704") into a
// sorted, deduplicated slice of VLAN ids. The literal token "none" is
// dropped. Ids outside [MinID, MaxID] fail closed.
func Expand(expr string) ([]int, error) {
	seen := make(map[int]bool)
	for _, tok := range strings.Split(expr, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" || tok == "none" {
			continue
		}
		lo, hi, found := strings.Cut(tok, "-")
		start, err := parseID(lo)
		if err != nil {
			return nil, err
		}
		end := start
		if found {
			end, err = parseID(hi)
			if err != nil {
				return nil, err
			}
			if end < start {
				return nil, fmt.Errorf("invalid vlan range %q", tok)
			}
		}
		for id := start; id <= end; id++ {
			seen[id] = true
		}
	}

	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid vlan id %q", s)
	}
	if id < MinID || id > MaxID {
		return 0, fmt.Errorf("vlan id %d out of range [%d, %d]", id, MinID, MaxID)
	}
	return id, nil
}

// Compress converts a set of VLAN ids into the compact hyphenated token list
// the switch accepts: duplicates removed, ascending order, maximal runs of
// consecutive ids collapsed to "a-b". Singletons stay bare, so the output
// round-trips through Expand.
func Compress(ids []int) []string {
	if len(ids) == 0 {
		return nil
	}

	uniq := make([]int, len(ids))
	copy(uniq, ids)
	sort.Ints(uniq)
	n := 0
	for i, id := range uniq {
		if i == 0 || id != uniq[n-1] {
			uniq[n] = id
			n++
		}
	}
	uniq = uniq[:n]

	var tokens []string
	start := uniq[0]
	prev := uniq[0]
	flush := func(last int) {
		if start == last {
			tokens = append(tokens, strconv.Itoa(start))
		} else {
			tokens = append(tokens, fmt.Sprintf("%d-%d", start, last))
		}
	}
	for _, id := range uniq[1:] {
		if id != prev+1 {
			flush(prev)
			start = id
		}
		prev = id
	}
	flush(prev)
	return tokens
}

// Join renders a slice of range tokens as a single comma-separated
// expression for one switch request.
func Join(tokens []string) string {
	return strings.Join(tokens, ",")
}
