// Package resequence keeps display orders dense when items are dragged around.
//
// A collection is split into groups (skill category, testimonial visibility,
// or a single group for projects). Inside every group the order values are
// always 0..n-1 with no gaps and no duplicates. Apply splices moved items out
// of their source group and into their destination group, then renumbers
// every group it touched.
//
// The package is pure: it never talks to storage. Repositories persist the
// returned placements in one transaction.
//
// WHY SORT MOVES BY TARGET POSITION?
// Each move is a splice: take the item out of its list, then insert it at the
// requested index. A splice shifts everything after the insertion point, so
// the order in which moves are applied matters. Take the group [A B C D] and
// the batch {A→2, D→0}.
//
// Applied in request order:
//
//	A→2   [B C D]   → [B C A D]
//	D→0   [B C A]   → [D B C A]   A ends at 3, not 2
//
// Applied by ascending target:
//
//	D→0   [A B C]   → [D A B C]
//	A→2   [D B C]   → [D B A C]   both land where asked
//
// Once positions 0..k-1 hold their requested items, every later move removes
// and inserts at k or beyond, so it can no longer push an earlier item out of
// place. A batch that names every item of a group (what a drag-and-drop UI
// sends) therefore lands exactly. Appends (no position) go last so they do not
// disturb anything that asked for a slot.
package resequence

import (
	"fmt"
	"sort"

	"github.com/sakif/portfolio-cms/internal/apperror"
)

// Item is an element's current (or resulting) placement.
type Item struct {
	ID    string `json:"id"`
	Group string `json:"group"`
	Order int    `json:"order"`
}

// Move asks for item ID to end up at position Order inside Group.
// An empty Group keeps the item in its current group. A nil, negative or
// out-of-range Order appends the item to the end of the group.
type Move struct {
	ID    string
	Group string
	Order *int
}

// Apply computes the placements that result from moves.
//
// The result holds every item of every touched group (source and
// destination groups of all moves), numbered from 0. Groups no move touched
// are left out, so callers only rewrite what changed.
func Apply(current []Item, moves []Move) ([]Item, error) {
	if len(moves) == 0 {
		return nil, apperror.ValidationFailed("items", "At least one item is required to reorder")
	}

	groups, where := partition(current)

	for _, m := range moves {
		if m.ID == "" {
			return nil, apperror.ValidationFailed("id", "Every reordered item needs an id")
		}
		if _, ok := where[m.ID]; !ok {
			return nil, apperror.ValidationFailed("id", fmt.Sprintf("Unknown item id %s", m.ID))
		}
	}

	touched := make(map[string]bool)
	for _, m := range byTarget(moves) {
		src := where[m.ID]
		dst := m.Group
		if dst == "" {
			dst = src
		}

		groups[src] = remove(groups[src], m.ID)
		groups[dst] = insert(groups[dst], m.ID, m.Order)
		where[m.ID] = dst

		touched[src] = true
		touched[dst] = true
	}

	names := make([]string, 0, len(touched))
	for g := range touched {
		names = append(names, g)
	}
	sort.Strings(names)

	var out []Item
	for _, g := range names {
		for i, id := range groups[g] {
			out = append(out, Item{ID: id, Group: g, Order: i})
		}
	}
	return out, nil
}

// Densify renumbers every group 0..n-1, keeping the current relative order.
// It is used after inserts, deletes and group changes, which can leave gaps.
func Densify(current []Item) []Item {
	groups, _ := partition(current)

	names := make([]string, 0, len(groups))
	for g := range groups {
		names = append(names, g)
	}
	sort.Strings(names)

	out := make([]Item, 0, len(current))
	for _, g := range names {
		for i, id := range groups[g] {
			out = append(out, Item{ID: id, Group: g, Order: i})
		}
	}
	return out
}

// Changed returns the entries of next whose group or order differs from prev.
func Changed(prev, next []Item) []Item {
	before := make(map[string]Item, len(prev))
	for _, it := range prev {
		before[it.ID] = it
	}
	var out []Item
	for _, it := range next {
		if old, ok := before[it.ID]; !ok || old != it {
			out = append(out, it)
		}
	}
	return out
}

// partition splits items into per-group id lists ordered by their current
// Order. Ties keep input order. It also returns each id's group.
func partition(items []Item) (map[string][]string, map[string]string) {
	sorted := make([]Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})

	groups := make(map[string][]string)
	where := make(map[string]string, len(items))
	for _, it := range sorted {
		groups[it.Group] = append(groups[it.Group], it.ID)
		where[it.ID] = it.Group
	}
	return groups, where
}

// byTarget orders moves by requested position, ascending, with appends last.
// Applying a full permutation in this order lands every item exactly: once
// positions 0..k-1 are filled, later removals only happen at k or beyond.
func byTarget(moves []Move) []Move {
	sorted := make([]Move, len(moves))
	copy(sorted, moves)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Order, sorted[j].Order
		switch {
		case a == nil || *a < 0:
			return false
		case b == nil || *b < 0:
			return true
		default:
			return *a < *b
		}
	})
	return sorted
}

func remove(list []string, id string) []string {
	for i, v := range list {
		if v == id {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return list
}

func insert(list []string, id string, pos *int) []string {
	if pos == nil || *pos < 0 || *pos >= len(list) {
		return append(list, id)
	}
	out := make([]string, 0, len(list)+1)
	out = append(out, list[:*pos]...)
	out = append(out, id)
	return append(out, list[*pos:]...)
}
