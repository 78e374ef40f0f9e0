package works

import "sort"

// Shown filters to the artworks whose show flag is set, keeping
// dataset order. The returned slice borrows into items.
func Shown(items []Artwork) []*Artwork {
	var out []*Artwork
	for i := range items {
		if items[i].Show {
			out = append(out, &items[i])
		}
	}
	return out
}

// GroupBySeries partitions artworks by their series id, substituting
// OtherSeries when unset. Within each group, first-seen order.
func GroupBySeries(items []*Artwork) map[string][]*Artwork {
	groups := map[string][]*Artwork{}
	for _, a := range items {
		key := a.Series
		if key == "" {
			key = OtherSeries
		}
		groups[key] = append(groups[key], a)
	}
	return groups
}

// GroupByTag partitions artworks by tag membership; an artwork appears
// in one group per tag it carries. Within each group, first-seen order.
func GroupByTag(items []*Artwork) map[string][]*Artwork {
	groups := map[string][]*Artwork{}
	for _, a := range items {
		for _, t := range a.Tags {
			groups[t] = append(groups[t], a)
		}
	}
	return groups
}

// OrderByList reorders items so that ids named in order come first, in
// list position; everything else follows in its original relative
// order. Stable: unlisted items never swap among themselves.
func OrderByList(items []*Artwork, order []string) []*Artwork {
	rank := make(map[string]int, len(order))
	for i, id := range order {
		rank[id] = i
	}
	sentinel := len(order) // sorts after every listed item

	out := make([]*Artwork, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		ri, ok := rank[out[i].ID]
		if !ok {
			ri = sentinel
		}
		rj, ok := rank[out[j].ID]
		if !ok {
			rj = sentinel
		}
		return ri < rj
	})
	return out
}
