package book

import "github.com/smileynet/rolodex/internal/contact"

// GroupCount is the number of contacts in one group.
type GroupCount struct {
	Group contact.Group
	Count int
}

// Stats summarizes a Book.
type Stats struct {
	Total           int
	ByGroup         []GroupCount // every group, zero-filled, sorted by group name
	RecentlyUpdated int
}

// Count returns the number of contacts in g.
func (s Stats) Count(g contact.Group) int {
	for _, gc := range s.ByGroup {
		if gc.Group == g {
			return gc.Count
		}
	}
	return 0
}

// Statistics counts contacts in total, per group, and updated within the
// recent window ending now.
func (b *Book) Statistics() Stats {
	counts := make(map[contact.Group]int)
	cutoff := b.now().Add(-b.recent)
	recent := 0
	for _, c := range b.contacts {
		counts[c.Group]++
		if c.Updated.After(cutoff) {
			recent++
		}
	}

	groups := contact.Groups()
	byGroup := make([]GroupCount, len(groups))
	for i, g := range groups {
		byGroup[i] = GroupCount{Group: g, Count: counts[g]}
	}

	return Stats{
		Total:           len(b.contacts),
		ByGroup:         byGroup,
		RecentlyUpdated: recent,
	}
}
