package service

import (
	"sort"

	"alcyxob/gym-management/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PartitionSelection splits options into the ones in selectedIDs and the
// rest, both sorted by display text. IDs that match no option are ignored.
func PartitionSelection(options []domain.Option, selectedIDs []primitive.ObjectID) (selected, available []domain.Option) {
	chosen := make(map[primitive.ObjectID]bool, len(selectedIDs))
	for _, id := range selectedIDs {
		chosen[id] = true
	}

	selected = []domain.Option{}
	available = []domain.Option{}
	for _, o := range options {
		if chosen[o.ID] {
			selected = append(selected, o)
		} else {
			available = append(available, o)
		}
	}

	byText := func(list []domain.Option) func(i, j int) bool {
		return func(i, j int) bool { return list[i].Text < list[j].Text }
	}
	sort.SliceStable(selected, byText(selected))
	sort.SliceStable(available, byText(available))
	return selected, available
}

// uniqueIDs drops duplicates and zero IDs, keeping first-seen order.
func uniqueIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]bool, len(ids))
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if id.IsZero() || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
