package models

import (
	"slices"
	"strings"
)

// ResourceSummary identifies a queue or topic endpoint in a discovery listing.
type ResourceSummary struct {
	Name string `json:"name"`
}

// DestinationData is the composite result of a discovery call.
type DestinationData struct {
	Queues []ResourceSummary `json:"queues"`
	Topics []ResourceSummary `json:"topics"`
}

// SortedSummaries builds a summary set from names: duplicates collapse and the
// result is in ascending, case-sensitive lexicographic order.
func SortedSummaries(names []string) []ResourceSummary {
	sorted := slices.Clone(names)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	out := make([]ResourceSummary, 0, len(sorted))
	for _, name := range sorted {
		out = append(out, ResourceSummary{Name: name})
	}
	return out
}

// Names returns the summary names in order.
func Names(summaries []ResourceSummary) []string {
	out := make([]string, len(summaries))
	for i, s := range summaries {
		out[i] = s.Name
	}
	return out
}

func (d *DestinationData) String() string {
	return "queues=[" + strings.Join(Names(d.Queues), ",") + "] topics=[" + strings.Join(Names(d.Topics), ",") + "]"
}
