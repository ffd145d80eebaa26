// Package services holds the portal's pure domain logic: issue
// filtering and search, contribution aggregation, submission
// validation, and the my-contributions rollup. Everything here is
// total over loosely-shaped input and free of I/O, so the handlers in
// controllers stay thin.
package services

import (
	"sort"
	"strings"

	models "github.com/nayeem/cleanup-portal-go/models"
)

// Filters is the ephemeral view state a listing request carries:
// "all" (or empty) means no constraint on that axis.
type Filters struct {
	Category string
	Status   string
	Search   string
}

// Norm canonicalizes a value for matching: trimmed and lowercased.
func Norm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// FilterIssues returns the issues passing all three predicates, in
// their original order. Missing status is treated as "ongoing" before
// comparison. The search string matches as a substring anywhere in the
// normalized title, location, description, category, or status.
func FilterIssues(issues []models.Issue, f Filters) []models.Issue {
	category := Norm(f.Category)
	status := Norm(f.Status)
	search := Norm(f.Search)

	out := make([]models.Issue, 0, len(issues))
	for _, it := range issues {
		if category != "" && category != "all" && Norm(it.Category) != category {
			continue
		}

		st := Norm(it.Status)
		if st == "" {
			st = models.StatusOngoing
		}
		if status != "" && status != "all" && st != status {
			continue
		}

		if search != "" {
			haystack := strings.Join([]string{
				Norm(it.Title),
				Norm(it.Location),
				Norm(it.Description),
				Norm(it.Category),
				st,
			}, " ")
			if !strings.Contains(haystack, search) {
				continue
			}
		}

		out = append(out, it)
	}
	return out
}

// CategoryOption is one entry of the category dropdown.
type CategoryOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// CategoryOptions builds the deduplicated category list for the filter
// dropdown. Categories differing only in casing collapse to one option
// keyed by the lowercase form, keeping the first-seen casing as label.
// "All" always comes first; the rest are sorted by label.
func CategoryOptions(issues []models.Issue) []CategoryOption {
	seen := map[string]string{} // lowercase key -> first-seen label
	var keys []string
	for _, it := range issues {
		label := strings.TrimSpace(it.Category)
		if label == "" {
			continue
		}
		key := Norm(label)
		if _, ok := seen[key]; !ok {
			seen[key] = label
			keys = append(keys, key)
		}
	}

	sort.Slice(keys, func(i, j int) bool {
		return seen[keys[i]] < seen[keys[j]]
	})

	options := make([]CategoryOption, 0, len(keys)+1)
	options = append(options, CategoryOption{Value: "all", Label: "All"})
	for _, key := range keys {
		options = append(options, CategoryOption{Value: key, Label: seen[key]})
	}
	return options
}
