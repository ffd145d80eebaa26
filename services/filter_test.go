package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	models "github.com/nayeem/cleanup-portal-go/models"
)

func issueFixture() []models.Issue {
	return []models.Issue{
		{Title: "Garbage near Road 8", Category: "Garbage", Location: "Mohakhali, Dhaka", Description: "Overflowing bins", Status: "ongoing"},
		{Title: "Broken footpath", Category: "Footpath", Location: "Banani", Description: "Cracked slabs", Status: "in-progress"},
		{Title: "Illegal dumping", Category: "Dumping", Location: "Gulshan 1", Description: "Construction waste", Status: "resolved"},
		{Title: "Waterlogged street", Category: "Waterlogging", Location: "Mirpur 10", Description: "Knee-deep water after rain"},
	}
}

func TestFilterIssues_Identity(t *testing.T) {
	t.Parallel()

	issues := issueFixture()
	got := FilterIssues(issues, Filters{Category: "all", Status: "all", Search: ""})
	require.Equal(t, issues, got)

	// empty filter values behave like "all"
	got = FilterIssues(issues, Filters{})
	require.Equal(t, issues, got)
}

func TestFilterIssues_CategoryCaseInsensitive(t *testing.T) {
	t.Parallel()

	issues := []models.Issue{
		{Title: "a", Category: "Garbage"},
		{Title: "b", Category: "garbage "},
		{Title: "c", Category: "Footpath"},
	}

	got := FilterIssues(issues, Filters{Category: "garbage"})
	require.Len(t, got, 2)
	require.Equal(t, "a", got[0].Title)
	require.Equal(t, "b", got[1].Title)
}

func TestFilterIssues_MissingStatusDefaultsToOngoing(t *testing.T) {
	t.Parallel()

	issues := []models.Issue{
		{Title: "no status"},
		{Title: "resolved", Status: "resolved"},
	}

	got := FilterIssues(issues, Filters{Status: "ongoing"})
	require.Len(t, got, 1)
	require.Equal(t, "no status", got[0].Title)
}

func TestFilterIssues_SearchSpansFields(t *testing.T) {
	t.Parallel()

	issues := issueFixture()

	t.Run("matches location", func(t *testing.T) {
		got := FilterIssues(issues, Filters{Search: "  MIRPUR "})
		require.Len(t, got, 1)
		require.Equal(t, "Waterlogged street", got[0].Title)
	})

	t.Run("matches description", func(t *testing.T) {
		got := FilterIssues(issues, Filters{Search: "construction waste"})
		require.Len(t, got, 1)
		require.Equal(t, "Illegal dumping", got[0].Title)
	})

	t.Run("matches defaulted status", func(t *testing.T) {
		got := FilterIssues(issues, Filters{Search: "ongoing"})
		// one explicit "ongoing" plus the issue with no status at all
		require.Len(t, got, 2)
	})

	t.Run("no match yields empty, not nil panic", func(t *testing.T) {
		got := FilterIssues(issues, Filters{Search: "zzzz"})
		require.Empty(t, got)
	})
}

func TestFilterIssues_AllPredicatesAnd(t *testing.T) {
	t.Parallel()

	issues := issueFixture()
	got := FilterIssues(issues, Filters{Category: "garbage", Status: "resolved"})
	require.Empty(t, got)

	got = FilterIssues(issues, Filters{Category: "garbage", Status: "ongoing", Search: "road 8"})
	require.Len(t, got, 1)
}

func TestFilterIssues_EmptyInput(t *testing.T) {
	t.Parallel()

	require.Empty(t, FilterIssues(nil, Filters{Category: "garbage"}))
	require.Empty(t, FilterIssues([]models.Issue{}, Filters{}))
}

// Property: the result is always a subsequence of the input (subset,
// relative order preserved), for arbitrary collections and filters.
func TestFilterIssues_SubsequenceProperty(t *testing.T) {
	t.Parallel()

	categories := []string{"Garbage", "garbage", "Footpath", "Dumping", ""}
	statuses := []string{"ongoing", "in-progress", "resolved", "pending", ""}

	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 30).Draw(rt, "n")
		issues := make([]models.Issue, n)
		for i := range issues {
			issues[i] = models.Issue{
				Title:    rapid.StringMatching(`[a-z ]{0,12}`).Draw(rt, "title"),
				Category: rapid.SampledFrom(categories).Draw(rt, "category"),
				Status:   rapid.SampledFrom(statuses).Draw(rt, "status"),
			}
		}
		f := Filters{
			Category: rapid.SampledFrom(append(categories, "all")).Draw(rt, "fcat"),
			Status:   rapid.SampledFrom(append(statuses, "all")).Draw(rt, "fstatus"),
			Search:   rapid.StringMatching(`[a-z ]{0,5}`).Draw(rt, "search"),
		}

		got := FilterIssues(issues, f)

		// subsequence check: every result appears in the input, in order
		i := 0
		for _, g := range got {
			found := false
			for ; i < len(issues); i++ {
				if issues[i] == g {
					found = true
					i++
					break
				}
			}
			if !found {
				rt.Fatalf("result %+v not found in input order", g)
			}
		}
	})
}

func TestCategoryOptions(t *testing.T) {
	t.Parallel()

	t.Run("empty input yields only All", func(t *testing.T) {
		got := CategoryOptions(nil)
		require.Equal(t, []CategoryOption{{Value: "all", Label: "All"}}, got)
	})

	t.Run("dedupes case-insensitively keeping first casing", func(t *testing.T) {
		issues := []models.Issue{
			{Category: "Garbage"},
			{Category: "garbage"},
			{Category: "Footpath"},
			{Category: " Dumping "},
			{Category: ""},
		}
		got := CategoryOptions(issues)
		require.Equal(t, []CategoryOption{
			{Value: "all", Label: "All"},
			{Value: "dumping", Label: "Dumping"},
			{Value: "footpath", Label: "Footpath"},
			{Value: "garbage", Label: "Garbage"},
		}, got)
	})
}
