package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	models "github.com/nayeem/cleanup-portal-go/models"
)

func validIssueForm() IssueForm {
	return IssueForm{
		Title:       "Pothole",
		Category:    "Road Damage",
		Location:    "Road 8",
		Description: "big hole",
		Amount:      "200",
	}
}

func TestValidateIssueSubmission(t *testing.T) {
	t.Parallel()

	session := Session{Email: "reporter@example.com"}

	t.Run("accepts string amount and defaults status", func(t *testing.T) {
		issue, verr := ValidateIssueSubmission(validIssueForm(), session)
		require.Nil(t, verr)
		require.Equal(t, float64(200), issue.Amount)
		require.Equal(t, models.StatusOngoing, issue.Status)
		require.Equal(t, "reporter@example.com", issue.Email)
		require.WithinDuration(t, time.Now(), issue.Date, time.Minute)
	})

	t.Run("accepts numeric amount", func(t *testing.T) {
		form := validIssueForm()
		form.Amount = 350.0
		issue, verr := ValidateIssueSubmission(form, session)
		require.Nil(t, verr)
		require.Equal(t, 350.0, issue.Amount)
	})

	t.Run("trims strings", func(t *testing.T) {
		form := validIssueForm()
		form.Title = "  Pothole  "
		form.Location = " Road 8 "
		issue, verr := ValidateIssueSubmission(form, session)
		require.Nil(t, verr)
		require.Equal(t, "Pothole", issue.Title)
		require.Equal(t, "Road 8", issue.Location)
	})

	t.Run("check order short-circuits", func(t *testing.T) {
		cases := []struct {
			name string
			edit func(*IssueForm)
			code string
		}{
			{"empty title", func(f *IssueForm) { f.Title = "   " }, CodeEmptyTitle},
			{"empty location", func(f *IssueForm) { f.Location = "" }, CodeEmptyLocation},
			{"empty description", func(f *IssueForm) { f.Description = "\t" }, CodeEmptyDescription},
			{"zero amount", func(f *IssueForm) { f.Amount = 0 }, CodeInvalidAmount},
			{"negative amount", func(f *IssueForm) { f.Amount = -5 }, CodeInvalidAmount},
			{"junk amount", func(f *IssueForm) { f.Amount = "abc" }, CodeInvalidAmount},
			{"missing amount", func(f *IssueForm) { f.Amount = nil }, CodeInvalidAmount},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				form := validIssueForm()
				tc.edit(&form)
				_, verr := ValidateIssueSubmission(form, session)
				require.NotNil(t, verr)
				require.Equal(t, tc.code, verr.Code)
				require.NotEmpty(t, verr.Message)
			})
		}
	})

	t.Run("title failure wins over amount failure", func(t *testing.T) {
		form := validIssueForm()
		form.Title = ""
		form.Amount = "junk"
		_, verr := ValidateIssueSubmission(form, session)
		require.Equal(t, CodeEmptyTitle, verr.Code)
	})

	t.Run("empty session attaches empty email, no error", func(t *testing.T) {
		issue, verr := ValidateIssueSubmission(validIssueForm(), Session{})
		require.Nil(t, verr)
		require.Empty(t, issue.Email)
	})

	t.Run("category defaults to form's first option", func(t *testing.T) {
		form := validIssueForm()
		form.Category = ""
		issue, verr := ValidateIssueSubmission(form, session)
		require.Nil(t, verr)
		require.Equal(t, DefaultCategory, issue.Category)
	})
}

func TestValidateContributionSubmission(t *testing.T) {
	t.Parallel()

	session := Session{Email: "donor@example.com", DisplayName: "Donor One", PhotoURL: "https://img.example/d.png"}
	form := ContributionForm{
		IssueID:    "507f1f77bcf86cd799439011",
		IssueTitle: "Pothole",
		Amount:     "100",
	}

	t.Run("not authenticated wins regardless of amount", func(t *testing.T) {
		bad := form
		bad.Amount = "not-a-number"
		_, verr := ValidateContributionSubmission(bad, Session{})
		require.NotNil(t, verr)
		require.Equal(t, CodeNotAuthenticated, verr.Code)

		_, verr = ValidateContributionSubmission(form, Session{Email: ""})
		require.Equal(t, CodeNotAuthenticated, verr.Code)
	})

	t.Run("invalid amount", func(t *testing.T) {
		bad := form
		bad.Amount = "0"
		_, verr := ValidateContributionSubmission(bad, session)
		require.Equal(t, CodeInvalidAmount, verr.Code)
	})

	t.Run("valid pledge is normalized", func(t *testing.T) {
		full := form
		full.Phone = " 017000 "
		full.Note = " keep it clean "
		ctn, verr := ValidateContributionSubmission(full, session)
		require.Nil(t, verr)
		require.Equal(t, "507f1f77bcf86cd799439011", ctn.IssueID.Hex())
		require.Equal(t, 100.0, ctn.Amount)
		require.Equal(t, "Donor One", ctn.ContributorName)
		require.Equal(t, "donor@example.com", ctn.Email)
		require.Equal(t, "017000", ctn.Phone)
		require.Equal(t, "keep it clean", ctn.Note)
		require.Equal(t, session.PhotoURL, ctn.Avatar)
		require.False(t, ctn.Date.IsZero())
	})

	t.Run("contributor name fallback chain", func(t *testing.T) {
		named := form
		named.ContributorName = " Explicit Name "
		ctn, _ := ValidateContributionSubmission(named, session)
		require.Equal(t, "Explicit Name", ctn.ContributorName)

		ctn, _ = ValidateContributionSubmission(form, Session{Email: "x@example.com"})
		require.Equal(t, "Anonymous", ctn.ContributorName)
	})

	t.Run("malformed issue id stays zero for the handler to reject", func(t *testing.T) {
		bad := form
		bad.IssueID = "nope"
		ctn, verr := ValidateContributionSubmission(bad, session)
		require.Nil(t, verr)
		require.True(t, ctn.IssueID.IsZero())
	})
}
