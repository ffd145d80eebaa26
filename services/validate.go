package services

import (
	"math"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	models "github.com/nayeem/cleanup-portal-go/models"
	utils "github.com/nayeem/cleanup-portal-go/utils"
)

// Session is the caller's identity as supplied by the external auth
// provider. It is always passed explicitly; nothing in this package
// reads ambient state. A zero Session means "not logged in".
type Session struct {
	Email       string
	DisplayName string
	PhotoURL    string
	Role        string
}

// LoggedIn reports whether the session carries an authenticated user.
func (s Session) LoggedIn() bool {
	return s.Email != ""
}

// Validation error codes, one per user-facing warning.
const (
	CodeEmptyTitle       = "EMPTY_TITLE"
	CodeEmptyLocation    = "EMPTY_LOCATION"
	CodeEmptyDescription = "EMPTY_DESCRIPTION"
	CodeInvalidAmount    = "INVALID_AMOUNT"
	CodeNotAuthenticated = "NOT_AUTHENTICATED"
)

// ValidationError is a rejected submission. Message is the single
// actionable warning shown to the user; Code identifies which check
// failed.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// DefaultCategory is used when a report arrives without a category,
// mirroring the form's preselected first option.
const DefaultCategory = "Garbage"

// IssueForm is the raw new-report payload. Amount stays untyped
// because clients send it both as a JSON number and as a string.
type IssueForm struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Amount      any    `json:"amount"`
	Status      string `json:"status"`
}

// ContributionForm is the raw new-contribution payload.
type ContributionForm struct {
	IssueID         string `json:"issueId"`
	IssueTitle      string `json:"issueTitle"`
	Category        string `json:"category"`
	ContributorName string `json:"contributorName"`
	Phone           string `json:"phone"`
	Address         string `json:"address"`
	Note            string `json:"note"`
	Amount          any    `json:"amount"`
}

// parseAmount accepts a number or numeric string and reports whether
// it is a usable positive, finite amount.
func parseAmount(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
		return 0, false
	}
	f := utils.CoerceAmount(v)
	if f <= 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ValidateIssueSubmission checks a new report in the order the form
// warns about it, short-circuiting at the first failure, and returns
// the normalized document ready for insertion. The reporter email
// comes from the session; an empty session is not an error here —
// unauthenticated submissions are rejected at the network layer, not
// by the validator.
func ValidateIssueSubmission(form IssueForm, session Session) (models.Issue, *ValidationError) {
	title := strings.TrimSpace(form.Title)
	if title == "" {
		return models.Issue{}, &ValidationError{Code: CodeEmptyTitle, Message: "Please enter issue title"}
	}

	location := strings.TrimSpace(form.Location)
	if location == "" {
		return models.Issue{}, &ValidationError{Code: CodeEmptyLocation, Message: "Please enter location"}
	}

	description := strings.TrimSpace(form.Description)
	if description == "" {
		return models.Issue{}, &ValidationError{Code: CodeEmptyDescription, Message: "Please enter description"}
	}

	amount, ok := parseAmount(form.Amount)
	if !ok {
		return models.Issue{}, &ValidationError{Code: CodeInvalidAmount, Message: "Please enter a valid budget amount (BDT)"}
	}

	category := strings.TrimSpace(form.Category)
	if category == "" {
		category = DefaultCategory
	}

	status := Norm(form.Status)
	if status == "" {
		status = models.StatusOngoing
	}

	now := time.Now()
	return models.Issue{
		Title:       title,
		Category:    category,
		Location:    location,
		Description: description,
		Image:       strings.TrimSpace(form.Image),
		Amount:      amount,
		Status:      status,
		Email:       session.Email,
		Date:        now,
		UpdatedAt:   now,
	}, nil
}

// ValidateContributionSubmission checks a pledge. Authentication comes
// first, regardless of the rest of the payload: the caller is expected
// to redirect to login on NOT_AUTHENTICATED.
func ValidateContributionSubmission(form ContributionForm, session Session) (models.Contribution, *ValidationError) {
	if !session.LoggedIn() {
		return models.Contribution{}, &ValidationError{Code: CodeNotAuthenticated, Message: "Please log in to contribute"}
	}

	amount, ok := parseAmount(form.Amount)
	if !ok {
		return models.Contribution{}, &ValidationError{Code: CodeInvalidAmount, Message: "Please enter a valid contribution amount (BDT)"}
	}

	name := strings.TrimSpace(form.ContributorName)
	if name == "" {
		name = strings.TrimSpace(session.DisplayName)
	}
	if name == "" {
		name = "Anonymous"
	}

	// A malformed issue id stays zero here; the handler rejects it
	// after the existence lookup.
	issueID, _ := primitive.ObjectIDFromHex(strings.TrimSpace(form.IssueID))

	now := time.Now()
	return models.Contribution{
		IssueID:         issueID,
		IssueTitle:      strings.TrimSpace(form.IssueTitle),
		Category:        strings.TrimSpace(form.Category),
		ContributorName: name,
		Email:           session.Email,
		Phone:           strings.TrimSpace(form.Phone),
		Address:         strings.TrimSpace(form.Address),
		Note:            strings.TrimSpace(form.Note),
		Amount:          amount,
		Avatar:          session.PhotoURL,
		Date:            now,
		CreatedAt:       now,
	}, nil
}
