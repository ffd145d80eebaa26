package services

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"

	utils "github.com/nayeem/cleanup-portal-go/utils"
)

// Row is one normalized contribution line for the receipt table.
type Row struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Category string    `json:"category"`
	Paid     float64   `json:"paid"`
	When     time.Time `json:"when"`
}

// Summary is the receipt-export payload for one user's contributions.
type Summary struct {
	Rows      []Row   `json:"rows"`
	TotalPaid float64 `json:"totalPaid"`
}

// Summarize normalizes raw contribution documents into receipt rows.
// It works on bson.M rather than the typed model because the shared
// store holds documents written by several client versions: ids may be
// wrapped, titles live under issueTitle or title, amounts are
// sometimes strings. Row order follows input order; display numbering
// is left to the view.
func Summarize(records []bson.M) Summary {
	rows := make([]Row, 0, len(records))
	total := decimal.Zero

	for _, rec := range records {
		title, _ := rec["issueTitle"].(string)
		if title == "" {
			title, _ = rec["title"].(string)
		}
		if title == "" {
			title = "Untitled Issue"
		}

		category, _ := rec["category"].(string)
		if category == "" {
			category = "—"
		}

		paid := utils.CoerceAmount(rec["amount"])

		when, ok := utils.ToTime(rec["date"])
		if !ok {
			when, ok = utils.ToTime(rec["createdAt"])
		}
		if !ok {
			when = time.Now()
		}

		rows = append(rows, Row{
			ID:       utils.NormalizeID(rec["_id"]),
			Title:    title,
			Category: category,
			Paid:     paid,
			When:     when,
		})
		if paid != 0 {
			total = total.Add(decimal.NewFromFloat(paid))
		}
	}

	totalPaid, _ := total.Float64()
	return Summary{Rows: rows, TotalPaid: totalPaid}
}
