package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"

	config "github.com/nayeem/cleanup-portal-go/config"
	"github.com/nayeem/cleanup-portal-go/logger"
	middleware "github.com/nayeem/cleanup-portal-go/middleware"
	models "github.com/nayeem/cleanup-portal-go/models"
	services "github.com/nayeem/cleanup-portal-go/services"
	utils "github.com/nayeem/cleanup-portal-go/utils"
)

// ---------------- CREATE ----------------
func CreateContribution(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form services.ContributionForm
		if err := c.ShouldBindJSON(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		session := middleware.CurrentSession(c)
		contribution, verr := services.ValidateContributionSubmission(form, session)
		if verr != nil {
			status := http.StatusBadRequest
			if verr.Code == services.CodeNotAuthenticated {
				status = http.StatusUnauthorized
			}
			c.JSON(status, gin.H{"error": verr.Message, "code": verr.Code})
			return
		}

		if contribution.IssueID.IsZero() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "issueId is required"})
			return
		}

		// check if issue exists
		issueCol := cfg.MongoClient.Database(cfg.DBName).Collection("issues")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var issue models.Issue
		err := issueCol.FindOne(ctx, bson.M{"_id": contribution.IssueID}).Decode(&issue)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "issue not found"})
			return
		}

		// Denormalize the issue snapshot if the client did not send it
		if contribution.IssueTitle == "" {
			contribution.IssueTitle = issue.Title
		}
		if contribution.Category == "" {
			contribution.Category = issue.Category
		}

		contribution.ID = primitive.NewObjectID()

		col := cfg.MongoClient.Database(cfg.DBName).Collection("contributions")
		if _, err := col.InsertOne(ctx, contribution); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create contribution"})
			return
		}

		go func(ctn models.Contribution) {
			if err := utils.SendContributionReceipt(ctn.Email, ctn.ContributorName, ctn.IssueTitle, ctn.Amount, ctn.Date); err != nil {
				logger.Log.Warn().Err(err).Str("email", ctn.Email).Msg("receipt email failed")
			}
		}(contribution)

		c.JSON(http.StatusCreated, gin.H{
			"id":      contribution.ID.Hex(),
			"message": "contribution created",
		})
	}
}

// ---------------- LIST ----------------
func ListContributions(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		col := cfg.MongoClient.Database(cfg.DBName).Collection("contributions")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		// --- Build filter ---
		filter := bson.M{}
		if issueID := c.Query("issueId"); issueID != "" {
			if oid, err := primitive.ObjectIDFromHex(issueID); err == nil {
				filter["issueId"] = oid
			}
		}

		// --- Fetch data ---
		cursor, err := col.Find(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch contributions"})
			return
		}

		var contributions []models.Contribution
		if err := cursor.All(ctx, &contributions); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not decode contributions"})
			return
		}

		if len(contributions) == 0 {
			c.JSON(http.StatusOK, []models.Contribution{})
			return
		}

		// --- Pick the most recent contribution ---
		latest := contributions[0]
		for _, ctn := range contributions {
			if ctn.CreatedAt.After(latest.CreatedAt) {
				latest = ctn
			}
		}

		// --- Generate ETag from latest contribution ---
		etag := utils.GenerateETag(latest.ID, latest.CreatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)

		// --- Add Last-Modified from latest contribution ---
		c.Header("Last-Modified", latest.CreatedAt.UTC().Format(http.TimeFormat))

		c.JSON(http.StatusOK, contributions)
	}
}

// ---------------- FUNDING PROGRESS ----------------
func GetIssueFunding(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		issueID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid issue id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		db := cfg.MongoClient.Database(cfg.DBName)

		// Fetch the issue and its contributions in parallel; aggregation
		// only runs once both arrays are fully settled.
		var issue models.Issue
		var contributions []models.Contribution

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return db.Collection("issues").
				FindOne(gctx, bson.M{"_id": issueID}).
				Decode(&issue)
		})
		g.Go(func() error {
			cursor, err := db.Collection("contributions").
				Find(gctx, bson.M{"issueId": issueID})
			if err != nil {
				return err
			}
			return cursor.All(gctx, &contributions)
		})
		if err := g.Wait(); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "issue not found"})
			return
		}

		funding := services.Aggregate(contributions, issue.Amount)

		c.JSON(http.StatusOK, gin.H{
			"issueId":        issueID.Hex(),
			"goal":           issue.Amount,
			"totalCollected": funding.TotalCollected,
			"percent":        funding.Percent,
			"contributors":   len(contributions),
		})
	}
}

// ---------------- MY CONTRIBUTIONS ----------------
func MyContributions(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		records, ok := fetchMyContributions(c, cfg)
		if !ok {
			return
		}

		// Flatten wrapped ids so clients only ever see plain strings
		for _, rec := range records {
			rec["_id"] = utils.NormalizeID(rec["_id"])
		}

		c.JSON(http.StatusOK, records)
	}
}

// ---------------- RECEIPT SUMMARY ----------------
func MyContributionSummary(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		records, ok := fetchMyContributions(c, cfg)
		if !ok {
			return
		}

		summary := services.Summarize(records)

		c.JSON(http.StatusOK, gin.H{
			"rows":           summary.Rows,
			"totalPaid":      summary.TotalPaid,
			"totalPaidLabel": utils.FormatCurrency(summary.TotalPaid),
			"records":        len(summary.Rows),
		})
	}
}

// fetchMyContributions loads the caller's own contribution documents.
// Raw bson.M is deliberate: the shared collection holds documents from
// older client versions whose amounts and titles do not decode into
// the typed model.
func fetchMyContributions(c *gin.Context, cfg *config.Config) ([]bson.M, bool) {
	session := middleware.CurrentSession(c)
	email := c.Query("email")
	if email == "" {
		email = session.Email
	}
	if email != session.Email && session.Role != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		return nil, false
	}

	col := cfg.MongoClient.Database(cfg.DBName).Collection("contributions")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := col.Find(ctx, bson.M{"email": email})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch contributions"})
		return nil, false
	}

	records := []bson.M{}
	if err := cursor.All(ctx, &records); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not decode contributions"})
		return nil, false
	}
	return records, true
}
