package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	config "github.com/nayeem/cleanup-portal-go/config"
	"github.com/nayeem/cleanup-portal-go/logger"
	middleware "github.com/nayeem/cleanup-portal-go/middleware"
	models "github.com/nayeem/cleanup-portal-go/models"
	services "github.com/nayeem/cleanup-portal-go/services"
	utils "github.com/nayeem/cleanup-portal-go/utils"
)

// ---------------- CREATE ----------------
func CreateIssue(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form services.IssueForm
		if err := c.ShouldBindJSON(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		session := middleware.CurrentSession(c)
		issue, verr := services.ValidateIssueSubmission(form, session)
		if verr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "code": verr.Code})
			return
		}
		issue.ID = primitive.NewObjectID()

		col := cfg.MongoClient.Database(cfg.DBName).Collection("issues")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := col.InsertOne(ctx, issue); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create issue"})
			return
		}

		c.JSON(http.StatusCreated, issue)
	}
}

// ---------------- LIST ----------------
func ListIssues(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		col := cfg.MongoClient.Database(cfg.DBName).Collection("issues")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		// --- Fetch the full collection; filtering is in-memory so the
		// matching rules (case folding, status defaulting, multi-field
		// search) stay in one tested place ---
		cursor, err := col.Find(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch issues"})
			return
		}

		var issues []models.Issue
		if err := cursor.All(ctx, &issues); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not decode issues"})
			return
		}

		filtered := services.FilterIssues(issues, services.Filters{
			Category: c.Query("category"),
			Status:   c.Query("status"),
			Search:   c.Query("search"),
		})

		if len(filtered) == 0 {
			c.JSON(http.StatusOK, []models.Issue{})
			return
		}

		// --- Pick the most recently updated issue ---
		latest := filtered[0]
		for _, it := range filtered {
			if it.UpdatedAt.After(latest.UpdatedAt) {
				latest = it
			}
		}

		// --- Generate ETag from latest issue ---
		etag := utils.GenerateETag(latest.ID, latest.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)

		// --- Add Last-Modified from latest issue ---
		c.Header("Last-Modified", latest.UpdatedAt.UTC().Format(http.TimeFormat))

		c.JSON(http.StatusOK, filtered)
	}
}

// ---------------- CATEGORY OPTIONS ----------------
func ListCategories(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		col := cfg.MongoClient.Database(cfg.DBName).Collection("issues")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		cursor, err := col.Find(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch issues"})
			return
		}

		var issues []models.Issue
		if err := cursor.All(ctx, &issues); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not decode issues"})
			return
		}

		c.JSON(http.StatusOK, services.CategoryOptions(issues))
	}
}

// ---------------- GET ----------------
func GetIssue(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		issueID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid issue id"})
			return
		}

		var issue models.Issue
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err = cfg.MongoClient.Database(cfg.DBName).
			Collection("issues").
			FindOne(ctx, bson.M{"_id": issueID}).
			Decode(&issue)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "issue not found"})
			return
		}

		etag := utils.GenerateETag(issue.ID, issue.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)

		// The detail view expects the record wrapped under "result".
		c.JSON(http.StatusOK, gin.H{"result": issue})
	}
}

// ---------------- MY ISSUES ----------------
func MyIssues(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := middleware.CurrentSession(c)
		email := c.Query("email")
		if email == "" {
			email = session.Email
		}
		if email != session.Email && session.Role != "admin" {
			c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("issues")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		cursor, err := col.Find(ctx, bson.M{"email": email})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch issues"})
			return
		}

		var issues []models.Issue
		if err := cursor.All(ctx, &issues); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not decode issues"})
			return
		}
		if issues == nil {
			issues = []models.Issue{}
		}

		c.JSON(http.StatusOK, issues)
	}
}

// ---------------- UPDATE ----------------
func UpdateIssue(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := middleware.CurrentSession(c)

		objID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid issue id"})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("issues")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var existing models.Issue
		if err := col.FindOne(ctx, bson.M{"_id": objID}).Decode(&existing); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "issue not found"})
			return
		}

		// Only the reporter or an admin may edit
		if session.Role != "admin" && existing.Email != session.Email {
			c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}

		var form services.IssueForm
		if err := c.ShouldBindJSON(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		update := bson.M{"updatedAt": time.Now()}
		if v := form.Title; v != "" {
			update["title"] = v
		}
		if v := form.Category; v != "" {
			update["category"] = v
		}
		if v := form.Location; v != "" {
			update["location"] = v
		}
		if v := form.Description; v != "" {
			update["description"] = v
		}
		if v := form.Image; v != "" {
			update["image"] = v
		}
		if v := services.Norm(form.Status); v != "" {
			update["status"] = v
		}
		if form.Amount != nil {
			if amount := utils.CoerceAmount(form.Amount); amount > 0 {
				update["amount"] = amount
			}
		}

		if len(update) == 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}

		if _, err := col.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": update}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update issue"})
			return
		}

		var updated models.Issue
		if err := col.FindOne(ctx, bson.M{"_id": objID}).Decode(&updated); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve updated issue"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "issue updated", "result": updated})
	}
}

// ---------------- UPLOAD IMAGE ----------------
func UploadImage(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := middleware.CurrentSession(c)

		objID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid issue id"})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("issues")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var existing models.Issue
		if err := col.FindOne(ctx, bson.M{"_id": objID}).Decode(&existing); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "issue not found"})
			return
		}
		if session.Role != "admin" && existing.Email != session.Email {
			c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}

		fileHeader, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
			return
		}
		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open file"})
			return
		}
		defer file.Close()

		url, err := utils.UploadIssueImage(file)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "image upload failed",
				"details": err.Error(),
				"file":    fileHeader.Filename,
			})
			return
		}

		if _, err := col.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": bson.M{
			"image":     url,
			"updatedAt": time.Now(),
		}}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save image"})
			return
		}

		// Replacing an image orphans the old upload; clean it up.
		if existing.Image != "" {
			if err := utils.DeleteFromCloudinary(existing.Image); err != nil {
				logger.Log.Warn().Err(err).Str("image", existing.Image).Msg("failed to delete replaced image")
			}
		}

		c.JSON(http.StatusOK, gin.H{"message": "image uploaded", "image": url})
	}
}

// ---------------- DELETE ----------------
func DeleteIssue(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := middleware.CurrentSession(c)

		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid issue id"})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("issues")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var existing models.Issue
		if err := col.FindOne(ctx, bson.M{"_id": oid}).Decode(&existing); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "issue not found"})
			return
		}

		if session.Role != "admin" && existing.Email != session.Email {
			c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}

		res, err := col.DeleteOne(ctx, bson.M{"_id": oid})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete issue"})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "issue not found"})
			return
		}

		if existing.Image != "" {
			if err := utils.DeleteFromCloudinary(existing.Image); err != nil {
				logger.Log.Warn().Err(err).Str("image", existing.Image).Msg("failed to delete issue image")
			}
		}

		c.JSON(http.StatusOK, gin.H{"message": "issue deleted", "id": oid.Hex()})
	}
}
