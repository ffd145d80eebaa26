package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	config "github.com/nayeem/cleanup-portal-go/config"
	controllers "github.com/nayeem/cleanup-portal-go/controllers"
	middleware "github.com/nayeem/cleanup-portal-go/middleware"
)

func SetupRoutes(r *gin.Engine, cfg *config.Config) {
	auth := middleware.AuthRequired(cfg)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Issues
	issues := r.Group("/issues")
	{
		issues.GET("", controllers.ListIssues(cfg))
		issues.GET("/categories", controllers.ListCategories(cfg))
		// reporting works pre-login too; the reporter email is simply empty
		issues.POST("", middleware.AuthOptional(cfg), controllers.CreateIssue(cfg))
		issues.GET("/:id", auth, controllers.GetIssue(cfg))
		issues.GET("/:id/funding", controllers.GetIssueFunding(cfg))
		issues.PATCH("/:id", auth, controllers.UpdateIssue(cfg))
		issues.DELETE("/:id", auth, controllers.DeleteIssue(cfg))
		issues.POST("/:id/image", auth, controllers.UploadImage(cfg))
	}

	// Contributions
	r.GET("/contributions", controllers.ListContributions(cfg))
	r.POST("/contribution", auth, controllers.CreateContribution(cfg))

	// Per-user views (bearer protected)
	r.GET("/my-issues", auth, controllers.MyIssues(cfg))
	r.GET("/my-contribution", auth, controllers.MyContributions(cfg))
	r.GET("/my-contribution/summary", auth, controllers.MyContributionSummary(cfg))
}
