package post

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	listFailedMessage   = "Fetching posts failed, please try again"
	createFailedMessage = "Unable to create a post, please try again"
)

type createRequest struct {
	Name   string `json:"name"`
	Prompt string `json:"prompt"`
	Photo  string `json:"photo"`
}

// RegisterRoutes mounts list and create on r, usually the /api/v1/post group.
func RegisterRoutes(r gin.IRouter, svc *Service) {
	r.GET("", func(c *gin.Context) {
		posts, err := svc.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": listFailedMessage})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": posts})
	})

	r.POST("", func(c *gin.Context) {
		var body createRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			svc.reporter.Report(c.Request.Context(), "createPost", err, "stage", "decode")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": createFailedMessage})
			return
		}

		created, err := svc.Create(c.Request.Context(), body.Name, body.Prompt, body.Photo)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": createFailedMessage})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": created})
	})
}
