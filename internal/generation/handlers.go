package generation

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type generateRequest struct {
	Prompt string `json:"prompt"`
}

// RegisterRoutes mounts the liveness check and the generate call on r,
// usually the /api/v1/dalle group.
func RegisterRoutes(r gin.IRouter, svc *Service) {
	r.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Hello from DALL-E!"})
	})

	r.POST("", func(c *gin.Context) {
		var body generateRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			svc.reporter.Report(c.Request.Context(), "generateImage", err, "stage", "decode")
			c.String(http.StatusInternalServerError, fallbackMessage)
			return
		}

		photo, err := svc.Generate(c.Request.Context(), body.Prompt)
		if err != nil {
			c.String(http.StatusInternalServerError, ErrorMessage(err))
			return
		}
		c.JSON(http.StatusOK, gin.H{"photo": photo})
	})
}
