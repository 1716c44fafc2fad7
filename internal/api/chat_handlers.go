package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/seyitm/baby-ai/internal"
	"github.com/seyitm/baby-ai/internal/report"
	"github.com/seyitm/baby-ai/internal/service"
)

// Root is the unauthenticated welcome endpoint.
func Root() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to the BabyAI Chatbot API. Use the /chat endpoint with a bearer token.",
		})
	}
}

// PostChat runs one chat turn for the authenticated user.
func PostChat(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)
		token := c.GetString("token")

		var req service.ChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := service.ValidateChatRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		result := app.Chat().Chat(c.Request.Context(), user, token, &req)
		HandleSuccess(c, app.Logger(), result, nil)
	}
}

// GetReport exposes the rendered context text for one baby and report kind,
// mainly for inspection and debugging of the formatter output.
func GetReport(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetString("token")

		babyID := c.Query("baby_id")
		if babyID == "" {
			HandleError(c, app.Logger(), errors.New("baby_id query parameter is required"), 400, "Missing parameter")
			return
		}
		kind := internal.ReportKind(c.DefaultQuery("kind", string(internal.ReportEndOfDay)))

		limit := app.Config().MaxItemsPerCategory
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				HandleError(c, app.Logger(), errors.New("limit must be a positive integer"), 400, "Invalid parameter")
				return
			}
			limit = n
		}

		rec, err := app.Records().Fetch(c.Request.Context(), babyID, kind, token)
		if err != nil {
			if errors.Is(err, internal.ErrNotFound) {
				HandleError(c, app.Logger(), err, 404, "No report found")
				return
			}
			HandleError(c, app.Logger(), err, 500, "Report store unavailable")
			return
		}

		text := report.Render(rec, limit, true)
		meta := map[string]any{"baby_id": babyID, "kind": kind, "limit": limit}
		HandleSuccess(c, app.Logger(), gin.H{"text": text}, meta)
	}
}
