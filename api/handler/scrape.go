package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/keyhole/models"
)

// ScrapeService is the slice of the scraper the handler consumes.
type ScrapeService interface {
	DoScrape(ctx context.Context, req *models.ScrapeRequest) (*models.ScrapeResponse, error)
}

// Scrape returns a handler for POST /api/v1/scrape.
//
// Orchestration flow:
//  1. Parse & validate the request.
//  2. Scraper.DoScrape → login (when credentials present) + extraction.
//  3. Map typed errors to HTTP statuses; the response body always
//     reports whether login was attempted and its specific outcome,
//     even on failure.
func Scrape(sc ScrapeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ScrapeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ScrapeResponse{
				Success: false,
				Images:  []models.Image{},
				Links:   []models.Link{},
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}

		resp, err := sc.DoScrape(c.Request.Context(), &req)
		if err != nil {
			respondError(c, resp, err)
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}

// respondError maps a ScrapeError to the correct HTTP status code and
// writes the (partially filled) response with a structured error. The
// login metadata already present on resp is preserved so callers can
// tell a 2FA detection from a navigation failure.
func respondError(c *gin.Context, resp *models.ScrapeResponse, err error) {
	scrapeErr, ok := err.(*models.ScrapeError)
	if !ok {
		scrapeErr = models.NewScrapeError(models.ErrCodeInternal, err.Error(), err)
	}

	if resp == nil {
		resp = &models.ScrapeResponse{
			Images: []models.Image{},
			Links:  []models.Link{},
		}
	}
	resp.Success = false
	resp.Error = scrapeErr.ToDetail()

	c.JSON(mapErrorToStatus(scrapeErr), resp)
}

// mapErrorToStatus translates error codes to HTTP status codes.
func mapErrorToStatus(e *models.ScrapeError) int {
	switch e.Code {
	case models.ErrCodeInvalidInput:
		return http.StatusBadRequest // 400
	case models.ErrCodeUnauthorized:
		return http.StatusUnauthorized // 401
	case models.ErrCodeTwoFactor, models.ErrCodeCaptcha:
		return http.StatusUnprocessableEntity // 422
	case models.ErrCodeRateLimited:
		return http.StatusTooManyRequests // 429
	case models.ErrCodeNavigation:
		return http.StatusBadGateway // 502
	case models.ErrCodeTimeout:
		return http.StatusGatewayTimeout // 504
	default:
		return http.StatusInternalServerError // 500
	}
}
