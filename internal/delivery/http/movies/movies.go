package http_movies

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/pdrhp/matchmovie/internal/delivery/http/common"
	usecase_acquire "github.com/pdrhp/matchmovie/internal/usecase/acquire"
)

// Controller fronts the acquisition pipeline over HTTP so clients fetch
// candidates without holding a TMDB token themselves.
type Controller struct {
	usecase *usecase_acquire.Usecase
	logger  *slog.Logger
}

func New(usecase *usecase_acquire.Usecase) *Controller {
	return &Controller{
		usecase: usecase,
		logger:  slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	movies := router.Group("/movies")
	{
		movies.GET("", c.byCategory)
		movies.GET("/categories", c.categories)
	}
}

func (c *Controller) byCategory(ctx *gin.Context) {
	category := ctx.Query("category")
	if category == "" {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "category is required",
		})
		return
	}

	movies, err := c.usecase.FetchForCategory(ctx.Request.Context(), category)
	if err != nil {
		c.logger.Error("failed to fetch movies", slog.String("category", category), slog.String("error", err.Error()))
		switch {
		case errors.Is(err, usecase_acquire.ErrUnknownCategory):
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Message: "unknown category",
			})
		case errors.Is(err, usecase_acquire.ErrNoCandidates):
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "no candidates for category",
			})
		default:
			ctx.JSON(http.StatusBadGateway, http_common.ErrorResponse{
				Message: "could not fetch movies",
			})
		}
		return
	}

	ctx.JSON(http.StatusOK, movies)
}

func (c *Controller) categories(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"categories": usecase_acquire.Categories(),
	})
}
