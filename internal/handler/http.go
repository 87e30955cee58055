// Package handler exposes the FinGame progression API over HTTP.
package handler

import (
	"errors"
	"net/http"

	"finsakhi-server/internal/models"
	"finsakhi-server/internal/service"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// GameHandler handles HTTP requests for the FinGame module.
type GameHandler struct {
	service service.GameService
	logger  *zap.Logger
}

// NewGameHandler creates a new GameHandler.
func NewGameHandler(s service.GameService, logger *zap.Logger) *GameHandler {
	return &GameHandler{
		service: s,
		logger:  logger.Named("GameHandler"),
	}
}

// RegisterRoutes registers the game routes.
func (h *GameHandler) RegisterRoutes(e *echo.Echo) {
	gameGroup := e.Group("/api/game")
	{
		gameGroup.GET("/paths", h.listPaths)
		gameGroup.POST("/set-path", h.setPath)
		gameGroup.GET("/current", h.getCurrent)
		gameGroup.POST("/choose", h.choose)
		gameGroup.POST("/rollback", h.rollback)
	}

	e.GET("/healthz", h.health)
}

// listPaths returns the catalog of selectable story paths.
func (h *GameHandler) listPaths(c echo.Context) error {
	language := languageParam(c.QueryParam("language"))
	return c.JSON(http.StatusOK, h.service.ListPaths(c.Request().Context(), language))
}

// setPath starts or restarts a story path for the user.
func (h *GameHandler) setPath(c echo.Context) error {
	var req SetPathRequest
	if err := c.Bind(&req); err != nil {
		return respondWithError(c, models.ErrBadRequest)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	response, err := h.service.SelectPath(c.Request().Context(), req.UserID, req.PathID, languageParam(req.Language))
	if err != nil {
		return respondWithError(c, err)
	}
	return c.JSON(http.StatusOK, response)
}

// getCurrent returns the node and stats the user is currently at.
func (h *GameHandler) getCurrent(c echo.Context) error {
	userID := c.QueryParam("user_id")
	if userID == "" {
		return respondWithError(c, models.ErrBadRequest)
	}
	language := languageParam(c.QueryParam("language"))

	response, err := h.service.GetCurrent(c.Request().Context(), userID, language)
	if err != nil {
		return respondWithError(c, err)
	}
	return c.JSON(http.StatusOK, response)
}

// choose submits a choice in the current story node.
func (h *GameHandler) choose(c echo.Context) error {
	var req ChoiceRequest
	if err := c.Bind(&req); err != nil {
		return respondWithError(c, models.ErrBadRequest)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	response, err := h.service.Choose(c.Request().Context(), req.UserID, req.ChoiceID, languageParam(req.Language))
	if err != nil {
		return respondWithError(c, err)
	}
	return c.JSON(http.StatusOK, response)
}

// rollback undoes the user's last choice.
func (h *GameHandler) rollback(c echo.Context) error {
	var req RollbackRequest
	if err := c.Bind(&req); err != nil {
		return respondWithError(c, models.ErrBadRequest)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	response, err := h.service.Rollback(c.Request().Context(), req.UserID, models.DefaultLanguage)
	if err != nil {
		return respondWithError(c, err)
	}
	return c.JSON(http.StatusOK, response)
}

func (h *GameHandler) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// languageParam normalizes the requested language, defaulting to english.
func languageParam(language string) string {
	if language == "" {
		return models.DefaultLanguage
	}
	return language
}

// respondWithError maps service errors onto HTTP statuses. Content-integrity
// errors deliberately surface as 500: they are authoring defects, not
// conditions a client can act on.
func respondWithError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrSessionNotFound), errors.Is(err, models.ErrPathNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrInvalidChoice), errors.Is(err, models.ErrBadRequest):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrNothingToRollback):
		status = http.StatusConflict
	case errors.Is(err, models.ErrBrokenGraph), errors.Is(err, models.ErrNodeNotFound):
		status = http.StatusInternalServerError
	}
	return c.JSON(status, APIError{Message: err.Error()})
}
