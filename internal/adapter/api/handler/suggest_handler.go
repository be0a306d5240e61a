package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"tripspot/internal/usecase"
	"tripspot/pkg/response"
)

type SuggestHandler struct {
	suggestions *usecase.SuggestionUseCase
}

func NewSuggestHandler(suggestions *usecase.SuggestionUseCase) *SuggestHandler {
	return &SuggestHandler{suggestions: suggestions}
}

// Suggest answers GET /v1/keywords/suggest?q=&limit=.
func (h *SuggestHandler) Suggest(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	keywords := h.suggestions.Suggest(c.Request().Context(), c.QueryParam("q"), limit)
	return response.Success(c, map[string]interface{}{
		"keywords": keywords,
	})
}
