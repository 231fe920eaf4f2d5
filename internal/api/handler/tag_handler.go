package handler

import (
	"net/http"

	"stackit/internal/app/service"
	"stackit/internal/common"

	"github.com/go-chi/chi/v5"
)

type TagHandler struct {
	questionService *service.QuestionService
}

func NewTagHandler(qs *service.QuestionService) *TagHandler {
	return &TagHandler{questionService: qs}
}

func (h *TagHandler) RegisterRoutes(r chi.Router) {
	r.Get("/popular", h.popularTags) // GET /api/tags/popular
}

func (h *TagHandler) popularTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.questionService.PopularTags(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), common.ClientMessage(err))
		return
	}

	common.RespondWithJSON(w, http.StatusOK, map[string]any{
		"tags": tags,
	})
}
