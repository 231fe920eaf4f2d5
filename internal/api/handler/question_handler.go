package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"stackit/internal/api/middleware"
	"stackit/internal/app/service"
	"stackit/internal/common"
	"stackit/internal/domain/model"
	"stackit/internal/domain/repository"

	"github.com/go-chi/chi/v5"
)

type QuestionHandler struct {
	questionService *service.QuestionService
	answerService   *service.AnswerService
}

func NewQuestionHandler(qs *service.QuestionService, as *service.AnswerService) *QuestionHandler {
	return &QuestionHandler{questionService: qs, answerService: as}
}

func (h *QuestionHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listQuestions)           // GET /api/questions
	r.Post("/", h.createQuestion)         // POST /api/questions
	r.Get("/{questionID}", h.getQuestion) // GET /api/questions/1

	r.Group(func(authenticated chi.Router) {
		authenticated.Use(middleware.Authenticator)
		authenticated.Post("/{questionID}/answers", h.postAnswer)
		authenticated.Post("/{questionID}/vote", h.voteQuestion)
		authenticated.Post("/{questionID}/bookmark", h.bookmarkQuestion)
	})
}

func (h *QuestionHandler) listQuestions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))

	params := repository.ListQuestionsParams{
		Search: query.Get("search"),
		Tag:    query.Get("tag"),
		Sort:   query.Get("sort"),
		Page:   page,
		Limit:  limit,
	}

	questions, pagination, err := h.questionService.List(r.Context(), params)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), common.ClientMessage(err))
		return
	}

	common.RespondWithJSON(w, http.StatusOK, map[string]any{
		"questions":  questions,
		"pagination": pagination,
	})
}

func (h *QuestionHandler) createQuestion(w http.ResponseWriter, r *http.Request) {
	var req service.CreateQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	question, err := h.questionService.Create(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), common.ClientMessage(err))
		return
	}

	common.RespondWithJSON(w, http.StatusCreated, map[string]any{
		"message":  "Question created successfully",
		"question": question,
	})
}

func questionIDFromURL(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "questionID"), 10, 64)
	if err != nil {
		return 0, common.Errorf("invalid question id: %w", common.ErrBadRequest)
	}
	return id, nil
}

func (h *QuestionHandler) getQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := questionIDFromURL(r)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), common.ClientMessage(err))
		return
	}

	question, answers, err := h.questionService.Get(r.Context(), id)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), common.ClientMessage(err))
		return
	}

	common.RespondWithJSON(w, http.StatusOK, map[string]any{
		"question": question,
		"answers":  answers,
	})
}

func (h *QuestionHandler) postAnswer(w http.ResponseWriter, r *http.Request) {
	id, err := questionIDFromURL(r)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), common.ClientMessage(err))
		return
	}

	username, ok := middleware.GetUsernameFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.PostAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	// Claims carry no reputation; a fresh snapshot starts at 1.
	author := model.Author{
		Name:       username,
		Avatar:     "/placeholder-user.jpg",
		Reputation: 1,
	}

	answer, err := h.answerService.Post(r.Context(), id, author, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), common.ClientMessage(err))
		return
	}

	common.RespondWithJSON(w, http.StatusCreated, map[string]any{
		"message": "Answer posted successfully",
		"answer":  answer,
	})
}

func (h *QuestionHandler) voteQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := questionIDFromURL(r)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), common.ClientMessage(err))
		return
	}

	var req service.VoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	votes, err := h.questionService.Vote(r.Context(), id, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), common.ClientMessage(err))
		return
	}

	common.RespondWithJSON(w, http.StatusOK, map[string]any{
		"message": "Vote recorded",
		"votes":   votes,
	})
}

func (h *QuestionHandler) bookmarkQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := questionIDFromURL(r)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), common.ClientMessage(err))
		return
	}

	if err := h.questionService.Bookmark(r.Context(), id); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), common.ClientMessage(err))
		return
	}

	common.RespondWithJSON(w, http.StatusOK, map[string]any{
		"message":    "Question bookmarked",
		"bookmarked": true,
	})
}
