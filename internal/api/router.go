package api

import (
	"net/http"
	"time"

	"stackit/internal/api/handler"
	"stackit/internal/api/middleware"
	"stackit/internal/app/service"
	"stackit/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	questionService *service.QuestionService,
	answerService *service.AnswerService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Token verification for every route. The token travels primarily in the
	// auth cookie; the Authorization header works too. Verification only
	// parses — middleware.Authenticator enforces presence where required.
	r.Use(jwtauth.Verify(security.TokenAuth, jwtauth.TokenFromHeader, middleware.TokenFromAuthCookie))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(apiRouter chi.Router) {
		authHandler := handler.NewAuthHandler(authService)
		apiRouter.Route("/auth", authHandler.RegisterRoutes)

		questionHandler := handler.NewQuestionHandler(questionService, answerService)
		apiRouter.Route("/questions", questionHandler.RegisterRoutes)

		tagHandler := handler.NewTagHandler(questionService)
		apiRouter.Route("/tags", tagHandler.RegisterRoutes)
	})

	return r
}
