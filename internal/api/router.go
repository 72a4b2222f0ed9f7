package api

import (
	"net/http"
	"time"

	"library_api/internal/api/handler"
	"library_api/internal/api/middleware"
	"library_api/internal/app/service"
	"library_api/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	bookService *service.BookService,
	issuer *security.TokenIssuer,
	allowedOrigins []string,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// The SPA frontend runs on a separate origin.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Extracts the bearer token from "Authorization: Bearer <token>" and puts
	// the verified claims into the context. Rejection happens in the
	// Authenticator on protected routes only.
	r.Use(jwtauth.Verifier(issuer.JWTAuth()))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// API v1 Routes
	r.Route("/api/v1", func(v1 chi.Router) {
		// Auth routes (public)
		authHandler := handler.NewAuthHandler(authService)
		v1.Group(func(publicAuth chi.Router) {
			authHandler.RegisterRoutes(publicAuth)
		})

		// Book routes (authenticated)
		bookHandler := handler.NewBookHandler(bookService)
		v1.Route("/books", func(books chi.Router) {
			books.Use(middleware.Authenticator)
			bookHandler.RegisterRoutes(books)
		})
	})

	return r
}
