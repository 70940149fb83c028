package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/dellmdq/OT109-Server/internal/api/auth"
	"github.com/dellmdq/OT109-Server/internal/api/category"
	"github.com/dellmdq/OT109-Server/internal/api/comment"
	"github.com/dellmdq/OT109-Server/internal/api/contact"
	"github.com/dellmdq/OT109-Server/internal/api/member"
	"github.com/dellmdq/OT109-Server/internal/api/news"
	"github.com/dellmdq/OT109-Server/internal/api/organization"
	"github.com/dellmdq/OT109-Server/internal/api/storage"
	"github.com/dellmdq/OT109-Server/internal/api/testimonial"
	"github.com/dellmdq/OT109-Server/internal/api/user"
)

// Config contains dependencies needed for the router setup.
type Config struct {
	AuthHandler         *auth.AuthHandler
	UserHandler         *user.UserHandler
	CategoryHandler     *category.CategoryHandler
	NewsHandler         *news.NewsHandler
	CommentHandler      *comment.CommentHandler
	TestimonialHandler  *testimonial.TestimonialHandler
	MemberHandler       *member.MemberHandler
	ContactHandler      *contact.ContactHandler
	OrganizationHandler *organization.OrganizationHandler
	StorageHandler      *storage.StorageHandler

	// AuthenticateMiddleware resolves the caller and enforces the access
	// policy for every route, so the routes below register flat.
	AuthenticateMiddleware func(http.Handler) http.Handler
	RequestLogger          func(http.Handler) http.Handler
}

// SetupRouter initializes and configures the main application router.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if cfg.RequestLogger != nil {
		r.Use(cfg.RequestLogger)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5, "application/json"))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	r.Get("/api/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/api/docs/doc.json"),
	))

	r.Group(func(r chi.Router) {
		r.Use(cfg.AuthenticateMiddleware)

		// Auth endpoints keep both the bare and the /auth-prefixed spellings.
		r.Post("/register", cfg.AuthHandler.Register)
		r.Post("/login", cfg.AuthHandler.Login)
		r.Get("/me", cfg.AuthHandler.Me)
		r.Post("/auth/register", cfg.AuthHandler.Register)
		r.Post("/auth/login", cfg.AuthHandler.Login)
		r.Get("/auth/me", cfg.AuthHandler.Me)

		cfg.UserHandler.RegisterRoutes(r)
		cfg.CategoryHandler.RegisterRoutes(r)
		cfg.NewsHandler.RegisterRoutes(r)
		cfg.CommentHandler.RegisterRoutes(r)
		cfg.TestimonialHandler.RegisterRoutes(r)
		cfg.MemberHandler.RegisterRoutes(r)
		cfg.ContactHandler.RegisterRoutes(r)
		cfg.OrganizationHandler.RegisterRoutes(r)
		cfg.StorageHandler.RegisterRoutes(r)
	})

	return r
}
