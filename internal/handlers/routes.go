package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/yatube/backend/internal/config"
	"github.com/yatube/backend/internal/middleware"
	"github.com/yatube/backend/internal/services"
	"gorm.io/gorm"
)

// RegisterRoutes wires every handler onto the app. Read paths are
// public; write paths sit behind the login-required gate, group and
// user administration additionally behind AdminOnly.
func RegisterRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	feedService := services.NewFeedService(db, cfg.Pagination.PostsPerPage)
	authoringService := services.NewAuthoringService(db)

	authHandler := NewAuthHandler(db)
	postsHandler := NewPostsHandler(db, feedService, authoringService)
	groupsHandler := NewGroupsHandler(db, feedService)
	usersHandler := NewUsersHandler(db, feedService)

	authMiddleware := middleware.NewAuthMiddleware(db, cfg.Server.LoginPath)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	authRoutes := api.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Get("/me", authMiddleware.RequireAuth, authHandler.Me)

	postRoutes := api.Group("/posts")
	postRoutes.Get("/", postsHandler.List)
	postRoutes.Post("/", authMiddleware.RequireAuth, postsHandler.Create)
	postRoutes.Get("/:id", postsHandler.Get)
	postRoutes.Post("/:id", authMiddleware.RequireAuth, postsHandler.Edit)

	groupRoutes := api.Group("/groups")
	groupRoutes.Get("/", groupsHandler.List)
	groupRoutes.Post("/", authMiddleware.RequireAuth, middleware.AdminOnly, groupsHandler.Create)
	groupRoutes.Get("/:slug", groupsHandler.Get)
	groupRoutes.Get("/:slug/posts", groupsHandler.Posts)
	groupRoutes.Delete("/:slug", authMiddleware.RequireAuth, middleware.AdminOnly, groupsHandler.Delete)

	api.Get("/users/:username", usersHandler.Get)
	api.Get("/users/:username/posts", usersHandler.Posts)
	api.Delete("/users/:id", authMiddleware.RequireAuth, middleware.AdminOnly, usersHandler.Delete)
}
