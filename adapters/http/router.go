package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth    *AuthHandler
	Profile *ProfileHandler
	Project *ProjectHandler
	Post    *PostHandler
	Public  *PublicHandler
	RSS     *RSSHandler
}

// NewRouter mounts the public surface at the root and the admin surface
// under /api/admin behind the auth middleware.
func NewRouter(h Handlers, authMiddleware, errorMiddleware gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(errorMiddleware)

	router.GET("/", h.Public.Home)
	router.GET("/blog/:slug", h.Public.BlogPost)
	router.GET("/feed.xml", h.RSS.GenerateRSS)

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "UP"})
		})

		admin := api.Group("/admin")
		{
			adminAuth := admin.Group("/auth")
			adminAuth.POST("/login", h.Auth.Login)
			adminAuth.POST("/logout", h.Auth.Logout)
			adminAuth.GET("/session", h.Auth.Session)

			adminPrivate := admin.Group("/")
			adminPrivate.Use(authMiddleware)
			{
				adminPrivate.GET("/profile", h.Profile.GetProfile)
				adminPrivate.PUT("/profile", h.Profile.UpdateProfile)

				projects := adminPrivate.Group("/projects")
				{
					projects.GET("", h.Project.ListProjects)
					projects.POST("", h.Project.CreateProject)
					projects.PUT("/:id", h.Project.UpdateProject)
					projects.DELETE("/:id", h.Project.DeleteProject)
					projects.POST("/:id/image", h.Project.UploadProjectImage)
				}

				posts := adminPrivate.Group("/posts")
				{
					posts.GET("", h.Post.ListPosts)
					posts.POST("", h.Post.CreatePost)
					posts.PUT("/:id", h.Post.UpdatePost)
					posts.DELETE("/:id", h.Post.DeletePost)
				}
			}
		}
	}

	return router
}
