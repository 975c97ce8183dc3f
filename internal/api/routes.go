package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"coursehub/admin-api/internal/cdn"
	"coursehub/admin-api/internal/config"
	"coursehub/admin-api/internal/domain"
	"coursehub/admin-api/internal/service"
)

// SetupRoutes wires all handlers into the gin engine.
//
// The bunny create/save and token endpoints exist in duplicated-alias form
// (create vs create-upload-url, bunny/save vs videos/save, generate-token vs
// playback vs embed) because existing callers use all of them; each alias
// group shares one handler so the behavior cannot drift.
func SetupRoutes(
	router *gin.Engine,
	cfg config.Config,
	authService service.AuthService,
	videoService service.VideoService,
	mediaService service.MediaService,
	contentService service.ContentService,
	courseService service.CourseService,
	signer *cdn.Signer,
) {
	authHandler := NewAuthHandler(authService)
	videoHandler := NewVideoHandler(videoService, signer, cfg.Upload.VideoTimeout)
	mediaHandler := NewMediaHandler(mediaService)
	contentHandler := NewContentHandler(contentService)
	courseHandler := NewCourseHandler(courseService)

	authMiddleware := AuthMiddleware(cfg.JWT.Secret)
	staffOnly := RoleMiddleware(domain.RoleAdmin, domain.RoleEditor)
	adminOnly := RoleMiddleware(domain.RoleAdmin)
	bodyLimit := MaxBodyBytes(cfg.Upload.MaxBodyBytes)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	auth := router.Group("/api/auth")
	auth.Use(bodyLimit)
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	api := router.Group("/api")
	api.Use(authMiddleware, staffOnly)
	{
		// Signed video delivery. The raw upload route carries no body
		// limit; it is bounded by its own request deadline instead.
		bunny := api.Group("/bunny")
		{
			bunny.POST("/create", bodyLimit, videoHandler.CreateRemoteVideo)
			bunny.POST("/create-upload-url", bodyLimit, videoHandler.CreateRemoteVideo)
			bunny.POST("/upload", videoHandler.UploadVideoBytes)
			bunny.POST("/save", bodyLimit, videoHandler.SaveVideoRecord)
			bunny.DELETE("/delete/:videoId", videoHandler.DeleteVideo)
			bunny.POST("/playback", bodyLimit, videoHandler.Playback)
			bunny.POST("/embed", bodyLimit, videoHandler.Playback)
		}
		api.POST("/videos/save", bodyLimit, videoHandler.SaveVideoRecord)
		api.GET("/generate-token", videoHandler.GenerateToken)

		// Public image media library.
		media := api.Group("/media")
		{
			media.GET("/list", mediaHandler.List)
			media.POST("/upload", mediaHandler.Upload)
			media.DELETE("/delete", bodyLimit, mediaHandler.Delete)
		}

		// Admin content management.
		admin := api.Group("/admin")
		admin.Use(bodyLimit)
		{
			admin.GET("/courses", courseHandler.ListCourses)
			admin.POST("/courses", courseHandler.CreateCourse)
			admin.GET("/courses/:courseId", courseHandler.GetCourse)
			admin.PUT("/courses/:courseId", courseHandler.UpdateCourse)
			admin.DELETE("/courses/:courseId", courseHandler.DeleteCourse)

			admin.GET("/courses/:courseId/chapters", courseHandler.ListChapters)
			admin.POST("/chapters", courseHandler.CreateChapter)
			admin.PUT("/chapters/:id", courseHandler.UpdateChapter)
			admin.DELETE("/chapters/:id", courseHandler.DeleteChapter)

			admin.GET("/courses/:courseId/videos", videoHandler.ListCourseVideos)
			admin.PUT("/videos/:videoId", videoHandler.UpdateVideo)

			admin.GET("/courses/:courseId/faqs", contentHandler.ListFAQs)
			admin.POST("/faqs", contentHandler.CreateFAQ)
			admin.PUT("/faqs/:id", contentHandler.UpdateFAQ)
			admin.DELETE("/faqs/:id", contentHandler.DeleteFAQ)

			admin.GET("/courses/:courseId/benefits", contentHandler.ListBenefits)
			admin.POST("/benefits", contentHandler.CreateBenefit)
			admin.PUT("/benefits/:id", contentHandler.UpdateBenefit)
			admin.DELETE("/benefits/:id", contentHandler.DeleteBenefit)

			admin.GET("/courses/:courseId/testimonials", contentHandler.ListTestimonials)
			admin.POST("/testimonials", contentHandler.CreateTestimonial)
			admin.PUT("/testimonials/:id", contentHandler.UpdateTestimonial)
			admin.DELETE("/testimonials/:id", contentHandler.DeleteTestimonial)

			admin.PUT("/users/:id/role", adminOnly, authHandler.UpdateRole)
		}
	}
}
