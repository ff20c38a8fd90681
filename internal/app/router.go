package app

import (
	"lms_backend/docs"
	"lms_backend/internal/config"
	"lms_backend/internal/middleware"
	"lms_backend/internal/model"
	"lms_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.Check)

	a.registerPublicRoutes(router, c, repos)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerInstructorRoutes(authGroup, c)
	}

	a.registerAdminRoutes(router, c, repos, cfg)
}

// Public routes. Course and lesson reads go through TryAuth so the access
// resolver can tell guests, students and purchasers apart.
func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, repos *repositories) {
	public := router.Group("/api")
	{
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		public.GET("/subjects", c.taxonomy.ListSubjects)
		public.GET("/stages", c.taxonomy.ListStages)

		public.GET("/courses", c.course.ListCourses)
		public.GET("/courses/:id", middleware.TryAuthMiddleware(a.Config), c.course.GetCourse)
		public.GET("/courses/:id/lessons/:lessonId", middleware.TryAuthMiddleware(a.Config), c.lesson.GetLessonContent)

		public.GET("/posts", c.community.ListPosts)
		public.GET("/posts/:id", c.community.GetPost)
		public.GET("/questions", c.community.ListQuestions)
		public.GET("/questions/:id", c.community.GetQuestion)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)
	rg.PUT("/profile", c.user.UpdateProfile)
	rg.PUT("/profile/password", c.user.ChangePassword)
	rg.POST("/profile/avatar", c.user.UploadAvatar)

	rg.GET("/wallet", c.purchase.GetWallet)
	rg.GET("/purchases", c.purchase.ListPurchases)
	rg.POST("/courses/:id/lessons/:lessonId/purchase", c.purchase.PurchaseLesson)

	rg.POST("/questions", c.community.CreateQuestion)
	rg.POST("/questions/:id/answers", c.community.AnswerQuestion)
	rg.DELETE("/questions/:id", c.community.DeleteQuestion)
}

func (a *App) registerInstructorRoutes(rg *gin.RouterGroup, c *controllers) {
	instructor := rg.Group("/")
	instructor.Use(middleware.RoleMiddleware(model.Instructor))
	{
		instructor.POST("/courses", c.course.CreateCourse)
		instructor.PUT("/courses/:id", c.course.UpdateCourse)
		instructor.DELETE("/courses/:id", c.course.DeleteCourse)
		instructor.POST("/courses/:id/thumbnail", c.course.UploadThumbnail)

		// Structure editing
		instructor.PUT("/courses/:id/structure", c.course.ReplaceStructure)
		instructor.POST("/courses/:id/structure/items", c.course.AddStructureItem)
		instructor.DELETE("/courses/:id/structure/items/:itemId", c.course.DeleteStructureItem)
		instructor.POST("/courses/:id/structure/reorder", c.course.ReorderStructure)
		instructor.PUT("/courses/:id/structure/units/:unitId", c.course.UpdateUnit)
		instructor.POST("/courses/:id/structure/units/:unitId/lessons", c.course.AddLessonToUnit)
		instructor.DELETE("/courses/:id/structure/units/:unitId/lessons/:index", c.course.DeleteLessonFromUnit)
		instructor.PUT("/courses/:id/structure/lessons/:lessonId", c.course.UpdateLesson)

		// Lesson media
		instructor.POST("/courses/:id/lessons/:lessonId/video", c.lesson.UploadVideo)
		instructor.POST("/courses/:id/lessons/:lessonId/pdf", c.lesson.UploadPDF)

		// Blog authoring
		instructor.POST("/posts", c.community.CreatePost)
		instructor.PUT("/posts/:id", c.community.UpdatePost)
		instructor.POST("/posts/:id/image", c.community.UploadPostImage)
		instructor.DELETE("/posts/:id", c.community.DeletePost)
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user), middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/dashboard", c.dashboard.GetOverview)
		admin.GET("/dashboard/courses", c.dashboard.GetAllCourseStats)
		admin.GET("/dashboard/courses/:id", c.dashboard.GetCourseStats)

		admin.GET("/users", c.user.ListUsers)
		admin.PUT("/users/:id/disabled", c.user.SetDisabled)
		admin.POST("/wallet/topup", c.purchase.TopUpWallet)

		admin.POST("/subjects", c.taxonomy.CreateSubject)
		admin.DELETE("/subjects/:id", c.taxonomy.DeleteSubject)
		admin.POST("/stages", c.taxonomy.CreateStage)
		admin.DELETE("/stages/:id", c.taxonomy.DeleteStage)
	}
}
