package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/DevotionHub/controllers"
	"github.com/DevotionHub/initializers"
	"github.com/DevotionHub/middlewares"
	"github.com/DevotionHub/services"
)

func setupRouter() *gin.Engine {
	router := gin.Default()

	getKey := func(c *gin.Context) string {
		if gin.Mode() == gin.DebugMode {
			return c.FullPath()
		}
		return c.ClientIP()
	}

	router.POST("/users/login", middlewares.RateLimitMiddleware(2, 2, getKey), controllers.UserLogin)
	router.POST("/users/signup", middlewares.RateLimitMiddleware(2, 2, getKey), controllers.UserSignup)
	router.POST("/users/forgot-password", middlewares.RateLimitMiddleware(2, 2, getKey), controllers.ForgotPassword)
	router.POST("/users/reset-password/:token", middlewares.RateLimitMiddleware(2, 2, getKey), controllers.ResetPassword)
	router.GET("/ping", middlewares.RateLimitMiddleware(2, 2, getKey), controllers.Ping)

	// Google OAuth endpoints
	router.GET("/auth/google", middlewares.RateLimitMiddleware(2, 2, getKey), controllers.GoogleLogin)
	router.GET("/auth/google/callback", middlewares.RateLimitMiddleware(5, 5, getKey), controllers.GoogleCallback)
	router.POST("/auth/google/verify", middlewares.RateLimitMiddleware(5, 5, getKey), controllers.GoogleVerify)

	router.POST("/contact", middlewares.RateLimitMiddleware(2, 2, getKey), controllers.SendContactMessage)

	public := router.Group("/")
	public.Use(middlewares.RateLimitMiddleware(10, 10, getKey))
	{
		public.GET("/devotionPlan", controllers.GetDevotionPlans)
		public.GET("/devotionPlan/:id", controllers.GetDevotionPlan)
		public.GET("/devotionPlan/:id/devotions", controllers.GetPlanDevotions)

		public.GET("/devotion", middlewares.OptionalAuth, controllers.GetDevotions)
		public.GET("/devotion/today", controllers.GetTodayDevotion)
		public.GET("/devotion/years", controllers.GetAvailableYears)
		public.GET("/devotion/year/:year", controllers.GetDevotionsByYear)
		public.GET("/devotion/year/:year/months", controllers.GetMonthsByYear)
		public.GET("/devotion/year/:year/month/:month", controllers.GetDevotionsByYearAndMonth)
		public.GET("/devotion/:id/comments", controllers.GetComments)
		public.GET("/devotion/:id/likes", middlewares.OptionalAuth, controllers.GetLikes)

		public.GET("/explore/categories", controllers.ListExploreCategories)
		public.GET("/explore/items", controllers.ListExploreItems)
		public.GET("/explore/items/:id", controllers.GetExploreItem)

		public.GET("/course", controllers.GetCourses)
		public.GET("/course/:id", controllers.GetCourse)
		public.GET("/quiz", controllers.GetQuizzes)
		public.GET("/quiz/:id", controllers.GetQuiz)

		public.GET("/sslLinks", controllers.GetVideoLinks)
	}

	auth := router.Group("/")
	auth.Use(middlewares.CheckAuth)
	auth.Use(middlewares.RateLimitMiddleware(10, 10, getKey))
	{
		// user routes
		auth.GET("/users/me", controllers.GetUserProfile)
		auth.PATCH("/users/me", controllers.UpdateUserProfile)
		auth.PATCH("/users/me/password", controllers.ChangeUserPassword)

		// plan progress routes
		auth.POST("/devotionPlan/:id/start", controllers.StartPlan)
		auth.POST("/devotionPlan/:id/progress", controllers.RecordProgress)
		auth.GET("/devotionPlan/:id/progress", controllers.GetProgress)
		auth.POST("/devotionPlan/:id/complete", controllers.CompletePlan)
		auth.GET("/devotionPlan/me/my", controllers.GetMyPlans)

		// devotion interaction routes
		auth.POST("/devotion/:id/like", controllers.ToggleLike)
		auth.POST("/devotion/:id/comments", controllers.AddComment)
		auth.DELETE("/devotion/:id/comments/:commentId", controllers.DeleteComment)

		auth.GET("/analytics", controllers.GetAnalytics)

		// admin only routes
		admin := auth.Group("/")
		admin.Use(middlewares.CheckAdmin)
		admin.Use(middlewares.RateLimitMiddleware(5, 5, getKey))
		{
			admin.POST("/devotion", controllers.CreateDevotion)
			admin.PUT("/devotion/:id", controllers.UpdateDevotion)
			admin.DELETE("/devotion/:id", controllers.DeleteDevotion)

			admin.POST("/devotionPlan", controllers.CreateDevotionPlan)
			admin.PUT("/devotionPlan/:id", controllers.UpdateDevotionPlan)
			admin.DELETE("/devotionPlan/:id", controllers.DeleteDevotionPlan)
			admin.POST("/devotionPlan/:id/devotions", controllers.CreatePlanDevotion)
			admin.POST("/devotionPlan/:id/devotions/:devotionId/reorder", controllers.ReorderPlanDevotion)
			admin.DELETE("/devotionPlan/:id/devotions/:devotionId", controllers.DeletePlanDevotion)

			admin.GET("/explore/admin/categories", controllers.AdminListExploreCategories)
			admin.GET("/explore/admin/items", controllers.AdminListExploreItems)
			admin.POST("/explore/categories", controllers.CreateExploreCategory)
			admin.PUT("/explore/categories/:id", controllers.UpdateExploreCategory)
			admin.DELETE("/explore/categories/:id", controllers.DeleteExploreCategory)
			admin.POST("/explore/items", controllers.CreateExploreItem)
			admin.PUT("/explore/items/:id", controllers.UpdateExploreItem)
			admin.DELETE("/explore/items/:id", controllers.DeleteExploreItem)

			admin.POST("/course", controllers.CreateCourse)
			admin.PUT("/course/:id", controllers.UpdateCourse)
			admin.DELETE("/course/:id", controllers.DeleteCourse)
			admin.POST("/quiz", controllers.CreateQuiz)
			admin.PUT("/quiz/:id", controllers.UpdateQuiz)
			admin.DELETE("/quiz/:id", controllers.DeleteQuiz)

			admin.POST("/sslLinks", controllers.UpsertVideoLink)
			admin.DELETE("/sslLinks/:id", controllers.DeleteVideoLink)
		}
	}

	return router
}

func main() {
	initializers.LoadEnv()
	initializers.ConnectDB()
	services.InitAssetService()
	services.InitEmailService()

	if err := setupRouter().Run(); err != nil {
		log.Fatal(err)
	}
}
