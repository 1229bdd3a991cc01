package main

import (
	"log"
	"net/http"

	"carsite-backend/config"
	"carsite-backend/handlers"
	"carsite-backend/metrics"
	"carsite-backend/middleware"
	"carsite-backend/repositories"
	"carsite-backend/services"
	"carsite-backend/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.Load()

	logger, _ := zap.NewProduction()
	if cfg.Env == "dev" {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	// Initialize database
	db := config.InitDB()

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	catalogRepo := repositories.NewCatalogRepository(db)
	carRepo := repositories.NewCarRepository(db)
	newsRepo := repositories.NewNewsRepository(db)
	commentRepo := repositories.NewCommentRepository(db)
	favoriteRepo := repositories.NewFavoriteRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	carService := services.NewCarService(carRepo)
	newsService := services.NewNewsService(newsRepo, commentRepo)
	favoriteService := services.NewFavoriteService(favoriteRepo, carRepo)

	media := storage.NewMediaStorage(cfg.MediaRoot)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	carHandler := handlers.NewCarHandler(carService)
	newsHandler := handlers.NewNewsHandler(newsService)
	catalogHandler := handlers.NewCatalogHandler(catalogRepo)
	siteHandler := handlers.NewSiteHandler(authService, carService, newsService, favoriteService, catalogRepo, media)

	// Setup router
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ZapLogger(logger))
	router.Use(middleware.Metrics())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
	}))

	// Health check & metrics
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	metrics.Init()
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Media files
	router.Static(cfg.MediaURL, cfg.MediaRoot)

	// Web surface
	{
		// Public pages
		router.GET("/cars/", siteHandler.CarList)
		router.GET("/cars/:id/", siteHandler.CarDetail)
		router.GET("/news/", siteHandler.NewsList)
		router.GET("/news/:id/", siteHandler.NewsDetail)

		// Accounts
		router.GET("/accounts/register/", siteHandler.RegisterForm)
		router.POST("/accounts/register/", siteHandler.Register)
		router.GET("/accounts/login/", siteHandler.LoginForm)
		router.POST("/accounts/login/", siteHandler.Login)
		router.POST("/accounts/logout/", siteHandler.Logout)

		// News creation soft-denies everyone but moderators
		router.GET("/news/create/", middleware.NewsModeratorGuard(), siteHandler.NewsCreateForm)
		router.POST("/news/create/", middleware.NewsModeratorGuard(), siteHandler.NewsCreate)

		// Session-authenticated pages
		session := router.Group("/")
		session.Use(middleware.SessionMiddleware())
		{
			session.GET("/cars/create/", siteHandler.CarCreateForm)
			session.POST("/cars/create/", siteHandler.CarCreate)
			session.GET("/cars/:id/edit/", siteHandler.CarEditForm)
			session.POST("/cars/:id/edit/", siteHandler.CarEdit)
			session.GET("/cars/:id/delete/", siteHandler.CarDeleteConfirm)
			session.POST("/cars/:id/delete/", siteHandler.CarDelete)
			session.POST("/cars/:id/images/", siteHandler.CarUploadImage)

			session.POST("/cars/:id/favorite/", siteHandler.FavoriteAdd)
			session.DELETE("/cars/:id/favorite/", siteHandler.FavoriteRemove)
			session.GET("/favorites/", siteHandler.FavoriteList)

			session.GET("/news/:id/edit/", siteHandler.NewsEditForm)
			session.POST("/news/:id/edit/", siteHandler.NewsEdit)
			session.POST("/news/:id/delete/", siteHandler.NewsDelete)

			session.POST("/news/:id/comment/", siteHandler.CommentAdd)
			session.POST("/news/:id/comment/:comment_id/delete/", siteHandler.CommentDelete)
		}
	}

	// REST API
	api := router.Group("/api")
	{
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// Public reads
		api.GET("/cars/", carHandler.GetCars)
		api.GET("/cars/expensive/", carHandler.GetExpensive)
		api.GET("/cars/:id/", carHandler.GetCar)
		api.GET("/news/", newsHandler.GetNewsList)
		api.GET("/news/:id/", newsHandler.GetNews)
		api.GET("/brands/", catalogHandler.GetBrands)
		api.GET("/models/", catalogHandler.GetModels)
		api.GET("/models/:id/", catalogHandler.GetModel)

		// Authenticated writes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/profile", authHandler.GetProfile)

			protected.POST("/cars/", carHandler.CreateCar)
			protected.PUT("/cars/:id/", carHandler.UpdateCar)
			protected.PATCH("/cars/:id/", carHandler.PatchCar)
			protected.DELETE("/cars/:id/", carHandler.DeleteCar)
			protected.POST("/cars/:id/mark_sold/", carHandler.MarkSold)

			protected.POST("/news/", middleware.RequireModerator(), newsHandler.CreateNews)
			protected.PUT("/news/:id/", newsHandler.UpdateNews)
			protected.PATCH("/news/:id/", newsHandler.PatchNews)
			protected.DELETE("/news/:id/", newsHandler.DeleteNews)

			// Catalog maintenance is a moderator concern
			catalog := protected.Group("/", middleware.RequireModerator())
			{
				catalog.POST("/brands/", catalogHandler.CreateBrand)
				catalog.DELETE("/brands/:id/", catalogHandler.DeleteBrand)
				catalog.POST("/models/", catalogHandler.CreateModel)
				catalog.DELETE("/models/:id/", catalogHandler.DeleteModel)
			}
		}
	}

	logger.Info("server starting", zap.String("port", cfg.HTTPPort))
	if err := http.ListenAndServe(":"+cfg.HTTPPort, router); err != nil {
		logger.Fatal("server", zap.Error(err))
	}
}
