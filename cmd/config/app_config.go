package config

import (
	"os"
	"time"

	"yammiverse-backend/internal/api/handlers"
	"yammiverse-backend/internal/api/routes"
	"yammiverse-backend/internal/middleware"
	"yammiverse-backend/internal/utils"
	"yammiverse-backend/internal/utils/mailing"
	"yammiverse-backend/internal/utils/storage"
	"yammiverse-backend/pkg/favorite"
	"yammiverse-backend/pkg/jwt"
	"yammiverse-backend/pkg/recipe"
	"yammiverse-backend/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
		BodyLimit:         storage.MaxUploadSize + 1024*1024,
	})
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	fileStorage := storage.NewFileStorage()

	// Repository
	userRepository := user.NewUserRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	favoriteRepository := favorite.NewFavoriteRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService, fileStorage, mailing.SendMail)
	recipeService := recipe.NewRecipeService(recipeRepository, fileStorage)
	favoriteService := favorite.NewFavoriteService(favoriteRepository, recipeRepository)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService)

	middlewares := middleware.NewMiddleware(userRepository)

	// uploaded images are served straight from the local uploads dir
	uploadsDir := utils.GetConfig("UPLOADS_DIR")
	if uploadsDir == "" {
		uploadsDir = "./public/uploads"
	}
	app.Static("/uploads", uploadsDir)

	// routes
	routesConfig := routes.Config{
		App:             app,
		UserHandler:     userHandler,
		RecipeHandler:   recipeHandler,
		FavoriteHandler: favoriteHandler,
		Middleware:      middlewares,
		JWTService:      jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
