package routes

import (
	"yammiverse-backend/internal/api/handlers"
	"yammiverse-backend/internal/middleware"
	"yammiverse-backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App             *fiber.App
	UserHandler     handlers.UserHandler
	RecipeHandler   handlers.RecipeHandler
	FavoriteHandler handlers.FavoriteHandler
	Middleware      middleware.Middleware
	JWTService      jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Auth()
	c.Users()
	c.Recipes()
	c.Favorites()
	c.GuestRoute()
}

func (c *Config) Auth() {
	auth := c.App.Group("/api/auth")
	{
		auth.Post("/register", c.UserHandler.Register)
		auth.Post("/login", c.UserHandler.Login)
		auth.Post("/forgot-password", c.UserHandler.ForgotPassword)
		auth.Post("/verify-otp", c.UserHandler.VerifyOtp)
		auth.Post("/reset-password", c.UserHandler.ResetPassword)
	}
}

func (c *Config) Users() {
	users := c.App.Group("/api/users", c.Middleware.AuthMiddleware(c.JWTService))
	{
		users.Get("/me", c.UserHandler.Me)
		users.Patch("/me", c.UserHandler.UpdateProfile)
		users.Patch("/me/settings", c.UserHandler.UpdateSettings)
		users.Post("/me/avatar", c.UserHandler.UploadAvatar)
	}
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/recipes")

	// public reads
	recipes.Get("", c.RecipeHandler.GetRecipes)
	recipes.Get("/:id", c.RecipeHandler.GetRecipeDetail)

	// owner-only mutations
	recipes.Post("", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.CreateRecipe)
	recipes.Put("/:id", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.UpdateRecipe)
	recipes.Delete("/:id", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.DeleteRecipe)
}

func (c *Config) Favorites() {
	favorites := c.App.Group("/api/favorites", c.Middleware.AuthMiddleware(c.JWTService))
	{
		favorites.Get("", c.FavoriteHandler.GetFavorites)
		favorites.Post("/:recipeId", c.FavoriteHandler.AddFavorite)
		favorites.Delete("/:recipeId", c.FavoriteHandler.RemoveFavorite)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
