package routes

import (
	"github.com/gofiber/fiber/v2"

	"koktajlove-api/internal/api/handlers"
	"koktajlove-api/internal/middleware"
	"koktajlove-api/pkg/jwt"
)

type Config struct {
	App               *fiber.App
	UserHandler       handlers.UserHandler
	CocktailHandler   handlers.CocktailHandler
	IngredientHandler handlers.IngredientHandler
	TagHandler        handlers.TagHandler
	RatingHandler     handlers.RatingHandler
	FavoriteHandler   handlers.FavoriteHandler
	Middleware        middleware.Middleware
	JWTService        jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Cocktails()
	c.Ingredients()
	c.Tags()
	c.Favorites()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		user.Patch("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.UpdateUser)
		user.Post("/me/avatar", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.UploadAvatar)
		user.Get("/:id", c.UserHandler.GetUser)
	}
}

func (c *Config) Cocktails() {
	cocktails := c.App.Group("/api/v1/cocktails")

	// Catalog reads go through optional auth so authenticated callers also
	// see their own private cocktails.
	cocktails.Get("", c.Middleware.OptionalAuthMiddleware(c.JWTService), c.CocktailHandler.SearchCocktails)
	cocktails.Get("/:id", c.Middleware.OptionalAuthMiddleware(c.JWTService), c.CocktailHandler.GetCocktailDetail)
	cocktails.Get("/:id/ratings", c.Middleware.OptionalAuthMiddleware(c.JWTService), c.RatingHandler.GetCocktailRatings)

	cocktails.Post("", c.Middleware.AuthMiddleware(c.JWTService), c.CocktailHandler.CreateCocktail)
	cocktails.Patch("/:id", c.Middleware.AuthMiddleware(c.JWTService), c.CocktailHandler.UpdateCocktail)
	cocktails.Delete("/:id", c.Middleware.AuthMiddleware(c.JWTService), c.CocktailHandler.DeleteCocktail)
	cocktails.Post("/:id/image", c.Middleware.AuthMiddleware(c.JWTService), c.CocktailHandler.UploadCocktailImage)

	cocktails.Get("/:id/ratings/me", c.Middleware.AuthMiddleware(c.JWTService), c.RatingHandler.GetMyRating)
	cocktails.Get("/:id/favorite", c.Middleware.AuthMiddleware(c.JWTService), c.FavoriteHandler.GetFavoriteStatus)

	ratings := c.App.Group("/api/v1/ratings", c.Middleware.AuthMiddleware(c.JWTService))
	ratings.Post("", c.RatingHandler.CreateRating)
	ratings.Patch("/:id", c.RatingHandler.UpdateRating)
	ratings.Delete("/:id", c.RatingHandler.DeleteRating)
}

func (c *Config) Ingredients() {
	ingredients := c.App.Group("/api/v1/ingredients")
	ingredients.Get("", c.IngredientHandler.GetIngredients)
	ingredients.Get("/:id", c.IngredientHandler.GetIngredient)

	ingredients.Post("", c.Middleware.AuthMiddleware(c.JWTService), c.IngredientHandler.CreateIngredient)
	ingredients.Put("/:id", c.Middleware.AuthMiddleware(c.JWTService), c.IngredientHandler.UpdateIngredient)
	ingredients.Delete("/:id", c.Middleware.AuthMiddleware(c.JWTService), c.IngredientHandler.DeleteIngredient)
}

func (c *Config) Tags() {
	tags := c.App.Group("/api/v1/tags")
	tags.Get("", c.TagHandler.GetTags)
	tags.Get("/:id", c.TagHandler.GetTag)

	tags.Post("", c.Middleware.AuthMiddleware(c.JWTService), c.TagHandler.CreateTag)
	tags.Put("/:id", c.Middleware.AuthMiddleware(c.JWTService), c.TagHandler.UpdateTag)
	tags.Delete("/:id", c.Middleware.AuthMiddleware(c.JWTService), c.TagHandler.DeleteTag)
}

func (c *Config) Favorites() {
	favorites := c.App.Group("/api/v1/favorites", c.Middleware.AuthMiddleware(c.JWTService))
	favorites.Get("", c.FavoriteHandler.GetMyFavorites)
	favorites.Post("", c.FavoriteHandler.AddFavorite)
	favorites.Delete("/:id", c.FavoriteHandler.RemoveFavorite)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
