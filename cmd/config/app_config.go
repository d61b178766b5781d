package config

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"

	"koktajlove-api/internal/api/handlers"
	"koktajlove-api/internal/api/routes"
	"koktajlove-api/internal/middleware"
	"koktajlove-api/internal/utils"
	"koktajlove-api/internal/utils/storage"
	"koktajlove-api/pkg/cocktail"
	"koktajlove-api/pkg/favorite"
	"koktajlove-api/pkg/ingredient"
	"koktajlove-api/pkg/jwt"
	"koktajlove-api/pkg/rating"
	"koktajlove-api/pkg/tag"
	"koktajlove-api/pkg/user"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
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
		TimeZone:   "Europe/Warsaw",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	// Repository
	userRepository := user.NewUserRepository(db)
	cocktailRepository := cocktail.NewCocktailRepository(db)
	ingredientRepository := ingredient.NewIngredientRepository(db)
	tagRepository := tag.NewTagRepository(db)
	ratingRepository := rating.NewRatingRepository(db)
	favoriteRepository := favorite.NewFavoriteRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService, s3)
	cocktailService := cocktail.NewCocktailService(
		cocktailRepository,
		ingredientRepository,
		tagRepository,
		userRepository,
		s3,
	)
	ingredientService := ingredient.NewIngredientService(ingredientRepository)
	tagService := tag.NewTagService(tagRepository)
	ratingService := rating.NewRatingService(ratingRepository, cocktailRepository)
	favoriteService := favorite.NewFavoriteService(favoriteRepository, cocktailRepository)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	cocktailHandler := handlers.NewCocktailHandler(cocktailService, validator)
	ingredientHandler := handlers.NewIngredientHandler(ingredientService, validator)
	tagHandler := handlers.NewTagHandler(tagService, validator)
	ratingHandler := handlers.NewRatingHandler(ratingService, validator)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService, validator)

	// routes
	routesConfig := routes.Config{
		App:               app,
		UserHandler:       userHandler,
		CocktailHandler:   cocktailHandler,
		IngredientHandler: ingredientHandler,
		TagHandler:        tagHandler,
		RatingHandler:     ratingHandler,
		FavoriteHandler:   favoriteHandler,
		Middleware:        middlewares,
		JWTService:        jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
