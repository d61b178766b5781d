package rating

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"koktajlove-api/domain"
	"koktajlove-api/entities"
	"koktajlove-api/pkg/cocktail"
)

type (
	RatingService interface {
		CreateRating(ctx context.Context, req domain.CreateRatingRequest, userID uint) (domain.RatingResponse, error)
		GetCocktailRatings(ctx context.Context, cocktailID uint, requestingUserID *uint, page domain.PageRequest) (domain.PaginatedRatings, error)
		GetUserRatingForCocktail(ctx context.Context, cocktailID, userID uint) (domain.RatingResponse, error)
		UpdateRating(ctx context.Context, id uint, req domain.UpdateRatingRequest, userID uint) (domain.RatingResponse, error)
		DeleteRating(ctx context.Context, id uint, userID uint) error
	}

	ratingService struct {
		ratingRepository   RatingRepository
		cocktailRepository cocktail.CocktailRepository
	}
)

func NewRatingService(ratingRepository RatingRepository, cocktailRepository cocktail.CocktailRepository) RatingService {
	return &ratingService{
		ratingRepository:   ratingRepository,
		cocktailRepository: cocktailRepository,
	}
}

func toRatingResponse(rating *entities.Rating) domain.RatingResponse {
	return domain.RatingResponse{
		ID:          rating.ID,
		CocktailID:  rating.CocktailID,
		UserID:      rating.UserID,
		RatingValue: rating.RatingValue,
		Comment:     rating.Comment,
		CreatedAt:   rating.CreatedAt,
		UpdatedAt:   rating.UpdatedAt,
	}
}

// visibleCocktail loads the cocktail and enforces visibility: private
// cocktails only exist for their owner.
func (s *ratingService) visibleCocktail(ctx context.Context, cocktailID uint, requestingUserID *uint) (*entities.Cocktail, error) {
	c, err := s.cocktailRepository.GetCocktailByID(ctx, cocktailID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCocktailNotFound
		}
		return nil, err
	}
	if !c.IsPublic && (requestingUserID == nil || *requestingUserID != c.UserID) {
		return nil, domain.ErrCocktailNotFound
	}
	return c, nil
}

func (s *ratingService) CreateRating(ctx context.Context, req domain.CreateRatingRequest, userID uint) (domain.RatingResponse, error) {
	if req.RatingValue < 1 || req.RatingValue > 5 {
		return domain.RatingResponse{}, domain.ErrRatingValueOutOfRange
	}

	c, err := s.visibleCocktail(ctx, req.CocktailID, &userID)
	if err != nil {
		return domain.RatingResponse{}, err
	}
	if c.UserID == userID {
		return domain.RatingResponse{}, domain.ErrRateOwnCocktail
	}

	if _, err := s.ratingRepository.GetRatingByUserAndCocktail(ctx, userID, req.CocktailID); err == nil {
		return domain.RatingResponse{}, domain.ErrAlreadyRated
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.RatingResponse{}, err
	}

	rating := entities.Rating{
		RatingValue: req.RatingValue,
		Comment:     req.Comment,
		UserID:      userID,
		CocktailID:  req.CocktailID,
	}
	if err := s.ratingRepository.CreateRating(ctx, &rating); err != nil {
		return domain.RatingResponse{}, err
	}
	return toRatingResponse(&rating), nil
}

func (s *ratingService) GetCocktailRatings(ctx context.Context, cocktailID uint, requestingUserID *uint, page domain.PageRequest) (domain.PaginatedRatings, error) {
	if _, err := s.visibleCocktail(ctx, cocktailID, requestingUserID); err != nil {
		return domain.PaginatedRatings{}, err
	}

	p := page.Normalized()
	ratings, total, err := s.ratingRepository.GetRatingsByCocktail(ctx, cocktailID, p.Offset(), p.Size)
	if err != nil {
		return domain.PaginatedRatings{}, err
	}

	items := make([]domain.RatingResponse, 0, len(ratings))
	for _, rating := range ratings {
		items = append(items, toRatingResponse(rating))
	}
	return domain.PaginatedRatings{
		Items: items,
		Total: total,
		Page:  p.Page,
		Size:  p.Size,
		Pages: domain.Pages(total, p.Size),
	}, nil
}

func (s *ratingService) GetUserRatingForCocktail(ctx context.Context, cocktailID, userID uint) (domain.RatingResponse, error) {
	rating, err := s.ratingRepository.GetRatingByUserAndCocktail(ctx, userID, cocktailID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RatingResponse{}, domain.ErrRatingNotFound
		}
		return domain.RatingResponse{}, err
	}
	return toRatingResponse(rating), nil
}

func (s *ratingService) UpdateRating(ctx context.Context, id uint, req domain.UpdateRatingRequest, userID uint) (domain.RatingResponse, error) {
	rating, err := s.ratingRepository.GetRatingByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RatingResponse{}, domain.ErrRatingNotFound
		}
		return domain.RatingResponse{}, err
	}
	if rating.UserID != userID {
		return domain.RatingResponse{}, domain.ErrUserNotAllowed
	}

	if req.RatingValue != nil {
		if *req.RatingValue < 1 || *req.RatingValue > 5 {
			return domain.RatingResponse{}, domain.ErrRatingValueOutOfRange
		}
		rating.RatingValue = *req.RatingValue
	}
	if req.Comment != nil {
		rating.Comment = *req.Comment
	}

	if err := s.ratingRepository.UpdateRating(ctx, rating); err != nil {
		return domain.RatingResponse{}, err
	}
	return toRatingResponse(rating), nil
}

func (s *ratingService) DeleteRating(ctx context.Context, id uint, userID uint) error {
	rating, err := s.ratingRepository.GetRatingByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRatingNotFound
		}
		return err
	}
	if rating.UserID != userID {
		return domain.ErrUserNotAllowed
	}
	return s.ratingRepository.DeleteRating(ctx, id)
}
