package favorite

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"koktajlove-api/domain"
	"koktajlove-api/entities"
	"koktajlove-api/pkg/cocktail"
)

type (
	FavoriteService interface {
		AddFavorite(ctx context.Context, req domain.AddFavoriteRequest, userID uint) (domain.FavoriteResponse, error)
		RemoveFavorite(ctx context.Context, cocktailID, userID uint) error
		GetUserFavorites(ctx context.Context, userID uint, page domain.PageRequest) (domain.PaginatedFavorites, error)
		GetFavoriteStatus(ctx context.Context, cocktailID, userID uint) (domain.FavoriteStatusResponse, error)
	}

	favoriteService struct {
		favoriteRepository FavoriteRepository
		cocktailRepository cocktail.CocktailRepository
	}
)

func NewFavoriteService(favoriteRepository FavoriteRepository, cocktailRepository cocktail.CocktailRepository) FavoriteService {
	return &favoriteService{
		favoriteRepository: favoriteRepository,
		cocktailRepository: cocktailRepository,
	}
}

func toFavoriteResponse(favorite *entities.Favorite) domain.FavoriteResponse {
	return domain.FavoriteResponse{
		ID:         favorite.ID,
		CocktailID: favorite.CocktailID,
		UserID:     favorite.UserID,
		CreatedAt:  favorite.CreatedAt,
	}
}

func (s *favoriteService) AddFavorite(ctx context.Context, req domain.AddFavoriteRequest, userID uint) (domain.FavoriteResponse, error) {
	c, err := s.cocktailRepository.GetCocktailByID(ctx, req.CocktailID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.FavoriteResponse{}, domain.ErrCocktailNotFound
		}
		return domain.FavoriteResponse{}, err
	}
	if !c.IsPublic && c.UserID != userID {
		return domain.FavoriteResponse{}, domain.ErrCocktailNotFound
	}

	if _, err := s.favoriteRepository.GetFavorite(ctx, userID, req.CocktailID); err == nil {
		return domain.FavoriteResponse{}, domain.ErrAlreadyFavorite
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.FavoriteResponse{}, err
	}

	favorite := entities.Favorite{
		UserID:     userID,
		CocktailID: req.CocktailID,
	}
	if err := s.favoriteRepository.CreateFavorite(ctx, &favorite); err != nil {
		return domain.FavoriteResponse{}, err
	}
	return toFavoriteResponse(&favorite), nil
}

func (s *favoriteService) RemoveFavorite(ctx context.Context, cocktailID, userID uint) error {
	if _, err := s.favoriteRepository.GetFavorite(ctx, userID, cocktailID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrFavoriteNotFound
		}
		return err
	}
	return s.favoriteRepository.DeleteFavorite(ctx, userID, cocktailID)
}

func (s *favoriteService) GetUserFavorites(ctx context.Context, userID uint, page domain.PageRequest) (domain.PaginatedFavorites, error) {
	p := page.Normalized()
	favorites, total, err := s.favoriteRepository.GetFavoritesByUser(ctx, userID, p.Offset(), p.Size)
	if err != nil {
		return domain.PaginatedFavorites{}, err
	}

	items := make([]domain.FavoriteResponse, 0, len(favorites))
	for _, favorite := range favorites {
		items = append(items, toFavoriteResponse(favorite))
	}
	return domain.PaginatedFavorites{
		Items: items,
		Total: total,
		Page:  p.Page,
		Size:  p.Size,
		Pages: domain.Pages(total, p.Size),
	}, nil
}

func (s *favoriteService) GetFavoriteStatus(ctx context.Context, cocktailID, userID uint) (domain.FavoriteStatusResponse, error) {
	_, err := s.favoriteRepository.GetFavorite(ctx, userID, cocktailID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.FavoriteStatusResponse{CocktailID: cocktailID, IsFavorite: false}, nil
		}
		return domain.FavoriteStatusResponse{}, err
	}
	return domain.FavoriteStatusResponse{CocktailID: cocktailID, IsFavorite: true}, nil
}
