package ingredient

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"koktajlove-api/domain"
	"koktajlove-api/entities"
)

type (
	IngredientService interface {
		CreateIngredient(ctx context.Context, req domain.IngredientRequest) (domain.IngredientResponse, error)
		GetIngredientByID(ctx context.Context, id uint) (domain.IngredientResponse, error)
		GetIngredients(ctx context.Context, page, limit int) ([]domain.IngredientResponse, int64, error)
		UpdateIngredient(ctx context.Context, id uint, req domain.IngredientRequest) (domain.IngredientResponse, error)
		DeleteIngredient(ctx context.Context, id uint) (domain.IngredientResponse, error)
	}

	ingredientService struct {
		ingredientRepository IngredientRepository
	}
)

func NewIngredientService(ingredientRepository IngredientRepository) IngredientService {
	return &ingredientService{ingredientRepository: ingredientRepository}
}

func (s *ingredientService) CreateIngredient(ctx context.Context, req domain.IngredientRequest) (domain.IngredientResponse, error) {
	if _, err := s.ingredientRepository.GetIngredientByName(ctx, req.Name); err == nil {
		return domain.IngredientResponse{}, domain.ErrIngredientNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.IngredientResponse{}, err
	}

	ingredient := &entities.Ingredient{Name: req.Name}
	if err := s.ingredientRepository.CreateIngredient(ctx, ingredient); err != nil {
		return domain.IngredientResponse{}, err
	}

	return toResponse(ingredient), nil
}

func (s *ingredientService) GetIngredientByID(ctx context.Context, id uint) (domain.IngredientResponse, error) {
	ingredient, err := s.ingredientRepository.GetIngredientByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.IngredientResponse{}, domain.ErrIngredientNotFound
		}
		return domain.IngredientResponse{}, err
	}
	return toResponse(ingredient), nil
}

func (s *ingredientService) GetIngredients(ctx context.Context, page, limit int) ([]domain.IngredientResponse, int64, error) {
	ingredients, count, err := s.ingredientRepository.GetIngredients(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.IngredientResponse, 0, len(ingredients))
	for _, ingredient := range ingredients {
		result = append(result, toResponse(ingredient))
	}
	return result, count, nil
}

func (s *ingredientService) UpdateIngredient(ctx context.Context, id uint, req domain.IngredientRequest) (domain.IngredientResponse, error) {
	ingredient, err := s.ingredientRepository.GetIngredientByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.IngredientResponse{}, domain.ErrIngredientNotFound
		}
		return domain.IngredientResponse{}, err
	}

	if existing, err := s.ingredientRepository.GetIngredientByName(ctx, req.Name); err == nil && existing.ID != id {
		return domain.IngredientResponse{}, domain.ErrIngredientNameTaken
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.IngredientResponse{}, err
	}

	ingredient.Name = req.Name
	if err := s.ingredientRepository.UpdateIngredient(ctx, ingredient); err != nil {
		return domain.IngredientResponse{}, err
	}
	return toResponse(ingredient), nil
}

// DeleteIngredient refuses to remove an ingredient still referenced by any
// composition link. The store's RESTRICT constraint backs this check up.
func (s *ingredientService) DeleteIngredient(ctx context.Context, id uint) (domain.IngredientResponse, error) {
	ingredient, err := s.ingredientRepository.GetIngredientByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.IngredientResponse{}, domain.ErrIngredientNotFound
		}
		return domain.IngredientResponse{}, err
	}

	references, err := s.ingredientRepository.CountCocktailReferences(ctx, id)
	if err != nil {
		return domain.IngredientResponse{}, err
	}
	if references > 0 {
		return domain.IngredientResponse{}, domain.ErrIngredientInUse
	}

	if err := s.ingredientRepository.DeleteIngredient(ctx, id); err != nil {
		return domain.IngredientResponse{}, err
	}
	return toResponse(ingredient), nil
}

func toResponse(ingredient *entities.Ingredient) domain.IngredientResponse {
	return domain.IngredientResponse{
		ID:   ingredient.ID,
		Name: ingredient.Name,
	}
}
