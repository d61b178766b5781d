package tag

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"koktajlove-api/domain"
	"koktajlove-api/entities"
)

type (
	TagService interface {
		CreateTag(ctx context.Context, req domain.TagRequest) (domain.TagResponse, error)
		GetTagByID(ctx context.Context, id uint) (domain.TagResponse, error)
		GetTags(ctx context.Context, page, limit int) ([]domain.TagResponse, int64, error)
		UpdateTag(ctx context.Context, id uint, req domain.TagRequest) (domain.TagResponse, error)
		DeleteTag(ctx context.Context, id uint) (domain.TagResponse, error)
	}

	tagService struct {
		tagRepository TagRepository
	}
)

func NewTagService(tagRepository TagRepository) TagService {
	return &tagService{tagRepository: tagRepository}
}

func (s *tagService) CreateTag(ctx context.Context, req domain.TagRequest) (domain.TagResponse, error) {
	if _, err := s.tagRepository.GetTagByName(ctx, req.Name); err == nil {
		return domain.TagResponse{}, domain.ErrTagNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.TagResponse{}, err
	}

	tag := &entities.Tag{Name: req.Name}
	if err := s.tagRepository.CreateTag(ctx, tag); err != nil {
		return domain.TagResponse{}, err
	}
	return toResponse(tag), nil
}

func (s *tagService) GetTagByID(ctx context.Context, id uint) (domain.TagResponse, error) {
	tag, err := s.tagRepository.GetTagByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.TagResponse{}, domain.ErrTagNotFound
		}
		return domain.TagResponse{}, err
	}
	return toResponse(tag), nil
}

func (s *tagService) GetTags(ctx context.Context, page, limit int) ([]domain.TagResponse, int64, error) {
	tags, count, err := s.tagRepository.GetTags(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.TagResponse, 0, len(tags))
	for _, tag := range tags {
		result = append(result, toResponse(tag))
	}
	return result, count, nil
}

func (s *tagService) UpdateTag(ctx context.Context, id uint, req domain.TagRequest) (domain.TagResponse, error) {
	tag, err := s.tagRepository.GetTagByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.TagResponse{}, domain.ErrTagNotFound
		}
		return domain.TagResponse{}, err
	}

	if existing, err := s.tagRepository.GetTagByName(ctx, req.Name); err == nil && existing.ID != id {
		return domain.TagResponse{}, domain.ErrTagNameTaken
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.TagResponse{}, err
	}

	tag.Name = req.Name
	if err := s.tagRepository.UpdateTag(ctx, tag); err != nil {
		return domain.TagResponse{}, err
	}
	return toResponse(tag), nil
}

func (s *tagService) DeleteTag(ctx context.Context, id uint) (domain.TagResponse, error) {
	tag, err := s.tagRepository.GetTagByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.TagResponse{}, domain.ErrTagNotFound
		}
		return domain.TagResponse{}, err
	}

	references, err := s.tagRepository.CountCocktailReferences(ctx, id)
	if err != nil {
		return domain.TagResponse{}, err
	}
	if references > 0 {
		return domain.TagResponse{}, domain.ErrTagInUse
	}

	if err := s.tagRepository.DeleteTag(ctx, id); err != nil {
		return domain.TagResponse{}, err
	}
	return toResponse(tag), nil
}

func toResponse(tag *entities.Tag) domain.TagResponse {
	return domain.TagResponse{
		ID:   tag.ID,
		Name: tag.Name,
	}
}
