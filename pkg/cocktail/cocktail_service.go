package cocktail

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"koktajlove-api/domain"
	"koktajlove-api/entities"
	"koktajlove-api/internal/utils/storage"
	"koktajlove-api/pkg/ingredient"
	"koktajlove-api/pkg/tag"
	"koktajlove-api/pkg/user"
)

const pgUniqueViolation = "23505"

type (
	CocktailService interface {
		SearchCocktails(ctx context.Context, req domain.CocktailSearchRequest) (domain.PaginatedCocktails, error)
		GetCocktailDetail(ctx context.Context, id uint, requestingUserID *uint) (domain.CocktailDetail, error)
		CreateCocktail(ctx context.Context, req domain.CreateCocktailRequest, userID uint) (domain.CocktailDetail, error)
		UpdateCocktail(ctx context.Context, id uint, req domain.UpdateCocktailRequest, userID uint) (domain.CocktailDetail, error)
		DeleteCocktail(ctx context.Context, id uint, userID uint) (domain.CocktailDetail, error)
		UploadCocktailImage(ctx context.Context, id uint, file *multipart.FileHeader, userID uint) (domain.CocktailDetail, error)
	}

	cocktailService struct {
		cocktailRepository   CocktailRepository
		ingredientRepository ingredient.IngredientRepository
		tagRepository        tag.TagRepository
		userRepository       user.UserRepository
		s3                   storage.AwsS3
	}
)

func NewCocktailService(
	cocktailRepository CocktailRepository,
	ingredientRepository ingredient.IngredientRepository,
	tagRepository tag.TagRepository,
	userRepository user.UserRepository,
	s3 storage.AwsS3,
) CocktailService {
	return &cocktailService{
		cocktailRepository:   cocktailRepository,
		ingredientRepository: ingredientRepository,
		tagRepository:        tagRepository,
		userRepository:       userRepository,
		s3:                   s3,
	}
}

// mapStoreErr translates store failures into domain sentinels. A unique
// violation on the dedupe key is the commit-time face of the duplicate rule,
// so it surfaces as ErrCocktailDuplicate like the proactive check does.
func mapStoreErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return domain.ErrCocktailDuplicate
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return errors.Join(domain.ErrStoreTimeout, err)
	}
	return errors.Join(domain.ErrStoreFailure, err)
}

// parseComposition validates and normalizes the request's ingredient list.
func parseComposition(data []domain.CocktailIngredientData) ([]CompositionLink, error) {
	if len(data) == 0 {
		return nil, domain.ErrEmptyComposition
	}

	seen := make(map[uint]bool, len(data))
	links := make([]CompositionLink, 0, len(data))
	for _, d := range data {
		if seen[d.IngredientID] {
			return nil, fmt.Errorf("%w: id %d", domain.ErrRepeatedIngredient, d.IngredientID)
		}
		seen[d.IngredientID] = true

		if d.Amount <= 0 {
			return nil, fmt.Errorf("%w: ingredient %d", domain.ErrNonPositiveAmount, d.IngredientID)
		}
		unit, err := domain.ParseUnit(d.Unit)
		if err != nil {
			return nil, err
		}
		links = append(links, CompositionLink{
			IngredientID: d.IngredientID,
			Amount:       d.Amount,
			Unit:         unit,
		})
	}
	return NormalizeComposition(links), nil
}

func (s *cocktailService) checkIngredientsExist(ctx context.Context, links []CompositionLink) error {
	for _, link := range links {
		if _, err := s.ingredientRepository.GetIngredientByID(ctx, link.IngredientID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: id %d", domain.ErrIngredientNotFound, link.IngredientID)
			}
			return err
		}
	}
	return nil
}

func (s *cocktailService) checkTagsExist(ctx context.Context, tags []domain.CocktailTagData) error {
	seen := make(map[uint]bool, len(tags))
	for _, t := range tags {
		if seen[t.TagID] {
			continue
		}
		seen[t.TagID] = true
		if _, err := s.tagRepository.GetTagByID(ctx, t.TagID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: id %d", domain.ErrTagNotFound, t.TagID)
			}
			return err
		}
	}
	return nil
}

// isDuplicate reports whether another cocktail with the same name, visibility
// scope and composition multiset already exists. Candidates are narrowed by
// name and scope in the store; composition comparison happens here on the
// normalized forms.
func (s *cocktailService) isDuplicate(ctx context.Context, name string, isPublic bool, ownerID, excludeID uint, normalized []CompositionLink) (bool, error) {
	candidateIDs, err := s.cocktailRepository.FindDuplicateCandidateIDs(ctx, name, isPublic, ownerID, excludeID)
	if err != nil {
		return false, err
	}
	for _, id := range candidateIDs {
		stored, err := s.cocktailRepository.GetCompositionLinks(ctx, id)
		if err != nil {
			return false, err
		}
		existing, err := normalizeStoredLinks(stored)
		if err != nil {
			return false, err
		}
		if EqualCompositions(normalized, existing) {
			return true, nil
		}
	}
	return false, nil
}

// hydrateDetails assembles full cocktail DTOs from search rows with three
// batched queries (compositions, tags, authors), never one query per row.
func (s *cocktailService) hydrateDetails(ctx context.Context, rows []CocktailRow) ([]domain.CocktailDetail, error) {
	if len(rows) == 0 {
		return []domain.CocktailDetail{}, nil
	}

	cocktailIDs := make([]uint, 0, len(rows))
	userIDSet := make(map[uint]bool, len(rows))
	userIDs := make([]uint, 0, len(rows))
	for _, row := range rows {
		cocktailIDs = append(cocktailIDs, row.ID)
		if !userIDSet[row.UserID] {
			userIDSet[row.UserID] = true
			userIDs = append(userIDs, row.UserID)
		}
	}

	compositions, err := s.cocktailRepository.ListCompositionRows(ctx, cocktailIDs)
	if err != nil {
		return nil, err
	}
	tagRows, err := s.cocktailRepository.ListTagRows(ctx, cocktailIDs)
	if err != nil {
		return nil, err
	}
	authors, err := s.userRepository.GetUsersByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	ingredientsByCocktail := make(map[uint][]domain.IngredientInCocktail, len(rows))
	for _, c := range compositions {
		unit, err := domain.ParseStoredUnit(c.Unit)
		if err != nil {
			return nil, fmt.Errorf("cocktail %d ingredient %d: %w", c.CocktailID, c.IngredientID, err)
		}
		ingredientsByCocktail[c.CocktailID] = append(ingredientsByCocktail[c.CocktailID], domain.IngredientInCocktail{
			ID:     c.IngredientID,
			Name:   c.IngredientName,
			Amount: c.Amount,
			Unit:   unit,
		})
	}

	tagsByCocktail := make(map[uint][]domain.TagResponse, len(rows))
	for _, t := range tagRows {
		tagsByCocktail[t.CocktailID] = append(tagsByCocktail[t.CocktailID], domain.TagResponse{
			ID:   t.TagID,
			Name: t.TagName,
		})
	}

	authorsByID := make(map[uint]*entities.User, len(authors))
	for _, a := range authors {
		authorsByID[a.ID] = a
	}

	details := make([]domain.CocktailDetail, 0, len(rows))
	for _, row := range rows {
		detail := domain.CocktailDetail{
			ID:            row.ID,
			Name:          row.Name,
			Description:   row.Description,
			Instructions:  row.Instructions,
			ImageURL:      row.ImageURL,
			IsPublic:      row.IsPublic,
			UserID:        row.UserID,
			CreatedAt:     row.CreatedAt,
			UpdatedAt:     row.UpdatedAt,
			Ingredients:   ingredientsByCocktail[row.ID],
			Tags:          tagsByCocktail[row.ID],
			AverageRating: row.AverageRating,
			RatingsCount:  row.RatingsCount,
		}
		if detail.Ingredients == nil {
			detail.Ingredients = []domain.IngredientInCocktail{}
		}
		if detail.Tags == nil {
			detail.Tags = []domain.TagResponse{}
		}
		if author, ok := authorsByID[row.UserID]; ok {
			detail.Author = domain.UserResponse{
				ID:        author.ID,
				Username:  author.Username,
				Bio:       author.Bio,
				AvatarURL: author.AvatarURL,
				CreatedAt: author.CreatedAt,
			}
		}
		details = append(details, detail)
	}
	return details, nil
}

func (s *cocktailService) getDetail(ctx context.Context, id uint) (domain.CocktailDetail, error) {
	row, err := s.cocktailRepository.GetCocktailRow(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.CocktailDetail{}, domain.ErrCocktailNotFound
		}
		return domain.CocktailDetail{}, err
	}
	details, err := s.hydrateDetails(ctx, []CocktailRow{*row})
	if err != nil {
		return domain.CocktailDetail{}, err
	}
	return details[0], nil
}

func (s *cocktailService) SearchCocktails(ctx context.Context, req domain.CocktailSearchRequest) (domain.PaginatedCocktails, error) {
	// A blank or whitespace-only name is no filter at all.
	req.Name = strings.TrimSpace(req.Name)

	if req.MinAvgRating != nil && (*req.MinAvgRating < 1.0 || *req.MinAvgRating > 5.0) {
		return domain.PaginatedCocktails{}, domain.ErrMinRatingOutOfRange
	}

	page := req.PageRequest.Normalized()
	rows, total, err := s.cocktailRepository.SearchCocktails(ctx, req, page.Offset(), page.Size)
	if err != nil {
		return domain.PaginatedCocktails{}, mapStoreErr(err)
	}

	items, err := s.hydrateDetails(ctx, rows)
	if err != nil {
		return domain.PaginatedCocktails{}, err
	}

	return domain.PaginatedCocktails{
		Items: items,
		Total: total,
		Page:  page.Page,
		Size:  page.Size,
		Pages: domain.Pages(total, page.Size),
	}, nil
}

func (s *cocktailService) GetCocktailDetail(ctx context.Context, id uint, requestingUserID *uint) (domain.CocktailDetail, error) {
	detail, err := s.getDetail(ctx, id)
	if err != nil {
		return domain.CocktailDetail{}, err
	}
	if !detail.IsPublic && (requestingUserID == nil || *requestingUserID != detail.UserID) {
		return domain.CocktailDetail{}, domain.ErrUserNotAllowed
	}
	return detail, nil
}

func (s *cocktailService) CreateCocktail(ctx context.Context, req domain.CreateCocktailRequest, userID uint) (domain.CocktailDetail, error) {
	normalized, err := parseComposition(req.Ingredients)
	if err != nil {
		return domain.CocktailDetail{}, err
	}
	if err := s.checkIngredientsExist(ctx, normalized); err != nil {
		return domain.CocktailDetail{}, err
	}
	if err := s.checkTagsExist(ctx, req.Tags); err != nil {
		return domain.CocktailDetail{}, err
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	dup, err := s.isDuplicate(ctx, req.Name, isPublic, userID, 0, normalized)
	if err != nil {
		return domain.CocktailDetail{}, err
	}
	if dup {
		return domain.CocktailDetail{}, domain.ErrCocktailDuplicate
	}

	cocktail := entities.Cocktail{
		Name:         req.Name,
		Description:  req.Description,
		Instructions: req.Instructions,
		ImageURL:     req.ImageURL,
		IsPublic:     isPublic,
		UserID:       userID,
		DedupeKey:    DedupeKey(req.Name, isPublic, userID, normalized),
	}

	links := make([]entities.CocktailIngredient, 0, len(normalized))
	for _, link := range normalized {
		links = append(links, entities.CocktailIngredient{
			IngredientID: link.IngredientID,
			Amount:       link.Amount,
			Unit:         string(link.Unit),
		})
	}
	tags := make([]entities.CocktailTag, 0, len(req.Tags))
	for _, t := range req.Tags {
		tags = append(tags, entities.CocktailTag{TagID: t.TagID})
	}

	if err := s.cocktailRepository.CreateCocktail(ctx, &cocktail, links, tags); err != nil {
		return domain.CocktailDetail{}, mapStoreErr(err)
	}

	return s.getDetail(ctx, cocktail.ID)
}

func (s *cocktailService) UpdateCocktail(ctx context.Context, id uint, req domain.UpdateCocktailRequest, userID uint) (domain.CocktailDetail, error) {
	cocktail, err := s.cocktailRepository.GetCocktailByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.CocktailDetail{}, domain.ErrCocktailNotFound
		}
		return domain.CocktailDetail{}, err
	}
	if cocktail.UserID != userID {
		return domain.CocktailDetail{}, domain.ErrUserNotAllowed
	}

	if req.Name != nil {
		cocktail.Name = *req.Name
	}
	if req.Description != nil {
		cocktail.Description = *req.Description
	}
	if req.Instructions != nil {
		cocktail.Instructions = *req.Instructions
	}
	if req.ImageURL != nil {
		cocktail.ImageURL = *req.ImageURL
	}
	if req.IsPublic != nil {
		cocktail.IsPublic = *req.IsPublic
	}

	// The effective composition is the new list when provided, otherwise
	// whatever is stored. Either way the duplicate rule holds after the patch.
	var normalized []CompositionLink
	replaceLinks := req.Ingredients != nil
	if replaceLinks {
		normalized, err = parseComposition(*req.Ingredients)
		if err != nil {
			return domain.CocktailDetail{}, err
		}
		if err := s.checkIngredientsExist(ctx, normalized); err != nil {
			return domain.CocktailDetail{}, err
		}
	} else {
		stored, err := s.cocktailRepository.GetCompositionLinks(ctx, id)
		if err != nil {
			return domain.CocktailDetail{}, err
		}
		normalized, err = normalizeStoredLinks(stored)
		if err != nil {
			return domain.CocktailDetail{}, err
		}
	}

	replaceTags := req.Tags != nil
	var tags []entities.CocktailTag
	if replaceTags {
		if err := s.checkTagsExist(ctx, *req.Tags); err != nil {
			return domain.CocktailDetail{}, err
		}
		tags = make([]entities.CocktailTag, 0, len(*req.Tags))
		for _, t := range *req.Tags {
			tags = append(tags, entities.CocktailTag{TagID: t.TagID})
		}
	}

	dup, err := s.isDuplicate(ctx, cocktail.Name, cocktail.IsPublic, userID, id, normalized)
	if err != nil {
		return domain.CocktailDetail{}, err
	}
	if dup {
		return domain.CocktailDetail{}, domain.ErrCocktailDuplicate
	}
	cocktail.DedupeKey = DedupeKey(cocktail.Name, cocktail.IsPublic, userID, normalized)

	var links []entities.CocktailIngredient
	if replaceLinks {
		links = make([]entities.CocktailIngredient, 0, len(normalized))
		for _, link := range normalized {
			links = append(links, entities.CocktailIngredient{
				IngredientID: link.IngredientID,
				Amount:       link.Amount,
				Unit:         string(link.Unit),
			})
		}
	}

	if err := s.cocktailRepository.UpdateCocktail(ctx, cocktail, links, replaceLinks, tags, replaceTags); err != nil {
		return domain.CocktailDetail{}, mapStoreErr(err)
	}

	return s.getDetail(ctx, id)
}

func (s *cocktailService) DeleteCocktail(ctx context.Context, id uint, userID uint) (domain.CocktailDetail, error) {
	detail, err := s.getDetail(ctx, id)
	if err != nil {
		return domain.CocktailDetail{}, err
	}
	if detail.UserID != userID {
		return domain.CocktailDetail{}, domain.ErrUserNotAllowed
	}

	if err := s.cocktailRepository.DeleteCocktail(ctx, id); err != nil {
		return domain.CocktailDetail{}, mapStoreErr(err)
	}

	if detail.ImageURL != "" {
		objectKey := s.s3.GetObjectKeyFromLink(detail.ImageURL)
		if objectKey != detail.ImageURL {
			if err := s.s3.DeleteFile(objectKey); err != nil {
				// The cocktail rows are already gone; only the object is orphaned.
				return detail, fmt.Errorf("image cleanup after delete: %w", err)
			}
		}
	}
	return detail, nil
}

func (s *cocktailService) UploadCocktailImage(ctx context.Context, id uint, file *multipart.FileHeader, userID uint) (domain.CocktailDetail, error) {
	cocktail, err := s.cocktailRepository.GetCocktailByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.CocktailDetail{}, domain.ErrCocktailNotFound
		}
		return domain.CocktailDetail{}, err
	}
	if cocktail.UserID != userID {
		return domain.CocktailDetail{}, domain.ErrUserNotAllowed
	}

	var objectKey string
	existingKey := s.s3.GetObjectKeyFromLink(cocktail.ImageURL)
	if cocktail.ImageURL != "" && existingKey != cocktail.ImageURL {
		objectKey, err = s.s3.UpdateFile(existingKey, file, storage.AllowImage...)
	} else {
		fileName := uuid.New().String()
		objectKey, err = s.s3.UploadFile(fileName, file, "cocktails", storage.AllowImage...)
	}
	if err != nil {
		return domain.CocktailDetail{}, err
	}

	if err := s.cocktailRepository.UpdateCocktailImage(ctx, id, s.s3.GetPublicLinkKey(objectKey)); err != nil {
		return domain.CocktailDetail{}, mapStoreErr(err)
	}
	return s.getDetail(ctx, id)
}
