package rating

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"koktajlove-api/domain"
	"koktajlove-api/entities"
	"koktajlove-api/pkg/cocktail"
)

type fakeRatingRepo struct {
	nextID  uint
	ratings map[uint]*entities.Rating
}

func newFakeRatingRepo() *fakeRatingRepo {
	return &fakeRatingRepo{ratings: map[uint]*entities.Rating{}}
}

func (f *fakeRatingRepo) CreateRating(_ context.Context, rating *entities.Rating) error {
	f.nextID++
	rating.ID = f.nextID
	clone := *rating
	f.ratings[rating.ID] = &clone
	return nil
}

func (f *fakeRatingRepo) GetRatingByID(_ context.Context, id uint) (*entities.Rating, error) {
	r, ok := f.ratings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *r
	return &clone, nil
}

func (f *fakeRatingRepo) GetRatingByUserAndCocktail(_ context.Context, userID, cocktailID uint) (*entities.Rating, error) {
	for _, r := range f.ratings {
		if r.UserID == userID && r.CocktailID == cocktailID {
			clone := *r
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRatingRepo) GetRatingsByCocktail(_ context.Context, cocktailID uint, offset, limit int) ([]*entities.Rating, int64, error) {
	var matched []*entities.Rating
	for _, r := range f.ratings {
		if r.CocktailID == cocktailID {
			matched = append(matched, r)
		}
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (f *fakeRatingRepo) UpdateRating(_ context.Context, rating *entities.Rating) error {
	clone := *rating
	f.ratings[rating.ID] = &clone
	return nil
}

func (f *fakeRatingRepo) DeleteRating(_ context.Context, id uint) error {
	delete(f.ratings, id)
	return nil
}

// cocktailStore serves only the lookup the rating service performs.
type cocktailStore struct {
	cocktail.CocktailRepository
	cocktails map[uint]*entities.Cocktail
}

func (s *cocktailStore) GetCocktailByID(_ context.Context, id uint) (*entities.Cocktail, error) {
	c, ok := s.cocktails[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func newRatingTestService() (RatingService, *fakeRatingRepo) {
	repo := newFakeRatingRepo()
	store := &cocktailStore{cocktails: map[uint]*entities.Cocktail{
		1: {ID: 1, Name: "Mojito", IsPublic: true, UserID: 10},
		2: {ID: 2, Name: "Secret Sour", IsPublic: false, UserID: 10},
	}}
	return NewRatingService(repo, store), repo
}

func TestCreateRating(t *testing.T) {
	svc, _ := newRatingTestService()
	ctx := context.Background()

	res, err := svc.CreateRating(ctx, domain.CreateRatingRequest{
		CocktailID:  1,
		RatingValue: 4,
		Comment:     "solid",
	}, 11)
	require.NoError(t, err)
	assert.Equal(t, 4, res.RatingValue)
	assert.Equal(t, uint(11), res.UserID)
}

func TestCreateRatingRules(t *testing.T) {
	svc, _ := newRatingTestService()
	ctx := context.Background()

	// Out-of-range value.
	_, err := svc.CreateRating(ctx, domain.CreateRatingRequest{CocktailID: 1, RatingValue: 6}, 11)
	assert.ErrorIs(t, err, domain.ErrRatingValueOutOfRange)

	// Authors do not rate their own cocktails.
	_, err = svc.CreateRating(ctx, domain.CreateRatingRequest{CocktailID: 1, RatingValue: 5}, 10)
	assert.ErrorIs(t, err, domain.ErrRateOwnCocktail)

	// One rating per user per cocktail.
	_, err = svc.CreateRating(ctx, domain.CreateRatingRequest{CocktailID: 1, RatingValue: 4}, 11)
	require.NoError(t, err)
	_, err = svc.CreateRating(ctx, domain.CreateRatingRequest{CocktailID: 1, RatingValue: 5}, 11)
	assert.ErrorIs(t, err, domain.ErrAlreadyRated)

	// Private cocktails do not exist for non-owners.
	_, err = svc.CreateRating(ctx, domain.CreateRatingRequest{CocktailID: 2, RatingValue: 3}, 11)
	assert.ErrorIs(t, err, domain.ErrCocktailNotFound)

	_, err = svc.CreateRating(ctx, domain.CreateRatingRequest{CocktailID: 999, RatingValue: 3}, 11)
	assert.ErrorIs(t, err, domain.ErrCocktailNotFound)
}

func TestGetCocktailRatings(t *testing.T) {
	svc, _ := newRatingTestService()
	ctx := context.Background()

	_, err := svc.CreateRating(ctx, domain.CreateRatingRequest{CocktailID: 1, RatingValue: 4}, 11)
	require.NoError(t, err)
	_, err = svc.CreateRating(ctx, domain.CreateRatingRequest{CocktailID: 1, RatingValue: 5}, 12)
	require.NoError(t, err)

	res, err := svc.GetCocktailRatings(ctx, 1, nil, domain.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Total)
	assert.Len(t, res.Items, 2)

	// Anonymous callers cannot list ratings of a private cocktail.
	_, err = svc.GetCocktailRatings(ctx, 2, nil, domain.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrCocktailNotFound)

	// The owner can.
	owner := uint(10)
	res, err = svc.GetCocktailRatings(ctx, 2, &owner, domain.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Total)
	assert.Equal(t, 1, res.Pages)
}

func TestUpdateAndDeleteRating(t *testing.T) {
	svc, _ := newRatingTestService()
	ctx := context.Background()

	created, err := svc.CreateRating(ctx, domain.CreateRatingRequest{CocktailID: 1, RatingValue: 3}, 11)
	require.NoError(t, err)

	// Only the author may touch a rating.
	value := 5
	_, err = svc.UpdateRating(ctx, created.ID, domain.UpdateRatingRequest{RatingValue: &value}, 12)
	assert.ErrorIs(t, err, domain.ErrUserNotAllowed)
	assert.ErrorIs(t, svc.DeleteRating(ctx, created.ID, 12), domain.ErrUserNotAllowed)

	updated, err := svc.UpdateRating(ctx, created.ID, domain.UpdateRatingRequest{RatingValue: &value}, 11)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.RatingValue)

	bad := 0
	_, err = svc.UpdateRating(ctx, created.ID, domain.UpdateRatingRequest{RatingValue: &bad}, 11)
	assert.ErrorIs(t, err, domain.ErrRatingValueOutOfRange)

	require.NoError(t, svc.DeleteRating(ctx, created.ID, 11))
	assert.ErrorIs(t, svc.DeleteRating(ctx, created.ID, 11), domain.ErrRatingNotFound)

	_, err = svc.GetUserRatingForCocktail(ctx, 1, 11)
	assert.ErrorIs(t, err, domain.ErrRatingNotFound)
}
