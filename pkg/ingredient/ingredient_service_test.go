package ingredient

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"koktajlove-api/domain"
	"koktajlove-api/entities"
)

type fakeIngredientRepo struct {
	nextID      uint
	ingredients map[uint]*entities.Ingredient
	references  map[uint]int64
}

func newFakeIngredientRepo() *fakeIngredientRepo {
	return &fakeIngredientRepo{
		ingredients: map[uint]*entities.Ingredient{},
		references:  map[uint]int64{},
	}
}

func (f *fakeIngredientRepo) CreateIngredient(_ context.Context, ingredient *entities.Ingredient) error {
	f.nextID++
	ingredient.ID = f.nextID
	clone := *ingredient
	f.ingredients[ingredient.ID] = &clone
	return nil
}

func (f *fakeIngredientRepo) GetIngredientByID(_ context.Context, id uint) (*entities.Ingredient, error) {
	i, ok := f.ingredients[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *i
	return &clone, nil
}

func (f *fakeIngredientRepo) GetIngredientByName(_ context.Context, name string) (*entities.Ingredient, error) {
	for _, i := range f.ingredients {
		if i.Name == name {
			clone := *i
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeIngredientRepo) GetIngredients(_ context.Context, page, limit int) ([]*entities.Ingredient, int64, error) {
	var all []*entities.Ingredient
	for _, i := range f.ingredients {
		all = append(all, i)
	}
	return all, int64(len(all)), nil
}

func (f *fakeIngredientRepo) UpdateIngredient(_ context.Context, ingredient *entities.Ingredient) error {
	clone := *ingredient
	f.ingredients[ingredient.ID] = &clone
	return nil
}

func (f *fakeIngredientRepo) DeleteIngredient(_ context.Context, id uint) error {
	delete(f.ingredients, id)
	return nil
}

func (f *fakeIngredientRepo) CountCocktailReferences(_ context.Context, id uint) (int64, error) {
	return f.references[id], nil
}

func TestCreateIngredient(t *testing.T) {
	svc := NewIngredientService(newFakeIngredientRepo())
	ctx := context.Background()

	res, err := svc.CreateIngredient(ctx, domain.IngredientRequest{Name: "white rum"})
	require.NoError(t, err)
	assert.Equal(t, "white rum", res.Name)
	assert.NotZero(t, res.ID)

	_, err = svc.CreateIngredient(ctx, domain.IngredientRequest{Name: "white rum"})
	assert.ErrorIs(t, err, domain.ErrIngredientNameTaken)
}

func TestUpdateIngredient(t *testing.T) {
	svc := NewIngredientService(newFakeIngredientRepo())
	ctx := context.Background()

	rum, err := svc.CreateIngredient(ctx, domain.IngredientRequest{Name: "white rum"})
	require.NoError(t, err)
	_, err = svc.CreateIngredient(ctx, domain.IngredientRequest{Name: "dark rum"})
	require.NoError(t, err)

	// Renaming to itself is allowed, renaming onto another is not.
	res, err := svc.UpdateIngredient(ctx, rum.ID, domain.IngredientRequest{Name: "white rum"})
	require.NoError(t, err)
	assert.Equal(t, "white rum", res.Name)

	_, err = svc.UpdateIngredient(ctx, rum.ID, domain.IngredientRequest{Name: "dark rum"})
	assert.ErrorIs(t, err, domain.ErrIngredientNameTaken)

	_, err = svc.UpdateIngredient(ctx, 999, domain.IngredientRequest{Name: "gin"})
	assert.ErrorIs(t, err, domain.ErrIngredientNotFound)
}

func TestDeleteIngredient(t *testing.T) {
	repo := newFakeIngredientRepo()
	svc := NewIngredientService(repo)
	ctx := context.Background()

	rum, err := svc.CreateIngredient(ctx, domain.IngredientRequest{Name: "white rum"})
	require.NoError(t, err)

	// A referenced ingredient cannot be deleted.
	repo.references[rum.ID] = 3
	_, err = svc.DeleteIngredient(ctx, rum.ID)
	assert.ErrorIs(t, err, domain.ErrIngredientInUse)

	repo.references[rum.ID] = 0
	res, err := svc.DeleteIngredient(ctx, rum.ID)
	require.NoError(t, err)
	assert.Equal(t, rum.ID, res.ID)

	_, err = svc.GetIngredientByID(ctx, rum.ID)
	assert.ErrorIs(t, err, domain.ErrIngredientNotFound)
}
