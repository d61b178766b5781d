package cocktail

import (
	"context"
	"errors"
	"math"
	"mime/multipart"
	"sort"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"koktajlove-api/domain"
	"koktajlove-api/entities"
)

// fakeCocktailRepo is an in-memory CocktailRepository good enough to drive
// the service through its full create/search/update/delete paths.
type fakeCocktailRepo struct {
	nextID          uint
	cocktails       map[uint]*entities.Cocktail
	links           map[uint][]entities.CocktailIngredient
	tagLinks        map[uint][]entities.CocktailTag
	ratings         map[uint][]int
	ingredientNames map[uint]string
	tagNames        map[uint]string
	tagInsertErr    error
}

func newFakeCocktailRepo() *fakeCocktailRepo {
	return &fakeCocktailRepo{
		cocktails:       map[uint]*entities.Cocktail{},
		links:           map[uint][]entities.CocktailIngredient{},
		tagLinks:        map[uint][]entities.CocktailTag{},
		ratings:         map[uint][]int{},
		ingredientNames: map[uint]string{},
		tagNames:        map[uint]string{},
	}
}

// ratingAggregate mirrors the grouped LEFT JOIN: for an unrated cocktail the
// average is nil and the count zero, and the raw (pre-rounding) average is
// what the threshold compares against, coalesced to 0.
func (f *fakeCocktailRepo) ratingAggregate(cocktailID uint) (raw float64, rounded *float64, count int64) {
	values := f.ratings[cocktailID]
	if len(values) == 0 {
		return 0, nil, 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	raw = float64(sum) / float64(len(values))
	r := math.Round(raw*100) / 100
	return raw, &r, int64(len(values))
}

func (f *fakeCocktailRepo) SearchCocktails(_ context.Context, req domain.CocktailSearchRequest, offset, limit int) ([]CocktailRow, int64, error) {
	var matched []CocktailRow
	for _, c := range f.cocktails {
		if !c.IsPublic && (req.RequestingUserID == nil || *req.RequestingUserID != c.UserID) {
			continue
		}
		if req.Name != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(req.Name)) {
			continue
		}
		if !f.hasAllIngredients(c.ID, req.IngredientIDs) {
			continue
		}
		if !f.hasAllTags(c.ID, req.TagIDs) {
			continue
		}
		raw, rounded, count := f.ratingAggregate(c.ID)
		if req.MinAvgRating != nil && raw < *req.MinAvgRating {
			continue
		}
		matched = append(matched, CocktailRow{Cocktail: *c, AverageRating: rounded, RatingsCount: count})
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

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

func (f *fakeCocktailRepo) hasAllIngredients(cocktailID uint, ids []uint) bool {
	for _, want := range ids {
		found := false
		for _, link := range f.links[cocktailID] {
			if link.IngredientID == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (f *fakeCocktailRepo) hasAllTags(cocktailID uint, ids []uint) bool {
	for _, want := range ids {
		found := false
		for _, link := range f.tagLinks[cocktailID] {
			if link.TagID == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (f *fakeCocktailRepo) GetCocktailRow(_ context.Context, id uint) (*CocktailRow, error) {
	c, ok := f.cocktails[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	_, rounded, count := f.ratingAggregate(id)
	return &CocktailRow{Cocktail: *c, AverageRating: rounded, RatingsCount: count}, nil
}

func (f *fakeCocktailRepo) GetCocktailByID(_ context.Context, id uint) (*entities.Cocktail, error) {
	c, ok := f.cocktails[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *c
	return &clone, nil
}

func (f *fakeCocktailRepo) FindDuplicateCandidateIDs(_ context.Context, name string, isPublic bool, ownerID uint, excludeID uint) ([]uint, error) {
	var ids []uint
	for _, c := range f.cocktails {
		if c.ID == excludeID || c.Name != name || c.IsPublic != isPublic {
			continue
		}
		if !isPublic && c.UserID != ownerID {
			continue
		}
		ids = append(ids, c.ID)
	}
	return ids, nil
}

func (f *fakeCocktailRepo) GetCompositionLinks(_ context.Context, cocktailID uint) ([]entities.CocktailIngredient, error) {
	return f.links[cocktailID], nil
}

func (f *fakeCocktailRepo) ListCompositionRows(_ context.Context, cocktailIDs []uint) ([]CompositionRow, error) {
	var rows []CompositionRow
	for _, id := range cocktailIDs {
		for _, link := range f.links[id] {
			rows = append(rows, CompositionRow{
				CocktailID:     id,
				IngredientID:   link.IngredientID,
				IngredientName: f.ingredientNames[link.IngredientID],
				Amount:         link.Amount,
				Unit:           link.Unit,
			})
		}
	}
	return rows, nil
}

func (f *fakeCocktailRepo) ListTagRows(_ context.Context, cocktailIDs []uint) ([]TagRow, error) {
	var rows []TagRow
	for _, id := range cocktailIDs {
		for _, link := range f.tagLinks[id] {
			rows = append(rows, TagRow{CocktailID: id, TagID: link.TagID, TagName: f.tagNames[link.TagID]})
		}
	}
	return rows, nil
}

func (f *fakeCocktailRepo) CreateCocktail(_ context.Context, cocktail *entities.Cocktail, links []entities.CocktailIngredient, tags []entities.CocktailTag) error {
	for _, existing := range f.cocktails {
		if existing.DedupeKey == cocktail.DedupeKey {
			return &pgconn.PgError{Code: pgUniqueViolation}
		}
	}
	f.nextID++
	cocktail.ID = f.nextID
	// A failed tag-link insert rolls the whole transaction back; the id
	// sequence still advances, as it would in Postgres.
	if f.tagInsertErr != nil && len(tags) > 0 {
		return f.tagInsertErr
	}
	clone := *cocktail
	f.cocktails[cocktail.ID] = &clone
	for i := range links {
		links[i].CocktailID = cocktail.ID
	}
	f.links[cocktail.ID] = links
	for i := range tags {
		tags[i].CocktailID = cocktail.ID
	}
	f.tagLinks[cocktail.ID] = tags
	return nil
}

func (f *fakeCocktailRepo) UpdateCocktail(_ context.Context, cocktail *entities.Cocktail, links []entities.CocktailIngredient, replaceLinks bool, tags []entities.CocktailTag, replaceTags bool) error {
	for _, existing := range f.cocktails {
		if existing.ID != cocktail.ID && existing.DedupeKey == cocktail.DedupeKey {
			return &pgconn.PgError{Code: pgUniqueViolation}
		}
	}
	clone := *cocktail
	f.cocktails[cocktail.ID] = &clone
	if replaceLinks {
		for i := range links {
			links[i].CocktailID = cocktail.ID
		}
		f.links[cocktail.ID] = links
	}
	if replaceTags {
		for i := range tags {
			tags[i].CocktailID = cocktail.ID
		}
		f.tagLinks[cocktail.ID] = tags
	}
	return nil
}

func (f *fakeCocktailRepo) DeleteCocktail(_ context.Context, id uint) error {
	delete(f.cocktails, id)
	delete(f.links, id)
	delete(f.tagLinks, id)
	delete(f.ratings, id)
	return nil
}

func (f *fakeCocktailRepo) UpdateCocktailImage(_ context.Context, id uint, imageURL string) error {
	c, ok := f.cocktails[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.ImageURL = imageURL
	return nil
}

type fakeIngredientRepo struct {
	names map[uint]string
}

func (f *fakeIngredientRepo) CreateIngredient(context.Context, *entities.Ingredient) error {
	return nil
}

func (f *fakeIngredientRepo) GetIngredientByID(_ context.Context, id uint) (*entities.Ingredient, error) {
	name, ok := f.names[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &entities.Ingredient{ID: id, Name: name}, nil
}

func (f *fakeIngredientRepo) GetIngredientByName(context.Context, string) (*entities.Ingredient, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeIngredientRepo) GetIngredients(context.Context, int, int) ([]*entities.Ingredient, int64, error) {
	return nil, 0, nil
}

func (f *fakeIngredientRepo) UpdateIngredient(context.Context, *entities.Ingredient) error {
	return nil
}

func (f *fakeIngredientRepo) DeleteIngredient(context.Context, uint) error { return nil }

func (f *fakeIngredientRepo) CountCocktailReferences(context.Context, uint) (int64, error) {
	return 0, nil
}

type fakeTagRepo struct {
	names map[uint]string
}

func (f *fakeTagRepo) CreateTag(context.Context, *entities.Tag) error { return nil }

func (f *fakeTagRepo) GetTagByID(_ context.Context, id uint) (*entities.Tag, error) {
	name, ok := f.names[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &entities.Tag{ID: id, Name: name}, nil
}

func (f *fakeTagRepo) GetTagByName(context.Context, string) (*entities.Tag, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTagRepo) GetTags(context.Context, int, int) ([]*entities.Tag, int64, error) {
	return nil, 0, nil
}

func (f *fakeTagRepo) UpdateTag(context.Context, *entities.Tag) error { return nil }

func (f *fakeTagRepo) DeleteTag(context.Context, uint) error { return nil }

func (f *fakeTagRepo) CountCocktailReferences(context.Context, uint) (int64, error) { return 0, nil }

type fakeUserRepo struct {
	users map[uint]*entities.User
}

func (f *fakeUserRepo) CreateUser(context.Context, *entities.User) error { return nil }

func (f *fakeUserRepo) GetUserByID(_ context.Context, id uint) (*entities.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetUserByUsername(context.Context, string) (*entities.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetUserByEmail(context.Context, string) (*entities.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetUsersByIDs(_ context.Context, ids []uint) ([]*entities.User, error) {
	var users []*entities.User
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			users = append(users, u)
		}
	}
	return users, nil
}

func (f *fakeUserRepo) UpdateUser(context.Context, *entities.User) error { return nil }

const fakeS3LinkPrefix = "https://img.test/"

type fakeS3 struct {
	deleted   []string
	deleteErr error
}

func (f *fakeS3) UploadFile(fileName string, _ *multipart.FileHeader, folder string, _ ...string) (string, error) {
	return folder + "/" + fileName, nil
}

func (f *fakeS3) UpdateFile(objectKey string, _ *multipart.FileHeader, _ ...string) (string, error) {
	return objectKey, nil
}

func (f *fakeS3) DeleteFile(objectKey string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, objectKey)
	return nil
}

func (f *fakeS3) GetPublicLinkKey(objectKey string) string {
	return fakeS3LinkPrefix + objectKey
}

func (f *fakeS3) GetObjectKeyFromLink(link string) string {
	return strings.TrimPrefix(link, fakeS3LinkPrefix)
}

func newTestServiceWithS3(t *testing.T) (CocktailService, *fakeCocktailRepo, *fakeS3) {
	t.Helper()
	repo := newFakeCocktailRepo()
	repo.ingredientNames = map[uint]string{1: "white rum", 2: "lime juice", 3: "mint leaf", 4: "sugar"}
	repo.tagNames = map[uint]string{1: "refreshing", 2: "classic"}
	s3 := &fakeS3{}

	svc := NewCocktailService(
		repo,
		&fakeIngredientRepo{names: repo.ingredientNames},
		&fakeTagRepo{names: repo.tagNames},
		&fakeUserRepo{users: map[uint]*entities.User{
			10: {ID: 10, Username: "ania"},
			11: {ID: 11, Username: "bartek"},
		}},
		s3,
	)
	return svc, repo, s3
}

func newTestService(t *testing.T) (CocktailService, *fakeCocktailRepo) {
	t.Helper()
	svc, repo, _ := newTestServiceWithS3(t)
	return svc, repo
}

func mojitoRequest() domain.CreateCocktailRequest {
	return domain.CreateCocktailRequest{
		Name:         "Mojito",
		Instructions: "Muddle mint with sugar, add rum and lime, top with soda.",
		Ingredients: []domain.CocktailIngredientData{
			{IngredientID: 1, Amount: 50, Unit: "ml"},
			{IngredientID: 2, Amount: 20, Unit: "ml"},
			{IngredientID: 3, Amount: 8, Unit: "piece"},
		},
		Tags: []domain.CocktailTagData{{TagID: 1}},
	}
}

func daiquiriRequest() domain.CreateCocktailRequest {
	return domain.CreateCocktailRequest{
		Name:         "Daiquiri",
		Instructions: "Shake everything with ice, strain into a coupe.",
		Ingredients: []domain.CocktailIngredientData{
			{IngredientID: 1, Amount: 60, Unit: "ml"},
			{IngredientID: 2, Amount: 25, Unit: "ml"},
			{IngredientID: 4, Amount: 2, Unit: "tsp"},
		},
		Tags: []domain.CocktailTagData{{TagID: 2}},
	}
}

func TestCreateCocktail(t *testing.T) {
	svc, _ := newTestService(t)

	detail, err := svc.CreateCocktail(context.Background(), mojitoRequest(), 10)
	require.NoError(t, err)

	assert.Equal(t, "Mojito", detail.Name)
	assert.True(t, detail.IsPublic)
	assert.Equal(t, "ania", detail.Author.Username)
	require.Len(t, detail.Ingredients, 3)
	assert.Equal(t, "white rum", detail.Ingredients[0].Name)
	assert.Equal(t, domain.UnitMl, detail.Ingredients[0].Unit)
	require.Len(t, detail.Tags, 1)
	assert.Equal(t, "refreshing", detail.Tags[0].Name)
}

func TestCreateCocktailValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	req := mojitoRequest()
	req.Ingredients = nil
	_, err := svc.CreateCocktail(ctx, req, 10)
	assert.ErrorIs(t, err, domain.ErrEmptyComposition)

	req = mojitoRequest()
	req.Ingredients = append(req.Ingredients, domain.CocktailIngredientData{IngredientID: 1, Amount: 10, Unit: "ml"})
	_, err = svc.CreateCocktail(ctx, req, 10)
	assert.ErrorIs(t, err, domain.ErrRepeatedIngredient)

	req = mojitoRequest()
	req.Ingredients[0].Amount = 0
	_, err = svc.CreateCocktail(ctx, req, 10)
	assert.ErrorIs(t, err, domain.ErrNonPositiveAmount)

	req = mojitoRequest()
	req.Ingredients[0].Unit = "barrel"
	_, err = svc.CreateCocktail(ctx, req, 10)
	assert.ErrorIs(t, err, domain.ErrUnknownUnit)

	req = mojitoRequest()
	req.Ingredients[0].IngredientID = 999
	_, err = svc.CreateCocktail(ctx, req, 10)
	assert.ErrorIs(t, err, domain.ErrIngredientNotFound)

	req = mojitoRequest()
	req.Tags = []domain.CocktailTagData{{TagID: 999}}
	_, err = svc.CreateCocktail(ctx, req, 10)
	assert.ErrorIs(t, err, domain.ErrTagNotFound)
}

func TestCreateCocktailDuplicate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateCocktail(ctx, mojitoRequest(), 10)
	require.NoError(t, err)

	// Same name and multiset, reversed order and shouty units: duplicate,
	// even when another user submits it into the public scope.
	dup := mojitoRequest()
	dup.Ingredients = []domain.CocktailIngredientData{
		{IngredientID: 3, Amount: 8, Unit: "PIECE"},
		{IngredientID: 2, Amount: 20, Unit: "ML"},
		{IngredientID: 1, Amount: 50, Unit: "Ml"},
	}
	_, err = svc.CreateCocktail(ctx, dup, 11)
	assert.ErrorIs(t, err, domain.ErrCocktailDuplicate)

	// A different amount is a different recipe.
	stronger := mojitoRequest()
	stronger.Ingredients[0].Amount = 60
	_, err = svc.CreateCocktail(ctx, stronger, 11)
	assert.NoError(t, err)

	// Same name with a composition difference is fine too.
	sweeter := mojitoRequest()
	sweeter.Ingredients = append(sweeter.Ingredients, domain.CocktailIngredientData{IngredientID: 4, Amount: 2, Unit: "tsp"})
	_, err = svc.CreateCocktail(ctx, sweeter, 10)
	assert.NoError(t, err)
}

func TestCreateCocktailPrivateScope(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	private := false

	req := mojitoRequest()
	req.IsPublic = &private

	// Two users may each keep an identical private recipe.
	_, err := svc.CreateCocktail(ctx, req, 10)
	require.NoError(t, err)
	_, err = svc.CreateCocktail(ctx, req, 11)
	require.NoError(t, err)

	// The same user may not duplicate their own private recipe.
	_, err = svc.CreateCocktail(ctx, req, 10)
	assert.ErrorIs(t, err, domain.ErrCocktailDuplicate)

	// A public copy does not collide with the private ones.
	_, err = svc.CreateCocktail(ctx, mojitoRequest(), 10)
	assert.NoError(t, err)
}

func TestSearchCocktailsVisibility(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	private := false

	_, err := svc.CreateCocktail(ctx, mojitoRequest(), 10)
	require.NoError(t, err)

	secret := mojitoRequest()
	secret.Name = "Secret Mojito"
	secret.IsPublic = &private
	_, err = svc.CreateCocktail(ctx, secret, 10)
	require.NoError(t, err)

	// Anonymous callers see public cocktails only.
	res, err := svc.SearchCocktails(ctx, domain.CocktailSearchRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Total)

	// The owner also sees their private cocktail.
	owner := uint(10)
	res, err = svc.SearchCocktails(ctx, domain.CocktailSearchRequest{RequestingUserID: &owner})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Total)

	// A different authenticated user does not.
	other := uint(11)
	res, err = svc.SearchCocktails(ctx, domain.CocktailSearchRequest{RequestingUserID: &other})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Total)
}

func TestSearchCocktailsFilters(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateCocktail(ctx, mojitoRequest(), 10)
	require.NoError(t, err)
	_, err = svc.CreateCocktail(ctx, daiquiriRequest(), 11)
	require.NoError(t, err)

	// Substring name match, case-insensitive, ignoring surrounding whitespace.
	res, err := svc.SearchCocktails(ctx, domain.CocktailSearchRequest{Name: "  moji "})
	require.NoError(t, err)
	require.Equal(t, int64(1), res.Total)
	assert.Equal(t, "Mojito", res.Items[0].Name)

	// A whitespace-only name is no filter at all.
	res, err = svc.SearchCocktails(ctx, domain.CocktailSearchRequest{Name: "   "})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Total)

	// ALL-of ingredients: rum+lime matches both, adding mint narrows to one.
	res, err = svc.SearchCocktails(ctx, domain.CocktailSearchRequest{IngredientIDs: []uint{1, 2}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Total)

	res, err = svc.SearchCocktails(ctx, domain.CocktailSearchRequest{IngredientIDs: []uint{1, 2, 3}})
	require.NoError(t, err)
	require.Equal(t, int64(1), res.Total)
	assert.Equal(t, "Mojito", res.Items[0].Name)

	res, err = svc.SearchCocktails(ctx, domain.CocktailSearchRequest{TagIDs: []uint{2}})
	require.NoError(t, err)
	require.Equal(t, int64(1), res.Total)
	assert.Equal(t, "Daiquiri", res.Items[0].Name)
}

func TestSearchCocktailsPagination(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		req := mojitoRequest()
		req.Ingredients[0].Amount = 40 + i
		_, err := svc.CreateCocktail(ctx, req, 10)
		require.NoError(t, err)
	}

	res, err := svc.SearchCocktails(ctx, domain.CocktailSearchRequest{
		PageRequest: domain.PageRequest{Page: 2, Size: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), res.Total)
	assert.Equal(t, 2, res.Page)
	assert.Equal(t, 2, res.Size)
	assert.Equal(t, 3, res.Pages)
	assert.Len(t, res.Items, 2)
}

func TestSearchCocktailsRatingAggregates(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	mojito, err := svc.CreateCocktail(ctx, mojitoRequest(), 10)
	require.NoError(t, err)
	_, err = svc.CreateCocktail(ctx, daiquiriRequest(), 11)
	require.NoError(t, err)

	repo.ratings[mojito.ID] = []int{5, 4, 4}

	// Aggregates ride along with the page: a rated cocktail carries its
	// two-decimal average and count, an unrated one a nil average and zero.
	res, err := svc.SearchCocktails(ctx, domain.CocktailSearchRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(2), res.Total)

	byName := make(map[string]domain.CocktailDetail, len(res.Items))
	for _, item := range res.Items {
		byName[item.Name] = item
	}

	rated := byName["Mojito"]
	require.NotNil(t, rated.AverageRating)
	assert.InDelta(t, 4.33, *rated.AverageRating, 0.001)
	assert.Equal(t, int64(3), rated.RatingsCount)

	unrated := byName["Daiquiri"]
	assert.Nil(t, unrated.AverageRating)
	assert.Zero(t, unrated.RatingsCount)

	// The threshold compares unrated cocktails as 0, so they drop out.
	min := 3.0
	res, err = svc.SearchCocktails(ctx, domain.CocktailSearchRequest{MinAvgRating: &min})
	require.NoError(t, err)
	require.Equal(t, int64(1), res.Total)
	assert.Equal(t, "Mojito", res.Items[0].Name)

	// Raising it past the average drops the rated one too.
	min = 4.5
	res, err = svc.SearchCocktails(ctx, domain.CocktailSearchRequest{MinAvgRating: &min})
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Total)
	assert.Empty(t, res.Items)

	// The single-cocktail read reports the same aggregates.
	detail, err := svc.GetCocktailDetail(ctx, mojito.ID, nil)
	require.NoError(t, err)
	require.NotNil(t, detail.AverageRating)
	assert.InDelta(t, 4.33, *detail.AverageRating, 0.001)
	assert.Equal(t, int64(3), detail.RatingsCount)
}

func TestSearchCocktailsMinRatingRange(t *testing.T) {
	svc, _ := newTestService(t)

	bad := 0.5
	_, err := svc.SearchCocktails(context.Background(), domain.CocktailSearchRequest{MinAvgRating: &bad})
	assert.ErrorIs(t, err, domain.ErrMinRatingOutOfRange)

	bad = 5.5
	_, err = svc.SearchCocktails(context.Background(), domain.CocktailSearchRequest{MinAvgRating: &bad})
	assert.ErrorIs(t, err, domain.ErrMinRatingOutOfRange)
}

func TestGetCocktailDetailVisibility(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	private := false

	req := mojitoRequest()
	req.IsPublic = &private
	created, err := svc.CreateCocktail(ctx, req, 10)
	require.NoError(t, err)

	owner := uint(10)
	detail, err := svc.GetCocktailDetail(ctx, created.ID, &owner)
	require.NoError(t, err)
	assert.Equal(t, created.ID, detail.ID)

	other := uint(11)
	_, err = svc.GetCocktailDetail(ctx, created.ID, &other)
	assert.ErrorIs(t, err, domain.ErrUserNotAllowed)

	_, err = svc.GetCocktailDetail(ctx, created.ID, nil)
	assert.ErrorIs(t, err, domain.ErrUserNotAllowed)

	_, err = svc.GetCocktailDetail(ctx, 999, &owner)
	assert.ErrorIs(t, err, domain.ErrCocktailNotFound)
}

func TestCreateCocktailAtomicity(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	repo.tagInsertErr = errors.New("insert cocktail_tags: connection reset")

	_, err := svc.CreateCocktail(ctx, mojitoRequest(), 10)
	assert.ErrorIs(t, err, domain.ErrStoreFailure)

	// The failed link insert rolled the whole transaction back: no cocktail
	// row survives it.
	assert.Empty(t, repo.cocktails)
	assert.Empty(t, repo.links)

	res, err := svc.SearchCocktails(ctx, domain.CocktailSearchRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Total)
}

func TestUpdateCocktail(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateCocktail(ctx, mojitoRequest(), 10)
	require.NoError(t, err)

	// Only the author may update.
	name := "Mojito Royale"
	_, err = svc.UpdateCocktail(ctx, created.ID, domain.UpdateCocktailRequest{Name: &name}, 11)
	assert.ErrorIs(t, err, domain.ErrUserNotAllowed)

	// A touch-nothing patch does not trip the duplicate rule on itself.
	updated, err := svc.UpdateCocktail(ctx, created.ID, domain.UpdateCocktailRequest{Name: &name}, 10)
	require.NoError(t, err)
	assert.Equal(t, "Mojito Royale", updated.Name)

	// Replacing the ingredient list re-derives the dedupe key.
	newLinks := []domain.CocktailIngredientData{
		{IngredientID: 1, Amount: 40, Unit: "ml"},
		{IngredientID: 2, Amount: 25, Unit: "ml"},
	}
	updated, err = svc.UpdateCocktail(ctx, created.ID, domain.UpdateCocktailRequest{Ingredients: &newLinks}, 10)
	require.NoError(t, err)
	require.Len(t, updated.Ingredients, 2)
	assert.Equal(t, DedupeKey("Mojito Royale", true, 10, NormalizeComposition([]CompositionLink{
		{IngredientID: 1, Amount: 40, Unit: domain.UnitMl},
		{IngredientID: 2, Amount: 25, Unit: domain.UnitMl},
	})), repo.cocktails[created.ID].DedupeKey)

	// Clearing all ingredients is not allowed.
	empty := []domain.CocktailIngredientData{}
	_, err = svc.UpdateCocktail(ctx, created.ID, domain.UpdateCocktailRequest{Ingredients: &empty}, 10)
	assert.ErrorIs(t, err, domain.ErrEmptyComposition)
}

func TestUpdateCocktailDuplicate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateCocktail(ctx, mojitoRequest(), 10)
	require.NoError(t, err)

	other := mojitoRequest()
	other.Name = "Virgin Mojito"
	created, err := svc.CreateCocktail(ctx, other, 10)
	require.NoError(t, err)

	// Renaming onto an existing (name, composition, scope) triple collides.
	name := "Mojito"
	_, err = svc.UpdateCocktail(ctx, created.ID, domain.UpdateCocktailRequest{Name: &name}, 10)
	assert.ErrorIs(t, err, domain.ErrCocktailDuplicate)
}

func TestDeleteCocktail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateCocktail(ctx, mojitoRequest(), 10)
	require.NoError(t, err)

	_, err = svc.DeleteCocktail(ctx, created.ID, 11)
	assert.ErrorIs(t, err, domain.ErrUserNotAllowed)

	removed, err := svc.DeleteCocktail(ctx, created.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, created.ID, removed.ID)

	_, err = svc.GetCocktailDetail(ctx, created.ID, nil)
	assert.ErrorIs(t, err, domain.ErrCocktailNotFound)
}

func TestDeleteCocktailImageCleanup(t *testing.T) {
	svc, _, s3 := newTestServiceWithS3(t)
	ctx := context.Background()

	req := mojitoRequest()
	req.ImageURL = fakeS3LinkPrefix + "cocktails/mojito.png"
	created, err := svc.CreateCocktail(ctx, req, 10)
	require.NoError(t, err)

	_, err = svc.DeleteCocktail(ctx, created.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"cocktails/mojito.png"}, s3.deleted)
}

func TestDeleteCocktailImageCleanupFailure(t *testing.T) {
	svc, _, s3 := newTestServiceWithS3(t)
	ctx := context.Background()
	s3.deleteErr = errors.New("s3: access denied")

	req := mojitoRequest()
	req.ImageURL = fakeS3LinkPrefix + "cocktails/mojito.png"
	created, err := svc.CreateCocktail(ctx, req, 10)
	require.NoError(t, err)

	// The cleanup failure surfaces, and the cocktail itself is still gone.
	removed, err := svc.DeleteCocktail(ctx, created.ID, 10)
	require.Error(t, err)
	assert.Equal(t, created.ID, removed.ID)

	_, err = svc.GetCocktailDetail(ctx, created.ID, nil)
	assert.ErrorIs(t, err, domain.ErrCocktailNotFound)
}

func TestMapStoreErr(t *testing.T) {
	assert.ErrorIs(t, mapStoreErr(&pgconn.PgError{Code: pgUniqueViolation}), domain.ErrCocktailDuplicate)
	assert.ErrorIs(t, mapStoreErr(context.DeadlineExceeded), domain.ErrStoreTimeout)
	assert.ErrorIs(t, mapStoreErr(errors.New("connection refused")), domain.ErrStoreFailure)
}
