package recipe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"Health-Kitchen-Backend/domain"
	"Health-Kitchen-Backend/internal/testutil"
	"Health-Kitchen-Backend/internal/utils/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeProfileService struct {
	profiles map[string]domain.MasterProfile
}

func (f *fakeProfileService) BuildProfile(ctx context.Context, req domain.BuildProfileRequest, userID string) (domain.MasterProfile, error) {
	return domain.MasterProfile{}, nil
}

func (f *fakeProfileService) GetProfile(ctx context.Context, userID string) (domain.MasterProfile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return domain.MasterProfile{}, domain.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeProfileService) GetSplit(ctx context.Context, userID string) (domain.IngredientSplitResponse, error) {
	return domain.IngredientSplitResponse{}, nil
}

type serviceFixture struct {
	service RecipeService
	gemini  *fakeGemini
	query   chan string
}

func newServiceFixture(t *testing.T, remoteStatus int) *serviceFixture {
	t.Helper()

	query := make(chan string, 4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query <- r.URL.Query().Get("excludeIngredients")
		if remoteStatus != http.StatusOK {
			http.Error(w, "upstream down", remoteStatus)
			return
		}
		_, _ = w.Write([]byte(`{"results":[{"id":11,"title":"Rice Bowl"}],"totalResults":1}`))
	}))
	t.Cleanup(srv.Close)

	empty := sampleMaster()
	empty.IngredientsProfile.Items = []domain.IngredientRecord{{Name: "Tomato", Reason: "GERD trigger food"}}

	profiles := &fakeProfileService{profiles: map[string]domain.MasterProfile{
		"asha":  sampleMaster(),
		"empty": empty,
	}}

	fake := &fakeGemini{reply: `[{"recipe_name":"Rice Bowl"}]`}
	m := metrics.New(prometheus.NewRegistry(), "test")

	return &serviceFixture{
		service: NewRecipeService(
			NewRecipeRepository(testutil.NewTestDB(t, true)),
			profiles,
			NewRecipeSearcherWith(srv.Client(), srv.URL, "k", m),
			NewRecipeRefiner(fake),
			zap.NewNop(),
		),
		gemini: fake,
		query:  query,
	}
}

func TestFilterFor(t *testing.T) {
	master := sampleMaster()
	master.MedicalReport.Conditions = []string{"Type 2 Diabetes", "Chronic Kidney Disease"}

	filter := FilterFor(master, 3)
	assert.True(t, filter.RequireDiabeticSafe)
	assert.True(t, filter.RequireRenalSafe)
	assert.False(t, filter.RequireGlutenFree)
	assert.Equal(t, []string{"peanut", "Tomato"}, filter.ExcludeIngredients)
	assert.Equal(t, 3, filter.Limit)
}

func TestGetSafeRecipes(t *testing.T) {
	f := newServiceFixture(t, http.StatusOK)

	recipes, err := f.service.GetSafeRecipes(context.Background(), "asha", 0)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "moong-dal-khichdi", recipes[0].ID)

	_, err = f.service.GetSafeRecipes(context.Background(), "nobody", 0)
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestSearchRecipes(t *testing.T) {
	f := newServiceFixture(t, http.StatusOK)

	res, err := f.service.SearchRecipes(context.Background(), "asha")
	require.NoError(t, err)
	assert.Equal(t, []domain.ExternalRecipe{{ID: 11, Title: "Rice Bowl"}}, res.Results)
	assert.Equal(t, "Tomato,spicy,citrus,coffee", <-f.query)

	_, err = f.service.SearchRecipes(context.Background(), "empty")
	assert.ErrorIs(t, err, domain.ErrNoIngredients)
}

func TestGetRecommendations(t *testing.T) {
	f := newServiceFixture(t, http.StatusOK)

	res, err := f.service.GetRecommendations(context.Background(), "asha")
	require.NoError(t, err)
	require.Len(t, res.StoreRecipes, 1)
	assert.Equal(t, "moong-dal-khichdi", res.StoreRecipes[0].ID)
	assert.Equal(t, []domain.ExternalRecipe{{ID: 11, Title: "Rice Bowl"}}, res.RemoteRecipes)
	assert.Empty(t, res.RemoteError)
}

func TestGetRecommendations_RemoteFailure(t *testing.T) {
	f := newServiceFixture(t, http.StatusServiceUnavailable)

	res, err := f.service.GetRecommendations(context.Background(), "asha")
	require.NoError(t, err)
	assert.Len(t, res.StoreRecipes, 1)
	assert.Empty(t, res.RemoteRecipes)
	assert.NotNil(t, res.RemoteRecipes)
	assert.Contains(t, res.RemoteError, "upstream down")
}

func TestRefineRecipes(t *testing.T) {
	f := newServiceFixture(t, http.StatusOK)

	res, err := f.service.RefineRecipes(context.Background(), domain.RefineRecipesRequest{}, "asha")
	require.NoError(t, err)
	require.Len(t, res.Recipes, 1)
	assert.Equal(t, "Rice Bowl", res.Recipes[0].RecipeName)
	assert.Contains(t, f.gemini.prompt, `"title": "Rice Bowl"`)

	given := domain.RefineRecipesRequest{Recipes: []domain.ExternalRecipe{{ID: 3, Title: "Dal Soup"}}}
	_, err = f.service.RefineRecipes(context.Background(), given, "asha")
	require.NoError(t, err)
	assert.Contains(t, f.gemini.prompt, `"title": "Dal Soup"`)
	assert.Len(t, f.query, 1)
}
