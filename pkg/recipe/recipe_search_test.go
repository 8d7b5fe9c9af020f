package recipe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"Health-Kitchen-Backend/domain"
	"Health-Kitchen-Backend/internal/utils/metrics"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSearchParams(t *testing.T) {
	split := domain.IngredientSplitResponse{
		Safe: []string{"Rice", "Spinach"},
		Unsafe: []domain.UnsafeIngredient{
			{Name: "Tomato", Reason: "GERD trigger food"},
			{Name: "Coffee", Reason: "GERD trigger food"},
		},
	}

	params := BuildSearchParams(domain.NewConditionSet([]string{"GERD", "Anxiety", "Diabetes"}), split, 0)

	assert.Equal(t, "Rice,Spinach", params.Get("includeIngredients"))
	assert.Equal(t, "5", params.Get("number"))
	assert.Equal(t, "Tomato,Coffee,spicy,citrus,caffeine", params.Get("excludeIngredients"))
	assert.Equal(t, "5", params.Get("maxSugar"))
	assert.Equal(t, "low-glycemic", params.Get("diet"))
	assert.Empty(t, params.Get("apiKey"))
}

func TestBuildSearchParams_MatchesConditionKeywords(t *testing.T) {
	conditions := domain.NewConditionSet([]string{"Type 2 Diabetes", "Generalized Anxiety Disorder"})

	params := BuildSearchParams(conditions, domain.IngredientSplitResponse{Safe: []string{"Oats"}}, 0)

	assert.Equal(t, "5", params.Get("maxSugar"))
	assert.Equal(t, "low-glycemic", params.Get("diet"))
	assert.Equal(t, "caffeine", params.Get("excludeIngredients"))
	assert.True(t, FilterFor(domain.MasterProfile{
		MedicalReport: domain.MedicalRecord{Conditions: []string{"Type 2 Diabetes"}},
	}, 0).RequireDiabeticSafe)
}

func TestBuildSearchParams_NoConditions(t *testing.T) {
	params := BuildSearchParams(domain.NewConditionSet(nil), domain.IngredientSplitResponse{Safe: []string{"Rice"}}, 3)

	assert.Equal(t, "Rice", params.Get("includeIngredients"))
	assert.Equal(t, "3", params.Get("number"))
	assert.Equal(t, "", params.Get("excludeIngredients"))
	assert.False(t, params.Has("maxSugar"))
}

func TestSearch_CachesIdenticalQueries(t *testing.T) {
	var hits int32
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		gotKey = r.URL.Query().Get("apiKey")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"id":7,"title":"Khichdi","image":"k.jpg"}],"totalResults":1}`))
	}))
	defer srv.Close()

	m := metrics.New(prometheus.NewRegistry(), "test")
	searcher := NewRecipeSearcherWith(srv.Client(), srv.URL, "secret", m)
	params := url.Values{"includeIngredients": {"rice"}}

	first, err := searcher.Search(context.Background(), params)
	require.NoError(t, err)
	second, err := searcher.Search(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, []domain.ExternalRecipe{{ID: 7, Title: "Khichdi", Image: "k.jpg"}}, first.Results)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
	assert.Equal(t, "secret", gotKey)
	assert.Equal(t, 1.0, promtest.ToFloat64(m.RecipeCacheHits))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.RecipeAPIRequests.WithLabelValues("success")))
	assert.False(t, params.Has("apiKey"))
}

func TestSearch_Errors(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry(), "test")

	_, err := NewRecipeSearcherWith(http.DefaultClient, "http://unused", "", m).
		Search(context.Background(), url.Values{})
	assert.ErrorIs(t, err, domain.ErrRecipeAPINotConfig)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "daily quota used", http.StatusPaymentRequired)
	}))
	defer srv.Close()

	_, err = NewRecipeSearcherWith(srv.Client(), srv.URL, "k", m).
		Search(context.Background(), url.Values{"number": {"5"}})
	assert.ErrorIs(t, err, domain.ErrRecipeAPIFailed)
	assert.ErrorContains(t, err, "daily quota used")
	assert.Equal(t, 1.0, promtest.ToFloat64(m.RecipeAPIRequests.WithLabelValues("error")))
}
