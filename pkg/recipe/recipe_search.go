package recipe

import (
	"Health-Kitchen-Backend/domain"
	"Health-Kitchen-Backend/internal/utils"
	"Health-Kitchen-Backend/internal/utils/metrics"
	"context"
	"encoding/json"
	"fmt"
	"github.com/patrickmn/go-cache"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultResultCount = 5

// conditionParams maps a condition keyword to extra search parameters. A
// keyword matches any condition containing it, as in FilterFor. Entries are
// applied in table order.
var conditionParams = []struct {
	keyword string
	params  map[string]string
}{
	{"diabet", map[string]string{"maxSugar": "5", "diet": "low-glycemic"}},
	{"gerd", map[string]string{"excludeIngredients": "tomato,spicy,citrus,coffee"}},
	{"anxiety", map[string]string{"excludeIngredients": "caffeine"}},
}

type (
	RecipeSearcher interface {
		Search(ctx context.Context, params url.Values) (domain.RecipeSearchResponse, error)
	}

	recipeSearcher struct {
		httpClient *http.Client
		baseURL    string
		apiKey     string
		cache      *cache.Cache
		metrics    *metrics.Metrics
	}
)

// BuildSearchParams derives remote search parameters from a profile's
// conditions and its safe/unsafe split. Condition exclusions are merged with
// the unsafe ingredients instead of replacing them. The API key is added by
// the searcher.
func BuildSearchParams(conditions domain.ConditionSet, split domain.IngredientSplitResponse, number int) url.Values {
	if number <= 0 {
		number = defaultResultCount
	}

	params := url.Values{}
	params.Set("includeIngredients", strings.Join(split.Safe, ","))
	params.Set("number", strconv.Itoa(number))

	exclude := make([]string, 0, len(split.Unsafe))
	for _, u := range split.Unsafe {
		exclude = append(exclude, u.Name)
	}

	for _, entry := range conditionParams {
		if !conditions.HasMatching(entry.keyword) {
			continue
		}
		for key, value := range entry.params {
			if key == "excludeIngredients" {
				exclude = append(exclude, strings.Split(value, ",")...)
				continue
			}
			params.Set(key, value)
		}
	}

	params.Set("excludeIngredients", strings.Join(dedupeFold(exclude), ","))
	return params
}

func dedupeFold(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		key := strings.ToLower(v)
		if v == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}

func NewRecipeSearcher(m *metrics.Metrics) RecipeSearcher {
	return NewRecipeSearcherWith(
		&http.Client{Timeout: 15 * time.Second},
		utils.GetConfig("RECIPE_API_URL"),
		utils.GetConfig("RECIPE_API_KEY"),
		m,
	)
}

func NewRecipeSearcherWith(httpClient *http.Client, baseURL, apiKey string, m *metrics.Metrics) RecipeSearcher {
	return &recipeSearcher{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		cache:      cache.New(10*time.Minute, 20*time.Minute),
		metrics:    m,
	}
}

// Search runs a complexSearch query. Identical queries are served from a
// ten minute cache.
func (s *recipeSearcher) Search(ctx context.Context, params url.Values) (domain.RecipeSearchResponse, error) {
	if s.apiKey == "" || s.baseURL == "" {
		return domain.RecipeSearchResponse{}, domain.ErrRecipeAPINotConfig
	}

	cacheKey := params.Encode()
	if cached, found := s.cache.Get(cacheKey); found {
		s.metrics.RecipeCacheHits.Inc()
		return cached.(domain.RecipeSearchResponse), nil
	}

	query := url.Values{}
	for k, v := range params {
		query[k] = v
	}
	query.Set("apiKey", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return domain.RecipeSearchResponse{}, err
	}

	start := time.Now()
	resp, err := s.httpClient.Do(req)
	s.metrics.RecipeAPILatency.Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.RecipeAPIRequests.WithLabelValues("error").Inc()
		return domain.RecipeSearchResponse{}, fmt.Errorf("%w: %v", domain.ErrRecipeAPIFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.metrics.RecipeAPIRequests.WithLabelValues("error").Inc()
		details, _ := io.ReadAll(resp.Body)
		return domain.RecipeSearchResponse{}, fmt.Errorf("%w: %s - %s", domain.ErrRecipeAPIFailed, resp.Status, string(details))
	}

	var result domain.RecipeSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		s.metrics.RecipeAPIRequests.WithLabelValues("error").Inc()
		return domain.RecipeSearchResponse{}, fmt.Errorf("%w: %v", domain.ErrRecipeAPIFailed, err)
	}
	if result.Results == nil {
		result.Results = []domain.ExternalRecipe{}
	}

	s.metrics.RecipeAPIRequests.WithLabelValues("success").Inc()
	s.cache.Set(cacheKey, result, cache.DefaultExpiration)
	return result, nil
}
