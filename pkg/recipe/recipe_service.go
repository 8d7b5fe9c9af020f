package recipe

import (
	"Health-Kitchen-Backend/domain"
	"Health-Kitchen-Backend/pkg/profile"
	"context"
	"errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultStoreLimit = 20

type (
	RecipeService interface {
		GetSafeRecipes(ctx context.Context, userID string, limit int) ([]domain.Recipe, error)
		SearchRecipes(ctx context.Context, userID string) (domain.RecipeSearchResponse, error)
		GetRecommendations(ctx context.Context, userID string) (domain.RecommendationResponse, error)
		RefineRecipes(ctx context.Context, req domain.RefineRecipesRequest, userID string) (domain.RefinementResult, error)
	}

	recipeService struct {
		recipeRepository RecipeRepository
		profileService   profile.ProfileService
		searcher         RecipeSearcher
		refiner          RecipeRefiner
		logger           *zap.Logger
	}
)

func NewRecipeService(
	recipeRepository RecipeRepository,
	profileService profile.ProfileService,
	searcher RecipeSearcher,
	refiner RecipeRefiner,
	logger *zap.Logger,
) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		profileService:   profileService,
		searcher:         searcher,
		refiner:          refiner,
		logger:           logger,
	}
}

// FilterFor derives the recipe store filter from a master profile:
// required dietary flags from the conditions, exclusions from the
// allergies and every unsafe ingredient.
func FilterFor(master domain.MasterProfile, limit int) domain.RecipeFilter {
	conditions := master.Conditions()
	filter := domain.RecipeFilter{
		RequireDiabeticSafe: conditions.HasMatching("diabet"),
		RequireRenalSafe:    conditions.HasMatching("renal") || conditions.HasMatching("kidney"),
		RequireGlutenFree:   conditions.HasMatching("celiac") || conditions.HasMatching("coeliac"),
		Limit:               limit,
	}
	filter.ExcludeIngredients = append(filter.ExcludeIngredients, master.MedicalReport.Allergies...)
	filter.ExcludeIngredients = append(filter.ExcludeIngredients, profile.UnsafeNames(profile.Split(master))...)
	return filter
}

func (s *recipeService) GetSafeRecipes(ctx context.Context, userID string, limit int) ([]domain.Recipe, error) {
	master, err := s.profileService.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.storeRecipes(ctx, master, limit)
}

func (s *recipeService) storeRecipes(ctx context.Context, master domain.MasterProfile, limit int) ([]domain.Recipe, error) {
	if limit <= 0 {
		limit = defaultStoreLimit
	}

	recipes, err := s.recipeRepository.GetRecipes(ctx, FilterFor(master, limit))
	if err != nil {
		return nil, err
	}

	out := make([]domain.Recipe, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, toDomainRecipe(r))
	}
	return out, nil
}

func (s *recipeService) SearchRecipes(ctx context.Context, userID string) (domain.RecipeSearchResponse, error) {
	master, err := s.profileService.GetProfile(ctx, userID)
	if err != nil {
		return domain.RecipeSearchResponse{}, err
	}
	return s.search(ctx, master)
}

func (s *recipeService) search(ctx context.Context, master domain.MasterProfile) (domain.RecipeSearchResponse, error) {
	split := profile.Split(master)
	if len(split.Safe) == 0 {
		return domain.RecipeSearchResponse{}, domain.ErrNoIngredients
	}
	return s.searcher.Search(ctx, BuildSearchParams(master.Conditions(), split, defaultResultCount))
}

// GetRecommendations queries the recipe store and the remote search API
// concurrently. A remote failure is reported in RemoteError and does not
// fail the call.
func (s *recipeService) GetRecommendations(ctx context.Context, userID string) (domain.RecommendationResponse, error) {
	master, err := s.profileService.GetProfile(ctx, userID)
	if err != nil {
		return domain.RecommendationResponse{}, err
	}

	res := domain.RecommendationResponse{
		StoreRecipes:  []domain.Recipe{},
		RemoteRecipes: []domain.ExternalRecipe{},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		recipes, err := s.storeRecipes(gctx, master, defaultStoreLimit)
		if err != nil {
			return err
		}
		res.StoreRecipes = recipes
		return nil
	})
	g.Go(func() error {
		found, err := s.search(gctx, master)
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				s.logger.Warn("remote recipe search failed", zap.String("user_id", userID), zap.Error(err))
			}
			res.RemoteError = err.Error()
			return nil
		}
		res.RemoteRecipes = found.Results
		return nil
	})

	if err := g.Wait(); err != nil {
		return domain.RecommendationResponse{}, err
	}
	return res, nil
}

// RefineRecipes annotates the given recipes, or the remote search results
// when none are given.
func (s *recipeService) RefineRecipes(ctx context.Context, req domain.RefineRecipesRequest, userID string) (domain.RefinementResult, error) {
	master, err := s.profileService.GetProfile(ctx, userID)
	if err != nil {
		return domain.RefinementResult{}, err
	}

	recipes := req.Recipes
	if len(recipes) == 0 {
		found, err := s.search(ctx, master)
		if err != nil {
			return domain.RefinementResult{}, err
		}
		recipes = found.Results
	}

	return s.refiner.Refine(ctx, master, recipes)
}
