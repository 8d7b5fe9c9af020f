package profile

import "Health-Kitchen-Backend/domain"

// Split projects the profile's ingredient records into safe names and
// unsafe name/reason pairs, keeping record order.
func Split(profile domain.MasterProfile) domain.IngredientSplitResponse {
	out := domain.IngredientSplitResponse{
		Safe:   []string{},
		Unsafe: []domain.UnsafeIngredient{},
	}
	for _, item := range profile.IngredientsProfile.Items {
		if item.IsSafeForPatient {
			out.Safe = append(out.Safe, item.Name)
			continue
		}
		out.Unsafe = append(out.Unsafe, domain.UnsafeIngredient{Name: item.Name, Reason: item.Reason})
	}
	return out
}

// UnsafeNames returns the names of unsafe ingredients in order.
func UnsafeNames(split domain.IngredientSplitResponse) []string {
	names := make([]string, 0, len(split.Unsafe))
	for _, u := range split.Unsafe {
		names = append(names, u.Name)
	}
	return names
}
