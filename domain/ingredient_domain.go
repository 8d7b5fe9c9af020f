package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
)

var (
	MessageSuccessExtractIngredients = "ingredients identified successfully"
	MessageFailedExtractIngredients  = "failed to identify ingredients"
)

type ExpiryCategory string

const (
	ExpiryUnknown     ExpiryCategory = "unknown"
	ExpiryInvalid     ExpiryCategory = "invalid"
	ExpiryExpired     ExpiryCategory = "expired"
	ExpiringSoon      ExpiryCategory = "expiring_soon"
	ExpiryUseThisWeek ExpiryCategory = "use_this_week"
	ExpiryFresh       ExpiryCategory = "fresh"
)

// NeedsAlert reports whether items in this category belong in expiry alerts.
func (c ExpiryCategory) NeedsAlert() bool {
	return c == ExpiryExpired || c == ExpiringSoon
}

type (
	// FlexString decodes from a JSON string or number; extractors emit both
	// for quantities.
	FlexString string

	IngredientItem struct {
		Name                  string     `json:"name" validate:"required"`
		Category              string     `json:"category"`
		Quantity              FlexString `json:"quantity"`
		ExpiryDate            string     `json:"expiry_date"`
		DietaryClassification string     `json:"dietary_classification"`
	}

	IngredientInventory struct {
		Items []IngredientItem `json:"items" validate:"dive"`
	}

	IngredientRecord struct {
		Name                  string         `json:"name"`
		Category              string         `json:"category"`
		Quantity              FlexString     `json:"quantity"`
		ExpiryDate            string         `json:"expiry_date"`
		ExpiryStatus          string         `json:"expiry_status"`
		ExpiryCategory        ExpiryCategory `json:"expiry_category"`
		DietaryClassification string         `json:"dietary_classification"`
		IsSafeForPatient      bool           `json:"is_safe_for_patient"`
		Reason                string         `json:"reason"`
		Triggers              []Trigger      `json:"triggers"`
	}

	// identifiedItem is the shape the fridge scanner prompt asks the model for.
	identifiedItem struct {
		ItemName     string `json:"item_name"`
		Category     string `json:"category"`
		SpecificType string `json:"specific_type"`
	}
)

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if i, err := n.Int64(); err == nil {
		*f = FlexString(strconv.FormatInt(i, 10))
		return nil
	}
	*f = FlexString(n.String())
	return nil
}

// HasTrigger reports whether any rule of the given kind fired.
func (r IngredientRecord) HasTrigger(kind RuleKind) bool {
	for _, t := range r.Triggers {
		if t.Kind == kind {
			return true
		}
	}
	return false
}

// DecodeIngredientInventory parses an ingredient inventory document. Both
// the {"items": [...]} shape and the scanner's {"identified_items": [...]}
// shape are accepted.
func DecodeIngredientInventory(data []byte) (IngredientInventory, error) {
	var doc struct {
		Items           []IngredientItem `json:"items"`
		IdentifiedItems []identifiedItem `json:"identified_items"`
	}
	if err := decodeDocument(data, &doc); err != nil {
		return IngredientInventory{}, err
	}

	inventory := IngredientInventory{Items: doc.Items}
	if len(inventory.Items) == 0 && len(doc.IdentifiedItems) > 0 {
		for _, it := range doc.IdentifiedItems {
			name := it.ItemName
			if it.SpecificType != "" && it.SpecificType != "unknown" {
				name = it.SpecificType
			}
			inventory.Items = append(inventory.Items, IngredientItem{
				Name:     name,
				Category: it.Category,
			})
		}
	}
	if inventory.Items == nil {
		inventory.Items = []IngredientItem{}
	}
	return inventory, nil
}
