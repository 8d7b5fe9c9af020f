package domain

import (
	"mime/multipart"
	"time"
)

var (
	MessageSuccessGetScans = "success get extraction scans"
	MessageFailedGetScans  = "failed to get extraction scans"
)

type (
	ExtractMedicalRequest struct {
		Text string `json:"text" validate:"required"`
	}

	IdentifyIngredientsRequest struct {
		Image *multipart.FileHeader `form:"image" validate:"required"`
	}

	IdentifyIngredientsResponse struct {
		Items    []IngredientItem `json:"items"`
		ImageKey string           `json:"image_key,omitempty"`
	}

	ExtractionScanResponse struct {
		ID        string    `json:"id"`
		Kind      string    `json:"kind"`
		Status    string    `json:"status"`
		Error     string    `json:"error,omitempty"`
		CreatedAt time.Time `json:"created_at"`
	}
)
