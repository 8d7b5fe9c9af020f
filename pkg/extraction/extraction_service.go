package extraction

import (
	"Health-Kitchen-Backend/domain"
	"Health-Kitchen-Backend/entities"
	"Health-Kitchen-Backend/internal/utils/metrics"
	"Health-Kitchen-Backend/internal/utils/storage"
	"Health-Kitchen-Backend/pkg/gemini"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
)

const recentScanLimit = 20

const medicalPrompt = `You are a medical data extractor. Convert the medical document below into STRICT JSON.

RULES:
- JSON ONLY. No explanations or text outside JSON.
- If unknown or missing use null or [].
- Do NOT invent data. Only extract what is explicitly stated or strongly implied.
- List diagnoses as plain condition names, e.g. "GERD", "Anxiety", "Type 2 Diabetes".

Return JSON in this EXACT structure:

{
  "patient_profile": {"name": null, "age": null, "gender": null, "patient_id": null},
  "conditions": [],
  "allergies": {"medications": [], "food": [], "environmental": []},
  "medications": []
}

Now EXTRACT JSON only:
`

const ingredientsPrompt = `You are a food ingredient recognition expert AI.

Analyze this image and list all visible ingredients.
- If labels are visible, read them (e.g. 'Unsweetened Almond Milk', 'Greek Yogurt 2%')
- Distinguish similar items like "milk vs almond milk vs oat milk vs coconut milk"
- When unsure, set "confidence" to "low" and "specific_type" to "unknown"

Output STRICT JSON ONLY in this format:

{
  "identified_items": [
    {
      "item_name": "string",
      "category": "vegetable | fruit | dairy | meat | pantry | beverage | grain | spice | frozen | unknown",
      "specific_type": "string or unknown",
      "confidence": "high | medium | low",
      "label_text_detected": "string or null"
    }
  ],
  "notes": "1-line summary of detection confidence"
}`

type (
	ExtractionService interface {
		ExtractMedicalRecord(ctx context.Context, req domain.ExtractMedicalRequest, userID string) (domain.MedicalRecord, error)
		IdentifyIngredients(ctx context.Context, req domain.IdentifyIngredientsRequest, userID string) (domain.IdentifyIngredientsResponse, error)
		GetScans(ctx context.Context, userID string) ([]domain.ExtractionScanResponse, error)
	}

	extractionService struct {
		extractionRepository ExtractionRepository
		gemini               gemini.GeminiClient
		s3                   storage.AwsS3
		metrics              *metrics.Metrics
		logger               *zap.Logger
	}
)

func NewExtractionService(
	extractionRepository ExtractionRepository,
	client gemini.GeminiClient,
	s3 storage.AwsS3,
	m *metrics.Metrics,
	logger *zap.Logger,
) ExtractionService {
	return &extractionService{
		extractionRepository: extractionRepository,
		gemini:               client,
		s3:                   s3,
		metrics:              m,
		logger:               logger,
	}
}

// ExtractMedicalRecord turns free medical text into a MedicalRecord. A reply
// that is not a usable record comes back as *domain.ExtractionError.
func (s *extractionService) ExtractMedicalRecord(ctx context.Context, req domain.ExtractMedicalRequest, userID string) (domain.MedicalRecord, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.MedicalRecord{}, domain.ErrParseUUID
	}

	text, err := s.gemini.GenerateContent(ctx, []gemini.Part{
		{Text: medicalPrompt},
		{Text: req.Text},
	}, gemini.GenerationConfig{Temperature: 0.1, TopP: 0.8, TopK: 40})
	if err != nil {
		s.recordScan(ctx, userUUID, entities.ScanKindMedical, "", err)
		return domain.MedicalRecord{}, err
	}

	record, err := domain.DecodeMedicalRecord([]byte(gemini.ExtractObject(text)))
	if err != nil {
		err = asExtractionError(err, text)
		s.recordScan(ctx, userUUID, entities.ScanKindMedical, text, err)
		return domain.MedicalRecord{}, err
	}

	s.recordScan(ctx, userUUID, entities.ScanKindMedical, text, nil)
	return record, nil
}

// IdentifyIngredients sends a fridge or pantry photo to the model and
// returns the identified items. The photo is archived when object storage
// is configured.
func (s *extractionService) IdentifyIngredients(ctx context.Context, req domain.IdentifyIngredientsRequest, userID string) (domain.IdentifyIngredientsResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.IdentifyIngredientsResponse{}, domain.ErrParseUUID
	}
	if req.Image == nil {
		return domain.IdentifyIngredientsResponse{}, &domain.ValidationError{Field: "image", Reason: "required"}
	}

	ext := strings.ToLower(filepath.Ext(req.Image.Filename))
	if !allowedImage(ext) {
		return domain.IdentifyIngredientsResponse{}, storage.ErrFileTypeNotAllow
	}

	data, err := readFile(req.Image)
	if err != nil {
		return domain.IdentifyIngredientsResponse{}, err
	}

	text, err := s.gemini.GenerateContent(ctx, []gemini.Part{
		{Text: ingredientsPrompt},
		{InlineData: &gemini.InlineData{
			MimeType: mimeTypeOf(req.Image, ext),
			Data:     base64.StdEncoding.EncodeToString(data),
		}},
	}, gemini.GenerationConfig{Temperature: 0.1, TopP: 0.8, TopK: 40})
	if err != nil {
		s.recordScan(ctx, userUUID, entities.ScanKindIngredients, "", err)
		return domain.IdentifyIngredientsResponse{}, err
	}

	inventory, err := domain.DecodeIngredientInventory([]byte(gemini.ExtractObject(text)))
	if err != nil {
		err = asExtractionError(err, text)
		s.recordScan(ctx, userUUID, entities.ScanKindIngredients, text, err)
		return domain.IdentifyIngredientsResponse{}, err
	}
	s.recordScan(ctx, userUUID, entities.ScanKindIngredients, text, nil)

	res := domain.IdentifyIngredientsResponse{Items: inventory.Items}
	if s.s3.Enabled() {
		key, err := s.s3.UploadFile(ctx, "scan-"+userUUID.String(), req.Image, "ingredient-scans", storage.AllowImage...)
		if err != nil {
			s.logger.Warn("failed to archive ingredient photo", zap.String("user_id", userID), zap.Error(err))
		} else {
			res.ImageKey = key
		}
	}
	return res, nil
}

func (s *extractionService) GetScans(ctx context.Context, userID string) ([]domain.ExtractionScanResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, domain.ErrParseUUID
	}

	scans, err := s.extractionRepository.GetScansByUserID(ctx, userID, recentScanLimit)
	if err != nil {
		return nil, err
	}

	out := make([]domain.ExtractionScanResponse, 0, len(scans))
	for _, scan := range scans {
		out = append(out, domain.ExtractionScanResponse{
			ID:        scan.ID.String(),
			Kind:      scan.Kind,
			Status:    scan.Status,
			Error:     scan.Error,
			CreatedAt: scan.CreatedAt,
		})
	}
	return out, nil
}

// recordScan logs the attempt. A failure to store it does not fail the
// extraction.
func (s *extractionService) recordScan(ctx context.Context, userID uuid.UUID, kind, rawOutput string, extractErr error) {
	scan := &entities.ExtractionScan{
		UserID:    userID,
		Kind:      kind,
		Status:    entities.ScanStatusProcessed,
		RawOutput: rawOutput,
	}
	status := "success"
	if extractErr != nil {
		scan.Status = entities.ScanStatusFailed
		scan.Error = extractErr.Error()
		status = "failed"
	}
	s.metrics.ExtractionRequests.WithLabelValues(kind, status).Inc()

	if err := s.extractionRepository.CreateScan(ctx, scan); err != nil {
		s.logger.Error("failed to record extraction scan", zap.String("kind", kind), zap.Error(err))
	}
}

// asExtractionError keeps extractor error objects as they are and reports
// anything else the model returned as invalid JSON.
func asExtractionError(err error, rawOutput string) error {
	var extErr *domain.ExtractionError
	if errors.As(err, &extErr) {
		if extErr.RawOutput == "" {
			extErr.RawOutput = rawOutput
		}
		return extErr
	}
	return &domain.ExtractionError{
		Message:   "model returned invalid JSON",
		RawOutput: rawOutput,
		Cause:     err,
	}
}

func allowedImage(ext string) bool {
	for _, allowed := range storage.AllowImage {
		if ext == allowed {
			return true
		}
	}
	return false
}

func readFile(file *multipart.FileHeader) ([]byte, error) {
	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer src.Close()
	return io.ReadAll(src)
}

func mimeTypeOf(file *multipart.FileHeader, ext string) string {
	if mimeType := file.Header.Get("Content-Type"); mimeType != "" {
		return mimeType
	}
	switch ext {
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
