package profile

import (
	"Health-Kitchen-Backend/domain"
	"Health-Kitchen-Backend/entities"
	"Health-Kitchen-Backend/internal/utils"
	"Health-Kitchen-Backend/internal/utils/mailing"
	"Health-Kitchen-Backend/internal/utils/metrics"
	"Health-Kitchen-Backend/internal/utils/storage"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"time"
)

type (
	ProfileService interface {
		BuildProfile(ctx context.Context, req domain.BuildProfileRequest, userID string) (domain.MasterProfile, error)
		GetProfile(ctx context.Context, userID string) (domain.MasterProfile, error)
		GetSplit(ctx context.Context, userID string) (domain.IngredientSplitResponse, error)
	}

	profileService struct {
		profileRepository ProfileRepository
		builder           *Builder
		s3                storage.AwsS3
		mailer            mailing.Mailer
		metrics           *metrics.Metrics
		logger            *zap.Logger
		now               func() time.Time
	}
)

func NewProfileService(
	profileRepository ProfileRepository,
	builder *Builder,
	s3 storage.AwsS3,
	mailer mailing.Mailer,
	m *metrics.Metrics,
	logger *zap.Logger,
) ProfileService {
	return &profileService{
		profileRepository: profileRepository,
		builder:           builder,
		s3:                s3,
		mailer:            mailer,
		metrics:           m,
		logger:            logger,
		now:               time.Now,
	}
}

func (s *profileService) BuildProfile(ctx context.Context, req domain.BuildProfileRequest, userID string) (domain.MasterProfile, error) {
	start := time.Now()
	profile, err := s.buildProfile(ctx, req, userID)
	s.metrics.ProfileBuildLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.ProfileBuilds.WithLabelValues("failed").Inc()
		return domain.MasterProfile{}, err
	}
	s.metrics.ProfileBuilds.WithLabelValues("success").Inc()
	return profile, nil
}

func (s *profileService) buildProfile(ctx context.Context, req domain.BuildProfileRequest, userID string) (domain.MasterProfile, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.MasterProfile{}, domain.ErrParseUUID
	}

	if missingDocument(req.MedicalRecord) || missingDocument(req.Ingredients) {
		return domain.MasterProfile{}, domain.ErrMissingDocument
	}

	record, err := domain.DecodeMedicalRecord(req.MedicalRecord)
	if err != nil {
		return domain.MasterProfile{}, fmt.Errorf("medical_record: %w", err)
	}

	inventory, err := domain.DecodeIngredientInventory(req.Ingredients)
	if err != nil {
		return domain.MasterProfile{}, fmt.Errorf("ingredients: %w", err)
	}

	profile, err := s.builder.Build(record, inventory.Items, s.now())
	if err != nil {
		return domain.MasterProfile{}, err
	}

	document, err := json.Marshal(profile)
	if err != nil {
		return domain.MasterProfile{}, err
	}

	summary := profile.CompatibilitySummary
	unsafeCount := len(summary.RiskyItems) + len(summary.AvoidItems)
	snapshot := &entities.MasterProfileSnapshot{
		UserID:      userUUID,
		LastUpdated: profile.IngredientsProfile.LastUpdated,
		SafeCount:   len(summary.SafeItems),
		UnsafeCount: unsafeCount,
		Document:    document,
	}

	if err := s.profileRepository.SaveProfile(ctx, snapshot); err != nil {
		return domain.MasterProfile{}, err
	}

	if key := s.archive(ctx, userID, profile); key != "" {
		if err := s.profileRepository.UpdateArchiveKey(ctx, userID, key); err != nil {
			s.logger.Warn("failed to record profile archive key", zap.String("key", key), zap.Error(err))
		}
	}

	s.metrics.IngredientVerdicts.WithLabelValues("safe").Add(float64(len(summary.SafeItems)))
	s.metrics.IngredientVerdicts.WithLabelValues("risky").Add(float64(len(summary.RiskyItems)))
	s.metrics.IngredientVerdicts.WithLabelValues("avoid").Add(float64(len(summary.AvoidItems)))
	s.metrics.ExpiryAlerts.Add(float64(len(summary.ExpiryAlerts)))

	s.logger.Info("master profile built",
		zap.String("user_id", userID),
		zap.Int("items", len(profile.IngredientsProfile.Items)),
		zap.Int("unsafe", unsafeCount),
		zap.Int("expiry_alerts", len(summary.ExpiryAlerts)),
	)

	s.notifyExpiry(req.NotifyEmail, profile)
	return profile, nil
}

// archive stores the pretty-printed profile in object storage once the
// snapshot is saved. Failures are logged and do not fail the build.
func (s *profileService) archive(ctx context.Context, userID string, profile domain.MasterProfile) string {
	if s.s3 == nil || !s.s3.Enabled() {
		return ""
	}

	body, err := json.MarshalIndent(profile, "", "    ")
	if err != nil {
		s.logger.Warn("failed to encode profile archive", zap.Error(err))
		return ""
	}

	key := fmt.Sprintf("profiles/%s/%s.json", userID, s.now().UTC().Format("20060102T150405Z"))
	key, err = s.s3.PutObject(ctx, key, body, "application/json")
	if err != nil {
		s.logger.Warn("failed to archive master profile", zap.String("user_id", userID), zap.Error(err))
		return ""
	}
	return key
}

func (s *profileService) notifyExpiry(email string, profile domain.MasterProfile) {
	alerts := profile.CompatibilitySummary.ExpiryAlerts
	if email == "" || len(alerts) == 0 || s.mailer == nil {
		return
	}

	name, _ := profile.PatientProfile["name"].(string)
	body, err := mailing.ExpiryAlertBody(name, alerts, utils.GetConfig("APP_URL"))
	if err != nil {
		s.logger.Warn("failed to render expiry alert", zap.Error(err))
		return
	}
	if err := s.mailer.SendMail(email, mailing.ExpiryAlertSubject, body); err != nil {
		s.logger.Warn("failed to send expiry alert", zap.String("email", email), zap.Error(err))
	}
}

func (s *profileService) GetProfile(ctx context.Context, userID string) (domain.MasterProfile, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return domain.MasterProfile{}, domain.ErrParseUUID
	}

	snapshot, err := s.profileRepository.GetProfileByUserID(ctx, userID)
	if err != nil {
		return domain.MasterProfile{}, err
	}

	var profile domain.MasterProfile
	if err := json.Unmarshal(snapshot.Document, &profile); err != nil {
		return domain.MasterProfile{}, err
	}
	return profile, nil
}

func missingDocument(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

func (s *profileService) GetSplit(ctx context.Context, userID string) (domain.IngredientSplitResponse, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return domain.IngredientSplitResponse{}, err
	}
	return Split(profile), nil
}
