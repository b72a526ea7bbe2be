package content

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/aquasur/aquasur-backend/pkg/db"
	"github.com/aquasur/aquasur-backend/pkg/db/models"
	"github.com/aquasur/aquasur-backend/pkg/enums"
	pkgerrors "github.com/aquasur/aquasur-backend/pkg/errors"
	"github.com/aquasur/aquasur-backend/pkg/logger"
)

// repository is the persistence surface the service depends on.
type repository interface {
	ListEntries(ctx context.Context) ([]models.ContentEntry, error)
	GetEntryByKey(ctx context.Context, key string) (*models.ContentEntry, error)
	GetEntry(ctx context.Context, id uuid.UUID) (*models.ContentEntry, error)
	CreateEntry(ctx context.Context, entry *models.ContentEntry) error
	UpdateEntry(ctx context.Context, entry *models.ContentEntry) error
	DeleteEntry(ctx context.Context, id uuid.UUID) error

	ListSettings(ctx context.Context) ([]models.Setting, error)
	GetSettingByKey(ctx context.Context, key string) (*models.Setting, error)
	UpsertSetting(ctx context.Context, setting *models.Setting) error
	DeleteSetting(ctx context.Context, key string) error
}

// Service manages site copy and typed settings.
type Service interface {
	ListEntries(ctx context.Context) ([]models.ContentEntry, error)
	GetEntryByKey(ctx context.Context, key string) (*models.ContentEntry, error)
	CreateEntry(ctx context.Context, input EntryInput) (*models.ContentEntry, error)
	UpdateEntry(ctx context.Context, id uuid.UUID, input EntryInput) (*models.ContentEntry, error)
	DeleteEntry(ctx context.Context, id uuid.UUID) error

	ListSettings(ctx context.Context) ([]models.Setting, error)
	PutSetting(ctx context.Context, input SettingInput) (*models.Setting, error)
	DeleteSetting(ctx context.Context, key string) error
}

// EntryInput carries admin content writes.
type EntryInput struct {
	Key      string
	Title    *string
	BodyHTML string
	Image    *string
}

// SettingInput carries an admin setting write.
type SettingInput struct {
	Key   string
	Type  enums.SettingType
	Value string
}

type service struct {
	repo repository
	logg *logger.Logger
}

// NewService wires the content service.
func NewService(r repository, logg *logger.Logger) (Service, error) {
	if r == nil {
		return nil, errors.New("content service: repository is required")
	}
	if logg == nil {
		return nil, errors.New("content service: logger is required")
	}
	return &service{repo: r, logg: logg}, nil
}

func (s *service) ListEntries(ctx context.Context) ([]models.ContentEntry, error) {
	entries, err := s.repo.ListEntries(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing content entries")
	}
	return entries, nil
}

func (s *service) GetEntryByKey(ctx context.Context, key string) (*models.ContentEntry, error) {
	entry, err := s.repo.GetEntryByKey(ctx, strings.TrimSpace(key))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading content entry")
	}
	if entry == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "content entry not found")
	}
	return entry, nil
}

func (s *service) CreateEntry(ctx context.Context, input EntryInput) (*models.ContentEntry, error) {
	entry, err := buildEntry(input)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateEntry(ctx, entry); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "content key already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating content entry")
	}
	return entry, nil
}

func (s *service) UpdateEntry(ctx context.Context, id uuid.UUID, input EntryInput) (*models.ContentEntry, error) {
	existing, err := s.repo.GetEntry(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading content entry")
	}
	if existing == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "content entry not found")
	}

	entry, err := buildEntry(input)
	if err != nil {
		return nil, err
	}
	entry.ID = id

	if err := s.repo.UpdateEntry(ctx, entry); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "content key already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating content entry")
	}
	return entry, nil
}

func (s *service) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	existing, err := s.repo.GetEntry(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading content entry")
	}
	if existing == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "content entry not found")
	}

	if err := s.repo.DeleteEntry(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting content entry")
	}
	return nil
}

func (s *service) ListSettings(ctx context.Context) ([]models.Setting, error) {
	settings, err := s.repo.ListSettings(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing settings")
	}
	return settings, nil
}

func (s *service) PutSetting(ctx context.Context, input SettingInput) (*models.Setting, error) {
	key := strings.TrimSpace(input.Key)
	if key == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "setting key is required")
	}
	if !input.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid setting type")
	}
	if err := validateSettingValue(input.Type, input.Value); err != nil {
		return nil, err
	}

	setting := &models.Setting{
		Key:   key,
		Type:  input.Type,
		Value: input.Value,
	}
	if err := s.repo.UpsertSetting(ctx, setting); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving setting")
	}
	return setting, nil
}

func (s *service) DeleteSetting(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	existing, err := s.repo.GetSettingByKey(ctx, key)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading setting")
	}
	if existing == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "setting not found")
	}

	if err := s.repo.DeleteSetting(ctx, key); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting setting")
	}
	return nil
}

func buildEntry(input EntryInput) (*models.ContentEntry, error) {
	key := strings.TrimSpace(input.Key)
	if key == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "content key is required")
	}
	if strings.TrimSpace(input.BodyHTML) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "content body is required")
	}
	return &models.ContentEntry{
		Key:      key,
		Title:    input.Title,
		BodyHTML: input.BodyHTML,
		Image:    input.Image,
	}, nil
}

// validateSettingValue checks the raw value against the declared type before
// it reaches storage.
func validateSettingValue(t enums.SettingType, value string) error {
	switch t {
	case enums.SettingTypeString:
		return nil
	case enums.SettingTypeNumber:
		if _, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "setting value is not a number")
		}
	case enums.SettingTypeBoolean:
		if _, err := strconv.ParseBool(strings.TrimSpace(value)); err != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "setting value is not a boolean")
		}
	case enums.SettingTypeJSON:
		if !json.Valid([]byte(value)) {
			return pkgerrors.New(pkgerrors.CodeValidation, "setting value is not valid JSON")
		}
	}
	return nil
}
