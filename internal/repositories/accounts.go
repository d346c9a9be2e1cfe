package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/syneepse/ResumeFix/internal/models"
	"gorm.io/gorm"
)

var ErrAccountNotFound = errors.New("account not found")

type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	return r.first(ctx, "id = ?", id)
}

// FindByIdentity matches the value against the email and the provider subject id.
func (r *AccountRepository) FindByIdentity(ctx context.Context, value string) (*models.Account, error) {
	return r.first(ctx, "email = ? OR google_id = ?", value, value)
}

// FindOrCreateByIdentity provisions an account keyed by the identity value when none exists.
func (r *AccountRepository) FindOrCreateByIdentity(ctx context.Context, value string, name *string) (*models.Account, error) {
	account, err := r.FindByIdentity(ctx, value)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, ErrAccountNotFound) {
		return nil, err
	}

	account = &models.Account{
		Email:    value,
		GoogleID: value,
		Name:     name,
	}
	if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
		// A concurrent upload may have created it first.
		if existing, findErr := r.FindByIdentity(ctx, value); findErr == nil {
			return existing, nil
		}
		return nil, err
	}
	return account, nil
}

// GoogleProfile is what the OAuth callback knows about the user.
type GoogleProfile struct {
	Subject   string
	Email     string
	Name      string
	AvatarURL string
}

// UpsertGoogleLogin finds the account by subject id, then by email, creating it if needed,
// and records the login time.
func (r *AccountRepository) UpsertGoogleLogin(ctx context.Context, p GoogleProfile) (*models.Account, error) {
	now := time.Now().UTC()

	account, err := r.first(ctx, "google_id = ?", p.Subject)
	if errors.Is(err, ErrAccountNotFound) {
		account, err = r.first(ctx, "email = ?", p.Email)
	}

	switch {
	case errors.Is(err, ErrAccountNotFound):
		account = &models.Account{
			GoogleID:  p.Subject,
			Email:     p.Email,
			Name:      optional(p.Name),
			AvatarURL: optional(p.AvatarURL),
			LastLogin: &now,
		}
		if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
			return nil, err
		}
		return account, nil
	case err != nil:
		return nil, err
	}

	updates := map[string]any{
		"google_id":  p.Subject,
		"last_login": now,
	}
	if p.Name != "" {
		updates["name"] = p.Name
	}
	if p.AvatarURL != "" {
		updates["avatar_url"] = p.AvatarURL
	}
	if err := r.db.WithContext(ctx).Model(account).Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, account.ID)
}

func (r *AccountRepository) first(ctx context.Context, query string, args ...any) (*models.Account, error) {
	var account models.Account
	err := r.db.WithContext(ctx).Where(query, args...).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
