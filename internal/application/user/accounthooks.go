package user

import (
	"context"

	domainUser "labmanager/internal/domain/user"
	"labmanager/internal/shared/errors"
	"labmanager/internal/shared/logger"
)

// AccountHooks keeps the generic user resource consistent with the
// credential and session model.
type AccountHooks struct {
	hasher   domainUser.PasswordHasher
	sessions domainUser.SessionStore
	logger   logger.Interface
}

func NewAccountHooks(hasher domainUser.PasswordHasher, sessions domainUser.SessionStore, logger logger.Interface) *AccountHooks {
	return &AccountHooks{
		hasher:   hasher,
		sessions: sessions,
		logger:   logger,
	}
}

// BeforeSave normalizes the email and turns a submitted password into its
// hash. A password is mandatory on create and optional on update.
func (h *AccountHooks) BeforeSave(ctx context.Context, u *domainUser.User, isNew bool) error {
	u.Email = domainUser.NormalizeEmail(u.Email)

	if u.Password == "" {
		if isNew {
			return errors.NewFieldValidationError([]errors.FieldError{
				{Field: "password", Message: "password is required"},
			})
		}
		return nil
	}

	hash, err := h.hasher.Hash(u.Password)
	if err != nil {
		h.logger.Errorw("failed to hash password", "error", err)
		return errors.NewInternalError("failed to process password")
	}
	u.PasswordHash = hash
	u.Password = ""

	if !isNew {
		h.logger.Infow("password changed", "user_id", u.ID)
	}
	return nil
}

// AfterDelete signs the deleted account out everywhere.
func (h *AccountHooks) AfterDelete(ctx context.Context, u *domainUser.User) error {
	if err := h.sessions.DestroyByUser(ctx, u.ID); err != nil {
		h.logger.Errorw("failed to destroy sessions of deleted user", "user_id", u.ID, "error", err)
		return err
	}
	h.logger.Infow("sessions destroyed for deleted user", "user_id", u.ID)
	return nil
}
