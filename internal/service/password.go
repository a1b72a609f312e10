package service

import (
	"context"
	"time"

	"github.com/bookhive/borrow-service/internal/errs"
	"github.com/bookhive/borrow-service/internal/model"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const resetTokenTTL = time.Hour

// ForgotPassword issues a reset token and mails it. An unknown email
// is reported as success so the endpoint does not reveal which
// accounts exist; an unverified account is rejected because its email
// was never proven reachable.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			s.log.Info("password reset requested for unknown email", zap.String("email", email))
			return nil
		}
		return err
	}
	if !user.IsVerified {
		return errs.ErrNotVerified
	}

	token := uuid.NewString()
	if err := s.repo.SetResetToken(ctx, user.ID, token, s.now().Add(resetTokenTTL)); err != nil {
		return err
	}
	return errors.Wrap(s.mailer.SendPasswordReset(ctx, user.Email, token), "send reset mail")
}

// ResetPassword trades a live reset token for a new password. The
// token check, the expiry check and the token clearing are one
// repository operation, so a token works exactly once.
func (s *Service) ResetPassword(ctx context.Context, req model.ResetPasswordRequest) error {
	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return errors.Wrap(err, "hash password")
	}
	return s.repo.ResetPassword(ctx, req.Token, hashed, s.now())
}

func (s *Service) ChangePassword(ctx context.Context, userID int64, req model.ChangePasswordRequest) error {
	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if !s.hasher.Compare(user.Password, req.OldPassword) {
		return errs.ErrInvalidCredentials
	}
	if s.hasher.Compare(user.Password, req.NewPassword) {
		return errs.ErrSamePassword
	}
	hashed, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return errors.Wrap(err, "hash password")
	}
	return s.repo.UpdatePassword(ctx, userID, hashed)
}
