package service

import (
	"context"
	"time"

	"github.com/bookhive/borrow-service/internal/errs"
	"github.com/bookhive/borrow-service/internal/model"
	"github.com/bookhive/borrow-service/internal/repository"
	"github.com/bookhive/borrow-service/pkg/auth"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	// MaxLoginAttempts consecutive failures lock the account for
	// LockDuration. The bound is advisory hardening, not a safety
	// invariant.
	MaxLoginAttempts = 3
	LockDuration     = 15 * time.Minute
)

// Authenticate runs the login attempt guard around the password
// comparison. The whole attempt executes under the user's row lock,
// so concurrent failures on one account do not undercount.
//
// While locked every attempt is rejected up front: the password is
// never consulted and the lock is neither extended nor reset. Once
// the lock expires the account is implicitly active again. Any
// successful comparison resets the counter and clears the lock.
func (s *Service) Authenticate(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error) {
	var user model.User
	err := s.repo.WithUserForAuth(ctx, req.Username, func(u model.User) (*repository.AuthUpdate, error) {
		now := s.now()
		if u.Locked(now) {
			return nil, &errs.AccountLockedError{Until: *u.LockedUntil}
		}

		if !s.hasher.Compare(u.Password, req.Password) {
			attempts := u.FailedAttempts + 1
			if attempts >= MaxLoginAttempts {
				until := now.Add(LockDuration)
				return &repository.AuthUpdate{FailedAttempts: MaxLoginAttempts, LockedUntil: &until},
					&errs.AccountLockedError{Until: until}
			}
			return &repository.AuthUpdate{FailedAttempts: attempts},
				&errs.AttemptsError{Remaining: MaxLoginAttempts - attempts}
		}

		if !u.IsVerified {
			// correct password still resets the counter
			return &repository.AuthUpdate{FailedAttempts: 0}, errs.ErrNotVerified
		}

		user = u
		return &repository.AuthUpdate{FailedAttempts: 0}, nil
	})
	if err != nil {
		return model.LoginResponse{}, err
	}

	token, err := auth.NewToken(s.cfg.Auth, user.ID, user.RoleID, user.Username)
	if err != nil {
		return model.LoginResponse{}, errors.Wrap(err, "sign token")
	}
	return model.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int(s.cfg.Auth.TTL.Seconds()),
	}, nil
}

const defaultRoleName = "reader"

func (s *Service) Register(ctx context.Context, req model.RegisterRequest) error {
	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return errors.Wrap(err, "hash password")
	}
	role, err := s.repo.GetRoleByName(ctx, defaultRoleName)
	if err != nil {
		return errors.Wrap(err, "default role")
	}
	token := uuid.NewString()
	user, err := s.repo.CreateUser(ctx, model.User{
		Username:          req.Username,
		Email:             req.Email,
		Password:          hashed,
		RoleID:            role.ID,
		VerificationToken: &token,
	})
	if err != nil {
		return err
	}

	if err := s.mailer.SendVerification(ctx, user.Email, token); err != nil {
		// the account exists either way; verification can be re-sent
		s.log.Error("send verification", zap.String("email", user.Email), zap.Error(err))
	}
	return nil
}

func (s *Service) Verify(ctx context.Context, token string) error {
	return s.repo.VerifyUser(ctx, token)
}
