package service

import (
	"context"
	"time"

	"github.com/bookhive/borrow-service/internal/errs"
	"github.com/bookhive/borrow-service/internal/model"
	"github.com/bookhive/borrow-service/internal/repository"
	"github.com/bookhive/borrow-service/internal/rights"
	"github.com/bookhive/borrow-service/pkg/auth"
	"go.uber.org/zap"
)

// PasswordHasher is the external hashing primitive.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hashed, password string) bool
}

// Mailer delivers account mails; the implementation is an external
// collaborator and may fail without affecting stored state.
type Mailer interface {
	SendVerification(ctx context.Context, email, token string) error
	SendPasswordReset(ctx context.Context, email, token string) error
}

// Enqueuer publishes domain events after a transaction commits.
type Enqueuer interface {
	Enqueue(topic string, v any) error
}

type Config struct {
	Auth auth.Config

	// MaxOpenDrafts caps concurrent draft slips per owner.
	// 0 means unlimited, which matches the historical behavior.
	MaxOpenDrafts int `yaml:"maxOpenDrafts" envconfig:"MAX_OPEN_DRAFTS" default:"0"`

	SubmittedTopic string `yaml:"submittedTopic" envconfig:"KAFKA_TOPIC" default:"slip.submitted"`
}

type Service struct {
	log    *zap.Logger
	repo   repository.Repository
	hasher PasswordHasher
	mailer Mailer
	queue  Enqueuer
	cfg    Config

	// now is swappable for lockout tests
	now func() time.Time
}

func NewService(repo repository.Repository, hasher PasswordHasher, mailer Mailer, queue Enqueuer, cfg Config, log *zap.Logger) *Service {
	return &Service{
		log:    log,
		repo:   repo,
		hasher: hasher,
		mailer: mailer,
		queue:  queue,
		cfg:    cfg,
		now:    time.Now,
	}
}

// HasRight resolves the role's capability mask and tests required
// against it. A false result is the normal forbidden signal, not an
// error.
func (s *Service) HasRight(ctx context.Context, roleID int64, required rights.Rights) (bool, error) {
	role, err := s.repo.GetRole(ctx, roleID)
	if err != nil {
		return false, err
	}
	return rights.Has(role.Rights, required), nil
}

func (s *Service) ListBooks(ctx context.Context, onlyAvailable bool) ([]model.Book, error) {
	return s.repo.ListBooks(ctx, onlyAvailable)
}

func (s *Service) CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error) {
	return s.repo.CreateBook(ctx, req)
}

func (s *Service) UpdateBook(ctx context.Context, bookID int64, req model.UpdateBookRequest) (model.Book, error) {
	return s.repo.UpdateBook(ctx, bookID, req)
}

func (s *Service) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.repo.ListUsers(ctx)
}

func (s *Service) ListRoles(ctx context.Context) ([]model.Role, error) {
	return s.repo.ListRoles(ctx)
}

// UpdateRoleRights applies grants and revokes to a role's capability
// mask. A right named in both lists ends up granted.
func (s *Service) UpdateRoleRights(ctx context.Context, roleID int64, grant, revoke rights.Rights) (model.Role, error) {
	role, err := s.repo.GetRole(ctx, roleID)
	if err != nil {
		return model.Role{}, err
	}
	mask := rights.Set(rights.Clear(role.Rights, revoke), grant)
	return s.repo.UpdateRoleRights(ctx, roleID, mask)
}

// adminLockDuration is the manual lock applied by user management,
// distinct from the 15-minute authentication lockout.
const adminLockDuration = 30 * 24 * time.Hour

func (s *Service) LockUser(ctx context.Context, userID int64) (model.User, error) {
	return s.repo.LockUser(ctx, userID, s.now().Add(adminLockDuration))
}

func (s *Service) CreateDraft(ctx context.Context, ownerID int64) (model.BorrowSlip, error) {
	if s.cfg.MaxOpenDrafts > 0 {
		open, err := s.repo.CountOpenDrafts(ctx, ownerID)
		if err != nil {
			return model.BorrowSlip{}, err
		}
		if open >= s.cfg.MaxOpenDrafts {
			return model.BorrowSlip{}, errs.ErrTooManyDrafts
		}
	}
	return s.repo.CreateSlip(ctx, ownerID)
}

func (s *Service) GetSlips(ctx context.Context, ownerID int64) ([]model.SlipWithDetails, error) {
	return s.repo.GetSlips(ctx, ownerID)
}

func (s *Service) AddItem(ctx context.Context, slipID, ownerID int64, req model.AddItemRequest) (model.BorrowDetail, error) {
	return s.repo.AddItem(ctx, slipID, ownerID, req.BookID, req.Quantity)
}

func (s *Service) RemoveItem(ctx context.Context, slipID, ownerID, detailID int64) error {
	return s.repo.RemoveItem(ctx, slipID, ownerID, detailID)
}

// Submit runs the submission transaction and, only after it commits,
// publishes the submitted event. A publish failure is logged and
// swallowed: inventory is already consistent and the caller's
// submission succeeded.
func (s *Service) Submit(ctx context.Context, slipID, ownerID int64) error {
	lines, err := s.repo.SubmitSlip(ctx, slipID, ownerID)
	if err != nil {
		return err
	}
	if s.queue != nil {
		msg := model.SlipSubmittedMsg{SlipID: slipID, UserID: ownerID, Lines: lines}
		if err := s.queue.Enqueue(s.cfg.SubmittedTopic, msg); err != nil {
			s.log.Error("publish slip.submitted", zap.Int64("slipId", slipID), zap.Error(err))
		}
	}
	return nil
}
