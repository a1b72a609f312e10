package service

import (
	"context"
	"testing"
	"time"

	"github.com/bookhive/borrow-service/internal/errs"
	"github.com/bookhive/borrow-service/internal/model"
	"github.com/bookhive/borrow-service/internal/repository"
	"github.com/bookhive/borrow-service/internal/rights"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSlipRepo struct {
	repository.Repository

	openDrafts  int
	created     []int64
	submitErr   error
	submitLines []model.DetailLine
	role        model.Role
}

func (f *fakeSlipRepo) CountOpenDrafts(context.Context, int64) (int, error) {
	return f.openDrafts, nil
}

func (f *fakeSlipRepo) CreateSlip(_ context.Context, ownerID int64) (model.BorrowSlip, error) {
	f.created = append(f.created, ownerID)
	return model.BorrowSlip{ID: int64(len(f.created)), UserID: ownerID, Status: model.StatusDraft}, nil
}

func (f *fakeSlipRepo) SubmitSlip(context.Context, int64, int64) ([]model.DetailLine, error) {
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return f.submitLines, nil
}

func (f *fakeSlipRepo) GetRole(context.Context, int64) (model.Role, error) {
	return f.role, nil
}

type captureQueue struct {
	topic string
	msgs  []any
	err   error
}

func (q *captureQueue) Enqueue(topic string, v any) error {
	q.topic = topic
	q.msgs = append(q.msgs, v)
	return q.err
}

func newSlipService(repo repository.Repository, queue Enqueuer, cfg Config) *Service {
	return NewService(repo, &fakeHasher{}, nil, queue, cfg, zap.NewNop())
}

func TestCreateDraft_NoCapByDefault(t *testing.T) {
	t.Parallel()
	repo := &fakeSlipRepo{openDrafts: 42}
	svc := newSlipService(repo, nil, Config{})

	for i := 0; i < 3; i++ {
		_, err := svc.CreateDraft(context.Background(), 7)
		require.NoError(t, err)
	}
	require.Len(t, repo.created, 3)
}

func TestCreateDraft_ConfiguredCap(t *testing.T) {
	t.Parallel()
	repo := &fakeSlipRepo{openDrafts: 2}
	svc := newSlipService(repo, nil, Config{MaxOpenDrafts: 2})

	_, err := svc.CreateDraft(context.Background(), 7)
	require.ErrorIs(t, err, errs.ErrTooManyDrafts)
	require.Empty(t, repo.created)

	repo.openDrafts = 1
	_, err = svc.CreateDraft(context.Background(), 7)
	require.NoError(t, err)
}

func TestSubmit_PublishesAfterCommit(t *testing.T) {
	t.Parallel()
	lines := []model.DetailLine{{ID: 1, BookID: 3, BookName: "Dune", Quantity: 2}}
	repo := &fakeSlipRepo{submitLines: lines}
	queue := &captureQueue{}
	svc := newSlipService(repo, queue, Config{SubmittedTopic: "slip.submitted"})

	require.NoError(t, svc.Submit(context.Background(), 10, 7))
	require.Equal(t, "slip.submitted", queue.topic)
	require.Len(t, queue.msgs, 1)
	msg, ok := queue.msgs[0].(model.SlipSubmittedMsg)
	require.True(t, ok)
	require.Equal(t, int64(10), msg.SlipID)
	require.Equal(t, int64(7), msg.UserID)
	require.Equal(t, lines, msg.Lines)
}

func TestSubmit_NoEventOnFailure(t *testing.T) {
	t.Parallel()
	repo := &fakeSlipRepo{submitErr: &errs.InsufficientStockError{BookID: 3, Requested: 2, Available: 1}}
	queue := &captureQueue{}
	svc := newSlipService(repo, queue, Config{SubmittedTopic: "slip.submitted"})

	err := svc.Submit(context.Background(), 10, 7)
	var insufficient *errs.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	require.Equal(t, int64(3), insufficient.BookID)
	require.Empty(t, queue.msgs)
}

func TestSubmit_PublishFailureIsSwallowed(t *testing.T) {
	t.Parallel()
	repo := &fakeSlipRepo{submitLines: []model.DetailLine{{BookID: 1, Quantity: 1}}}
	queue := &captureQueue{err: errs.ErrRetryable}
	svc := newSlipService(repo, queue, Config{SubmittedTopic: "slip.submitted"})

	// the submission already committed; a dead broker must not fail it
	require.NoError(t, svc.Submit(context.Background(), 10, 7))
}

func TestHasRight(t *testing.T) {
	t.Parallel()
	repo := &fakeSlipRepo{role: model.Role{ID: 2, Name: "reader", Rights: rights.ViewBooks | rights.BorrowBooks}}
	svc := newSlipService(repo, nil, Config{})

	ok, err := svc.HasRight(context.Background(), 2, rights.BorrowBooks)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = svc.HasRight(context.Background(), 2, rights.ManageBooks)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = svc.HasRight(context.Background(), 2, rights.ViewBooks|rights.ManageUsers)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestLockUser_UsesAdminDuration(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := &lockCaptureRepo{}
	svc := newSlipService(repo, nil, Config{})
	svc.now = func() time.Time { return now }

	_, err := svc.LockUser(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, now.Add(adminLockDuration), repo.until)
}

type lockCaptureRepo struct {
	repository.Repository
	until time.Time
}

func (f *lockCaptureRepo) LockUser(_ context.Context, userID int64, until time.Time) (model.User, error) {
	f.until = until
	return model.User{ID: userID, LockedUntil: &until}, nil
}
