package service

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/bookhive/borrow-service/internal/errs"
	"github.com/bookhive/borrow-service/internal/model"
	"github.com/bookhive/borrow-service/internal/repository"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// memInventoryRepo implements the submission serialization contract
// in memory: one mutex plays the part of the row locks, the rest of
// the protocol (status check, ordered stock checks, all-or-nothing
// decrement) is the same as the SQL implementation. It lets the
// exactly-one-wins properties run in a plain `go test` without a
// database.
type memInventoryRepo struct {
	repository.Repository

	mu      sync.Mutex
	books   map[int64]*model.Book
	slips   map[int64]*model.BorrowSlip
	details map[int64][]model.BorrowDetail
}

func newMemInventoryRepo() *memInventoryRepo {
	return &memInventoryRepo{
		books:   map[int64]*model.Book{},
		slips:   map[int64]*model.BorrowSlip{},
		details: map[int64][]model.BorrowDetail{},
	}
}

func (m *memInventoryRepo) addBook(id int64, quantity int) {
	m.books[id] = &model.Book{ID: id, Quantity: quantity}
}

func (m *memInventoryRepo) addDraft(slipID, ownerID, bookID int64, qty int) {
	m.slips[slipID] = &model.BorrowSlip{ID: slipID, UserID: ownerID, Status: model.StatusDraft}
	m.details[slipID] = append(m.details[slipID], model.BorrowDetail{
		ID: int64(len(m.details[slipID]) + 1), BorrowSlipID: slipID, BookID: bookID, Quantity: qty,
	})
}

func (m *memInventoryRepo) SubmitSlip(_ context.Context, slipID, ownerID int64) ([]model.DetailLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	slip, ok := m.slips[slipID]
	if !ok || slip.UserID != ownerID {
		return nil, errs.ErrNotFound
	}
	if slip.Status != model.StatusDraft {
		return nil, errs.ErrAlreadySubmitted
	}
	details := m.details[slipID]
	if len(details) == 0 {
		return nil, errs.ErrEmptySlip
	}

	ordered := make([]model.BorrowDetail, len(details))
	copy(ordered, details)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].BookID < ordered[j].BookID })

	lines := make([]model.DetailLine, 0, len(ordered))
	for _, d := range ordered {
		book, ok := m.books[d.BookID]
		if !ok {
			return nil, &errs.BookNotFoundError{BookID: d.BookID}
		}
		if book.Quantity < d.Quantity {
			return nil, &errs.InsufficientStockError{
				BookID:    d.BookID,
				Requested: d.Quantity,
				Available: book.Quantity,
			}
		}
		lines = append(lines, model.DetailLine{ID: d.ID, BookID: d.BookID, Quantity: d.Quantity})
	}
	for _, d := range ordered {
		m.books[d.BookID].Quantity -= d.Quantity
	}
	slip.Status = model.StatusSubmitted
	return lines, nil
}

func (m *memInventoryRepo) quantity(bookID int64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.books[bookID].Quantity
}

type safeQueue struct {
	mu   sync.Mutex
	msgs []any
}

func (q *safeQueue) Enqueue(_ string, v any) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.msgs = append(q.msgs, v)
	return nil
}

func (q *safeQueue) count() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.msgs)
}

func TestSubmit_ConcurrentSlipsSharingOneCopy(t *testing.T) {
	t.Parallel()
	repo := newMemInventoryRepo()
	repo.addBook(1, 1)
	repo.addDraft(10, 7, 1, 1)
	repo.addDraft(11, 8, 1, 1)
	queue := &safeQueue{}
	svc := NewService(repo, &fakeHasher{}, nil, queue, Config{SubmittedTopic: "slip.submitted"}, zap.NewNop())

	var err1, err2 error
	g := new(errgroup.Group)
	g.Go(func() error {
		err1 = svc.Submit(context.Background(), 10, 7)
		return nil
	})
	g.Go(func() error {
		err2 = svc.Submit(context.Background(), 11, 8)
		return nil
	})
	require.NoError(t, g.Wait())

	// exactly one wins; the loser sees the shortfall, never a negative
	// counter, and only the winner publishes
	var insufficient *errs.InsufficientStockError
	switch {
	case err1 == nil:
		require.ErrorAs(t, err2, &insufficient)
	case err2 == nil:
		require.ErrorAs(t, err1, &insufficient)
	default:
		t.Fatalf("both submissions failed: %v / %v", err1, err2)
	}
	require.Equal(t, 0, repo.quantity(1))
	require.Equal(t, 1, queue.count())
}

func TestSubmit_ConcurrentRetrySameSlip(t *testing.T) {
	t.Parallel()
	repo := newMemInventoryRepo()
	repo.addBook(1, 5)
	repo.addDraft(10, 7, 1, 1)
	queue := &safeQueue{}
	svc := NewService(repo, &fakeHasher{}, nil, queue, Config{SubmittedTopic: "slip.submitted"}, zap.NewNop())

	results := make(chan error, 2)
	g := new(errgroup.Group)
	for i := 0; i < 2; i++ {
		g.Go(func() error {
			results <- svc.Submit(context.Background(), 10, 7)
			return nil
		})
	}
	require.NoError(t, g.Wait())
	close(results)

	var okCount, alreadyCount int
	for err := range results {
		switch {
		case err == nil:
			okCount++
		case errors.Is(err, errs.ErrAlreadySubmitted):
			alreadyCount++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, okCount)
	require.Equal(t, 1, alreadyCount)
	// decremented exactly once, one event
	require.Equal(t, 4, repo.quantity(1))
	require.Equal(t, 1, queue.count())
}
