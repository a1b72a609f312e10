package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/bookhive/borrow-service/internal/errs"
	"github.com/bookhive/borrow-service/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

// SubmitSlip converts a draft slip into a submitted one, consuming
// inventory atomically. The protocol is lock, validate, mutate,
// commit:
//
//  1. lock the slip row filtered by id and owner; the status check
//     under that lock makes a retried submit observe AlreadySubmitted
//     instead of decrementing twice
//  2. lock the detail rows; an empty slip cannot be submitted
//  3. lock each book row in ascending book id and compare stock
//     under the lock, so two submissions sharing books serialize and
//     neither oversells; the fixed order prevents deadlocks between
//     slips that share two books
//  4. only after every line passed, decrement all quantities and
//     flip the slip status
//
// Any failure rolls the whole transaction back; no partial decrement
// or status change survives.
func (r *repository) SubmitSlip(ctx context.Context, slipID, ownerID int64) ([]model.DetailLine, error) {
	var lines []model.DetailLine
	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		var slip model.BorrowSlip
		q := `select * from borrow_slips where id = $1 and user_id = $2 for update`
		if err := tx.GetContext(ctx, &slip, q, slipID, ownerID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return errs.ErrNotFound
			}
			return err
		}
		if slip.Status != model.StatusDraft {
			return errs.ErrAlreadySubmitted
		}

		// ascending book_id fixes the lock acquisition order below
		var details []model.BorrowDetail
		q = `select id, borrow_slip_id, book_id, quantity from borrow_details
		where borrow_slip_id = $1 order by book_id for update`
		if err := tx.SelectContext(ctx, &details, q, slipID); err != nil {
			return err
		}
		if len(details) == 0 {
			return errs.ErrEmptySlip
		}

		lines = make([]model.DetailLine, 0, len(details))
		for _, d := range details {
			var book model.Book
			q = `select id, name, author, quantity from books where id = $1 for update`
			if err := tx.GetContext(ctx, &book, q, d.BookID); err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return &errs.BookNotFoundError{BookID: d.BookID}
				}
				return err
			}
			if book.Quantity < d.Quantity {
				return &errs.InsufficientStockError{
					BookID:    d.BookID,
					Requested: d.Quantity,
					Available: book.Quantity,
				}
			}
			lines = append(lines, model.DetailLine{
				ID:       d.ID,
				BookID:   d.BookID,
				BookName: book.Name,
				Quantity: d.Quantity,
			})
		}

		// every line passed, consume the reserved stock
		for _, d := range details {
			if _, err := tx.ExecContext(ctx,
				`update books set quantity = quantity - $1 where id = $2`,
				d.Quantity, d.BookID); err != nil {
				return err
			}
		}

		_, err := tx.ExecContext(ctx,
			`update borrow_slips set status = $1, submitted_at = $2 where id = $3`,
			model.StatusSubmitted, time.Now().UTC(), slipID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return lines, nil
}
