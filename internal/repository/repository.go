package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"

	sq "github.com/Masterminds/squirrel"

	"github.com/bookhive/borrow-service/internal/errs"
	"github.com/bookhive/borrow-service/internal/model"
	"github.com/bookhive/borrow-service/internal/rights"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// AuthUpdate is the login-guard state written back to the user row
// after an authentication attempt.
type AuthUpdate struct {
	FailedAttempts int
	LockedUntil    *time.Time
}

type Repository interface {
	// users / roles
	WithUserForAuth(ctx context.Context, username string, fn func(u model.User) (*AuthUpdate, error)) error
	CreateUser(ctx context.Context, user model.User) (model.User, error)
	VerifyUser(ctx context.Context, token string) error
	GetUser(ctx context.Context, userID int64) (model.User, error)
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
	SetResetToken(ctx context.Context, userID int64, token string, expires time.Time) error
	ResetPassword(ctx context.Context, token, hashed string, now time.Time) error
	UpdatePassword(ctx context.Context, userID int64, hashed string) error
	GetRole(ctx context.Context, roleID int64) (model.Role, error)
	GetRoleByName(ctx context.Context, name string) (model.Role, error)
	ListRoles(ctx context.Context) ([]model.Role, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateRoleRights(ctx context.Context, roleID int64, mask rights.Rights) (model.Role, error)
	LockUser(ctx context.Context, userID int64, until time.Time) (model.User, error)

	// books
	ListBooks(ctx context.Context, onlyAvailable bool) ([]model.Book, error)
	GetBook(ctx context.Context, bookID int64) (model.Book, error)
	CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error)
	UpdateBook(ctx context.Context, bookID int64, req model.UpdateBookRequest) (model.Book, error)

	// borrow slips
	CreateSlip(ctx context.Context, ownerID int64) (model.BorrowSlip, error)
	CountOpenDrafts(ctx context.Context, ownerID int64) (int, error)
	GetSlips(ctx context.Context, ownerID int64) ([]model.SlipWithDetails, error)
	AddItem(ctx context.Context, slipID, ownerID, bookID int64, quantity int) (model.BorrowDetail, error)
	RemoveItem(ctx context.Context, slipID, ownerID, detailID int64) error
	SubmitSlip(ctx context.Context, slipID, ownerID int64) ([]model.DetailLine, error)
}

type repository struct {
	db          *sqlx.DB
	log         *zap.Logger
	lockTimeout time.Duration
}

func NewRepository(db *sqlx.DB, lockTimeout time.Duration, log *zap.Logger) (*repository, error) {
	return &repository{
		db:          db,
		lockTimeout: lockTimeout,
		log:         log.Named("repo"),
	}, nil
}

const (
	rolesTableName   = `roles`
	usersTableName   = `users`
	booksTableName   = `books`
	slipsTableName   = `borrow_slips`
	detailsTableName = `borrow_details`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// classify maps driver-level failures onto the error taxonomy.
// Lock-wait timeouts, serialization failures and deadlocks are
// transient and safe to retry; constraint violations are programming
// errors and pass through as-is.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.LockNotAvailable, pgerrcode.SerializationFailure, pgerrcode.DeadlockDetected:
			return errors.Wrap(errs.ErrRetryable, pgErr.Message)
		}
	}
	return err
}

func (r *repository) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return classify(err)
	}
	defer tx.Rollback() //nolint:errcheck

	// SET does not take bind parameters
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("set local lock_timeout = %d", r.lockTimeout.Milliseconds())); err != nil {
		return classify(err)
	}
	if err := fn(tx); err != nil {
		return classify(err)
	}
	return classify(tx.Commit())
}

// WithUserForAuth locks the user row, hands it to fn and applies the
// returned guard state in the same transaction. The row lock
// serializes concurrent attempts on one account so the failure
// counter is not undercounted. fn's error is returned to the caller
// even when an update is written (a failed attempt both increments
// the counter and fails the login).
func (r *repository) WithUserForAuth(ctx context.Context, username string, fn func(u model.User) (*AuthUpdate, error)) error {
	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		var user model.User
		q := `select * from users where username = $1 for update`
		if err := tx.GetContext(ctx, &user, q, username); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return errs.ErrInvalidCredentials
			}
			return err
		}

		upd, fnErr := fn(user)
		if upd != nil {
			q, args, err := qb.Update(usersTableName).
				Set("failed_attempts", upd.FailedAttempts).
				Set("locked_until", upd.LockedUntil).
				Where(sq.Eq{"id": user.ID}).
				ToSql()
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, q, args...); err != nil {
				return err
			}
		}
		return fnErr
	})
}

func (r *repository) CreateUser(ctx context.Context, user model.User) (model.User, error) {
	q, args, err := qb.Insert(usersTableName).
		Columns("username", "email", "password", "role_id", "verification_token").
		Values(user.Username, user.Email, user.Password, user.RoleID, user.VerificationToken).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.User{}, err
	}
	var created model.User
	if err := r.db.GetContext(ctx, &created, q, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			field := "account"
			switch pgErr.ConstraintName {
			case "users_username_key":
				field = "username"
			case "users_email_key":
				field = "email"
			}
			return model.User{}, &errs.AlreadyExistsError{Field: field}
		}
		r.log.Error("CreateUser", zap.String("q", q), zap.Error(err))
		return model.User{}, classify(err)
	}
	return created, nil
}

func (r *repository) GetUser(ctx context.Context, userID int64) (model.User, error) {
	var user model.User
	q := `select * from users where id = $1`
	if err := r.db.GetContext(ctx, &user, q, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, errs.ErrNotFound
		}
		return model.User{}, classify(err)
	}
	return user, nil
}

func (r *repository) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	var user model.User
	q := `select * from users where email = $1`
	if err := r.db.GetContext(ctx, &user, q, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, errs.ErrNotFound
		}
		return model.User{}, classify(err)
	}
	return user, nil
}

func (r *repository) VerifyUser(ctx context.Context, token string) error {
	q := `update users set is_verified = true, verification_token = null
	where verification_token = $1`
	res, err := r.db.ExecContext(ctx, q, token)
	if err != nil {
		return classify(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *repository) SetResetToken(ctx context.Context, userID int64, token string, expires time.Time) error {
	q, args, err := qb.Update(usersTableName).
		Set("reset_token", token).
		Set("reset_token_expires", expires).
		Where(sq.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return classify(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// ResetPassword consumes a reset token: the expiry check and the
// token clearing happen in the same statement, so a token is good for
// exactly one reset. The login guard state is cleared with it.
func (r *repository) ResetPassword(ctx context.Context, token, hashed string, now time.Time) error {
	q := `update users
	set password = $1, reset_token = null, reset_token_expires = null,
	    failed_attempts = 0, locked_until = null
	where reset_token = $2 and reset_token_expires > $3`
	res, err := r.db.ExecContext(ctx, q, hashed, token, now)
	if err != nil {
		return classify(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *repository) UpdatePassword(ctx context.Context, userID int64, hashed string) error {
	q, args, err := qb.Update(usersTableName).
		Set("password", hashed).
		Where(sq.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return classify(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *repository) GetRole(ctx context.Context, roleID int64) (model.Role, error) {
	q, args, err := qb.Select("id", "name", "rights").
		From(rolesTableName).
		Where(sq.Eq{"id": roleID}).
		ToSql()
	if err != nil {
		return model.Role{}, err
	}
	var role model.Role
	if err := r.db.GetContext(ctx, &role, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Role{}, errs.ErrNotFound
		}
		return model.Role{}, classify(err)
	}
	return role, nil
}

func (r *repository) GetRoleByName(ctx context.Context, name string) (model.Role, error) {
	q, args, err := qb.Select("id", "name", "rights").
		From(rolesTableName).
		Where(sq.Eq{"name": name}).
		ToSql()
	if err != nil {
		return model.Role{}, err
	}
	var role model.Role
	if err := r.db.GetContext(ctx, &role, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Role{}, errs.ErrNotFound
		}
		return model.Role{}, classify(err)
	}
	return role, nil
}

func (r *repository) ListRoles(ctx context.Context) ([]model.Role, error) {
	q, args, err := qb.Select("id", "name", "rights").
		From(rolesTableName).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}
	var roles []model.Role
	if err := r.db.SelectContext(ctx, &roles, q, args...); err != nil {
		return nil, classify(err)
	}
	return roles, nil
}

func (r *repository) UpdateRoleRights(ctx context.Context, roleID int64, mask rights.Rights) (model.Role, error) {
	q, args, err := qb.Update(rolesTableName).
		Set("rights", mask).
		Where(sq.Eq{"id": roleID}).
		Suffix("returning id, name, rights").
		ToSql()
	if err != nil {
		return model.Role{}, err
	}
	var role model.Role
	if err := r.db.GetContext(ctx, &role, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Role{}, errs.ErrNotFound
		}
		return model.Role{}, classify(err)
	}
	return role, nil
}

func (r *repository) ListUsers(ctx context.Context) ([]model.User, error) {
	q, args, err := qb.Select("id", "username", "email", "password", "role_id", "is_verified",
		"verification_token", "failed_attempts", "locked_until", "created_at").
		From(usersTableName).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}
	var users []model.User
	if err := r.db.SelectContext(ctx, &users, q, args...); err != nil {
		return nil, classify(err)
	}
	return users, nil
}

func (r *repository) LockUser(ctx context.Context, userID int64, until time.Time) (model.User, error) {
	q, args, err := qb.Update(usersTableName).
		Set("locked_until", until).
		Where(sq.Eq{"id": userID}).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.User{}, err
	}
	var user model.User
	if err := r.db.GetContext(ctx, &user, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, errs.ErrNotFound
		}
		return model.User{}, classify(err)
	}
	return user, nil
}

func (r *repository) ListBooks(ctx context.Context, onlyAvailable bool) ([]model.Book, error) {
	q := qb.Select("id", "name", "author", "quantity").
		From(booksTableName).
		OrderBy("id")
	if onlyAvailable {
		q = q.Where(sq.Gt{"quantity": 0})
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	var books []model.Book
	if err := r.db.SelectContext(ctx, &books, query, args...); err != nil {
		return nil, classify(err)
	}
	return books, nil
}

func (r *repository) GetBook(ctx context.Context, bookID int64) (model.Book, error) {
	q, args, err := qb.Select("id", "name", "author", "quantity").
		From(booksTableName).
		Where(sq.Eq{"id": bookID}).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}
	var book model.Book
	if err := r.db.GetContext(ctx, &book, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, &errs.BookNotFoundError{BookID: bookID}
		}
		return model.Book{}, classify(err)
	}
	return book, nil
}

func (r *repository) CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error) {
	q, args, err := qb.Insert(booksTableName).
		Columns("name", "author", "quantity").
		Values(req.Name, req.Author, req.Quantity).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.Book{}, err
	}
	var book model.Book
	if err := r.db.GetContext(ctx, &book, q, args...); err != nil {
		r.log.Error("CreateBook", zap.String("q", q), zap.Error(err))
		return model.Book{}, classify(err)
	}
	return book, nil
}

func (r *repository) UpdateBook(ctx context.Context, bookID int64, req model.UpdateBookRequest) (model.Book, error) {
	upd := qb.Update(booksTableName).Where(sq.Eq{"id": bookID})
	if req.Name != nil {
		upd = upd.Set("name", *req.Name)
	}
	if req.Author != nil {
		upd = upd.Set("author", *req.Author)
	}
	if req.Quantity != nil {
		upd = upd.Set("quantity", *req.Quantity)
	}
	q, args, err := upd.Suffix("returning *").ToSql()
	if err != nil {
		return model.Book{}, err
	}
	var book model.Book
	if err := r.db.GetContext(ctx, &book, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, &errs.BookNotFoundError{BookID: bookID}
		}
		return model.Book{}, classify(err)
	}
	return book, nil
}

func (r *repository) CreateSlip(ctx context.Context, ownerID int64) (model.BorrowSlip, error) {
	q, args, err := qb.Insert(slipsTableName).
		Columns("user_id", "status").
		Values(ownerID, model.StatusDraft).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.BorrowSlip{}, err
	}
	var slip model.BorrowSlip
	if err := r.db.GetContext(ctx, &slip, q, args...); err != nil {
		r.log.Error("CreateSlip", zap.String("q", q), zap.Error(err))
		return model.BorrowSlip{}, classify(err)
	}
	return slip, nil
}

func (r *repository) CountOpenDrafts(ctx context.Context, ownerID int64) (int, error) {
	q := `select count(*) from borrow_slips where user_id = $1 and status = 'draft'`
	var count int
	if err := r.db.QueryRowContext(ctx, q, ownerID).Scan(&count); err != nil {
		return 0, classify(err)
	}
	return count, nil
}

func (r *repository) GetSlips(ctx context.Context, ownerID int64) ([]model.SlipWithDetails, error) {
	q, args, err := qb.Select("id", "user_id", "status", "created_at", "submitted_at").
		From(slipsTableName).
		Where(sq.Eq{"user_id": ownerID}).
		OrderBy("created_at desc").
		ToSql()
	if err != nil {
		return nil, err
	}
	var slips []model.BorrowSlip
	if err := r.db.SelectContext(ctx, &slips, q, args...); err != nil {
		return nil, classify(err)
	}
	if len(slips) == 0 {
		return []model.SlipWithDetails{}, nil
	}

	ids := make([]int64, 0, len(slips))
	for _, s := range slips {
		ids = append(ids, s.ID)
	}
	type detailRow struct {
		model.DetailLine
		SlipID int64 `db:"borrow_slip_id"`
	}
	q, args, err = qb.Select("d.id", "d.borrow_slip_id", "d.book_id", "b.name as book_name", "d.quantity").
		From(detailsTableName + " d").
		Join(booksTableName + " b on b.id = d.book_id").
		Where(sq.Eq{"d.borrow_slip_id": ids}).
		OrderBy("d.id").
		ToSql()
	if err != nil {
		return nil, err
	}
	var details []detailRow
	if err := r.db.SelectContext(ctx, &details, q, args...); err != nil {
		return nil, classify(err)
	}

	bySlip := make(map[int64][]model.DetailLine, len(slips))
	for _, d := range details {
		bySlip[d.SlipID] = append(bySlip[d.SlipID], d.DetailLine)
	}
	out := make([]model.SlipWithDetails, 0, len(slips))
	for _, s := range slips {
		lines := bySlip[s.ID]
		if lines == nil {
			lines = []model.DetailLine{}
		}
		out = append(out, model.SlipWithDetails{BorrowSlip: s, Details: lines})
	}
	return out, nil
}

// AddItem upserts a line item into a draft slip. A second add of the
// same book increments the existing row's quantity instead of
// inserting a duplicate. Availability is deliberately not checked
// here; only submission validates stock.
func (r *repository) AddItem(ctx context.Context, slipID, ownerID, bookID int64, quantity int) (model.BorrowDetail, error) {
	var detail model.BorrowDetail
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
			return errs.ErrNotFound
		}

		q = `insert into borrow_details (borrow_slip_id, book_id, quantity)
		values ($1, $2, $3)
		on conflict (borrow_slip_id, book_id)
		do update set quantity = borrow_details.quantity + excluded.quantity
		returning *`
		if err := tx.GetContext(ctx, &detail, q, slipID, bookID, quantity); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
				return &errs.BookNotFoundError{BookID: bookID}
			}
			return err
		}
		return nil
	})
	if err != nil {
		return model.BorrowDetail{}, err
	}
	return detail, nil
}

func (r *repository) RemoveItem(ctx context.Context, slipID, ownerID, detailID int64) error {
	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		var slip model.BorrowSlip
		q := `select * from borrow_slips where id = $1 and user_id = $2 for update`
		if err := tx.GetContext(ctx, &slip, q, slipID, ownerID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return errs.ErrNotFound
			}
			return err
		}
		if slip.Status != model.StatusDraft {
			return errs.ErrSlipNotEditable
		}

		res, err := tx.ExecContext(ctx,
			`delete from borrow_details where id = $1 and borrow_slip_id = $2`,
			detailID, slipID)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return errs.ErrNotFound
		}
		return nil
	})
}
