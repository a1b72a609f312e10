package model

import (
	"time"

	"github.com/bookhive/borrow-service/internal/rights"
)

type Role struct {
	ID     int64         `json:"id" db:"id"`
	Name   string        `json:"name" db:"name"`
	Rights rights.Rights `json:"rights" db:"rights"`
}

type User struct {
	ID                int64      `json:"id" db:"id"`
	Username          string     `json:"username" db:"username"`
	Email             string     `json:"email" db:"email"`
	Password          string     `json:"-" db:"password"`
	RoleID            int64      `json:"roleId" db:"role_id"`
	IsVerified        bool       `json:"isVerified" db:"is_verified"`
	VerificationToken *string    `json:"-" db:"verification_token"`
	ResetToken        *string    `json:"-" db:"reset_token"`
	ResetTokenExpires *time.Time `json:"-" db:"reset_token_expires"`
	FailedAttempts    int        `json:"-" db:"failed_attempts"`
	LockedUntil       *time.Time `json:"lockedUntil,omitempty" db:"locked_until"`
	CreatedAt         time.Time  `json:"createdAt" db:"created_at"`
}

// Locked reports whether the account rejects authentication at now.
// Once the lock expires the account is implicitly active again; no
// background job clears the column.
func (u *User) Locked(now time.Time) bool {
	return u.LockedUntil != nil && now.Before(*u.LockedUntil)
}

type Book struct {
	ID       int64  `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Author   string `json:"author" db:"author"`
	Quantity int    `json:"quantity" db:"quantity"`
}

type SlipStatus string

const (
	StatusDraft     SlipStatus = "draft"
	StatusSubmitted SlipStatus = "submitted"
)

type BorrowSlip struct {
	ID          int64      `json:"id" db:"id"`
	UserID      int64      `json:"userId" db:"user_id"`
	Status      SlipStatus `json:"status" db:"status"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	SubmittedAt *time.Time `json:"submittedAt,omitempty" db:"submitted_at"`
}

type BorrowDetail struct {
	ID           int64 `json:"id" db:"id"`
	BorrowSlipID int64 `json:"borrowSlipId" db:"borrow_slip_id"`
	BookID       int64 `json:"bookId" db:"book_id"`
	Quantity     int   `json:"quantity" db:"quantity"`
}

// SlipWithDetails is the read model for listing a user's slips.
type SlipWithDetails struct {
	BorrowSlip
	Details []DetailLine `json:"details"`
}

type DetailLine struct {
	ID       int64  `json:"id" db:"id"`
	BookID   int64  `json:"bookId" db:"book_id"`
	BookName string `json:"bookTitle" db:"book_name"`
	Quantity int    `json:"quantity" db:"quantity"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int    `json:"expiresIn"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

// UpdateRoleRightsRequest grants and revokes capabilities by name;
// grant wins when both lists carry the same right.
type UpdateRoleRightsRequest struct {
	Grant  []string `json:"grant"`
	Revoke []string `json:"revoke"`
}

type AddItemRequest struct {
	BookID   int64 `json:"bookId" validate:"required"`
	Quantity int   `json:"quantity" validate:"required,min=1"`
}

type CreateBookRequest struct {
	Name     string `json:"name" validate:"required"`
	Author   string `json:"author" validate:"required"`
	Quantity int    `json:"quantity" validate:"min=0"`
}

type UpdateBookRequest struct {
	Name     *string `json:"name,omitempty"`
	Author   *string `json:"author,omitempty"`
	Quantity *int    `json:"quantity,omitempty" validate:"omitempty,min=0"`
}

// SlipSubmittedMsg is published to kafka after a submission commits.
type SlipSubmittedMsg struct {
	SlipID int64        `json:"slipId"`
	UserID int64        `json:"userId"`
	Lines  []DetailLine `json:"lines"`
}
