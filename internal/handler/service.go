package handler

import (
	"context"

	"github.com/bookhive/borrow-service/internal/model"
	"github.com/bookhive/borrow-service/internal/rights"
)

//go:generate mockgen -source=service.go -destination=mocks/service_mock.go -package=service_mocks

type BorrowService interface {
	Authenticate(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error)
	Register(ctx context.Context, req model.RegisterRequest) error
	Verify(ctx context.Context, token string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req model.ResetPasswordRequest) error
	ChangePassword(ctx context.Context, userID int64, req model.ChangePasswordRequest) error

	HasRight(ctx context.Context, roleID int64, required rights.Rights) (bool, error)

	ListBooks(ctx context.Context, onlyAvailable bool) ([]model.Book, error)
	CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error)
	UpdateBook(ctx context.Context, bookID int64, req model.UpdateBookRequest) (model.Book, error)

	ListUsers(ctx context.Context) ([]model.User, error)
	ListRoles(ctx context.Context) ([]model.Role, error)
	UpdateRoleRights(ctx context.Context, roleID int64, grant, revoke rights.Rights) (model.Role, error)
	LockUser(ctx context.Context, userID int64) (model.User, error)

	CreateDraft(ctx context.Context, ownerID int64) (model.BorrowSlip, error)
	GetSlips(ctx context.Context, ownerID int64) ([]model.SlipWithDetails, error)
	AddItem(ctx context.Context, slipID, ownerID int64, req model.AddItemRequest) (model.BorrowDetail, error)
	RemoveItem(ctx context.Context, slipID, ownerID, detailID int64) error
	Submit(ctx context.Context, slipID, ownerID int64) error
}
