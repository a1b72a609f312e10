package handler

import (
	"net/http"
	"strconv"

	"github.com/bookhive/borrow-service/internal/errs"
	"github.com/bookhive/borrow-service/internal/model"
	"github.com/bookhive/borrow-service/internal/rights"
	"github.com/bookhive/borrow-service/pkg/auth"
	mw "github.com/bookhive/borrow-service/pkg/middleware"
	"github.com/bookhive/borrow-service/pkg/validate"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Handler struct {
	svc     BorrowService
	authCfg auth.Config
	log     *zap.Logger
}

func New(svc BorrowService, authCfg auth.Config, log *zap.Logger) *Handler {
	return &Handler{
		svc:     svc,
		authCfg: authCfg,
		log:     log,
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", mw.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(mw.RequestLoggerConfig()),
		middleware.RequestID(),
		mw.NewRateLimiter(apiRPS),
	)

	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)
	api.POST("/auth/verify", h.Verify)
	api.POST("/auth/forgot-password", h.ForgotPassword)
	api.POST("/auth/reset-password", h.ResetPassword)

	authed := api.Group("", mw.JwtAuthentication(h.authCfg))

	authed.POST("/auth/change-password", h.ChangePassword)

	authed.GET("/books", h.ListBooks, h.require(rights.ViewBooks))
	authed.POST("/books", h.CreateBook, h.require(rights.ManageBooks))
	authed.PATCH("/books/:id", h.UpdateBook, h.require(rights.ManageBooks))

	authed.GET("/users", h.ListUsers, h.require(rights.ManageUsers))
	authed.PATCH("/users/:id/lock", h.LockUser, h.require(rights.ManageUsers))
	authed.GET("/roles", h.ListRoles, h.require(rights.ManageUsers))
	authed.PATCH("/roles/:id/rights", h.UpdateRoleRights, h.require(rights.ManageUsers))

	slips := authed.Group("/borrow-slips", h.require(rights.BorrowBooks))
	slips.GET("", h.GetSlips)
	slips.POST("", h.CreateDraft)
	slips.POST("/:id/items", h.AddItem)
	slips.DELETE("/:id/details/:detailId", h.RemoveItem)
	slips.POST("/:id/submit", h.Submit)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// require resolves the caller's role into its rights mask and tests
// the required capability. A missing bit is the normal forbidden
// signal and maps to 403.
func (h *Handler) require(required rights.Rights) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := auth.FromContext(c.Request().Context())
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "no session")
			}
			allowed, err := h.svc.HasRight(c.Request().Context(), claims.RoleID, required)
			if err != nil {
				return h.httpError(err)
			}
			if !allowed {
				return echo.NewHTTPError(http.StatusForbidden, "Forbidden")
			}
			return next(c)
		}
	}
}

// httpError translates the typed business failures into HTTP
// responses carrying enough detail to render a specific message.
func (h *Handler) httpError(err error) *echo.HTTPError {
	var (
		locked       *errs.AccountLockedError
		attempts     *errs.AttemptsError
		insufficient *errs.InsufficientStockError
	)
	switch {
	case errors.As(err, &locked):
		return echo.NewHTTPError(http.StatusLocked, locked.Error())
	case errors.As(err, &attempts):
		return echo.NewHTTPError(http.StatusUnauthorized, attempts.Error())
	case errors.Is(err, errs.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, errs.ErrInvalidCredentials.Error())
	case errors.Is(err, errs.ErrNotVerified):
		return echo.NewHTTPError(http.StatusForbidden, errs.ErrNotVerified.Error())
	case errors.As(err, &insufficient):
		return echo.NewHTTPError(http.StatusConflict, insufficient.Error())
	case errors.Is(err, errs.ErrAlreadyExists),
		errors.Is(err, errs.ErrSamePassword),
		errors.Is(err, errs.ErrAlreadySubmitted),
		errors.Is(err, errs.ErrEmptySlip),
		errors.Is(err, errs.ErrSlipNotEditable),
		errors.Is(err, errs.ErrTooManyDrafts):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrRetryable):
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

func (h *Handler) Register(c echo.Context) error {
	var req model.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := h.svc.Register(c.Request().Context(), req); err != nil {
		return h.httpError(err)
	}
	return c.String(http.StatusCreated, "ok")
}

func (h *Handler) Login(c echo.Context) error {
	var req model.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	resp, err := h.svc.Authenticate(c.Request().Context(), req)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) Verify(c echo.Context) error {
	type verifyRequest struct {
		Token string `json:"token" validate:"required"`
	}
	var req verifyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := h.svc.Verify(c.Request().Context(), req.Token); err != nil {
		return h.httpError(err)
	}
	return c.String(http.StatusOK, "ok")
}

func (h *Handler) ForgotPassword(c echo.Context) error {
	var req model.ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := h.svc.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return h.httpError(err)
	}
	// same response for known and unknown emails
	return c.JSON(http.StatusOK, echo.Map{"message": "if the email is registered, a reset mail has been sent"})
}

func (h *Handler) ResetPassword(c echo.Context) error {
	var req model.ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := h.svc.ResetPassword(c.Request().Context(), req); err != nil {
		return h.httpError(err)
	}
	return c.String(http.StatusOK, "ok")
}

func (h *Handler) ChangePassword(c echo.Context) error {
	claims, err := sessionClaims(c)
	if err != nil {
		return err
	}
	var req model.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := h.svc.ChangePassword(c.Request().Context(), claims.UserID, req); err != nil {
		return h.httpError(err)
	}
	return c.String(http.StatusOK, "ok")
}

func (h *Handler) ListBooks(c echo.Context) error {
	onlyAvailable := c.QueryParam("showAll") != "true"
	books, err := h.svc.ListBooks(c.Request().Context(), onlyAvailable)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, books)
}

func (h *Handler) CreateBook(c echo.Context) error {
	var req model.CreateBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	book, err := h.svc.CreateBook(c.Request().Context(), req)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusCreated, book)
}

func (h *Handler) UpdateBook(c echo.Context) error {
	bookID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req model.UpdateBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	book, err := h.svc.UpdateBook(c.Request().Context(), bookID, req)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, book)
}

func (h *Handler) ListUsers(c echo.Context) error {
	users, err := h.svc.ListUsers(c.Request().Context())
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, users)
}

// roleResponse spells the mask out as capability names next to the
// raw value, so admin clients need not know the bit layout.
type roleResponse struct {
	model.Role
	RightNames []string `json:"rightNames"`
}

func toRoleResponse(r model.Role) roleResponse {
	return roleResponse{Role: r, RightNames: rights.Names(r.Rights)}
}

func (h *Handler) ListRoles(c echo.Context) error {
	roles, err := h.svc.ListRoles(c.Request().Context())
	if err != nil {
		return h.httpError(err)
	}
	out := make([]roleResponse, 0, len(roles))
	for _, r := range roles {
		out = append(out, toRoleResponse(r))
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) UpdateRoleRights(c echo.Context) error {
	roleID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req model.UpdateRoleRightsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	grant, err := rightsMask(req.Grant)
	if err != nil {
		return err
	}
	revoke, err := rightsMask(req.Revoke)
	if err != nil {
		return err
	}
	role, err := h.svc.UpdateRoleRights(c.Request().Context(), roleID, grant, revoke)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, toRoleResponse(role))
}

func rightsMask(names []string) (rights.Rights, error) {
	var mask rights.Rights
	for _, name := range names {
		flag, ok := rights.ByName(name)
		if !ok {
			return 0, echo.NewHTTPError(http.StatusBadRequest, "unknown right "+name)
		}
		mask = rights.Set(mask, flag)
	}
	return mask, nil
}

func (h *Handler) LockUser(c echo.Context) error {
	userID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	user, err := h.svc.LockUser(c.Request().Context(), userID)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *Handler) GetSlips(c echo.Context) error {
	claims, err := sessionClaims(c)
	if err != nil {
		return err
	}
	slips, err := h.svc.GetSlips(c.Request().Context(), claims.UserID)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, slips)
}

func (h *Handler) CreateDraft(c echo.Context) error {
	claims, err := sessionClaims(c)
	if err != nil {
		return err
	}
	slip, err := h.svc.CreateDraft(c.Request().Context(), claims.UserID)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusCreated, slip)
}

func (h *Handler) AddItem(c echo.Context) error {
	claims, err := sessionClaims(c)
	if err != nil {
		return err
	}
	slipID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req model.AddItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	detail, err := h.svc.AddItem(c.Request().Context(), slipID, claims.UserID, req)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusCreated, detail)
}

func (h *Handler) RemoveItem(c echo.Context) error {
	claims, err := sessionClaims(c)
	if err != nil {
		return err
	}
	slipID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	detailID, err := pathID(c, "detailId")
	if err != nil {
		return err
	}
	if err := h.svc.RemoveItem(c.Request().Context(), slipID, claims.UserID, detailID); err != nil {
		return h.httpError(err)
	}
	return c.NoContent(http.StatusOK)
}

func (h *Handler) Submit(c echo.Context) error {
	claims, err := sessionClaims(c)
	if err != nil {
		return err
	}
	slipID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Submit(c.Request().Context(), slipID, claims.UserID); err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Submitted"})
}

func sessionClaims(c echo.Context) (*auth.Claims, error) {
	claims, ok := auth.FromContext(c.Request().Context())
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "no session")
	}
	return claims, nil
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}
