package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/bookstore-service/bookstore/internal/errs"
	"github.com/Astemirdum/bookstore-service/bookstore/internal/metrics"
	"github.com/Astemirdum/bookstore-service/bookstore/internal/model"
	"github.com/Astemirdum/bookstore-service/pkg/auth"
	"github.com/Astemirdum/bookstore-service/pkg/kafka"
	md "github.com/Astemirdum/bookstore-service/pkg/middleware"
	"github.com/Astemirdum/bookstore-service/pkg/validate"
)

type Handler struct {
	bookstoreSvc BookstoreService
	enqueuer     Enqueuer
	metrics      *metrics.Metrics
	log          *zap.Logger
	now          func() time.Time
}

type Option func(*Handler)

func WithEnqueuer(enq Enqueuer) Option {
	return func(h *Handler) { h.enqueuer = enq }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(h *Handler) { h.metrics = m }
}

func New(bookstoreSvc BookstoreService, log *zap.Logger, opts ...Option) *Handler {
	h := &Handler{
		bookstoreSvc: bookstoreSvc,
		enqueuer:     nopEnqueuer{},
		log:          log.Named("handler"),
		now:          func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
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

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)
	base.GET("/manage/stats", h.Stats)
	if h.metrics != nil {
		base.GET("/metrics", echo.WrapHandler(h.metrics.Handler()))
	}

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig(h.log)),
		md.RequestID(),
		md.NewRateLimiter(apiRPS),
	)

	api.POST("/customers", h.CreateCustomer)
	api.GET("/customers", h.GetCustomers)
	api.GET("/customers/:id", h.GetCustomer)

	api.POST("/books", h.CreateBook, md.AuthContext)
	api.GET("/books", h.GetBooks)
	api.GET("/books/:id", h.GetBook)
	api.PATCH("/books/:id/assign", h.AssignBook, md.AuthContext)
	api.PATCH("/books/:id/status", h.UpdateBookStatus)
	api.POST("/books/:id/comments", h.AddBookComment)

	api.POST("/book-assets", h.CreateBookAsset, md.AuthContext)
	api.GET("/book-assets", h.GetBookAssets)
	api.GET("/book-assets/:id", h.GetBookAsset)
	api.GET("/book-assets/:id/depreciation", h.CalculateDepreciation)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) Stats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.bookstoreSvc.Stats(c.Request().Context()))
}

func (h *Handler) CreateCustomer(c echo.Context) error {
	var req model.CustomerPayload
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	customer, err := h.bookstoreSvc.CreateCustomer(c.Request().Context(), req)
	h.metrics.Observe("create_customer", err)
	if err != nil {
		return h.fail("CreateCustomer", err)
	}
	return c.JSON(http.StatusCreated, customer)
}

func (h *Handler) GetCustomers(c echo.Context) error {
	customers, err := h.bookstoreSvc.GetCustomers(c.Request().Context())
	h.metrics.Observe("get_customers", err)
	if err != nil {
		return h.fail("GetCustomers", err)
	}
	return c.JSON(http.StatusOK, customers)
}

func (h *Handler) GetCustomer(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	customer, err := h.bookstoreSvc.GetCustomerByID(c.Request().Context(), id)
	h.metrics.Observe("get_customer_by_id", err)
	if err != nil {
		return h.fail("GetCustomerByID", err)
	}
	return c.JSON(http.StatusOK, customer)
}

func (h *Handler) CreateBook(c echo.Context) error {
	ctx := c.Request().Context()
	cred, err := credentials(ctx)
	if err != nil {
		return err
	}
	var req model.BookPayload
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	book, err := h.bookstoreSvc.CreateBook(ctx, req, cred)
	h.metrics.Observe("create_book", err)
	if err != nil {
		return h.fail("CreateBook", err)
	}
	h.publish(model.BookEvent{Type: model.EventBookCreated, EntityID: book.ID, CustomerID: book.CreatedBy, Status: book.Status})
	return c.JSON(http.StatusCreated, book)
}

func (h *Handler) AssignBook(c echo.Context) error {
	ctx := c.Request().Context()
	cred, err := credentials(ctx)
	if err != nil {
		return err
	}
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req model.AssignBookPayload
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	req.BookID = id
	book, err := h.bookstoreSvc.AssignBook(ctx, req, cred)
	h.metrics.Observe("assign_book", err)
	if err != nil {
		return h.fail("AssignBook", err)
	}
	h.publish(model.BookEvent{Type: model.EventBookAssigned, EntityID: book.ID, CustomerID: req.AssignedTo, Status: book.Status})
	return c.JSON(http.StatusOK, book)
}

func (h *Handler) UpdateBookStatus(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req model.UpdateBookStatusPayload
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	req.ID = id
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	book, err := h.bookstoreSvc.UpdateBookStatus(c.Request().Context(), req)
	h.metrics.Observe("update_book_status", err)
	if err != nil {
		return h.fail("UpdateBookStatus", err)
	}
	h.publish(model.BookEvent{Type: model.EventBookStatusChanged, EntityID: book.ID, Status: book.Status})
	return c.JSON(http.StatusOK, book)
}

func (h *Handler) AddBookComment(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req model.AddBookCommentPayload
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	req.BookID = id
	book, err := h.bookstoreSvc.AddBookComment(c.Request().Context(), req)
	h.metrics.Observe("add_book_comment", err)
	if err != nil {
		return h.fail("AddBookComment", err)
	}
	h.publish(model.BookEvent{Type: model.EventBookCommented, EntityID: book.ID, CustomerID: req.CustomerID, Status: book.Status})
	return c.JSON(http.StatusCreated, book)
}

func (h *Handler) GetBooks(c echo.Context) error {
	books, err := h.bookstoreSvc.GetBooks(c.Request().Context())
	h.metrics.Observe("get_books", err)
	if err != nil {
		return h.fail("GetBooks", err)
	}
	return c.JSON(http.StatusOK, books)
}

func (h *Handler) GetBook(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	book, err := h.bookstoreSvc.GetBookByID(c.Request().Context(), id)
	h.metrics.Observe("get_book_by_id", err)
	if err != nil {
		return h.fail("GetBookByID", err)
	}
	return c.JSON(http.StatusOK, book)
}

func (h *Handler) CreateBookAsset(c echo.Context) error {
	ctx := c.Request().Context()
	cred, err := credentials(ctx)
	if err != nil {
		return err
	}
	var req model.BookAssetPayload
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	asset, err := h.bookstoreSvc.CreateBookAsset(ctx, req, cred)
	h.metrics.Observe("create_book_asset", err)
	if err != nil {
		return h.fail("CreateBookAsset", err)
	}
	h.publish(model.BookEvent{Type: model.EventBookAssetCreated, EntityID: asset.ID, CustomerID: asset.AssignedTo})
	return c.JSON(http.StatusCreated, asset)
}

func (h *Handler) GetBookAssets(c echo.Context) error {
	assets, err := h.bookstoreSvc.GetBookAssets(c.Request().Context())
	h.metrics.Observe("get_book_assets", err)
	if err != nil {
		return h.fail("GetBookAssets", err)
	}
	return c.JSON(http.StatusOK, assets)
}

func (h *Handler) GetBookAsset(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	asset, err := h.bookstoreSvc.GetBookAssetByID(c.Request().Context(), id)
	h.metrics.Observe("get_book_asset_by_id", err)
	if err != nil {
		return h.fail("GetBookAssetByID", err)
	}
	return c.JSON(http.StatusOK, asset)
}

func (h *Handler) CalculateDepreciation(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	yearsParam := c.QueryParam("years")
	if yearsParam == "" {
		return echo.NewHTTPError(http.StatusBadRequest, errors.New("years is required"))
	}
	years, err := strconv.ParseUint(yearsParam, 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.New("years is invalid"))
	}

	req := model.CalculateDepreciationPayload{BookAssetID: id, Years: years}
	value, err := h.bookstoreSvc.CalculateDepreciation(c.Request().Context(), req)
	h.metrics.Observe("calculate_depreciation", err)
	if err != nil {
		return h.fail("CalculateDepreciation", err)
	}
	return c.JSON(http.StatusOK, model.Depreciation{BookAssetID: id, Years: years, Value: value})
}

type errorResponse struct {
	Kind    errs.Kind `json:"kind"`
	Message string    `json:"message"`
}

// fail maps a service error to its HTTP status. Messages go to the client
// as they are; anything else is a storage or internal fault.
func (h *Handler) fail(op string, err error) error {
	var msg *errs.Message
	if !errors.As(err, &msg) {
		h.log.Error(op, zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	code := http.StatusConflict
	switch msg.Kind {
	case errs.KindInvalidPayload:
		code = http.StatusBadRequest
	case errs.KindUnAuthorized:
		code = http.StatusUnauthorized
	case errs.KindNotFound:
		code = http.StatusNotFound
	}
	return echo.NewHTTPError(code, errorResponse{Kind: msg.Kind, Message: msg.Text})
}

// publish never fails the request; the mutation is already stored.
func (h *Handler) publish(ev model.BookEvent) {
	ev.At = h.now()
	if err := h.enqueuer.Enqueue(kafka.EventsTopic, ev); err != nil {
		h.log.Warn("h.enqueuer.Enqueue()", zap.String("type", string(ev.Type)), zap.Error(err))
	}
}

func paramID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, errors.New("id is invalid"))
	}
	return id, nil
}

func credentials(ctx context.Context) (model.Credentials, error) {
	userName, role, err := auth.GetCredentials(ctx)
	if err != nil {
		return model.Credentials{}, echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	return model.Credentials{Username: userName, Role: model.Role(role)}, nil
}
