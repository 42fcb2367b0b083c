package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Astemirdum/bookstore-service/bookstore/internal/errs"
	"github.com/Astemirdum/bookstore-service/bookstore/internal/handler"
	"github.com/Astemirdum/bookstore-service/bookstore/internal/model"
	"github.com/Astemirdum/bookstore-service/pkg/auth"

	service_mocks "github.com/Astemirdum/bookstore-service/bookstore/internal/handler/mocks"
)

var createdAt = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func dune() model.Book {
	return model.Book{
		ID:          4,
		Title:       "Dune",
		Description: "Desert planet",
		Status:      model.StatusAvailable,
		Genre:       model.GenreFiction,
		CreatedAt:   createdAt,
		CreatedBy:   1,
		History:     []model.BookHistory{},
		Comments:    []model.Comment{},
	}
}

const duneJSON = `{"id":4,"title":"Dune","description":"Desert planet","status":"Available","genre":"Fiction","createdAt":"2024-03-01T12:00:00Z","createdBy":1,"assignedTo":null,"history":[],"comments":[]}`

type request struct {
	method string
	target string
	body   string
	header map[string]string
}

type response struct {
	expectedCode int
	expectedBody string
}

func serve(t *testing.T, h *handler.Handler, req request) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(req.method, req.target, strings.NewReader(req.body))
	r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range req.header {
		r.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.NewRouter().ServeHTTP(w, r)
	return w
}

func adminHeaders() map[string]string {
	return map[string]string{auth.XUserNameHeader: "root", auth.XUserRoleHeader: "Admin"}
}

func TestHandler_CreateBook(t *testing.T) {
	t.Parallel()
	type mockBehavior func(r *service_mocks.MockBookstoreService)

	payload := model.BookPayload{Title: "Dune", Description: "Desert planet", Genre: model.GenreFiction}
	admin := model.Credentials{Username: "root", Role: model.RoleAdmin}

	var tests = []struct {
		name         string
		mockBehavior mockBehavior
		request      request
		response     response
	}{
		{
			name: "ok",
			mockBehavior: func(r *service_mocks.MockBookstoreService) {
				r.EXPECT().CreateBook(gomock.Any(), payload, admin).Return(dune(), nil)
			},
			request: request{
				method: http.MethodPost,
				target: "/api/v1/books",
				body:   `{"title":"Dune","description":"Desert planet","genre":"Fiction"}`,
				header: adminHeaders(),
			},
			response: response{expectedCode: http.StatusCreated, expectedBody: duneJSON},
		},
		{
			name:         "err. no credentials",
			mockBehavior: func(r *service_mocks.MockBookstoreService) {},
			request: request{
				method: http.MethodPost,
				target: "/api/v1/books",
				body:   `{"title":"Dune","description":"Desert planet","genre":"Fiction"}`,
			},
			response: response{expectedCode: http.StatusUnauthorized, expectedBody: `{"message":"user-name is empty"}`},
		},
		{
			name: "err. role not allowed",
			mockBehavior: func(r *service_mocks.MockBookstoreService) {
				r.EXPECT().CreateBook(gomock.Any(), payload, admin).
					Return(model.Book{}, errs.UnAuthorized("You do not have permission to create a book"))
			},
			request: request{
				method: http.MethodPost,
				target: "/api/v1/books",
				body:   `{"title":"Dune","description":"Desert planet","genre":"Fiction"}`,
				header: adminHeaders(),
			},
			response: response{
				expectedCode: http.StatusUnauthorized,
				expectedBody: `{"kind":"UnAuthorized","message":"You do not have permission to create a book"}`,
			},
		},
		{
			name: "err. storage",
			mockBehavior: func(r *service_mocks.MockBookstoreService) {
				r.EXPECT().CreateBook(gomock.Any(), payload, admin).
					Return(model.Book{}, errs.Storage(errors.New("disk full"), "insert book 4"))
			},
			request: request{
				method: http.MethodPost,
				target: "/api/v1/books",
				body:   `{"title":"Dune","description":"Desert planet","genre":"Fiction"}`,
				header: adminHeaders(),
			},
			response: response{
				expectedCode: http.StatusInternalServerError,
				expectedBody: `{"message":"insert book 4: storage fault: disk full"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockBookstoreService(c)
			h := handler.New(svc, zap.NewNop())

			tt.mockBehavior(svc)
			w := serve(t, h, tt.request)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_Books(t *testing.T) {
	t.Parallel()
	type mockBehavior func(r *service_mocks.MockBookstoreService)

	assigned := dune()
	to := uint64(3)
	assigned.AssignedTo = &to

	var tests = []struct {
		name         string
		mockBehavior mockBehavior
		request      request
		response     response
	}{
		{
			name: "get ok",
			mockBehavior: func(r *service_mocks.MockBookstoreService) {
				r.EXPECT().GetBookByID(gomock.Any(), uint64(4)).Return(dune(), nil)
			},
			request:  request{method: http.MethodGet, target: "/api/v1/books/4"},
			response: response{expectedCode: http.StatusOK, expectedBody: duneJSON},
		},
		{
			name: "get not found",
			mockBehavior: func(r *service_mocks.MockBookstoreService) {
				r.EXPECT().GetBookByID(gomock.Any(), uint64(9)).Return(model.Book{}, errs.NotFound("Book not found"))
			},
			request:  request{method: http.MethodGet, target: "/api/v1/books/9"},
			response: response{expectedCode: http.StatusNotFound, expectedBody: `{"kind":"NotFound","message":"Book not found"}`},
		},
		{
			name:         "get invalid id",
			mockBehavior: func(r *service_mocks.MockBookstoreService) {},
			request:      request{method: http.MethodGet, target: "/api/v1/books/abc"},
			response:     response{expectedCode: http.StatusBadRequest, expectedBody: `{"message":"id is invalid"}`},
		},
		{
			name: "list empty",
			mockBehavior: func(r *service_mocks.MockBookstoreService) {
				r.EXPECT().GetBooks(gomock.Any()).Return(nil, errs.NotFound("No books found"))
			},
			request:  request{method: http.MethodGet, target: "/api/v1/books"},
			response: response{expectedCode: http.StatusNotFound, expectedBody: `{"kind":"NotFound","message":"No books found"}`},
		},
		{
			name: "list ok",
			mockBehavior: func(r *service_mocks.MockBookstoreService) {
				r.EXPECT().GetBooks(gomock.Any()).Return([]model.Book{dune()}, nil)
			},
			request:  request{method: http.MethodGet, target: "/api/v1/books"},
			response: response{expectedCode: http.StatusOK, expectedBody: "[" + duneJSON + "]"},
		},
		{
			name: "assign unknown customer",
			mockBehavior: func(r *service_mocks.MockBookstoreService) {
				r.EXPECT().AssignBook(gomock.Any(),
					model.AssignBookPayload{BookID: 4, AssignedTo: 99},
					model.Credentials{Username: "root", Role: model.RoleAdmin}).
					Return(model.Book{}, errs.InvalidPayload("Assigned customer does not exist"))
			},
			request: request{
				method: http.MethodPatch,
				target: "/api/v1/books/4/assign",
				body:   `{"assignedTo":99}`,
				header: adminHeaders(),
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"kind":"InvalidPayload","message":"Assigned customer does not exist"}`,
			},
		},
		{
			name: "assign ok",
			mockBehavior: func(r *service_mocks.MockBookstoreService) {
				r.EXPECT().AssignBook(gomock.Any(),
					model.AssignBookPayload{BookID: 4, AssignedTo: 3},
					model.Credentials{Username: "root", Role: model.RoleAdmin}).
					Return(assigned, nil)
			},
			request: request{
				method: http.MethodPatch,
				target: "/api/v1/books/4/assign",
				body:   `{"assignedTo":3}`,
				header: adminHeaders(),
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: strings.Replace(duneJSON, `"assignedTo":null`, `"assignedTo":3`, 1),
			},
		},
		{
			name: "assign takes book id from path",
			mockBehavior: func(r *service_mocks.MockBookstoreService) {
				r.EXPECT().AssignBook(gomock.Any(),
					model.AssignBookPayload{BookID: 4, AssignedTo: 3},
					model.Credentials{Username: "root", Role: model.RoleAdmin}).
					Return(assigned, nil)
			},
			request: request{
				method: http.MethodPatch,
				target: "/api/v1/books/4/assign",
				body:   `{"bookId":7,"assignedTo":3}`,
				header: adminHeaders(),
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: strings.Replace(duneJSON, `"assignedTo":null`, `"assignedTo":3`, 1),
			},
		},
		{
			name: "status takes book id from path",
			mockBehavior: func(r *service_mocks.MockBookstoreService) {
				r.EXPECT().UpdateBookStatus(gomock.Any(), model.UpdateBookStatusPayload{ID: 4, Status: model.StatusSold}).
					Return(dune(), nil)
			},
			request:  request{method: http.MethodPatch, target: "/api/v1/books/4/status", body: `{"id":7,"status":"Sold"}`},
			response: response{expectedCode: http.StatusOK, expectedBody: duneJSON},
		},
		{
			name:         "status missing",
			mockBehavior: func(r *service_mocks.MockBookstoreService) {},
			request:      request{method: http.MethodPatch, target: "/api/v1/books/4/status", body: `{}`},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"Key: 'UpdateBookStatusPayload.Status' Error:Field validation for 'Status' failed on the 'required' tag"}`,
			},
		},
		{
			name:         "status invalid id",
			mockBehavior: func(r *service_mocks.MockBookstoreService) {},
			request:      request{method: http.MethodPatch, target: "/api/v1/books/x/status", body: `{"status":"Sold"}`},
			response:     response{expectedCode: http.StatusBadRequest, expectedBody: `{"message":"id is invalid"}`},
		},
		{
			name: "comment takes book id from path",
			mockBehavior: func(r *service_mocks.MockBookstoreService) {
				r.EXPECT().AddBookComment(gomock.Any(), model.AddBookCommentPayload{BookID: 4, CustomerID: 3, Content: "great"}).
					Return(dune(), nil)
			},
			request:  request{method: http.MethodPost, target: "/api/v1/books/4/comments", body: `{"bookId":7,"customerId":3,"content":"great"}`},
			response: response{expectedCode: http.StatusCreated, expectedBody: duneJSON},
		},
		{
			name: "status without credentials",
			mockBehavior: func(r *service_mocks.MockBookstoreService) {
				r.EXPECT().UpdateBookStatus(gomock.Any(), model.UpdateBookStatusPayload{ID: 4, Status: model.StatusSold}).
					Return(dune(), nil)
			},
			request:  request{method: http.MethodPatch, target: "/api/v1/books/4/status", body: `{"status":"Sold"}`},
			response: response{expectedCode: http.StatusOK, expectedBody: duneJSON},
		},
		{
			name: "comment unknown customer",
			mockBehavior: func(r *service_mocks.MockBookstoreService) {
				r.EXPECT().AddBookComment(gomock.Any(), model.AddBookCommentPayload{BookID: 4, CustomerID: 42, Content: "great"}).
					Return(model.Book{}, errs.InvalidPayload("Customer does not exist"))
			},
			request: request{method: http.MethodPost, target: "/api/v1/books/4/comments", body: `{"customerId":42,"content":"great"}`},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"kind":"InvalidPayload","message":"Customer does not exist"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockBookstoreService(c)
			h := handler.New(svc, zap.NewNop())

			tt.mockBehavior(svc)
			w := serve(t, h, tt.request)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_Customers(t *testing.T) {
	t.Parallel()
	type mockBehavior func(r *service_mocks.MockBookstoreService)

	var tests = []struct {
		name         string
		mockBehavior mockBehavior
		request      request
		response     response
	}{
		{
			name: "create ok",
			mockBehavior: func(r *service_mocks.MockBookstoreService) {
				r.EXPECT().CreateCustomer(gomock.Any(), model.CustomerPayload{Username: "alice", Role: model.RoleCustomer}).
					Return(model.Customer{ID: 1, Username: "alice", Role: model.RoleCustomer, CreatedAt: createdAt}, nil)
			},
			request: request{method: http.MethodPost, target: "/api/v1/customers", body: `{"username":"alice","role":"Customer"}`},
			response: response{
				expectedCode: http.StatusCreated,
				expectedBody: `{"id":1,"username":"alice","role":"Customer","createdAt":"2024-03-01T12:00:00Z"}`,
			},
		},
		{
			name: "create duplicate",
			mockBehavior: func(r *service_mocks.MockBookstoreService) {
				r.EXPECT().CreateCustomer(gomock.Any(), model.CustomerPayload{Username: "alice", Role: model.RoleAdmin}).
					Return(model.Customer{}, errs.Error("Customer already exists"))
			},
			request:  request{method: http.MethodPost, target: "/api/v1/customers", body: `{"username":"alice","role":"Admin"}`},
			response: response{expectedCode: http.StatusConflict, expectedBody: `{"kind":"Error","message":"Customer already exists"}`},
		},
		{
			name:         "create malformed body",
			mockBehavior: func(r *service_mocks.MockBookstoreService) {},
			request:      request{method: http.MethodPost, target: "/api/v1/customers", body: `{"username":`},
			response:     response{expectedCode: http.StatusBadRequest},
		},
		{
			name: "list empty",
			mockBehavior: func(r *service_mocks.MockBookstoreService) {
				r.EXPECT().GetCustomers(gomock.Any()).Return(nil, errs.NotFound("No customers found"))
			},
			request:  request{method: http.MethodGet, target: "/api/v1/customers"},
			response: response{expectedCode: http.StatusNotFound, expectedBody: `{"kind":"NotFound","message":"No customers found"}`},
		},
		{
			name: "get not found",
			mockBehavior: func(r *service_mocks.MockBookstoreService) {
				r.EXPECT().GetCustomerByID(gomock.Any(), uint64(7)).Return(model.Customer{}, errs.NotFound("Customer not found"))
			},
			request:  request{method: http.MethodGet, target: "/api/v1/customers/7"},
			response: response{expectedCode: http.StatusNotFound, expectedBody: `{"kind":"NotFound","message":"Customer not found"}`},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockBookstoreService(c)
			h := handler.New(svc, zap.NewNop())

			tt.mockBehavior(svc)
			w := serve(t, h, tt.request)

			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedBody != "" {
				require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}

func TestHandler_BookAssets(t *testing.T) {
	t.Parallel()
	type mockBehavior func(r *service_mocks.MockBookstoreService)

	var tests = []struct {
		name         string
		mockBehavior mockBehavior
		request      request
		response     response
	}{
		{
			name: "create ok",
			mockBehavior: func(r *service_mocks.MockBookstoreService) {
				r.EXPECT().CreateBookAsset(gomock.Any(),
					model.BookAssetPayload{AssetName: "copy", AssetType: model.AssetEbook, PurchaseDate: createdAt, AssignedTo: 3, ApproxValue: 5, DepreciationRate: 10},
					model.Credentials{Username: "root", Role: model.RoleAdmin}).
					Return(model.BookAsset{ID: 5, AssetName: "copy", AssetType: model.AssetEbook, PurchaseDate: createdAt, AssignedTo: 3, ApproxValue: 5, DepreciationRate: 10}, nil)
			},
			request: request{
				method: http.MethodPost,
				target: "/api/v1/book-assets",
				body:   `{"assetName":"copy","assetType":"Ebook","purchaseDate":"2024-03-01T12:00:00Z","assignedTo":3,"approxValue":5,"depreciationRate":10}`,
				header: adminHeaders(),
			},
			response: response{
				expectedCode: http.StatusCreated,
				expectedBody: `{"id":5,"assetName":"copy","assetType":"Ebook","purchaseDate":"2024-03-01T12:00:00Z","assignedTo":3,"approxValue":5,"depreciationRate":10}`,
			},
		},
		{
			name: "list empty",
			mockBehavior: func(r *service_mocks.MockBookstoreService) {
				r.EXPECT().GetBookAssets(gomock.Any()).Return(nil, errs.NotFound("No book assets found"))
			},
			request:  request{method: http.MethodGet, target: "/api/v1/book-assets"},
			response: response{expectedCode: http.StatusNotFound, expectedBody: `{"kind":"NotFound","message":"No book assets found"}`},
		},
		{
			name: "depreciation ok",
			mockBehavior: func(r *service_mocks.MockBookstoreService) {
				r.EXPECT().CalculateDepreciation(gomock.Any(), model.CalculateDepreciationPayload{BookAssetID: 5, Years: 2}).
					Return(810.0, nil)
			},
			request:  request{method: http.MethodGet, target: "/api/v1/book-assets/5/depreciation?years=2"},
			response: response{expectedCode: http.StatusOK, expectedBody: `{"bookAssetId":5,"years":2,"value":810}`},
		},
		{
			name:         "depreciation without years",
			mockBehavior: func(r *service_mocks.MockBookstoreService) {},
			request:      request{method: http.MethodGet, target: "/api/v1/book-assets/5/depreciation"},
			response:     response{expectedCode: http.StatusBadRequest, expectedBody: `{"message":"years is required"}`},
		},
		{
			name: "depreciation unknown asset",
			mockBehavior: func(r *service_mocks.MockBookstoreService) {
				r.EXPECT().CalculateDepreciation(gomock.Any(), model.CalculateDepreciationPayload{BookAssetID: 8, Years: 1}).
					Return(0.0, errs.NotFound("Book asset not found"))
			},
			request:  request{method: http.MethodGet, target: "/api/v1/book-assets/8/depreciation?years=1"},
			response: response{expectedCode: http.StatusNotFound, expectedBody: `{"kind":"NotFound","message":"Book asset not found"}`},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockBookstoreService(c)
			h := handler.New(svc, zap.NewNop())

			tt.mockBehavior(svc)
			w := serve(t, h, tt.request)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

type recordingEnqueuer struct {
	topics []string
	events []model.BookEvent
	err    error
}

func (q *recordingEnqueuer) Enqueue(topic string, ev model.BookEvent) error {
	q.topics = append(q.topics, topic)
	q.events = append(q.events, ev)
	return q.err
}

func TestHandler_PublishesEvents(t *testing.T) {
	c := gomock.NewController(t)
	defer c.Finish()
	svc := service_mocks.NewMockBookstoreService(c)
	svc.EXPECT().UpdateBookStatus(gomock.Any(), model.UpdateBookStatusPayload{ID: 4, Status: model.StatusSold}).
		Return(dune(), nil).Times(2)
	svc.EXPECT().GetBookByID(gomock.Any(), uint64(4)).Return(dune(), nil)

	enq := &recordingEnqueuer{}
	h := handler.New(svc, zap.NewNop(), handler.WithEnqueuer(enq))

	w := serve(t, h, request{method: http.MethodPatch, target: "/api/v1/books/4/status", body: `{"status":"Sold"}`})
	require.Equal(t, http.StatusOK, w.Code)
	w = serve(t, h, request{method: http.MethodGet, target: "/api/v1/books/4"})
	require.Equal(t, http.StatusOK, w.Code)

	require.Equal(t, []string{"bookstore.events"}, enq.topics)
	require.Equal(t, model.EventBookStatusChanged, enq.events[0].Type)
	require.Equal(t, uint64(4), enq.events[0].EntityID)
	require.False(t, enq.events[0].At.IsZero())

	enq.err = errors.New("broker down")
	w = serve(t, h, request{method: http.MethodPatch, target: "/api/v1/books/4/status", body: `{"status":"Sold"}`})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_Health(t *testing.T) {
	c := gomock.NewController(t)
	defer c.Finish()
	svc := service_mocks.NewMockBookstoreService(c)
	svc.EXPECT().Stats(gomock.Any()).Return(model.Stats{Customers: 1, LastID: 1, Regions: map[string]int64{"customers": 4096}})
	h := handler.New(svc, zap.NewNop())

	w := serve(t, h, request{method: http.MethodGet, target: "/manage/health"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "OK", w.Body.String())

	w = serve(t, h, request{method: http.MethodGet, target: "/manage/stats"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, `{"customers":1,"books":0,"bookAssets":0,"lastId":1,"regionBytes":{"customers":4096}}`, strings.Trim(w.Body.String(), "\n"))
}
