package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Astemirdum/bookstore-service/bookstore/internal/errs"
	"github.com/Astemirdum/bookstore-service/bookstore/internal/model"
	"github.com/Astemirdum/bookstore-service/bookstore/internal/repository"
)

// Service runs one operation at a time: every exported method holds mu for
// its whole duration, so check-then-write sequences cannot interleave.
type Service struct {
	mu   sync.Mutex
	log  *zap.Logger
	repo repository.Repository
	now  func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo repository.Repository, log *zap.Logger, opts ...Option) *Service {
	s := &Service{
		log:  log.Named("service"),
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// nextID treats a failed counter write as fatal.
func (s *Service) nextID(ctx context.Context) uint64 {
	id, err := s.repo.NextID(ctx)
	if err != nil {
		s.log.Panic("Cannot increment ID counter", zap.Error(err))
	}
	return id
}

func (s *Service) CreateCustomer(ctx context.Context, payload model.CustomerPayload) (model.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if payload.Username == "" || !payload.Role.Valid() {
		return model.Customer{}, errs.InvalidPayload("Ensure 'username' and 'role' are provided.")
	}
	for _, c := range s.repo.Customers() {
		if c.Username == payload.Username {
			return model.Customer{}, errs.Error("Customer already exists")
		}
	}

	customer := model.Customer{
		ID:        s.nextID(ctx),
		Username:  payload.Username,
		Role:      payload.Role,
		CreatedAt: s.now(),
	}
	if err := s.repo.PutCustomer(ctx, customer); err != nil {
		return model.Customer{}, err
	}
	s.log.Debug("customer created", zap.Uint64("id", customer.ID), zap.String("role", string(customer.Role)))
	return customer, nil
}

func (s *Service) GetCustomers(_ context.Context) ([]model.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	customers := make([]model.Customer, 0)
	for _, c := range s.repo.Customers() {
		customers = append(customers, c)
	}
	if len(customers) == 0 {
		return nil, errs.NotFound("No customers found")
	}
	return customers, nil
}

func (s *Service) GetCustomerByID(_ context.Context, id uint64) (model.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.repo.GetCustomer(id)
	if !ok {
		return model.Customer{}, errs.NotFound("Customer not found")
	}
	return c, nil
}

func (s *Service) CreateBook(ctx context.Context, payload model.BookPayload, cred model.Credentials) (model.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	customer, err := s.authorize(cred, createBookRoles, "You do not have permission to create a book")
	if err != nil {
		return model.Book{}, err
	}
	if payload.Title == "" || payload.Description == "" {
		return model.Book{}, errs.InvalidPayload("Ensure 'title' and 'description' are provided.")
	}
	if !payload.Genre.Valid() {
		return model.Book{}, errs.InvalidPayload("Unknown genre")
	}

	book := model.Book{
		ID:          s.nextID(ctx),
		Title:       payload.Title,
		Description: payload.Description,
		Status:      model.StatusAvailable,
		Genre:       payload.Genre,
		CreatedAt:   s.now(),
		CreatedBy:   customer.ID,
		History:     []model.BookHistory{},
		Comments:    []model.Comment{},
	}
	if err := s.repo.PutBook(ctx, book); err != nil {
		return model.Book{}, err
	}
	return book, nil
}

func (s *Service) AssignBook(ctx context.Context, payload model.AssignBookPayload, cred model.Credentials) (model.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.authorize(cred, assignBookRoles, "You do not have permission to assign a book"); err != nil {
		return model.Book{}, err
	}
	if _, ok := s.repo.GetCustomer(payload.AssignedTo); !ok {
		return model.Book{}, errs.InvalidPayload("Assigned customer does not exist")
	}
	book, ok := s.repo.GetBook(payload.BookID)
	if !ok {
		return model.Book{}, errs.NotFound("Book not found")
	}

	assignee := payload.AssignedTo
	book.AssignedTo = &assignee
	if err := s.repo.PutBook(ctx, book); err != nil {
		return model.Book{}, err
	}
	return book, nil
}

// UpdateBookStatus accepts any status from any state and needs no
// credentials.
func (s *Service) UpdateBookStatus(ctx context.Context, payload model.UpdateBookStatusPayload) (model.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	book, ok := s.repo.GetBook(payload.ID)
	if !ok {
		return model.Book{}, errs.NotFound("Book not found")
	}
	if !payload.Status.Valid() {
		return model.Book{}, errs.InvalidPayload("Unknown book status")
	}

	book.Status = payload.Status
	book.History = append(book.History, model.BookHistory{
		Status:    string(payload.Status),
		ChangedAt: s.now(),
	})
	if err := s.repo.PutBook(ctx, book); err != nil {
		return model.Book{}, err
	}
	return book, nil
}

// AddBookComment needs no credentials; only the commenter has to exist.
func (s *Service) AddBookComment(ctx context.Context, payload model.AddBookCommentPayload) (model.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	book, ok := s.repo.GetBook(payload.BookID)
	if !ok {
		return model.Book{}, errs.NotFound("Book not found")
	}
	if _, ok := s.repo.GetCustomer(payload.CustomerID); !ok {
		return model.Book{}, errs.InvalidPayload("Customer does not exist")
	}

	book.Comments = append(book.Comments, model.Comment{
		CustomerID:  payload.CustomerID,
		Content:     payload.Content,
		CommentedAt: s.now(),
	})
	if err := s.repo.PutBook(ctx, book); err != nil {
		return model.Book{}, err
	}
	return book, nil
}

func (s *Service) GetBooks(_ context.Context) ([]model.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	books := make([]model.Book, 0)
	for _, b := range s.repo.Books() {
		books = append(books, b)
	}
	if len(books) == 0 {
		return nil, errs.NotFound("No books found")
	}
	return books, nil
}

func (s *Service) GetBookByID(_ context.Context, id uint64) (model.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.repo.GetBook(id)
	if !ok {
		return model.Book{}, errs.NotFound("Book not found")
	}
	return b, nil
}

func (s *Service) CreateBookAsset(ctx context.Context, payload model.BookAssetPayload, cred model.Credentials) (model.BookAsset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.authorize(cred, createBookAssetRoles, "You do not have permission to create a book asset."); err != nil {
		return model.BookAsset{}, err
	}
	if payload.AssetName == "" || !payload.AssetType.Valid() {
		return model.BookAsset{}, errs.InvalidPayload("Ensure 'asset_name' and 'asset_type' are provided.")
	}
	if _, ok := s.repo.GetCustomer(payload.AssignedTo); !ok {
		return model.BookAsset{}, errs.InvalidPayload("Assigned customer does not exist")
	}

	asset := model.BookAsset{
		ID:               s.nextID(ctx),
		AssetName:        payload.AssetName,
		AssetType:        payload.AssetType,
		PurchaseDate:     payload.PurchaseDate,
		AssignedTo:       payload.AssignedTo,
		ApproxValue:      payload.ApproxValue,
		DepreciationRate: payload.DepreciationRate,
	}
	if err := s.repo.PutBookAsset(ctx, asset); err != nil {
		return model.BookAsset{}, err
	}
	return asset, nil
}

func (s *Service) GetBookAssets(_ context.Context) ([]model.BookAsset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	assets := make([]model.BookAsset, 0)
	for _, a := range s.repo.BookAssets() {
		assets = append(assets, a)
	}
	if len(assets) == 0 {
		return nil, errs.NotFound("No book assets found")
	}
	return assets, nil
}

func (s *Service) GetBookAssetByID(_ context.Context, id uint64) (model.BookAsset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.repo.GetBookAsset(id)
	if !ok {
		return model.BookAsset{}, errs.NotFound("Book asset not found")
	}
	return a, nil
}

func (s *Service) Stats(_ context.Context) model.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.Stats()
}
