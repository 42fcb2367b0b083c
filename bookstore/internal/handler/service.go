package handler

import (
	"context"

	"github.com/Astemirdum/bookstore-service/bookstore/internal/model"
	"github.com/Astemirdum/bookstore-service/bookstore/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type BookstoreService interface {
	CreateCustomer(ctx context.Context, payload model.CustomerPayload) (model.Customer, error)
	GetCustomers(ctx context.Context) ([]model.Customer, error)
	GetCustomerByID(ctx context.Context, id uint64) (model.Customer, error)

	CreateBook(ctx context.Context, payload model.BookPayload, cred model.Credentials) (model.Book, error)
	AssignBook(ctx context.Context, payload model.AssignBookPayload, cred model.Credentials) (model.Book, error)
	UpdateBookStatus(ctx context.Context, payload model.UpdateBookStatusPayload) (model.Book, error)
	AddBookComment(ctx context.Context, payload model.AddBookCommentPayload) (model.Book, error)
	GetBooks(ctx context.Context) ([]model.Book, error)
	GetBookByID(ctx context.Context, id uint64) (model.Book, error)

	CreateBookAsset(ctx context.Context, payload model.BookAssetPayload, cred model.Credentials) (model.BookAsset, error)
	GetBookAssets(ctx context.Context) ([]model.BookAsset, error)
	GetBookAssetByID(ctx context.Context, id uint64) (model.BookAsset, error)
	CalculateDepreciation(ctx context.Context, payload model.CalculateDepreciationPayload) (float64, error)

	Stats(ctx context.Context) model.Stats
}

var _ BookstoreService = (*service.Service)(nil)
