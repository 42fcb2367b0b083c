package model

import (
	"time"
)

type Role string

const (
	RoleAdmin        Role = "Admin"
	RoleStoreManager Role = "StoreManager"
	RoleCustomer     Role = "Customer"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStoreManager, RoleCustomer:
		return true
	}
	return false
}

type BookStatus string

const (
	StatusAvailable BookStatus = "Available"
	StatusSold      BookStatus = "Sold"
	StatusReserved  BookStatus = "Reserved"
)

func (s BookStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusSold, StatusReserved:
		return true
	}
	return false
}

type Genre string

const (
	GenreFiction    Genre = "Fiction"
	GenreNonFiction Genre = "NonFiction"
	GenreMystery    Genre = "Mystery"
	GenreScience    Genre = "Science"
	GenreBiography  Genre = "Biography"
	GenreFantasy    Genre = "Fantasy"
	GenreOther      Genre = "Other"
)

func (g Genre) Valid() bool {
	switch g {
	case GenreFiction, GenreNonFiction, GenreMystery, GenreScience, GenreBiography, GenreFantasy, GenreOther:
		return true
	}
	return false
}

type AssetType string

const (
	AssetHardcover AssetType = "Hardcover"
	AssetPaperback AssetType = "Paperback"
	AssetEbook     AssetType = "Ebook"
)

func (a AssetType) Valid() bool {
	switch a {
	case AssetHardcover, AssetPaperback, AssetEbook:
		return true
	}
	return false
}

type Customer struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type Book struct {
	ID          uint64        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Status      BookStatus    `json:"status"`
	Genre       Genre         `json:"genre"`
	CreatedAt   time.Time     `json:"createdAt"`
	CreatedBy   uint64        `json:"createdBy"`
	AssignedTo  *uint64       `json:"assignedTo"`
	History     []BookHistory `json:"history"`
	Comments    []Comment     `json:"comments"`
}

type BookHistory struct {
	Status    string    `json:"status"`
	ChangedAt time.Time `json:"changedAt"`
}

type Comment struct {
	CustomerID  uint64    `json:"customerId"`
	Content     string    `json:"content"`
	CommentedAt time.Time `json:"commentedAt"`
}

type BookAsset struct {
	ID               uint64    `json:"id"`
	AssetName        string    `json:"assetName"`
	AssetType        AssetType `json:"assetType"`
	PurchaseDate     time.Time `json:"purchaseDate"`
	AssignedTo       uint64    `json:"assignedTo"`
	ApproxValue      float64   `json:"approxValue"`
	DepreciationRate float64   `json:"depreciationRate"`
}

// Credentials are what a caller claims to be; see service.authenticate.
type Credentials struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

type CustomerPayload struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

type BookPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Genre       Genre  `json:"genre"`
}

type AssignBookPayload struct {
	BookID     uint64 `json:"bookId"`
	AssignedTo uint64 `json:"assignedTo"`
}

type UpdateBookStatusPayload struct {
	ID     uint64     `json:"id" validate:"required"`
	Status BookStatus `json:"status" validate:"required"`
}

type AddBookCommentPayload struct {
	BookID     uint64 `json:"bookId"`
	CustomerID uint64 `json:"customerId"`
	Content    string `json:"content"`
}

type BookAssetPayload struct {
	AssetName        string    `json:"assetName"`
	AssetType        AssetType `json:"assetType"`
	PurchaseDate     time.Time `json:"purchaseDate"`
	AssignedTo       uint64    `json:"assignedTo"`
	ApproxValue      float64   `json:"approxValue"`
	DepreciationRate float64   `json:"depreciationRate"`
}

type CalculateDepreciationPayload struct {
	BookAssetID uint64 `json:"bookAssetId"`
	Years       uint64 `json:"years"`
}

type Depreciation struct {
	BookAssetID uint64  `json:"bookAssetId"`
	Years       uint64  `json:"years"`
	Value       float64 `json:"value"`
}

type EventType string

const (
	EventBookCreated       EventType = "BOOK_CREATED"
	EventBookAssigned      EventType = "BOOK_ASSIGNED"
	EventBookStatusChanged EventType = "BOOK_STATUS_CHANGED"
	EventBookCommented     EventType = "BOOK_COMMENTED"
	EventBookAssetCreated  EventType = "BOOK_ASSET_CREATED"
)

// BookEvent is published after a mutation has been stored.
type BookEvent struct {
	Type       EventType  `json:"type"`
	EntityID   uint64     `json:"entityId"`
	CustomerID uint64     `json:"customerId,omitempty"`
	Status     BookStatus `json:"status,omitempty"`
	At         time.Time  `json:"at"`
}

type Stats struct {
	Customers  int              `json:"customers"`
	Books      int              `json:"books"`
	BookAssets int              `json:"bookAssets"`
	LastID     uint64           `json:"lastId"`
	Regions    map[string]int64 `json:"regionBytes"`
}
