// Package store is the persistence collaborator behind the database, chat and
// seeding surfaces.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/Harshitjoshi133/DeepShiva/internal/common"
	"github.com/Harshitjoshi133/DeepShiva/internal/content"
	"github.com/Harshitjoshi133/DeepShiva/internal/models"
)

// ErrInvalidExchange missing username or message
var ErrInvalidExchange = errors.New("exchange requires a username and a message")

// Store persistence operations
type Store interface {
	Ping(ctx context.Context) error

	EnsureUser(ctx context.Context, username, language string) (*models.User, error)
	RecordExchange(ctx context.Context, x Exchange) (*models.ChatMessage, error)

	Overview(ctx context.Context) (*Overview, error)
	RecentActivity(ctx context.Context, limit int) ([]Activity, error)
	CountUsers(ctx context.Context) (int64, error)

	ListUsers(ctx context.Context, p common.Pagination) ([]models.User, error)
	ListCulturalSites(ctx context.Context, f Filter, p common.Pagination) ([]models.CulturalSite, error)
	ListArtisans(ctx context.Context, f Filter, p common.Pagination) ([]models.Artisan, error)
	ListArtisanProducts(ctx context.Context, f Filter, p common.Pagination) ([]models.ArtisanProduct, error)
	ListTourismPlaces(ctx context.Context, f Filter, p common.Pagination) ([]models.TourismPlace, error)
	ListYogaPoses(ctx context.Context, f Filter, p common.Pagination) ([]models.YogaPose, error)
	ListEmergencyContacts(ctx context.Context, f Filter, p common.Pagination) ([]models.EmergencyContact, error)

	SnapshotDashboardMetrics(ctx context.Context, at time.Time) (int, error)
	ListDashboardMetrics(ctx context.Context, category string, p common.Pagination) ([]models.DashboardMetric, error)

	SeedCatalog(ctx context.Context, c *content.Catalog) (SeedResult, error)
}

// Filter optional equality filters; fields a table lacks are ignored
type Filter struct {
	District string `form:"district"`
	Category string `form:"category"`
}

// Exchange one chat turn to persist
type Exchange struct {
	Username  string
	Language  string
	ChatType  string
	Message   string
	Response  string
	Model     string
	RequestID string
}

// Activity recent message summary
type Activity struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id"`
	ChatID      uint      `json:"chat_id"`
	Message     string    `json:"message"`
	MessageType string    `json:"message_type"`
	Language    string    `json:"language"`
	CreatedAt   time.Time `json:"created_at"`
}

// Overview dashboard statistics
type Overview struct {
	Users     UserStats      `json:"users"`
	Chats     ChatStats      `json:"chats"`
	Culture   CultureStats   `json:"culture"`
	Tourism   TourismStats   `json:"tourism"`
	Yoga      YogaStats      `json:"yoga"`
	Emergency EmergencyStats `json:"emergency"`
}

type UserStats struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Inactive int64 `json:"inactive"`
}

type ChatStats struct {
	Total    int64            `json:"total"`
	Active   int64            `json:"active"`
	Messages int64            `json:"messages"`
	Types    map[string]int64 `json:"types"`
}

type ArtisanStats struct {
	Total    int64 `json:"total"`
	Verified int64 `json:"verified"`
	Pending  int64 `json:"pending"`
}

type CultureStats struct {
	Sites    int64        `json:"sites"`
	Artisans ArtisanStats `json:"artisans"`
	Products int64        `json:"products"`
}

type TourismStats struct {
	Places     int64            `json:"places"`
	Categories map[string]int64 `json:"categories"`
}

type YogaStats struct {
	Poses int64 `json:"poses"`
}

type EmergencyStats struct {
	Contacts int64 `json:"contacts"`
}

// SeedResult rows created by SeedCatalog
type SeedResult struct {
	YogaPoses         int `json:"yoga_poses"`
	EmergencyContacts int `json:"emergency_contacts"`
}
