package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Harshitjoshi133/DeepShiva/internal/common"
	"github.com/Harshitjoshi133/DeepShiva/internal/content"
	"github.com/Harshitjoshi133/DeepShiva/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	defaultActivityLimit = 10
	maxActivityLimit     = 100
	activityPreviewRunes = 100
	chatTitleRunes       = 50
	placeholderEmailHost = "users.deep-shiva.local"
)

// GormStore Store over gorm
type GormStore struct {
	db *gorm.DB
}

var _ Store = (*GormStore)(nil)

// NewGormStore wraps db
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// DB underlying handle
func (s *GormStore) DB() *gorm.DB {
	return s.db
}

// Ping checks connectivity
func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// EnsureUser finds the user by username, creating it on first sight
func (s *GormStore) EnsureUser(ctx context.Context, username, language string) (*models.User, error) {
	return ensureUser(s.db.WithContext(ctx), username, language)
}

func ensureUser(tx *gorm.DB, username, language string) (*models.User, error) {
	if language == "" {
		language = "en"
	}
	var user models.User
	err := tx.Where(models.User{Username: username}).
		Attrs(models.User{
			Email:             username + "@" + placeholderEmailHost,
			PreferredLanguage: language,
		}).
		FirstOrCreate(&user).Error
	if err != nil {
		return nil, fmt.Errorf("ensure user %q: %w", username, err)
	}
	return &user, nil
}

// RecordExchange stores a message and its reply on the user's active chat of
// the given type, opening one when needed.
func (s *GormStore) RecordExchange(ctx context.Context, x Exchange) (*models.ChatMessage, error) {
	if x.Username == "" || x.Message == "" {
		return nil, ErrInvalidExchange
	}
	if x.ChatType == "" {
		x.ChatType = models.ChatTypeGeneral
	}
	if x.Language == "" {
		x.Language = "en"
	}

	var msg models.ChatMessage
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := ensureUser(tx, x.Username, x.Language)
		if err != nil {
			return err
		}

		var chat models.Chat
		err = tx.Scopes(common.ActiveOnly()).
			Where("user_id = ? AND chat_type = ?", user.ID, x.ChatType).
			Order("id DESC").
			First(&chat).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			chat = models.Chat{UserID: user.ID, Title: truncateRunes(x.Message, chatTitleRunes), ChatType: x.ChatType}
			if err := tx.Create(&chat).Error; err != nil {
				return fmt.Errorf("create chat: %w", err)
			}
		case err != nil:
			return fmt.Errorf("find chat: %w", err)
		}

		msg = models.ChatMessage{
			ChatID:      chat.ID,
			UserID:      user.ID,
			Message:     x.Message,
			Response:    x.Response,
			MessageType: "text",
			Language:    x.Language,
			RequestID:   x.RequestID,
			Model:       x.Model,
		}
		if err := tx.Create(&msg).Error; err != nil {
			return fmt.Errorf("create chat message: %w", err)
		}
		return tx.Model(&chat).Update("updated_at", time.Now().UTC()).Error
	})
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// Overview dashboard statistics
func (s *GormStore) Overview(ctx context.Context) (*Overview, error) {
	db := s.db.WithContext(ctx)
	var (
		o   Overview
		err error
	)

	count := func(model any, dst *int64, scopes ...func(*gorm.DB) *gorm.DB) {
		if err != nil {
			return
		}
		err = db.Model(model).Scopes(scopes...).Count(dst).Error
	}
	verified := func(tx *gorm.DB) *gorm.DB { return tx.Where("is_verified = ?", true) }

	count(&models.User{}, &o.Users.Total)
	count(&models.User{}, &o.Users.Active, common.ActiveOnly())
	count(&models.Chat{}, &o.Chats.Total)
	count(&models.Chat{}, &o.Chats.Active, common.ActiveOnly())
	count(&models.ChatMessage{}, &o.Chats.Messages)
	count(&models.CulturalSite{}, &o.Culture.Sites, common.ActiveOnly())
	count(&models.Artisan{}, &o.Culture.Artisans.Total, common.ActiveOnly())
	count(&models.Artisan{}, &o.Culture.Artisans.Verified, common.ActiveOnly(), verified)
	count(&models.ArtisanProduct{}, &o.Culture.Products, common.ActiveOnly())
	count(&models.TourismPlace{}, &o.Tourism.Places, common.ActiveOnly())
	count(&models.YogaPose{}, &o.Yoga.Poses, common.ActiveOnly())
	count(&models.EmergencyContact{}, &o.Emergency.Contacts, common.ActiveOnly())
	if err != nil {
		return nil, fmt.Errorf("overview counts: %w", err)
	}

	o.Users.Inactive = o.Users.Total - o.Users.Active
	o.Culture.Artisans.Pending = o.Culture.Artisans.Total - o.Culture.Artisans.Verified

	if o.Chats.Types, err = groupCount(db.Model(&models.Chat{}), "chat_type"); err != nil {
		return nil, fmt.Errorf("chat types: %w", err)
	}
	if o.Tourism.Categories, err = groupCount(db.Model(&models.TourismPlace{}).Scopes(common.ActiveOnly()), "category"); err != nil {
		return nil, fmt.Errorf("tourism categories: %w", err)
	}
	return &o, nil
}

func groupCount(q *gorm.DB, column string) (map[string]int64, error) {
	var rows []struct {
		Name  string
		Total int64
	}
	err := q.Select(column + " AS name, COUNT(*) AS total").Group(column).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Name] = r.Total
	}
	return out, nil
}

// RecentActivity newest messages first; limit is clamped to 1..100
func (s *GormStore) RecentActivity(ctx context.Context, limit int) ([]Activity, error) {
	if limit < 1 {
		limit = defaultActivityLimit
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}

	var msgs []models.ChatMessage
	if err := s.db.WithContext(ctx).Scopes(common.NewestFirst()).Limit(limit).Find(&msgs).Error; err != nil {
		return nil, fmt.Errorf("recent activity: %w", err)
	}

	out := make([]Activity, 0, len(msgs))
	for _, m := range msgs {
		preview := m.Message
		if utf8.RuneCountInString(preview) > activityPreviewRunes {
			preview = truncateRunes(preview, activityPreviewRunes) + "..."
		}
		out = append(out, Activity{
			ID:          m.ID,
			UserID:      m.UserID,
			ChatID:      m.ChatID,
			Message:     preview,
			MessageType: m.MessageType,
			Language:    m.Language,
			CreatedAt:   m.CreatedAt,
		})
	}
	return out, nil
}

// CountUsers all users
func (s *GormStore) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.User{}).Count(&n).Error
	return n, err
}

// ListUsers every user, active or not
func (s *GormStore) ListUsers(ctx context.Context, p common.Pagination) ([]models.User, error) {
	return list[models.User](ctx, s.db, p)
}

func (s *GormStore) ListCulturalSites(ctx context.Context, f Filter, p common.Pagination) ([]models.CulturalSite, error) {
	return list[models.CulturalSite](ctx, s.db, p, common.ActiveOnly(), byDistrict(f), byCategory(f))
}

func (s *GormStore) ListArtisans(ctx context.Context, f Filter, p common.Pagination) ([]models.Artisan, error) {
	return list[models.Artisan](ctx, s.db, p, common.ActiveOnly(), byDistrict(f))
}

func (s *GormStore) ListArtisanProducts(ctx context.Context, f Filter, p common.Pagination) ([]models.ArtisanProduct, error) {
	return list[models.ArtisanProduct](ctx, s.db, p, common.ActiveOnly(), byCategory(f))
}

func (s *GormStore) ListTourismPlaces(ctx context.Context, f Filter, p common.Pagination) ([]models.TourismPlace, error) {
	return list[models.TourismPlace](ctx, s.db, p, common.ActiveOnly(), byDistrict(f), byCategory(f))
}

func (s *GormStore) ListYogaPoses(ctx context.Context, f Filter, p common.Pagination) ([]models.YogaPose, error) {
	return list[models.YogaPose](ctx, s.db, p, common.ActiveOnly(), byCategory(f))
}

func (s *GormStore) ListEmergencyContacts(ctx context.Context, f Filter, p common.Pagination) ([]models.EmergencyContact, error) {
	return list[models.EmergencyContact](ctx, s.db, p, common.ActiveOnly(), byDistrict(f))
}

func list[T any](ctx context.Context, db *gorm.DB, p common.Pagination, scopes ...func(*gorm.DB) *gorm.DB) ([]T, error) {
	out := make([]T, 0)
	err := db.WithContext(ctx).
		Scopes(scopes...).
		Scopes(common.Paginate(p)).
		Order("id").
		Find(&out).Error
	if err != nil {
		var zero T
		return nil, fmt.Errorf("list %T: %w", zero, err)
	}
	return out, nil
}

func byDistrict(f Filter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.District == "" {
			return db
		}
		return db.Where("LOWER(district) = ?", strings.ToLower(f.District))
	}
}

func byCategory(f Filter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.Category == "" {
			return db
		}
		return db.Where("LOWER(category) = ?", strings.ToLower(f.Category))
	}
}

// SnapshotDashboardMetrics replaces the metrics recorded on at's UTC day with
// fresh counts and returns how many were written.
func (s *GormStore) SnapshotDashboardMetrics(ctx context.Context, at time.Time) (int, error) {
	o, err := s.Overview(ctx)
	if err != nil {
		return 0, err
	}

	day := at.UTC().Truncate(24 * time.Hour)
	snapshot := []models.DashboardMetric{
		{MetricName: "Total Users", MetricValue: float64(o.Users.Total), MetricType: "count", Category: "users"},
		{MetricName: "Active Chats", MetricValue: float64(o.Chats.Active), MetricType: "count", Category: "chats"},
		{MetricName: "Cultural Sites", MetricValue: float64(o.Culture.Sites), MetricType: "count", Category: "culture"},
		{MetricName: "Tourism Places", MetricValue: float64(o.Tourism.Places), MetricType: "count", Category: "tourism"},
		{MetricName: "Registered Artisans", MetricValue: float64(o.Culture.Artisans.Total), MetricType: "count", Category: "culture"},
	}
	for i := range snapshot {
		snapshot[i].DateRecorded = at.UTC()
		snapshot[i].AdditionalData = datatypes.JSON(`{"source":"snapshot"}`)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("date_recorded >= ? AND date_recorded < ?", day, day.Add(24*time.Hour)).
			Delete(&models.DashboardMetric{}).Error; err != nil {
			return err
		}
		return tx.Create(&snapshot).Error
	})
	if err != nil {
		return 0, fmt.Errorf("snapshot dashboard metrics: %w", err)
	}
	return len(snapshot), nil
}

// ListDashboardMetrics newest first, optionally one category
func (s *GormStore) ListDashboardMetrics(ctx context.Context, category string, p common.Pagination) ([]models.DashboardMetric, error) {
	out := make([]models.DashboardMetric, 0)
	q := s.db.WithContext(ctx).Model(&models.DashboardMetric{})
	if category != "" {
		q = q.Where("category = ?", category)
	}
	err := q.Scopes(common.Paginate(p)).Order("date_recorded DESC").Order("id").Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list dashboard metrics: %w", err)
	}
	return out, nil
}

// SeedCatalog inserts catalog yoga poses and emergency contacts that are not
// present yet.
func (s *GormStore) SeedCatalog(ctx context.Context, c *content.Catalog) (SeedResult, error) {
	var res SeedResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, p := range c.YogaPoses {
			row := models.YogaPose{
				Name:            p.Name,
				SanskritName:    p.SanskritName,
				Description:     p.Description,
				DifficultyLevel: p.DifficultyLevel,
				Category:        p.Category,
				Benefits:        datatypes.NewJSONSlice(p.Benefits),
				Instructions:    datatypes.NewJSONSlice(p.Instructions),
				Precautions:     p.Precautions,
				Duration:        p.Duration,
				ImageURL:        p.ImageURL,
			}
			created, err := createIfMissing(tx, &row, "name = ?", p.Name)
			if err != nil {
				return fmt.Errorf("seed yoga pose %q: %w", p.Name, err)
			}
			if created {
				res.YogaPoses++
			}
		}

		for _, ec := range c.EmergencyContacts {
			row := models.EmergencyContact{
				District:    ec.District,
				ServiceType: ec.ServiceType,
				Name:        ec.Name,
				PhoneNumber: ec.PhoneNumber,
				Address:     ec.Address,
				Is24x7:      ec.Is24x7,
			}
			created, err := createIfMissing(tx, &row, "district = ? AND name = ?", ec.District, ec.Name)
			if err != nil {
				return fmt.Errorf("seed emergency contact %q: %w", ec.Name, err)
			}
			if created {
				res.EmergencyContacts++
			}
		}
		return nil
	})
	return res, err
}

func createIfMissing[T any](tx *gorm.DB, row *T, query string, args ...any) (bool, error) {
	var n int64
	if err := tx.Model(row).Where(query, args...).Count(&n).Error; err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	return true, tx.Create(row).Error
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
