// Package models holds the persisted schema.
package models

import (
	"time"

	"github.com/Harshitjoshi133/DeepShiva/internal/common"

	"gorm.io/datatypes"
)

// Chat types
const (
	ChatTypeGeneral   = "general"
	ChatTypeTourism   = "tourism"
	ChatTypeCulture   = "culture"
	ChatTypeYoga      = "yoga"
	ChatTypeEmergency = "emergency"
)

// User chatbot user
type User struct {
	ID                uint                        `json:"id" gorm:"primaryKey"`
	Username          string                      `json:"username" gorm:"size:50;not null;uniqueIndex"`
	Email             string                      `json:"email" gorm:"size:100;not null;uniqueIndex"`
	FullName          string                      `json:"full_name,omitempty" gorm:"size:100"`
	PreferredLanguage string                      `json:"preferred_language" gorm:"size:10;default:en"`
	Location          string                      `json:"location,omitempty" gorm:"size:100"`
	Interests         datatypes.JSONSlice[string] `json:"interests,omitempty"`
	common.TimestampModel
	common.ActiveModel
}

// Chat conversation thread
type Chat struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	UserID   uint   `json:"user_id" gorm:"not null;index"`
	Title    string `json:"title,omitempty" gorm:"size:200"`
	ChatType string `json:"chat_type" gorm:"size:50;default:general;index"`
	common.TimestampModel
	common.ActiveModel

	User     *User         `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Messages []ChatMessage `json:"-"`
}

// ChatMessage one user message and the reply it got
type ChatMessage struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ChatID      uint      `json:"chat_id" gorm:"not null;index"`
	UserID      uint      `json:"user_id" gorm:"not null;index"`
	Message     string    `json:"message" gorm:"type:text;not null"`
	Response    string    `json:"response,omitempty" gorm:"type:text"`
	MessageType string    `json:"message_type" gorm:"size:20;default:text"` // text, image, voice
	Language    string    `json:"language" gorm:"size:10;default:en"`
	RequestID   string    `json:"request_id,omitempty" gorm:"size:16;index"`
	Model       string    `json:"model,omitempty" gorm:"size:100"`
	CreatedAt   time.Time `json:"created_at" gorm:"not null;autoCreateTime;index"`
}

// CulturalSite temple, heritage site or monument
type CulturalSite struct {
	ID                     uint                        `json:"id" gorm:"primaryKey"`
	Name                   string                      `json:"name" gorm:"size:200;not null"`
	Description            string                      `json:"description,omitempty" gorm:"type:text"`
	Location               string                      `json:"location" gorm:"size:200;not null"`
	District               string                      `json:"district" gorm:"size:100;not null;index"`
	Latitude               *float64                    `json:"latitude,omitempty"`
	Longitude              *float64                    `json:"longitude,omitempty"`
	Category               string                      `json:"category" gorm:"size:50;not null"`
	HistoricalSignificance string                      `json:"historical_significance,omitempty" gorm:"type:text"`
	VisitingHours          string                      `json:"visiting_hours,omitempty" gorm:"size:100"`
	EntryFee               string                      `json:"entry_fee,omitempty" gorm:"size:50"`
	BestTimeToVisit        string                      `json:"best_time_to_visit,omitempty" gorm:"size:100"`
	Images                 datatypes.JSONSlice[string] `json:"images,omitempty"`
	common.TimestampModel
	common.ActiveModel
}

// Artisan local craftsperson
type Artisan struct {
	ID              uint    `json:"id" gorm:"primaryKey"`
	Name            string  `json:"name" gorm:"size:100;not null"`
	Email           *string `json:"email,omitempty" gorm:"size:100;uniqueIndex"`
	Phone           string  `json:"phone,omitempty" gorm:"size:20"`
	Location        string  `json:"location" gorm:"size:200;not null"`
	District        string  `json:"district" gorm:"size:100;not null;index"`
	Specialization  string  `json:"specialization" gorm:"size:100;not null"`
	ExperienceYears *int    `json:"experience_years,omitempty"`
	Description     string  `json:"description,omitempty" gorm:"type:text"`
	ProfileImage    string  `json:"profile_image,omitempty" gorm:"size:500"`
	IsVerified      bool    `json:"is_verified" gorm:"not null;default:false"`
	common.TimestampModel
	common.ActiveModel

	Products []ArtisanProduct `json:"-"`
}

// Product availability
const (
	AvailabilityAvailable   = "available"
	AvailabilitySold        = "sold"
	AvailabilityCustomOrder = "custom_order"
)

// ArtisanProduct item made by an artisan
type ArtisanProduct struct {
	ID                 uint                        `json:"id" gorm:"primaryKey"`
	ArtisanID          uint                        `json:"artisan_id" gorm:"not null;index"`
	Name               string                      `json:"name" gorm:"size:200;not null"`
	Description        string                      `json:"description,omitempty" gorm:"type:text"`
	Category           string                      `json:"category" gorm:"size:100;not null"`
	Price              *float64                    `json:"price,omitempty"`
	Currency           string                      `json:"currency" gorm:"size:10;default:INR"`
	MaterialsUsed      string                      `json:"materials_used,omitempty" gorm:"type:text"`
	Dimensions         string                      `json:"dimensions,omitempty" gorm:"size:100"`
	Weight             string                      `json:"weight,omitempty" gorm:"size:50"`
	Images             datatypes.JSONSlice[string] `json:"images,omitempty"`
	AvailabilityStatus string                      `json:"availability_status" gorm:"size:20;default:available"`
	common.TimestampModel
	common.ActiveModel

	Artisan *Artisan `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// TourismPlace destination
type TourismPlace struct {
	ID                   uint                        `json:"id" gorm:"primaryKey"`
	Name                 string                      `json:"name" gorm:"size:200;not null"`
	Description          string                      `json:"description,omitempty" gorm:"type:text"`
	Location             string                      `json:"location" gorm:"size:200;not null"`
	District             string                      `json:"district" gorm:"size:100;not null;index"`
	Latitude             *float64                    `json:"latitude,omitempty"`
	Longitude            *float64                    `json:"longitude,omitempty"`
	Category             string                      `json:"category" gorm:"size:50;not null;index"` // hill_station, temple, adventure, wildlife
	Altitude             *int                        `json:"altitude,omitempty"`                     // meters
	BestTimeToVisit      string                      `json:"best_time_to_visit,omitempty" gorm:"size:100"`
	Activities           datatypes.JSONSlice[string] `json:"activities,omitempty"`
	AccommodationOptions datatypes.JSON              `json:"accommodation_options,omitempty"`
	Transportation       string                      `json:"transportation,omitempty" gorm:"type:text"`
	EntryFee             string                      `json:"entry_fee,omitempty" gorm:"size:50"`
	Images               datatypes.JSONSlice[string] `json:"images,omitempty"`
	WeatherInfo          datatypes.JSON              `json:"weather_info,omitempty"`
	CrowdLevel           string                      `json:"crowd_level" gorm:"size:20;default:moderate"` // low, moderate, high
	common.TimestampModel
	common.ActiveModel
}

// YogaPose pose reference
type YogaPose struct {
	ID              uint                        `json:"id" gorm:"primaryKey"`
	Name            string                      `json:"name" gorm:"size:100;not null;uniqueIndex"`
	SanskritName    string                      `json:"sanskrit_name,omitempty" gorm:"size:100"`
	Description     string                      `json:"description,omitempty" gorm:"type:text"`
	DifficultyLevel string                      `json:"difficulty_level" gorm:"size:20;not null"` // beginner, intermediate, advanced
	Category        string                      `json:"category" gorm:"size:50;not null"`
	Benefits        datatypes.JSONSlice[string] `json:"benefits,omitempty"`
	Instructions    datatypes.JSONSlice[string] `json:"instructions,omitempty"`
	Precautions     string                      `json:"precautions,omitempty" gorm:"type:text"`
	Duration        string                      `json:"duration,omitempty" gorm:"size:50"`
	ImageURL        string                      `json:"image_url,omitempty" gorm:"size:500"`
	CreatedAt       time.Time                   `json:"created_at" gorm:"not null;autoCreateTime"`
	common.ActiveModel
}

// EmergencyContact helpline or facility
type EmergencyContact struct {
	ID          uint     `json:"id" gorm:"primaryKey"`
	District    string   `json:"district" gorm:"size:100;not null;index"`
	ServiceType string   `json:"service_type" gorm:"size:50;not null"` // police, hospital, fire, tourist_helpline
	Name        string   `json:"name" gorm:"size:200;not null"`
	PhoneNumber string   `json:"phone_number" gorm:"size:20;not null"`
	Address     string   `json:"address,omitempty" gorm:"type:text"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Is24x7      bool     `json:"is_24x7" gorm:"column:is_24x7;not null;default:true"`
	common.TimestampModel
	common.ActiveModel
}

// DashboardMetric point-in-time dashboard figure
type DashboardMetric struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	MetricName     string         `json:"metric_name" gorm:"size:100;not null;index"`
	MetricValue    float64        `json:"metric_value" gorm:"not null"`
	MetricType     string         `json:"metric_type" gorm:"size:50;not null"` // count, percentage, rating
	Category       string         `json:"category" gorm:"size:50;not null"`
	DateRecorded   time.Time      `json:"date_recorded" gorm:"not null;autoCreateTime;index"`
	AdditionalData datatypes.JSON `json:"additional_data,omitempty"`
}

// TableName dashboard_metrics
func (DashboardMetric) TableName() string {
	return "dashboard_metrics"
}

// All every model, in migration order
func All() []any {
	return []any{
		&User{},
		&Chat{},
		&ChatMessage{},
		&CulturalSite{},
		&Artisan{},
		&ArtisanProduct{},
		&TourismPlace{},
		&YogaPose{},
		&EmergencyContact{},
		&DashboardMetric{},
	}
}
