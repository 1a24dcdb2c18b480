package common

import "time"

// TimestampModel creation and update times
type TimestampModel struct {
	CreatedAt time.Time `json:"created_at" gorm:"not null;autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;autoUpdateTime"`
}

// ActiveModel soft on/off flag; inactive rows are hidden from listings
type ActiveModel struct {
	IsActive bool `json:"is_active" gorm:"not null;default:true;index"`
}

// Deactivate hides the record from listings
func (m *ActiveModel) Deactivate() {
	m.IsActive = false
}
