package common

import "gorm.io/gorm"

// ActiveOnly rows with is_active set
// db.Scopes(common.ActiveOnly()).Find(&sites)
func ActiveOnly() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("is_active = ?", true)
	}
}

// Paginate applies offset/limit from p
// db.Scopes(common.Paginate(p)).Find(&users)
func Paginate(p Pagination) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		p = p.Normalize()
		return db.Offset(p.Skip).Limit(p.Limit)
	}
}

// NewestFirst orders by created_at then id, newest first
func NewestFirst() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at DESC").Order("id DESC")
	}
}
