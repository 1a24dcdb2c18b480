package common

// Pagination bounds
const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// Pagination skip/limit query parameters
type Pagination struct {
	Skip  int `json:"skip" form:"skip" binding:"omitempty,min=0"`
	Limit int `json:"limit" form:"limit" binding:"omitempty,min=1"`
}

// Normalize fills defaults and clamps the limit
func (p Pagination) Normalize() Pagination {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}
