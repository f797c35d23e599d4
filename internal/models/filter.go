package models

import "time"

// CheckFilter параметры выборки чеков пользователя.
type CheckFilter struct {
	Search          string
	CreatedAtBefore *time.Time
	CreatedAtAfter  *time.Time
	TotalGte        *float64
	TotalLte        *float64
	PaymentType     PaymentType
	Ordering        string
	Page            int
	PageSize        int
}

// PaginatedChecks страница выборки чеков.
type PaginatedChecks struct {
	TotalCount int      `json:"total_count"`
	PageCount  int      `json:"page_count"`
	Next       *int     `json:"next"`
	Previous   *int     `json:"previous"`
	Results    []*Check `json:"results"`
}
