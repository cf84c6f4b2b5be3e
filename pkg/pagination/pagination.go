package pagination

import "gorm.io/gorm"

// PerPage matches the page size used across every list view.
const PerPage = 15

type Meta struct {
	Total       int64 `json:"total"`
	PerPage     int   `json:"per_page"`
	CurrentPage int   `json:"current_page"`
	LastPage    int   `json:"last_page"`
}

// Paginate counts the filtered query, then fetches one page ordered by
// creation time descending. The query must already carry its Where clauses
// and preloads.
func Paginate(query *gorm.DB, page int, dest interface{}) (Meta, error) {
	if page < 1 {
		page = 1
	}

	session := query.Session(&gorm.Session{})

	var total int64
	if err := session.Count(&total).Error; err != nil {
		return Meta{}, err
	}

	lastPage := int((total + PerPage - 1) / PerPage)
	if lastPage < 1 {
		lastPage = 1
	}

	err := session.
		Order("created_at DESC").
		Offset((page - 1) * PerPage).
		Limit(PerPage).
		Find(dest).Error
	if err != nil {
		return Meta{}, err
	}

	return Meta{
		Total:       total,
		PerPage:     PerPage,
		CurrentPage: page,
		LastPage:    lastPage,
	}, nil
}
