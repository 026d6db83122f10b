package model

import (
	"github.com/docviewer/viewer/internal/result"
	"gorm.io/gorm"
)

const (
	ResultsPerPage    = 10
	MaxPagesNavigator = 5
	maxPageSize       = 100
)

// Paginate limits a query to the rows of page, counting from 1
func Paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		page = max(page, 1)
		if pageSize <= 0 {
			pageSize = ResultsPerPage
		}
		pageSize = min(pageSize, maxPageSize)
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}

// paginated returns one page of the rows matched by query in the given order, along with
// the count of all of them
func paginated[T any](query *gorm.DB, page, pageSize int, order string) (result.Paginated[[]T], error) {
	var (
		rows      []T
		totalRows int64
	)

	query = query.Session(&gorm.Session{})
	if res := query.Count(&totalRows); res.Error != nil {
		return result.Paginated[[]T]{}, res.Error
	}
	if res := query.Scopes(Paginate(page, pageSize)).Order(order).Find(&rows); res.Error != nil {
		return result.Paginated[[]T]{}, res.Error
	}
	return result.NewPaginated(pageSize, page, int(totalRows), rows), nil
}
