package db

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Paginate is a GORM scope applying offset/limit pagination.
//
// Example usage:
//
//	db.Model(&Faculty{}).Scopes(db.Paginate(0, 20)).Find(&items)
func Paginate(offset, limit int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(offset).Limit(limit)
	}
}

// Search is a GORM scope matching term with LIKE against any of the given columns.
// An empty term or column list leaves the query untouched.
func Search(term string, columns []string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" || len(columns) == 0 {
			return db
		}
		pattern := "%" + term + "%"
		exprs := make([]clause.Expression, 0, len(columns))
		for _, col := range columns {
			exprs = append(exprs, clause.Like{Column: clause.Column{Name: col}, Value: pattern})
		}
		return db.Where(clause.Or(exprs...))
	}
}

// OrderBy is a GORM scope ordering by a column already checked against an allow list.
func OrderBy(column string, desc bool) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: desc})
	}
}

