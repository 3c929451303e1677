package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"labmanager/internal/domain/resource"
	"labmanager/internal/shared/db"
	apperrors "labmanager/internal/shared/errors"
	"labmanager/internal/shared/logger"
)

// ResourceRepository is a gorm-backed resource.Repository driven entirely by
// its descriptor. T must be the gorm model whose table the descriptor names.
type ResourceRepository[T any] struct {
	db     *gorm.DB
	desc   *resource.Descriptor
	txm    *db.TransactionManager
	logger logger.Interface
}

func NewResourceRepository[T any](gdb *gorm.DB, desc *resource.Descriptor, logger logger.Interface) *ResourceRepository[T] {
	return &ResourceRepository[T]{
		db:     gdb,
		desc:   desc,
		txm:    db.NewTransactionManager(gdb),
		logger: logger,
	}
}

var _ resource.Repository[struct{}] = (*ResourceRepository[struct{}])(nil)

func (r *ResourceRepository[T]) conn(ctx context.Context) *gorm.DB {
	return db.Conn(ctx, r.db)
}

func (r *ResourceRepository[T]) List(ctx context.Context, spec resource.ListSpec) ([]*T, int64, error) {
	var total int64
	if err := r.conn(ctx).Model(new(T)).Scopes(r.matching(spec)).Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count records", "entity", r.desc.Name, "error", err)
		return nil, 0, fmt.Errorf("failed to count %s: %w", r.desc.Name, err)
	}

	query := r.conn(ctx).Model(new(T)).Scopes(r.matching(spec), r.preload, r.ordering(spec))
	if spec.Limit > 0 {
		query = query.Scopes(db.Paginate(spec.Offset, spec.Limit))
	}

	var records []*T
	if err := query.Find(&records).Error; err != nil {
		r.logger.Errorw("failed to list records", "entity", r.desc.Name, "error", err)
		return nil, 0, fmt.Errorf("failed to list %s: %w", r.desc.Name, err)
	}
	return records, total, nil
}

func (r *ResourceRepository[T]) Get(ctx context.Context, key resource.Key, scopes ...resource.ScopeFilter) (*T, error) {
	var record T
	err := r.conn(ctx).Scopes(r.preload, scoped(scopes)).Where(key.Where()).Take(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("%s not found", r.desc.Name), key.String())
		}
		return nil, fmt.Errorf("failed to get %s: %w", r.desc.Name, err)
	}
	return &record, nil
}

func (r *ResourceRepository[T]) Create(ctx context.Context, record *T) error {
	if err := r.conn(ctx).Omit(clause.Associations).Create(record).Error; err != nil {
		return r.translate("create", err)
	}
	return nil
}

func (r *ResourceRepository[T]) Save(ctx context.Context, record *T) error {
	if err := r.conn(ctx).Omit(clause.Associations).Save(record).Error; err != nil {
		return r.translate("update", err)
	}
	return nil
}

// Delete removes the record and its cascading dependents in one transaction.
// Any restricting dependent row aborts the delete with a Conflict error.
func (r *ResourceRepository[T]) Delete(ctx context.Context, key resource.Key) error {
	return r.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		tx := r.conn(ctx)

		var count int64
		if err := tx.Model(new(T)).Where(key.Where()).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check %s: %w", r.desc.Name, err)
		}
		if count == 0 {
			return apperrors.NewNotFoundError(fmt.Sprintf("%s not found", r.desc.Name), key.String())
		}

		for _, dep := range r.desc.Dependents {
			if dep.Policy != resource.Restrict {
				continue
			}
			var refs int64
			if err := tx.Table(dep.Table).Where(dependentWhere(dep, key)).Count(&refs).Error; err != nil {
				return fmt.Errorf("failed to check %s references: %w", dep.Table, err)
			}
			if refs > 0 {
				return apperrors.NewConflictError(
					fmt.Sprintf("%s is still referenced by %s", r.desc.Name, dep.Table),
					fmt.Sprintf("%d dependent row(s)", refs))
			}
		}

		for _, dep := range r.desc.Dependents {
			if dep.Policy != resource.Cascade {
				continue
			}
			result := tx.Exec(cascadeSQL(tx, dep), key.Values()...)
			if result.Error != nil {
				return fmt.Errorf("failed to delete %s dependents: %w", dep.Table, result.Error)
			}
			r.logger.Debugw("cascaded delete", "entity", r.desc.Name, "table", dep.Table, "rows", result.RowsAffected)
		}

		result := tx.Where(key.Where()).Delete(new(T))
		if result.Error != nil {
			return r.translate("delete", result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.NewNotFoundError(fmt.Sprintf("%s not found", r.desc.Name), key.String())
		}
		return nil
	})
}

// matching applies search, equality filters and scope restrictions.
func (r *ResourceRepository[T]) matching(spec resource.ListSpec) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		tx = tx.Scopes(db.Search(spec.Search, r.desc.Searchable))

		names := make([]string, 0, len(spec.Filters))
		for name := range spec.Filters {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			tx = tx.Where(clause.Eq{Column: clause.Column{Name: name}, Value: spec.Filters[name]})
		}

		return tx.Scopes(scoped(spec.Scopes))
	}
}

// scoped keeps the rows belonging to every given owning context.
func scoped(scopes []resource.ScopeFilter) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		for _, sf := range scopes {
			if sf.Scope.Via == "" {
				tx = tx.Where(clause.Eq{Column: clause.Column{Name: sf.Scope.Column}, Value: sf.Value})
				continue
			}
			tx = tx.Where(clause.Expr{
				SQL:  "? IN (" + sf.Scope.Via + ")",
				Vars: []any{clause.Column{Name: sf.Scope.Column}, sf.Value},
			})
		}
		return tx
	}
}

func (r *ResourceRepository[T]) preload(tx *gorm.DB) *gorm.DB {
	for _, inc := range r.desc.Includes {
		tx = tx.Preload(inc)
	}
	return tx
}

// ordering sorts by the requested column, then by key so pages are stable.
func (r *ResourceRepository[T]) ordering(spec resource.ListSpec) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		column := spec.SortColumn
		if column == "" {
			column = r.desc.DefaultSort
		}
		if column != "" {
			tx = tx.Scopes(db.OrderBy(column, spec.Desc))
		}
		for _, k := range r.desc.Key {
			if k.Name != column {
				tx = tx.Scopes(db.OrderBy(k.Name, false))
			}
		}
		return tx
	}
}

func (r *ResourceRepository[T]) translate(op string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey) || apperrors.IsDuplicateError(err):
		return apperrors.NewConflictError(fmt.Sprintf("%s already exists", r.desc.Name))
	case errors.Is(err, gorm.ErrForeignKeyViolated) || apperrors.IsForeignKeyError(err):
		return apperrors.NewConflictError(fmt.Sprintf("%s references a missing or protected record", r.desc.Name))
	default:
		r.logger.Errorw("database operation failed", "entity", r.desc.Name, "op", op, "error", err)
		return fmt.Errorf("failed to %s %s: %w", op, r.desc.Name, err)
	}
}

func dependentWhere(dep resource.Dependent, key resource.Key) map[string]any {
	where := make(map[string]any, len(dep.Columns))
	for i, col := range dep.Columns {
		where[col] = key.Parts[i].Value
	}
	return where
}

func cascadeSQL(tx *gorm.DB, dep resource.Dependent) string {
	conds := make([]string, len(dep.Columns))
	for i, col := range dep.Columns {
		conds[i] = tx.Statement.Quote(col) + " = ?"
	}
	return "DELETE FROM " + tx.Statement.Quote(dep.Table) + " WHERE " + strings.Join(conds, " AND ")
}
