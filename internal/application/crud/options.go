package crud

import "context"

// BeforeSaveFunc runs after validation and before the record is written.
// isNew is true on create.
type BeforeSaveFunc[T any] func(ctx context.Context, record *T, isNew bool) error

// AfterDeleteFunc runs inside the delete transaction once the row is gone.
type AfterDeleteFunc[T any] func(ctx context.Context, record *T) error

// Option configures a Service.
type Option[T any] func(*Service[T])

func WithBeforeSave[T any](fn BeforeSaveFunc[T]) Option[T] {
	return func(s *Service[T]) {
		s.beforeSave = append(s.beforeSave, fn)
	}
}

func WithAfterDelete[T any](fn AfterDeleteFunc[T]) Option[T] {
	return func(s *Service[T]) {
		s.afterDelete = append(s.afterDelete, fn)
	}
}
