package crud

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"reflect"

	"labmanager/internal/domain/resource"
	"labmanager/internal/shared/db"
	"labmanager/internal/shared/errors"
	"labmanager/internal/shared/i18n"
	"labmanager/internal/shared/logger"
	"labmanager/internal/shared/query"
	"labmanager/internal/shared/utils"
)

// fieldChecker is implemented by records with cross-field rules that struct
// tags cannot express.
type fieldChecker interface {
	CheckFields() []errors.FieldError
}

// Service runs the generic resource operations for one entity type.
type Service[T any] struct {
	desc     *resource.Descriptor
	repo     resource.Repository[T]
	tx       db.Transactor
	renderer Renderer
	logger   logger.Interface

	beforeSave  []BeforeSaveFunc[T]
	afterDelete []AfterDeleteFunc[T]
}

func NewService[T any](
	desc *resource.Descriptor,
	repo resource.Repository[T],
	tx db.Transactor,
	renderer Renderer,
	logger logger.Interface,
	opts ...Option[T],
) *Service[T] {
	s := &Service[T]{
		desc:     desc,
		repo:     repo,
		tx:       tx,
		renderer: renderer,
		logger:   logger.With("entity", desc.Name),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ Controller = (*Service[struct{}])(nil)

func (s *Service[T]) Descriptor() *resource.Descriptor {
	return s.desc
}

func (s *Service[T]) List(ctx context.Context, q query.ListQuery, restrict []Restriction) (*ListResult, error) {
	spec, err := s.listSpec(q, restrict)
	if err != nil {
		return nil, err
	}

	records, total, err := s.repo.List(ctx, spec)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []*T{}
	}

	return &ListResult{
		Items:    records,
		Total:    total,
		Page:     q.Page,
		PageSize: q.PageSize,
	}, nil
}

func (s *Service[T]) Get(ctx context.Context, rawKey []string, restrict []Restriction) (any, error) {
	key, err := resource.ParseKey(s.desc, rawKey)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, key, s.restrictions(restrict)...)
}

func (s *Service[T]) Create(ctx context.Context, payload []byte, restrict []Restriction) (any, error) {
	fields, err := decodeObject(payload)
	if err != nil {
		return nil, err
	}
	for _, name := range s.desc.GeneratedKeys() {
		delete(fields, name)
	}

	record := new(T)
	if err := overlay(record, fields); err != nil {
		return nil, err
	}
	if err := s.validate(record); err != nil {
		return nil, err
	}

	var key resource.Key
	err = s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.runBeforeSave(ctx, record, true); err != nil {
			return err
		}
		if err := s.repo.Create(ctx, record); err != nil {
			return err
		}
		if key, err = s.keyOf(record); err != nil {
			return err
		}
		return s.checkWithin(ctx, key, restrict)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("record created", "key", key.String())
	return s.repo.Get(ctx, key)
}

// Update overlays the payload on the stored record. Key columns in the payload
// are ignored.
func (s *Service[T]) Update(ctx context.Context, rawKey []string, payload []byte, restrict []Restriction) (any, error) {
	key, err := resource.ParseKey(s.desc, rawKey)
	if err != nil {
		return nil, err
	}
	fields, err := decodeObject(payload)
	if err != nil {
		return nil, err
	}
	for _, name := range s.desc.KeyNames() {
		delete(fields, name)
	}

	err = s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		record, err := s.repo.Get(ctx, key, s.restrictions(restrict)...)
		if err != nil {
			return err
		}
		if err := overlay(record, fields); err != nil {
			return err
		}
		if err := s.validate(record); err != nil {
			return err
		}
		if err := s.runBeforeSave(ctx, record, false); err != nil {
			return err
		}
		if err := s.repo.Save(ctx, record); err != nil {
			return err
		}
		return s.checkWithin(ctx, key, restrict)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("record updated", "key", key.String())
	return s.repo.Get(ctx, key)
}

func (s *Service[T]) Delete(ctx context.Context, rawKey []string, restrict []Restriction) error {
	key, err := resource.ParseKey(s.desc, rawKey)
	if err != nil {
		return err
	}

	err = s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		record, err := s.repo.Get(ctx, key, s.restrictions(restrict)...)
		if err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, key); err != nil {
			return err
		}
		for _, fn := range s.afterDelete {
			if err := fn(ctx, record); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Infow("record deleted", "key", key.String())
	return nil
}

// checkWithin fails with Forbidden when the freshly written record is not
// visible under restrict, rolling back the surrounding transaction.
func (s *Service[T]) checkWithin(ctx context.Context, key resource.Key, restrict []Restriction) error {
	scopes := s.restrictions(restrict)
	if len(scopes) == 0 {
		return nil
	}
	_, err := s.repo.Get(ctx, key, scopes...)
	if errors.IsNotFoundError(err) {
		s.logger.Warnw("write outside caller scope rejected", "key", key.String())
		return errors.NewForbiddenError(fmt.Sprintf("%s is outside your scope", s.desc.Name))
	}
	return err
}

// Export renders every matching record, ordered by key, as a spreadsheet.
func (s *Service[T]) Export(ctx context.Context, req ExportRequest) ([]byte, error) {
	spec := resource.ListSpec{SortColumn: s.desc.Key[0].Name}

	if req.Scope != "" || req.ScopeID != "" {
		name := req.Scope
		if name == "" {
			name = s.desc.DefaultScope
		}
		if name == "" {
			return nil, errors.NewInvalidQueryError(fmt.Sprintf("%s cannot be exported by scope", s.desc.Name))
		}
		sf, err := s.scopeFilter(name, req.ScopeID)
		if err != nil {
			return nil, err
		}
		spec.Scopes = append(spec.Scopes, sf)
	}
	spec.Scopes = append(spec.Scopes, s.restrictions(req.Restrict)...)

	records, _, err := s.repo.List(ctx, spec)
	if err != nil {
		s.logger.Errorw("export query failed", "error", err)
		return nil, errors.NewExportFailedError(s.desc.Name, err)
	}

	rows, err := resource.Rows(s.desc.Columns, records)
	if err != nil {
		s.logger.Errorw("export rows failed", "error", err)
		return nil, errors.NewExportFailedError(s.desc.Name, err)
	}

	header := make([]string, len(s.desc.Columns))
	for i, col := range s.desc.Columns {
		header[i] = i18n.Column(req.Lang, col.Field, col.Label)
	}

	data, err := s.renderer.Render(resource.Table{Name: s.desc.Name, Header: header, Rows: rows})
	if err != nil {
		s.logger.Errorw("export rendering failed", "error", err)
		return nil, errors.NewExportFailedError(s.desc.Name, err)
	}

	s.logger.Infow("records exported", "rows", len(rows), "bytes", len(data))
	return data, nil
}

// listSpec checks a caller query against the descriptor.
func (s *Service[T]) listSpec(q query.ListQuery, restrict []Restriction) (resource.ListSpec, error) {
	if err := q.PageFilter.Validate(); err != nil {
		return resource.ListSpec{}, err
	}
	if err := q.SortFilter.Validate(); err != nil {
		return resource.ListSpec{}, err
	}

	spec := resource.ListSpec{
		Search: q.Search,
		Desc:   q.IsDescending(),
		Offset: q.Offset(),
		Limit:  q.Limit(),
	}

	if q.SortBy != "" {
		if !s.desc.IsSortable(q.SortBy) {
			return resource.ListSpec{}, errors.NewInvalidQueryError(
				fmt.Sprintf("cannot sort %s by %s", s.desc.Name, q.SortBy))
		}
		spec.SortColumn = q.SortBy
	}

	if len(q.Filters) > 0 {
		spec.Filters = make(map[string]any, len(q.Filters))
	}
	for name, raw := range q.Filters {
		field, ok := s.desc.Filter(name)
		if !ok {
			return resource.ListSpec{}, errors.NewInvalidQueryError(
				fmt.Sprintf("cannot filter %s by %s", s.desc.Name, name))
		}
		v, err := field.Kind.Parse(raw)
		if err != nil {
			return resource.ListSpec{}, errors.NewInvalidQueryError(
				fmt.Sprintf("invalid %s", name), err.Error())
		}
		spec.Filters[name] = v
	}

	if q.Scope != "" || q.ScopeID != "" {
		if q.Scope == "" {
			return resource.ListSpec{}, errors.NewInvalidQueryError("scope_id requires scope")
		}
		sf, err := s.scopeFilter(q.Scope, q.ScopeID)
		if err != nil {
			return resource.ListSpec{}, err
		}
		spec.Scopes = append(spec.Scopes, sf)
	}
	spec.Scopes = append(spec.Scopes, s.restrictions(restrict)...)

	return spec, nil
}

func (s *Service[T]) scopeFilter(name, raw string) (resource.ScopeFilter, error) {
	scope, ok := s.desc.Scope(name)
	if !ok {
		return resource.ScopeFilter{}, errors.NewInvalidQueryError(
			fmt.Sprintf("%s has no %s scope", s.desc.Name, name))
	}
	if raw == "" {
		return resource.ScopeFilter{}, errors.NewInvalidQueryError("scope requires scope_id")
	}
	v, err := scope.Kind.Parse(raw)
	if err != nil {
		return resource.ScopeFilter{}, errors.NewInvalidQueryError("invalid scope_id", err.Error())
	}
	return resource.ScopeFilter{Scope: scope, Value: v}, nil
}

// restrictions keeps the enforced scopes this entity actually declares.
func (s *Service[T]) restrictions(restrict []Restriction) []resource.ScopeFilter {
	var out []resource.ScopeFilter
	for _, r := range restrict {
		if scope, ok := s.desc.Scope(r.Scope); ok {
			out = append(out, resource.ScopeFilter{Scope: scope, Value: r.Value})
		}
	}
	return out
}

func (s *Service[T]) validate(record *T) error {
	fields := utils.ValidateFields(record)
	if fc, ok := any(record).(fieldChecker); ok {
		fields = append(fields, fc.CheckFields()...)
	}
	if len(fields) > 0 {
		return errors.NewFieldValidationError(fields)
	}
	return nil
}

func (s *Service[T]) runBeforeSave(ctx context.Context, record *T, isNew bool) error {
	for _, fn := range s.beforeSave {
		if err := fn(ctx, record, isNew); err != nil {
			return err
		}
	}
	return nil
}

// keyOf reads the key of a stored record through its JSON form, whose field
// names match the key columns.
func (s *Service[T]) keyOf(record *T) (resource.Key, error) {
	doc, err := json.Marshal(record)
	if err != nil {
		return resource.Key{}, fmt.Errorf("failed to encode %s: %w", s.desc.Name, err)
	}
	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return resource.Key{}, fmt.Errorf("failed to decode %s: %w", s.desc.Name, err)
	}

	raw := make([]string, len(s.desc.Key))
	for i, k := range s.desc.Key {
		raw[i] = fmt.Sprint(fields[k.Name])
	}
	return resource.ParseKey(s.desc, raw)
}

// decodeObject parses a request body that must be a JSON object.
func decodeObject(payload []byte) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil || fields == nil {
		return nil, errors.NewValidationError("request body must be a JSON object")
	}
	return fields, nil
}

// overlay writes the given fields onto record, leaving others untouched.
func overlay(record any, fields map[string]json.RawMessage) error {
	if len(fields) == 0 {
		return nil
	}
	doc, err := json.Marshal(fields)
	if err != nil {
		return errors.NewValidationError("request body must be a JSON object")
	}
	if err := json.Unmarshal(doc, record); err != nil {
		var typeErr *json.UnmarshalTypeError
		if stderrors.As(err, &typeErr) {
			return errors.NewFieldValidationError([]errors.FieldError{{
				Field:   typeErr.Field,
				Message: fmt.Sprintf("%s must be %s", typeErr.Field, kindName(typeErr.Type.Kind())),
			}})
		}
		return errors.NewFieldValidationError([]errors.FieldError{{Message: err.Error()}})
	}
	return nil
}

func kindName(k reflect.Kind) string {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.Bool:
		return "a boolean"
	case reflect.String:
		return "a string"
	default:
		return "a valid " + k.String()
	}
}
