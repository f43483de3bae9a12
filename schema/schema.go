package schema

import (
	"errors"
	"fmt"
	"io"
	"reflect"

	codec "github.com/oy3o/declcodec"
	"go.uber.org/zap"
)

var (
	// ErrDuplicateField indicates a field name that is empty or already declared.
	ErrDuplicateField = errors.New("schema: duplicate or empty field name")

	// ErrUnknownField indicates a Ref to a field that is not declared before
	// the referring field, or to a Rest field.
	ErrUnknownField = errors.New("schema: reference to unknown or later field")

	// ErrNotInteger indicates a length source that does not produce an integer.
	ErrNotInteger = errors.New("schema: length source is not an integer")

	// ErrArgumentType indicates an argument source whose type does not match
	// the argument type of the field's decoder.
	ErrArgumentType = errors.New("schema: argument source has the wrong type")
)

// Field is one declared field of a schema, in declaration order.
type Field struct {
	Name     string
	Kind     Kind
	Type     string  // Go type the field decodes to
	Length   *Source // nil unless Kind is an array kind
	Argument *Source // nil unless Kind takes an argument

	strategy Strategy
}

// Builder accumulates fields in declaration order.
type Builder struct {
	name   string
	fields []Field
	logger *zap.Logger
}

// New creates a builder for a record called name.
func New(name string) *Builder {
	return &Builder{name: name}
}

// Field appends a field decoded with s.
func (b *Builder) Field(name string, s Strategy) *Builder {
	b.fields = append(b.fields, Field{
		Name:     name,
		Kind:     s.kind,
		Type:     s.typeName,
		Length:   s.length,
		Argument: s.arg,
		strategy: s,
	})
	return b
}

// WithLogger traces each field decode at debug level. Schemas log nothing by default.
func (b *Builder) WithLogger(l *zap.Logger) *Builder {
	b.logger = l
	return b
}

// Build validates the declaration: names are unique, every Ref names an
// earlier decoded field, lengths are integers and arguments have the type
// their decoder expects.
func (b *Builder) Build() (*Schema, error) {
	seen := make(map[string]Field, len(b.fields))
	for _, f := range b.fields {
		if _, dup := seen[f.Name]; dup || f.Name == "" {
			return nil, fmt.Errorf("%w: %q in %s", ErrDuplicateField, f.Name, b.name)
		}
		if f.Length != nil {
			v, err := sourceZero(seen, *f.Length)
			if err != nil {
				return nil, fmt.Errorf("field %s.%s length: %w", b.name, f.Name, err)
			}
			if _, ok := toInt(v); !ok {
				return nil, fmt.Errorf("%w: %s.%s length %s", ErrNotInteger, b.name, f.Name, f.Length)
			}
		}
		if f.Argument != nil {
			v, err := sourceZero(seen, *f.Argument)
			if err != nil {
				return nil, fmt.Errorf("field %s.%s argument: %w", b.name, f.Name, err)
			}
			if !assignable(v, f.strategy.argType) {
				return nil, fmt.Errorf("%w: %s.%s wants %s, got %T", ErrArgumentType, b.name, f.Name, f.strategy.argType, v)
			}
		}
		seen[f.Name] = f
	}

	logger := b.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Schema{
		name:   b.name,
		fields: append([]Field(nil), b.fields...),
		logger: logger,
	}, nil
}

// MustBuild is like Build but panics on an invalid declaration.
func (b *Builder) MustBuild() *Schema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

// sourceZero returns a representative value for src: the literal itself, or
// the zero value of the referenced field's type.
func sourceZero(declared map[string]Field, src Source) (any, error) {
	if !src.IsRef() {
		return src.lit, nil
	}
	f, ok := declared[src.ref]
	if !ok || f.Kind == KindRest {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, src.ref)
	}
	return f.strategy.zero, nil
}

func assignable(v any, t reflect.Type) bool {
	if v == nil {
		return t.Kind() == reflect.Interface
	}
	return reflect.TypeOf(v).AssignableTo(t)
}

// Schema is a validated, ordered list of fields. It is immutable and safe
// for concurrent use.
type Schema struct {
	name   string
	fields []Field
	logger *zap.Logger
}

// Name returns the record name the schema was declared with.
func (s *Schema) Name() string { return s.name }

// Walk calls fn for every field in declaration order, stopping at the first error.
func (s *Schema) Walk(fn func(Field) error) error {
	for _, f := range s.fields {
		if err := fn(f); err != nil {
			return err
		}
	}
	return nil
}

// Decode decodes every field in order at the cursor. On success the cursor
// is advanced past the record; on error it is left untouched and the
// decoder's error is returned as is.
func (s *Schema) Decode(c *codec.Cursor) (*Record, error) {
	cur := c.Fork()
	rec := &Record{schema: s, values: make(map[string]any, len(s.fields))}

	for _, f := range s.fields {
		if f.Kind == KindRest {
			continue
		}

		var length int
		if f.Length != nil {
			n, ok := toInt(f.Length.resolve(rec.values))
			if !ok {
				return nil, codec.InvalidEncoding
			}
			length = n
		}
		var arg any
		if f.Argument != nil {
			arg = f.Argument.resolve(rec.values)
		}

		offset := cur.Offset()
		v, err := f.strategy.decode(cur, length, arg)
		if err != nil {
			s.logger.Debug("field decode failed",
				zap.String("schema", s.name),
				zap.String("field", f.Name),
				zap.Int("offset", offset),
				zap.Error(err))
			return nil, err
		}
		s.logger.Debug("field decoded",
			zap.String("schema", s.name),
			zap.String("field", f.Name),
			zap.Stringer("kind", f.Kind),
			zap.Int("offset", offset),
			zap.Int("size", cur.Offset()-offset))
		rec.values[f.Name] = v
	}

	rec.rest = codec.Bytes(cur.Remaining())
	for _, f := range s.fields {
		if f.Kind == KindRest {
			rec.values[f.Name] = rec.rest
		}
	}

	if _, err := c.Seek(int64(cur.Offset()), io.SeekStart); err != nil {
		return nil, err
	}
	return rec, nil
}

// Parse decodes a record from the head of buf, following the
// codec.Decodable contract: it returns the suffix of buf after the record.
func (s *Schema) Parse(buf []byte) (*Record, []byte, error) {
	c := codec.NewCursor(buf)
	rec, err := s.Decode(c)
	if err != nil {
		return nil, buf, err
	}
	return rec, c.Remaining(), nil
}

// Record holds the decoded values of one schema, by field name.
type Record struct {
	schema *Schema
	values map[string]any
	rest   codec.Bytes
}

// Schema returns the schema the record was decoded with.
func (r *Record) Schema() *Schema { return r.schema }

// Get returns the decoded value of a field.
func (r *Record) Get(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Rest returns the bytes that followed the record's decoded fields.
func (r *Record) Rest() codec.Bytes { return r.rest }

// As returns the decoded value of a field as a T.
func As[T any](r *Record, name string) (T, bool) {
	v, ok := r.values[name].(T)
	return v, ok
}
