package attr

import (
	"slices"

	clruntime "github.com/wippyai/cl-runtime"
)

// Set is the decoded attribute snapshot of one object. It is immutable once
// built. Getters return the zero value of their type for attributes that are
// absent or failed; Has and Err tell the two cases apart from success.
type Set struct {
	values map[ParamName]Value
	errs   map[ParamName]error
	order  []ParamName
	kind   clruntime.ObjectKind
}

// Builder accumulates a Set. Not safe for concurrent use.
type Builder struct {
	set *Set
}

// NewBuilder starts an empty set for kind.
func NewBuilder(kind clruntime.ObjectKind) *Builder {
	return &Builder{set: &Set{
		kind:   kind,
		values: make(map[ParamName]Value),
		errs:   make(map[ParamName]error),
	}}
}

// Put records a decoded value.
func (b *Builder) Put(p ParamName, v Value) *Builder {
	b.track(p)
	delete(b.set.errs, p)
	b.set.values[p] = v
	return b
}

// Fail records why p has no value.
func (b *Builder) Fail(p ParamName, err error) *Builder {
	b.track(p)
	delete(b.set.values, p)
	b.set.errs[p] = err
	return b
}

func (b *Builder) track(p ParamName) {
	_, seen := b.set.values[p]
	_, failed := b.set.errs[p]
	if !seen && !failed {
		b.set.order = append(b.set.order, p)
	}
}

// Build returns the set. The builder must not be used afterwards.
func (b *Builder) Build() *Set {
	s := b.set
	b.set = nil
	return s
}

// Kind returns the resource kind the set describes.
func (s *Set) Kind() clruntime.ObjectKind {
	return s.kind
}

// Params returns every recorded attribute, successful or failed, in query order.
func (s *Set) Params() []ParamName {
	return slices.Clone(s.order)
}

// Len returns the number of successfully decoded attributes.
func (s *Set) Len() int {
	return len(s.values)
}

// Get returns the decoded value of p.
func (s *Set) Get(p ParamName) (Value, bool) {
	v, ok := s.values[p]
	return v, ok
}

// Has reports whether p decoded successfully.
func (s *Set) Has(p ParamName) bool {
	_, ok := s.values[p]
	return ok
}

// Err returns the query or decode failure recorded for p, or nil.
func (s *Set) Err(p ParamName) error {
	return s.errs[p]
}

// Failed returns the attributes that hold defaults because their query or
// decode failed, in query order.
func (s *Set) Failed() []ParamName {
	var out []ParamName
	for _, p := range s.order {
		if _, ok := s.errs[p]; ok {
			out = append(out, p)
		}
	}
	return out
}

func (s *Set) Uint32(p ParamName) uint32 {
	return s.values[p].Uint32()
}

func (s *Set) Int32(p ParamName) int32 {
	return int32(s.values[p].Int64())
}

func (s *Set) Uint64(p ParamName) uint64 {
	return s.values[p].Uint64()
}

func (s *Set) Bool(p ParamName) bool {
	return s.values[p].Bool()
}

func (s *Set) String(p ParamName) string {
	return s.values[p].Text()
}

func (s *Set) Strings(p ParamName) []string {
	return s.values[p].Strings()
}

func (s *Set) Fields(p ParamName) []uint64 {
	return s.values[p].Fields()
}

func (s *Set) Handle(p ParamName) clruntime.Handle {
	return s.values[p].Handle()
}

func (s *Set) Handles(p ParamName) []clruntime.Handle {
	return s.values[p].Handles()
}

func (s *Set) Bytes(p ParamName) []byte {
	return s.values[p].Bytes()
}
