package protocol

import (
	"reflect"
	"strconv"

	"github.com/gear6io/protoreg/pkg/errors"
	"github.com/rs/zerolog"
)

// Option configures a Builder
type Option func(*Builder)

// WithLogger sets the logger used by the builder and the registry it builds
func WithLogger(logger zerolog.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// Builder collects registrations before a Registry is built.
// It is meant to be used from a single goroutine.
type Builder struct {
	logger  zerolog.Logger
	entries map[ID]Registration
	types   map[reflect.Type]ID
	maxID   ID
	built   *Registry
}

// NewBuilder creates an empty builder
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		logger:  zerolog.Nop(),
		entries: make(map[ID]Registration),
		types:   make(map[reflect.Type]ID),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Register binds id to reg. The identifier and the message type must both be
// unused, and id must not exceed MaxID.
func (b *Builder) Register(id ID, reg Registration) error {
	if err := b.check(id, reg); err != nil {
		return err
	}
	b.add(id, reg)
	return nil
}

// RegisterAll registers every entry, or none of them when any entry would
// fail Register against the builder or against an earlier entry.
func (b *Builder) RegisterAll(entries []Entry) error {
	ids := make(map[ID]reflect.Type, len(entries))
	types := make(map[reflect.Type]ID, len(entries))
	for _, e := range entries {
		if err := b.check(e.ID, e.Registration); err != nil {
			return err
		}
		if existing, ok := ids[e.ID]; ok {
			return duplicateIdentifier(e.ID, existing, e.Registration.Type)
		}
		if other, ok := types[e.Registration.Type]; ok {
			return duplicateType(e.ID, other, e.Registration.Type)
		}
		ids[e.ID] = e.Registration.Type
		types[e.Registration.Type] = e.ID
	}

	for _, e := range entries {
		b.add(e.ID, e.Registration)
	}
	return nil
}

func (b *Builder) check(id ID, reg Registration) error {
	idStr := strconv.Itoa(int(id))

	if b.built != nil {
		return errors.Newf(ErrBuilderSealed, "cannot register protocol %d after Build", id).
			AddContext("id", idStr)
	}
	if id > MaxID {
		return errors.Newf(ErrIdentifierOutOfRange, "protocol id %d exceeds maximum %d", id, MaxID).
			AddContext("id", idStr)
	}
	if !reg.valid() {
		return errors.Newf(ErrInvalidRegistration, "registration for protocol %d needs a type, encoder and decoder", id).
			AddContext("id", idStr)
	}
	if existing, ok := b.entries[id]; ok {
		return duplicateIdentifier(id, existing.Type, reg.Type)
	}
	if other, ok := b.types[reg.Type]; ok {
		return duplicateType(id, other, reg.Type)
	}
	return nil
}

func (b *Builder) add(id ID, reg Registration) {
	if reg.Name == "" {
		reg.Name = typeName(reg.Type)
	}
	b.entries[id] = reg
	b.types[reg.Type] = id
	if id > b.maxID {
		b.maxID = id
	}

	b.logger.Debug().
		Uint16("id", uint16(id)).
		Str("name", reg.Name).
		Str("type", reg.Type.String()).
		Msg("Registered protocol")
}

func duplicateIdentifier(id ID, existing, t reflect.Type) error {
	return errors.Newf(ErrDuplicateIdentifier, "protocol id %d already registered to %s", id, existing).
		AddContext("id", strconv.Itoa(int(id))).
		AddContext("type", t.String())
}

func duplicateType(id, other ID, t reflect.Type) error {
	return errors.Newf(ErrDuplicateType, "type %s already registered as protocol %d", t, other).
		AddContext("id", strconv.Itoa(int(id))).
		AddContext("type", t.String())
}

// MustRegister is like Register but panics on failure
func (b *Builder) MustRegister(id ID, reg Registration) {
	if err := b.Register(id, reg); err != nil {
		panic(err)
	}
}

// Build seals the builder and returns the registry. Calling Build again
// returns the same registry.
func (b *Builder) Build() *Registry {
	if b.built != nil {
		return b.built
	}

	r := &Registry{
		logger: b.logger,
		types:  make(map[reflect.Type]ID, len(b.types)),
		names:  make(map[string]ID, len(b.entries)),
	}
	if len(b.entries) > 0 {
		r.table = make([]*Registration, int(b.maxID)+1)
	}
	for id, reg := range b.entries {
		r.table[id] = &reg
		r.types[reg.Type] = id
		if prev, ok := r.names[reg.Name]; !ok || id < prev {
			r.names[reg.Name] = id
		}
	}

	b.built = r
	b.logger.Debug().Int("protocols", len(b.entries)).Msg("Protocol registry built")
	return r
}

// Registry is an immutable identifier table. All methods are safe for
// concurrent use.
type Registry struct {
	logger zerolog.Logger
	table  []*Registration
	types  map[reflect.Type]ID
	names  map[string]ID
}

// IdentifierFor returns the identifier registered for t
func (r *Registry) IdentifierFor(t reflect.Type) (ID, error) {
	if t == nil {
		return 0, errors.Newf(ErrUnregisteredType, "nil message type")
	}
	id, ok := r.types[t]
	if !ok {
		return 0, errors.Newf(ErrUnregisteredType, "type %s is not registered", t).
			AddContext("type", t.String())
	}
	return id, nil
}

// IdentifierOf returns the identifier registered for the dynamic type of msg
func (r *Registry) IdentifierOf(msg any) (ID, error) {
	return r.IdentifierFor(reflect.TypeOf(msg))
}

// RegistrationFor returns the registration bound to id
func (r *Registry) RegistrationFor(id ID) (Registration, error) {
	reg := r.lookup(id)
	if reg == nil {
		return Registration{}, errors.Newf(ErrUnregisteredIdentifier, "protocol id %d is not registered", id).
			AddContext("id", strconv.Itoa(int(id)))
	}
	return *reg, nil
}

func (r *Registry) lookup(id ID) *Registration {
	if int(id) >= len(r.table) {
		return nil
	}
	return r.table[id]
}

// Registrations lists every registration in ascending identifier order
func (r *Registry) Registrations() []Entry {
	entries := make([]Entry, 0, len(r.types))
	for id, reg := range r.table {
		if reg != nil {
			entries = append(entries, Entry{ID: ID(id), Registration: *reg})
		}
	}
	return entries
}

// Len returns the number of registered protocols
func (r *Registry) Len() int {
	return len(r.types)
}

// Lookup finds a registration by name. When names collide the lowest
// identifier wins.
func (r *Registry) Lookup(name string) (Entry, bool) {
	id, ok := r.names[name]
	if !ok {
		return Entry{}, false
	}
	return Entry{ID: id, Registration: *r.table[id]}, true
}
