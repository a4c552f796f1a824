package recorder

import (
	"fmt"
	"reflect"
	"sync"
)

// FieldType tags a component field's declared type. Spec §4.4 restricts
// these to the immutable scalars int/float/str/bool and recursive
// Optional/Union/Tuple thereof; represented here as a plain string tag
// (e.g. "int", "Optional[float]") rather than a parsed type tree, since the
// registry only ever round-trips the tag for replay bookkeeping and never
// interprets it.
type FieldType string

// ComponentKey is the (module, qualname) pair identifying a registered
// component schema.
type ComponentKey = [2]string

// ComponentRegistry is the Components subsystem of spec §4.4: user-defined
// typed schemas, live instances, and field-write tracking for replay.
// Registration and instance creation emit COMPONENT_REGISTER/
// COMPONENT_CREATE; Tracked[T].Set emits COMPONENT_UPDATE.
type ComponentRegistry struct {
	mu        sync.Mutex
	rec       *Recorder
	schemas   map[ComponentKey]map[string]FieldType
	types     map[ComponentKey]reflect.Type
	instances map[string]reflect.Value // addressable struct values, for replay reconstruction
}

// NewComponentRegistry creates a registry that emits through rec.
func NewComponentRegistry(rec *Recorder) *ComponentRegistry {
	return &ComponentRegistry{
		rec:       rec,
		schemas:   make(map[ComponentKey]map[string]FieldType),
		types:     make(map[ComponentKey]reflect.Type),
		instances: make(map[string]reflect.Value),
	}
}

// RegisterComponent declares a new component schema under key. T's zero
// value establishes the reflect.Type the replayer later uses to
// reconstruct instances it didn't itself create. Go has no runtime
// decorator hook, so this stands in for the source's class-decorator
// registration.
func RegisterComponent[T any](reg *ComponentRegistry, key ComponentKey, schema map[string]FieldType) error {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if _, exists := reg.schemas[key]; exists {
		return fmt.Errorf("%w: component %v", ErrAlreadyExists, key)
	}
	reg.schemas[key] = schema
	reg.types[key] = reflect.TypeOf((*T)(nil)).Elem()

	if reg.rec.Record() {
		reg.rec.Write(ComponentRegister, ComponentRegisterPayload{Key: key, Struct: fieldTypeStrings(schema)})
	}
	return nil
}

// Tracked wraps a component instance, emitting COMPONENT_UPDATE on every
// field write. Go has no property-interception hook equivalent to Python's
// setattr, so field writes go through Set instead of direct assignment.
type Tracked[T any] struct {
	name  string
	key   ComponentKey
	value T
	rec   *Recorder
}

// Value returns the current component value.
func (t *Tracked[T]) Value() T { return t.value }

// Set assigns value to the named exported field and emits COMPONENT_UPDATE.
func (t *Tracked[T]) Set(field string, value any) error {
	rv := reflect.ValueOf(&t.value).Elem().FieldByName(field)
	if !rv.IsValid() || !rv.CanSet() {
		return fmt.Errorf("component field %q not settable", field)
	}
	rv.Set(reflect.ValueOf(value).Convert(rv.Type()))

	if t.rec.Record() {
		t.rec.Write(ComponentUpdate, ComponentUpdatePayload{Name: t.name, Key: field, Value: value})
	}
	return nil
}

// CreateComponent instantiates a new component of a previously registered
// type under name.
func CreateComponent[T any](reg *ComponentRegistry, key ComponentKey, name string) (*Tracked[T], error) {
	reg.mu.Lock()
	if _, exists := reg.schemas[key]; !exists {
		reg.mu.Unlock()
		return nil, fmt.Errorf("component schema %v not registered", key)
	}
	if _, exists := reg.instances[name]; exists {
		reg.mu.Unlock()
		return nil, fmt.Errorf("%w: component instance %s", ErrAlreadyExists, name)
	}
	reg.mu.Unlock()

	t := &Tracked[T]{name: name, key: key, rec: reg.rec}

	reg.mu.Lock()
	reg.instances[name] = reflect.ValueOf(&t.value).Elem()
	reg.mu.Unlock()

	if reg.rec.Record() {
		reg.rec.Write(ComponentCreate, ComponentCreatePayload{Type: key, Name: name})
	}
	return t, nil
}

// RegisterComponentSchema implements ComponentReplayer: rebuilds a schema
// entry during replay without re-emitting.
func (reg *ComponentRegistry) RegisterComponentSchema(key ComponentKey, schema map[string]string) error {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	out := make(map[string]FieldType, len(schema))
	for k, v := range schema {
		out[k] = FieldType(v)
	}
	reg.schemas[key] = out
	return nil
}

// CreateComponentInstance implements ComponentReplayer: reconstructs an
// instance by the reflect.Type recorded at RegisterComponent time.
func (reg *ComponentRegistry) CreateComponentInstance(key ComponentKey, name string) error {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	typ, ok := reg.types[key]
	if !ok {
		return fmt.Errorf("component schema %v not registered", key)
	}
	reg.instances[name] = reflect.New(typ).Elem()
	return nil
}

// UpdateComponentField implements ComponentReplayer: applies a replayed
// field assignment directly, bypassing emission.
func (reg *ComponentRegistry) UpdateComponentField(name, key string, value any) error {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	inst, ok := reg.instances[name]
	if !ok {
		return fmt.Errorf("component instance %s not found", name)
	}
	field := inst.FieldByName(key)
	if !field.IsValid() || !field.CanSet() {
		return fmt.Errorf("component field %q not settable", key)
	}
	field.Set(reflect.ValueOf(value).Convert(field.Type()))
	return nil
}

func fieldTypeStrings(schema map[string]FieldType) map[string]string {
	out := make(map[string]string, len(schema))
	for k, v := range schema {
		out[k] = string(v)
	}
	return out
}
