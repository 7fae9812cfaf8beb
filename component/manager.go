package component

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/wippyai/codec-dispatch/dispatch"
	"github.com/wippyai/codec-dispatch/errors"
)

type registered struct {
	def      Definition
	registry *dispatch.Registry
	open     int
}

// Manager registers component definitions and owns their open instances.
// Thread-safe.
type Manager struct {
	components map[string]*registered
	instances  *HandleTable[*Instance]
	observers  []Observer
	mu         sync.RWMutex
	obsMu      sync.RWMutex
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{
		components: make(map[string]*registered),
		instances:  NewHandleTable[*Instance](),
	}
}

// Register compiles def's table and makes it available to Open.
func (m *Manager) Register(def Definition) error {
	if def.Name == "" {
		return errors.InvalidInput(errors.PhaseHost, "component name cannot be empty")
	}
	if def.New == nil {
		return errors.InvalidInput(errors.PhaseHost, "component "+def.Name+" has no constructor")
	}

	reg, err := dispatch.Compile(def.Description)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.components[def.Name]; exists {
		return errors.New(errors.PhaseHost, errors.KindRegistration).
			Entry(def.Name).
			Detail("already registered").
			Code(errors.CodeComponentAlreadyRegistered).
			Build()
	}
	if def.Options.Name == "" {
		def.Options.Name = def.Name
	}
	m.components[def.Name] = &registered{def: def, registry: reg}

	Logger().Debug("component registered",
		zap.String("component", def.Name),
		zap.Int("ranges", len(reg.Ranges())))
	return nil
}

// Unregister removes a definition that has no open instances.
func (m *Manager) Unregister(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	comp, ok := m.components[name]
	if !ok {
		return errors.New(errors.PhaseHost, errors.KindRegistration).
			Entry(name).
			Detail("not registered").
			Code(errors.CodeInvalidComponentID).
			Build()
	}
	if comp.open > 0 {
		return errors.New(errors.PhaseHost, errors.KindRegistration).
			Entry(name).
			Detail("%d instances open", comp.open).
			Code(errors.CodeValidInstancesExist).
			Build()
	}
	delete(m.components, name)
	return nil
}

// Components returns the registered component names, sorted.
func (m *Manager) Components() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.components))
	for name := range m.components {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Registry returns the compiled registry of a registered component.
func (m *Manager) Registry(name string) (*dispatch.Registry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	comp, ok := m.components[name]
	if !ok {
		return nil, false
	}
	return comp.registry, true
}

// Open creates an instance of the named component and dispatches its Open
// selector. The instance is released again if Open fails.
func (m *Manager) Open(ctx context.Context, name string) (Handle, error) {
	m.mu.RLock()
	comp, ok := m.components[name]
	m.mu.RUnlock()
	if !ok {
		return 0, errors.NotFound(errors.PhaseHost, "component "+name, errors.CodeInvalidComponentID)
	}

	inst := &Instance{name: name}
	impl, err := comp.def.New(inst)
	if err != nil {
		return 0, errors.New(errors.PhaseHost, errors.KindInstantiation).
			Entry(name).
			Detail("create handlers").
			Cause(err).
			Build()
	}
	table, err := dispatch.Bind(comp.registry, impl.Local, impl.Base)
	if err != nil {
		return 0, err
	}
	d, err := dispatch.New(table, comp.def.Options)
	if err != nil {
		return 0, err
	}
	inst.dispatcher = d

	m.mu.Lock()
	if m.components[name] != comp {
		m.mu.Unlock()
		return 0, errors.NotFound(errors.PhaseHost, "component "+name, errors.CodeInvalidComponentID)
	}
	h := m.instances.Insert(inst)
	if h == 0 {
		m.mu.Unlock()
		return 0, errors.New(errors.PhaseHost, errors.KindClosed).Detail("manager is shut down").Build()
	}
	inst.handle = h
	comp.open++
	m.mu.Unlock()

	if _, err := inst.Call(ctx, SelectOpen, dispatch.Args{uint64(h)}); err != nil && !errors.IsUnsupported(err) {
		m.release(h)
		return 0, errors.New(errors.PhaseHost, errors.KindInstantiation).
			Entry(name).
			Detail("open selector failed").
			Cause(err).
			Build()
	}

	m.notify(Event{Type: EventOpened, Handle: h, Component: name})
	Logger().Debug("instance opened", zap.String("component", name), zap.Uint32("handle", uint32(h)))
	return h, nil
}

// Instance returns the open instance behind h.
func (m *Manager) Instance(h Handle) (*Instance, bool) {
	return m.instances.Get(h)
}

// Instances returns the handles of all open instances.
func (m *Manager) Instances() []Handle {
	return m.instances.Handles()
}

// Call dispatches the host selector what on instance h.
func (m *Manager) Call(ctx context.Context, h Handle, what int32, args dispatch.Args) (dispatch.Result, error) {
	inst, ok := m.instances.Get(h)
	if !ok {
		return 0, errors.NotFound(errors.PhaseHost, "instance", errors.CodeBadComponentInstance)
	}
	return inst.Call(ctx, what, args)
}

// Close dispatches the Close selector of h and releases the instance.
// The handle is released even when Close fails.
func (m *Manager) Close(ctx context.Context, h Handle) error {
	inst, ok := m.instances.Get(h)
	if !ok {
		return errors.NotFound(errors.PhaseHost, "instance", errors.CodeBadComponentInstance)
	}

	_, err := inst.Call(ctx, SelectClose, dispatch.Args{uint64(h)})
	if errors.IsUnsupported(err) {
		err = nil
	}
	if !m.release(h) {
		return err
	}

	m.notify(Event{Type: EventClosed, Handle: h, Component: inst.name})
	Logger().Debug("instance closed", zap.String("component", inst.name), zap.Uint32("handle", uint32(h)))
	return err
}

// Shutdown stops accepting new instances, then closes every open one.
func (m *Manager) Shutdown(ctx context.Context) error {
	var errs error
	for _, h := range m.instances.Seal() {
		errs = multierr.Append(errs, m.Close(ctx, h))
	}
	m.instances.Close()
	return errs
}

// Subscribe adds an observer for instance lifecycle events.
func (m *Manager) Subscribe(o Observer) {
	m.obsMu.Lock()
	defer m.obsMu.Unlock()
	m.observers = append(m.observers, o)
}

func (m *Manager) release(h Handle) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	inst, ok := m.instances.Remove(h)
	if !ok {
		return false
	}
	if comp, ok := m.components[inst.name]; ok && comp.open > 0 {
		comp.open--
	}
	return true
}

func (m *Manager) notify(e Event) {
	m.obsMu.RLock()
	defer m.obsMu.RUnlock()
	for _, o := range m.observers {
		o.OnInstanceEvent(e)
	}
}
