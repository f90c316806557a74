package sensors

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/relabs-tech/mems_sensors/internal/motion"
)

var (
	ErrUnknownInstance      = errors.New("sensors: unknown instance")
	ErrFunctionNotSupported = errors.New("sensors: function not supported")
	ErrDuplicateInstance    = errors.New("sensors: instance already registered")
)

// Entry is one registered component.
type Entry struct {
	Name   string
	Sensor motion.Sensor
	// Functions holds the functions initialized through Registry.Init.
	Functions motion.Function
}

// Registry maps instance ids to sensors and serializes access to them.
type Registry struct {
	mu      sync.Mutex
	entries map[uint32]*Entry
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[uint32]*Entry)}
}

// Register adds a sensor under instance. Nothing is sent to the part.
func (r *Registry) Register(instance uint32, name string, s motion.Sensor) error {
	if s == nil {
		return fmt.Errorf("register %q: nil sensor", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[instance]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateInstance, instance)
	}
	r.entries[instance] = &Entry{Name: name, Sensor: s}
	return nil
}

// Unregister removes instance. Nothing is sent to the part.
func (r *Registry) Unregister(instance uint32) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := r.lookup(instance); err != nil {
		return err
	}
	delete(r.entries, instance)
	return nil
}

// Get returns a copy of the entry for instance.
func (r *Registry) Get(instance uint32) (Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, err := r.lookup(instance)
	if err != nil {
		return Entry{}, err
	}
	return *e, nil
}

// Instances returns the registered ids in ascending order.
func (r *Registry) Instances() []uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]uint32, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (r *Registry) lookup(instance uint32) (*Entry, error) {
	e, ok := r.entries[instance]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownInstance, instance)
	}
	return e, nil
}

// sensorFor returns the sensor of instance if function f was initialized.
func (r *Registry) sensorFor(instance uint32, f motion.Function) (motion.Sensor, error) {
	e, err := r.lookup(instance)
	if err != nil {
		return nil, err
	}
	if f == 0 || e.Functions&f != f {
		return nil, fmt.Errorf("%w: %s on %s (%d)", ErrFunctionNotSupported, f, e.Name, instance)
	}
	return e.Sensor, nil
}

// Do runs fn with exclusive access to the sensor of instance.
func (r *Registry) Do(instance uint32, fn func(motion.Sensor) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, err := r.lookup(instance)
	if err != nil {
		return err
	}
	return fn(e.Sensor)
}

// Init initializes the component and marks functions as usable. Every
// requested function must be in the component's capabilities.
func (r *Registry) Init(instance uint32, functions motion.Function) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, err := r.lookup(instance)
	if err != nil {
		return err
	}
	caps := e.Sensor.GetCapabilities().Functions()
	if functions == 0 || caps&functions != functions {
		return fmt.Errorf("%w: %s on %s (has %s)", ErrFunctionNotSupported, functions, e.Name, caps)
	}
	if e.Functions == 0 {
		if err := e.Sensor.Init(); err != nil {
			return fmt.Errorf("init %s: %w", e.Name, err)
		}
	}
	e.Functions |= functions
	return nil
}

// DeInit releases the component. Its functions must be initialized again
// before use.
func (r *Registry) DeInit(instance uint32) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, err := r.lookup(instance)
	if err != nil {
		return err
	}
	if err := e.Sensor.DeInit(); err != nil {
		return fmt.Errorf("deinit %s: %w", e.Name, err)
	}
	e.Functions = 0
	return nil
}

func (r *Registry) Enable(instance uint32, f motion.Function) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, err := r.sensorFor(instance, f)
	if err != nil {
		return err
	}
	return s.Enable()
}

func (r *Registry) Disable(instance uint32, f motion.Function) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, err := r.sensorFor(instance, f)
	if err != nil {
		return err
	}
	return s.Disable()
}

func (r *Registry) GetAxes(instance uint32, f motion.Function) (motion.Axes, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, err := r.sensorFor(instance, f)
	if err != nil {
		return motion.Axes{}, err
	}
	return s.GetAxes()
}

func (r *Registry) GetAxesRaw(instance uint32, f motion.Function) (motion.AxesRaw, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, err := r.sensorFor(instance, f)
	if err != nil {
		return motion.AxesRaw{}, err
	}
	return s.GetAxesRaw()
}

func (r *Registry) GetSensitivity(instance uint32, f motion.Function) (float32, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, err := r.sensorFor(instance, f)
	if err != nil {
		return 0, err
	}
	return s.GetSensitivity()
}

func (r *Registry) GetOutputDataRate(instance uint32, f motion.Function) (float32, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, err := r.sensorFor(instance, f)
	if err != nil {
		return 0, err
	}
	return s.GetOutputDataRate()
}

func (r *Registry) SetOutputDataRate(instance uint32, f motion.Function, hz float32) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, err := r.sensorFor(instance, f)
	if err != nil {
		return err
	}
	return s.SetOutputDataRate(hz)
}

func (r *Registry) GetFullScale(instance uint32, f motion.Function) (int32, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, err := r.sensorFor(instance, f)
	if err != nil {
		return 0, err
	}
	return s.GetFullScale()
}

func (r *Registry) SetFullScale(instance uint32, f motion.Function, fs int32) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, err := r.sensorFor(instance, f)
	if err != nil {
		return err
	}
	return s.SetFullScale(fs)
}

// GetCapabilities does not require Init.
func (r *Registry) GetCapabilities(instance uint32) (motion.Capabilities, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, err := r.lookup(instance)
	if err != nil {
		return motion.Capabilities{}, err
	}
	return e.Sensor.GetCapabilities(), nil
}

func (r *Registry) ReadRegister(instance uint32, reg uint8) (uint8, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, err := r.lookup(instance)
	if err != nil {
		return 0, err
	}
	return e.Sensor.ReadReg(reg)
}

func (r *Registry) WriteRegister(instance uint32, reg, val uint8) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, err := r.lookup(instance)
	if err != nil {
		return err
	}
	return e.Sensor.WriteReg(reg, val)
}

// GetEventStatus requires a component with event detection.
func (r *Registry) GetEventStatus(instance uint32, f motion.Function) (motion.EventStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, err := r.sensorFor(instance, f)
	if err != nil {
		return motion.EventStatus{}, err
	}
	ed, ok := s.(motion.EventDetector)
	if !ok {
		return motion.EventStatus{}, fmt.Errorf("%w: event detection on %d", ErrFunctionNotSupported, instance)
	}
	return ed.GetEventStatus()
}
