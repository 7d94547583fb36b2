package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/specialistvlad/stimforge/internal/emit"
	"github.com/specialistvlad/stimforge/internal/model"
	"github.com/specialistvlad/stimforge/internal/registry"
)

// RecorderType is the component type registered by RecorderModule.
const RecorderType = "recorder"

// RecorderModule registers a component type whose writer sleeps, records
// when each call ran and appends one marker line per phase. It is used to
// observe how the generation pass schedules writers.
type RecorderModule struct {
	// Sleep is how long every init write takes.
	Sleep time.Duration
	// FailOn names components whose init write fails.
	FailOn map[string]bool
	// Targets restricts the component type. Empty means both targets.
	Targets []model.Target

	mu             sync.Mutex
	ExecutionTimes map[string]*ExecutionRecord
	active, peak   int
}

// NewRecorderModule creates a recorder whose writes take sleep.
func NewRecorderModule(sleep time.Duration) *RecorderModule {
	return &RecorderModule{
		Sleep:          sleep,
		FailOn:         map[string]bool{},
		ExecutionTimes: map[string]*ExecutionRecord{},
	}
}

// Register implements registry.Module.
func (m *RecorderModule) Register(r *registry.Registry) {
	r.Register(&registry.Component{
		Type:    RecorderType,
		Tooltip: "Records writer calls",
		New:     m.newDescriptor,
		Writer:  m,
	})
}

func (m *RecorderModule) newDescriptor(name string) (*model.Descriptor, error) {
	targets := m.Targets
	if len(targets) == 0 {
		targets = model.AllTargets
	}
	return model.NewBuilder(name, RecorderType).
		Targets(targets...).
		Libraries("core").
		Add(&model.Parameter{Name: "name", Type: model.ValTypeString, Value: model.Str(name)}).
		Build()
}

// Required implements registry.Writer.
func (m *RecorderModule) Required() []string { return []string{"name"} }

// Write implements registry.Writer.
func (m *RecorderModule) Write(ctx context.Context, req *registry.Request, sink emit.Sink) error {
	name := req.Descriptor.Name
	if req.Phase != emit.PhaseInit {
		sink.Append(fmt.Sprintf("%s@%s", name, req.Phase))
		return nil
	}

	m.mu.Lock()
	m.active++
	m.peak = max(m.peak, m.active)
	m.mu.Unlock()

	start := time.Now()
	select {
	case <-time.After(m.Sleep):
	case <-ctx.Done():
	}
	end := time.Now()

	m.mu.Lock()
	m.active--
	m.ExecutionTimes[name] = &ExecutionRecord{Start: start, End: end}
	m.mu.Unlock()

	if m.FailOn[name] {
		return fmt.Errorf("component '%s': recorder failure", name)
	}
	sink.Append(fmt.Sprintf("%s@%s", name, req.Phase))
	return nil
}

// Peak returns the highest number of init writes that ran at once.
func (m *RecorderModule) Peak() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.peak
}
