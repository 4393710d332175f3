package core

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/JonMunkholm/committees/internal/logging"
	"github.com/JonMunkholm/committees/internal/source"
	"github.com/JonMunkholm/committees/internal/table"
	"github.com/JonMunkholm/committees/internal/views"
	"github.com/google/uuid"
)

// DefaultMaxInstances caps live view instances when Options leaves it unset.
const DefaultMaxInstances = 1000

// Options tunes a Service. Zero values select the defaults.
type Options struct {
	MaxInstances        int
	ExportMaxConcurrent int
	ExportMaxWait       time.Duration

	// Limiter, when set, is used instead of a limiter built from
	// ExportMaxConcurrent and ExportMaxWait.
	Limiter *ExportLimiter
}

// Instance is one mounted view, usually one open browser page.
type Instance struct {
	ID      uuid.UUID
	View    *table.View
	Created time.Time

	lastSeen time.Time // guarded by Service.mu
}

// Key returns the key of the instance's view.
func (i *Instance) Key() string {
	return i.View.Config().Key
}

// Service owns the live view instances of a process.
type Service struct {
	fetcher      table.Fetcher
	writer       source.RecommendationWriter
	limiter      *ExportLimiter
	maxInstances int
	now          func() time.Time

	mu        sync.Mutex
	instances map[uuid.UUID]*Instance
}

// NewService creates a Service that loads every view through f. When f also
// implements source.RecommendationWriter, editable views accept writes.
func NewService(f table.Fetcher, opts Options) *Service {
	if opts.MaxInstances <= 0 {
		opts.MaxInstances = DefaultMaxInstances
	}
	limiter := opts.Limiter
	if limiter == nil {
		limiter = NewExportLimiter(opts.ExportMaxConcurrent, opts.ExportMaxWait)
	}
	s := &Service{
		fetcher:      f,
		limiter:      limiter,
		maxInstances: opts.MaxInstances,
		now:          time.Now,
		instances:    make(map[uuid.UUID]*Instance),
	}
	if w, ok := f.(source.RecommendationWriter); ok {
		s.writer = w
	}
	return s
}

// Views returns every registered view in navigation order.
func (s *Service) Views() []table.Config {
	return views.All()
}

// Mount creates an instance of viewKey and starts its fetch. The fetch is
// detached from ctx's cancellation because the instance outlives the request
// that created it; it stops when the instance is unmounted.
func (s *Service) Mount(ctx context.Context, viewKey string) (*Instance, error) {
	cfg, ok := views.Get(viewKey)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownView, viewKey)
	}

	now := s.now()
	inst := &Instance{
		ID:       uuid.New(),
		View:     table.NewView(cfg),
		Created:  now,
		lastSeen: now,
	}

	s.mu.Lock()
	var evicted *Instance
	if len(s.instances) >= s.maxInstances {
		evicted = s.oldestLocked()
		delete(s.instances, evicted.ID)
	}
	s.instances[inst.ID] = inst
	s.mu.Unlock()

	if evicted != nil {
		evicted.View.Unmount()
		logging.FromContext(ctx).Info("evicted view instance",
			"view", evicted.Key(),
			"instance", evicted.ID.String(),
			"max_instances", s.maxInstances,
		)
	}

	inst.View.Mount(s.viewContext(ctx, inst), s.fetcher)
	logging.FromContext(ctx).Debug("view mounted", "view", viewKey, "instance", inst.ID.String())
	return inst, nil
}

// MountAndWait mounts viewKey and blocks until its fetch has resolved.
func (s *Service) MountAndWait(ctx context.Context, viewKey string) (*Instance, error) {
	inst, err := s.Mount(ctx, viewKey)
	if err != nil {
		return nil, err
	}
	if err := inst.View.Wait(ctx); err != nil {
		s.remove(inst.ID)
		return nil, err
	}
	return inst, nil
}

func (s *Service) oldestLocked() *Instance {
	var oldest *Instance
	for _, inst := range s.instances {
		if oldest == nil || inst.lastSeen.Before(oldest.lastSeen) {
			oldest = inst
		}
	}
	return oldest
}

// viewContext returns the long-lived context an instance's fetches run on.
func (s *Service) viewContext(ctx context.Context, inst *Instance) context.Context {
	return logging.ForView(context.WithoutCancel(ctx), inst.Key(), inst.ID.String())
}

// Instance looks up a live instance and marks it as seen. An empty viewKey
// matches any view.
func (s *Service) Instance(viewKey, id string) (*Instance, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInstanceNotFound, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	inst, ok := s.instances[uid]
	if !ok || (viewKey != "" && inst.Key() != viewKey) {
		return nil, fmt.Errorf("%w: %s", ErrInstanceNotFound, id)
	}
	inst.lastSeen = s.now()
	return inst, nil
}

// Unmount tears down an instance. A fetch still in flight is cancelled and
// its result discarded.
func (s *Service) Unmount(viewKey, id string) error {
	inst, err := s.Instance(viewKey, id)
	if err != nil {
		return err
	}
	s.remove(inst.ID)
	return nil
}

func (s *Service) remove(id uuid.UUID) {
	s.mu.Lock()
	inst, ok := s.instances[id]
	delete(s.instances, id)
	s.mu.Unlock()

	if ok {
		inst.View.Unmount()
	}
}

// Refresh refetches an instance, keeping its interaction state.
func (s *Service) Refresh(ctx context.Context, inst *Instance) error {
	return inst.View.Refresh(s.viewContext(ctx, inst))
}

// Export renders the instance's filtered records in format to w. Rendering
// waits for a limiter slot first.
func (s *Service) Export(ctx context.Context, inst *Instance, format table.Format, w io.Writer) error {
	if err := s.limiter.Acquire(ctx); err != nil {
		return err
	}
	defer s.limiter.Release()

	cfg := inst.View.Config()
	records := inst.View.ExportRecords()
	logger := logging.WithFields(ctx, "view", cfg.Key, "format", string(format))

	start := time.Now()
	if err := table.Export(w, format, cfg, records); err != nil {
		logger.Error("export failed", "error", err)
		return err
	}

	logger.Info("export written",
		"rows", len(records),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// Recommend stores a reviewer recommendation for one application and then
// refetches the instance so the table shows the persisted value.
func (s *Service) Recommend(ctx context.Context, inst *Instance, applicationID, value string) error {
	cfg := inst.View.Config()
	if s.writer == nil || !editable(cfg) {
		return fmt.Errorf("%w: %s", ErrReadOnly, cfg.Key)
	}
	if applicationID == "" {
		return fmt.Errorf("%w: missing application id", views.ErrInvalidRecommendation)
	}
	if err := views.ValidateRecommendation(value); err != nil {
		return err
	}

	if err := s.writer.SetRecommendation(ctx, applicationID, value); err != nil {
		return fmt.Errorf("set recommendation for %s: %w", applicationID, err)
	}

	logging.FromContext(ctx).Info("recommendation saved",
		"view", cfg.Key,
		"application_id", applicationID,
		"recommendation", value,
	)
	return s.Refresh(ctx, inst)
}

func editable(cfg table.Config) bool {
	for _, col := range cfg.Columns {
		if col.Editor != nil {
			return true
		}
	}
	return false
}

// ReapIdle unmounts every instance not seen within ttl and returns how many
// were removed.
func (s *Service) ReapIdle(ttl time.Duration) int {
	cutoff := s.now().Add(-ttl)

	s.mu.Lock()
	var idle []*Instance
	for id, inst := range s.instances {
		if inst.lastSeen.Before(cutoff) {
			idle = append(idle, inst)
			delete(s.instances, id)
		}
	}
	s.mu.Unlock()

	for _, inst := range idle {
		inst.View.Unmount()
	}
	return len(idle)
}

// InstanceCount returns the number of live instances.
func (s *Service) InstanceCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.instances)
}

// ExportStatus returns the export limiter state for monitoring.
func (s *Service) ExportStatus() ExportLimiterStatus {
	return s.limiter.Status()
}

// WaitForExports blocks until in-flight exports finish or ctx is done.
func (s *Service) WaitForExports(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}

// Close unmounts every instance.
func (s *Service) Close() {
	s.mu.Lock()
	all := make([]*Instance, 0, len(s.instances))
	for _, inst := range s.instances {
		all = append(all, inst)
	}
	clear(s.instances)
	s.mu.Unlock()

	for _, inst := range all {
		inst.View.Unmount()
	}
}
