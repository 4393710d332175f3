package table

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"
)

// View holds the interaction state of one mounted table page.
//
// The record set is replaced only by a completed fetch. Search, filter and
// sort changes bump generation counters; derived sequences are recomputed
// lazily and only when a generation they depend on moved.
type View struct {
	cfg Config

	mu       sync.Mutex
	fetcher  Fetcher
	mounted  bool
	loading  bool
	fetchSeq uint64
	cancel   context.CancelFunc
	done     chan struct{}
	loadedAt time.Time

	records []Record
	outcome LoadOutcome
	loadErr error

	search  string
	filters map[string]string
	sort    SortState
	page    int

	exportSorted bool

	dataGen  uint64
	queryGen uint64
	sortGen  uint64

	filtered    []Record
	filteredAt  [2]uint64
	sorted      []Record
	sortedAt    [3]uint64
	options     map[string][]string
	optionsAt   uint64
	filterRuns  int
	hasFiltered bool
	hasSorted   bool
	hasOptions  bool
}

// NewView creates an unmounted view for cfg.
func NewView(cfg Config) *View {
	filters := make(map[string]string, len(cfg.FilterKeys))
	for _, fk := range cfg.FilterKeys {
		filters[fk.Accessor] = ""
	}
	return &View{
		cfg:     cfg,
		filters: filters,
		records: []Record{},
	}
}

// Config returns the view's configuration.
func (v *View) Config() Config {
	return v.cfg
}

// Mount starts the single fetch for this view. Calling Mount on a mounted
// view does nothing. The fetch runs on ctx until it finishes or the view is
// unmounted.
func (v *View) Mount(ctx context.Context, f Fetcher) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.mounted {
		return
	}
	v.mounted = true
	v.fetcher = f
	v.startFetchLocked(ctx)
}

// Refresh refetches the record set, keeping search, filter, sort and page
// state. An in-flight fetch is cancelled and its result discarded.
func (v *View) Refresh(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.mounted {
		return ErrNotMounted
	}
	if v.cancel != nil {
		v.cancel()
	}
	v.startFetchLocked(ctx)
	return nil
}

func (v *View) startFetchLocked(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	v.fetchSeq++
	seq := v.fetchSeq
	done := make(chan struct{})
	v.cancel = cancel
	v.done = done
	v.loading = true
	f := v.fetcher

	go func() {
		defer close(done)
		defer cancel()
		res := Load(ctx, f, v.cfg.Endpoint, v.cfg.Normalize)
		v.finishFetch(seq, res)
	}()
}

func (v *View) finishFetch(seq uint64, res LoadResult) {
	v.mu.Lock()
	defer v.mu.Unlock()
	// Superseded or unmounted: discard.
	if !v.mounted || seq != v.fetchSeq {
		return
	}
	v.records = res.Records
	v.outcome = res.Outcome
	v.loadErr = res.Err
	v.loading = false
	v.loadedAt = time.Now()
	v.dataGen++
}

// Unmount cancels any in-flight fetch. A result arriving afterwards is
// dropped without touching view state.
func (v *View) Unmount() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.mounted {
		return
	}
	v.mounted = false
	v.loading = false
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
}

// Mounted reports whether the view is mounted.
func (v *View) Mounted() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.mounted
}

// Wait blocks until the current fetch finishes or ctx is done.
func (v *View) Wait(ctx context.Context) error {
	v.mu.Lock()
	done := v.done
	v.mu.Unlock()
	if done == nil {
		return ErrNotMounted
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Loading reports whether a fetch is in flight.
func (v *View) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

// SetSearch replaces the search text and resets to the first page.
func (v *View) SetSearch(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	text = strings.ToLower(text)
	if text == v.search {
		return
	}
	v.search = text
	v.queryGen++
	v.page = 0
}

// SetFilter selects value for a declared filter key and resets to the first
// page. Any "no filter" spelling is stored as the empty string.
func (v *View) SetFilter(key, value string) error {
	if !v.cfg.HasFilterKey(key) {
		return ErrUnknownFilterKey
	}
	if IsNoFilter(value) {
		value = ""
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.filters[key] == value {
		return nil
	}
	v.filters[key] = value
	v.queryGen++
	v.page = 0
	return nil
}

// ClearFilters resets all filters and the search text.
func (v *View) ClearFilters() {
	v.mu.Lock()
	defer v.mu.Unlock()
	for k := range v.filters {
		v.filters[k] = ""
	}
	v.search = ""
	v.queryGen++
	v.page = 0
}

// ToggleSort applies a header click on the column with the given accessor.
func (v *View) ToggleSort(accessor string) (SortState, error) {
	if _, ok := v.cfg.Column(accessor); !ok {
		return SortState{}, ErrUnknownColumn
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.sort = v.sort.Toggle(accessor)
	v.sortGen++
	return v.sort, nil
}

// Next advances one page. It is a no-op on the last page.
func (v *View) Next() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	n := len(v.sortedLocked())
	v.page = ClampPage(v.page, n, v.cfg.pageSize())
	if v.page >= PageCount(n, v.cfg.pageSize())-1 {
		return false
	}
	v.page++
	return true
}

// Prev goes back one page. It is a no-op on the first page.
func (v *View) Prev() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	n := len(v.sortedLocked())
	v.page = ClampPage(v.page, n, v.cfg.pageSize())
	if v.page == 0 {
		return false
	}
	v.page--
	return true
}

// GoTo jumps to pageIndex, clamped into range.
func (v *View) GoTo(pageIndex int) int {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.page = ClampPage(pageIndex, len(v.sortedLocked()), v.cfg.pageSize())
	return v.page
}

// Filtered returns the records passing the current search and filters, in
// fetch order.
func (v *View) Filtered() []Record {
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Clip(v.filteredLocked())
}

// SetExportFollowsSort makes exports use the active sort order even when the
// view's ExportSpec exports in fetch order.
func (v *View) SetExportFollowsSort(on bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.exportSorted = on
}

// ExportRecords returns the records an export should contain.
func (v *View) ExportRecords() []Record {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.cfg.Export.FollowSort || v.exportSorted {
		return slices.Clip(v.sortedLocked())
	}
	return slices.Clip(v.filteredLocked())
}

// FilterOptions returns the dropdown options per filter key, taken from the
// full record set.
func (v *View) FilterOptions() map[string][]string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return maps.Clone(v.optionsLocked())
}

// FilterRuns returns how many times the filter stage has executed.
func (v *View) FilterRuns() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.filterRuns
}

func (v *View) query() Query {
	return Query{Search: v.search, Mode: v.cfg.SearchMode, Filters: v.filters}
}

func (v *View) filteredLocked() []Record {
	key := [2]uint64{v.dataGen, v.queryGen}
	if v.hasFiltered && v.filteredAt == key {
		return v.filtered
	}
	v.filtered = Filter(v.records, v.query())
	v.filteredAt = key
	v.hasFiltered = true
	v.filterRuns++
	return v.filtered
}

func (v *View) sortedLocked() []Record {
	filtered := v.filteredLocked()
	key := [3]uint64{v.dataGen, v.queryGen, v.sortGen}
	if v.hasSorted && v.sortedAt == key {
		return v.sorted
	}
	v.sorted = Sort(filtered, v.sort)
	v.sortedAt = key
	v.hasSorted = true
	return v.sorted
}

func (v *View) optionsLocked() map[string][]string {
	if v.hasOptions && v.optionsAt == v.dataGen {
		return v.options
	}
	opts := make(map[string][]string, len(v.cfg.FilterKeys))
	for _, fk := range v.cfg.FilterKeys {
		opts[fk.Accessor] = UniqueValues(v.records, fk.Accessor)
	}
	v.options = opts
	v.optionsAt = v.dataGen
	v.hasOptions = true
	return opts
}

// Snapshot is a consistent read of everything a page render needs.
type Snapshot struct {
	Key           string
	Title         string
	Loading       bool
	Outcome       LoadOutcome
	LoadError     string
	LoadedAt      time.Time
	Search        string
	Filters       map[string]string
	FilterOptions map[string][]string
	Sort          SortState
	PageIndex     int
	PageCount     int
	PageSize      int
	Total         int
	FilteredCount int
	Rows          []Record
	HasPrev       bool
	HasNext       bool
}

// Empty reports whether the current page has no rows to show.
func (s Snapshot) Empty() bool {
	return len(s.Rows) == 0
}

// Snapshot derives the displayed page. The stored page index is clamped
// first, so a shrinking result set can never leave it out of range.
func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	size := v.cfg.pageSize()
	sorted := v.sortedLocked()
	n := len(sorted)
	v.page = ClampPage(v.page, n, size)
	pages := PageCount(n, size)

	snap := Snapshot{
		Key:           v.cfg.Key,
		Title:         v.cfg.Title,
		Loading:       v.loading,
		Outcome:       v.outcome,
		LoadedAt:      v.loadedAt,
		Search:        v.search,
		Filters:       maps.Clone(v.filters),
		FilterOptions: maps.Clone(v.optionsLocked()),
		Sort:          v.sort,
		PageIndex:     v.page,
		PageCount:     pages,
		PageSize:      size,
		Total:         len(v.records),
		FilteredCount: n,
		Rows:          Paginate(sorted, v.page, size),
		HasPrev:       v.page > 0,
		HasNext:       v.page < pages-1,
	}
	if v.loadErr != nil {
		snap.LoadError = v.loadErr.Error()
	}
	return snap
}
