package text3d

import (
	"slices"

	"github.com/gogpu/text3d/fonts"
	"github.com/gogpu/text3d/glyphcache"
	"github.com/gogpu/text3d/mesh"
	"github.com/gogpu/text3d/shape"
)

// CycleStats summarizes one Update.
type CycleStats struct {
	// Cycle is the 1-based number of the update.
	Cycle uint64

	// Retried is the number of waiting blocks processed this cycle.
	Retried int

	// Changed is the number of changed blocks processed this cycle.
	Changed int

	// Committed is the number of blocks handed to the target.
	Committed int

	// Deferred is the number of blocks queued for the next cycle.
	Deferred int

	// Dropped is the number of waiting blocks removed before their retry.
	Dropped int

	// Instances is the total number of instances committed.
	Instances int
}

// blockQueue is an ordered set of block ids.
type blockQueue struct {
	ids []BlockID
	set map[BlockID]struct{}
}

func newBlockQueue() blockQueue {
	return blockQueue{set: make(map[BlockID]struct{})}
}

// push appends id unless it is already queued.
func (q *blockQueue) push(id BlockID) bool {
	if _, ok := q.set[id]; ok {
		return false
	}
	q.set[id] = struct{}{}
	q.ids = append(q.ids, id)
	return true
}

func (q *blockQueue) has(id BlockID) bool {
	_, ok := q.set[id]
	return ok
}

func (q *blockQueue) reset() {
	q.ids = q.ids[:0]
	clear(q.set)
}

// System lays out text blocks into glyph mesh instances.
//
// Blocks are processed in Update, never in Set. Blocks waiting for a font
// are processed before changed blocks, each at most once per Update.
//
// System is not safe for concurrent use.
type System struct {
	target   Target
	resolver fonts.Resolver
	shaper   shape.Shaper
	store    mesh.Store
	cache    *glyphcache.Cache
	mode     RenderMode
	onError  func(error)

	blocks  map[BlockID]TextBlock
	changed blockQueue

	// waiting is due this cycle, next is due next cycle. They swap at the
	// end of every Update.
	waiting blockQueue
	next    blockQueue

	cycle uint64
}

// New creates a System that commits blocks to target and resolves fonts
// through resolver.
func New(target Target, resolver fonts.Resolver, opts ...Option) *System {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	s := &System{
		target:   target,
		resolver: resolver,
		shaper:   o.shaper,
		store:    o.store,
		cache:    o.cache,
		mode:     o.mode,
		onError:  o.onError,
		blocks:   make(map[BlockID]TextBlock),
		changed:  newBlockQueue(),
		waiting:  newBlockQueue(),
		next:     newBlockQueue(),
	}
	if s.shaper == nil {
		s.shaper = shape.NewGoTextShaper()
	}
	if s.store == nil {
		s.store = mesh.NewArena()
	}
	if s.onError == nil {
		s.onError = func(err error) {
			Logger().Error("text3d: tessellation failed", "err", err)
		}
	}
	if s.cache == nil {
		s.cache = glyphcache.New(resolver, s.store,
			glyphcache.WithLoggerFunc(Logger),
			glyphcache.WithErrorHandler(s.onError),
			glyphcache.WithTolerance(o.tolerance),
		)
	}
	return s
}

// Set stores block under id and marks it changed. Blocks are processed in
// the order of their first change since the last Update.
func (s *System) Set(id BlockID, block TextBlock) {
	block.Sections = slices.Clone(block.Sections)
	s.blocks[id] = block
	s.changed.push(id)
}

// Remove forgets block id. It is dropped from the retry queues at its next
// turn. Children already committed to the target are left alone.
func (s *System) Remove(id BlockID) {
	delete(s.blocks, id)
}

// Block returns the block stored under id.
func (s *System) Block(id BlockID) (TextBlock, bool) {
	b, ok := s.blocks[id]
	return b, ok
}

// Waiting reports whether block id is queued for the next Update because a
// font was missing.
func (s *System) Waiting(id BlockID) bool {
	return s.waiting.has(id)
}

// Cache returns the glyph cache used by the system.
func (s *System) Cache() *glyphcache.Cache {
	return s.cache
}

// Store returns the mesh store used by the system.
func (s *System) Store() mesh.Store {
	return s.store
}

// SetRenderMode sets the mode of instances emitted from now on.
func (s *System) SetRenderMode(m RenderMode) {
	s.mode = m
}

// Update runs one cycle: it retries the blocks that were waiting for a font,
// then lays out the blocks changed since the last cycle. Blocks that still
// miss a font wait for the next cycle.
func (s *System) Update() CycleStats {
	s.cycle++
	st := CycleStats{Cycle: s.cycle}
	processed := make(map[BlockID]struct{}, len(s.waiting.ids)+len(s.changed.ids))

	for _, id := range s.waiting.ids {
		block, ok := s.blocks[id]
		if !ok {
			st.Dropped++
			continue
		}
		processed[id] = struct{}{}
		st.Retried++
		s.process(id, block, &st)
	}
	s.waiting.reset()

	for _, id := range s.changed.ids {
		if _, done := processed[id]; done {
			continue
		}
		block, ok := s.blocks[id]
		if !ok {
			continue
		}
		processed[id] = struct{}{}
		st.Changed++
		s.process(id, block, &st)
	}
	s.changed.reset()

	s.waiting, s.next = s.next, s.waiting

	if st.Committed > 0 {
		Logger().Info("text3d: cycle",
			"cycle", st.Cycle, "committed", st.Committed,
			"instances", st.Instances, "deferred", st.Deferred)
	}
	return st
}

// process lays out one block and either commits it or defers it.
func (s *System) process(id BlockID, block TextBlock, st *CycleStats) {
	out, err := s.layout(id, block)
	if err != nil {
		Logger().Debug("text3d: deferred", "block", id, "err", err)
		if s.next.push(id) {
			st.Deferred++
		}
		return
	}
	s.target.ReplaceChildren(id, out.children, out.size)
	st.Committed++
	st.Instances += len(out.children)
}
