package machine

// Segment is a word-addressable block of memory. Length is tracked
// out-of-band here rather than as word 0 of the backing array, so that
// word 0 of segment zero can hold a real instruction without being
// shadowed by a length prefix.
type Segment struct {
	words []Word
}

func newSegment(length Word) *Segment {
	return &Segment{words: make([]Word, length)}
}

// Len reports the segment's logical length in words.
func (s *Segment) Len() Word { return Word(len(s.words)) }

// SegmentTable owns every live segment plus the LIFO pool of freed IDs.
// It is the sole owner of all segment memory: map allocates, unmap
// releases immediately, and replaceZero releases the segment it displaces,
// so resident memory tracks the live segment set.
type SegmentTable struct {
	segments []*Segment // segments[id], nil once freed
	free     []Word     // LIFO stack of ids available for reuse
	live     int        // number of currently-mapped ids, tracked apart from len(segments)
}

// NewSegmentTable builds a table with only segment zero mapped, as
// required at program start: segment 0 stays mapped from start until halt.
func NewSegmentTable(segmentZero []Word) *SegmentTable {
	t := &SegmentTable{
		segments: []*Segment{{words: segmentZero}},
		live:     1,
	}
	return t
}

// Map allocates a new zero-initialized segment of the given length and
// returns its id. It reuses the most recently freed id if one is
// available (LIFO), otherwise mints a fresh id one past the high-water
// mark.
func (t *SegmentTable) Map(length Word) Word {
	seg := newSegment(length)

	if n := len(t.free); n > 0 {
		id := t.free[n-1]
		t.free = t.free[:n-1]
		t.segments[id] = seg
		t.live++
		return id
	}

	id := Word(len(t.segments))
	t.segments = append(t.segments, seg)
	t.live++
	return id
}

// Unmap releases the segment at id and pushes id onto the free-id stack.
// Unmapping id 0 or an id that is not currently mapped is a SegmentFault.
func (t *SegmentTable) Unmap(id Word) error {
	if id == 0 {
		return newFault(SegmentFault, 0, "cannot unmap segment 0")
	}
	if !t.isMapped(id) {
		return newFault(SegmentFault, 0, "unmap of unmapped segment")
	}

	t.segments[id] = nil
	t.live--
	t.free = append(t.free, id)
	return nil
}

func (t *SegmentTable) isMapped(id Word) bool {
	return id < Word(len(t.segments)) && t.segments[id] != nil
}

// Get reads word offset of segment id.
func (t *SegmentTable) Get(id, offset Word) (Word, error) {
	seg, err := t.lookup(id)
	if err != nil {
		return 0, err
	}
	if offset >= seg.Len() {
		return 0, newFault(SegmentFault, 0, "offset out of bounds")
	}
	return seg.words[offset], nil
}

// Set writes word offset of segment id.
func (t *SegmentTable) Set(id, offset, word Word) error {
	seg, err := t.lookup(id)
	if err != nil {
		return err
	}
	if offset >= seg.Len() {
		return newFault(SegmentFault, 0, "offset out of bounds")
	}
	seg.words[offset] = word
	return nil
}

// Length reports the logical length in words of segment id.
func (t *SegmentTable) Length(id Word) (Word, error) {
	seg, err := t.lookup(id)
	if err != nil {
		return 0, err
	}
	return seg.Len(), nil
}

// ReplaceZero replaces segment zero with a deep copy of segment id,
// releasing the previous segment zero's memory. A no-op when id is 0.
func (t *SegmentTable) ReplaceZero(id Word) error {
	if id == 0 {
		return nil
	}

	src, err := t.lookup(id)
	if err != nil {
		return err
	}

	cp := make([]Word, len(src.words))
	copy(cp, src.words)
	t.segments[0] = &Segment{words: cp}
	return nil
}

func (t *SegmentTable) lookup(id Word) (*Segment, error) {
	if !t.isMapped(id) {
		return nil, newFault(SegmentFault, 0, "access to unmapped segment")
	}
	return t.segments[id], nil
}
