package phrase

// Image is a view-local cached list of Phrases aligned to a View's
// visible rows, plus a parallel Whence list recording each phrase's
// horizontal seek state at the image's current pan offset, per spec
// §4.3. Every mutating operation maintains len(Phrases) == len(Whence).
//
// Grounded on original_source/elements/view.py's Fields cache (the
// upstream Refraction keeps exactly this pair of parallel lists); the
// Go shape follows internal/renderer/linecache.Cache's slice-of-rows
// convention.
type Image[S any] struct {
	Phrases []Phrase[S]
	Whence  []Whence[S]

	// Pan is the image's current horizontal cell offset: Whence[i]
	// records where Phrases[i] was last seeked to reach this offset.
	Pan int

	ctlsize, tabsize int
}

// Whence is a phrase's horizontal seek state within an Image: the
// position reached by seeking to the image's Pan, and the number of
// cells actually consumed reaching it (less than Pan when the phrase
// is shorter than the pan distance).
type Whence[S any] struct {
	Position Position
	Cells    int
}

// NewImage creates an empty Image using ctlsize/tabsize for any phrases
// it builds internally (e.g. via Update).
func NewImage[S any](ctlsize, tabsize int) *Image[S] {
	return &Image[S]{ctlsize: ctlsize, tabsize: tabsize}
}

// Len reports the number of phrases currently cached.
func (im *Image[S]) Len() int { return len(im.Phrases) }

func (im *Image[S]) whenceFor(p Phrase[S]) Whence[S] {
	pos, _ := p.SeekCells(Position{}, im.Pan)
	return Whence[S]{Position: pos, Cells: p.TellCells(pos)}
}

func (im *Image[S]) recomputeWhenceRange(start, stop int) {
	for i := start; i < stop && i < len(im.Phrases); i++ {
		im.Whence[i] = im.whenceFor(im.Phrases[i])
	}
}

// Prefix inserts phrases at the head of the image.
func (im *Image[S]) Prefix(phrases []Phrase[S]) {
	im.Phrases = append(append([]Phrase[S]{}, phrases...), im.Phrases...)
	newWhence := make([]Whence[S], len(phrases))
	im.Whence = append(newWhence, im.Whence...)
	im.recomputeWhenceRange(0, len(phrases))
}

// Suffix appends phrases at the tail of the image.
func (im *Image[S]) Suffix(phrases []Phrase[S]) {
	start := len(im.Phrases)
	im.Phrases = append(im.Phrases, phrases...)
	im.Whence = append(im.Whence, make([]Whence[S], len(phrases))...)
	im.recomputeWhenceRange(start, len(im.Phrases))
}

// Insert splices phrases into the image at row, pushing subsequent
// entries down.
func (im *Image[S]) Insert(row int, phrases []Phrase[S]) {
	if row < 0 {
		row = 0
	}
	if row > len(im.Phrases) {
		row = len(im.Phrases)
	}
	tailP := append([]Phrase[S]{}, im.Phrases[row:]...)
	tailW := append([]Whence[S]{}, im.Whence[row:]...)

	im.Phrases = append(im.Phrases[:row], phrases...)
	im.Phrases = append(im.Phrases, tailP...)

	im.Whence = append(im.Whence[:row], make([]Whence[S], len(phrases))...)
	im.Whence = append(im.Whence, tailW...)

	im.recomputeWhenceRange(row, row+len(phrases))
}

// Delete removes the rows [start, stop) from the image.
func (im *Image[S]) Delete(start, stop int) {
	if start < 0 {
		start = 0
	}
	if stop > len(im.Phrases) {
		stop = len(im.Phrases)
	}
	if start >= stop {
		return
	}
	im.Phrases = append(im.Phrases[:start], im.Phrases[stop:]...)
	im.Whence = append(im.Whence[:start], im.Whence[stop:]...)
}

// Update replaces the phrase at row and recomputes its Whence.
func (im *Image[S]) Update(row int, p Phrase[S]) {
	if row < 0 || row >= len(im.Phrases) {
		return
	}
	im.Phrases[row] = p
	im.Whence[row] = im.whenceFor(p)
}

// Truncate trims the image down to exactly n rows, padding with empty
// phrases if it currently has fewer.
func (im *Image[S]) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	switch {
	case len(im.Phrases) > n:
		im.Phrases = im.Phrases[:n]
		im.Whence = im.Whence[:n]
	case len(im.Phrases) < n:
		for len(im.Phrases) < n {
			im.Phrases = append(im.Phrases, Phrase[S]{})
			im.Whence = append(im.Whence, Whence[S]{})
		}
	}
}

// PanAbsolute sets the image's horizontal offset to cells and
// recomputes every phrase's Whence against it.
func (im *Image[S]) PanAbsolute(cells int) {
	if cells < 0 {
		cells = 0
	}
	im.Pan = cells
	im.recomputeWhenceRange(0, len(im.Phrases))
}

// PanRelative shifts the image's horizontal offset by delta cells.
func (im *Image[S]) PanRelative(delta int) {
	im.PanAbsolute(im.Pan + delta)
}
