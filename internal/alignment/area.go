package alignment

// Area is a rectangular region of a frame's line buffer: an offset
// pair (top, left) and a size (lines, span), in the vocabulary
// original_source/syntax/alignment.py uses for its Area.__class__
// calls.
type Area struct {
	TopOffset  int
	LeftOffset int
	Lines      int
	Span       int
}

// CopyPlan is the result of a screen-copy alignment function: Src and
// Dst are the same size and name the untouched region's old and new
// position, for a device to replicate directly; Vacant is the
// complementary region the caller must repaint from source content,
// since nothing on screen already holds it.
type CopyPlan struct {
	Src    Area
	Dst    Area
	Vacant Area
}

// ScrollForward moves the view forward by quantity lines: content at
// rows [quantity, lines) shifts up to [0, lines-quantity), vacating
// the trailing quantity rows for newly revealed content.
func ScrollForward(area Area, quantity int) CopyPlan {
	kept := area.Lines - quantity
	return CopyPlan{
		Src:    Area{area.TopOffset + quantity, area.LeftOffset, kept, area.Span},
		Dst:    Area{area.TopOffset, area.LeftOffset, kept, area.Span},
		Vacant: Area{area.TopOffset + kept, area.LeftOffset, quantity, area.Span},
	}
}

// ScrollBackward moves the view backward by quantity lines: content
// at rows [0, lines-quantity) shifts down to [quantity, lines),
// vacating the leading quantity rows for newly revealed content.
func ScrollBackward(area Area, quantity int) CopyPlan {
	kept := area.Lines - quantity
	return CopyPlan{
		Src:    Area{area.TopOffset, area.LeftOffset, kept, area.Span},
		Dst:    Area{area.TopOffset + quantity, area.LeftOffset, kept, area.Span},
		Vacant: Area{area.TopOffset, area.LeftOffset, quantity, area.Span},
	}
}

// StartRelativeDelete moves the lines below stop up to start, used
// when deleting lines [start, stop) from a view anchored to its top:
// the trailing content shifts up to close the gap, vacating the tail.
func StartRelativeDelete(area Area, start, stop int) CopyPlan {
	kept := area.Lines - stop
	return CopyPlan{
		Src:    Area{area.TopOffset + stop, area.LeftOffset, kept, area.Span},
		Dst:    Area{area.TopOffset + start, area.LeftOffset, kept, area.Span},
		Vacant: Area{area.TopOffset + start + kept, area.LeftOffset, stop - start, area.Span},
	}
}

// StartRelativeInsert moves the lines from start onward down to stop,
// used when inserting lines [start, stop) into a view anchored to its
// top: the existing tail content shifts down, vacating the gap.
func StartRelativeInsert(area Area, start, stop int) CopyPlan {
	d := stop - start
	kept := (area.Lines - start) - d
	return CopyPlan{
		Src:    Area{area.TopOffset + start, area.LeftOffset, kept, area.Span},
		Dst:    Area{area.TopOffset + stop, area.LeftOffset, kept, area.Span},
		Vacant: Area{area.TopOffset + start, area.LeftOffset, d, area.Span},
	}
}

// StopRelativeInsert moves the lines above start up by stop-start,
// used when inserting lines into a view anchored to its tail: the
// existing leading content shifts up, vacating the gap just above
// where the new content appears.
func StopRelativeInsert(area Area, start, stop int) CopyPlan {
	d := stop - start
	kept := start - d
	return CopyPlan{
		Src:    Area{area.TopOffset + d, area.LeftOffset, kept, area.Span},
		Dst:    Area{area.TopOffset, area.LeftOffset, kept, area.Span},
		Vacant: Area{area.TopOffset + kept, area.LeftOffset, d, area.Span},
	}
}

// StopRelativeDelete moves the lines above start down next to stop,
// used when deleting lines from a view anchored to its tail: the
// leading content shifts down to close the gap, vacating the head.
func StopRelativeDelete(area Area, start, stop int) CopyPlan {
	d := stop - start
	return CopyPlan{
		Src:    Area{area.TopOffset, area.LeftOffset, start, area.Span},
		Dst:    Area{area.TopOffset + d, area.LeftOffset, start, area.Span},
		Vacant: Area{area.TopOffset, area.LeftOffset, d, area.Span},
	}
}
