// Package alignment computes view-position adjustments and screen-copy
// regions for scrolling, ported from original_source/syntax/
// alignment.py. The original works in plain tuples; this package
// gives the same arithmetic the teacher's struct-and-constructor idiom
// (internal/renderer/viewport's ContentArea / ScrollState) instead.
package alignment

// Delta returns the view position change caused by an edit of
// quantity units (positive for insertion, negative for deletion) at
// offset within a reference space of total units, given visible units
// on screen and the view's current position.
func Delta(total, visible, position, offset, quantity int) int {
	switch {
	case quantity == 0:
		return position
	case quantity > 0:
		return Insert(total, visible, position, offset, quantity)
	default:
		return Delete(total, visible, position, offset, -quantity)
	}
}

// Insert calculates the view position necessary to keep the image
// stable after an insertion of quantity units at offset.
func Insert(total, visible, position, offset, quantity int) int {
	if position == 0 && total < visible {
		if total > visible {
			return max0(total - visible)
		}
		return position
	}

	if position+visible >= total-quantity {
		return max0(total - visible)
	}
	if offset < position {
		return position + quantity
	}
	return position
}

func max0(v int) int {
	if v > 0 {
		return v
	}
	return 0
}

// Delete calculates the view position necessary to keep the image
// stable after a deletion of quantity units at offset.
func Delete(total, visible, position, offset, quantity int) int {
	if position == 0 {
		return position
	}

	dEnd := offset + quantity
	maxP := total - visible
	if maxP < 0 {
		maxP = 0
	}

	if dEnd < position {
		position -= quantity
	} else if position+visible >= total-quantity {
		return maxP
	} else if offset >= position {
		// Deletion occurred at or after position: no change.
	} else {
		// Overlap: position snaps to the deletion's start.
		position = offset
	}

	if position > maxP {
		return maxP
	}
	return position
}

// ScrollResult is the outcome of a constrained relative scroll: the
// new absolute position, the quantity actually applied after clamping
// to the [0, total-visible] range, and the [start, stop) region left
// vacant by the scroll (to be filled by newly exposed content).
type ScrollResult struct {
	Position int
	Quantity int
	Vacant   [2]int
}

// Scroll constrains a relative scroll request of quantity units
// (positive forward, negative backward).
func Scroll(total, visible, position, quantity int) ScrollResult {
	switch {
	case quantity == 0:
		return ScrollResult{Position: position, Quantity: 0}
	case quantity > 0:
		return Forward(total, visible, position, quantity)
	default:
		return Backward(total, visible, position, -quantity)
	}
}

// Forward constrains a forward scroll so it never crosses the end of
// total minus visible.
func Forward(total, visible, position, quantity int) ScrollResult {
	start := max0(min(position+quantity, total-visible))
	change := max0(start - position)

	edge := min(total, start+visible)
	return ScrollResult{
		Position: start,
		Quantity: change,
		Vacant:   [2]int{edge - min(change, visible), edge},
	}
}

// Backward constrains a backward scroll so it never crosses zero.
func Backward(total, visible, position, quantity int) ScrollResult {
	start := max0(position - quantity)
	change := start - position

	return ScrollResult{
		Position: start,
		Quantity: change,
		Vacant:   [2]int{start, min(start-change, start+visible)},
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
