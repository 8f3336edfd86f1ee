// Package session implements spec §4.6: the arena that owns every open
// Resource and Frame, the keyboard selection that routes key events
// through internal/input/mode, and the dispatch loop that ties the
// background internal/ioloop manager, the device, and each division's
// Refraction together into one editing cycle.
//
// Grounded on original_source/syntax/edit.py's Session class (the
// resources-by-path arena, the keyboard selection wrapping a mode
// stack, and the per-cycle refractions/deltas bookkeeping) and on
// internal/app/{app.go,eventloop.go}'s dispatch-loop shape for the Go
// control flow: drain I/O, wait for a device event, interpret it,
// dispatch the resulting action, drain view deltas, render.
package session

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/keystorm/keystorm/internal/alignment"
	"github.com/keystorm/keystorm/internal/applog"
	"github.com/keystorm/keystorm/internal/coreerr"
	"github.com/keystorm/keystorm/internal/device"
	"github.com/keystorm/keystorm/internal/device/core"
	"github.com/keystorm/keystorm/internal/element"
	"github.com/keystorm/keystorm/internal/frame"
	"github.com/keystorm/keystorm/internal/input/key"
	"github.com/keystorm/keystorm/internal/input/mode"
	"github.com/keystorm/keystorm/internal/ioloop"
	"github.com/keystorm/keystorm/internal/location"
	"github.com/keystorm/keystorm/internal/phrase"
	"github.com/keystorm/keystorm/internal/prompt"
	"github.com/keystorm/keystorm/internal/reform"
	"github.com/keystorm/keystorm/internal/view"
)

// openResource is one entry in the session's resources arena: the line
// store itself plus the reformulations it was opened with, so a second
// Open of the same path can reuse both instead of re-tokenizing.
type openResource struct {
	path     string
	resource *element.Resource
	reform   reform.Reformulations
	refcount int
}

// Pane is one division of a Frame bound to an open Resource through a
// Refraction, the unit the dispatch loop renders every cycle. Header
// and Footer are non-nil whenever the owning Division reserved lines
// for them, per spec §4.5's three-sub-view division.
type Pane struct {
	Path       string
	Refraction *view.Refraction
	Header     *location.Refraction
	Footer     *prompt.Refraction
}

// Session is the arena and dispatch loop of spec §4.6.
type Session struct {
	Device device.Device
	Log    *applog.Logger

	resources map[string]*openResource
	frames    []*frame.Frame
	panes     map[int]map[[2]int]*Pane // frame index -> (vertical, division) -> Pane

	keyboard *mode.Manager
	focus    *Pane
	focusIdx struct{ frame, vertical, division int }

	// footerFocus routes key interpretation to the focused pane's
	// prompt footer instead of its content Refraction, while the
	// footer is being composed (entered via "prompt.focus", left by
	// submitting or by Escape back to normal mode).
	footerFocus bool

	io *ioloop.Manager

	quit bool
}

// New creates a Session with no open resources or frames. dev may be
// nil in tests that only exercise the arena and dispatch logic without
// a real terminal.
func New(dev device.Device, log *applog.Logger) *Session {
	if log == nil {
		log = applog.Discard()
	}
	s := &Session{
		Device:    dev,
		Log:       log,
		resources: make(map[string]*openResource),
		panes:     make(map[int]map[[2]int]*Pane),
		keyboard:  mode.NewManager(),
		io:        ioloop.NewManager(),
	}
	s.keyboard.Register(mode.NewNormalMode())
	s.keyboard.Register(mode.NewInsertMode())
	_ = s.keyboard.SetInitialMode(mode.ModeNormal)
	return s
}

// IOManager exposes the background I/O manager so prompt/location
// refractions can schedule subprocess transfers against the same
// scheduler the dispatch loop drains.
func (s *Session) IOManager() *ioloop.Manager { return s.io }

// Keyboard exposes the mode manager driving key interpretation.
func (s *Session) Keyboard() *mode.Manager { return s.keyboard }

// Open loads path into the resources arena, decoding it with reform's
// Tokenizer/Codec bundle, and returns the now-open Resource. Calling
// Open twice on the same path increments a refcount and returns the
// existing Resource rather than reloading it, matching spec §5's
// "Resources are shared across every Refraction viewing them."
func (s *Session) Open(path string, rf reform.Reformulations) (*element.Resource, error) {
	if existing, ok := s.resources[path]; ok {
		existing.refcount++
		return existing.resource, nil
	}

	res := element.NewResource(path, element.Reformulations{Codec: rf.Codec})
	if err := loadFile(res, path, rf.Codec); err != nil {
		return nil, err
	}
	s.resources[path] = &openResource{path: path, resource: res, reform: rf, refcount: 1}
	return res, nil
}

// loadFile reads path line by line into res, tolerating a missing file
// (a new buffer) and a decode failure by falling back to the
// replacement policy DefaultCodec already implements.
func loadFile(res *element.Resource, path string, codec element.Codec) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return res.LnInitialize()
		}
		return coreerr.IOFailure("session.loadFile", -1, err)
	}
	defer f.Close()

	var lines []element.Line
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		raw := scanner.Bytes()
		text, _, err := codec.Decode(raw)
		if err != nil {
			text = string(raw)
		}
		lines = append(lines, element.Line{Content: text})
	}
	if err := scanner.Err(); err != nil {
		return coreerr.IOFailure("session.loadFile", -1, err)
	}
	if len(lines) == 0 {
		lines = []element.Line{{}}
	}
	return res.InsertLines(0, lines)
}

// Close releases one reference to path's Resource, actually closing it
// (detaching observers) once the refcount reaches zero.
func (s *Session) Close(path string) {
	entry, ok := s.resources[path]
	if !ok {
		return
	}
	entry.refcount--
	if entry.refcount > 0 {
		return
	}
	entry.resource.Close()
	delete(s.resources, path)
}

// NewFrame allocates a Frame sized to area and laid out per layout,
// registers it in the arena, and returns its index.
func (s *Session) NewFrame(area alignment.Area, layout []frame.LayoutEntry) int {
	f := frame.New()
	f.Configure(area, layout)
	s.frames = append(s.frames, f)
	idx := len(s.frames) - 1
	s.panes[idx] = make(map[[2]int]*Pane)
	return idx
}

// Frame returns the Frame at idx, or nil if out of range.
func (s *Session) Frame(idx int) *frame.Frame {
	if idx < 0 || idx >= len(s.frames) {
		return nil
	}
	return s.frames[idx]
}

// Place binds path's Resource to the (vertical, division) pane of
// frameIdx through a new Refraction, opening the resource first if
// needed, and focuses it.
func (s *Session) Place(frameIdx, vertical, division int, path string, rf reform.Reformulations) error {
	f := s.Frame(frameIdx)
	if f == nil {
		return fmt.Errorf("session: no frame %d", frameIdx)
	}
	div, ok := f.Pane(vertical, division)
	if !ok {
		return fmt.Errorf("session: no pane (%d,%d) in frame %d", vertical, division, frameIdx)
	}

	res, err := s.Open(path, rf)
	if err != nil {
		return err
	}

	pane := &Pane{Path: path, Refraction: view.New(res, rf, div.Content)}

	if div.Header.Lines > 0 {
		root := filepath.Dir(path)
		ctx, subject := location.Determine(root, path)
		header, err := location.New(div.Header, root, ctx, subject, rf)
		if err != nil {
			return err
		}
		pane.Header = header
	}
	if div.Footer.Lines > 0 {
		footer, err := prompt.New(div.Footer, rf)
		if err != nil {
			return err
		}
		pane.Footer = footer
	}

	s.panes[frameIdx][[2]int{vertical, division}] = pane
	s.focus = pane
	s.focusIdx = struct{ frame, vertical, division int }{frameIdx, vertical, division}
	return nil
}

// EditLocation resolves the focused pane's location-header path (per
// spec §4.5's header-as-navigator convention) and either opens it as a
// fresh Resource or writes the focused pane's content to it, depending
// on the header's pending Action, then binds the result to the pane in
// place of its current Resource.
func (s *Session) EditLocation() error {
	pane := s.focus
	if pane == nil || pane.Header == nil {
		return fmt.Errorf("session: focused pane has no location header")
	}
	res, err := pane.Header.Activate(s, pane.Refraction.Reform, paneLines(pane.Refraction.Source))
	if err != nil {
		return err
	}
	pane.Path = pane.Header.Path()
	pane.Refraction = view.New(res, pane.Refraction.Reform, pane.Refraction.Area)
	return nil
}

// paneLines reads every line of res as plain text, for handing a
// pane's content to a location Refraction's save Action.
func paneLines(res *element.Resource) []string {
	n := res.LnCount()
	out := make([]string, n)
	for i := 0; i < n; i++ {
		line, err := res.Sole(i)
		if err != nil {
			continue
		}
		out[i] = line.Content
	}
	return out
}

// SubmitPrompt parses the focused pane's prompt-footer text as a
// Command and returns it, recording the submission in the footer's
// Revisions stack and clearing the line, per spec §6.
func (s *Session) SubmitPrompt() (prompt.Command, error) {
	pane := s.focus
	if pane == nil || pane.Footer == nil {
		return prompt.Command{}, fmt.Errorf("session: focused pane has no prompt footer")
	}
	return pane.Footer.Submit()
}

// RecallPrompt walks the focused pane's prompt revision history, per
// spec §6's up/down recall convention. dir < 0 recalls older entries.
func (s *Session) RecallPrompt(dir int) (bool, error) {
	pane := s.focus
	if pane == nil || pane.Footer == nil {
		return false, fmt.Errorf("session: focused pane has no prompt footer")
	}
	return pane.Footer.Recall(dir)
}

// Focus returns the currently focused pane, or nil.
func (s *Session) Focus() *Pane { return s.focus }

// Quit requests the dispatch loop stop after the current cycle.
func (s *Session) Quit() { s.quit = true }

// Quitting reports whether Quit has been called.
func (s *Session) Quitting() bool { return s.quit }

// Run drives the dispatch loop of spec §4.6 until Quit is called or
// the device returns an error from TransferEvent: drain completed
// background I/O, wait for a device event (or an I/O wakeup), interpret
// the key through the keyboard selection, dispatch its action, drain
// every visible pane's pending Instructions to the device, and render.
func (s *Session) Run() error {
	for !s.quit {
		s.io.Drain()

		if s.Device == nil {
			return nil
		}
		ev, err := s.Device.TransferEvent()
		if err != nil {
			return err
		}

		s.interpret(ev)
		s.renderCycle()
	}
	return nil
}

// interpret routes one key event through the current mode, applying
// its unmapped-key fallback (insertion, in insert mode) against the
// focused pane's Resource.
func (s *Session) interpret(ev key.Event) {
	cur := s.keyboard.Current()
	if cur == nil {
		return
	}
	ctx := mode.NewContext()
	result := cur.HandleUnmapped(ev, ctx)
	if result == nil || !result.Consumed {
		return
	}
	if s.focus == nil {
		return
	}
	if result.InsertText != "" {
		s.insertAtCursor(result.InsertText)
	}
	if result.Action != nil {
		s.dispatch(*result.Action)
	}
}

// activeRef returns the Refraction key interpretation currently
// targets: the focused pane's prompt footer while footerFocus is set
// (and the pane actually has one), its content Refraction otherwise.
func (s *Session) activeRef() *view.Refraction {
	pane := s.focus
	if pane == nil {
		return nil
	}
	if s.footerFocus && pane.Footer != nil {
		return pane.Footer.Refraction
	}
	return pane.Refraction
}

func (s *Session) insertAtCursor(text string) {
	ref := s.activeRef()
	if ref == nil {
		return
	}
	_ = ref.Source.InsertCodepoints(ref.LinePos, ref.ColPos, text)
	ref.ColPos += len([]rune(text))
}

// actionCount reads the integer "count" arg an Action carries,
// defaulting to 1 for actions the modes emit without one.
func actionCount(a mode.Action) int {
	if n, ok := a.Args["count"].(int); ok && n > 0 {
		return n
	}
	return 1
}

// currentLineLen returns the content length, in codepoints, of the
// line the focused pane's cursor sits on.
func (s *Session) currentLineLen() int {
	ref := s.activeRef()
	line, err := ref.Source.Sole(ref.LinePos)
	if err != nil {
		return 0
	}
	return len([]rune(line.Content))
}

// clampCol keeps ColPos within [0, currentLineLen()].
func (s *Session) clampCol() {
	ref := s.activeRef()
	if max := s.currentLineLen(); ref.ColPos > max {
		ref.ColPos = max
	}
	if ref.ColPos < 0 {
		ref.ColPos = 0
	}
}

// moveLine shifts the focused pane's cursor by delta lines, clamping
// to the resource's bounds, and reconciles the scroll window.
func (s *Session) moveLine(delta int) {
	ref := s.activeRef()
	ref.LinePos += delta
	if ref.LinePos < 0 {
		ref.LinePos = 0
	}
	if max := ref.Source.LnCount() - 1; ref.LinePos > max {
		ref.LinePos = max
	}
	s.clampCol()
	ref.Recursor()
}

// dispatch runs the named action against the focused pane. Actions
// the mode layer can emit but that name an out-of-scope collaborator
// (process execution, syntax-aware word motions) are silently
// ignored, matching spec §7's policy of never aborting the dispatch
// loop on an unhandled command.
func (s *Session) dispatch(a mode.Action) {
	if s.focus == nil {
		return
	}
	ref := s.activeRef()

	switch a.Name {
	case "mode.switch":
		if name, ok := a.Args["mode"].(string); ok {
			_ = s.keyboard.Switch(name)
		}
	case "mode.normal":
		s.footerFocus = false
		_ = s.keyboard.Switch(mode.ModeNormal)
	case "mode.insert":
		s.enterInsert(a.Args)
	case "app.quit":
		s.Quit()

	case "cursor.left":
		ref.ColPos -= actionCount(a)
		s.clampCol()
	case "cursor.right":
		ref.ColPos += actionCount(a)
		s.clampCol()
	case "cursor.up":
		if s.footerFocus {
			_, _ = s.RecallPrompt(-1)
		} else {
			s.moveLine(-actionCount(a))
		}
	case "cursor.down":
		if s.footerFocus {
			_, _ = s.RecallPrompt(1)
		} else {
			s.moveLine(actionCount(a))
		}
	case "cursor.line_start":
		ref.ColPos = 0
	case "cursor.line_end":
		ref.ColPos = s.currentLineLen()
	case "cursor.go_to_line":
		if n, ok := a.Args["line"].(int); ok {
			ref.LinePos = 0
			s.moveLine(n - 1)
		}
	case "cursor.file_end":
		ref.LinePos = 0
		s.moveLine(ref.Source.LnCount() - 1)

	case "editor.delete_char":
		if n := s.currentLineLen() - ref.ColPos; n > 0 {
			count := actionCount(a)
			if count > n {
				count = n
			}
			_ = ref.Source.DeleteCodepoints(ref.LinePos, ref.ColPos, count)
		}
	case "editor.delete_char_before":
		count := actionCount(a)
		if count > ref.ColPos {
			count = ref.ColPos
		}
		if count > 0 {
			ref.ColPos -= count
			_ = ref.Source.DeleteCodepoints(ref.LinePos, ref.ColPos, count)
		}
	case "editor.backspace":
		if ref.ColPos > 0 {
			ref.ColPos--
			_ = ref.Source.DeleteCodepoints(ref.LinePos, ref.ColPos, 1)
		} else if ref.LinePos > 0 {
			prevLen := 0
			if line, err := ref.Source.Sole(ref.LinePos - 1); err == nil {
				prevLen = len([]rune(line.Content))
			}
			_ = ref.Source.Join(ref.LinePos - 1)
			ref.LinePos--
			ref.ColPos = prevLen
			ref.Recursor()
		}
	case "editor.newline":
		if s.footerFocus {
			_, _ = s.SubmitPrompt()
			s.footerFocus = false
			_ = s.keyboard.Switch(mode.ModeNormal)
		} else {
			_ = ref.Source.Split(ref.LinePos, ref.ColPos)
			ref.LinePos++
			ref.ColPos = 0
			ref.Recursor()
		}
	case "editor.delete_line":
		count := actionCount(a)
		if max := ref.Source.LnCount() - ref.LinePos; count > max {
			count = max
		}
		if count > 0 {
			_ = ref.Source.DeleteLines(ref.LinePos, count)
			if max := ref.Source.LnCount() - 1; ref.LinePos > max {
				ref.LinePos = max
			}
			s.clampCol()
			ref.Recursor()
		}
	case "editor.undo":
		ref.Source.Undo(actionCount(a))
		s.clampCol()
	case "editor.redo":
		ref.Source.Redo(actionCount(a))
		s.clampCol()

	case "view.page_down":
		s.moveLine(ref.Area.Lines)
	case "view.page_up":
		s.moveLine(-ref.Area.Lines)

	case "prompt.focus":
		s.focusFooter()
	}
}

// enterInsert switches to insert mode, first repositioning the cursor
// per the position a normal-mode entry key requested ("a"/"A"/"o"/"O"
// open relative to the current line; plain "i" leaves the cursor in
// place).
func (s *Session) enterInsert(args map[string]any) {
	ref := s.activeRef()
	switch pos, _ := args["position"].(string); pos {
	case "line_start":
		ref.ColPos = 0
	case "after":
		ref.ColPos++
		s.clampCol()
	case "line_end":
		ref.ColPos = s.currentLineLen()
	case "new_line_below":
		_ = ref.Source.Split(ref.LinePos, s.currentLineLen())
		ref.LinePos++
		ref.ColPos = 0
	case "new_line_above":
		_ = ref.Source.Split(ref.LinePos, 0)
		ref.ColPos = 0
	}
	ref.Recursor()
	_ = s.keyboard.Switch(mode.ModeInsert)
}

// focusFooter moves keyboard focus to the focused pane's prompt
// footer, if it has one. While footerFocus is set, activeRef routes
// cursor and editor actions to the footer's Refraction instead of the
// content pane's: typing composes a command line, Enter submits it
// (SubmitPrompt) and returns focus to the content pane, Up/Down recall
// prompt history (RecallPrompt) instead of moving the content cursor,
// and Escape/Ctrl+C (mode.normal) abandon the footer unsubmitted. A
// pane without a footer simply ignores the request.
func (s *Session) focusFooter() {
	pane := s.focus
	if pane == nil || pane.Footer == nil {
		return
	}
	s.footerFocus = true
	_ = s.keyboard.Switch(mode.ModeInsert)
}

// renderCycle drains every visible pane's Refraction instructions to
// the device and commits the frame.
func (s *Session) renderCycle() {
	if s.Device == nil {
		return
	}
	for _, byPane := range s.panes {
		for _, pane := range byPane {
			for _, instr := range pane.Refraction.Drain() {
				s.renderInstruction(pane.Refraction, instr)
			}
			if pane.Header != nil {
				for _, instr := range pane.Header.Drain() {
					s.renderInstruction(pane.Header.Refraction, instr)
				}
			}
			if pane.Footer != nil {
				for _, instr := range pane.Footer.Drain() {
					s.renderInstruction(pane.Footer.Refraction, instr)
				}
			}
		}
	}
	_ = s.Device.RenderImage()
	_ = s.Device.DispatchImage()
}

// renderInstruction applies one view.Instruction to the device. An
// InstrCopy replicates its CopyPlan's untouched Src rows onto Dst
// directly, per spec §4.4's "the device is expected to honor these as
// replicate cells from src to dst", then repaints only the Vacant
// strip the Image has freshly rendered; InstrRefresh and InstrRedraw
// always repaint from the Image since they carry no copy plan.
func (s *Session) renderInstruction(ref *view.Refraction, instr view.Instruction) {
	switch instr.Kind {
	case view.InstrCopy:
		s.Device.ReplicateCells(instr.Copy.Src, instr.Copy.Dst)
		fromRow := instr.Copy.Vacant.TopOffset - ref.Area.TopOffset
		s.redrawRows(ref, fromRow, fromRow+instr.Copy.Vacant.Lines)
	case view.InstrRefresh:
		s.redrawRows(ref, 0, ref.Area.Lines)
	case view.InstrRedraw:
		s.redrawRows(ref, instr.Row, instr.Row+1)
	}
}

func (s *Session) redrawRows(ref *view.Refraction, fromRow, toRow int) {
	img := ref.Image
	span := ref.Area.Span
	for row := fromRow; row < toRow; row++ {
		cells := make([]core.Cell, 0, span)
		if row >= 0 && row < img.Len() {
			cells = phraseCells(img.Phrases[row], span)
		}
		for len(cells) < span {
			cells = append(cells, core.EmptyCell())
		}
		area := alignment.Area{
			TopOffset:  ref.Area.TopOffset + row,
			LeftOffset: ref.Area.LeftOffset,
			Lines:      1,
			Span:       span,
		}
		s.Device.ScreenRewrite(area, cells[:span])
	}
}

// phraseCells flattens p's words into up to width core.Cells, one word
// at a time, using each word's Style for every cell it contributes.
func phraseCells(p phrase.Phrase[core.Style], width int) []core.Cell {
	cells := make([]core.Cell, 0, width)
	for _, w := range p {
		if len(cells) >= width {
			break
		}
		wordCells := core.CellsFromString(w.Text, w.Style)
		cells = append(cells, wordCells...)
	}
	if len(cells) > width {
		cells = cells[:width]
	}
	return cells
}

// StatusLine renders the focused pane's mode name and path for a
// division's footer, matching spec §4.5's footer-as-status-line
// convention.
func (s *Session) StatusLine() string {
	if s.focus == nil {
		return ""
	}
	cur := s.keyboard.Current()
	name := "?"
	if cur != nil {
		name = cur.DisplayName()
	}
	return strings.ToUpper(name) + " " + s.focus.Path
}
