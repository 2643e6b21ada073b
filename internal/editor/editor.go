// Package editor hosts a surface in a shiny window. It turns x/mobile
// pointer and key events into controller calls and paints the composited
// view.
package editor

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/example/annotator/internal/clipboard"
	"github.com/example/annotator/internal/geom"
	"github.com/example/annotator/internal/notify"
	"github.com/example/annotator/internal/render"
	"github.com/example/annotator/internal/shape"
	"github.com/example/annotator/internal/surface"
	"github.com/example/annotator/internal/theme"
)

const (
	messageDuration = 2 * time.Second
	doubleClick     = 400 * time.Millisecond
)

var errQuit = errors.New("quit")

// Options configure an Editor.
type Options struct {
	Title    string
	Theme    *theme.Theme
	Notifier *notify.Notifier
	// Output is the PNG written by save. Empty picks a timestamped name
	// inside SaveDir.
	Output  string
	SaveDir string
}

// Editor drives one surface. Its methods run on the window's event
// goroutine.
type Editor struct {
	surf  *surface.Surface
	opts  Options
	theme *theme.Theme
	ui    *chrome

	message      string
	messageUntil time.Time

	lastClick   time.Time
	lastClickAt image.Point

	now        func() time.Time
	readClip   func() (*clipboard.Payload, error)
	copyElems  func([]shape.Element) error
	copyImage  func(image.Image) error
	createFile func(string) (*os.File, error)
}

// New wraps surf.
func New(surf *surface.Surface, opts Options) *Editor {
	if opts.Theme == nil {
		opts.Theme = theme.Default()
	}
	if opts.Title == "" {
		opts.Title = "Annotator"
	}
	ed := &Editor{
		surf:       surf,
		opts:       opts,
		theme:      opts.Theme,
		now:        time.Now,
		readClip:   clipboard.Read,
		copyElems:  clipboard.CopyElements,
		copyImage:  clipboard.WriteImage,
		createFile: os.Create,
	}
	ed.ui = newChrome(opts.Theme, surf.SetDrawingMode)
	surf.Compositor().SetColors(CanvasColors(opts.Theme))
	surf.OnContextMenu(ed.contextMenu)
	return ed
}

// Surface returns the edited surface.
func (ed *Editor) Surface() *surface.Surface { return ed.surf }

func (ed *Editor) flash(format string, args ...any) {
	ed.message = fmt.Sprintf(format, args...)
	ed.messageUntil = ed.now().Add(messageDuration)
	log.Print(ed.message)
}

// activeMessage returns the overlay text still on screen.
func (ed *Editor) activeMessage() string {
	if ed.message == "" || !ed.now().Before(ed.messageUntil) {
		return ""
	}
	return ed.message
}

func (ed *Editor) contextMenu(req surface.ContextMenuRequest) {
	if len(req.Elements) == 0 {
		ed.flash("Ctrl+V:paste  Ctrl+A:select all")
		return
	}
	ed.flash("%d element(s): Del:delete  PgUp/PgDn:order  Ctrl+C:copy", len(req.Elements))
}

// perform runs one command. big widens nudges.
func (ed *Editor) perform(a action, big bool) error {
	s := ed.surf
	step := 1
	if big {
		step = nudgeStep
	}
	switch a {
	case actionDelete:
		s.DeleteSelected()
	case actionUndo:
		s.Undo()
	case actionRedo:
		s.Redo()
	case actionSelectAll:
		s.EndTextEdit()
		s.SelectAll()
	case actionNudgeLeft:
		s.NudgeSelection(-step, 0)
	case actionNudgeRight:
		s.NudgeSelection(step, 0)
	case actionNudgeUp:
		s.NudgeSelection(0, -step)
	case actionNudgeDown:
		s.NudgeSelection(0, step)
	case actionRaise:
		s.PullSelectionUp()
	case actionLower:
		s.PushSelectionDown()
	case actionTop:
		s.PullSelectionToTop()
	case actionBottom:
		s.PushSelectionToBottom()
	case actionZoomIn:
		s.ZoomIn()
	case actionZoomOut:
		s.ZoomOut()
	case actionZoomReset:
		s.SetZoom(geom.Unity)
	case actionCancel:
		ed.cancel()
	case actionConfirm:
		return ed.confirm()
	case actionSave:
		return ed.save()
	case actionSaveDoc:
		return ed.saveDocument()
	case actionCopy:
		return ed.copy()
	case actionPaste:
		return ed.paste()
	case actionRotate:
		return ed.applyEffect(render.Rotate90{})
	case actionGrayscale:
		return ed.applyEffect(render.Grayscale{})
	case actionThinner:
		s.Selection().IncreaseLineThickness(-1)
	case actionThicker:
		s.Selection().IncreaseLineThickness(1)
	case actionQuit:
		return errQuit
	default:
		return fmt.Errorf("unknown action %q", a)
	}
	return nil
}

func (ed *Editor) cancel() {
	s := ed.surf
	switch {
	case s.Controller().State() != surface.Idle:
		s.Controller().Cancel()
	case s.EditingText() != nil:
		s.EndTextEdit()
	default:
		if _, ok := s.PendingCrop(); ok {
			s.CancelCrop()
			return
		}
		s.Selection().DeselectAll()
	}
}

func (ed *Editor) confirm() error {
	s := ed.surf
	if _, ok := s.PendingCrop(); ok {
		if err := s.ConfirmCrop(); err != nil {
			ed.flash("crop: %v", err)
			return err
		}
		return nil
	}
	if sel := s.Selection().Elements(); len(sel) == 1 {
		s.EditText(sel[0])
	}
	return nil
}

func (ed *Editor) outputPath() string {
	if ed.opts.Output != "" {
		return ed.opts.Output
	}
	name := "annotated-" + ed.now().Format("20060102-150405") + ".png"
	return filepath.Join(ed.opts.SaveDir, name)
}

func (ed *Editor) save() error {
	path := ed.outputPath()
	if err := ed.writeFile(path, ed.surf.SaveImage); err != nil {
		ed.flash("save failed: %v", err)
		return err
	}
	ed.flash("saved %s", path)
	ed.opts.Notifier.SaveImage(path, ed.surf.Size())
	return nil
}

func (ed *Editor) saveDocument() error {
	path := strings.TrimSuffix(ed.outputPath(), filepath.Ext(ed.outputPath())) + ".yaml"
	if err := ed.writeFile(path, ed.surf.Save); err != nil {
		ed.flash("save failed: %v", err)
		return err
	}
	ed.flash("saved %s", path)
	ed.opts.Notifier.SaveDocument(path, ed.surf.Elements().Len())
	return nil
}

func (ed *Editor) writeFile(path string, write func(io.Writer) error) error {
	f, err := ed.createFile(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// copy puts the selection on the clipboard, or the whole image when
// nothing is selected.
func (ed *Editor) copy() error {
	s := ed.surf
	s.EndTextEdit()
	if sel := s.Selection().Elements(); len(sel) > 0 {
		if err := ed.copyElems(sel); err != nil {
			ed.flash("copy failed: %v", err)
			return err
		}
		ed.flash("copied %s", notify.Items(len(sel)))
		ed.opts.Notifier.CopyElements(len(sel))
		return nil
	}
	img := s.Compositor().Export()
	if err := ed.copyImage(img); err != nil {
		ed.flash("copy failed: %v", err)
		return err
	}
	ed.flash("copied image")
	ed.opts.Notifier.CopyImage(img.Bounds().Size())
	return nil
}

func (ed *Editor) paste() error {
	p, err := ed.readClip()
	if err != nil {
		if errors.Is(err, clipboard.ErrEmpty) {
			ed.flash("clipboard is empty")
			return nil
		}
		ed.flash("paste failed: %v", err)
		return err
	}
	elems, err := ed.surf.Paste(p, nil)
	if err != nil {
		ed.flash("paste failed: %v", err)
		return err
	}
	ed.flash("pasted %d element(s)", len(elems))
	return nil
}

func (ed *Editor) applyEffect(e render.Effect) error {
	if err := ed.surf.ApplyEffect(e); err != nil {
		ed.flash("%v", err)
		return err
	}
	return nil
}

// key handles a key press and reports whether the view changed.
func (ed *Editor) key(r rune, a action, mode shape.DrawingMode, isTool, big bool) (bool, error) {
	s := ed.surf
	if s.EditingText() != nil {
		switch {
		case a == actionCancel:
			s.EndTextEdit()
			return true, nil
		case a == actionDelete:
			return s.Backspace(), nil
		case a == actionConfirm:
			return s.TypeRune('\n'), nil
		case r > 0 && r != 0x7f && (a == "" || isTool):
			return s.TypeRune(r), nil
		}
	}
	if isTool {
		s.SetDrawingMode(mode)
		return true, nil
	}
	if a == "" {
		return false, nil
	}
	return true, ed.perform(a, big)
}

// click reports a left release at view point p and opens a text element
// under it for editing on a double click.
func (ed *Editor) click(p image.Point) {
	now := ed.now()
	prev, prevAt := ed.lastClick, ed.lastClickAt
	ed.lastClick, ed.lastClickAt = now, p
	if now.Sub(prev) > doubleClick || absInt(p.X-prevAt.X) > 4 || absInt(p.Y-prevAt.Y) > 4 {
		return
	}
	s := ed.surf
	if s.DrawingMode() != shape.ModeNone {
		return
	}
	if e := s.Elements().ClickableElementAt(s.ImagePoint(p)); e != nil {
		s.EditText(e)
	}
	ed.lastClick = time.Time{}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
