// Package notify announces captures, saved files and clipboard copies on
// the desktop.
package notify

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/example/annotator/internal/platform"
)

// Event is a switchable notification trigger.
type Event string

const (
	EventCapture Event = "capture"
	EventSave    Event = "save"
	EventCopy    Event = "copy"
)

// Message names one notification text. Copying annotations and copying the
// flattened image share EventCopy but read differently.
type Message string

const (
	MsgCapture      Message = "capture"
	MsgSaveImage    Message = "save_image"
	MsgSaveDocument Message = "save_document"
	MsgCopyElements Message = "copy_elements"
	MsgCopyImage    Message = "copy_image"
)

var messageEvent = map[Message]Event{
	MsgCapture:      EventCapture,
	MsgSaveImage:    EventSave,
	MsgSaveDocument: EventSave,
	MsgCopyElements: EventCopy,
	MsgCopyImage:    EventCopy,
}

// Preferences are the title and per-message body templates. Templates use
// the placeholders {source}, {path}, {size} and {items}; unknown ones are
// left as written.
type Preferences struct {
	Title     string
	Templates map[Message]string
}

// DefaultPreferences returns the built-in texts.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: "Annotator",
		Templates: map[Message]string{
			MsgCapture:      "Captured {source} ({size})",
			MsgSaveImage:    "Saved {size} image to {path}",
			MsgSaveDocument: "Saved {items} to {path}",
			MsgCopyElements: "Copied {items} to clipboard",
			MsgCopyImage:    "Copied {size} image to clipboard",
		},
	}
}

// LoadPreferences overrides the defaults from ANNOTATOR_NOTIFY_TITLE and
// ANNOTATOR_NOTIFY_<MESSAGE>_TEXT, e.g. ANNOTATOR_NOTIFY_COPY_ELEMENTS_TEXT.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(os.Getenv("ANNOTATOR_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	for msg := range messageEvent {
		key := "ANNOTATOR_NOTIFY_" + strings.ToUpper(string(msg)) + "_TEXT"
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			prefs.Templates[msg] = v
		}
	}
	return prefs
}

// Items renders an annotation count: "1 annotation", "3 annotations".
func Items(n int) string {
	if n == 1 {
		return "1 annotation"
	}
	return strconv.Itoa(n) + " annotations"
}

func sizeText(size image.Point) string {
	return fmt.Sprintf("%dx%d", size.X, size.Y)
}

// Notifier sends notifications for the events it has enabled. A nil
// Notifier is silent.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
	send    func(title, body string, opts platform.Options) error
}

// New creates a Notifier with every event disabled.
func New(prefs Preferences) *Notifier {
	n := &Notifier{
		prefs:   Preferences{Title: prefs.Title, Templates: make(map[Message]string, len(prefs.Templates))},
		enabled: make(map[Event]bool),
		send:    platform.Notify,
	}
	for k, v := range prefs.Templates {
		n.prefs.Templates[k] = v
	}
	return n
}

// Enable toggles one event.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	n.enabled[event] = enabled
}

// Capture announces a new background image, using it as the icon.
func (n *Notifier) Capture(source string, img image.Image) {
	if !n.enabledFor(EventCapture) {
		return
	}
	vars := map[string]string{"source": strings.TrimSpace(source)}
	opts := platform.Options{}
	if img != nil {
		vars["size"] = sizeText(img.Bounds().Size())
		if path, cleanup, err := createPreview(img); err != nil {
			log.Printf("notification preview: %v", err)
		} else {
			defer cleanup()
			opts.IconPath = path
		}
	}
	n.dispatch(MsgCapture, vars, opts)
}

// SaveImage announces a flattened image written to path.
func (n *Notifier) SaveImage(path string, size image.Point) {
	if !n.enabledFor(EventSave) {
		return
	}
	abs := absPath(path)
	opts := platform.Options{}
	if strings.EqualFold(filepath.Ext(abs), ".png") {
		opts.IconPath = abs
	}
	n.dispatch(MsgSaveImage, map[string]string{"path": abs, "size": sizeText(size)}, opts)
}

// SaveDocument announces an editable document holding count annotations.
func (n *Notifier) SaveDocument(path string, count int) {
	n.dispatch(MsgSaveDocument, map[string]string{"path": absPath(path), "items": Items(count)}, platform.Options{})
}

// CopyElements announces count annotations put on the clipboard.
func (n *Notifier) CopyElements(count int) {
	n.dispatch(MsgCopyElements, map[string]string{"items": Items(count)}, platform.Options{})
}

// CopyImage announces the flattened image put on the clipboard.
func (n *Notifier) CopyImage(size image.Point) {
	n.dispatch(MsgCopyImage, map[string]string{"size": sizeText(size)}, platform.Options{})
}

func (n *Notifier) enabledFor(event Event) bool {
	return n != nil && n.enabled[event]
}

func (n *Notifier) dispatch(msg Message, vars map[string]string, opts platform.Options) {
	if !n.enabledFor(messageEvent[msg]) {
		return
	}
	body := strings.TrimSpace(expand(n.prefs.Templates[msg], vars))
	if body == "" {
		return
	}
	if err := n.send(n.prefs.Title, body, opts); err != nil {
		log.Printf("notification %s: %v", msg, err)
	}
}

// expand substitutes {name} placeholders from vars.
func expand(tmpl string, vars map[string]string) string {
	pairs := make([]string, 0, 2*len(vars))
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

func absPath(path string) string {
	path = strings.TrimSpace(path)
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

func createPreview(img image.Image) (string, func(), error) {
	f, err := os.CreateTemp("", "annotator-preview-*.png")
	if err != nil {
		return "", nil, err
	}
	path := f.Name()
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", nil, err
	}
	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("remove preview: %v", err)
		}
	}
	return path, cleanup, nil
}
