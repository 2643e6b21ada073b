package editor

import (
	"unicode"

	"golang.org/x/mobile/event/key"

	"github.com/example/annotator/internal/shape"
)

// action names a command reachable from the keyboard, the toolbar or the
// status bar.
type action string

const (
	actionDelete     action = "delete"
	actionUndo       action = "undo"
	actionRedo       action = "redo"
	actionSelectAll  action = "selectall"
	actionNudgeLeft  action = "nudge-left"
	actionNudgeRight action = "nudge-right"
	actionNudgeUp    action = "nudge-up"
	actionNudgeDown  action = "nudge-down"
	actionRaise      action = "raise"
	actionLower      action = "lower"
	actionTop        action = "top"
	actionBottom     action = "bottom"
	actionZoomIn     action = "zoomin"
	actionZoomOut    action = "zoomout"
	actionZoomReset  action = "zoomreset"
	actionCancel     action = "cancel"
	actionConfirm    action = "confirm"
	actionSave       action = "save"
	actionSaveDoc    action = "savedoc"
	actionCopy       action = "copy"
	actionPaste      action = "paste"
	actionRotate     action = "rotate"
	actionGrayscale  action = "grayscale"
	actionThinner    action = "thinner"
	actionThicker    action = "thicker"
	actionQuit       action = "quit"
)

// KeyShortcut is one key combination.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

var keyboardAction = map[KeyShortcut]action{
	{Code: key.CodeDeleteForward}:                               actionDelete,
	{Code: key.CodeDeleteBackspace}:                             actionDelete,
	{Code: key.CodeZ, Modifiers: key.ModControl}:                actionUndo,
	{Code: key.CodeY, Modifiers: key.ModControl}:                actionRedo,
	{Code: key.CodeZ, Modifiers: key.ModControl | key.ModShift}: actionRedo,
	{Code: key.CodeA, Modifiers: key.ModControl}:                actionSelectAll,
	{Code: key.CodeLeftArrow}:                                   actionNudgeLeft,
	{Code: key.CodeRightArrow}:                                  actionNudgeRight,
	{Code: key.CodeUpArrow}:                                     actionNudgeUp,
	{Code: key.CodeDownArrow}:                                   actionNudgeDown,
	{Code: key.CodePageUp}:                                      actionRaise,
	{Code: key.CodePageDown}:                                    actionLower,
	{Code: key.CodeHome}:                                        actionTop,
	{Code: key.CodeEnd}:                                         actionBottom,
	{Code: key.CodeEqualSign}:                                   actionZoomIn,
	{Code: key.CodeEqualSign, Modifiers: key.ModShift}:          actionZoomIn,
	{Code: key.CodeKeypadPlusSign}:                              actionZoomIn,
	{Code: key.CodeHyphenMinus}:                                 actionZoomOut,
	{Code: key.CodeKeypadHyphenMinus}:                           actionZoomOut,
	{Code: key.Code0, Modifiers: key.ModControl}:                actionZoomReset,
	{Code: key.CodeEscape}:                                      actionCancel,
	{Code: key.CodeReturnEnter}:                                 actionConfirm,
	{Code: key.CodeKeypadEnter}:                                 actionConfirm,
	{Code: key.CodeS, Modifiers: key.ModControl}:                actionSave,
	{Code: key.CodeS, Modifiers: key.ModControl | key.ModShift}: actionSaveDoc,
	{Code: key.CodeC, Modifiers: key.ModControl}:                actionCopy,
	{Code: key.CodeV, Modifiers: key.ModControl}:                actionPaste,
	{Code: key.CodeR, Modifiers: key.ModControl}:                actionRotate,
	{Code: key.CodeG, Modifiers: key.ModControl}:                actionGrayscale,
	{Code: key.CodeLeftSquareBracket}:                           actionThinner,
	{Code: key.CodeRightSquareBracket}:                          actionThicker,
	{Code: key.CodeQ, Modifiers: key.ModControl}:                actionQuit,
}

// toolKeys select a drawing mode with an unmodified letter.
var toolKeys = map[rune]shape.DrawingMode{
	'm': shape.ModeNone,
	'r': shape.ModeRect,
	'e': shape.ModeEllipse,
	't': shape.ModeText,
	'b': shape.ModeSpeechBubble,
	'n': shape.ModeStepLabel,
	'l': shape.ModeLine,
	'a': shape.ModeArrow,
	'h': shape.ModeHighlight,
	'o': shape.ModeObfuscate,
	'c': shape.ModeCrop,
	'p': shape.ModePath,
}

// nudgeStep is the distance of a Shift+arrow nudge.
const nudgeStep = 10

// lookupKey resolves a key press. Shift+arrow nudges further.
func lookupKey(e key.Event) (a action, mode shape.DrawingMode, isTool, big bool) {
	mods := e.Modifiers &^ key.ModMeta
	if a, ok := keyboardAction[KeyShortcut{Code: e.Code, Modifiers: mods}]; ok {
		return a, 0, false, false
	}
	if mods == key.ModShift {
		if a, ok := keyboardAction[KeyShortcut{Code: e.Code}]; ok && isNudge(a) {
			return a, 0, false, true
		}
	}
	if mods == 0 || mods == key.ModShift {
		if m, ok := toolKeys[unicode.ToLower(e.Rune)]; ok {
			return "", m, true, false
		}
	}
	return "", 0, false, false
}

func isNudge(a action) bool {
	switch a {
	case actionNudgeLeft, actionNudgeRight, actionNudgeUp, actionNudgeDown:
		return true
	}
	return false
}

// toolLabel is the toolbar caption of a drawing mode.
func toolLabel(m shape.DrawingMode) string {
	for r, tm := range toolKeys {
		if tm == m {
			name := m.String()
			if m == shape.ModeNone {
				name = "select"
			}
			return string(unicode.ToUpper(r)) + ":" + name
		}
	}
	return m.String()
}

// tools is the toolbar order.
var tools = []shape.DrawingMode{
	shape.ModeNone,
	shape.ModeRect,
	shape.ModeEllipse,
	shape.ModeLine,
	shape.ModeArrow,
	shape.ModePath,
	shape.ModeText,
	shape.ModeSpeechBubble,
	shape.ModeStepLabel,
	shape.ModeHighlight,
	shape.ModeObfuscate,
	shape.ModeCrop,
}
