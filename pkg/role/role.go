// Package role defines the closed enumeration of accessibility roles used by
// the navigation engine, together with the fixed-width bitset and per-role
// count structures that summarize which roles occur within a subtree.
//
// The enumeration mirrors the AT-SPI2 role registry: it is total-ordered,
// dense, and guaranteed to stay below 256 entries, which is what allows the
// bitset to be a small fixed array of machine words.
package role

import (
	"errors"
	"fmt"
)

// Role identifies one accessibility role. The zero value is Invalid.
type Role uint8

// ErrUnknownRole is returned when a role name is not part of the closed
// enumeration.
var ErrUnknownRole = errors.New("role: unknown role name")

// The closed role enumeration, in AT-SPI registry order. The numeric value of
// a Role is its bit position in a Set and its canonical sort position.
const (
	Invalid Role = iota
	AcceleratorLabel
	Alert
	Animation
	Arrow
	Calendar
	Canvas
	CheckBox
	CheckMenuItem
	ColorChooser
	ColumnHeader
	ComboBox
	DateEditor
	DesktopIcon
	DesktopFrame
	Dial
	Dialog
	DirectoryPane
	DrawingArea
	FileChooser
	Filler
	FocusTraversable
	FontChooser
	Frame
	GlassPane
	HTMLContainer
	Icon
	Image
	InternalFrame
	Label
	LayeredPane
	List
	ListItem
	Menu
	MenuBar
	MenuItem
	OptionPane
	PageTab
	PageTabList
	Panel
	PasswordText
	PopupMenu
	ProgressBar
	PushButton
	RadioButton
	RadioMenuItem
	RootPane
	RowHeader
	ScrollBar
	ScrollPane
	Separator
	Slider
	SpinButton
	SplitPane
	StatusBar
	Table
	TableCell
	TableColumnHeader
	TableRowHeader
	TearoffMenuItem
	Terminal
	Text
	ToggleButton
	ToolBar
	ToolTip
	Tree
	TreeTable
	Unknown
	Viewport
	Window
	Extended
	Header
	Footer
	Paragraph
	Ruler
	Application
	Autocomplete
	Editbar
	Embedded
	Entry
	Chart
	Caption
	DocumentFrame
	Heading
	Page
	Section
	RedundantObject
	Form
	Link
	InputMethodWindow
	TableRow
	TreeItem
	DocumentSpreadsheet
	DocumentPresentation
	DocumentText
	DocumentWeb
	DocumentEmail
	Comment
	ListBox
	Grouping
	ImageMap
	Notification
	InfoBar
	LevelBar
	TitleBar
	BlockQuote
	Audio
	Video
	Definition
	Article
	Landmark
	Log
	Marquee
	Math
	Rating
	Timer
	Static
	MathFraction
	MathRoot
	Subscript
	Superscript
	DescriptionList
	DescriptionTerm
	DescriptionValue
	Footnote
	ContentDeletion
	ContentInsertion
	Mark
	Suggestion
	PushButtonMenu
	Switch
)

// Count is the number of roles in the enumeration.
const Count = int(Switch) + 1

// names holds the canonical hyphenated name for each role, indexed by value.
//
//nolint:gochecknoglobals // Immutable lookup table computed at process start.
var names = [Count]string{
	"invalid", "accelerator-label", "alert", "animation", "arrow",
	"calendar", "canvas", "check-box", "check-menu-item", "color-chooser",
	"column-header", "combo-box", "date-editor", "desktop-icon",
	"desktop-frame", "dial", "dialog", "directory-pane", "drawing-area",
	"file-chooser", "filler", "focus-traversable", "font-chooser", "frame",
	"glass-pane", "html-container", "icon", "image", "internal-frame",
	"label", "layered-pane", "list", "list-item", "menu", "menu-bar",
	"menu-item", "option-pane", "page-tab", "page-tab-list", "panel",
	"password-text", "popup-menu", "progress-bar", "push-button",
	"radio-button", "radio-menu-item", "root-pane", "row-header",
	"scroll-bar", "scroll-pane", "separator", "slider", "spin-button",
	"split-pane", "status-bar", "table", "table-cell",
	"table-column-header", "table-row-header", "tearoff-menu-item",
	"terminal", "text", "toggle-button", "tool-bar", "tool-tip", "tree",
	"tree-table", "unknown", "viewport", "window", "extended", "header",
	"footer", "paragraph", "ruler", "application", "autocomplete",
	"editbar", "embedded", "entry", "chart", "caption", "document-frame",
	"heading", "page", "section", "redundant-object", "form", "link",
	"input-method-window", "table-row", "tree-item",
	"document-spreadsheet", "document-presentation", "document-text",
	"document-web", "document-email", "comment", "list-box", "grouping",
	"image-map", "notification", "info-bar", "level-bar", "title-bar",
	"block-quote", "audio", "video", "definition", "article", "landmark",
	"log", "marquee", "math", "rating", "timer", "static",
	"math-fraction", "math-root", "subscript", "superscript",
	"description-list", "description-term", "description-value",
	"footnote", "content-deletion", "content-insertion", "mark",
	"suggestion", "push-button-menu", "switch",
}

// byName is the inverse of names.
//
//nolint:gochecknoglobals // Immutable lookup table computed at process start.
var byName = func() map[string]Role {
	m := make(map[string]Role, Count)
	for i, name := range names {
		m[name] = Role(i)
	}

	return m
}()

// Valid reports whether r is a member of the enumeration.
func (r Role) Valid() bool {
	return int(r) < Count
}

// String returns the canonical hyphenated name of the role.
func (r Role) String() string {
	if !r.Valid() {
		return fmt.Sprintf("role(%d)", uint8(r))
	}

	return names[r]
}

// FromName resolves a canonical role name to its Role value. It returns
// ErrUnknownRole (wrapped with the offending name) for names outside the
// closed enumeration.
func FromName(name string) (Role, error) {
	r, ok := byName[name]
	if !ok {
		return Invalid, fmt.Errorf("%w: %q", ErrUnknownRole, name)
	}

	return r, nil
}
