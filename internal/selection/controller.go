// Package selection holds the profile picker state machine.
//
// The list always has the shape
//
//	[Header, Clear, Profile_0 ... Profile_{n-1}, Create]
//
// and the header is never a resting position for the cursor.
package selection

import "github.com/byterings/gus/internal/profile"

const (
	HeaderLabel = "Select a profile to use:"
	ClearLabel  = "Global"
	CreateLabel = "Create new"
)

// EntryKind tells what a list row stands for
type EntryKind int

const (
	EntryHeader EntryKind = iota
	EntryClear
	EntryProfile
	EntryCreate
)

// Entry is one row of the selection list
type Entry struct {
	Kind  EntryKind
	Label string
}

// ResultKind is what a confirm resolved to
type ResultKind int

const (
	NoOp ResultKind = iota
	ClearRequested
	ApplyRequested
	CreateRequested
)

func (k ResultKind) String() string {
	switch k {
	case ClearRequested:
		return "clear"
	case ApplyRequested:
		return "apply"
	case CreateRequested:
		return "create"
	default:
		return "noop"
	}
}

// Result is the outcome of Confirm. ProfileIndex is only meaningful for
// ApplyRequested and indexes the catalog the list was built from.
type Result struct {
	Kind         ResultKind
	ProfileIndex int
}

// BuildEntries derives the selection list from profile names
func BuildEntries(names []string) []Entry {
	entries := make([]Entry, 0, len(names)+3)
	entries = append(entries, Entry{Kind: EntryHeader, Label: HeaderLabel})
	entries = append(entries, Entry{Kind: EntryClear, Label: ClearLabel})
	for _, name := range names {
		entries = append(entries, Entry{Kind: EntryProfile, Label: name})
	}
	entries = append(entries, Entry{Kind: EntryCreate, Label: CreateLabel})
	return entries
}

// Controller tracks the cursor over a fixed selection list
type Controller struct {
	entries []Entry
	cursor  int
	moved   bool
}

// NewController builds a controller for the catalog with no row highlighted
func NewController(cat *profile.Catalog) *Controller {
	return &Controller{entries: BuildEntries(cat.Names())}
}

// Entries returns the selection list
func (c *Controller) Entries() []Entry {
	return c.entries
}

// Len returns the number of rows including the header and both sentinels
func (c *Controller) Len() int {
	return len(c.entries)
}

// Cursor returns the highlighted row; ok is false until the first move
func (c *Controller) Cursor() (index int, ok bool) {
	return c.cursor, c.moved
}

func (c *Controller) last() int {
	return len(c.entries) - 1
}

// MoveUp moves one row up, never onto the header
func (c *Controller) MoveUp() {
	if !c.moved || c.cursor <= 1 {
		return
	}
	c.cursor--
}

// MoveDown moves one row down. The first move lands on the row after the header.
func (c *Controller) MoveDown() {
	if !c.moved {
		c.cursor = 1
		c.moved = true
		return
	}
	if c.cursor < c.last() {
		c.cursor++
	}
}

// Confirm resolves the highlighted row
func (c *Controller) Confirm() Result {
	switch {
	case !c.moved || c.cursor == 0:
		return Result{Kind: NoOp}
	case c.cursor == 1:
		return Result{Kind: ClearRequested}
	case c.cursor == c.last():
		return Result{Kind: CreateRequested}
	default:
		return Result{Kind: ApplyRequested, ProfileIndex: c.cursor - 2}
	}
}
