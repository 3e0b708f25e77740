// Package types defines the shared data structures for the TextQuest engine.
// It contains only type definitions; no logic, no methods beyond trivial
// accessors.
package types

// Status is the lifecycle state of a play session.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusLost       Status = "lost"
	StatusQuit       Status = "quit"
)

// Terminal reports whether the session has ended.
func (s Status) Terminal() bool {
	return s != StatusInProgress
}

// Metadata describes the world itself.
type Metadata struct {
	Title   string
	Author  string
	Version string
	Intro   string
}

// Exit is one direction leading out of a room. Locked exits require the
// key object to be used on them (or an action to clear the lock) before
// movement succeeds.
type Exit struct {
	Target string

	// Door names an object whose "locked" attribute gates this exit.
	// Without one, Locked seeds the exit's own lock state instead.
	Door        string
	Locked      bool
	KeyObject   string
	LockMessage string
	Hidden      bool
}

// ExitAttrID is the pseudo-object ID under which a doorless exit's
// mutable lock state lives in GameState.Attrs.
func ExitAttrID(room, direction string) string {
	return "exit:" + room + ":" + direction
}

// Room is a location in the world.
type Room struct {
	ID          string
	Name        string
	Description string
	FirstVisit  string // optional description shown only on the first visit
	Exits       map[string]Exit
	Objects     []string // object IDs initially located here
}

// ActionKey identifies a custom action on an object: a verb, optionally
// qualified by the indirect object it must be paired with. Authored as
// "verb" or "verb:target_id" and compiled to this struct at load time.
type ActionKey struct {
	Verb   string
	Target string
}

// Action is a data-declared behavior overriding built-in verb semantics.
type Action struct {
	Message        string
	Condition      string // boolean expression, compiled at load time
	FailMessage    string
	StateChanges   map[string]any // "obj.attr" or flag name → literal value
	RevealsObject  string
	MovesPlayer    string
	ConsumesObject bool
}

// Object is an interactive thing in the world.
type Object struct {
	ID          string
	Name        string
	Adjectives  []string
	Description string
	ExamineText string
	Location    string // room ID, container object ID, "inventory", or "nowhere"

	Takeable  bool
	Droppable bool
	Readable  bool
	ReadText  string
	Openable  bool
	Open      bool
	Container bool
	Contains  []string
	Lockable  bool
	Locked    bool
	KeyObject string
	Scenery   bool
	Hidden    bool

	Actions map[ActionKey]*Action
}

// VerbDef declares a world-specific custom verb.
type VerbDef struct {
	Verb             string
	Aliases          []string
	RequiresObject   bool
	RequiresIndirect bool
	Prepositions     []string
	DefaultMessage   string
}

// Win condition kinds.
const (
	WinReachRoom    = "reach_room"
	WinHaveObject   = "have_object"
	WinFlagSet      = "flag_set"
	WinObjectInRoom = "object_in_room"
	WinAllOf        = "all_of"
	WinAnyOf        = "any_of"
)

// WinCondition is a predicate over GameState checked after each turn.
type WinCondition struct {
	Kind       string
	Room       string
	Object     string
	Flag       string
	Conditions []*WinCondition // for all_of / any_of
	Message    string
}

// LoseCondition ends the session in defeat, e.g. a turn limit.
type LoseCondition struct {
	TurnLimit int
	Message   string
}

// StartState is the initial session configuration.
type StartState struct {
	Room      string
	Inventory []string
	Flags     map[string]any
}

// World is a complete, immutable world definition. It is owned by the
// engine for the session lifetime and never mutated.
type World struct {
	Meta    Metadata
	Rooms   map[string]*Room
	Objects map[string]*Object
	Verbs   []VerbDef
	Start   StartState
	Win     *WinCondition
	Lose    *LoseCondition
}

// LocationKind tags where an object currently is.
type LocationKind string

const (
	InRoom      LocationKind = "room"
	InInventory LocationKind = "inventory"
	InContainer LocationKind = "container"
	Nowhere     LocationKind = "nowhere"
)

// Location is the single place an object occupies. Every object has
// exactly one Location at all times.
type Location struct {
	Kind LocationKind `json:"kind"`
	ID   string       `json:"id,omitempty"` // room or container ID
}

// GameState is the complete mutable state of one play session.
type GameState struct {
	CurrentRoom string                    `json:"current_room"`
	Locations   map[string]Location       `json:"locations"`
	Attrs       map[string]map[string]any `json:"attrs"`
	Flags       map[string]any            `json:"flags"`
	Visited     map[string]bool           `json:"visited"`
	Turns       int                       `json:"turns"`
	Status      Status                    `json:"status"`
	EndMessage  string                    `json:"end_message,omitempty"`
}

// NounPhrase is an unresolved object reference from the parser: the words
// of the phrase with articles removed, in input order. The last word is
// the head noun; everything before it is treated as adjectives.
type NounPhrase struct {
	Words []string
	Raw   string
}

// Command is the parsed, not-yet-resolved form of one turn's input.
type Command struct {
	Verb        string // canonical verb name
	Direct      *NounPhrase
	Preposition string
	Indirect    *NounPhrase
	Raw         string
}

// TurnResult is the output of one engine turn. Command is the canonical
// parsed form of the input, nil when parsing failed.
type TurnResult struct {
	Output  []string
	Status  Status
	Command *Command
}
