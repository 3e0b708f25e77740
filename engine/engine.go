// Package engine orchestrates one turn of play: parse, resolve, consult
// custom actions, fall back to built-in verb handlers, then re-check the
// win and lose conditions. The engine exclusively owns the mutable game
// state; everything it returns is narrative text plus a status.
package engine

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/nathoo/textquest/engine/cond"
	"github.com/nathoo/textquest/engine/effects"
	"github.com/nathoo/textquest/engine/lexer"
	"github.com/nathoo/textquest/engine/parser"
	"github.com/nathoo/textquest/engine/scope"
	"github.com/nathoo/textquest/engine/state"
	"github.com/nathoo/textquest/engine/vocab"
	"github.com/nathoo/textquest/types"
)

// Engine runs a single play session over an immutable world.
type Engine struct {
	World *types.World
	State *state.State

	vocab *vocab.Vocabulary
	conds map[string]cond.Expr
}

// New builds an engine with a fresh starting state. The world is
// assumed validated by the loader; condition expressions are compiled
// here once so evaluation during play cannot fail.
func New(w *types.World) (*Engine, error) {
	v, err := vocab.New(w.Verbs)
	if err != nil {
		return nil, err
	}

	conds := make(map[string]cond.Expr)
	for id, obj := range w.Objects {
		for key, action := range obj.Actions {
			if action.Condition == "" {
				continue
			}
			expr, err := cond.Parse(action.Condition)
			if err != nil {
				return nil, fmt.Errorf("object %q, action %q: %w", id, key.Verb, err)
			}
			conds[action.Condition] = expr
		}
	}

	return &Engine{
		World: w,
		State: state.New(w),
		vocab: v,
		conds: conds,
	}, nil
}

// Restore replaces the session state with a loaded snapshot.
func (e *Engine) Restore(gs *types.GameState) {
	e.State = state.Wrap(gs)
}

// Vocabulary exposes the merged verb table, for help text and tooling.
func (e *Engine) Vocabulary() *vocab.Vocabulary { return e.vocab }

// Intro returns the opening narrative: metadata banner plus the
// starting room.
func (e *Engine) Intro() []string {
	var out []string
	if t := e.World.Meta.Title; t != "" {
		out = append(out, t)
	}
	if a := e.World.Meta.Author; a != "" {
		out = append(out, "by "+a)
	}
	if i := e.World.Meta.Intro; i != "" {
		out = append(out, "", i)
	}
	out = append(out, "")
	return append(out, e.describeRoom(true)...)
}

// Step runs one full turn. Parse and resolution failures report their
// message without consuming a turn; executed commands consume a turn
// even when the verb's preconditions fail.
func (e *Engine) Step(raw string) types.TurnResult {
	if e.State.Status().Terminal() {
		return e.reply("The game is over.")
	}

	cmd, err := parser.Parse(raw, e.vocab)
	if err != nil {
		if errors.Is(err, lexer.ErrEmptyInput) {
			return e.reply("I beg your pardon?")
		}
		return e.reply(err.Error())
	}

	out, ok := e.dispatch(cmd)
	if ok {
		e.State.EndTurn()
		if e.State.Status() == types.StatusInProgress {
			out = append(out, e.checkEndings()...)
		}
	}

	res := e.reply(out...)
	res.Command = cmd
	return res
}

// dispatch executes the command. ok reports whether a turn was
// consumed; resolution failures are reported without one.
func (e *Engine) dispatch(cmd *types.Command) (out []string, ok bool) {
	switch cmd.Verb {
	case "quit":
		e.State.End(types.StatusQuit, "")
		return []string{"Goodbye."}, false
	case "go":
		return e.doGo(cmd.Direct.Words[0]), true
	case "look":
		return e.describeRoom(false), true
	case "inventory":
		return e.doInventory(), true
	case "wait":
		return []string{"Time passes."}, true
	case "help":
		// Help is meta; it costs no turn.
		return e.doHelp(), false
	}

	entry, _ := e.vocab.Entry(cmd.Verb)

	if cmd.Direct == nil {
		// Objectless custom verbs answer with their default line.
		if entry != nil && entry.Custom {
			return []string{defaultLine(entry)}, true
		}
		return []string{capitalize(cmd.Verb) + " what?"}, false
	}

	directID, err := e.resolveDirect(cmd)
	if err != nil {
		return []string{err.Error()}, false
	}

	indirectID := ""
	if cmd.Indirect != nil {
		indirectID, err = scope.Resolve(cmd.Indirect, e.World, e.State)
		if err != nil {
			return []string{err.Error()}, false
		}
	}

	if lines, found := e.tryCustomAction(cmd.Verb, directID, indirectID); found {
		return lines, true
	}

	return e.builtin(cmd, directID, indirectID), true
}

// resolveDirect maps the direct phrase to an object ID. DROP searches
// the inventory first so an identical object lying nearby cannot make
// a carried one ambiguous.
func (e *Engine) resolveDirect(cmd *types.Command) (string, error) {
	if cmd.Verb == "drop" {
		id, err := scope.ResolveInventory(cmd.Direct, e.World, e.State)
		var nf *scope.NotFoundError
		if errors.As(err, &nf) {
			if _, visErr := scope.Resolve(cmd.Direct, e.World, e.State); visErr == nil {
				return "", errors.New("You're not carrying that.")
			}
		}
		return id, err
	}
	return scope.Resolve(cmd.Direct, e.World, e.State)
}

// tryCustomAction looks for a data-declared action. The key's target
// is the other object of the command: actions normally live on the
// direct object keyed by the indirect ID, but for GIVE and SHOW the
// recipient holds the reaction, keyed by what is offered.
func (e *Engine) tryCustomAction(verb, directID, indirectID string) ([]string, bool) {
	host, target := directID, indirectID
	if (verb == "give" || verb == "show") && indirectID != "" {
		host, target = indirectID, directID
	}

	obj := e.World.Objects[host]
	if obj == nil || obj.Actions == nil {
		return nil, false
	}
	action := obj.Actions[types.ActionKey{Verb: verb, Target: target}]
	if action == nil && target != "" {
		action = obj.Actions[types.ActionKey{Verb: verb}]
	}
	if action == nil {
		return nil, false
	}

	if action.Condition != "" {
		expr := e.conds[action.Condition]
		if expr == nil || !expr.Eval(e.State) {
			if action.FailMessage != "" {
				return []string{action.FailMessage}, true
			}
			return []string{"Nothing happens."}, true
		}
	}

	res := effects.Apply(action, host, e.State)
	lines := []string{}
	if action.Message != "" {
		lines = append(lines, action.Message)
	}
	if res.MovedPlayer {
		lines = append(lines, "")
		lines = append(lines, e.describeRoom(res.FirstVisit)...)
	}
	if len(lines) == 0 {
		lines = []string{"Nothing happens."}
	}
	return lines, true
}

func (e *Engine) builtin(cmd *types.Command, directID, indirectID string) []string {
	obj := e.World.Objects[directID]
	switch cmd.Verb {
	case "take":
		return e.doTake(obj)
	case "drop":
		return e.doDrop(obj)
	case "examine":
		return e.doExamine(obj)
	case "read":
		return e.doRead(obj)
	case "open":
		return e.doOpen(obj)
	case "close":
		return e.doClose(obj)
	case "lock":
		return e.doLock(obj, indirectID)
	case "unlock":
		return e.doUnlock(obj, indirectID)
	case "put":
		return e.doPut(obj, indirectID)
	case "give", "show":
		recipient := e.World.Objects[indirectID]
		if recipient == nil {
			return []string{capitalize(cmd.Verb) + " it to whom?"}
		}
		return []string{capitalize(the(recipient)) + " doesn't seem interested."}
	case "use":
		if indirectID != "" {
			return []string{"They don't work together."}
		}
		return []string{"You can't use that here."}
	case "talk":
		return []string{"There's no reply."}
	}

	if entry, ok := e.vocab.Entry(cmd.Verb); ok {
		return []string{defaultLine(entry)}
	}
	return []string{"Nothing happens."}
}

func (e *Engine) doGo(direction string) []string {
	roomID := e.State.CurrentRoom()
	room := e.World.Rooms[roomID]
	exit, ok := room.Exits[direction]
	exitID := types.ExitAttrID(roomID, direction)
	if !ok || e.State.Hidden(exitID) {
		return []string{"You can't go that way."}
	}

	var out []string
	if e.exitLocked(exit, exitID) {
		keyName := ""
		if exit.KeyObject != "" && e.State.Carrying(exit.KeyObject) {
			keyName = e.World.Objects[exit.KeyObject].Name
		}
		if keyName == "" {
			if exit.LockMessage != "" {
				return []string{exit.LockMessage}
			}
			return []string{"The way " + direction + " is locked."}
		}
		e.unlockExit(exit, exitID)
		out = append(out, "(first unlocking it with the "+keyName+")")
	}

	first := e.State.MovePlayer(exit.Target)
	return append(out, e.describeRoom(first)...)
}

func (e *Engine) exitLocked(exit types.Exit, exitID string) bool {
	if exit.Door != "" {
		return e.State.Locked(exit.Door)
	}
	return e.State.Locked(exitID)
}

func (e *Engine) unlockExit(exit types.Exit, exitID string) {
	if exit.Door != "" {
		e.State.SetAttr(exit.Door, "locked", false)
		return
	}
	e.State.SetAttr(exitID, "locked", false)
}

func (e *Engine) doTake(obj *types.Object) []string {
	if e.State.Carrying(obj.ID) {
		return []string{"You're already carrying that."}
	}
	if !obj.Takeable {
		return []string{"You can't take that."}
	}
	e.State.MoveObject(obj.ID, types.Location{Kind: types.InInventory})
	return []string{"Taken."}
}

func (e *Engine) doDrop(obj *types.Object) []string {
	if !e.State.Carrying(obj.ID) {
		return []string{"You're not carrying that."}
	}
	if !obj.Droppable {
		return []string{"You can't put that down."}
	}
	e.State.MoveObject(obj.ID, types.Location{Kind: types.InRoom, ID: e.State.CurrentRoom()})
	return []string{"Dropped."}
}

func (e *Engine) doExamine(obj *types.Object) []string {
	text := obj.ExamineText
	if text == "" {
		text = obj.Description
	}
	if text == "" {
		text = "You see nothing special about " + the(obj) + "."
	}
	out := []string{text}

	if obj.Container {
		switch {
		case !e.State.Open(obj.ID) && obj.Openable:
			out = append(out, capitalize(the(obj))+" is closed.")
		default:
			out = append(out, e.contentsLine(obj))
		}
	}
	return out
}

func (e *Engine) doRead(obj *types.Object) []string {
	if !obj.Readable {
		return []string{"There's nothing written on " + the(obj) + "."}
	}
	if obj.ReadText != "" {
		return []string{obj.ReadText}
	}
	if obj.Description != "" {
		return []string{obj.Description}
	}
	return []string{"There's nothing written on " + the(obj) + "."}
}

func (e *Engine) doOpen(obj *types.Object) []string {
	if !obj.Openable {
		return []string{"You can't open that."}
	}
	if e.State.Locked(obj.ID) {
		return []string{"It's locked."}
	}
	if e.State.Open(obj.ID) {
		return []string{"It's already open."}
	}
	e.State.SetAttr(obj.ID, "open", true)
	out := []string{"Opened."}
	if obj.Container && len(e.State.ObjectsIn(obj.ID)) > 0 {
		out = append(out, e.contentsLine(obj))
	}
	return out
}

func (e *Engine) doClose(obj *types.Object) []string {
	if !obj.Openable {
		return []string{"You can't close that."}
	}
	if !e.State.Open(obj.ID) {
		return []string{"It's already closed."}
	}
	e.State.SetAttr(obj.ID, "open", false)
	return []string{"Closed."}
}

func (e *Engine) doLock(obj *types.Object, keyID string) []string {
	if !obj.Lockable {
		return []string{"You can't lock that."}
	}
	if e.State.Locked(obj.ID) {
		return []string{"It's already locked."}
	}
	if e.State.Open(obj.ID) {
		return []string{"You'll have to close it first."}
	}
	if msg, ok := e.checkKey(obj, keyID, "lock"); !ok {
		return []string{msg}
	}
	e.State.SetAttr(obj.ID, "locked", true)
	return []string{"Locked."}
}

func (e *Engine) doUnlock(obj *types.Object, keyID string) []string {
	if !obj.Lockable {
		return []string{"You can't unlock that."}
	}
	if !e.State.Locked(obj.ID) {
		return []string{"It's already unlocked."}
	}
	if msg, ok := e.checkKey(obj, keyID, "unlock"); !ok {
		return []string{msg}
	}
	e.State.SetAttr(obj.ID, "locked", false)
	return []string{"Unlocked."}
}

// checkKey enforces the required-key rule for LOCK and UNLOCK. The key
// must be named, carried, and the right one.
func (e *Engine) checkKey(obj *types.Object, keyID, verb string) (string, bool) {
	if obj.KeyObject == "" {
		return "", true
	}
	if keyID == "" {
		return capitalize(verb) + " it with what?", false
	}
	if !e.State.Carrying(keyID) {
		return "You're not holding " + the(e.World.Objects[keyID]) + ".", false
	}
	if keyID != obj.KeyObject {
		return "It doesn't fit.", false
	}
	return "", true
}

func (e *Engine) doPut(obj *types.Object, containerID string) []string {
	if containerID == "" {
		return []string{"Put " + the(obj) + " in what?"}
	}
	container := e.World.Objects[containerID]
	if !e.State.Carrying(obj.ID) {
		return []string{"You're not carrying that."}
	}
	if obj.ID == containerID {
		return []string{"You can't put something inside itself."}
	}
	if !container.Container {
		return []string{"You can't put things in " + the(container) + "."}
	}
	if !e.State.Open(containerID) {
		return []string{capitalize(the(container)) + " is closed."}
	}
	e.State.MoveObject(obj.ID, types.Location{Kind: types.InContainer, ID: containerID})
	return []string{"You put the " + obj.Name + " in the " + container.Name + "."}
}

func (e *Engine) doInventory() []string {
	ids := e.State.Inventory()
	if len(ids) == 0 {
		return []string{"You aren't carrying anything."}
	}
	out := []string{"You are carrying:"}
	for _, id := range ids {
		out = append(out, "  "+indefinite(e.World.Objects[id].Name))
	}
	return out
}

func (e *Engine) doHelp() []string {
	out := []string{
		"Commands are of the form VERB, VERB NOUN, or VERB NOUN PREPOSITION NOUN.",
		"Movement: north, south, east, west, up, down, in, out (or GO <direction>).",
		"Common verbs: take, drop, examine, read, open, close, lock, unlock,",
		"put, give, use, talk, inventory, look, wait, quit.",
	}
	var custom []string
	for _, def := range e.World.Verbs {
		custom = append(custom, def.Verb)
	}
	if len(custom) > 0 {
		sort.Strings(custom)
		out = append(out, "This game also understands: "+strings.Join(custom, ", ")+".")
	}
	return out
}

// describeRoom renders the current room: name, description (the
// first-visit variant when applicable), visible objects, and exits.
func (e *Engine) describeRoom(firstVisit bool) []string {
	room := e.World.Rooms[e.State.CurrentRoom()]
	out := []string{room.Name}

	desc := room.Description
	if firstVisit && room.FirstVisit != "" {
		desc = room.FirstVisit
	}
	if desc != "" {
		out = append(out, desc)
	}

	for _, id := range e.State.ObjectsInRoom(room.ID) {
		obj := e.World.Objects[id]
		if obj.Scenery || e.State.Hidden(id) {
			continue
		}
		out = append(out, "There is "+indefinite(obj.Name)+" here.")
		if obj.Container && e.State.Open(id) && len(e.State.ObjectsIn(id)) > 0 {
			out = append(out, e.contentsLine(obj))
		}
	}

	if exits := e.visibleExits(room); len(exits) > 0 {
		out = append(out, "Exits: "+strings.Join(exits, ", ")+".")
	}
	return out
}

func (e *Engine) visibleExits(room *types.Room) []string {
	var dirs []string
	for dir := range room.Exits {
		if !e.State.Hidden(types.ExitAttrID(room.ID, dir)) {
			dirs = append(dirs, dir)
		}
	}
	sort.Strings(dirs)
	return dirs
}

func (e *Engine) contentsLine(container *types.Object) string {
	ids := e.State.ObjectsIn(container.ID)
	if len(ids) == 0 {
		return capitalize(the(container)) + " is empty."
	}
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = indefinite(e.World.Objects[id].Name)
	}
	return capitalize(the(container)) + " contains " + joinAnd(names) + "."
}

// checkEndings evaluates win before lose, so winning on the final
// allowed turn still wins.
func (e *Engine) checkEndings() []string {
	if e.World.Win != nil && e.winMet(e.World.Win) {
		msg := e.World.Win.Message
		if msg == "" {
			msg = "You have won."
		}
		e.State.End(types.StatusWon, msg)
		return []string{"", "*** " + msg + " ***"}
	}
	if l := e.World.Lose; l != nil && l.TurnLimit > 0 && e.State.Turns() >= l.TurnLimit {
		msg := l.Message
		if msg == "" {
			msg = "You have run out of time."
		}
		e.State.End(types.StatusLost, msg)
		return []string{"", "*** " + msg + " ***"}
	}
	return nil
}

func (e *Engine) winMet(wc *types.WinCondition) bool {
	switch wc.Kind {
	case types.WinReachRoom:
		return e.State.CurrentRoom() == wc.Room
	case types.WinHaveObject:
		return e.State.Carrying(wc.Object)
	case types.WinFlagSet:
		return e.State.FlagSet(wc.Flag)
	case types.WinObjectInRoom:
		loc := e.State.Location(wc.Object)
		return loc.Kind == types.InRoom && loc.ID == wc.Room
	case types.WinAllOf:
		for _, child := range wc.Conditions {
			if !e.winMet(child) {
				return false
			}
		}
		return len(wc.Conditions) > 0
	case types.WinAnyOf:
		for _, child := range wc.Conditions {
			if e.winMet(child) {
				return true
			}
		}
		return false
	}
	return false
}

func (e *Engine) reply(lines ...string) types.TurnResult {
	return types.TurnResult{Output: lines, Status: e.State.Status()}
}

func defaultLine(entry *vocab.Entry) string {
	if entry.DefaultMessage != "" {
		return entry.DefaultMessage
	}
	return "Nothing happens."
}

func the(obj *types.Object) string {
	return "the " + obj.Name
}

func indefinite(name string) string {
	if name == "" {
		return name
	}
	switch name[0] {
	case 'a', 'e', 'i', 'o', 'u', 'A', 'E', 'I', 'O', 'U':
		return "an " + name
	}
	return "a " + name
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func joinAnd(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
}
