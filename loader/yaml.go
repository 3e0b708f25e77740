package loader

import (
	"bytes"
	"fmt"
	"os"

	"github.com/nathoo/textquest/types"
	"gopkg.in/yaml.v3"
)

// yamlWorld mirrors the Lua schema as a single YAML document.
type yamlWorld struct {
	Title     string                `yaml:"title"`
	Author    string                `yaml:"author"`
	Version   string                `yaml:"version"`
	Intro     string                `yaml:"intro"`
	Start     string                `yaml:"start"`
	Inventory []string              `yaml:"inventory"`
	Flags     map[string]any        `yaml:"flags"`
	Win       *yamlWin              `yaml:"win"`
	Lose      *yamlLose             `yaml:"lose"`
	Rooms     map[string]yamlRoom   `yaml:"rooms"`
	Objects   map[string]yamlObject `yaml:"objects"`
	Verbs     []yamlVerb            `yaml:"verbs"`
}

type yamlRoom struct {
	Name        string              `yaml:"name"`
	Description string              `yaml:"description"`
	FirstVisit  string              `yaml:"first_visit"`
	Exits       map[string]yamlExit `yaml:"exits"`
	Objects     []string            `yaml:"objects"`
}

// yamlExit accepts either the shorthand scalar form ("north: hall") or
// the full mapping form.
type yamlExit struct {
	To          string `yaml:"to"`
	Door        string `yaml:"door"`
	Locked      bool   `yaml:"locked"`
	Key         string `yaml:"key"`
	LockMessage string `yaml:"lock_message"`
	Hidden      bool   `yaml:"hidden"`
}

func (e *yamlExit) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		return node.Decode(&e.To)
	}
	type plain yamlExit
	return node.Decode((*plain)(e))
}

type yamlObject struct {
	Name        string                `yaml:"name"`
	Adjectives  []string              `yaml:"adjectives"`
	Description string                `yaml:"description"`
	Examine     string                `yaml:"examine"`
	Takeable    bool                  `yaml:"takeable"`
	Droppable   *bool                 `yaml:"droppable"`
	Readable    bool                  `yaml:"readable"`
	ReadText    string                `yaml:"read_text"`
	Openable    bool                  `yaml:"openable"`
	Open        bool                  `yaml:"open"`
	Container   bool                  `yaml:"container"`
	Contains    []string              `yaml:"contains"`
	Lockable    bool                  `yaml:"lockable"`
	Locked      bool                  `yaml:"locked"`
	Key         string                `yaml:"key"`
	Scenery     bool                  `yaml:"scenery"`
	Hidden      bool                  `yaml:"hidden"`
	Actions     map[string]yamlAction `yaml:"actions"`
}

type yamlAction struct {
	Message        string         `yaml:"message"`
	Condition      string         `yaml:"condition"`
	FailMessage    string         `yaml:"fail_message"`
	StateChanges   map[string]any `yaml:"state_changes"`
	RevealsObject  string         `yaml:"reveals_object"`
	MovesPlayer    string         `yaml:"moves_player"`
	ConsumesObject bool           `yaml:"consumes_object"`
}

type yamlVerb struct {
	Verb             string   `yaml:"verb"`
	Aliases          []string `yaml:"aliases"`
	RequiresObject   bool     `yaml:"requires_object"`
	RequiresIndirect bool     `yaml:"requires_indirect"`
	Prepositions     []string `yaml:"prepositions"`
	DefaultMessage   string   `yaml:"default_message"`
}

type yamlWin struct {
	Kind       string    `yaml:"kind"`
	Room       string    `yaml:"room"`
	Object     string    `yaml:"object"`
	Flag       string    `yaml:"flag"`
	Message    string    `yaml:"message"`
	Conditions []yamlWin `yaml:"conditions"`
}

type yamlLose struct {
	TurnLimit int    `yaml:"turn_limit"`
	Message   string `yaml:"message"`
}

func loadYAML(path string) (*types.World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading world %s: %w", path, err)
	}

	var doc yamlWorld
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	w := &types.World{
		Meta: types.Metadata{
			Title:   doc.Title,
			Author:  doc.Author,
			Version: doc.Version,
			Intro:   doc.Intro,
		},
		Rooms:   map[string]*types.Room{},
		Objects: map[string]*types.Object{},
		Start: types.StartState{
			Room:      doc.Start,
			Inventory: doc.Inventory,
			Flags:     doc.Flags,
		},
	}

	if doc.Win != nil {
		w.Win = convertWin(*doc.Win)
	}
	if doc.Lose != nil {
		w.Lose = &types.LoseCondition{TurnLimit: doc.Lose.TurnLimit, Message: doc.Lose.Message}
	}

	for id, yr := range doc.Rooms {
		room := &types.Room{
			ID:          id,
			Name:        yr.Name,
			Description: yr.Description,
			FirstVisit:  yr.FirstVisit,
			Objects:     yr.Objects,
			Exits:       map[string]types.Exit{},
		}
		for dir, ye := range yr.Exits {
			room.Exits[dir] = types.Exit{
				Target:      ye.To,
				Door:        ye.Door,
				Locked:      ye.Locked,
				KeyObject:   ye.Key,
				LockMessage: ye.LockMessage,
				Hidden:      ye.Hidden,
			}
		}
		w.Rooms[id] = room
	}

	for id, yo := range doc.Objects {
		obj := &types.Object{
			ID:          id,
			Name:        yo.Name,
			Adjectives:  yo.Adjectives,
			Description: yo.Description,
			ExamineText: yo.Examine,
			Takeable:    yo.Takeable,
			Droppable:   yo.Droppable == nil || *yo.Droppable,
			Readable:    yo.Readable,
			ReadText:    yo.ReadText,
			Openable:    yo.Openable,
			Open:        yo.Open,
			Container:   yo.Container,
			Contains:    yo.Contains,
			Lockable:    yo.Lockable,
			Locked:      yo.Locked,
			KeyObject:   yo.Key,
			Scenery:     yo.Scenery,
			Hidden:      yo.Hidden,
		}
		if len(yo.Actions) > 0 {
			obj.Actions = map[types.ActionKey]*types.Action{}
			for key, ya := range yo.Actions {
				obj.Actions[parseActionKey(key)] = &types.Action{
					Message:        ya.Message,
					Condition:      ya.Condition,
					FailMessage:    ya.FailMessage,
					StateChanges:   ya.StateChanges,
					RevealsObject:  ya.RevealsObject,
					MovesPlayer:    ya.MovesPlayer,
					ConsumesObject: ya.ConsumesObject,
				}
			}
		}
		w.Objects[id] = obj
	}

	for _, yv := range doc.Verbs {
		w.Verbs = append(w.Verbs, types.VerbDef{
			Verb:             yv.Verb,
			Aliases:          yv.Aliases,
			RequiresObject:   yv.RequiresObject,
			RequiresIndirect: yv.RequiresIndirect,
			Prepositions:     yv.Prepositions,
			DefaultMessage:   yv.DefaultMessage,
		})
	}

	return w, nil
}

func convertWin(yw yamlWin) *types.WinCondition {
	wc := &types.WinCondition{
		Kind:    yw.Kind,
		Room:    yw.Room,
		Object:  yw.Object,
		Flag:    yw.Flag,
		Message: yw.Message,
	}
	for _, child := range yw.Conditions {
		wc.Conditions = append(wc.Conditions, convertWin(child))
	}
	return wc
}
