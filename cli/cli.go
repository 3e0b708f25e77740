// Package cli provides terminal I/O, output formatting, and meta-command
// dispatch for the TextQuest game engine.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nathoo/textquest/engine"
	"github.com/nathoo/textquest/engine/save"
	"github.com/nathoo/textquest/types"
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Engine    *engine.Engine
	In        io.Reader
	Out       io.Writer
	SaveDir   string
	Trace     bool   // dump the parsed command and state after each turn
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again"/"g" repeat
}

// New creates a CLI wired to the given engine.
func New(eng *engine.Engine) *CLI {
	home, _ := os.UserHomeDir()
	return &CLI{
		Engine:  eng,
		In:      os.Stdin,
		Out:     os.Stdout,
		SaveDir: filepath.Join(home, ".textquest", "saves"),
	}
}

// Run starts the game loop: intro, then prompt → input → dispatch →
// output, until the session reaches a terminal status or input ends.
func (c *CLI) Run() {
	for _, line := range c.Engine.Intro() {
		c.printLine(line)
	}

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		// Meta-commands start with '/'.
		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return // /quit
			}
			continue
		}

		// "again" / "g" repeats the last game command.
		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		result := c.Engine.Step(input)
		c.printResult(result)

		if c.Trace {
			c.printTrace(result)
		}

		if result.Status.Terminal() {
			return
		}
	}
}

// handleMeta dispatches meta-commands. Returns true if the game should exit.
func (c *CLI) handleMeta(input string) bool {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/save":
		c.cmdSave(arg)

	case "/load":
		c.cmdLoad(arg)

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState()

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

func (c *CLI) cmdSave(name string) {
	if name == "" {
		name = "quicksave"
	}

	if err := os.MkdirAll(c.SaveDir, 0o755); err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}

	path := filepath.Join(c.SaveDir, name+".json")
	if err := save.Snapshot(path, c.Engine.World.Meta.Title, c.Engine.State.Game()); err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}

	c.printSystem(fmt.Sprintf("Game saved to %s.", name))
}

func (c *CLI) cmdLoad(name string) {
	if name == "" {
		name = "quicksave"
	}

	path := filepath.Join(c.SaveDir, name+".json")
	gs, err := save.Restore(path)
	if err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}

	c.Engine.Restore(gs)
	c.printSystem(fmt.Sprintf("Game loaded from %s (turn %d).", name, gs.Turns))

	// Show current room after loading.
	c.printResult(c.Engine.Step("look"))
}

func (c *CLI) cmdHelp() {
	help := []string{
		"System:",
		"  /save [name]  — Save game (default: quicksave)",
		"  /load [name]  — Load game (default: quicksave)",
		"  /quit         — Exit game",
		"  /help         — Show this help",
		"  /state        — Debug: dump current state",
		"  /trace        — Toggle per-turn trace output",
		"",
		"Game commands:",
	}
	for _, line := range help {
		c.printLine(line)
	}
	for _, line := range c.Engine.Step("help").Output {
		c.printLine("  " + line)
	}
}

func (c *CLI) cmdState() {
	s := c.Engine.State
	c.printSystem(fmt.Sprintf("Turn: %d", s.Turns()))
	c.printSystem(fmt.Sprintf("Location: %s", s.CurrentRoom()))
	c.printSystem(fmt.Sprintf("Inventory: %v", s.Inventory()))
	if flags := s.Game().Flags; len(flags) > 0 {
		c.printSystem(fmt.Sprintf("Flags: %v", flags))
	}
	c.printSystem(fmt.Sprintf("Status: %s", s.Status()))
}

func (c *CLI) printResult(result types.TurnResult) {
	for _, line := range result.Output {
		c.printLine(line)
	}
}

func (c *CLI) printTrace(result types.TurnResult) {
	if cmd := result.Command; cmd != nil {
		line := "[trace] verb=" + cmd.Verb
		if cmd.Direct != nil {
			line += " direct=" + strings.Join(cmd.Direct.Words, " ")
		}
		if cmd.Preposition != "" {
			line += " prep=" + cmd.Preposition
		}
		if cmd.Indirect != nil {
			line += " indirect=" + strings.Join(cmd.Indirect.Words, " ")
		}
		c.printLine(line)
	}
	s := c.Engine.State
	c.printLine(fmt.Sprintf("[trace] turn=%d room=%s status=%s", s.Turns(), s.CurrentRoom(), s.Status()))
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
