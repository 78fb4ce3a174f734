package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/npillmayer/rope"
	"github.com/npillmayer/rope/metrics"
	"github.com/npillmayer/schuko/gtrace"
)

// shell executes editing commands on a text.
type shell struct {
	text    *rope.Shared
	history []rope.Rope // snapshots before each edit, for undo
	out     io.Writer
	prompt  string
	info    *color.Color
	fail    *color.Color
	hilite  *color.Color
}

var errQuit = errors.New("quit")

type command struct {
	args  string
	help  string
	nargs int // number of positional arguments before free text
	text  bool
	exec  func(sh *shell, pos []uint64, text string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"insert": {"<i> <text>", "insert text at position i", 1, true, (*shell).insert},
		"delete": {"<i> <j>", "delete characters [i,j)", 2, false, (*shell).delete},
		"update": {"<i> <text>", "overwrite text starting at position i", 1, true, (*shell).update},
		"lookup": {"<i>", "show the character at position i", 1, false, (*shell).lookup},
		"render": {"[<i> <l>]", "print the text, or l characters from i", 0, false, (*shell).render},
		"len":    {"", "show length and statistics", 0, false, (*shell).stats},
		"check":  {"", "check the rope's invariants", 0, false, (*shell).check},
		"dot":    {"", "print the rope's tree in Graphviz format", 0, false, (*shell).dot},
		"wrap":   {"[<width>]", "print the text wrapped to width", 0, false, (*shell).wrap},
		"words":  {"", "count words", 0, false, (*shell).words},
		"lines":  {"", "count lines", 0, false, (*shell).lines},
		"balance": {"", "compact and rebalance the rope", 0, false,
			func(sh *shell, _ []uint64, _ string) error {
				return sh.edit(func(r *rope.Rope) error { r.Rebalance(); return nil })
			}},
		"undo": {"", "revert the last edit", 0, false, (*shell).undo},
		"help": {"", "list commands", 0, false, (*shell).help},
		"quit": {"", "leave the shell", 0, false,
			func(*shell, []uint64, string) error { return errQuit }},
	}
}

func newShell(text rope.Rope, out io.Writer) *shell {
	return &shell{
		text:   rope.NewShared(text),
		out:    out,
		info:   color.New(color.FgBlue),
		fail:   color.New(color.FgRed),
		hilite: color.New(color.FgGreen, color.Bold),
	}
}

// run reads commands from in until end of input or 'quit'.
func (sh *shell) run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	fmt.Fprint(sh.out, sh.prompt)
	for scanner.Scan() {
		err := sh.exec(scanner.Text())
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			sh.fail.Fprintf(sh.out, "error: %v\n", err)
		}
		fmt.Fprint(sh.out, sh.prompt)
	}
	return scanner.Err()
}

// exec parses and executes a single command line.
func (sh *shell) exec(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	name, rest, _ := strings.Cut(line, " ")
	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("unknown command %q, try 'help'", name)
	}
	gtrace.CoreTracer.Debugf("ropesh: %s %s", name, rest)
	fields := strings.Fields(rest)
	if cmd.text {
		fields = strings.SplitN(strings.TrimLeft(rest, " "), " ", cmd.nargs+1)
	}
	if len(fields) < cmd.nargs {
		return fmt.Errorf("usage: %s %s", name, cmd.args)
	}
	var pos []uint64
	for _, f := range fields {
		if cmd.text && len(pos) == cmd.nargs {
			break
		}
		n, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			return fmt.Errorf("usage: %s %s", name, cmd.args)
		}
		pos = append(pos, n)
	}
	var text string
	if cmd.text {
		if len(fields) > cmd.nargs {
			text = fields[cmd.nargs]
		}
		var err error
		if text, err = unquote(text); err != nil {
			return err
		}
	}
	return cmd.exec(sh, pos, text)
}

// unquote interprets text in Go string syntax if it is enclosed in double
// quotes, allowing for escapes like \n.
func unquote(text string) (string, error) {
	if len(text) >= 2 && strings.HasPrefix(text, `"`) && strings.HasSuffix(text, `"`) {
		return strconv.Unquote(text)
	}
	return text, nil
}

// edit applies f to the text and remembers the previous version for undo.
func (sh *shell) edit(f func(*rope.Rope) error) error {
	before := sh.text.Snapshot()
	if err := sh.text.Edit(f); err != nil {
		return err
	}
	sh.history = append(sh.history, before)
	return nil
}

// --- Commands --------------------------------------------------------------

func (sh *shell) insert(pos []uint64, text string) error {
	return sh.edit(func(r *rope.Rope) error { return r.Insert(pos[0], text) })
}

func (sh *shell) delete(pos []uint64, _ string) error {
	return sh.edit(func(r *rope.Rope) error { return r.Delete(pos[0], pos[1]) })
}

func (sh *shell) update(pos []uint64, text string) error {
	return sh.edit(func(r *rope.Rope) error { return r.Update(pos[0], text) })
}

func (sh *shell) lookup(pos []uint64, _ string) error {
	text := sh.text.Snapshot()
	ch, err := text.Lookup(pos[0])
	if err != nil {
		return err
	}
	sh.hilite.Fprintf(sh.out, "%q", ch)
	sh.info.Fprintf(sh.out, " %U\n", ch)
	return nil
}

func (sh *shell) render(pos []uint64, _ string) error {
	text := sh.text.Snapshot()
	if len(pos) == 2 {
		s, err := text.Report(pos[0], pos[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(sh.out, s)
		return nil
	}
	if _, err := text.WriteTo(sh.out); err != nil {
		return err
	}
	fmt.Fprintln(sh.out)
	return nil
}

func (sh *shell) stats([]uint64, string) error {
	text := sh.text.Snapshot()
	sum := text.Summary()
	sh.info.Fprintf(sh.out, "%d characters, %d bytes, %d newlines, %d fragments, height %d\n",
		sum.Chars, sum.Bytes, sum.Lines, text.FragmentCount(), text.Height())
	return nil
}

func (sh *shell) check([]uint64, string) error {
	text := sh.text.Snapshot()
	if err := text.Check(); err != nil {
		return err
	}
	sh.hilite.Fprintln(sh.out, "ok")
	return nil
}

func (sh *shell) dot([]uint64, string) error {
	return rope.Rope2Dot(sh.text.Snapshot(), sh.out)
}

func (sh *shell) wrap(pos []uint64, _ string) error {
	width := terminalWidth(80)
	if len(pos) > 0 {
		width = int(pos[0])
	}
	text := sh.text.Snapshot()
	lines, err := metrics.WrapLines(&text, metrics.WrapConfig{LineWidth: width})
	if err != nil {
		return err
	}
	for _, line := range lines {
		fmt.Fprintln(sh.out, strings.TrimRight(line.String(), "\n"))
	}
	return nil
}

func (sh *shell) words([]uint64, string) error {
	text := sh.text.Snapshot()
	n, err := metrics.Count(&text, 0, text.Len(), metrics.Words())
	if err != nil {
		return err
	}
	sh.info.Fprintf(sh.out, "%d words\n", n)
	return nil
}

func (sh *shell) lines([]uint64, string) error {
	text := sh.text.Snapshot()
	n, err := metrics.Count(&text, 0, text.Len(), metrics.LineCount())
	if err != nil {
		return err
	}
	sh.info.Fprintf(sh.out, "%d lines\n", n)
	return nil
}

func (sh *shell) undo([]uint64, string) error {
	if len(sh.history) == 0 {
		return errors.New("nothing to undo")
	}
	prev := sh.history[len(sh.history)-1]
	sh.history = sh.history[:len(sh.history)-1]
	return sh.text.Edit(func(r *rope.Rope) error {
		*r = prev
		return nil
	})
}

func (sh *shell) help([]uint64, string) error {
	for _, name := range []string{"insert", "delete", "update", "lookup", "render", "len",
		"check", "dot", "wrap", "words", "lines", "balance", "undo", "help", "quit"} {
		cmd := commands[name]
		sh.hilite.Fprintf(sh.out, "%-8s", name)
		fmt.Fprintf(sh.out, " %-12s %s\n", cmd.args, cmd.help)
	}
	return nil
}
