// Package view provides the terminal front ends: an interactive gocui
// screen and a plain line printer for headless runs.
package view

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/lisp-ceo/gol/internal/runner"
	"github.com/lisp-ceo/gol/pkg/life"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"
)

type keyBinding struct {
	key      interface{}
	name     string
	descr    string
	handler  func(v *gocui.View) error
	viewName string
}

// ConsoleUI is the interactive terminal screen. It never touches the
// universe directly; every command goes through the runner and every redraw
// works from a frame snapshot.
type ConsoleUI struct {
	r *runner.Runner
	g *gocui.Gui
	k []keyBinding

	// frame is reused between redraws. Only gocui's update goroutine
	// touches it.
	frame []life.Cell

	liveFiller string
	deadFiller string
}

var runStateDescr = map[runner.RunState]string{
	runner.RunStateManual:   aurora.Colorize("waiting", aurora.BlueFg).String(),
	runner.RunStateStep:     "stepping",
	runner.RunStateRun:      aurora.Colorize("running", aurora.CyanFg).String(),
	runner.RunStateFinished: aurora.Colorize("finished", aurora.RedFg).String(),
}

// NewConsoleUI builds the screen around r. Call Start to enter the main
// loop; register the UI with r.AddViewer so it redraws on changes.
func NewConsoleUI(r *runner.Runner) (*ConsoleUI, error) {
	t := &ConsoleUI{
		r:          r,
		liveFiller: aurora.Green("█").BgBrightGreen().String(),
		deadFiller: "░",
	}

	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return nil, fmt.Errorf("view: init terminal: %w", err)
	}
	t.g = g
	t.g.Mouse = true

	t.k = []keyBinding{
		{gocui.KeyCtrlC, "^C", "Exit", t.cmdQuit, ""},
		{'n', "N", "Next step", t.cmdStep, ""},
		{'r', "R", "Run", t.cmdRun, ""},
		{'s', "S", "Stop", t.cmdStop, ""},
		{'c', "C", "Clear", t.cmdClear, ""},
		{'w', "W", "Randomize", t.cmdRandomize, ""},
		{gocui.MouseLeft, "MOUSE", "Toggle the cell", t.cmdMouseClick, "battlefield"},
	}
	t.g.SetManagerFunc(t.layout)

	for _, kb := range t.k {
		h := kb.handler
		err := t.g.SetKeybinding(kb.viewName, kb.key, gocui.ModNone,
			func(_ *gocui.Gui, view *gocui.View) error { return h(view) })
		if err != nil {
			g.Close()
			return nil, fmt.Errorf("view: bind %v: %w", kb.name, err)
		}
	}
	return t, nil
}

// Start runs the terminal main loop until quit.
func (t *ConsoleUI) Start() error {
	defer t.g.Close()
	if err := t.g.MainLoop(); err != nil && err != gocui.ErrQuit {
		return fmt.Errorf("view: main loop: %w", err)
	}
	return nil
}

// Refresh schedules a redraw of the dynamic panels. Safe to call from the
// runner's control goroutine.
func (t *ConsoleUI) Refresh() {
	t.renderField()
	t.renderStatus()
}

func (t *ConsoleUI) renderField() {
	t.g.Update(func(g *gocui.Gui) error {
		v, err := g.View("battlefield")
		if err != nil {
			return err
		}
		v.Clear()

		frame, size := t.r.Frame(t.frame)
		t.frame = frame

		maxW, maxH := v.Size()
		crop := size.W > maxW || size.H > maxH

		var b bytes.Buffer
		for row := 0; row < size.H; row++ {
			if row >= maxH {
				break
			}
			if row != 0 {
				b.WriteByte('\n')
			}
			if crop && row == maxH-1 {
				b.WriteString(aurora.Red("The universe is larger than the viewing area").BgBlack().String())
				break
			}
			for col := 0; col < size.W; col++ {
				if col >= maxW {
					break
				}
				if frame[row*size.W+col] == life.Alive {
					b.WriteString(t.liveFiller)
				} else {
					b.WriteString(t.deadFiller)
				}
			}
		}
		_, _ = fmt.Fprint(v, b.String())
		return nil
	})
}

func (t *ConsoleUI) renderStatus() {
	s := t.r.Status()
	t.g.Update(func(g *gocui.Gui) error {
		if v, err := g.View("status"); err == nil {
			v.Clear()
			_, _ = fmt.Fprintln(v, t.renderProp("Generation", "%v", s.Generation))
			_, _ = fmt.Fprintln(v, t.renderProp("Population", "%v", s.Population))
			_, _ = fmt.Fprintln(v, t.renderProp("Reseeds", "%v", s.Reseeds))
			_, _ = fmt.Fprintln(v, t.renderProp("Step time", "%v", s.StepTime.Round(time.Microsecond)))
			_, _ = fmt.Fprintln(v, t.renderProp("Mode", "%v", runStateDescr[s.Mode]))
		}
		return nil
	})
}

func (t *ConsoleUI) renderConfiguration() {
	t.g.Update(func(g *gocui.Gui) error {
		v, err := g.View("configuration")
		if err != nil {
			return nil
		}
		v.Clear()

		o := t.r.Options()
		_, size := t.r.Frame(nil)
		_, _ = fmt.Fprintln(v, t.renderProp("Dimension", "%v x %v", size.W, size.H))
		_, _ = fmt.Fprintln(v, t.renderProp("Interval", "%v", o.Interval))
		_, _ = fmt.Fprintln(v, t.renderProp("Max steps", "%v", o.MaxSteps))
		for _, k := range sortedKeys(o.Details) {
			_, _ = fmt.Fprintln(v, t.renderProp(k, "%v", o.Details[k]))
		}
		return nil
	})
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (t *ConsoleUI) renderProp(name string, valueFormat string, values ...interface{}) string {
	return fmt.Sprintf(" "+aurora.Colorize(name, aurora.GreenFg).String()+": "+valueFormat, values...)
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	leftColumnWidth := 28
	minWindowHeight := 20

	if maxY < minWindowHeight {
		if _, err := t.headerLayout(g, maxY, "Terminal height too small"); err != nil {
			if err != gocui.ErrUnknownView {
				return err
			}
		}
		_ = g.DeleteView("configuration")
		_ = g.DeleteView("status")
		_ = g.DeleteView("battlefield")
		return nil
	}
	if _, err := t.headerLayout(g, 3, "Conway's Game of Life"); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
	}

	if v, err := g.SetView("configuration", 0, 3, leftColumnWidth, 3+(maxY-5-3)/2); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Configuration"
		v.Frame = true
		t.renderConfiguration()
	}

	if v, err := g.SetView("status", 0, 3+(maxY-5-3)/2+1, leftColumnWidth, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Status"
		v.Frame = true
		t.renderStatus()
	}

	if v, err := g.SetView("battlefield", leftColumnWidth+1, 3, maxX-1, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Universe"
		v.Frame = true
		t.renderField()
	} else {
		t.renderField()
	}

	if v, err := g.SetView("help", -1, maxY-5, maxX, maxY-3); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Frame = false
		b := bytes.Buffer{}
		b.WriteString("KEYBINDINGS: ")
		for i, k := range t.k {
			if i != 0 {
				b.WriteString(", ")
			}
			b.WriteString(aurora.Green(k.name).String())
			b.WriteString(": ")
			b.WriteString(k.descr)
		}
		_, _ = fmt.Fprintln(v, b.String())
	}

	return nil
}

func (t *ConsoleUI) headerLayout(g *gocui.Gui, height int, text string) (v *gocui.View, err error) {
	maxX, _ := g.Size()
	if v, err = g.SetView("header", -1, -1, maxX+1, height); err != nil {
		if err == gocui.ErrUnknownView && v != nil {
			v.Frame = false
			v.BgColor = gocui.ColorCyan
			v.FgColor = gocui.ColorBlack
		}
	}
	if v != nil {
		v.Clear()
		pad := maxX - len(text)
		if pad < 0 {
			pad = 0
		}
		_, _ = fmt.Fprintln(v, strings.Repeat("\n", height/2+1)+strings.Repeat(" ", pad/2)+text)
	}
	return v, err
}

func (t *ConsoleUI) cmdQuit(_ *gocui.View) error {
	return gocui.ErrQuit
}

func (t *ConsoleUI) cmdStep(_ *gocui.View) error {
	t.r.Step()
	return nil
}

func (t *ConsoleUI) cmdRun(_ *gocui.View) error {
	t.r.Run()
	return nil
}

func (t *ConsoleUI) cmdStop(_ *gocui.View) error {
	t.r.Stop()
	return nil
}

func (t *ConsoleUI) cmdClear(_ *gocui.View) error {
	t.r.Clear()
	return nil
}

func (t *ConsoleUI) cmdRandomize(_ *gocui.View) error {
	t.r.Randomize()
	return nil
}

func (t *ConsoleUI) cmdMouseClick(v *gocui.View) error {
	cx, cy := v.Cursor()
	t.r.Toggle(cy, cx)
	return nil
}
