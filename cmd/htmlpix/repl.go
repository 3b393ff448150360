package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/htmlpix/core"
	"github.com/npillmayer/htmlpix/core/font/fontregistry"
	"github.com/npillmayer/htmlpix/engine/glyphing"
	"github.com/npillmayer/htmlpix/engine/glyphing/monospace"
	"github.com/npillmayer/htmlpix/engine/text"
	"github.com/pterm/pterm"
)

// Intp is our interpreter object
type Intp struct {
	repl   *readline.Instance
	viewer *viewer
	cells  *glyphing.LayoutCache // terminal cells of strings shown by "text"
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd, err := parseCommand(line)
		if err != nil {
			pterm.Error.Println(core.UserMessage(err))
			continue
		}
		quit, err := intp.execute(cmd)
		if err != nil {
			pterm.Error.Println(core.UserMessage(err))
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// Command is a parsed line of input.
type Command struct {
	code int
	args []int
	arg  string
}

const (
	QUIT int = iota
	HELP
	SCROLL
	GOTO
	SIZE
	SAVE
	STATS
	FONTS
	TEXT
)

var commands = map[string]struct {
	code    int
	numbers int // count of numeric arguments
}{
	"quit":   {QUIT, 0},
	"exit":   {QUIT, 0},
	"help":   {HELP, 0},
	"scroll": {SCROLL, 2},
	"goto":   {GOTO, 2},
	"size":   {SIZE, 2},
	"save":   {SAVE, 0},
	"stats":  {STATS, 0},
	"fonts":  {FONTS, 0},
	"text":   {TEXT, 0},
}

func parseCommand(line string) (*Command, error) {
	f := strings.Fields(line)
	c, ok := commands[strings.ToLower(f[0])]
	if !ok {
		return nil, core.Error(core.EINVALID, "unknown command %q, try \"help\"", f[0])
	}
	cmd := &Command{code: c.code}
	if c.numbers == 0 {
		cmd.arg = strings.Join(f[1:], " ")
		return cmd, nil
	}
	if len(f)-1 != c.numbers {
		return nil, core.Error(core.EINVALID, "%s needs %d numbers", f[0], c.numbers)
	}
	for _, a := range f[1:] {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, core.WrapError(err, core.EINVALID, "not a number: %q", a)
		}
		cmd.args = append(cmd.args, n)
	}
	tracer().Debugf("command %q = %v", line, cmd)
	return cmd, nil
}

func (intp *Intp) execute(cmd *Command) (bool, error) {
	v := intp.viewer
	switch cmd.code {
	case QUIT:
		return true, nil
	case HELP:
		help()
	case SCROLL:
		return false, intp.show(v.scrollTo(v.x+cmd.args[0], v.y+cmd.args[1]))
	case GOTO:
		return false, intp.show(v.scrollTo(cmd.args[0], cmd.args[1]))
	case SIZE:
		if cmd.args[0] <= 0 || cmd.args[1] <= 0 {
			return false, core.Error(core.EINVALID, "invalid viewport size")
		}
		v.resize(cmd.args[0], cmd.args[1])
		return false, intp.show(v.scrollTo(v.x, v.y))
	case SAVE:
		if cmd.arg == "" {
			return false, errors.New("save needs a file name")
		}
		if err := v.save(cmd.arg); err != nil {
			return false, err
		}
		pterm.Success.Printfln("wrote %s", cmd.arg)
	case STATS:
		return false, pterm.DefaultTable.WithHasHeader().WithData(intp.stats()).Render()
	case FONTS:
		return false, pterm.DefaultBulletList.WithItems(bullets(v.lib.Families())).Render()
	case TEXT:
		if cmd.arg == "" {
			return false, errors.New("text needs a string")
		}
		data, px, err := intp.glyphs(cmd.arg)
		if err != nil {
			return false, err
		}
		if err = pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
			return false, err
		}
		pterm.Printfln("%d px in %s %dpx", px, v.c.DefaultFontName(), v.c.DefaultFontSize())
	}
	return false, nil
}

// show reports the viewport position after a draw.
func (intp *Intp) show(err error) error {
	if err != nil {
		return err
	}
	v := intp.viewer
	pterm.Printfln("viewport at (%d,%d) of %d x %d, document height %d",
		v.x, v.y, v.w, v.h, v.doc.Height())
	return nil
}

func (intp *Intp) stats() pterm.TableData {
	v := intp.viewer
	s := v.r.Stats()
	row := func(k string, n int) []string { return []string{k, fmt.Sprint(n)} }
	return pterm.TableData{
		{"Counter", "Value"},
		row("full draws", s.FullDraws),
		row("incremental draws", s.IncrementalDraws),
		row("raster copies", s.RasterCopies),
		row("strip draws", s.StripDraws),
		row("display items", v.doc.ItemCount()),
		row("document height", v.doc.Height()),
		row("fonts", v.c.FontCount()),
		row("list markers", v.c.MarkerCount()),
	}
}

// glyphs lists the grapheme clusters of s with the terminal columns they
// occupy, and measures s in the document's default font.
func (intp *Intp) glyphs(s string) (pterm.TableData, int, error) {
	if intp.cells == nil {
		var err error
		if intp.cells, err = glyphing.NewLayoutCache(64); err != nil {
			return nil, 0, err
		}
	}
	cells := intp.cells.GetOrShape(s, monospace.Shaper(1).Shape)
	data := pterm.TableData{{"Glyph", "Cluster", "Column", "Cells"}}
	for i, g := range cells.Glyphs {
		end := cells.Extents.XAdvance
		if i+1 < len(cells.Glyphs) {
			end = cells.Glyphs[i+1].X
		}
		data = append(data, []string{
			fmt.Sprintf("%q", rune(g.GID)),
			fmt.Sprint(g.Cluster),
			fmt.Sprint(int(g.X)),
			fmt.Sprint(int(end - g.X)),
		})
	}
	v := intp.viewer
	f, _, err := v.c.CreateFont(v.c.DefaultFontName(), v.c.DefaultFontSize(), 400,
		fontregistry.StyleNormal, text.DecorationNone)
	if err != nil {
		return nil, 0, err
	}
	if f == nil {
		return data, 0, nil
	}
	defer v.c.DeleteFont(f)
	return data, v.c.TextWidth(s, f), nil
}

func bullets(names []string) []pterm.BulletListItem {
	items := make([]pterm.BulletListItem, len(names))
	for i, n := range names {
		items[i] = pterm.BulletListItem{Level: 0, Text: n}
	}
	return items
}

func help() {
	pterm.Info.Println("Commands")
	pterm.Println(`
	scroll dx dy    move the viewport by dx, dy pixels
	goto x y        move the viewport to x, y
	size w h        change the viewport size
	save file.png   write the viewport to an image file
	stats           show renderer counters
	fonts           list the font families available
	quit            leave
	`)
}
