/*
Command htmlpix renders an HTML file into a PNG image.

	htmlpix -html page.html -out page.png -w 800 -h 600

With flag -i it enters an interactive mode, where the viewport may be
scrolled and snapshots may be saved. Type "help" for a list of commands.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/htmlpix/backend/gfx"
	"github.com/npillmayer/htmlpix/core"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'htmlpix.cli'
func tracer() tracing.Trace {
	return tracing.Select("htmlpix.cli")
}

func main() {
	initDisplay()

	// command line flags
	opts := options{}
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	flag.StringVar(&opts.html, "html", "", "HTML file to render")
	out := flag.String("out", "", "PNG file to write")
	flag.IntVar(&opts.w, "w", 800, "Viewport width in pixels")
	flag.IntVar(&opts.h, "h", 600, "Viewport height in pixels")
	backend := flag.String("backend", "raster", "Surface backend [raster|vector|canvas]")
	flag.StringVar(&opts.fontconfig, "fontconfig", "", "Font configuration file (TOML)")
	flag.StringVar(&opts.fontdir, "fontdir", "", "Folder to scan for font files")
	flag.BoolVar(&opts.systemFonts, "system-fonts", false, "Use the fonts installed on the system")
	flag.IntVar(&opts.fontsize, "fontsize", 16, "Default font size in pixels")
	scroll := flag.String("scroll", "0,0", "Scroll position x,y")
	interactive := flag.Bool("i", false, "Interactive mode")
	flag.Parse()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":       "go",
		"html.default-font-size": opts.fontsize,
	}
	for _, key := range []string{"cli", "resources", "font", "glyphs", "gfx", "render",
		"layout", "container", "style"} {
		conf["trace.htmlpix."+key] = *tlevel
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	tracer().SetTraceLevel(tracing.TraceLevelFromString(*tlevel))
	opts.conf = conf

	var err error
	if opts.kind, err = gfx.ParseKind(*backend); err != nil {
		exit(err, 2)
	}
	if opts.x, opts.y, err = parsePair(*scroll); err != nil {
		exit(err, 2)
	}
	if opts.html == "" {
		exit(core.Error(core.EINVALID, "no HTML file given, use flag -html"), 2)
	}
	v, err := newViewer(opts)
	if err != nil {
		exit(err, 3)
	}
	defer v.close()
	if err = v.draw(); err != nil {
		exit(err, 4)
	}
	if *out != "" {
		if err = v.save(*out); err != nil {
			exit(err, 4)
		}
		pterm.Success.Printfln("wrote %s", *out)
	}
	if !*interactive {
		return
	}
	//
	// set up REPL
	repl, err := readline.New("htmlpix > ")
	if err != nil {
		exit(err, 3)
	}
	defer repl.Close()
	pterm.Info.Printfln("Viewing %q, quit with <ctrl>D", v.title())
	intp := &Intp{repl: repl, viewer: v}
	intp.REPL() // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func exit(err error, code int) {
	core.UserError(err)
	os.Exit(code)
}

// parsePair parses "x,y" or "x y".
func parsePair(s string) (int, int, error) {
	f := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	if len(f) != 2 {
		return 0, 0, core.Error(core.EINVALID, "expected two numbers, have %q", s)
	}
	x, err := strconv.Atoi(f[0])
	if err != nil {
		return 0, 0, core.WrapError(err, core.EINVALID, "not a number: %q", f[0])
	}
	y, err := strconv.Atoi(f[1])
	if err != nil {
		return 0, 0, core.WrapError(err, core.EINVALID, "not a number: %q", f[1])
	}
	return x, y, nil
}
