package main

import (
	"context"
	"embed"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path"

	"gioui.org/app"
	"gioui.org/op"
	"gioui.org/x/explorer"
	"git.sr.ht/~whereswaldon/statcharts/backend"
	"git.sr.ht/~whereswaldon/statcharts/bar"
	"git.sr.ht/~whereswaldon/statcharts/chart"
	"git.sr.ht/~whereswaldon/statcharts/pie"
	"git.sr.ht/~whereswaldon/statcharts/ui"
	"golang.org/x/text/language"
)

//go:embed demo/*.csv
var demos embed.FS

func demoSources() ([]backend.Source, error) {
	entries, err := fs.ReadDir(demos, "demo")
	if err != nil {
		return nil, fmt.Errorf("failed listing demo datasets: %w", err)
	}
	sources := make([]backend.Source, 0, len(entries))
	for _, e := range entries {
		data, err := demos.ReadFile(path.Join("demo", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed reading demo dataset: %w", err)
		}
		sources = append(sources, backend.BytesSource(e.Name(), data))
	}
	return sources, nil
}

func parseCenterHit(s string) (pie.CenterHitMode, error) {
	for _, m := range []pie.CenterHitMode{pie.CenterHitCircle, pie.CenterHitQuadrant} {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown center hit mode %q", s)
}

func parseBarStyle(s string) (bar.Style, error) {
	for _, st := range []bar.Style{bar.StylePerspective, bar.StyleFlat} {
		if st.String() == s {
			return st, nil
		}
	}
	return 0, fmt.Errorf("unknown bar style %q", s)
}

func main() {
	watch := flag.Bool("watch", true, "redraw datasets when their files change")
	dump := flag.Bool("dump", false, "print the computed chart geometry of each dataset and exit")
	centerHit := flag.String("center-hit", pie.CenterHitCircle.String(), "how pie center taps are detected: circle or quadrant")
	barStyle := flag.String("bar-style", bar.StylePerspective.String(), "bar style: perspective or flat")
	visible := flag.Int("visible", 15, "line chart points visible at once, 0 for all")
	locale := flag.String("locale", "en", "BCP 47 tag used to format values")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [dataset.csv ...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	hitMode, err := parseCenterHit(*centerHit)
	if err != nil {
		log.Fatal(err)
	}
	style, err := parseBarStyle(*barStyle)
	if err != nil {
		log.Fatal(err)
	}
	tag, err := language.Parse(*locale)
	if err != nil {
		log.Fatalf("invalid locale: %v", err)
	}
	opts := ui.Options{
		CenterHit: hitMode,
		BarStyle:  style,
		Visible:   *visible,
		Values:    chart.ValueLabelConfig{Locale: tag},
	}

	var sources []backend.Source
	for _, name := range flag.Args() {
		sources = append(sources, backend.FileSource(name))
	}
	if len(sources) == 0 {
		sources, err = demoSources()
		if err != nil {
			log.Fatal(err)
		}
	}

	if *dump {
		if err := dumpAll(os.Stdout, sources, opts); err != nil {
			log.Fatal(err)
		}
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	bundle := backend.NewBundle(backend.NewDatasource(*watch))
	go func() {
		w := app.NewWindow(app.Title("statcharts"))
		if err := loop(ctx, w, bundle, opts, sources); err != nil {
			log.Fatal(err)
		}
		cancel()
		os.Exit(0)
	}()
	app.Main()
}

func loop(ctx context.Context, w *app.Window, bundle backend.Bundle, opts ui.Options, sources []backend.Source) error {
	expl := explorer.NewExplorer(w)
	ws := backend.NewWindowState(ctx, bundle, w)
	u := ui.NewUI(ws, expl, opts, sources...)
	var ops op.Ops
	for {
		ev := w.NextEvent()
		expl.ListenEvents(ev)
		switch ev := ev.(type) {
		case app.DestroyEvent:
			return ev.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, ev)
			u.Layout(gtx)
			ev.Frame(gtx.Ops)
		}
	}
}
