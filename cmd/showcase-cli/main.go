// Command showcase-cli drives the widgets from a terminal.
//
//	showcase-cli form [-name registration] [-definitions dir]
//	showcase-cli grid [-q text] [-department d] [-status s] [-sort key] [-format text|json|pdf]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strconv"

	showcase "github.com/goliatone/go-showcase"
	"github.com/goliatone/go-showcase/components/gridapi"
	"github.com/goliatone/go-showcase/internal/config"
	"github.com/goliatone/go-showcase/internal/demo"
	"github.com/goliatone/go-showcase/pkg/form"
	"github.com/goliatone/go-showcase/pkg/grid"
	"github.com/goliatone/go-showcase/pkg/grid/mockdata"
	"github.com/goliatone/go-showcase/pkg/render"
	"github.com/goliatone/go-showcase/pkg/renderers/pdf"
	"github.com/goliatone/go-showcase/pkg/renderers/tui"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("showcase-cli: ")

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch os.Args[1] {
	case "form":
		err = runForm(ctx, os.Args[2:])
	case "grid":
		err = runGrid(ctx, os.Args[2:], os.Stdout)
	case "-h", "--help", "help":
		usage()
		return
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: showcase-cli <form|grid> [flags]")
}

func loadConfig(path string) config.Config {
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	return cfg
}

func runForm(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("form", flag.ExitOnError)
	configPath := fs.String("config", "", "path to an HCL config file")
	name := fs.String("name", "", "form to fill (defaults to the configured form)")
	dir := fs.String("definitions", "", "directory of YAML form definitions")
	failureRate := fs.Float64("failure-rate", -1, "simulated submit failure rate (overrides the config file)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := loadConfig(*configPath)
	if *dir != "" {
		cfg.Form.DefinitionsDir = *dir
	}
	if *failureRate >= 0 {
		cfg.Form.FailureRate = *failureRate
	}
	formName := *name
	if formName == "" {
		formName = cfg.Form.Default
	}

	defs, err := showcase.LoadDefinitions(ctx, cfg.Form.DefinitionsDir)
	if err != nil {
		return err
	}
	submitter := &demo.Submitter{
		Delay:       cfg.Form.SubmitDelay,
		FailureRate: cfg.Form.FailureRate,
		Logger:      log.New(io.Discard, "", 0),
	}
	engine, err := showcase.NewForm(defs, formName,
		form.WithSubmit(submitter.Func()),
		form.WithSubmitErrorFallback(cfg.Form.FallbackMessage),
	)
	if err != nil {
		return fmt.Errorf("%w (have %v)", err, defs.Names())
	}

	state, err := tui.NewRunner().Run(ctx, engine)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(state.Values(), "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func runGrid(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("grid", flag.ExitOnError)
	configPath := fs.String("config", "", "path to an HCL config file")
	search := fs.String("q", "", "search name, email, and department")
	department := fs.String("department", "", "exact department")
	status := fs.String("status", "", "active, inactive, or pending")
	minSalary := fs.String("min", "", "minimum salary")
	maxSalary := fs.String("max", "", "maximum salary")
	sortKey := fs.String("sort", "", "sort column")
	direction := fs.String("dir", "", "asc or desc")
	page := fs.Int("page", 1, "page number")
	size := fs.Int("size", 0, "rows per page (defaults to the configured size)")
	format := fs.String("format", "text", "text, json, or pdf")
	output := fs.String("out", "", "output file (stdout if empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := loadConfig(*configPath)
	component := gridapi.New(
		gridapi.WithRecords(mockdata.Generate(cfg.Grid.Count, cfg.Grid.Seed)),
		gridapi.WithDefaultPageSize(cfg.Grid.ItemsPerPage),
		gridapi.WithMaxPageSize(cfg.Grid.MaxPageSize),
	)
	opts := component.Options()
	values := url.Values{}
	set := func(key, value string) {
		if value != "" {
			values.Set(key, value)
		}
	}
	set(opts.Params.Search, *search)
	set(opts.Params.Department, *department)
	set(opts.Params.Status, *status)
	set(opts.Params.MinSalary, *minSalary)
	set(opts.Params.MaxSalary, *maxSalary)
	set(opts.Params.Sort, *sortKey)
	set(opts.Params.Direction, *direction)
	set(opts.Params.Page, strconv.Itoa(*page))
	if *size > 0 {
		set(opts.Params.PageSize, strconv.Itoa(*size))
	}

	query, err := gridapi.ParseQuery(values, opts)
	if err != nil {
		return err
	}

	w := stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	switch *format {
	case "json":
		resp, err := component.Fetch(ctx, query)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	case "text", "pdf":
	default:
		return fmt.Errorf("unknown format %q", *format)
	}

	g := grid.New(
		grid.WithItems(opts.Records),
		grid.WithItemsPerPage(query.PageSize),
		grid.WithFilter(query.Filter),
		grid.WithSort(query.Sort),
	)
	g.SetPage(query.Page)
	snap := g.Snapshot()

	if *format == "text" {
		return tui.PrintGrid(w, snap)
	}
	gv := render.NewGridView(snap)
	out, err := pdf.New().Render(ctx, render.View{Title: "Employees", Widget: render.WidgetGrid, Grid: &gv})
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
