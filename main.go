package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"reportforge/config"
	"reportforge/generate"
	"reportforge/logger"
	"reportforge/template"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "generate":
		err = cmdGenerate(os.Args[2:])
	case "batch":
		err = cmdBatch(os.Args[2:])
	case "validate":
		err = cmdValidate(os.Args[2:])
	case "templates":
		err = cmdTemplates(os.Args[2:])
	case "info":
		err = cmdInfo(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: reportforge <command> [options]

Commands:
  generate   Render a presentation from a template and a dataset
  batch      Run a batch of generation jobs from a job file
  validate   Check a template file and report every problem
  templates  List templates in the template directory
  info       Summarize a template file`)
}

// varFlags collects repeated -var name=value pairs.
type varFlags map[string]string

func (v varFlags) String() string { return "" }

func (v varFlags) Set(s string) error {
	name, value, ok := strings.Cut(s, "=")
	if !ok {
		return fmt.Errorf("expected name=value, got %q", s)
	}
	v[name] = value
	return nil
}

func loadConfig(path string) (config.Config, error) {
	return config.Load(path, ".")
}

func cmdGenerate(args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	templatePath := fs.String("template", "", "template JSON file")
	dataPath := fs.String("data", "", "dataset file (.xlsx, .xls or .csv)")
	sheet := fs.String("sheet", "", "worksheet name (default first)")
	output := fs.String("out", "", "output file (default derived from the template name)")
	configPath := fs.String("config", "reportforge.json", "config file")
	vars := varFlags{}
	fs.Var(vars, "var", "extra variable as name=value (repeatable)")
	fs.Parse(args)

	if *templatePath == "" || *dataPath == "" {
		return fmt.Errorf("generate requires -template and -data")
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	log := logger.NewLogger()
	if err := log.Init(cfg.LogDir); err == nil {
		defer log.Close()
	}

	mgr := template.NewManager(cfg.TemplateDir)
	tpl, err := mgr.Load(*templatePath)
	if err != nil {
		return err
	}

	gen := &generate.Generator{
		OutputDir: cfg.OutputDir,
		AssetDirs: []string{cfg.AssetsDir, cfg.LogosDir},
		Log:       log,
	}
	path, warnings, err := gen.Generate(tpl, *dataPath, generate.Options{
		Sheet:      *sheet,
		Variables:  vars,
		OutputPath: *output,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Generated %s\n", path)
	for _, w := range warnings {
		fmt.Printf("  warning: slide %d, component %d (%s): %s\n", w.Slide, w.Component, w.Kind, w.Reason)
	}
	return nil
}

func cmdBatch(args []string) error {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	jobsPath := fs.String("jobs", "", "batch job JSON file")
	configPath := fs.String("config", "reportforge.json", "config file")
	fs.Parse(args)

	if *jobsPath == "" {
		return fmt.Errorf("batch requires -jobs")
	}

	data, err := os.ReadFile(*jobsPath)
	if err != nil {
		return fmt.Errorf("failed to read job file: %w", err)
	}
	var jobs []generate.Job
	if err := json.Unmarshal(data, &jobs); err != nil {
		return fmt.Errorf("failed to parse job file: %w", err)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	log := logger.NewLogger()
	if err := log.Init(cfg.LogDir); err == nil {
		defer log.Close()
	}

	runner := &generate.Runner{
		Generator: &generate.Generator{
			OutputDir: cfg.OutputDir,
			AssetDirs: []string{cfg.AssetsDir, cfg.LogosDir},
			Log:       log,
		},
		Templates: template.NewManager(cfg.TemplateDir),
	}
	summary := runner.Run(jobs)

	out, _ := json.MarshalIndent(summary, "", "  ")
	fmt.Println(string(out))
	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d jobs failed", summary.Failed, summary.Total)
	}
	return nil
}

func cmdValidate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	templatePath := fs.String("template", "", "template JSON file")
	fs.Parse(args)

	if *templatePath == "" {
		return fmt.Errorf("validate requires -template")
	}

	mgr := template.NewManager("")
	tpl, err := mgr.Load(*templatePath)
	if err != nil {
		return err
	}

	errs := template.Validate(tpl)
	if len(errs) == 0 {
		fmt.Println("Template is valid")
		return nil
	}
	for _, e := range errs {
		fmt.Printf("  %v\n", e)
	}
	return fmt.Errorf("template has %d problems", len(errs))
}

func cmdTemplates(args []string) error {
	fs := flag.NewFlagSet("templates", flag.ExitOnError)
	configPath := fs.String("config", "reportforge.json", "config file")
	fs.Parse(args)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	list, err := template.NewManager(cfg.TemplateDir).List()
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("No templates found")
		return nil
	}
	for _, s := range list {
		fmt.Printf("%-30s %-10s %3d slides  %s\n", s.Name, s.Version, s.SlideCount, s.File)
	}
	return nil
}

func cmdInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	templatePath := fs.String("template", "", "template JSON file")
	fs.Parse(args)

	if *templatePath == "" {
		return fmt.Errorf("info requires -template")
	}

	tpl, err := template.NewManager("").Load(*templatePath)
	if err != nil {
		return err
	}

	info := template.Describe(tpl)
	out, _ := json.MarshalIndent(info, "", "  ")
	fmt.Println(string(out))
	return nil
}
