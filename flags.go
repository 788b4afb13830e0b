package catalogpdf

import (
	"fmt"

	"github.com/flanksource/commons/logger"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

type AllFlags struct {
	logger.Flags
	NoColor bool
}

var Flags AllFlags = AllFlags{
	Flags: logger.Flags{
		Level:        "info",
		LevelCount:   0,
		JsonLogs:     false,
		ReportCaller: false,
		LogToStderr:  true,
	},
}

// BindAllFlags adds the global logging and color flags to a pflag set (for Cobra)
func BindAllFlags(flags *pflag.FlagSet) *AllFlags {
	flags.CountVarP(&Flags.Flags.LevelCount, "loglevel", "v", "Increase logging level")
	flags.StringVar(&Flags.Flags.Level, "log-level", "info", "Set the default log level")
	flags.BoolVar(&Flags.Flags.JsonLogs, "json-logs", false, "Print logs in json format to stderr")
	flags.BoolVar(&Flags.Flags.ReportCaller, "report-caller", false, "Report log caller info")
	flags.BoolVar(&Flags.NoColor, "no-color", false, "Disable colored output")
	return &Flags
}

func (a AllFlags) String() string {
	b, _ := yaml.Marshal(a)
	return string(b)
}

func (a AllFlags) UseFlags() {
	logger.Configure(a.Flags)
	logger.Debugf("Using logger flags: %s", a)
}

// GenerateFlags are the per-run flags of the generate command
type GenerateFlags struct {
	ConfigFile string
	Output     string
	BleedMode  string
	NoGuides   bool
	Title      string
	Author     string
}

func BindGenerateFlags(flags *pflag.FlagSet, g *GenerateFlags) {
	flags.StringVar(&g.ConfigFile, "config", "", "YAML run config (output, bleed_mode, guides, title, author)")
	flags.StringVarP(&g.Output, "output", "o", "", "Output PDF (default ~/Desktop/catalog.pdf, or ./catalog.pdf)")
	flags.StringVar(&g.BleedMode, "bleed-mode", "", "Bleed handling: expand (page grows by the bleed) or guide (page keeps its size)")
	flags.BoolVar(&g.NoGuides, "no-guides", false, "Do not draw the bleed guide")
	flags.StringVar(&g.Title, "title", "", "PDF document title")
	flags.StringVar(&g.Author, "author", "", "PDF document author")
}

// RunConfig loads the config file, if any, and applies the flags that were
// set on the command line over it.
func (g GenerateFlags) RunConfig(flags *pflag.FlagSet) (RunConfig, error) {
	var config RunConfig
	if g.ConfigFile != "" {
		var err error
		if config, err = LoadRunConfig(g.ConfigFile); err != nil {
			return config, err
		}
	}

	override := RunConfig{Output: g.Output, BleedMode: g.BleedMode, Title: g.Title, Author: g.Author}
	if flags != nil && flags.Changed("no-guides") {
		guides := !g.NoGuides
		override.Guides = &guides
	}
	config = config.Merge(override)

	if _, err := config.Grid(); err != nil {
		return config, fmt.Errorf("invalid run config: %w", err)
	}
	return config, nil
}
