package config

import (
	"flag"
	"io"

	"github.com/petems/click-tray/internal/inject"
)

type CLIOptions struct {
	ConfigPath string
	ShowHelp   bool

	LogLevel   string
	Hotkey     string
	IntervalMS int
	Times      int
	Click      string

	set map[string]bool
}

func ParseCLI(args []string, stderr io.Writer) (CLIOptions, error) {
	opts := CLIOptions{set: make(map[string]bool)}
	fs := flag.NewFlagSet("click-tray", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.ConfigPath, "config", "", "JSON path of config file")
	fs.StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error)")
	fs.StringVar(&opts.Hotkey, "hotkey", "", "start/stop hotkey, e.g. F6 or ctrl+shift+c")
	fs.IntVar(&opts.IntervalMS, "interval", 0, "milliseconds between clicks")
	fs.IntVar(&opts.Times, "times", 0, "clicks per run, 0 for no limit")
	fs.StringVar(&opts.Click, "click", "", "mouse button (left|right|middle)")
	fs.BoolVar(&opts.ShowHelp, "h", false, "help")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	fs.Visit(func(f *flag.Flag) {
		opts.set[f.Name] = true
	})
	return opts, nil
}

func (o CLIOptions) IsSet(name string) bool {
	return o.set[name]
}

// ApplyCLI overlays flags that were given on the command line onto c and
// clamps the result.
func ApplyCLI(c *Config, o CLIOptions) error {
	if o.IsSet("log-level") {
		c.LogLevel = o.LogLevel
	}
	if o.IsSet("hotkey") {
		c.Hotkey = o.Hotkey
	}
	if o.IsSet("interval") {
		c.Click.DurationMS = o.IntervalMS
	}
	if o.IsSet("times") {
		c.Click.Times = o.Times
	}
	if o.IsSet("click") {
		ct, err := inject.ParseClickType(o.Click)
		if err != nil {
			return err
		}
		c.ClickType = ct
	}
	c.Validate()
	return nil
}
