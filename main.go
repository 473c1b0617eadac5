package main

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mcncl/jsonmodel/internal/config"
	"github.com/mcncl/jsonmodel/internal/errors"
	"github.com/mcncl/jsonmodel/internal/formatter"
	"github.com/mcncl/jsonmodel/internal/parser"
	"github.com/mcncl/jsonmodel/model"
)

// CLI defines the command-line interface
var CLI struct {
	Input         string           `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Output        string           `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Config        string           `help:"Path to configuration file. Defaults to the nearest .jsonmodel.yml." short:"c" type:"path"`
	Format        string           `help:"Output format: json or yaml."`
	Pretty        bool             `help:"Indent JSON output."`
	NormalizeKeys bool             `help:"Convert object keys to snake_case when loading the document."`
	FaithfulRoot  bool             `help:"Export non-object roots as they are instead of {}."`
	Debug         bool             `help:"Enable debug logging." short:"d"`
	Version       kong.VersionFlag `help:"Show version information." short:"v"`
	Interactive   bool             `help:"Paste the document interactively, finishing with Ctrl+D." short:"I"`

	Get    GetCmd    `cmd:"" help:"Print the value at a path."`
	Set    SetCmd    `cmd:"" help:"Store a value at a path and print the resulting document."`
	Isset  IssetCmd  `cmd:"" help:"Report whether a path exists."`
	Export ExportCmd `cmd:"" help:"Print the document."`
	Paths  PathsCmd  `cmd:"" help:"List every path in the document."`
}

// Context holds the runtime context
type Context struct {
	Debug  bool
	Config *config.Config
	Logger model.Logger
}

// Version information
const (
	Version = "0.1.0"
)

// GetCmd prints the value at Path.
type GetCmd struct {
	Path string `arg:"" help:"Path such as foo.bar[2].baz."`
	Raw  bool   `help:"Print strings without quotes."`
}

func (c *GetCmd) Run(ctx *Context) error {
	m, err := parseInput(ctx, false)
	if err != nil {
		return err
	}

	v, ok, err := m.Get(c.Path)
	if err != nil {
		return err
	}
	if !ok {
		return errors.NewPathError(fmt.Sprintf("nothing at '%s'", c.Path), errors.ErrNotFound)
	}

	if s, isString := v.Str(); isString && c.Raw {
		return writeOutput(s)
	}
	out, err := renderValue(ctx.Config, v)
	if err != nil {
		return err
	}
	return writeOutput(out)
}

// SetCmd stores Value at Path.
type SetCmd struct {
	Path   string `arg:"" help:"Path such as foo.bar[2].baz."`
	Value  string `arg:"" help:"JSON literal to store. Text that is not valid JSON is stored as a string."`
	String bool   `help:"Always store the value as a string."`
}

func (c *SetCmd) Run(ctx *Context) error {
	m, err := parseInput(ctx, true)
	if err != nil {
		return err
	}

	if err := m.Set(c.Path, c.value(ctx)); err != nil {
		return err
	}

	out, err := exportModel(ctx.Config, m)
	if err != nil {
		return err
	}
	return writeOutput(out)
}

func (c *SetCmd) value(ctx *Context) model.Value {
	if c.String {
		return model.StringValue(c.Value)
	}
	v, err := parser.ParseString(c.Value)
	if err != nil {
		ctx.Logger.Debug("storing value as string", "value", c.Value, "reason", err)
		return model.StringValue(c.Value)
	}
	return v
}

// IssetCmd prints true or false.
type IssetCmd struct {
	Path string `arg:"" help:"Path to check. Never rejected as malformed."`
}

func (c *IssetCmd) Run(ctx *Context) error {
	m, err := parseInput(ctx, false)
	if err != nil {
		return err
	}
	return writeOutput(fmt.Sprintf("%t", m.Isset(c.Path)))
}

// ExportCmd re-encodes the document.
type ExportCmd struct{}

func (c *ExportCmd) Run(ctx *Context) error {
	m, err := parseInput(ctx, false)
	if err != nil {
		return err
	}
	out, err := exportModel(ctx.Config, m)
	if err != nil {
		return err
	}
	return writeOutput(out)
}

// PathsCmd lists the paths of the document.
type PathsCmd struct {
	Leaves bool `help:"Only list scalar values."`
}

func (c *PathsCmd) Run(ctx *Context) error {
	m, err := parseInput(ctx, false)
	if err != nil {
		return err
	}

	var b strings.Builder
	for _, p := range m.Paths().Paths {
		if c.Leaves && (p.Kind == model.KindObject || p.Kind == model.KindArray) {
			continue
		}
		b.WriteString(p.Path)
		b.WriteByte('\t')
		b.WriteString(p.Kind.String())
		if !p.Addressable {
			b.WriteString("\t(not addressable)")
		}
		b.WriteByte('\n')
	}
	return writeOutput(b.String())
}

func main() {
	// Parse CLI arguments with Kong
	parser := kong.Must(&CLI,
		kong.Name("jsonmodel"),
		kong.Description("Read and write JSON documents with paths like foo.bar[2].baz"),
		kong.UsageOnError(),
		kong.Vars{"version": "jsonmodel version " + Version},
	)

	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	ctx, err := newContext()
	if err != nil {
		fail(err)
	}

	if err := kctx.Run(ctx); err != nil {
		fail(err)
	}
}

// fail reports err the way users should see it and exits.
func fail(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
	if !stderrors.Is(err, errors.ErrNotFound) {
		fmt.Fprintf(os.Stderr, "\nFor help, run: jsonmodel --help\n")
	}
	os.Exit(1)
}

// newContext resolves configuration from the config file and CLI flags.
func newContext() (*Context, error) {
	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg, err := config.LoadConfigWithCLI(configPath, cliOverrides())
	if err != nil {
		return nil, errors.NewConfigError(err.Error(), err)
	}

	ctx := &Context{
		Debug:  cfg.Dev.Debug,
		Config: cfg,
		Logger: model.NopLogger{},
	}
	if ctx.Debug {
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		ctx.Logger = model.NewSlogAdapter(slog.New(handler))
		ctx.Logger.Debug("configuration loaded", "file", configPath, "format", cfg.Export.Format, "pretty", cfg.Export.Pretty)
	}
	return ctx, nil
}

// cliOverrides turns the flags that were switched on into config overrides.
func cliOverrides() config.CLIOverrides {
	overrides := config.CLIOverrides{Format: CLI.Format}
	enabled := true
	if CLI.Pretty {
		overrides.Pretty = &enabled
	}
	if CLI.NormalizeKeys {
		overrides.NormalizeKeys = &enabled
	}
	if CLI.FaithfulRoot {
		overrides.FaithfulRoot = &enabled
	}
	if CLI.Debug {
		overrides.Debug = &enabled
	}
	return overrides
}

func modelOptions(ctx *Context) []model.Option {
	opts := []model.Option{model.WithLogger(ctx.Logger)}
	if ctx.Config.Parse.NormalizeKeys {
		opts = append(opts, model.WithNormalizedKeys())
	}
	if ctx.Config.Export.FaithfulRoot {
		opts = append(opts, model.WithFaithfulExport())
	}
	return opts
}

// parseInput reads the document from file or stdin. With allowEmpty, a
// terminal stdin without --interactive yields an empty document instead of
// an error.
func parseInput(ctx *Context, allowEmpty bool) (*model.Model, error) {
	opts := modelOptions(ctx)

	if CLI.Input != "" {
		// Parse from file
		return model.ParseFile(CLI.Input, opts...)
	}

	// Check if stdin has data
	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return nil, errors.NewInputError("failed to access stdin", err)
	}

	// Interactive mode or piped input
	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		// Terminal is interactive (not piped)
		if CLI.Interactive {
			return readInteractiveInput(opts)
		}
		if allowEmpty {
			return model.New(opts...), nil
		}
		// No data provided on stdin and not in interactive mode
		return nil, errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	// Read from stdin (piped input)
	jsonData, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, errors.NewInputError("failed to read from stdin", err)
	}

	if len(jsonData) == 0 {
		if allowEmpty {
			return model.New(opts...), nil
		}
		return nil, errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}

	return model.Parse(string(jsonData), opts...)
}

// renderValue encodes a single value in the configured output format.
func renderValue(cfg *config.Config, v model.Value) (string, error) {
	f := formatter.NewFormatter()
	f.Indent = cfg.Export.Indent
	f.YAMLIndent = cfg.Export.YAMLIndent

	style := formatter.StyleCompact
	switch {
	case cfg.Export.Format == config.FormatYAML:
		style = formatter.StyleYAML
	case cfg.Export.Pretty:
		style = formatter.StylePretty
	}

	out, err := f.Format(v, style)
	if err != nil {
		return "", errors.NewExportError("failed to encode value", err)
	}
	return out, nil
}

// exportModel encodes the whole document in the configured output format.
func exportModel(cfg *config.Config, m *model.Model) (string, error) {
	switch {
	case cfg.Export.Format == config.FormatYAML:
		return m.ExportYAML(cfg.Export.YAMLIndent)
	case cfg.Export.Pretty:
		return m.ExportPretty(cfg.Export.Indent)
	default:
		return m.Export()
	}
}

// writeOutput writes text to file or stdout
func writeOutput(text string) error {
	if CLI.Output != "" {
		// Write to file
		err := os.WriteFile(CLI.Output, []byte(text), 0644)
		if err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		fmt.Fprintf(os.Stderr, "Output written to %s\n", CLI.Output)
		return nil
	}

	// Write to stdout
	_, err := fmt.Println(strings.TrimRight(text, "\n"))
	if err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// readInteractiveInput provides an interactive mode for users to paste JSON
// and signal completion with Ctrl+D (EOF)
func readInteractiveInput(opts []model.Option) (*model.Model, error) {
	fmt.Fprintln(os.Stderr, "jsonmodel Interactive Mode")
	fmt.Fprintln(os.Stderr, "Paste your JSON below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	// Read all input until EOF (Ctrl+D)
	reader := bufio.NewReader(os.Stdin)
	var jsonBuilder strings.Builder

	for {
		line, err := reader.ReadString('\n')
		jsonBuilder.WriteString(line)
		if err == io.EOF {
			// End of input
			break
		}
		if err != nil {
			return nil, errors.NewInputError("error reading input", err)
		}
	}

	jsonData := jsonBuilder.String()
	if len(jsonData) == 0 {
		return nil, errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}

	fmt.Fprintln(os.Stderr, "\nProcessing JSON...")
	return model.Parse(jsonData, opts...)
}
