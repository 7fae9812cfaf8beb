package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/wippyai/codec-dispatch/codec"
	"github.com/wippyai/codec-dispatch/component"
	"github.com/wippyai/codec-dispatch/dispatch"
	"github.com/wippyai/codec-dispatch/errors"
	"github.com/wippyai/codec-dispatch/tablefile"
)

// envConfig holds defaults taken from the environment. Flags override them.
type envConfig struct {
	Table    string `env:"CODEC_DISPATCH_TABLE"`
	Unknown  string `env:"CODEC_DISPATCH_UNKNOWN" envDefault:"unsupported"`
	LogLevel string `env:"CODEC_DISPATCH_LOG_LEVEL" envDefault:"warn"`
}

type config struct {
	table    string
	unknown  string
	logLevel string
	resolve  string
	call     string
	args     string
	list     bool
	format   bool
}

func main() {
	var defaults envConfig
	if err := env.Parse(&defaults); err != nil {
		fmt.Fprintf(os.Stderr, "Error: parse env: %v\n", err)
		os.Exit(1)
	}

	var cfg config
	var (
		verbose     = flag.Bool("v", false, "Debug logging")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.StringVar(&cfg.table, "table", defaults.Table, "Dispatch table file (.hcl or .json); empty uses the built-in FFusion codec")
	flag.StringVar(&cfg.unknown, "unknown", defaults.Unknown, "Policy for selectors without an entry (unsupported, delegate)")
	flag.StringVar(&cfg.resolve, "resolve", "", "Selectors to resolve (comma-separated numbers or entry names)")
	flag.StringVar(&cfg.call, "call", "", "Selector to call on a fresh instance")
	flag.StringVar(&cfg.args, "args", "", "Call arguments (comma-separated)")
	flag.BoolVar(&cfg.list, "list", false, "List the table and exit")
	flag.BoolVar(&cfg.format, "format", false, "Print the table in canonical form and exit")
	flag.Parse()

	cfg.logLevel = defaults.LogLevel
	if *verbose {
		cfg.logLevel = "debug"
	}

	if *interactive {
		if err := runInteractive(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	styled := term.IsTerminal(int(os.Stdout.Fd()))
	if err := run(cfg, os.Stdout, styled); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// session is a registered component with one open instance.
type session struct {
	manager *component.Manager
	desc    *dispatch.Description
	name    string
	handle  component.Handle
}

func openSession(ctx context.Context, cfg config) (*session, error) {
	logger, err := newLogger(cfg.logLevel)
	if err != nil {
		return nil, err
	}
	dispatch.SetLogger(logger)
	component.SetLogger(logger)
	codec.SetLogger(logger)

	policy, err := dispatch.ParseUnknownPolicy(cfg.unknown)
	if err != nil {
		return nil, err
	}
	def, err := loadDefinition(cfg.table, dispatch.Options{Unknown: policy})
	if err != nil {
		return nil, err
	}

	m := component.NewManager()
	if err := m.Register(def); err != nil {
		return nil, err
	}
	h, err := m.Open(ctx, def.Name)
	if err != nil {
		return nil, err
	}
	return &session{manager: m, desc: def.Description, name: def.Name, handle: h}, nil
}

func (s *session) close(ctx context.Context) error {
	return s.manager.Shutdown(ctx)
}

func (s *session) instance() *component.Instance {
	inst, _ := s.manager.Instance(s.handle)
	return inst
}

func run(cfg config, out io.Writer, styled bool) (err error) {
	ctx := context.Background()

	s, err := openSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, s.close(ctx))
	}()

	p := printer{out: out, styled: styled}

	if cfg.format {
		_, err := out.Write(tablefile.Format(s.desc))
		return err
	}

	p.title(s.name)
	for _, line := range tablefile.Summary(s.desc) {
		p.line(line)
	}
	if cfg.list {
		p.line("")
		for _, e := range entries(s.instance()) {
			p.entry(e)
		}
		return nil
	}

	if cfg.resolve != "" {
		p.line("")
		for _, field := range splitList(cfg.resolve) {
			what, err := lookupSelector(s.instance(), field)
			if err != nil {
				return err
			}
			o, ok := s.instance().Resolve(what)
			if !ok {
				p.failure(fmt.Sprintf("%s: selector %#x cannot be encoded", field, what))
				continue
			}
			p.outcome(o)
		}
	}

	if cfg.call != "" {
		what, err := lookupSelector(s.instance(), cfg.call)
		if err != nil {
			return err
		}
		args, err := parseArgs(cfg.args)
		if err != nil {
			return err
		}
		p.line("")
		res, err := s.manager.Call(ctx, s.handle, what, args)
		if err != nil {
			p.failure(describeError(err))
			return err
		}
		p.result(fmt.Sprintf("%s = %d (%#x)", cfg.call, res, uint64(res)))
	}

	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, errors.InvalidInput(errors.PhaseConfigure, "log level "+level)
	}
	enc := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.Lock(os.Stderr), lvl)
	return zap.New(core), nil
}

// loadDefinition returns the FFusion codec, or a definition with stub
// handlers for every entry of the table file at path.
func loadDefinition(path string, opts dispatch.Options) (component.Definition, error) {
	if path == "" {
		return codec.Definition(codec.Config{Options: opts})
	}
	desc, err := tablefile.Load(path)
	if err != nil {
		return component.Definition{}, err
	}
	opts.Name = path
	return component.Definition{
		Name:        path,
		Description: desc,
		Options:     opts,
		New: func(*component.Instance) (component.Implementation, error) {
			return component.Implementation{Local: stubs{}, Base: stubs{}}, nil
		},
	}, nil
}

// stubs serves every entry name with a zero result.
type stubs struct{}

func (stubs) Handler(string) (dispatch.Handler, bool) {
	return func(context.Context, dispatch.Args) (dispatch.Result, error) { return 0, nil }, true
}

func (stubs) Forward(_ context.Context, sel dispatch.Selector, _ dispatch.Args) (dispatch.Result, error) {
	return 0, errors.New(errors.PhaseDispatch, errors.KindUnsupported).
		Selector(uint32(sel)).
		Code(errors.CodeUnimplemented).
		Build()
}

// tableEntry is one declared table position with its host selector.
type tableEntry struct {
	outcome dispatch.Outcome
	what    int32
}

func entries(inst *component.Instance) []tableEntry {
	d := inst.Dispatcher()
	layout := d.Layout()
	var list []tableEntry
	for _, r := range d.Table().Registry().Ranges() {
		for i := range r.Entries() {
			sel := dispatch.Selector(r.Base + uint32(i))
			list = append(list, tableEntry{outcome: d.Resolve(sel), what: layout.Decode(sel)})
		}
	}
	return list
}

// lookupSelector accepts a host selector number or an entry name.
func lookupSelector(inst *component.Instance, s string) (int32, error) {
	if what, err := parseSelector(s); err == nil {
		return what, nil
	}
	for _, e := range entries(inst) {
		if e.outcome.Name == s {
			return e.what, nil
		}
	}
	return 0, errors.NotFound(errors.PhaseHost, "entry "+s, errors.CodeBadComponentSelector)
}

func parseSelector(s string) (int32, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 0, 32)
	if err != nil {
		return 0, errors.InvalidInput(errors.PhaseHost, "selector "+s)
	}
	return int32(v), nil
}

func parseArgs(s string) (dispatch.Args, error) {
	fields := splitList(s)
	if len(fields) == 0 {
		return nil, nil
	}
	args := make(dispatch.Args, len(fields))
	for i, f := range fields {
		if v, err := strconv.ParseInt(f, 0, 64); err == nil {
			args[i] = uint64(v)
			continue
		}
		v, err := strconv.ParseUint(f, 0, 64)
		if err != nil {
			return nil, errors.InvalidInput(errors.PhaseHost, "argument "+f)
		}
		args[i] = v
	}
	return args, nil
}

func splitList(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func describeError(err error) string {
	if code, ok := errors.CodeOf(err); ok {
		return fmt.Sprintf("%v [%s %d]", err, code, int32(code))
	}
	return err.Error()
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	callStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	delegateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	refusedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

func actionStyle(a dispatch.Action) lipgloss.Style {
	switch a {
	case dispatch.ActionCall:
		return callStyle
	case dispatch.ActionDelegate, dispatch.ActionForward:
		return delegateStyle
	case dispatch.ActionError:
		return refusedStyle
	default:
		return errorStyle
	}
}

type printer struct {
	out    io.Writer
	styled bool
}

func (p printer) render(s lipgloss.Style, text string) string {
	if !p.styled {
		return text
	}
	return s.Render(text)
}

func (p printer) line(text string) {
	fmt.Fprintln(p.out, text)
}

func (p printer) title(text string) {
	p.line(p.render(titleStyle, text))
}

func (p printer) entry(e tableEntry) {
	p.line(fmt.Sprintf("%7d  %s", e.what, p.render(actionStyle(e.outcome.Action), e.outcome.String())))
}

func (p printer) outcome(o dispatch.Outcome) {
	p.line(p.render(actionStyle(o.Action), o.String()))
}

func (p printer) result(text string) {
	p.line(p.render(resultStyle, text))
}

func (p printer) failure(text string) {
	p.line(p.render(errorStyle, text))
}
