package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/example/sketchpad/internal/appstate"
	"github.com/example/sketchpad/internal/config"
	"github.com/example/sketchpad/internal/document"
	"github.com/example/sketchpad/internal/notify"
	"github.com/example/sketchpad/internal/theme"
	"github.com/example/sketchpad/internal/tool"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs           *flag.FlagSet
	program      string
	stdout       io.Writer
	notifier     *notify.Notifier
	config       *config.Config
	configPath   string
	saveAlerts   bool
	loadAlerts   bool
	copyAlerts   bool
	exportAlerts bool
	themeName    string
	toolName     string
	activeTheme  *theme.Theme
	startTool    tool.Kind
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	prefs := notify.LoadPreferences()
	r := &root{
		fs:         flag.NewFlagSet("sketchpad", flag.ExitOnError),
		program:    "sketchpad",
		stdout:     os.Stdout,
		notifier:   notify.New(prefs),
		configPath: configPathOverride,
	}
	r.loadConfig()
	cfg := r.config
	r.fs.StringVar(&r.configPath, "config", configPathOverride, "path to the RC file (read before flags take effect)")
	r.fs.BoolVar(&r.saveAlerts, "notify-save", cfg.Notify.Save, "show a desktop notification after saving a drawing")
	r.fs.BoolVar(&r.loadAlerts, "notify-load", cfg.Notify.Load, "show a desktop notification after opening a drawing")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying to the clipboard")
	r.fs.BoolVar(&r.exportAlerts, "notify-export", cfg.Notify.Export, "show a desktop notification after exporting an image")

	// Precedence: CLI > Env > Config > Default
	// Env is folded into the config by the loader, so an empty flag falls
	// through to it.
	r.fs.StringVar(&r.themeName, "theme", "", "color theme to use (light, dark, a file, or a [theme.*] section)")
	r.fs.StringVar(&r.toolName, "tool", "", "tool active at startup (select, line, circle, ellipse, polyline)")
	r.fs.Usage = usageFunc(r)
	return r
}

func (r *root) loadConfig() {
	loader := config.NewLoader(version, r.configPath)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}
	r.config = cfg
}

// reapplyNotifyDefaults copies notification settings from a config file named
// by -config into the flags the user did not set.
func (r *root) reapplyNotifyDefaults() {
	set := map[string]bool{}
	r.fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	n := r.config.Notify
	for name, dst := range map[string]struct {
		flag *bool
		val  bool
	}{
		"notify-save":   {&r.saveAlerts, n.Save},
		"notify-load":   {&r.loadAlerts, n.Load},
		"notify-copy":   {&r.copyAlerts, n.Copy},
		"notify-export": {&r.exportAlerts, n.Export},
	} {
		if !set[name] {
			*dst.flag = dst.val
		}
	}
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.configPath != configPathOverride {
		r.loadConfig()
		r.reapplyNotifyDefaults()
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if r.notifier != nil {
		r.notifier.Enable(notify.EventSave, r.saveAlerts)
		r.notifier.Enable(notify.EventLoad, r.loadAlerts)
		r.notifier.Enable(notify.EventCopy, r.copyAlerts)
		r.notifier.Enable(notify.EventExport, r.exportAlerts)
	}
	r.resolveTheme()
	if err := r.resolveTool(); err != nil {
		return err
	}

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "window":
		cmd, err = parseWindowCmd(subArgs, r)
	case "tui":
		cmd, err = parseTUICmd(subArgs, r)
	case "serve":
		cmd, err = parseServeCmd(subArgs, r)
	case "render":
		cmd, err = parseRenderCmd(subArgs, r)
	case "shapes":
		cmd, err = parseShapesCmd(subArgs, r)
	case "store":
		cmd, err = parseStoreCmd(subArgs, r)
	case "clip":
		cmd, err = parseClipCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "samples":
		cmd, err = parseSamplesCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{root: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func (r *root) resolveTheme() {
	name := r.themeName
	if name == "" {
		name = r.config.Theme
	}
	if t := r.config.ThemeByName(name); t != nil {
		r.activeTheme = t
		return
	}
	t, err := theme.NewLoader().Load(name)
	if err != nil {
		if name != "" && name != "default" {
			fmt.Fprintf(os.Stderr, "warning: failed to load theme '%s': %v. using default.\n", name, err)
		}
		t = theme.Default()
	}
	r.activeTheme = t
}

func (r *root) resolveTool() error {
	if r.toolName == "" {
		r.startTool = r.config.StartTool()
		return nil
	}
	k, err := tool.ParseKind(r.toolName)
	if err != nil {
		return fmt.Errorf("-tool: %w", err)
	}
	r.startTool = k
	return nil
}

// newState builds an AppState with the resolved theme and start tool.
func (r *root) newState(opts ...appstate.Option) *appstate.AppState {
	base := []appstate.Option{appstate.WithTool(r.startTool)}
	if r.activeTheme != nil {
		base = append(base, appstate.WithTheme(r.activeTheme))
	}
	return appstate.New(append(base, opts...)...)
}

// openDrawing loads path into app. A missing file leaves app empty so new
// drawings can be started by name.
func (r *root) openDrawing(app *appstate.AppState, path string) error {
	if path == "" {
		return nil
	}
	shapes, dropped, err := document.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if dropped > 0 {
		fmt.Fprintf(os.Stderr, "warning: %s: skipped %d unknown shapes\n", path, dropped)
	}
	app.LoadShapes(shapes)
	r.notifyLoad(path, len(shapes))
	return nil
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (r *root) notifySave(target string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Save(target)
}

func (r *root) notifyLoad(source string, shapes int) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Load(source, shapes)
}

func (r *root) notifyCopy(detail string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Copy(detail)
}

func (r *root) notifyExport(path string, img image.Image) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Export(path, img)
}

func (r *root) out() io.Writer {
	if r == nil || r.stdout == nil {
		return os.Stdout
	}
	return r.stdout
}

func versionString(program string) string {
	parts := []string{fmt.Sprintf("%s version %s", program, version)}
	if commit != "" {
		parts = append(parts, "commit "+commit)
	}
	if date != "" {
		parts = append(parts, "built "+date)
	}
	return strings.Join(parts, ", ")
}
