// Package launch resolves a requested command to the executable that
// should actually run, preferring a march-suffixed sibling variant when
// one exists, and replaces the current process image with it.
//
// The launcher is a linear fallback pipeline: an unresolvable command is
// still exec'd verbatim, so the only failure signal observable by the
// caller is the exec failure itself.
package launch

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

// Exit statuses of a failed launch. The success path has no status: the
// process image is replaced and this program never returns.
const (
	// ExitUsage is returned for command-line errors.
	ExitUsage = 2
	// ExitInterrupted is returned when the launch window is interrupted.
	ExitInterrupted = 3
	// ExitNotFound is the command-not-found / not-executable status.
	ExitNotFound = 127
)

// ExitError carries the process exit status for a failed launch.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExecFunc replaces the current process image. It matches unix.Exec and
// only ever returns on failure.
type ExecFunc func(argv0 string, argv []string, envv []string) error

// Decision records how a single invocation was resolved. It is what
// --dry-run reports instead of exec'ing.
type Decision struct {
	// Requested is the command token as given.
	Requested string `json:"requested" yaml:"requested"`
	// March is the effective tuning level, empty when none was selected.
	March string `json:"march,omitempty" yaml:"march,omitempty"`
	// MarchFrom names the source of the march tag (flag, config, cmdline).
	MarchFrom string `json:"marchFrom,omitempty" yaml:"marchFrom,omitempty"`
	// Resolved is the absolute (or search-path) location of the requested
	// command, empty when resolution failed.
	Resolved string `json:"resolved,omitempty" yaml:"resolved,omitempty"`
	// Variant is the derived march-variant path, set only when a march tag
	// was in effect and the command resolved.
	Variant string `json:"variant,omitempty" yaml:"variant,omitempty"`
	// Chosen is what will be exec'd: the variant, the resolved path, or
	// the verbatim token when resolution failed.
	Chosen string `json:"chosen" yaml:"chosen"`
	// UsedVariant reports whether the march variant was selected.
	UsedVariant bool `json:"usedVariant" yaml:"usedVariant"`
}

// Launcher turns an argument vector into a process replacement. Its
// parameters are immutable once built.
type Launcher struct {
	march      string
	marchFrom  string
	searchPath *string
	exec       ExecFunc
	log        *slog.Logger
}

// Option configures a Launcher.
type Option func(*Launcher)

// WithMarch sets the effective march tag. Empty means none.
func WithMarch(tag string) Option {
	return func(l *Launcher) { l.march = tag }
}

// WithMarchFrom records the provenance of the march tag for reporting.
func WithMarchFrom(origin string) Option {
	return func(l *Launcher) { l.marchFrom = origin }
}

// WithSearchPath overrides the PATH environment lookup. An empty string is
// a valid override that yields no search directories, unlike an unset
// PATH, which falls back to DefaultSearchPath.
func WithSearchPath(path string) Option {
	return func(l *Launcher) { l.searchPath = &path }
}

// WithExec replaces the process-replacement call, for tests.
func WithExec(fn ExecFunc) Option {
	return func(l *Launcher) { l.exec = fn }
}

// WithLogger sets the logger; slog.Default is used otherwise.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Launcher) { l.log = logger }
}

// New builds a Launcher.
func New(opts ...Option) *Launcher {
	l := &Launcher{
		exec: unix.Exec,
		log:  slog.Default(),
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

func (l *Launcher) effectiveSearchPath() string {
	if l.searchPath != nil {
		return *l.searchPath
	}
	if v, ok := os.LookupEnv("PATH"); ok {
		return v
	}
	return DefaultSearchPath
}

// Decide computes the launch decision for a command token without
// exec'ing. It is deterministic for a fixed filesystem state.
func (l *Launcher) Decide(token string) *Decision {
	d := &Decision{
		Requested: token,
		March:     l.march,
		MarchFrom: l.marchFrom,
		Chosen:    token,
	}

	prog := l.resolve(token)
	if prog == "" {
		l.log.Error("cannot determine path of program, will exec verbatim", "prog", token)
		if !strings.ContainsRune(token, os.PathSeparator) {
			if s := suggestions(token, l.effectiveSearchPath()); len(s) > 0 {
				l.log.Info("similarly named executables exist", "candidates", s)
			}
		}
		return d
	}
	d.Resolved = prog
	d.Chosen = prog

	if l.march == "" {
		l.log.Warn("neither --march nor a march boot parameter provided, will exec unmodified", "prog", prog)
		return d
	}

	d.Variant = VariantPath(prog, l.march)
	if isExecutable(d.Variant) {
		d.Chosen = d.Variant
		d.UsedVariant = true
		l.log.Debug("selected march variant", "variant", d.Variant)
		return d
	}

	// no optimized build available, not an error
	l.log.Debug("no march variant found", "variant", d.Variant)
	return d
}

// resolve maps the command token to an executable path, or "" when every
// resolution step failed.
func (l *Launcher) resolve(token string) string {
	if isExecutable(token) {
		if abs, err := filepath.Abs(token); err == nil {
			return abs
		}
	}
	prog, err := LookPath(token, l.effectiveSearchPath())
	if err != nil {
		return ""
	}
	return prog
}

// Run resolves argv[0] and replaces the current process image with the
// chosen executable and the full, possibly-rewritten argument vector. On
// success it does not return. Every failure funnels into an ExitError
// with the fixed not-found status; no error propagates past the launcher.
func (l *Launcher) Run(argv []string) error {
	if len(argv) == 0 {
		return &ExitError{Code: ExitUsage, Err: errors.New("no program to execute")}
	}

	d := l.Decide(argv[0])

	args := make([]string, len(argv))
	copy(args, argv)
	args[0] = d.Chosen

	l.log.Info("replacing process", "argv", args)
	if err := l.exec(args[0], args, os.Environ()); err != nil {
		l.log.Error("cannot exec", "prog", args[0], "error", err)
		return &ExitError{Code: ExitNotFound, Err: fmt.Errorf("cannot exec %s: %w", args[0], err)}
	}

	// unreachable: a successful exec never returns
	return nil
}
