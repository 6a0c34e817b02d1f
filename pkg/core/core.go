package core

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/jenseng/dynamic-uses/internal/logging"
)

// commandFiles holds the runner-provided command file paths. An empty field
// means the runner predates that file command and the legacy stdout encoding
// is used instead. Parsed once per Action; the runner never changes these
// mid-process.
type commandFiles struct {
	Output string `env:"GITHUB_OUTPUT"`
	Env    string `env:"GITHUB_ENV"`
	State  string `env:"GITHUB_STATE"`
}

// Action is the facade over both command transports. The zero value is not
// usable; construct with New.
type Action struct {
	env    Environment
	out    io.Writer
	logger *slog.Logger
	files  commandFiles
	failed bool
}

// Option configures an Action.
type Option func(*Action)

// WithEnvironment substitutes the process environment, typically with a
// MapEnv in tests.
func WithEnvironment(e Environment) Option {
	return func(a *Action) { a.env = e }
}

// WithStdout redirects the legacy command stream away from os.Stdout.
func WithStdout(w io.Writer) Option {
	return func(a *Action) { a.out = w }
}

// WithLogger sets a custom structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *Action) { a.logger = l }
}

// New builds an Action, resolving the available command files from the
// environment once. Subsequent changes to the GITHUB_* variables are
// deliberately ignored.
func New(opts ...Option) (*Action, error) {
	a := &Action{
		env: OS(),
		out: os.Stdout,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = logging.New(logging.LevelFromEnv(a.env.Lookup))
	}
	if err := env.ParseWithOptions(&a.files, env.Options{Environment: a.env.All()}); err != nil {
		return nil, fmt.Errorf("resolve runner command files: %w", err)
	}
	return a, nil
}

// Logger exposes the action's structured logger.
func (a *Action) Logger() *slog.Logger {
	return a.logger
}

// Environment exposes the backing environment, shared with collaborators
// (e.g. the batch exporter) so conflict checks and exports observe the same
// state.
func (a *Action) Environment() Environment {
	return a.env
}

type inputOptions struct {
	required       bool
	trimWhitespace bool
}

// InputOption adjusts how GetInput treats a single input.
type InputOption func(*inputOptions)

// Required makes GetInput fail when the input is absent or empty.
func Required() InputOption {
	return func(o *inputOptions) { o.required = true }
}

// PreserveWhitespace suppresses the default trimming of input values.
func PreserveWhitespace() InputOption {
	return func(o *inputOptions) { o.trimWhitespace = false }
}

// inputKey maps an input name to the variable the runner injected it under:
// uppercased, spaces replaced by underscores, INPUT_ prefixed.
func inputKey(name string) string {
	return "INPUT_" + strings.ToUpper(strings.ReplaceAll(name, " ", "_"))
}

// GetInput reads a step input. Values are whitespace-trimmed unless
// PreserveWhitespace is given; Required turns an absent or empty value into
// ErrInputRequired.
func (a *Action) GetInput(name string, opts ...InputOption) (string, error) {
	o := inputOptions{trimWhitespace: true}
	for _, opt := range opts {
		opt(&o)
	}
	val, _ := a.env.Lookup(inputKey(name))
	if o.trimWhitespace {
		val = strings.TrimSpace(val)
	}
	if o.required && val == "" {
		return "", fmt.Errorf("%w: %s", ErrInputRequired, name)
	}
	return val, nil
}

// GetMultilineInput reads an input and splits it into its non-empty lines.
// Each line is trimmed unless PreserveWhitespace is given.
func (a *Action) GetMultilineInput(name string, opts ...InputOption) ([]string, error) {
	o := inputOptions{trimWhitespace: true}
	for _, opt := range opts {
		opt(&o)
	}
	raw, err := a.GetInput(name, opts...)
	if err != nil {
		return nil, err
	}
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		if o.trimWhitespace {
			line = strings.TrimSpace(line)
		}
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// GetBooleanInput reads an input that must be a YAML 1.2 core-schema
// boolean. Anything else is ErrInvalidBool.
func (a *Action) GetBooleanInput(name string, opts ...InputOption) (bool, error) {
	raw, err := a.GetInput(name, opts...)
	if err != nil {
		return false, err
	}
	switch raw {
	case "true", "True", "TRUE":
		return true, nil
	case "false", "False", "FALSE":
		return false, nil
	}
	return false, fmt.Errorf("%w: %s=%q", ErrInvalidBool, name, raw)
}

// SetOutput records a step output. File-framed when the runner provides
// GITHUB_OUTPUT; otherwise the legacy set-output command, preceded by a
// blank line (older log parsers choke on commands glued to prior output).
func (a *Action) SetOutput(name string, value any) error {
	if a.files.Output != "" {
		return appendFileCommand(a.files.Output, "OUTPUT", name, value)
	}
	if _, err := fmt.Fprintln(a.out); err != nil {
		return err
	}
	return issueCommand(a.out, "set-output", CommandProperties{"name": name}, value)
}

// ExportVariable makes name available to the rest of this process
// immediately and records the assignment for the runner to apply to
// subsequent steps.
func (a *Action) ExportVariable(name string, value any) error {
	v, err := CommandValue(value)
	if err != nil {
		return err
	}
	if err := a.env.Set(name, v); err != nil {
		return fmt.Errorf("set %s: %w", name, err)
	}
	if a.files.Env != "" {
		return appendFileCommand(a.files.Env, "ENV", name, v)
	}
	return issueCommand(a.out, "set-env", CommandProperties{"name": name}, v)
}

// SaveState persists a value for a later job stage (e.g. a post step),
// readable back through GetState.
func (a *Action) SaveState(name string, value any) error {
	if a.files.State != "" {
		return appendFileCommand(a.files.State, "STATE", name, value)
	}
	return issueCommand(a.out, "save-state", CommandProperties{"name": name}, value)
}

// GetState reads a value persisted by an earlier stage's SaveState.
func (a *Action) GetState(name string) string {
	v, _ := a.env.Lookup("STATE_" + name)
	return v
}

// SetSecret asks the runner to redact value from all subsequent log output.
// Redaction itself happens runner-side.
func (a *Action) SetSecret(value string) error {
	return issueCommand(a.out, "add-mask", nil, value)
}

// AnnotationProperties locates an annotation in the workspace. The zero
// value is a plain, unanchored annotation.
type AnnotationProperties struct {
	Title       string
	File        string
	StartLine   int
	EndLine     int
	StartColumn int
	EndColumn   int
}

func (p AnnotationProperties) commandProperties() CommandProperties {
	props := CommandProperties{}
	if p.Title != "" {
		props["title"] = p.Title
	}
	if p.File != "" {
		props["file"] = p.File
	}
	if p.StartLine > 0 {
		props["line"] = strconv.Itoa(p.StartLine)
	}
	if p.EndLine > 0 {
		props["endLine"] = strconv.Itoa(p.EndLine)
	}
	if p.StartColumn > 0 {
		props["col"] = strconv.Itoa(p.StartColumn)
	}
	if p.EndColumn > 0 {
		props["endColumn"] = strconv.Itoa(p.EndColumn)
	}
	return props
}

func (a *Action) annotate(level, message string, props []AnnotationProperties) error {
	var cp CommandProperties
	if len(props) > 0 {
		cp = props[0].commandProperties()
	}
	return issueCommand(a.out, level, cp, message)
}

// Debug emits a debug command, visible when the runner has step debugging
// enabled.
func (a *Action) Debug(message string) error {
	return issueCommand(a.out, "debug", nil, message)
}

// Notice emits a notice annotation.
func (a *Action) Notice(message string, props ...AnnotationProperties) error {
	return a.annotate("notice", message, props)
}

// Warning emits a warning annotation.
func (a *Action) Warning(message string, props ...AnnotationProperties) error {
	return a.annotate("warning", message, props)
}

// Error emits an error annotation.
func (a *Action) Error(message string, props ...AnnotationProperties) error {
	return a.annotate("error", message, props)
}

// SetFailed emits an error annotation and latches the failure signal. The
// library never exits the process; hosts consult ExitCode when terminating.
func (a *Action) SetFailed(message string) {
	a.failed = true
	_ = a.Error(message)
}

// Failed reports whether SetFailed was called.
func (a *Action) Failed() bool {
	return a.failed
}

// ExitCode is the process exit code the runner should observe: 1 after
// SetFailed, 0 otherwise.
func (a *Action) ExitCode() int {
	if a.failed {
		return 1
	}
	return 0
}
