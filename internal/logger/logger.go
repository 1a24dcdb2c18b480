package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Namespace root of every logger name
const Namespace = "deep_shiva"

// Reserved sub-namespaces with dedicated sinks
const (
	AccessName      = Namespace + ".access"
	AIResponsesName = Namespace + ".ai_responses"
)

// Log file names inside Config.Dir
const (
	AppFile         = "app.log"
	ErrorFile       = "error.log"
	AccessFile      = "access.log"
	AIResponsesFile = "ai_responses.log"
)

// Config logging setup, fixed for the process lifetime
type Config struct {
	Environment   string // development, production, testing
	Level         string // empty: debug in development, info otherwise
	Format        string // json, console; empty: console in development, json otherwise
	Dir           string
	MaxSizeBytes  int64
	AppBackups    int
	ErrorBackups  int
	AccessBackups int
	AIBackups     int
	Console       io.Writer // defaults to os.Stdout
	ErrorOutput   io.Writer // internal sink failures; defaults to os.Stderr
}

func (c *Config) applyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Dir == "" {
		c.Dir = "logs"
	}
	if c.MaxSizeBytes <= 0 {
		c.MaxSizeBytes = 10 * 1024 * 1024
	}
	if c.AppBackups <= 0 {
		c.AppBackups = 5
	}
	if c.ErrorBackups <= 0 {
		c.ErrorBackups = 5
	}
	if c.AccessBackups <= 0 {
		c.AccessBackups = 10
	}
	if c.AIBackups <= 0 {
		c.AIBackups = 20
	}
	if c.Console == nil {
		c.Console = os.Stdout
	}
	if c.ErrorOutput == nil {
		c.ErrorOutput = os.Stderr
	}
}

func (c *Config) development() bool {
	return c.Environment == "development" || c.Environment == "dev"
}

func (c *Config) consoleLevel() zapcore.Level {
	var lvl zapcore.Level
	if c.Level != "" {
		if err := lvl.UnmarshalText([]byte(c.Level)); err == nil {
			return lvl
		}
	}
	if c.development() {
		return zapcore.DebugLevel
	}
	return zapcore.InfoLevel
}

// Manager owns every sink and hands out named loggers
type Manager struct {
	cfg     Config
	general zapcore.Core
	access  zapcore.Core
	ai      zapcore.Core
	files   map[string]*RotatingWriter
	opts    []zap.Option

	mu      sync.Mutex
	loggers map[string]*Logger
}

// NewManager builds the console and file sinks once
func NewManager(cfg Config) (*Manager, error) {
	cfg.applyDefaults()

	m := &Manager{
		cfg:     cfg,
		files:   make(map[string]*RotatingWriter, 4),
		loggers: make(map[string]*Logger),
	}

	specs := []struct {
		name    string
		backups int
	}{
		{AppFile, cfg.AppBackups},
		{ErrorFile, cfg.ErrorBackups},
		{AccessFile, cfg.AccessBackups},
		{AIResponsesFile, cfg.AIBackups},
	}
	for _, s := range specs {
		w, err := NewRotatingWriter(filepath.Join(cfg.Dir, s.name), cfg.MaxSizeBytes, s.backups)
		if err != nil {
			_ = m.Close()
			return nil, err
		}
		m.files[s.name] = w
	}

	jsonEnc := zapcore.NewJSONEncoder(jsonEncoderConfig())
	console := zapcore.Lock(zapcore.AddSync(cfg.Console))

	var consoleEnc zapcore.Encoder
	switch {
	case cfg.Format == "json":
		consoleEnc = jsonEnc.Clone()
	case cfg.Format == "console", cfg.development():
		consoleEnc = newPlainEncoder()
	default:
		consoleEnc = jsonEnc.Clone()
	}

	m.general = zapcore.NewTee(
		zapcore.NewCore(consoleEnc, console, cfg.consoleLevel()),
		zapcore.NewCore(jsonEnc.Clone(), zapcore.AddSync(m.files[AppFile]), zapcore.InfoLevel),
		zapcore.NewCore(jsonEnc.Clone(), zapcore.AddSync(m.files[ErrorFile]), zapcore.ErrorLevel),
	)
	m.access = zapcore.NewCore(jsonEnc.Clone(), zapcore.AddSync(m.files[AccessFile]), zapcore.InfoLevel)
	m.ai = zapcore.NewTee(
		zapcore.NewCore(newAIConsoleEncoder(), console, zapcore.InfoLevel),
		zapcore.NewCore(jsonEnc.Clone(), zapcore.AddSync(m.files[AIResponsesFile]), zapcore.InfoLevel),
	)

	m.opts = []zap.Option{
		zap.AddCaller(),
		zap.AddCallerSkip(2),
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.ErrorOutput(zapcore.Lock(zapcore.AddSync(cfg.ErrorOutput))),
	}
	return m, nil
}

func jsonEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    "function",
		MessageKey:     "message",
		StacktraceKey:  "exception",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     utcTimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

func utcTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.UTC().Format("2006-01-02T15:04:05.000000Z"))
}

// QualifiedName maps a short name into the deep_shiva namespace
func QualifiedName(name string) string {
	name = strings.TrimSpace(name)
	switch {
	case name == "" || name == Namespace:
		return Namespace
	case strings.HasPrefix(name, Namespace+"."):
		return name
	default:
		return Namespace + "." + name
	}
}

// GetLogger returns the handle for name; repeated calls return the same handle
func (m *Manager) GetLogger(name string) *Logger {
	full := QualifiedName(name)

	m.mu.Lock()
	defer m.mu.Unlock()
	if l, ok := m.loggers[full]; ok {
		return l
	}
	l := &Logger{name: full, z: zap.New(m.coreFor(full), m.opts...).Named(full)}
	m.loggers[full] = l
	return l
}

func (m *Manager) coreFor(full string) zapcore.Core {
	switch {
	case inNamespace(full, AccessName):
		return m.access
	case inNamespace(full, AIResponsesName):
		return m.ai
	default:
		return m.general
	}
}

func inNamespace(name, ns string) bool {
	return name == ns || strings.HasPrefix(name, ns+".")
}

// Access request access logger
func (m *Manager) Access() *Logger {
	return m.GetLogger(AccessName)
}

// AIResponses conversation logger
func (m *Manager) AIResponses() *Logger {
	return m.GetLogger(AIResponsesName)
}

// Dir log directory
func (m *Manager) Dir() string {
	return m.cfg.Dir
}

// FilePath absolute path of one of the log files
func (m *Manager) FilePath(file string) string {
	return filepath.Join(m.cfg.Dir, file)
}

// Environment configured environment name
func (m *Manager) Environment() string {
	return m.cfg.Environment
}

// Sync flushes all file sinks
func (m *Manager) Sync() error {
	var errs []error
	for name, w := range m.files {
		if err := w.Sync(); err != nil {
			errs = append(errs, fmt.Errorf("sync %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// Close flushes and closes all file sinks
func (m *Manager) Close() error {
	var errs []error
	for name, w := range m.files {
		if err := w.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// Logger named handle. Sink failures are reported to the manager's error
// output and never returned to the caller.
type Logger struct {
	name string
	z    *zap.Logger
}

// Name fully qualified logger name
func (l *Logger) Name() string {
	return l.name
}

// Zap underlying zap logger, for libraries that want one
func (l *Logger) Zap() *zap.Logger {
	return l.z.WithOptions(zap.AddCallerSkip(-2))
}

// With child handle carrying extra fields on every record
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{name: l.name, z: l.z.With(fields...)}
}

// WithContext adds the request id stored in ctx, if any
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if id := RequestIDFromContext(ctx); id != "" {
		return l.With(RequestID(id))
	}
	return l
}

// Emit writes one record at level to every sink of the namespace
func (l *Logger) Emit(level zapcore.Level, msg string, fields ...zap.Field) {
	l.log(level, msg, fields)
}

func (l *Logger) Debug(msg string, fields ...zap.Field) { l.log(zapcore.DebugLevel, msg, fields) }
func (l *Logger) Info(msg string, fields ...zap.Field) { l.log(zapcore.InfoLevel, msg, fields) }
func (l *Logger) Warn(msg string, fields ...zap.Field) { l.log(zapcore.WarnLevel, msg, fields) }
func (l *Logger) Error(msg string, fields ...zap.Field) { l.log(zapcore.ErrorLevel, msg, fields) }

func (l *Logger) log(level zapcore.Level, msg string, fields []zap.Field) {
	// records never terminate the process
	if level > zapcore.ErrorLevel {
		level = zapcore.ErrorLevel
	}
	if ce := l.z.Check(level, msg); ce != nil {
		ce.Write(fields...)
	}
}
