/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package log

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level defines a log level.
type Level int

// Log levels, from least to most verbose.
const (
	FATAL Level = iota
	PANIC
	ERROR
	WARNING
	INFO
	DEBUG
)

var levelNames = []string{"FATAL", "PANIC", "ERROR", "WARNING", "INFO", "DEBUG"}

func (l Level) String() string {
	if l < FATAL || l > DEBUG {
		return fmt.Sprintf("Level(%d)", int(l))
	}

	return levelNames[l]
}

// ParseLevel parses a case-insensitive level name.
func ParseLevel(name string) (Level, error) {
	for i, n := range levelNames {
		if strings.EqualFold(n, name) {
			return Level(i), nil
		}
	}

	return ERROR, fmt.Errorf("invalid log level: '%s'", name)
}

func (l Level) zapLevel() zapcore.Level {
	switch l {
	case FATAL:
		return zapcore.FatalLevel
	case PANIC:
		return zapcore.PanicLevel
	case ERROR:
		return zapcore.ErrorLevel
	case WARNING:
		return zapcore.WarnLevel
	case INFO:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// Encoding defines the log output encoding.
type Encoding string

// Supported encodings.
const (
	Console Encoding = "console"
	JSON    Encoding = "json"
)

type options struct {
	stdOut   zapcore.WriteSyncer
	encoding Encoding
}

// Option is a logger option.
type Option func(o *options)

// WithStdOut sets the output of the logger. Defaults to os.Stdout.
func WithStdOut(w zapcore.WriteSyncer) Option {
	return func(o *options) {
		o.stdOut = w
	}
}

// WithEncoding sets the output encoding. Defaults to Console.
func WithEncoding(encoding Encoding) Option {
	return func(o *options) {
		o.encoding = encoding
	}
}

// Log is a module logger. Structured methods (Debug, Info, ...) come from zap; formatted
// methods (Debugf, Infof, ...) use the sugared logger.
type Log struct {
	*zap.Logger
	module  string
	sugared *zap.SugaredLogger
}

// New returns a logger for the given module. The level of the module may be changed at any time
// with SetLevel or SetSpec.
func New(module string, opts ...Option) *Log {
	o := &options{stdOut: zapcore.Lock(os.Stdout), encoding: Console}

	for _, opt := range opts {
		opt(o)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	var encoder zapcore.Encoder
	if o.encoding == JSON {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	enabler := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= GetLevel(module).zapLevel()
	})

	logger := zap.New(zapcore.NewCore(encoder, o.stdOut, enabler), zap.AddCaller()).Named(module)

	return &Log{
		Logger:  logger,
		module:  module,
		sugared: logger.WithOptions(zap.AddCallerSkip(1)).Sugar(),
	}
}

// Module returns the module name.
func (l *Log) Module() string {
	return l.module
}

// IsEnabled reports whether the given level is enabled for this module.
func (l *Log) IsEnabled(level Level) bool {
	return GetLevel(l.module) >= level
}

// Debugf logs a formatted message at debug level.
func (l *Log) Debugf(msg string, args ...interface{}) {
	l.sugared.Debugf(msg, args...)
}

// Infof logs a formatted message at info level.
func (l *Log) Infof(msg string, args ...interface{}) {
	l.sugared.Infof(msg, args...)
}

// Warnf logs a formatted message at warning level.
func (l *Log) Warnf(msg string, args ...interface{}) {
	l.sugared.Warnf(msg, args...)
}

// Errorf logs a formatted message at error level.
func (l *Log) Errorf(msg string, args ...interface{}) {
	l.sugared.Errorf(msg, args...)
}

type moduleLevels struct {
	mutex        sync.RWMutex
	levels       map[string]Level
	defaultLevel Level
}

var levels = &moduleLevels{levels: make(map[string]Level), defaultLevel: INFO}

// SetLevel sets the log level for given module and level.
func SetLevel(module string, level Level) {
	levels.mutex.Lock()
	defer levels.mutex.Unlock()

	levels.levels[module] = level
}

// SetDefaultLevel sets the default log level.
func SetDefaultLevel(level Level) {
	levels.mutex.Lock()
	defer levels.mutex.Unlock()

	levels.defaultLevel = level
}

// GetLevel returns the log level for the given module.
func GetLevel(module string) Level {
	levels.mutex.RLock()
	defer levels.mutex.RUnlock()

	if level, ok := levels.levels[module]; ok {
		return level
	}

	return levels.defaultLevel
}

// SetSpec sets the log levels for individual modules as well as the default log level.
// Format: module1=level1:module2=level2:defaultLevel
func SetSpec(spec string) error {
	moduleLevelPairs := make(map[string]Level)
	defaultLevel := INFO
	defaultSet := false

	for _, item := range strings.Split(spec, ":") {
		if item == "" {
			continue
		}

		parts := strings.Split(item, "=")

		switch len(parts) {
		case 1:
			level, err := ParseLevel(parts[0])
			if err != nil {
				return err
			}

			defaultLevel = level
			defaultSet = true
		case 2:
			level, err := ParseLevel(parts[1])
			if err != nil {
				return err
			}

			moduleLevelPairs[parts[0]] = level
		default:
			return fmt.Errorf("invalid log spec: '%s'", spec)
		}
	}

	levels.mutex.Lock()
	defer levels.mutex.Unlock()

	for module, level := range moduleLevelPairs {
		levels.levels[module] = level
	}

	if defaultSet {
		levels.defaultLevel = defaultLevel
	}

	return nil
}

// GetSpec returns the log spec which specifies the log level of each individual module.
func GetSpec() string {
	levels.mutex.RLock()
	defer levels.mutex.RUnlock()

	modules := make([]string, 0, len(levels.levels))
	for module := range levels.levels {
		modules = append(modules, module)
	}

	sort.Strings(modules)

	var spec strings.Builder

	for _, module := range modules {
		spec.WriteString(fmt.Sprintf("%s=%s:", module, levels.levels[module]))
	}

	spec.WriteString(levels.defaultLevel.String())

	return spec.String()
}
