// Package logger is the process logger: zerolog configured from LOG_* env, plus
// context helpers that stamp request, run and minutes ids on every line
package logger

import (
	"context"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"

	"minutes/internal/platform/config/raw"
)

type Logger = zerolog.Logger

// Options for the root logger. Format is "console" or "json".
type Options struct {
	Level        string
	Format       string
	Service      string
	Component    string
	Writer       io.Writer // stdout when nil
	WithCaller   bool
	SampleEvery  int // keep 1 in N events; 0 or 1 keeps all
	StaticFields map[string]string
}

// FromEnv reads LOG_LEVEL, LOG_FORMAT, LOG_SERVICE, LOG_COMPONENT, LOG_CALLER and LOG_SAMPLE_EVERY
func FromEnv() Options {
	env := raw.New().Prefix("LOG_")
	return Options{
		Level:       env.Get("LEVEL", "debug"),
		Format:      strings.ToLower(env.Get("FORMAT", "console")),
		Service:     env.Get("SERVICE", "minutes"),
		Component:   env.Get("COMPONENT", ""),
		WithCaller:  env.GetBool("CALLER", false),
		SampleEvery: env.GetInt("SAMPLE_EVERY", 0),
	}
}

var (
	once sync.Once
	root *Logger
)

// Init sets the root logger; only the first call, or the first Get, has effect
func Init(opt Options) {
	once.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano
		root = New(opt)
	})
}

// Get returns the root logger, initializing it from the environment on first use
func Get() *Logger {
	Init(FromEnv())
	return root
}

// New builds a logger from opt without touching the root
func New(opt Options) *Logger {
	w := opt.Writer
	if w == nil {
		w = os.Stdout
	}
	if opt.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	c := zerolog.New(w).Level(parseLevel(opt.Level)).With().Timestamp()
	if bi, ok := debug.ReadBuildInfo(); ok {
		c = c.Str("go_version", bi.GoVersion)
	}
	for k, v := range map[string]string{"service": opt.Service, "component": opt.Component} {
		if v != "" {
			c = c.Str(k, v)
		}
	}
	for k, v := range opt.StaticFields {
		c = c.Str(k, v)
	}
	if opt.WithCaller {
		c = c.Caller()
	}

	l := c.Logger()
	if opt.SampleEvery > 1 {
		l = l.Sample(&zerolog.BasicSampler{N: uint32(opt.SampleEvery)})
	}
	return &l
}

// parseLevel accepts zerolog names plus "warning"; anything else is debug
func parseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		return zerolog.WarnLevel
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || s == "" {
		return zerolog.DebugLevel
	}
	return lvl
}

type ctxKey uint8

const (
	keyRequest ctxKey = iota
	keyRun
	keyMinutes
)

// WithRequest tags ctx with an http request id; blank ids are ignored
func WithRequest(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, keyRequest, id)
}

// WithRun tags ctx with an extraction run id; blank ids are ignored
func WithRun(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, keyRun, id)
}

// WithMinutes tags ctx with the minutes document being processed
func WithMinutes(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, keyMinutes, id)
}

// C is the root logger with whatever ids ctx carries
func C(ctx context.Context) *Logger {
	return from(Get(), ctx)
}

func from(base *Logger, ctx context.Context) *Logger {
	c := base.With()
	if v, ok := ctx.Value(keyRequest).(string); ok {
		c = c.Str("request_id", v)
	}
	if v, ok := ctx.Value(keyRun).(string); ok {
		c = c.Str("run_id", v)
	}
	if v, ok := ctx.Value(keyMinutes).(int64); ok {
		c = c.Int64("minutes_id", v)
	}
	l := c.Logger()
	return &l
}

// Named is the root logger with a component field
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	l := Get().With().Str("component", component).Logger()
	return &l
}
