package logging

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log modes.
const (
	ModeDevelopment = "dev"
	ModeProduction  = "prod"
)

// HashSaltEnv names the environment variable holding the salt for hashed identifiers.
const HashSaltEnv = "CHECKIN_SCORER_LOG_HASH_SALT"

// Logger is a structured logger that keeps client identifiers and credentials out of log output.
type Logger struct {
	sugared *zap.SugaredLogger
	salt    string
}

// New builds a logger for the given mode. Verbose enables debug output.
func New(mode string, verbose bool) (logger *Logger, err error) {
	var cfg zap.Config
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case ModeProduction, "production":
		cfg = zap.NewProductionConfig()
	case ModeDevelopment, "development", "":
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		err = errors.Errorf("unknown log mode %q (expected %s or %s)", mode, ModeDevelopment, ModeProduction)
		return logger, err
	}

	level := zap.InfoLevel
	if verbose {
		level = zap.DebugLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	var zapLogger *zap.Logger
	zapLogger, err = cfg.Build()
	if err != nil {
		err = errors.Wrap(err, "failed to build logger")
		return logger, err
	}

	logger = FromZap(zapLogger)
	return logger, err
}

// FromZap wraps an existing zap logger.
func FromZap(zapLogger *zap.Logger) (logger *Logger) {
	logger = &Logger{
		sugared: zapLogger.Sugar(),
		salt:    strings.TrimSpace(os.Getenv(HashSaltEnv)),
	}
	return logger
}

// Nop returns a logger that discards everything.
func Nop() (logger *Logger) {
	logger = FromZap(zap.NewNop())
	return logger
}

// Sync flushes buffered entries.
func (l *Logger) Sync() {
	_ = l.sugared.Sync()
}

// Debug logs at debug level.
func (l *Logger) Debug(msg string, keysAndValues ...any) {
	l.sugared.Debugw(msg, l.sanitize(keysAndValues)...)
}

// Info logs at info level.
func (l *Logger) Info(msg string, keysAndValues ...any) {
	l.sugared.Infow(msg, l.sanitize(keysAndValues)...)
}

// Warn logs at warn level.
func (l *Logger) Warn(msg string, keysAndValues ...any) {
	l.sugared.Warnw(msg, l.sanitize(keysAndValues)...)
}

// Error logs at error level.
func (l *Logger) Error(msg string, keysAndValues ...any) {
	l.sugared.Errorw(msg, l.sanitize(keysAndValues)...)
}

// With returns a child logger carrying the given fields.
func (l *Logger) With(keysAndValues ...any) (child *Logger) {
	child = &Logger{
		sugared: l.sugared.With(l.sanitize(keysAndValues)...),
		salt:    l.salt,
	}
	return child
}

func (l *Logger) sanitize(kv []any) (out []any) {
	if len(kv) == 0 {
		return kv
	}

	out = make([]any, 0, len(kv))
	for i := 0; i < len(kv); i += 2 {
		if i == len(kv)-1 {
			out = append(out, kv[i])
			break
		}
		key := toString(kv[i])
		out = append(out, key, l.sanitizeValue(strings.ToLower(strings.TrimSpace(key)), kv[i+1]))
	}

	return out
}

func (l *Logger) sanitizeValue(key string, val any) (clean any) {
	switch {
	case isRedactKey(key):
		clean = "[REDACTED]"
	case isHashKey(key):
		clean = l.hash(val)
	default:
		clean = val
	}
	return clean
}

func isRedactKey(key string) (redact bool) {
	for _, fragment := range []string{"token", "password", "secret", "api_key", "apikey", "email"} {
		if strings.Contains(key, fragment) {
			redact = true
			return redact
		}
	}
	return redact
}

func isHashKey(key string) (hash bool) {
	hash = strings.Contains(key, "client_id") || strings.Contains(key, "clientid")
	return hash
}

func (l *Logger) hash(val any) (hashed string) {
	raw := toString(val)
	if raw == "" {
		return hashed
	}

	h := sha256.New()
	if l.salt != "" {
		_, _ = h.Write([]byte(l.salt))
	}
	_, _ = h.Write([]byte(raw))

	sum := hex.EncodeToString(h.Sum(nil))
	hashed = "hash:" + sum[:12]
	return hashed
}

func toString(v any) (s string) {
	switch t := v.(type) {
	case nil:
		s = ""
	case string:
		s = t
	case []byte:
		s = string(t)
	default:
		s = strings.TrimSpace(fmt.Sprint(v))
	}
	return s
}
