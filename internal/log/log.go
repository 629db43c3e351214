// Package log is the leveled key/value logger used by the phoenlcd command.
package log

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
	"strings"
	"sync"
	"time"
)

type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelError Level = "ERROR"
)

var (
	mu       sync.Mutex
	logger   = stdlog.New(os.Stderr, "", 0)
	minLevel = LevelInfo
	now      = time.Now
)

// ParseLevel maps a config value such as "debug" to a Level.
func ParseLevel(s string) (Level, error) {
	switch Level(strings.ToUpper(strings.TrimSpace(s))) {
	case LevelDebug:
		return LevelDebug, nil
	case LevelInfo, "":
		return LevelInfo, nil
	case LevelError:
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("log: unknown level %q", s)
	}
}

func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	minLevel = l
}

// SetOutput redirects log lines, stderr by default.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger.SetOutput(w)
}

func Debug(msg string, kv ...any) {
	write(LevelDebug, msg, nil, kv)
}

func Info(msg string, kv ...any) {
	write(LevelInfo, msg, nil, kv)
}

// Error logs msg with err as the first pair.
func Error(msg string, err error, kv ...any) {
	write(LevelError, msg, []any{"err", err}, kv)
}

// rank orders levels; an unknown minimum lets everything through.
var rank = map[Level]int{LevelDebug: 0, LevelInfo: 1, LevelError: 2}

func write(level Level, msg string, head, kv []any) {
	mu.Lock()
	defer mu.Unlock()
	if rank[level] < rank[minLevel] {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] %s", now().Format(time.RFC3339Nano), level, msg)
	appendPairs(&b, head)
	appendPairs(&b, kv)
	logger.Println(b.String())
}

// appendPairs writes " key=value" for each pair whose key is a string. A
// value without a key is dropped.
func appendPairs(b *strings.Builder, kv []any) {
	for len(kv) >= 2 {
		if key, ok := kv[0].(string); ok {
			fmt.Fprintf(b, " %s=%v", key, kv[1])
		}
		kv = kv[2:]
	}
}
