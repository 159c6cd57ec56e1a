package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/dzonerzy/cmdtree/internal/pool"
)

// RequestInfo describes one action run
type RequestInfo struct {
	Command   string
	Args      []string
	Options   []string // flags that were present
	StartTime time.Time
	Duration  time.Duration
	Error     error
}

var requestInfoPool = pool.NewPoolWithReset(
	func() *RequestInfo {
		return &RequestInfo{}
	},
	func(info *RequestInfo) {
		info.Command = ""
		info.Args = info.Args[:0]
		info.Options = info.Options[:0]
		info.StartTime = time.Time{}
		info.Duration = 0
		info.Error = nil
	},
)

// Logger logs each action run to the configured output
func Logger(options ...MiddlewareOption) Middleware {
	config := newConfig(options)
	return logger(config, config.writer())
}

// LoggerWithWriter is Logger writing to w
func LoggerWithWriter(w io.Writer, options ...MiddlewareOption) Middleware {
	return logger(newConfig(options), w)
}

// LoggerWatching is Logger that also records which of flags were present
func LoggerWatching(flags []string, options ...MiddlewareOption) Middleware {
	config := newConfig(options)
	return loggerWatching(config, config.writer(), flags)
}

func logger(config *MiddlewareConfig, w io.Writer) Middleware {
	return loggerWatching(config, w, nil)
}

func loggerWatching(config *MiddlewareConfig, w io.Writer, flags []string) Middleware {
	return func(next ActionFunc) ActionFunc {
		return func(ctx Context) error {
			if config.LogLevel == LogLevelNone || w == nil {
				return next(ctx)
			}

			info := requestInfoPool.Get()
			defer requestInfoPool.Put(info)

			info.Command = getCommandName(ctx)
			info.Args = append(info.Args, ctx.Parameters()...)
			for _, f := range flags {
				if ctx.IsOptionPresent(f) {
					info.Options = append(info.Options, f)
				}
			}
			info.StartTime = time.Now()
			ctx.Set("logger.start", info.StartTime)

			if config.LogLevel >= LogLevelDebug {
				writeLog(w, config, info, "START")
			}

			err := next(ctx)

			info.Duration = time.Since(info.StartTime)
			info.Error = err
			writeLog(w, config, info, levelFor(err))
			return err
		}
	}
}

func levelFor(err error) string {
	if err != nil {
		return "ERROR"
	}
	return "SUCCESS"
}

func shouldLog(configLevel LogLevel, messageLevel string) bool {
	switch messageLevel {
	case "ERROR":
		return configLevel >= LogLevelError
	case "START":
		return configLevel >= LogLevelDebug
	default:
		return configLevel >= LogLevelInfo
	}
}

func writeLog(w io.Writer, config *MiddlewareConfig, info *RequestInfo, level string) {
	if !shouldLog(config.LogLevel, level) {
		return
	}

	buf := pool.GetBuffer()
	defer pool.PutBuffer(buf)

	switch config.LogFormat {
	case LogFormatJSON:
		appendJSON(buf, info, level, config)
	case LogFormatText:
		appendText(buf, info, level, config)
	default:
		appendText(buf, info, level, config)
	}

	//nolint:errcheck,gosec // Logging is best-effort; ignore write errors.
	w.Write(buf.Bytes())
}

func appendText(buf *bytes.Buffer, info *RequestInfo, level string, config *MiddlewareConfig) {
	buf.WriteByte('[')
	buf.WriteString(info.StartTime.Format("2006-01-02 15:04:05"))
	buf.WriteString("] ")
	buf.WriteString(level)
	buf.WriteString(" command=")
	buf.WriteString(info.Command)

	if info.Duration > 0 {
		buf.WriteString(" duration=")
		buf.WriteString(info.Duration.String())
	}
	if len(info.Options) > 0 {
		buf.WriteString(" options=")
		for i, o := range info.Options {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(o)
		}
	}
	if config.IncludeArgs && len(info.Args) > 0 {
		buf.WriteString(" args=")
		for i, arg := range info.Args {
			if i > 0 {
				buf.WriteByte(' ')
			}
			buf.WriteString(arg)
		}
	}
	if info.Error != nil {
		buf.WriteString(" error=")
		buf.WriteString(strconv.Quote(info.Error.Error()))
	}
	buf.WriteByte('\n')
}

func appendJSON(buf *bytes.Buffer, info *RequestInfo, level string, config *MiddlewareConfig) {
	buf.WriteString(`{"timestamp":"`)
	buf.WriteString(info.StartTime.Format(time.RFC3339))
	buf.WriteString(`","level":"`)
	buf.WriteString(level)
	buf.WriteString(`","command":`)
	appendJSONString(buf, info.Command)

	if info.Duration > 0 {
		buf.WriteString(`,"duration_ms":`)
		buf.WriteString(strconv.FormatInt(info.Duration.Milliseconds(), 10))
	}
	if len(info.Options) > 0 {
		buf.WriteString(`,"options":`)
		appendJSONStrings(buf, info.Options)
	}
	if config.IncludeArgs && len(info.Args) > 0 {
		buf.WriteString(`,"args":`)
		appendJSONStrings(buf, info.Args)
	}
	if info.Error != nil {
		buf.WriteString(`,"error":`)
		appendJSONString(buf, info.Error.Error())
	}
	buf.WriteString("}\n")
}

func appendJSONStrings(buf *bytes.Buffer, values []string) {
	buf.WriteByte('[')
	for i, v := range values {
		if i > 0 {
			buf.WriteByte(',')
		}
		appendJSONString(buf, v)
	}
	buf.WriteByte(']')
}

func appendJSONString(buf *bytes.Buffer, s string) {
	enc, _ := json.Marshal(s)
	buf.Write(enc)
}

// DebugLogger logs starts, successes and errors
func DebugLogger() Middleware {
	return Logger(WithLogLevel(LogLevelDebug))
}

// ErrorLogger logs failed runs only
func ErrorLogger() Middleware {
	return Logger(WithLogLevel(LogLevelError))
}

// JSONLogger logs one JSON object per run
func JSONLogger() Middleware {
	return Logger(WithLogFormat(LogFormatJSON))
}

// SilentLogger disables output, useful in tests
func SilentLogger() Middleware {
	return Logger(func(config *MiddlewareConfig) {
		config.LogOutput = LogOutputNone
	})
}
