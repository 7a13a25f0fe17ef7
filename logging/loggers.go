package logging

import (
	"bytes"
	"os"
	"runtime"
	"strconv"
	"sync"

	"github.com/sirupsen/logrus"
)

// const
const (
	PanicLevel = "panic"
	FatalLevel = "fatal"
	ErrorLevel = "error"
	WarnLevel  = "warn"
	InfoLevel  = "info"
	DebugLevel = "debug"
	TraceLevel = "trace"
)

const (
	//PANIC log level
	PANIC uint32 = iota
	//FATAL has list msg
	FATAL
	//ERROR has list msg
	ERROR
	//WARN only log
	WARN
	//INFO only log
	INFO
	//DEBUG only log
	DEBUG
	//TRACE only log
	TRACE
)

const (
	//MsgFormatSingle use info
	MsgFormatSingle uint32 = iota
	//MsgFormatMulti use show all func call relation
	MsgFormatMulti
)

const (
	defaultLogDir      = "/tmp"
	defaultLogFilename = "tmp-hashcore"
)

// LogFormat is to log format
type LogFormat = map[string]interface{}

type emptyWriter struct{}

func (ew emptyWriter) Write(p []byte) (int, error) {
	return len(p), nil
}

type Logger struct {
	*logrus.Logger
	//CallRelation to show stack list
	CallRelation uint32
}

func NewLogger() *Logger {
	return &Logger{
		Logger: logrus.New(),
	}
}

// SetCallRelation sets how many caller frames the function hook records.
func (logger *Logger) SetCallRelation(button uint32) {
	logger.CallRelation = button
}

// mu guards the loggers and their CallRelation, which is switched per
// message.
var (
	mu   sync.Mutex
	clog *Logger
	vlog *Logger
)

// ParseLevel converts a level name to a logrus level, falling back to info.
func ParseLevel(level string) logrus.Level {
	switch level {
	case PanicLevel:
		return logrus.PanicLevel
	case FatalLevel:
		return logrus.FatalLevel
	case ErrorLevel:
		return logrus.ErrorLevel
	case WarnLevel:
		return logrus.WarnLevel
	case InfoLevel:
		return logrus.InfoLevel
	case DebugLevel:
		return logrus.DebugLevel
	case TraceLevel:
		return logrus.TraceLevel
	default:
		return logrus.InfoLevel
	}
}

func newLogger(fileHooker logrus.Hook, level string) *Logger {
	l := NewLogger()
	LoadFunctionHooker(l)
	l.Hooks.Add(fileHooker)
	l.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	l.Level = ParseLevel(level)
	return l
}

// Init loggers. vlog only writes to the rotated log files under path, clog
// also writes to stdout unless disableCPrint is set. age is the number of
// years rotated files are kept, zero keeps them forever.
func Init(path, filename string, level string, age uint32, disableCPrint bool) {
	mu.Lock()
	defer mu.Unlock()
	initLocked(path, filename, level, age, disableCPrint)
}

func initLocked(path, filename string, level string, age uint32, disableCPrint bool) {
	fileHooker := NewFileRotateHooker(path, filename, age, nil)

	vlog = newLogger(fileHooker, level)
	vlog.Out = &emptyWriter{}

	if !disableCPrint {
		clog = newLogger(fileHooker, level)
		clog.Out = os.Stdout
	} else {
		clog = vlog
	}

	vlog.WithFields(logrus.Fields{
		"path":  path,
		"level": level,
	}).Info("Logger Configuration.")
}

// GetGID return gid
func GetGID() uint64 {
	b := make([]byte, 64)
	b = b[:runtime.Stack(b, false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	b = b[:bytes.IndexByte(b, ' ')]
	n, _ := strconv.ParseUint(string(b), 10, 64)
	return n
}

// CPrint into stdout + log
func CPrint(level uint32, msg string, formats ...LogFormat) {
	emit(true, level, msg, formats...)
}

// VPrint into log
func VPrint(level uint32, msg string, formats ...LogFormat) {
	emit(false, level, msg, formats...)
}

func emit(console bool, level uint32, msg string, formats ...LogFormat) {
	data := mergeLogFormats(formats...)

	mu.Lock()
	defer mu.Unlock()

	if vlog == nil {
		initLocked(defaultLogDir, defaultLogFilename, InfoLevel, 0, false)
	}
	l := vlog
	if console {
		l = clog
	}

	if level <= ERROR || level > TRACE {
		l.SetCallRelation(MsgFormatMulti)
	} else {
		l.SetCallRelation(MsgFormatSingle)
	}
	entry := l.WithFields(data)
	switch level {
	case PANIC:
		entry.Panic(msg)
	case FATAL:
		entry.Fatal(msg)
	case ERROR:
		entry.Error(msg)
	case WARN:
		entry.Warn(msg)
	case INFO:
		entry.Info(msg)
	case DEBUG:
		entry.Debug(msg)
	case TRACE:
		entry.Trace(msg)
	default:
		entry.Error(msg)
	}
}

// mergeLogFormats merges LogFormats.
// Same key would be covered by later-presented values.
func mergeLogFormats(formats ...LogFormat) LogFormat {
	format := LogFormat{}
	for _, data := range formats {
		for k, v := range data {
			format[k] = v
		}
	}
	format["tid"] = GetGID()
	return format
}
