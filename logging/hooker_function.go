package logging

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

const maxCallFrames = 3

var skippedPackages = []string{
	"github.com/sirupsen/logrus",
	"massnet.org/hashcore/logging.",
}

// functionHooker records the caller of CPrint/VPrint in the entry fields.
type functionHooker struct {
	innerLogger *Logger
}

// callers returns up to n frames above the logging and logrus packages.
func callers(n int) []runtime.Frame {
	pcs := make([]uintptr, 32)
	pcs = pcs[:runtime.Callers(2, pcs)]
	frames := runtime.CallersFrames(pcs)

	var out []runtime.Frame
	for len(out) < n {
		frame, more := frames.Next()
		if !isSkipped(frame) {
			out = append(out, frame)
		}
		if !more {
			break
		}
	}
	return out
}

func isSkipped(frame runtime.Frame) bool {
	if strings.HasSuffix(frame.File, "_test.go") {
		return false
	}
	for _, prefix := range skippedPackages {
		if strings.HasPrefix(frame.Function, prefix) {
			return true
		}
	}
	return false
}

func shortFuncName(function string) string {
	if index := strings.LastIndex(function, "/"); index >= 0 {
		return function[index+1:]
	}
	return function
}

func (h *functionHooker) fire(entry *logrus.Entry) {
	frames := callers(1)
	if len(frames) == 0 {
		return
	}
	entry.Data["func"] = shortFuncName(frames[0].Function)
	entry.Data["line"] = frames[0].Line
	entry.Data["file"] = filepath.Base(frames[0].File)
}

func (h *functionHooker) fires(entry *logrus.Entry) {
	for i, frame := range callers(maxCallFrames) {
		entry.Data["f"+strconv.Itoa(i)] = fmt.Sprintf("{%s,%s,%d}", filepath.Base(frame.File), shortFuncName(frame.Function), frame.Line)
	}
}

func (h *functionHooker) Fire(entry *logrus.Entry) error {
	switch h.innerLogger.CallRelation {
	case MsgFormatMulti:
		h.fires(entry)
	case MsgFormatSingle:
		h.fire(entry)
	}
	return nil
}

func (h *functionHooker) Levels() []logrus.Level {
	return logrus.AllLevels
}

// LoadFunctionHooker loads a function hooker to the logger
func LoadFunctionHooker(logger *Logger) {
	logger.Hooks.Add(&functionHooker{innerLogger: logger})
}
