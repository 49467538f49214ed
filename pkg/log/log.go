package log

import (
	"fmt"
	"os"
	"strings"

	"github.com/v2rayA/beego/v2/logs"
)

// InitLog configures the process-wide logger. logWay is "console" or "file";
// file logging rotates daily and keeps maxDays days of history.
func InitLog(logWay string, logFile string, logLevel string, maxDays int64, disableLogColor bool, disableLogTimestamp bool) {
	if logWay == "file" {
		params := fmt.Sprintf(`{"filename": %q, "maxdays": %d, "daily": true}`, logFile, maxDays)
		_ = logs.SetLogger(logs.AdapterFile, params)
		_ = logs.GetBeeLogger().DelLogger(logs.AdapterConsole)
	} else {
		params := fmt.Sprintf(`{"color": %v}`, !disableLogColor)
		_ = logs.SetLogger(logs.AdapterConsole, params)
	}
	logs.SetLevel(level(logLevel))
	logs.SetLogFuncCall(false)
	if disableLogTimestamp {
		logs.RegisterFormatter("plain", plainFormatter{})
		_ = logs.SetGlobalFormatter("plain")
	}
}

// plainFormatter keeps the level-prefixed message without call-site decoration.
type plainFormatter struct{}

func (plainFormatter) Format(lm *logs.LogMsg) string {
	return lm.OldStyleFormat()
}

func level(logLevel string) int {
	switch strings.ToLower(logLevel) {
	case "trace", "debug":
		return logs.LevelDebug
	case "info":
		return logs.LevelInformational
	case "warn":
		return logs.LevelWarning
	case "error":
		return logs.LevelError
	default:
		return logs.LevelInformational
	}
}

func Trace(format string, v ...interface{}) {
	logs.Debug(format, v...)
}

func Debug(format string, v ...interface{}) {
	logs.Debug(format, v...)
}

func Info(format string, v ...interface{}) {
	logs.Info(format, v...)
}

func Warn(format string, v ...interface{}) {
	logs.Warn(format, v...)
}

func Error(format string, v ...interface{}) {
	logs.Error(format, v...)
}

// Fatal logs at error level and terminates the process.
func Fatal(format string, v ...interface{}) {
	logs.Error(format, v...)
	logs.GetBeeLogger().Flush()
	os.Exit(1)
}
