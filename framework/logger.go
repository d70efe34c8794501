package framework

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

const timestampFormat = "15:04:05.000"

// Logger is the minimal logging interface used throughout the harness. *log.Logger and
// *zerolog.Logger both satisfy it.
type Logger interface {
	Printf(message string, args ...interface{})
}

type nullLogger struct{}

func (n nullLogger) Printf(message string, args ...interface{}) {}

func NullLogger() Logger { return nullLogger{} }

type CapturedMessage struct {
	Time    time.Time
	Message string
}

type CapturedOutput []CapturedMessage

// CapturingLogger keeps everything logged to it so that it can be shown later, typically
// only if the test that produced it failed.
type CapturingLogger struct {
	output []CapturedMessage
	lock   sync.Mutex
}

func (l *CapturingLogger) Printf(message string, args ...interface{}) {
	l.lock.Lock()
	l.output = append(l.output, CapturedMessage{Time: time.Now(), Message: fmt.Sprintf(message, args...)})
	l.lock.Unlock()
}

func (l *CapturingLogger) Output() CapturedOutput {
	l.lock.Lock()
	ret := append([]CapturedMessage(nil), l.output...)
	l.lock.Unlock()
	return ret
}

// Dump writes each message on its own line. Continuation lines of a multi-line message
// are indented under the timestamp.
func (output CapturedOutput) Dump(dest io.Writer, prefix string) {
	for _, m := range output {
		stamp := "[" + m.Time.Format(timestampFormat) + "] "
		lines := strings.Split(m.Message, "\n")
		fmt.Fprintf(dest, "%s%s%s\n", prefix, stamp, lines[0])
		for _, line := range lines[1:] {
			fmt.Fprintf(dest, "%s%s%s\n", prefix, strings.Repeat(" ", len(stamp)), line)
		}
	}
}
