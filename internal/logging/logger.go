package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

type logMessage struct {
	message string
	json    bool
}

var (
	logChan chan logMessage
	done    chan struct{}
	stopMu  sync.RWMutex

	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// SetOutput redirects JSON lines and diagnostics. Call before StartLogger.
func SetOutput(jsonOut, textOut io.Writer) {
	stdout = jsonOut
	stderr = textOut
}

func StartLogger() {
	stopMu.Lock()
	defer stopMu.Unlock()

	ch := make(chan logMessage, 1000)
	finished := make(chan struct{})
	jsonOut, textOut := stdout, stderr

	go func() {
		defer close(finished)
		for msg := range ch {
			if msg.json {
				fmt.Fprintln(jsonOut, msg.message)
			} else {
				fmt.Fprintln(textOut, time.Now().Format("2006/01/02 15:04:05")+" "+msg.message)
			}
		}
	}()

	logChan = ch
	done = finished
}

// StopLogger drains pending messages and stops the writer goroutine.
func StopLogger() {
	stopMu.Lock()
	defer stopMu.Unlock()
	if logChan == nil {
		return
	}
	close(logChan)
	<-done
	logChan = nil
}

func Printf(format string, args ...interface{}) {
	send(logMessage{message: fmt.Sprintf(format, args...), json: false})
}

func JSON(jsonStr string) {
	send(logMessage{message: jsonStr, json: true})
}

func send(msg logMessage) {
	stopMu.RLock()
	defer stopMu.RUnlock()
	if logChan == nil {
		return
	}
	select {
	case logChan <- msg:
	default:
	}
}
