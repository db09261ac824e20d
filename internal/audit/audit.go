// Package audit appends timestamped event lines to a shared log file.
//
// Writes are best-effort: Record never returns an error and never blocks the
// request handler that called it. A single writer goroutine owns the file
// handle and drains a bounded queue, so concurrent callers never contend on
// the file itself. Failed writes are retried a fixed number of times and then
// dropped with a diagnostic on the process log.
package audit

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"
)

const (
	maxAttempts = 5
	retryDelay  = 100 * time.Millisecond
	queueSize   = 256
)

// Logger owns one append-only log target. Create it with New and stop it
// with Close; Record is safe for concurrent use in between.
type Logger struct {
	path   string
	events chan string
	quit   chan struct{}
	done   chan struct{}

	closeOnce sync.Once

	// Test seams. now stamps events; openFile opens (or reopens) the target;
	// sleep waits between attempts.
	now      func() time.Time
	openFile func() (*os.File, error)
	sleep    func(time.Duration)
}

// New starts the writer goroutine for the given file path. The file is
// created if missing and only ever appended to; it is never truncated or
// rotated here.
func New(path string) *Logger {
	l := &Logger{
		path:   path,
		events: make(chan string, queueSize),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
		now:    time.Now,
		sleep:  time.Sleep,
	}
	l.openFile = func() (*os.File, error) {
		return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	}
	go l.run()
	return l
}

// Record queues one event line, stamped with the current UTC time. If the
// queue is full, or the logger has been closed, the event is dropped and a
// diagnostic is logged; the caller is never blocked or failed. The events
// channel itself is never closed, so a Record racing Close cannot panic.
func (l *Logger) Record(message string) {
	select {
	case <-l.quit:
		log.Printf("audit: logger closed, dropping event: %s", message)
		return
	default:
	}
	line := fmt.Sprintf("%s: %s\n", l.now().UTC().Format(time.RFC3339), message)
	select {
	case l.events <- line:
	default:
		log.Printf("audit: queue full, dropping event: %s", message)
	}
}

// Close flushes queued events and releases the file handle. Record calls
// concurrent with or after Close are dropped, never failed.
func (l *Logger) Close() {
	l.closeOnce.Do(func() {
		close(l.quit)
		<-l.done
	})
}

func (l *Logger) run() {
	defer close(l.done)

	var f *os.File
	defer func() {
		if f != nil {
			f.Close()
		}
	}()

	for {
		select {
		case line := <-l.events:
			f = l.writeLine(f, line)
		case <-l.quit:
			// Drain what was queued before the close signal.
			for {
				select {
				case line := <-l.events:
					f = l.writeLine(f, line)
				default:
					return
				}
			}
		}
	}
}

// writeLine appends one line, retrying transient failures with a fixed delay.
// The handle is reopened between attempts in case the previous one went bad.
// After maxAttempts the event is dropped and a diagnostic emitted; audit
// events carry no sequence numbers, so a drop leaves no gap marker.
func (l *Logger) writeLine(f *os.File, line string) *os.File {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			l.sleep(retryDelay)
		}
		if f == nil {
			var err error
			f, err = l.openFile()
			if err != nil {
				log.Printf("audit: open %s failed: %v", l.path, err)
				continue
			}
		}
		if _, err := f.WriteString(line); err != nil {
			log.Printf("audit: write failed: %v", err)
			f.Close()
			f = nil
			continue
		}
		return f
	}
	log.Printf("audit: dropping event after %d attempts", maxAttempts)
	return f
}
