package audit

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_RecordWritesTimestampedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs.txt")
	l := New(path)

	l.Record("Author created: id=1")
	l.Record("borrowers retrieved")
	l.Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)

	// <RFC3339 UTC timestamp>: <message>
	lineRe := regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z: .+$`)
	assert.Regexp(t, lineRe, lines[0])
	assert.True(t, strings.HasSuffix(lines[0], "Author created: id=1"))
	assert.True(t, strings.HasSuffix(lines[1], "borrowers retrieved"))
}

func TestLogger_AppendsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs.txt")

	l := New(path)
	l.Record("first")
	l.Close()

	l = New(path)
	l.Record("second")
	l.Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "first")
	assert.Contains(t, lines[1], "second")
}

func TestLogger_ConcurrentRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs.txt")
	l := New(path)

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Record("event")
		}()
	}
	wg.Wait()
	l.Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	assert.Len(t, lines, writers)
}

func TestLogger_RecordNeverFailsCaller(t *testing.T) {
	// Every open attempt fails, for every event: the writer must exhaust
	// its retries, drop the events, and Record must still return instantly.
	path := filepath.Join(t.TempDir(), "logs.txt")
	l := &Logger{
		path:   path,
		events: make(chan string, queueSize),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
		now:    time.Now,
		sleep:  func(time.Duration) {},
	}
	attempts := 0
	l.openFile = func() (*os.File, error) {
		attempts++
		return nil, os.ErrPermission
	}
	go l.run()

	start := time.Now()
	l.Record("doomed event")
	assert.Less(t, time.Since(start), time.Second)

	l.Close()
	assert.Equal(t, maxAttempts, attempts)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestLogger_RetriesThenSucceeds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs.txt")
	l := &Logger{
		path:   path,
		events: make(chan string, queueSize),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
		now:    time.Now,
		sleep:  func(time.Duration) {},
	}
	attempts := 0
	l.openFile = func() (*os.File, error) {
		attempts++
		if attempts < 3 {
			return nil, os.ErrPermission
		}
		return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	}
	go l.run()

	l.Record("eventually written")
	l.Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "eventually written")
	assert.Equal(t, 3, attempts)
}

func TestLogger_RecordAfterCloseIsDropped(t *testing.T) {
	// Shutdown races a late handler: events recorded after Close must be
	// dropped, never panic the caller or reopen the file.
	path := filepath.Join(t.TempDir(), "logs.txt")
	l := New(path)

	l.Record("before close")
	l.Close()
	l.Record("after close")
	l.Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "before close")
}

func TestLogger_CloseFlushesQueuedEvents(t *testing.T) {
	// Events sitting in the queue when Close is called still reach the file.
	path := filepath.Join(t.TempDir(), "logs.txt")
	l := New(path)

	const events = 50
	for i := 0; i < events; i++ {
		l.Record("queued event")
	}
	l.Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	assert.Len(t, lines, events)
}

func TestLogger_QueueFullDropsWithoutBlocking(t *testing.T) {
	// No writer goroutine is draining, so the queue fills and further
	// records must be dropped rather than block the caller.
	l := &Logger{
		path:   "unused",
		events: make(chan string, 1),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
		now:    time.Now,
		sleep:  func(time.Duration) {},
	}

	done := make(chan struct{})
	go func() {
		l.Record("kept")
		l.Record("dropped")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Record blocked on a full queue")
	}
	assert.Len(t, l.events, 1)
}
