package source

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fsnotify/fsnotify"
)

// ErrNotRegular indicates the path is not a regular file.
var ErrNotRegular = errors.New("not a regular file")

// DefaultPollInterval is how often Tail checks the file when fsnotify is
// unavailable.
const DefaultPollInterval = 100 * time.Millisecond

// Reader reads chunks and lines from a file.
type Reader struct {
	path string
	file *os.File

	// PollInterval overrides DefaultPollInterval for the polling fallback.
	PollInterval time.Duration
}

// Open creates a Reader for the given file path.
func Open(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source file: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("stat source file: %w", err)
	}
	if !info.Mode().IsRegular() {
		file.Close()
		return nil, fmt.Errorf("%w: %s", ErrNotRegular, path)
	}

	return &Reader{path: path, file: file}, nil
}

// Path returns the file path being read.
func (r *Reader) Path() string {
	return r.path
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// ReadChunks reads the whole file and splits it into chunks of at most size
// bytes, never splitting a UTF-8 sequence. size <= 0 returns one chunk.
func (r *Reader) ReadChunks(size int) ([]string, error) {
	if _, err := r.file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek to start: %w", err)
	}

	data, err := io.ReadAll(r.file)
	if err != nil {
		return nil, fmt.Errorf("read source file: %w", err)
	}

	return Split(string(data), size), nil
}

// ReadLines reads all non-empty lines from the file, without line endings.
func (r *Reader) ReadLines() ([]string, error) {
	if _, err := r.file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek to start: %w", err)
	}

	var lines []string
	scanner := bufio.NewScanner(r.file)
	// Increase buffer for large event payloads
	buf := make([]byte, 64*1024)
	scanner.Buffer(buf, 10*1024*1024) // 10MB max

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan source file: %w", err)
	}

	return lines, nil
}

// Tail follows the file and sends each complete line, including its
// trailing newline, to the returned channel. With fromStart, lines already
// in the file are sent first; otherwise only appended lines are sent.
// The channel is closed when ctx is cancelled.
func (r *Reader) Tail(ctx context.Context, fromStart bool) <-chan string {
	ch := make(chan string, 100)

	go func() {
		defer close(ch)

		whence := io.SeekEnd
		if fromStart {
			whence = io.SeekStart
		}
		offset, err := r.file.Seek(0, whence)
		if err != nil {
			return
		}

		t := &tailer{file: r.file, reader: bufio.NewReader(r.file), offset: offset, ch: ch}

		// Try fsnotify first
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			r.tailPolling(ctx, t)
			return
		}
		defer watcher.Close()

		// Watch the directory (more reliable than watching file directly)
		if err := watcher.Add(filepath.Dir(r.path)); err != nil {
			r.tailPolling(ctx, t)
			return
		}

		if !t.readAvailable(ctx) {
			return
		}
		r.tailWithWatcher(ctx, t, watcher)
	}()

	return ch
}

// tailWithWatcher reads new lines whenever fsnotify reports a write.
func (r *Reader) tailWithWatcher(ctx context.Context, t *tailer, watcher *fsnotify.Watcher) {
	baseName := filepath.Base(r.path)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != baseName || !event.Has(fsnotify.Write) {
				continue
			}
			if !t.readAvailable(ctx) {
				return
			}

		case _, ok := <-watcher.Errors:
			if !ok {
				return
			}
			// Usually recoverable; the next write event catches up.
		}
	}
}

// tailPolling uses polling as a fallback when fsnotify isn't available.
func (r *Reader) tailPolling(ctx context.Context, t *tailer) {
	interval := r.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if !t.readAvailable(ctx) {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// tailer holds the read position shared by both tailing strategies.
type tailer struct {
	file    *os.File
	reader  *bufio.Reader
	offset  int64
	pending strings.Builder
	ch      chan<- string
}

// readAvailable sends every complete line written since the last read.
// A trailing partial line is held until its newline arrives. It returns
// false when ctx is done.
func (t *tailer) readAvailable(ctx context.Context) bool {
	// Check for truncation
	if info, err := t.file.Stat(); err == nil && info.Size() < t.offset {
		if _, err := t.file.Seek(0, io.SeekStart); err == nil {
			t.offset = 0
			t.pending.Reset()
			t.reader.Reset(t.file)
		}
	}

	for {
		line, err := t.reader.ReadString('\n')
		t.offset += int64(len(line))
		if err != nil {
			t.pending.WriteString(line)
			return ctx.Err() == nil
		}

		t.pending.WriteString(line)
		complete := t.pending.String()
		t.pending.Reset()

		select {
		case t.ch <- complete:
		case <-ctx.Done():
			return false
		}
	}
}

// Split cuts text into pieces of at most size bytes without splitting a
// UTF-8 sequence. A piece may exceed size only when a single rune does.
func Split(text string, size int) []string {
	if text == "" {
		return nil
	}
	if size <= 0 || len(text) <= size {
		return []string{text}
	}

	var chunks []string
	for len(text) > 0 {
		end := size
		if end >= len(text) {
			chunks = append(chunks, text)
			break
		}
		for end > 0 && !utf8.RuneStart(text[end]) {
			end--
		}
		if end == 0 {
			_, end = utf8.DecodeRuneInString(text)
		}
		chunks = append(chunks, text[:end])
		text = text[end:]
	}
	return chunks
}

// Pump delivers chunks from ch to fn until ch is closed, ctx is done, or
// fn returns false. It returns ctx.Err() when cancelled.
func Pump(ctx context.Context, ch <-chan string, fn func(chunk string) bool) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case chunk, ok := <-ch:
			if !ok {
				return nil
			}
			if !fn(chunk) {
				return nil
			}
		}
	}
}
