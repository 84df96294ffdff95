package source

import (
	"bufio"
	"context"
	"io"
	"unicode/utf8"
)

// DefaultChunkSize is the read size used by ReadStream when size <= 0.
const DefaultChunkSize = 4096

// ReadStream reads r as it arrives and sends each read of up to size bytes
// to the returned channel. A multi-byte character cut by a read is held back
// and sent with the next one, so chunks never split a rune. The channel is
// closed at EOF, on a read error, or when ctx is cancelled.
func ReadStream(ctx context.Context, r io.Reader, size int) <-chan string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	ch := make(chan string)

	go func() {
		defer close(ch)

		send := func(chunk []byte) bool {
			if len(chunk) == 0 {
				return true
			}
			select {
			case ch <- string(chunk):
				return true
			case <-ctx.Done():
				return false
			}
		}

		buf := make([]byte, size)
		var pending []byte
		for {
			n, err := r.Read(buf)
			data := append(pending, buf[:n]...)
			if err != nil {
				send(data)
				return
			}
			cut := completeRunes(data)
			if !send(data[:cut]) {
				return
			}
			pending = append([]byte(nil), data[cut:]...)
		}
	}()

	return ch
}

// completeRunes returns the length of the longest prefix of b that does not
// end inside a multi-byte character.
func completeRunes(b []byte) int {
	for i := len(b) - 1; i >= 0 && i >= len(b)-utf8.UTFMax; i-- {
		if utf8.RuneStart(b[i]) {
			if utf8.FullRune(b[i:]) {
				return len(b)
			}
			return i
		}
	}
	return len(b)
}

// ScanLines reads r line by line and sends each non-empty line, with its
// newline, to the returned channel. The channel is closed at EOF, on a read
// error, or when ctx is cancelled.
func ScanLines(ctx context.Context, r io.Reader) <-chan string {
	ch := make(chan string)

	go func() {
		defer close(ch)

		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 64*1024), 10*1024*1024)
		for scanner.Scan() {
			line := scanner.Text()
			if line == "" {
				continue
			}
			select {
			case ch <- line + "\n":
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch
}
