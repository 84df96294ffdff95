package source

import (
	"context"
	"strings"
	"testing"
	"testing/iotest"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, ch <-chan string) []string {
	t.Helper()
	var got []string
	require.NoError(t, Pump(context.Background(), ch, func(chunk string) bool {
		got = append(got, chunk)
		return true
	}))
	return got
}

func TestReadStream(t *testing.T) {
	in := iotest.OneByteReader(strings.NewReader("<think>a</think>b"))

	got := collect(t, ReadStream(context.Background(), in, 8))

	assert.Equal(t, "<think>a</think>b", strings.Join(got, ""))
	assert.Len(t, got, len("<think>a</think>b"))
}

func TestReadStream_DefaultSize(t *testing.T) {
	got := collect(t, ReadStream(context.Background(), strings.NewReader("hello"), 0))

	assert.Equal(t, []string{"hello"}, got)
}

func TestReadStream_StopsOnError(t *testing.T) {
	in := iotest.TimeoutReader(strings.NewReader("abcdef"))

	got := collect(t, ReadStream(context.Background(), in, 3))

	assert.Equal(t, []string{"abc"}, got)
}

func TestReadStream_KeepsRunesWhole(t *testing.T) {
	tests := []struct {
		name string
		in   string
		size int
	}{
		{name: "two byte rune", in: "héllo", size: 2},
		{name: "three byte runes", in: "日本語のテキスト", size: 4},
		{name: "four byte rune", in: "a😀b", size: 3},
		{name: "size smaller than rune", in: "日本", size: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collect(t, ReadStream(context.Background(), strings.NewReader(tt.in), tt.size))

			assert.Equal(t, tt.in, strings.Join(got, ""))
			for _, chunk := range got {
				assert.True(t, utf8.ValidString(chunk), "chunk %q", chunk)
			}
		})
	}
}

func TestReadStream_InvalidTrailingByteIsFlushed(t *testing.T) {
	got := collect(t, ReadStream(context.Background(), strings.NewReader("ab\xc3"), 8))

	assert.Equal(t, "ab\xc3", strings.Join(got, ""))
}

func TestCompleteRunes(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want int
	}{
		{name: "empty", in: nil, want: 0},
		{name: "ascii", in: []byte("abc"), want: 3},
		{name: "whole rune", in: []byte("hé"), want: 3},
		{name: "cut two byte rune", in: []byte("h\xc3"), want: 1},
		{name: "cut three byte rune", in: []byte("a\xe6\x97"), want: 1},
		{name: "invalid byte", in: []byte("a\xff"), want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, completeRunes(tt.in))
		})
	}
}

func TestScanLines(t *testing.T) {
	in := strings.NewReader("data: one\n\n\ndata: two\r\nlast")

	got := collect(t, ScanLines(context.Background(), in))

	assert.Equal(t, []string{"data: one\n", "data: two\n", "last\n"}, got)
}
