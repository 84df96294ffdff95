// Package source supplies text chunks from files for a stream.Processor.
//
// It is a convenience transport for replaying captured responses and for
// following a file another process is writing (e.g. `curl -N ... > out.log`).
//
//	r, err := source.Open("response.log")
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//
//	chunks, err := r.ReadChunks(64)      // replay in fixed-size chunks
//	lines, err := r.ReadLines()          // one event payload per line
//	tail := r.Tail(ctx, true)            // existing lines, then new ones
//
// Tail uses fsnotify when available and falls back to polling.
package source
