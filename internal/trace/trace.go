// Package trace writes per-tick simulation records as zstd-compressed JSONL.
package trace

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"github.com/Garsondee/hex-outbreak/internal/sim"
)

// Header is the first line of every trace file.
type Header struct {
	Kind   string    `json:"kind"` // always "header"
	RunID  uuid.UUID `json:"run_id"`
	Seed   int64     `json:"seed"`
	Policy string    `json:"policy"`
	Rules  sim.Rules `json:"rules"`
}

// TickRecord is one line per simulated tick.
type TickRecord struct {
	Kind               string  `json:"kind"` // always "tick"
	Tick               int     `json:"tick"`
	Phase              string  `json:"phase"`
	Resources          int     `json:"resources"`
	Labs               int     `json:"labs"`
	Research           int     `json:"research"`
	Survivors          int     `json:"survivors"`
	Infected           int     `json:"infected"`
	InfectedTiles      int     `json:"infected_tiles"`
	FullyInfectedTiles int     `json:"fully_infected_tiles"`
	Factories          int     `json:"factories"`
	Walls              int     `json:"walls"`
	InfectedShare      float64 `json:"infected_share"`
}

// RecordFor snapshots the engine after a tick.
func RecordFor(e *sim.Engine) TickRecord {
	st := e.Stats()
	return TickRecord{
		Kind:               "tick",
		Tick:               e.TickCount(),
		Phase:              e.Phase().String(),
		Resources:          e.Resources(),
		Labs:               e.LabsCount(),
		Research:           e.ResearchProgress(),
		Survivors:          st.Survivors,
		Infected:           st.Infected,
		InfectedTiles:      st.InfectedTiles,
		FullyInfectedTiles: st.FullyInfectedTiles,
		Factories:          st.Factories,
		Walls:              st.Walls,
		InfectedShare:      st.InfectedShare(),
	}
}

// JSONLZstdWriter appends one JSON document per line through a zstd encoder.
type JSONLZstdWriter struct {
	mu  sync.Mutex
	f   io.Closer
	enc *zstd.Encoder
	w   *bufio.Writer
}

// NewJSONLZstdWriter wraps dst. Closing the writer closes dst if it is an
// io.Closer.
func NewJSONLZstdWriter(dst io.Writer) (*JSONLZstdWriter, error) {
	enc, err := zstd.NewWriter(dst, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, err
	}
	w := &JSONLZstdWriter{
		enc: enc,
		w:   bufio.NewWriterSize(enc, 64*1024),
	}
	if c, ok := dst.(io.Closer); ok {
		w.f = c
	}
	return w, nil
}

// Create opens dir/<runID>.jsonl.zst for writing.
func Create(dir string, runID uuid.UUID) (*JSONLZstdWriter, string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("%s.jsonl.zst", runID))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, "", err
	}
	w, err := NewJSONLZstdWriter(f)
	if err != nil {
		_ = f.Close()
		return nil, "", err
	}
	return w, path, nil
}

// Write encodes v as one line.
func (w *JSONLZstdWriter) Write(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	return w.w.WriteByte('\n')
}

// Close flushes buffered lines, finishes the zstd frame and closes the
// destination.
func (w *JSONLZstdWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	err := w.w.Flush()
	if cerr := w.enc.Close(); err == nil {
		err = cerr
	}
	if w.f != nil {
		if cerr := w.f.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// ReadAll decodes every line of a trace stream into raw JSON messages.
func ReadAll(src io.Reader) ([]json.RawMessage, error) {
	dec, err := zstd.NewReader(src)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	var out []json.RawMessage
	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := append(json.RawMessage(nil), sc.Bytes()...)
		out = append(out, line)
	}
	return out, sc.Err()
}

// Recorder writes a header and then one TickRecord per Hook call.
type Recorder struct {
	w   *JSONLZstdWriter
	err error
}

// NewRecorder writes h to w and returns a recorder for the run.
func NewRecorder(w *JSONLZstdWriter, h Header) (*Recorder, error) {
	h.Kind = "header"
	if err := w.Write(h); err != nil {
		return nil, err
	}
	return &Recorder{w: w}, nil
}

// Hook records e; plug it into sim.Run. The first write error is kept and
// later ticks are skipped.
func (r *Recorder) Hook(e *sim.Engine) {
	if r.err != nil {
		return
	}
	r.err = r.w.Write(RecordFor(e))
}

// Err returns the first write error.
func (r *Recorder) Err() error { return r.err }
