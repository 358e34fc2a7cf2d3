package journal

import (
	"io"
	"log"
	"time"

	"github.com/fionnbanksg/MC-clone-webgl/internal/engine/world"
)

// Sink adapts the journal to the world's edit hook: every applied edit
// is appended to the JSONL log and, when an index is attached, mirrored
// into sqlite.
type Sink struct {
	w   *Writer
	idx *SQLiteIndex
	log *log.Logger
}

func NewSink(w *Writer, idx *SQLiteIndex, logger *log.Logger) *Sink {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Sink{w: w, idx: idx, log: logger}
}

func (s *Sink) RecordEdit(e world.EditRecord) {
	entry := Entry{
		TS:    time.Now().UTC().Format(time.RFC3339Nano),
		X:     e.X,
		Y:     e.Y,
		Z:     e.Z,
		Block: e.Block.String(),
		Prev:  e.Prev.String(),
		CX:    e.CX,
		CZ:    e.CZ,
	}
	if s.w != nil {
		if err := s.w.Write(entry); err != nil {
			s.log.Printf("journal: write edit: %v", err)
		}
	}
	if s.idx != nil {
		s.idx.WriteEdit(entry)
	}
}

// Close flushes the JSONL writer and shuts the index down.
func (s *Sink) Close() error {
	var err error
	if s.w != nil {
		err = s.w.Close()
	}
	if s.idx != nil {
		if cerr := s.idx.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
