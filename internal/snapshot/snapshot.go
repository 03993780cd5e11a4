// Package snapshot caches a program's borrow-check outcome on disk, keyed
// by a content digest, so repeated checks of unchanged source skip
// re-lowering and re-walking the CFG entirely.
package snapshot

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/wisp-lang/wispc/internal/pipeline"
	"github.com/wisp-lang/wispc/internal/symbols"
)

// schemaVersion guards against decoding a payload from an older,
// incompatible layout; bump it whenever a payload field's meaning changes.
const schemaVersion uint16 = 1

// Digest identifies the source bytes a ProgramPayload was computed from.
type Digest [32]byte

// HashSource digests the bytes a cache entry should be keyed on.
func HashSource(data []byte) Digest {
	return sha256.Sum256(data)
}

// DiagnosticPayload is one borrow-check finding, flattened to plain types so
// it round-trips through msgpack without aliasing any MIR pointer: Place is
// pre-rendered to its display string at encode time, since the mir.Func it
// would otherwise need to resolve local names is not itself cached.
type DiagnosticPayload struct {
	Kind       uint8
	Place      string
	SpanStart  uint32
	SpanEnd    uint32
	MovedStart uint32
	MovedEnd   uint32
}

// FuncPayload is one function's cached borrow-check outcome.
type FuncPayload struct {
	Name        string
	Diagnostics []DiagnosticPayload
}

// ProgramPayload is the full cached outcome of one pipeline.CheckProgram run.
type ProgramPayload struct {
	Schema uint16
	Funcs  []FuncPayload
}

// FromResults flattens pipeline results into a serializable payload.
func FromResults(results []pipeline.FuncResult, names *symbols.Table) ProgramPayload {
	out := ProgramPayload{Schema: schemaVersion, Funcs: make([]FuncPayload, len(results))}
	for i, r := range results {
		diags := make([]DiagnosticPayload, len(r.Errors))
		for j, e := range r.Errors {
			diags[j] = DiagnosticPayload{
				Kind:       uint8(e.Kind),
				Place:      e.Place.Display(r.Func, names),
				SpanStart:  e.Span.Start,
				SpanEnd:    e.Span.End,
				MovedStart: e.MovedAt.Start,
				MovedEnd:   e.MovedAt.End,
			}
		}
		out.Funcs[i] = FuncPayload{Name: r.Name, Diagnostics: diags}
	}
	return out
}

// Store is a thread-safe, content-addressed cache of ProgramPayload values
// on disk, one msgpack file per digest.
type Store struct {
	mu  sync.RWMutex
	dir string
}

// Open creates dir if needed and returns a Store rooted there.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

func (s *Store) pathFor(key Digest) string {
	return filepath.Join(s.dir, hex.EncodeToString(key[:])+".wispmp")
}

// Put serializes payload and writes it atomically under key.
func (s *Store) Put(key Digest, payload ProgramPayload) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(path), "tmp-*")
	if err != nil {
		return err
	}
	tmpName := f.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// Get reads and deserializes the payload stored under key. The second
// return value is false both when the entry is absent and when it was
// written by an incompatible schema version.
func (s *Store) Get(key Digest) (ProgramPayload, bool, error) {
	if s == nil {
		return ProgramPayload{}, false, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, err := os.Open(s.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ProgramPayload{}, false, nil
		}
		return ProgramPayload{}, false, err
	}
	defer func() { _ = f.Close() }()

	var out ProgramPayload
	if err := msgpack.NewDecoder(f).Decode(&out); err != nil {
		return ProgramPayload{}, false, err
	}
	if out.Schema != schemaVersion {
		return ProgramPayload{}, false, nil
	}
	return out, true, nil
}
