package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"retab/internal/indent"
	"retab/internal/source"
)

// Схема растёт при любом изменении формата cachePayload.
const diskCacheSchemaVersion uint16 = 1

// Digest is a SHA-256 content key.
type Digest = [32]byte

// DiskCache хранит результаты конвейера по хэшу содержимого и настроек.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// cachePayload is the serialized per-file pipeline outcome.
type cachePayload struct {
	Schema uint16

	Status       uint8
	Changed      bool
	Output       []byte
	RejectLine   int
	RejectReason string

	// Repair events, flattened for msgpack.
	EventLines  []int
	EventPhys   []int
	EventKinds  []uint8
	EventWidths []int
	EventDepths []int
	EventConfs  []uint8
}

// OpenDiskCache initializes and returns a disk cache at the standard
// location ($XDG_CACHE_HOME or ~/.cache).
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Подкаталог "files" — для удобства очистки руками.
	return filepath.Join(c.dir, "files", hexKey+".mp")
}

// Put serializes and writes a payload, replacing atomically via rename.
func (c *DiskCache) Put(key Digest, payload *cachePayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err = os.Remove(f.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
			fmt.Printf("failed to remove temp file: %v", err)
		}
	}()

	enc := msgpack.NewEncoder(f)
	if err = enc.Encode(payload); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads a payload; a schema mismatch counts as a miss.
func (c *DiskCache) Get(key Digest, out *cachePayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() {
		_ = f.Close()
	}()
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(out); err != nil {
		return false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}

// cacheKey mixes the file content hash with every option that affects the
// output, so a settings change invalidates naturally.
func cacheKey(file *source.File, opts Options) Digest {
	h := sha256.New()
	h.Write(file.Hash[:])

	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(opts.Settings.LineLength))
	h.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], uint64(opts.Settings.CommentWidth))
	h.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], uint64(opts.Settings.Indent))
	h.Write(buf[:])
	h.Write([]byte(opts.Settings.QuoteStyle))

	var mode byte
	if opts.Passes.Indent {
		mode |= 1
	}
	if opts.Passes.Format {
		mode |= 2
	}
	if opts.Passes.Imports {
		mode |= 4
	}
	if opts.Passes.Refactor {
		mode |= 8
	}
	ops := opts.Refactors.orAll()
	if ops.Unused {
		mode |= 16
	}
	if ops.BoolReturns {
		mode |= 32
	}
	if ops.FStrings {
		mode |= 64
	}
	h.Write([]byte{mode})

	var key Digest
	h.Sum(key[:0])
	return key
}

func toPayload(res *FileResult) *cachePayload {
	p := &cachePayload{
		Schema:       diskCacheSchemaVersion,
		Status:       uint8(res.Status),
		Changed:      res.Changed,
		Output:       res.Output,
		RejectLine:   res.RejectLine,
		RejectReason: res.RejectReason,
	}
	for _, e := range res.Events {
		p.EventLines = append(p.EventLines, e.Line)
		p.EventPhys = append(p.EventPhys, e.PhysLine)
		p.EventKinds = append(p.EventKinds, uint8(e.Kind))
		p.EventWidths = append(p.EventWidths, e.FromWidth)
		p.EventDepths = append(p.EventDepths, e.Depth)
		p.EventConfs = append(p.EventConfs, uint8(e.Confidence))
	}
	return p
}

func replay(res *FileResult, p *cachePayload) {
	res.Status = indent.Status(p.Status)
	res.Changed = p.Changed
	res.Output = p.Output
	res.RejectLine = p.RejectLine
	res.RejectReason = p.RejectReason
	for i := range p.EventLines {
		res.Events = append(res.Events, indent.RepairEvent{
			Line:       p.EventLines[i],
			PhysLine:   p.EventPhys[i],
			Kind:       indent.RepairKind(p.EventKinds[i]),
			FromWidth:  p.EventWidths[i],
			Depth:      p.EventDepths[i],
			Confidence: indent.Confidence(p.EventConfs[i]),
		})
	}
}
