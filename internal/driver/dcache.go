package driver

import (
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"confscan/internal/section"
)

// Схема инкрементируется при любом изменении формата treePayload.
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит деревья чистых разборов по sha256 содержимого дампа.
// Попадание по хешу делает повторный разбор ненужным: содержимое то же —
// дерево то же (имя корня перештамповывается вызывающим).
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// treePayload is the on-disk form of one cached parse.
type treePayload struct {
	Schema   uint16
	Model    string
	Sections []section.Flat
}

// OpenDiskCache initializes and returns a disk cache at the standard
// location: $XDG_CACHE_HOME/<app>, falling back to ~/.cache/<app>.
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

// Dir returns the cache root directory.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) pathFor(hash [32]byte) string {
	// Подкаталог "trees" — для удобства читаемости/очистки.
	return filepath.Join(c.dir, "trees", hex.EncodeToString(hash[:])+".mp")
}

// Put serializes a parsed tree and writes it to the disk cache.
func (c *DiskCache) Put(hash [32]byte, model string, tree *section.Tree) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	payload := treePayload{
		Schema:   diskCacheSchemaVersion,
		Model:    model,
		Sections: tree.Flatten(),
	}

	p := c.pathFor(hash)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		// После успешного Rename файла под этим именем уже нет.
		_ = os.Remove(f.Name())
	}()

	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads a cached tree by content hash. A miss is (nil, false, nil);
// несовпадение схемы — тоже miss, без ошибки: формат просто устарел.
// Несовпадение модели тоже miss: дерево, разобранное другой грамматикой
// (например после правки реестра), выдавать нельзя.
func (c *DiskCache) Get(hash [32]byte, model string) (*section.Tree, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(hash))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer func() {
		_ = f.Close()
	}()

	var payload treePayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, err
	}
	if payload.Schema != diskCacheSchemaVersion || payload.Model != model {
		return nil, false, nil
	}
	tree, err := section.FromFlat(payload.Sections)
	if err != nil {
		return nil, false, err
	}
	return tree, true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим целиком
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

// Stats reports how many cached trees exist and their total size in bytes.
func (c *DiskCache) Stats() (files int, bytes int64, err error) {
	if c == nil {
		return 0, 0, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	err = filepath.WalkDir(filepath.Join(c.dir, "trees"), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".mp" {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		files++
		bytes += info.Size()
		return nil
	})
	return files, bytes, err
}
