package storage

import (
	"path/filepath"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"go.uber.org/zap"
)

type Storage struct {
	// Cfg is the configuration for the storage provided to Open.
	Cfg Config
	// KV is the key-value store. Persistent loggers write their entries here.
	KV *pebble.DB
	// ReleaseLock releases the lock on the storage directory.
	ReleaseLock func() error
}

// Close closes the key-value store and releases the directory lock.
func (s *Storage) Close() error {
	var err error
	if s.KV != nil {
		err = s.KV.Close()
	}
	if s.ReleaseLock != nil {
		err = errors.CombineErrors(err, s.ReleaseLock())
	}
	return err
}

type Config struct {
	// Dirname defines the root directory data is written to. Dirname shouldn't be
	// used by another process while the storage is open.
	Dirname string
	// MemBacked defines whether to use a memory-backed file system.
	MemBacked bool
	// Logger is the logger used by the storage engine.
	Logger *zap.Logger
}

func Open(cfg Config) (Storage, error) {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	fs := openBaseFS(cfg)
	s := Storage{Cfg: cfg}

	if err := fs.MkdirAll(cfg.Dirname, 0755); err != nil {
		return s, errors.Wrap(err, "[storage] - failed to create data directory")
	}

	// Acquire the lock on the storage directory. If any other process is using the
	// same directory we return an error to the caller.
	releaser, err := acquireLock(cfg, fs)
	if err != nil {
		return s, err
	}
	s.ReleaseLock = releaser.Close

	if s.KV, err = openKV(cfg, fs); err != nil {
		return s, errors.CombineErrors(err, s.ReleaseLock())
	}
	return s, nil
}

const (
	kvDirname    = "kv"
	lockFileName = "LOCK"
)

func openBaseFS(cfg Config) vfs.FS {
	if cfg.MemBacked {
		return vfs.NewMem()
	}
	return vfs.Default
}

const lockAlreadyAcquiredMsg = `
	The storage directory is locked by another process.

	Is there another pluginkit process using the same directory?
	`

func acquireLock(cfg Config, fs vfs.FS) (interface{ Close() error }, error) {
	release, err := fs.Lock(filepath.Join(cfg.Dirname, lockFileName))
	if err == nil {
		return release, nil
	}
	if errors.Is(err, syscall.EAGAIN) {
		return nil, errors.Wrap(err, lockAlreadyAcquiredMsg)
	}
	return nil, errors.Wrap(err, "[storage] - failed to acquire lock")
}

func openKV(cfg Config, fs vfs.FS) (*pebble.DB, error) {
	dirname := filepath.Join(cfg.Dirname, kvDirname)
	db, err := pebble.Open(dirname, &pebble.Options{
		FS:     fs,
		Logger: cfg.Logger.Named("pebble").Sugar(),
	})
	return db, errors.Wrap(err, "[storage] - failed to open key-value store")
}
