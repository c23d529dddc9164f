package logger

import (
	"encoding/binary"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// KV is a zapcore.WriteSyncer that persists every encoded entry to a pebble DB.
// Keys are laid out as <prefix>/<run>/<seq>, where run is a random id chosen
// when the KV is opened and seq is a big-endian counter, so entries of one run
// iterate in write order and runs never collide.
type KV struct {
	db     *pebble.DB
	prefix []byte
	run    uuid.UUID
	mu     sync.Mutex
	seq    uint64
}

var _ zapcore.WriteSyncer = (*KV)(nil)

// OpenKV returns a KV writing to db under prefix.
func OpenKV(db *pebble.DB, prefix string) *KV {
	return &KV{db: db, prefix: []byte(prefix + "/"), run: uuid.New()}
}

// Run returns the id entries written by this KV are keyed under.
func (k *KV) Run() uuid.UUID { return k.run }

// Write implements io.Writer.
func (k *KV) Write(p []byte) (int, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	key := k.key(k.seq)
	if err := k.db.Set(key, p, pebble.NoSync); err != nil {
		return 0, errors.Wrap(err, "[logger] - failed to persist entry")
	}
	k.seq++
	return len(p), nil
}

// Sync implements zapcore.WriteSyncer.
func (k *KV) Sync() error { return k.db.Flush() }

// Entries returns the entries written during this run, in write order.
func (k *KV) Entries() ([][]byte, error) { return scan(k.db, k.runPrefix()) }

// ReadEntries returns every entry persisted under prefix across all runs. Entries
// of one run are in write order; runs are ordered by id.
func ReadEntries(db *pebble.DB, prefix string) ([][]byte, error) {
	return scan(db, []byte(prefix+"/"))
}

func scan(db *pebble.DB, prefix []byte) ([][]byte, error) {
	upper := make([]byte, len(prefix))
	copy(upper, prefix)
	// prefix always ends in '/', so incrementing it cannot overflow.
	upper[len(upper)-1]++
	iter := db.NewIter(&pebble.IterOptions{LowerBound: prefix, UpperBound: upper})
	var entries [][]byte
	for iter.First(); iter.Valid(); iter.Next() {
		v := make([]byte, len(iter.Value()))
		copy(v, iter.Value())
		entries = append(entries, v)
	}
	return entries, iter.Close()
}

func (k *KV) runPrefix() []byte {
	b := make([]byte, 0, len(k.prefix)+len(k.run)+1)
	b = append(b, k.prefix...)
	b = append(b, k.run[:]...)
	return append(b, '/')
}

func (k *KV) key(seq uint64) []byte {
	b := k.runPrefix()
	var s [8]byte
	binary.BigEndian.PutUint64(s[:], seq)
	return append(b, s[:]...)
}

// RegisterKV registers name on r as a JSON logger persisting to db. The logger
// writes at or above the level in cfg; every other Config field is ignored.
func RegisterKV(r *Registry, name string, db *pebble.DB, cfg Config) {
	r.RegisterZap(name, func() (*zap.Logger, error) {
		lvl := Info
		if cfg.Level != "" {
			var err error
			if lvl, err = ParseLevel(cfg.Level); err != nil {
				return nil, err
			}
		}
		if db == nil {
			return nil, errors.New("[logger] - no storage configured")
		}
		core := zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			OpenKV(db, name),
			lvl.ZapLevel(),
		)
		return zap.New(core), nil
	})
}
