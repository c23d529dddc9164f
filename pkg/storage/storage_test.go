package storage_test

import (
	"os"

	"github.com/arya-analytics/pluginkit/pkg/storage"
	"github.com/cockroachdb/pebble"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Storage", func() {
	Describe("Open", func() {
		It("Should open a memory-backed key-value store", func() {
			s, err := storage.Open(storage.Config{Dirname: "testdata", MemBacked: true})
			Expect(err).ToNot(HaveOccurred())
			Expect(s.KV.Set([]byte("k"), []byte("v"), pebble.Sync)).To(Succeed())
			v, closer, err := s.KV.Get([]byte("k"))
			Expect(err).ToNot(HaveOccurred())
			Expect(v).To(Equal([]byte("v")))
			Expect(closer.Close()).To(Succeed())
			Expect(s.Close()).To(Succeed())
		})

		It("Should persist data on disk", func() {
			dir, err := os.MkdirTemp("", "pluginkit-storage")
			Expect(err).ToNot(HaveOccurred())
			DeferCleanup(os.RemoveAll, dir)
			s, err := storage.Open(storage.Config{Dirname: dir})
			Expect(err).ToNot(HaveOccurred())
			Expect(s.KV.Set([]byte("k"), []byte("v"), pebble.Sync)).To(Succeed())
			Expect(s.Close()).To(Succeed())

			s, err = storage.Open(storage.Config{Dirname: dir})
			Expect(err).ToNot(HaveOccurred())
			v, closer, err := s.KV.Get([]byte("k"))
			Expect(err).ToNot(HaveOccurred())
			Expect(v).To(Equal([]byte("v")))
			Expect(closer.Close()).To(Succeed())
			Expect(s.Close()).To(Succeed())
		})
	})
})
