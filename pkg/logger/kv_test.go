package logger_test

import (
	"encoding/json"

	"github.com/arya-analytics/pluginkit/pkg/logger"
	"github.com/arya-analytics/pluginkit/pkg/storage"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("KV", Ordered, func() {
	var store storage.Storage
	BeforeAll(func() {
		var err error
		store, err = storage.Open(storage.Config{Dirname: "kv", MemBacked: true})
		Expect(err).ToNot(HaveOccurred())
	})
	AfterAll(func() { Expect(store.Close()).To(Succeed()) })

	It("Should read back entries in write order", func() {
		kv := logger.OpenKV(store.KV, "raw")
		for _, msg := range []string{"one", "two", "three"} {
			n, err := kv.Write([]byte(msg))
			Expect(err).ToNot(HaveOccurred())
			Expect(n).To(Equal(len(msg)))
		}
		Expect(kv.Sync()).To(Succeed())
		entries, err := kv.Entries()
		Expect(err).ToNot(HaveOccurred())
		Expect(entries).To(Equal([][]byte{[]byte("one"), []byte("two"), []byte("three")}))
	})

	It("Should keep runs separate", func() {
		a, b := logger.OpenKV(store.KV, "runs"), logger.OpenKV(store.KV, "runs")
		Expect(a.Run()).ToNot(Equal(b.Run()))
		_, err := a.Write([]byte("a"))
		Expect(err).ToNot(HaveOccurred())
		_, err = b.Write([]byte("b"))
		Expect(err).ToNot(HaveOccurred())
		Expect(a.Entries()).To(Equal([][]byte{[]byte("a")}))
		Expect(logger.ReadEntries(store.KV, "runs")).To(HaveLen(2))
	})

	It("Should persist entries written through a registered logger", func() {
		reg := logger.NewRegistry(logger.RegistryConfig{})
		logger.RegisterKV(reg, "audit", store.KV, logger.Config{Level: "warning"})
		l := reg.Get("audit")
		Expect(logger.IsNop(l)).To(BeFalse())
		l.Infow("filtered")
		l.Warnw("plugin deactivated", "plugin", "gallery")
		entries, err := logger.ReadEntries(store.KV, "audit")
		Expect(err).ToNot(HaveOccurred())
		Expect(entries).To(HaveLen(1))
		var decoded map[string]interface{}
		Expect(json.Unmarshal(entries[0], &decoded)).To(Succeed())
		Expect(decoded).To(HaveKeyWithValue("msg", "plugin deactivated"))
		Expect(decoded).To(HaveKeyWithValue("plugin", "gallery"))
		Expect(decoded).To(HaveKeyWithValue("logger", "audit"))
	})

	It("Should resolve to Nop without storage", func() {
		reg := logger.NewRegistry(logger.RegistryConfig{})
		logger.RegisterKV(reg, "audit", nil, logger.Config{})
		Expect(logger.IsNop(reg.Get("audit"))).To(BeTrue())
	})
})
