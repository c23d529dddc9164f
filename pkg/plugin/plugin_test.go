package plugin_test

import (
	"github.com/arya-analytics/pluginkit/pkg/container"
	"github.com/arya-analytics/pluginkit/pkg/logger"
	"github.com/arya-analytics/pluginkit/pkg/plugin"
	"github.com/cockroachdb/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type foreignContainer struct{}

func (foreignContainer) Get(string) (interface{}, error) { return nil, nil }
func (foreignContainer) Has(string) bool                 { return false }

var _ = Describe("Plugin", func() {
	Describe("Open", func() {
		It("Should reject an empty slug", func() {
			_, err := plugin.Open(plugin.Config{Slug: "  "})
			Expect(errors.Is(err, plugin.InvalidSlug)).To(BeTrue())
			_, err = plugin.Open(plugin.Config{Slug: "!!!"})
			Expect(errors.Is(err, plugin.InvalidSlug)).To(BeTrue())
		})

		It("Should reject an unsupported container", func() {
			_, err := plugin.Open(plugin.Config{Slug: "gallery", Container: foreignContainer{}})
			Expect(errors.Is(err, container.Configuration)).To(BeTrue())
		})

		It("Should root names at the component when one is given", func() {
			p, err := plugin.Open(plugin.Config{Slug: "gallery", Component: "lightbox"})
			Expect(err).ToNot(HaveOccurred())
			Expect(p.AssetHandle("main")).To(Equal("gallery-lightbox-main"))
			Expect(p.RESTNamespace("v1")).To(Equal("gallery-lightbox/v1"))
		})
	})

	Describe("Logger", func() {
		It("Should return the no-op logger for unregistered names", func() {
			p, err := plugin.Open(plugin.Config{Slug: "gallery"})
			Expect(err).ToNot(HaveOccurred())
			Expect(logger.IsNop(p.Logger("audit"))).To(BeTrue())
		})

		It("Should resolve registered loggers under the plugin's service name", func() {
			core, logs := observer.New(zapcore.InfoLevel)
			p, err := plugin.Open(plugin.Config{Slug: "gallery"})
			Expect(err).ToNot(HaveOccurred())
			p.RegisterLogger("audit", func() (interface{}, error) {
				return zap.New(core).Sugar(), nil
			})
			Expect(p.Loggers().Registered("gallery-audit")).To(BeTrue())
			l := p.Logger("audit")
			Expect(p.Logger("audit")).To(BeIdenticalTo(l))
			l.Infow("image uploaded")
			Expect(logs.Len()).To(Equal(1))
		})

		It("Should resolve loggers from the container", func() {
			core, logs := observer.New(zapcore.InfoLevel)
			m := container.NewMap()
			m.Set("audit", zap.New(core))
			p, err := plugin.Open(plugin.Config{Slug: "gallery", Container: m})
			Expect(err).ToNot(HaveOccurred())
			p.LoggersFromContainer("audit", "metrics")
			p.Logger("audit").Warnw("quota exceeded")
			Expect(logs.Len()).To(Equal(1))
			Expect(logger.IsNop(p.Logger("metrics"))).To(BeTrue())
		})
	})

	Describe("Service", func() {
		It("Should get and set services through the container", func() {
			p, err := plugin.Open(plugin.Config{Slug: "gallery", Container: container.NewMap()})
			Expect(err).ToNot(HaveOccurred())
			Expect(p.HasContainer()).To(BeTrue())
			Expect(p.SetService("clock", "utc")).To(Succeed())
			v, err := p.Service("clock")
			Expect(err).ToNot(HaveOccurred())
			Expect(v).To(Equal("utc"))
		})

		It("Should fail without a container", func() {
			p, err := plugin.Open(plugin.Config{Slug: "gallery"})
			Expect(err).ToNot(HaveOccurred())
			_, err = p.Service("clock")
			Expect(errors.Is(err, container.NotFound)).To(BeTrue())
			Expect(errors.Is(p.SetService("clock", 1), container.Configuration)).To(BeTrue())
		})
	})
})
