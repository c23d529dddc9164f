package logger

import (
	"github.com/arya-analytics/pluginkit/pkg/container"
	"github.com/arya-analytics/pluginkit/pkg/service"
	"go.uber.org/zap"
)

// FromContainer registers a factory on r for each id that resolves the logger
// stored under the same id in c. See ContainerFactory.
func FromContainer(r *Registry, c container.Container, ids ...string) {
	for _, id := range ids {
		r.Register(id, ContainerFactory(c, id))
	}
}

// ContainerFactory returns a factory resolving id from c when invoked. A
// *zap.Logger stored in c is sugared; any other value must implement Logger.
// Missing ids and values of the wrong type resolve to Nop.
func ContainerFactory(c container.Container, id string) service.Factory {
	return func() (interface{}, error) {
		v, err := c.Get(id)
		if err != nil {
			return nil, err
		}
		if zl, ok := v.(*zap.Logger); ok && zl != nil {
			return zl.Sugar(), nil
		}
		return v, nil
	}
}
