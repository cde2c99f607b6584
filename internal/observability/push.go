package observability

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus/push"
)

// Push sends the pipeline metrics to a Prometheus Pushgateway under the given
// job name, replacing whatever the previous run of that job pushed.
func Push(ctx context.Context, gatewayURL, job string, m *Metrics) error {
	g := m.Gatherer()
	if g == nil {
		return errors.New("metrics are not registered")
	}
	return push.New(gatewayURL, job).Gatherer(g).PushContext(ctx)
}
