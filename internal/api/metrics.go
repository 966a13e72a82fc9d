// ABOUTME: Prometheus metrics for the authorization service.
package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// decisionsTotal counts authorization decisions by outcome ("allow"/"deny"),
// across both the middleware gates and the /authz/check endpoint.
var decisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "authz_decisions_total",
	Help: "Authorization decisions by outcome.",
}, []string{"outcome"})
