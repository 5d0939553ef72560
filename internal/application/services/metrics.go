package services

import "github.com/VictoriaMetrics/metrics"

var (
	paymentsCreatedCounter   = metrics.GetOrCreateCounter(`vip_payments_total{result="created"}`)
	paymentsCompletedCounter = metrics.GetOrCreateCounter(`vip_payments_total{result="completed"}`)
	gatewayFailureCounter    = metrics.GetOrCreateCounter(`vip_payments_total{result="gateway_failed"}`)
	chargeFallbackCounter    = metrics.GetOrCreateCounter(`vip_payments_total{result="completed_without_charge"}`)
	activationsCounter       = metrics.GetOrCreateCounter(`vip_activations_total{action="activate"}`)
	deactivationsCounter     = metrics.GetOrCreateCounter(`vip_activations_total{action="deactivate"}`)
	businessRejectedCounter  = metrics.GetOrCreateCounter(`vip_requests_rejected_total{kind="business"}`)
	internalFailureCounter   = metrics.GetOrCreateCounter(`vip_requests_rejected_total{kind="internal"}`)
)
