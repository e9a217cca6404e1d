// Package telemetry instruments tooltip controllers with Prometheus metrics
// and OpenTelemetry traces.
//
// Metrics wrap the pieces a Controller is built from:
//
//	m := telemetry.NewMetrics(telemetry.WithRegistry(reg))
//	c := tooltip.New(host,
//	    tooltip.WithSolver(m.Solver(telemetry.TraceSolver(geometry.DefaultSolver))),
//	    tooltip.WithAutoUpdater(m.AutoUpdater(tracker)),
//	)
//	defer m.Observe(c)()
//
// Metrics exported (with the default namespace):
//   - tooltip_notifications_total{kind}: show and hide notifications
//   - tooltip_position_errors_total: failed position computations
//   - tooltip_position_duration_seconds: position computation latency
//   - tooltip_tracking_active: live tracking subscriptions
package telemetry
