// Package telemetry records preset operation metrics.
//
// Collector is called inline by the preset service; Noop discards events and
// PrometheusCollector exports them:
//
//	preset_operations_total{operation,outcome}
//	preset_operation_duration_seconds{operation}
//	preset_backups_pruned_total
//	preset_library_files
//
// Collectors registered twice on the same registerer share their metrics.
package telemetry
