// Package metrics exports run results as Prometheus metrics.
//
// blockcheck runs as a batch job, so metrics are not scraped from an HTTP
// endpoint. Instead every command can write them to a file picked up by the
// node_exporter textfile collector, which makes drift alertable:
//
//	rec := metrics.NewRecorder()
//	rec.ObserveReconcile(result, threshold)
//	err := rec.WriteTextfile("/var/lib/node_exporter/blockcheck.prom")
package metrics
