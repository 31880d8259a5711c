/*
Package workers sizes concurrency limits in containerized environments.

runtime.NumCPU reports the host's CPU count, while GOMAXPROCS follows the
container's CPU limit. Sizing from GOMAXPROCS keeps the number of concurrent
outbound requests proportional to what the pod can actually run:

	// 2 per CPU, at most 16
	n := workers.ForIO(cfg.EmbedWorkers, 16)

# Override

A positive override, normally the EMBED_WORKERS setting, replaces the
calculation. The limit still applies:

	env:
	- name: EMBED_WORKERS
	  value: "4"

# Workload Types

CPU-bound work uses one worker per CPU. I/O-bound work, such as oEmbed
lookups that mostly wait on the network, uses two.
*/
package workers
