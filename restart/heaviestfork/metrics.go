package heaviestfork

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	totalActiveStakeGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "wenrestart_heaviest_fork_active_stake",
			Help: "The total stake of peers that have contributed a heaviest fork claim.",
		},
	)
	activePeersCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "wenrestart_heaviest_fork_active_peers",
			Help: "The number of peers that have contributed a heaviest fork claim.",
		},
	)
	zeroStakeIgnoredCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wenrestart_heaviest_fork_zero_stake_ignored_count",
			Help: "The number of claims ignored because the sender has no stake.",
		},
	)
	malformedCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wenrestart_heaviest_fork_malformed_count",
			Help: "The number of claims ignored because of a shred version mismatch.",
		},
	)
	forkSwitchCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wenrestart_heaviest_fork_switch_count",
			Help: "The number of claims dropped because the sender switched forks.",
		},
	)
)
