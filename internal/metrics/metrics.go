package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 验证/铸造工作流计数器
var (
	VerificationsStaked = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "solverse",
		Name:      "verifications_staked_total",
		Help:      "Number of verifications staked on-chain.",
	})

	VerificationsSigned = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "solverse",
		Name:      "verifications_signed_total",
		Help:      "Number of verifications with a completed attestation signature.",
	})

	SbtMints = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "solverse",
		Name:      "sbt_mints_total",
		Help:      "Number of soulbound tokens minted, by kind.",
	}, []string{"kind"}) // contribution / verifier

	RewardClaims = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "solverse",
		Name:      "reward_claims_total",
		Help:      "Number of reward claims issued to the oracle.",
	})

	VerifierSlashes = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "solverse",
		Name:      "verifier_slashes_total",
		Help:      "Number of verifier stakes slashed.",
	})

	JobRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "solverse",
		Name:      "job_runs_total",
		Help:      "Background job executions, by job and result.",
	}, []string{"job", "result"})

	OracleReadErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "solverse",
		Name:      "oracle_read_errors_total",
		Help:      "Failed read calls against the reputation oracle.",
	})
)
