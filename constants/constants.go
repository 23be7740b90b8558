// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: constants.go: tunables for the example binary & bench harness
//
// Purpose:
//   - Default channel bound, CPU placement and harness sizes.
//   - Default location of the sqlite result store.
//
// ⚠️ No runtime logic here: all values must be compile-time resolvable
// ─────────────────────────────────────────────────────────────────────────────

package constants

// ───────────────────────────── Channel Sizing ──────────────────────────────

const (
	// DefaultBound is the requested bound used by the example and harness:
	// 1000 rounds up to 1024 slots, 1023 usable.
	DefaultBound = 1000
)

// ───────────────────────────── CPU Placement ───────────────────────────────

const (
	// ProducerCore is the logical CPU the producer thread is pinned to.
	ProducerCore = 2

	// ConsumerCore is the logical CPU the consumer thread is pinned to.
	// The example drains on the calling thread, which is pinned here too.
	ConsumerCore = 3

	// NoPin disables affinity for a pinned worker.
	NoPin = -1
)

// ─────────────────────────── Benchmark Harness ─────────────────────────────

const (
	// BenchOps is the number of values moved per harness scenario.
	BenchOps = 10_000_000

	// BenchWarmup is the number of values moved before timing starts.
	BenchWarmup = 100_000
)

// ───────────────────────────── Result Store ────────────────────────────────

const (
	// ResultsDBPath is the conventional sqlite file for -db, named in the
	// flag's help text.
	ResultsDBPath = "passenger_bench.db"

	// ResultsTable holds one row per scenario per run.
	ResultsTable = "bench_results"
)
