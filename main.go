// ════════════════════════════════════════════════════════════════════════════════════════════════
// passenger - Example & Benchmark Entry Point
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Component: Command-line driver for the spsc channel
//
// Description:
//   Default mode spawns a producer on its own pinned thread that sends a
//   counter into a bounded spsc channel while the calling thread drains it.
//   The producer stops after -n values (0 = until SIGINT/SIGTERM) and closes
//   its Sender; the drain loop ends when Recv reports the disconnect.
//
//   -bench runs the benchmark harness instead, optionally writing the report
//   as JSON (-json) and appending it to a sqlite history (-db).
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package main

import (
	"flag"
	"os"
	"runtime"
	"strings"
	"syscall"

	"passenger/bench"
	"passenger/constants"
	"passenger/control"
	"passenger/debug"
	"passenger/pinned"
	"passenger/spsc"
	"passenger/utils"
)

func main() {
	var (
		benchMode = flag.Bool("bench", false, "run the benchmark harness instead of the example")
		bound     = flag.Int("bound", constants.DefaultBound, "requested channel bound")
		count     = flag.Uint64("n", 0, "values to send in example mode (0 = until interrupted)")
		ops       = flag.Uint64("ops", constants.BenchOps, "timed values per benchmark scenario")
		warmup    = flag.Uint64("warmup", constants.BenchWarmup, "untimed values per benchmark scenario")
		verify    = flag.Bool("verify", true, "check producer/consumer Keccak digests in benchmarks")
		only      = flag.String("scenarios", "", "comma-separated scenario names (default: all)")
		jsonOut   = flag.Bool("json", false, "write the benchmark report to stdout as JSON")
		dbPath    = flag.String("db", "", "append the benchmark report to this sqlite file ("+constants.ResultsDBPath+" is conventional)")
		noPin     = flag.Bool("nopin", false, "do not pin producer/consumer threads")
	)
	flag.Parse()

	cancel := control.ShutdownOnSignal(os.Interrupt, syscall.SIGTERM)
	defer cancel()

	producerCore, consumerCore := constants.ProducerCore, constants.ConsumerCore
	if *noPin {
		producerCore, consumerCore = constants.NoPin, constants.NoPin
	}

	if *benchMode {
		cfg := bench.Config{
			Bound:        *bound,
			Ops:          *ops,
			Warmup:       *warmup,
			Verify:       *verify,
			ProducerCore: producerCore,
			ConsumerCore: consumerCore,
		}
		if err := runBench(cfg, *only, *jsonOut, *dbPath); err != nil {
			debug.DropError("BENCH_ERROR", err)
			os.Exit(1)
		}
		return
	}

	if *bound < 0 {
		debug.DropMessage("CONFIG_ERROR", "bound must not be negative")
		os.Exit(2)
	}
	runExample(*bound, *count, producerCore, consumerCore)
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// EXAMPLE: PINNED PRODUCER, DRAINING CALLER
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// runExample streams a counter through the channel until the producer stops
// and reports how much was moved.
func runExample(bound int, limit uint64, producerCore, consumerCore int) {
	tx, rx := spsc.New[uint64](bound)
	debug.DropMessage("INIT", "bound "+utils.Itoa(bound)+", capacity "+utils.Itoa(rx.Cap()))

	var i uint64
	next := func() (uint64, bool) {
		if limit != 0 && i == limit {
			return 0, false
		}
		i++
		return i, true
	}

	var sent uint64
	pdone := make(chan struct{})
	pinned.Producer(producerCore, tx, next, &sent, pdone)

	// drain on the calling thread
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	if consumerCore >= 0 {
		pinned.PinCurrent(consumerCore)
	}

	var received, last uint64
	for {
		v, err := rx.Recv()
		if err != nil {
			break
		}
		if v != last+1 {
			debug.DropMessage("ORDER", "expected "+utils.Utoa(last+1)+", got "+utils.Utoa(v))
		}
		last = v
		received++
	}
	rx.Close()
	<-pdone

	debug.DropMessage("DONE", "sent "+utils.Utoa(sent)+", received "+utils.Utoa(received))
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// BENCHMARK HARNESS
// ═══════════════════════════════════════════════════════════════════════════════════════════════

func runBench(cfg bench.Config, only string, jsonOut bool, dbPath string) error {
	var names []string
	if only != "" {
		names = strings.Split(only, ",")
	}

	rep, err := bench.Run(cfg, names...)
	if err != nil {
		return err
	}

	if jsonOut {
		data, err := bench.EncodeReport(rep)
		if err != nil {
			return err
		}
		if _, err := os.Stdout.Write(append(data, '\n')); err != nil {
			return err
		}
	}

	if dbPath != "" {
		st, err := bench.OpenStore(dbPath)
		if err != nil {
			return err
		}
		defer st.Close()
		id, err := st.Save(rep)
		if err != nil {
			return err
		}
		debug.DropMessage("STORED", dbPath+" run "+utils.Itoa(int(id)))
	}
	return nil
}
