// ════════════════════════════════════════════════════════════════════════════════════════════════
// Benchmark Scenarios
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Each scenario moves Warmup+Ops uint64 payloads through one transport and
// times the last Ops of them on the consumer side.
//
//   std-single    buffered Go channel, send+recv on one goroutine
//   spsc-single   Sender.Send + Receiver.Recv on one goroutine
//   queue-single  eapache ring deque add+remove on one goroutine (floor)
//   std-cross     buffered Go channel, producer and consumer on pinned threads
//   spsc-cross    spsc channel, producer and consumer on pinned threads
//
// Payloads are utils.Mix64(i+1) so a dropped or duplicated value changes
// the Keccak digest of the stream.
// ════════════════════════════════════════════════════════════════════════════════════════════════

package bench

import (
	"errors"
	"time"

	"github.com/eapache/queue"

	"passenger/control"
	"passenger/pinned"
	"passenger/spsc"
	"passenger/utils"
)

// Config parameterises one harness run.
type Config struct {
	Bound        int    `json:"bound"`         // requested channel bound
	Ops          uint64 `json:"ops"`           // timed values per scenario
	Warmup       uint64 `json:"warmup"`        // untimed values moved first
	Verify       bool   `json:"verify"`        // keep producer/consumer digests
	ProducerCore int    `json:"producer_core"` // <0 = unpinned
	ConsumerCore int    `json:"consumer_core"` // <0 = unpinned
}

// Validate rejects configurations no scenario can run.
func (c Config) Validate() error {
	if c.Bound < 0 {
		return errors.New("bench: negative bound")
	}
	if c.Ops == 0 {
		return errors.New("bench: ops must be positive")
	}
	return nil
}

// Result is the outcome of one scenario.
type Result struct {
	Name     string        `json:"name"`
	Bound    int           `json:"bound"`
	Ops      uint64        `json:"ops"`
	Elapsed  time.Duration `json:"elapsed_ns"`
	NsPerOp  float64       `json:"ns_per_op"`
	Complete bool          `json:"complete"`
	Verified bool          `json:"verified"`
	DigestOK bool          `json:"digest_ok"`
}

// Scenario is one named transport measurement.
type Scenario struct {
	Name string
	Run  func(Config) Result
}

// Scenarios lists every scenario in the order the harness runs them.
var Scenarios = []Scenario{
	{"std-single", runStdSingle},
	{"spsc-single", runSPSCSingle},
	{"queue-single", runQueueSingle},
	{"std-cross", runStdCross},
	{"spsc-cross", runSPSCCross},
}

// Lookup finds a scenario by name.
func Lookup(name string) (Scenario, bool) {
	for _, s := range Scenarios {
		if s.Name == name {
			return s, true
		}
	}
	return Scenario{}, false
}

// payload returns the i-th value of every stream.
func payload(i uint64) uint64 { return utils.Mix64(i + 1) }

// sides holds the two digests of a run, or nils when not verifying.
type sides struct{ sent, recv *Digest }

func newSides(verify bool) sides {
	if !verify {
		return sides{}
	}
	return sides{NewDigest(), NewDigest()}
}

func (s sides) onSend(v uint64) {
	if s.sent != nil {
		s.sent.Add(v)
	}
}

func (s sides) onRecv(v uint64) {
	if s.recv != nil {
		s.recv.Add(v)
	}
}

// finish fills the derived fields of r.  Digests are only compared for
// complete runs: a stopped producer may have recorded a value it never sent.
func (s sides) finish(r *Result, cfg Config, timed uint64, elapsed time.Duration) {
	r.Bound = cfg.Bound
	r.Ops = timed
	r.Elapsed = elapsed
	r.Complete = timed == cfg.Ops
	if timed > 0 {
		r.NsPerOp = float64(elapsed.Nanoseconds()) / float64(timed)
	}
	if s.sent != nil && r.Complete {
		r.Verified = true
		r.DigestOK = s.sent.Equal(s.recv)
	}
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// SINGLE-THREAD SCENARIOS
// ═══════════════════════════════════════════════════════════════════════════════════════════════

func runStdSingle(cfg Config) Result {
	d := newSides(cfg.Verify)
	ch := make(chan uint64, max(cfg.Bound, 1))

	step := func(i uint64) {
		v := payload(i)
		d.onSend(v)
		ch <- v
		d.onRecv(<-ch)
	}
	return timeLoop("std-single", cfg, d, step)
}

func runSPSCSingle(cfg Config) Result {
	d := newSides(cfg.Verify)
	tx, rx := spsc.New[uint64](cfg.Bound)
	defer tx.Close()
	defer rx.Close()

	step := func(i uint64) {
		v := payload(i)
		d.onSend(v)
		_ = tx.Send(v)
		got, _ := rx.Recv()
		d.onRecv(got)
	}
	return timeLoop("spsc-single", cfg, d, step)
}

func runQueueSingle(cfg Config) Result {
	d := newSides(cfg.Verify)
	q := queue.New()

	step := func(i uint64) {
		v := payload(i)
		d.onSend(v)
		q.Add(v)
		d.onRecv(q.Remove().(uint64))
	}
	return timeLoop("queue-single", cfg, d, step)
}

// timeLoop runs step over the warmup and then the timed range, stopping
// early if control.Shutdown is called.
func timeLoop(name string, cfg Config, d sides, step func(uint64)) Result {
	var i uint64
	for ; i < cfg.Warmup && !control.Stopped(); i++ {
		step(i)
	}

	var timed uint64
	start := time.Now()
	for ; timed < cfg.Ops && !control.Stopped(); timed++ {
		step(i + timed)
	}
	elapsed := time.Since(start)

	r := Result{Name: name}
	d.finish(&r, cfg, timed, elapsed)
	return r
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// CROSS-THREAD SCENARIOS
// ═══════════════════════════════════════════════════════════════════════════════════════════════

func runSPSCCross(cfg Config) Result {
	d := newSides(cfg.Verify)
	tx, rx := spsc.New[uint64](cfg.Bound)

	total := cfg.Warmup + cfg.Ops
	var produced uint64
	next := func() (uint64, bool) {
		if produced == total {
			return 0, false
		}
		v := payload(produced)
		produced++
		d.onSend(v)
		return v, true
	}

	var timed uint64
	var elapsed time.Duration
	consume := func() {
		defer rx.Close()
		for i := uint64(0); i < cfg.Warmup; i++ {
			v, err := rx.Recv()
			if err != nil {
				return
			}
			d.onRecv(v)
		}
		start := time.Now()
		defer func() { elapsed = time.Since(start) }()
		for ; timed < cfg.Ops; timed++ {
			v, err := rx.Recv()
			if err != nil {
				return
			}
			d.onRecv(v)
		}
	}

	pdone := make(chan struct{})
	cdone := make(chan struct{})
	pinned.Producer(cfg.ProducerCore, tx, next, nil, pdone)
	pinned.Go(cfg.ConsumerCore, consume, cdone)
	<-cdone
	<-pdone

	r := Result{Name: "spsc-cross"}
	d.finish(&r, cfg, timed, elapsed)
	return r
}

func runStdCross(cfg Config) Result {
	d := newSides(cfg.Verify)
	ch := make(chan uint64, max(cfg.Bound, 1))
	quit := make(chan struct{})

	total := cfg.Warmup + cfg.Ops
	produce := func() {
		defer close(ch)
		for i := uint64(0); i < total && !control.Stopped(); i++ {
			v := payload(i)
			d.onSend(v)
			select {
			case ch <- v:
			case <-quit:
				return
			}
		}
	}

	var timed uint64
	var elapsed time.Duration
	consume := func() {
		defer close(quit)
		for i := uint64(0); i < cfg.Warmup; i++ {
			v, ok := <-ch
			if !ok {
				return
			}
			d.onRecv(v)
		}
		start := time.Now()
		defer func() { elapsed = time.Since(start) }()
		for ; timed < cfg.Ops; timed++ {
			v, ok := <-ch
			if !ok {
				return
			}
			d.onRecv(v)
		}
	}

	pdone := make(chan struct{})
	cdone := make(chan struct{})
	pinned.Go(cfg.ProducerCore, produce, pdone)
	pinned.Go(cfg.ConsumerCore, consume, cdone)
	<-cdone
	<-pdone

	r := Result{Name: "std-cross"}
	d.finish(&r, cfg, timed, elapsed)
	return r
}
