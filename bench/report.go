// report.go
//
// A Report is one harness invocation: the configuration, the machine
// shape and every scenario result.  It is encoded with sonnet for the
// -json output and for the copy kept alongside each stored run.

package bench

import (
	"runtime"
	"time"

	"github.com/sugawarayuuta/sonnet"

	"passenger/control"
	"passenger/debug"
	"passenger/utils"
)

// Report collects the results of one run.
type Report struct {
	StartedAt  time.Time `json:"started_at"`
	GoVersion  string    `json:"go_version"`
	GOOS       string    `json:"goos"`
	GOARCH     string    `json:"goarch"`
	GOMAXPROCS int       `json:"gomaxprocs"`
	Config     Config    `json:"config"`
	Results    []Result  `json:"results"`
}

// Run executes the named scenarios (all of them when names is empty) in
// registry order and returns the report.  Unknown names are an error.
func Run(cfg Config, names ...string) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	selected := Scenarios
	if len(names) > 0 {
		selected = selected[:0:0]
		for _, name := range names {
			s, ok := Lookup(name)
			if !ok {
				return nil, &UnknownScenarioError{Name: name}
			}
			selected = append(selected, s)
		}
	}

	rep := &Report{
		StartedAt:  time.Now().UTC(),
		GoVersion:  runtime.Version(),
		GOOS:       runtime.GOOS,
		GOARCH:     runtime.GOARCH,
		GOMAXPROCS: runtime.GOMAXPROCS(0),
		Config:     cfg,
	}
	for _, s := range selected {
		if control.Stopped() {
			debug.DropMessage("BENCH", "stopped before "+s.Name)
			break
		}
		debug.DropMessage("BENCH", "running "+s.Name)
		r := s.Run(cfg)
		debug.DropMessage("BENCH", FormatResult(r))
		rep.Results = append(rep.Results, r)
	}
	return rep, nil
}

// UnknownScenarioError names a scenario that is not registered.
type UnknownScenarioError struct {
	Name string
}

func (e *UnknownScenarioError) Error() string {
	return "bench: unknown scenario " + e.Name
}

// FormatResult renders r as one human-readable line.
func FormatResult(r Result) string {
	line := r.Name + " bound=" + utils.Itoa(r.Bound) +
		" ops=" + utils.Utoa(r.Ops) +
		" ns/op=" + utils.Ftoa2(r.NsPerOp)
	if !r.Complete {
		line += " (incomplete)"
	}
	if r.Verified {
		if r.DigestOK {
			line += " digest=ok"
		} else {
			line += " digest=MISMATCH"
		}
	}
	return line
}

// EncodeReport returns the JSON form of rep.
func EncodeReport(rep *Report) ([]byte, error) {
	return sonnet.Marshal(rep)
}

// DecodeReport parses a report produced by EncodeReport.
func DecodeReport(data []byte) (*Report, error) {
	var rep Report
	if err := sonnet.Unmarshal(data, &rep); err != nil {
		return nil, err
	}
	return &rep, nil
}
