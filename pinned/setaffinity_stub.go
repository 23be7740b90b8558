//go:build !linux

// setaffinity_stub.go: affinity is a no-op where sched_setaffinity(2) is
// unavailable; pinned workers still get a dedicated locked OS thread.

package pinned

func setAffinity(cpu int) error { return nil }

func currentAffinity() ([]int, error) { return nil, nil }
