//go:build linux

// setaffinity_linux.go
//
// Pins the calling OS thread to one logical CPU through
// sched_setaffinity(2).  Only meaningful after runtime.LockOSThread.
// EPERM/EINVAL are common in containers with restricted cpusets; callers
// treat an error as "run unpinned".

package pinned

import "golang.org/x/sys/unix"

// cpuSetSize matches the kernel CPU_SETSIZE covered by unix.CPUSet.
const cpuSetSize = 1024

// setAffinity pins the current thread to cpu (0-based).
func setAffinity(cpu int) error {
	var set unix.CPUSet
	set.Zero()
	set.Set(cpu)
	return unix.SchedSetaffinity(0, &set) // pid 0 → calling thread
}

// currentAffinity returns the CPUs the calling thread may run on.
func currentAffinity() ([]int, error) {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(0, &set); err != nil {
		return nil, err
	}
	var cpus []int
	for i := 0; i < cpuSetSize; i++ {
		if set.IsSet(i) {
			cpus = append(cpus, i)
		}
	}
	return cpus, nil
}
