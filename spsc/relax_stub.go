// relax_stub.go: no-op cpuRelax for targets without a spin hint, builds
// without cgo, or builds tagged noasm.  The loops still spin at full rate.

//go:build (!amd64 && !arm64) || !cgo || noasm

package spsc

func cpuRelax() {}
