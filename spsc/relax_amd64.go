// ════════════════════════════════════════════════════════════════════════════════════════════════
// CPU Relaxation - AMD64 Architecture
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Emits PAUSE inside the Send/Recv spin loops so a hyperthread sibling keeps
// making progress and the core does not speculate on the polled cursor.
// ════════════════════════════════════════════════════════════════════════════════════════════════

//go:build amd64 && cgo && !noasm

package spsc

/*
static inline void cpu_pause() {
    __asm__ __volatile__("pause" ::: "memory");
}
*/
import "C"

// cpuRelax executes one x86-64 PAUSE.
func cpuRelax() {
	C.cpu_pause()
}
