// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: debug.go: cold-path diagnostics for the binary and harness
//
// Purpose:
//   - Reports setup failures, affinity errors, signal handling and harness
//     progress without pulling fmt into the packages that use it.
//
// Notes:
//   - One write per call, straight to stderr via utils.PrintWarning.
//   - Lines are "<PREFIX>: <message>" so they grep cleanly.
//
// ⚠️ Never invoke from Send/Recv loops: diagnostics only.
// ─────────────────────────────────────────────────────────────────────────────

package debug

import "passenger/utils"

// DropError logs "<prefix>: <err>", or just "<prefix>" when err is nil
// (used as a cheap trace tag).
func DropError(prefix string, err error) {
	if err != nil {
		utils.PrintWarning(prefix + ": " + err.Error() + "\n")
		return
	}
	utils.PrintWarning(prefix + "\n")
}

// DropMessage logs "<prefix>: <message>".
func DropMessage(prefix, message string) {
	utils.PrintWarning(prefix + ": " + message + "\n")
}
