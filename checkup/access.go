package checkup

import "fmt"

// Identity the bot container runs under when the deployment has not been
// customized. Used for remediation text when the identity probe fails.
const (
	DefaultSecretUID = "10001"
	DefaultSecretGID = "10001"
)

// Modes the evaluator is willing to call readable at all. Anything else,
// including unparseable stat output, is treated as not readable.
var (
	ownerReadableModes = map[string]bool{"600": true, "640": true, "644": true}
	groupReadableModes = map[string]bool{"640": true, "644": true}
)

// EvaluateAccess decides whether a file with the given mode and ownership is
// guaranteed readable by the target identity. The first matching ownership
// branch wins: owner, then group, then other. The world-readable fallthrough
// produces no tightening hint; see TestEvaluateAccess_WorldReadableNoHint.
func EvaluateAccess(mode, ownerUID, ownerGID, targetUID, targetGID string) AccessDecision {
	if targetUID != "" && ownerUID == targetUID {
		if !ownerReadableModes[mode] {
			return AccessDecision{}
		}
		dec := AccessDecision{Readable: true}
		if mode != "600" {
			dec.Hint = fmt.Sprintf("tighten to 600 (current mode %s)", mode)
		}
		return dec
	}

	if targetGID != "" && ownerGID == targetGID {
		if !groupReadableModes[mode] {
			return AccessDecision{}
		}
		dec := AccessDecision{Readable: true}
		if mode != "640" {
			dec.Hint = fmt.Sprintf("tighten to 640 (current mode %s)", mode)
		}
		return dec
	}

	if mode == "644" {
		return AccessDecision{Readable: true}
	}

	return AccessDecision{}
}

// RemediationForUnreadable builds the fix-up guidance for a secret file the
// target process cannot read. With a resolved identity the commands are
// exact; otherwise the guidance falls back to the well-known default.
func RemediationForUnreadable(path string, id ProcessIdentity) string {
	if id.UID != "" && id.GID != "" {
		return fmt.Sprintf("run: chown %s:%s %s && chmod 600 %s", id.UID, id.GID, path, path)
	}
	return fmt.Sprintf("align ownership with the container default (uid/gid %s) and chmod 600 %s", DefaultSecretUID, path)
}
