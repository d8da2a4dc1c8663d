package checkup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateAccess_DecisionTable(t *testing.T) {
	tests := []struct {
		name         string
		mode         string
		ownerUID     string
		ownerGID     string
		targetUID    string
		targetGID    string
		wantReadable bool
		wantHint     string
	}{
		// owner branch
		{"owner 600", "600", "10001", "10001", "10001", "10001", true, ""},
		{"owner 640", "640", "10001", "10001", "10001", "10001", true, "tighten to 600"},
		{"owner 644", "644", "10001", "10001", "10001", "10001", true, "tighten to 600"},
		// group branch
		{"group 600", "600", "0", "10001", "10001", "10001", false, ""},
		{"group 640", "640", "0", "10001", "10001", "10001", true, ""},
		{"group 644", "644", "0", "10001", "10001", "10001", true, "tighten to 640"},
		// other branch
		{"other 600", "600", "0", "0", "10001", "10001", false, ""},
		{"other 640", "640", "0", "0", "10001", "10001", false, ""},
		{"other 644", "644", "0", "0", "10001", "10001", true, ""},
		// unrecognized modes
		{"owner mode 400", "400", "10001", "10001", "10001", "10001", false, ""},
		{"owner mode garbage", "rw-r--r--", "10001", "10001", "10001", "10001", false, ""},
		{"owner mode empty", "", "10001", "10001", "10001", "10001", false, ""},
		// unknown target identity falls through to the other branch
		{"unknown identity 644", "644", "10001", "10001", "", "", true, ""},
		{"unknown identity 600", "600", "10001", "10001", "", "", false, ""},
		{"unknown identity 640", "640", "10001", "10001", "", "", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec := EvaluateAccess(tt.mode, tt.ownerUID, tt.ownerGID, tt.targetUID, tt.targetGID)
			assert.Equal(t, tt.wantReadable, dec.Readable)
			if tt.wantHint == "" {
				assert.Empty(t, dec.Hint)
			} else {
				assert.Contains(t, dec.Hint, tt.wantHint)
			}
		})
	}
}

// The world-readable fallthrough marks the file readable with no tightening
// hint, even though it is the loosest of the three readable branches. That
// asymmetry is long-standing observed behavior; this test pins it down so a
// change to it is deliberate, not accidental.
func TestEvaluateAccess_WorldReadableNoHint(t *testing.T) {
	dec := EvaluateAccess("644", "0", "0", "10001", "10001")
	assert.True(t, dec.Readable)
	assert.Empty(t, dec.Hint)

	dec = EvaluateAccess("644", "0", "0", "", "")
	assert.True(t, dec.Readable)
	assert.Empty(t, dec.Hint)
}

func TestEvaluateAccess_OwnerBranchWinsOverGroup(t *testing.T) {
	// owner matches but the mode is unknown: the group branch must not be
	// consulted even though it would have matched
	dec := EvaluateAccess("060", "10001", "10001", "10001", "10001")
	assert.False(t, dec.Readable)
}

func TestRemediationForUnreadable(t *testing.T) {
	msg := RemediationForUnreadable("/opt/bot/.env", ProcessIdentity{UID: "10001", GID: "10002"})
	assert.Contains(t, msg, "chown 10001:10002 /opt/bot/.env")
	assert.Contains(t, msg, "chmod 600")

	msg = RemediationForUnreadable("/opt/bot/.env", ProcessIdentity{})
	assert.Contains(t, msg, DefaultSecretUID)
	assert.Contains(t, msg, "chmod 600")
}
