package statusutil

import (
	"fmt"
	"strconv"
	"strings"

	"cae-cli/internal/model"
)

// NormalizeStatus parses user input into a status.
// It accepts the canonical names in any case, with '-' or ' ' in place of '_',
// and the 1-based menu position from model.Statuses.
func NormalizeStatus(s string) (model.Status, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return "", fmt.Errorf("invalid status: empty")
	}
	if n, err := strconv.Atoi(raw); err == nil {
		if n < 1 || n > len(model.Statuses) {
			return "", fmt.Errorf("invalid status: %d out of range 1-%d", n, len(model.Statuses))
		}
		return model.Statuses[n-1], nil
	}
	key := strings.ToUpper(raw)
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	switch key {
	case "QUEUED", "EN_COLA":
		return model.StatusQueued, nil
	case "URGENT", "URGENTE":
		return model.StatusUrgent, nil
	case "IN_ATTENTION", "ATTENDING", "EN_ATENCION":
		return model.StatusInAttention, nil
	case "COMPLETED", "DONE", "COMPLETADO":
		return model.StatusCompleted, nil
	default:
		return "", fmt.Errorf("invalid status: %s", raw)
	}
}

// Label is the short human label for a status.
func Label(s model.Status) string {
	switch s {
	case model.StatusQueued:
		return "queued"
	case model.StatusUrgent:
		return "urgent"
	case model.StatusInAttention:
		return "in attention"
	case model.StatusCompleted:
		return "completed"
	default:
		return strings.ToLower(string(s))
	}
}

// Remark is the one-line explanation shown in a ticket's history view.
func Remark(s model.Status) string {
	switch s {
	case model.StatusCompleted:
		return "This ticket has been finalized."
	case model.StatusUrgent:
		return "This ticket is marked as urgent."
	case model.StatusQueued:
		return "This ticket is registered and waiting."
	case model.StatusInAttention:
		return "This ticket is being attended right now."
	default:
		return ""
	}
}
