package cv

import "time"

type State string

const (
	StateIdle       State = "idle"
	StateGenerating State = "generating"
	StateReady      State = "ready"
)

type PreviewStatus struct {
	State       State      `json:"state"`
	RequestedAt *time.Time `json:"requestedAt,omitempty"`
	ReadyAt     *time.Time `json:"readyAt,omitempty"`
}

func (s PreviewStatus) IsReady() bool {
	return s.State == StateReady
}
