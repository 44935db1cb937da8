package monitor

type Result struct {
	Status    string
	Gear      int
	Seeds     int
	Eggs      int
	Error     string
	Timestamp int64
	Latency   float64
	// page websocket subscribers and messages skipped for slow ones
	Clients int
	Dropped int64
}

type StatusMessage struct {
	Status      string  `json:"status"`
	Source      string  `json:"source"`
	Timestamp   int64   `json:"timestamp"`
	LastCheck   float64 `json:"last_check"`
	Gear        int     `json:"gear"`
	Seeds       int     `json:"seeds"`
	Eggs        int     `json:"eggs"`
	Error       string  `json:"error,omitempty"`
	Latency     float64 `json:"latency"`
	LatencyText string  `json:"latency_text,omitempty"`
	Clients     int     `json:"clients"`
	Dropped     int64   `json:"dropped"`
}
