package domain

// IssueKind grades a diagnostic finding.
type IssueKind string

const (
	IssueCritical IssueKind = "critical"
	IssueWarning  IssueKind = "warning"
)

// Issue is one detected problem on a SKU.
type Issue struct {
	Type IssueKind `json:"type"`
	Text string    `json:"text"`
}

// Action is a recommended step; priority 0 is the most urgent.
type Action struct {
	Priority  int    `json:"priority"`
	Text      string `json:"text"`
	Condition string `json:"condition"`
}

// DiagnosticRecord is the diagnosis of one SKU.
type DiagnosticRecord struct {
	SKU       string   `json:"sku"`
	Quadrant  Quadrant `json:"quadrant"`
	AdContrib float64  `json:"adContrib"`
	Issues    []Issue  `json:"issues"`
	Actions   []Action `json:"actions"`
	StopLoss  []string `json:"stopLoss"`
	IsHealthy bool     `json:"isHealthy"`
}
