package runner

// Verdict is the derived overall result of a run. It is computed from the
// recorded outcomes, never stored.
type Verdict struct {
	Succeeded int `json:"succeeded"`
	Total     int `json:"total"`
}

// FullSuccess reports whether every step completed.
func (v Verdict) FullSuccess() bool {
	return v.Succeeded == v.Total
}
