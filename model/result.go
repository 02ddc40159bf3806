package model

// CaseResult is the outcome of scoring one test case.
// Scores are positionally aligned with Case.Options.
type CaseResult struct {
	Case       *TestCase `json:"case"`
	Scores     []float64 `json:"scores"`
	Prediction string    `json:"prediction"`
	IsCorrect  bool      `json:"is_correct"`
}

// Summary is the aggregate view of an evaluation run.
type Summary struct {
	RunID         string  `json:"run_id" yaml:"run_id"`
	Scorer        string  `json:"scorer" yaml:"scorer"`
	Cases         int     `json:"cases" yaml:"cases"`
	CorrectCases  int     `json:"correct_cases" yaml:"correct_cases"`
	Accuracy      float64 `json:"accuracy" yaml:"accuracy"`
	MeanGapInAvgs float64 `json:"mean_gap_in_averages" yaml:"mean_gap_in_averages"`
	MeanGapInMins float64 `json:"mean_gap_in_minimums" yaml:"mean_gap_in_minimums"`
}
