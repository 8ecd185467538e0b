package model

// KeywordStats is the persistent effectiveness record for one search keyword.
type KeywordStats struct {
	Keyword             string  `json:"keyword"`
	TotalSearches       int     `json:"total_searches"`
	HighImportanceCount int     `json:"high_importance_count"`
	MediumImportance    int     `json:"medium_importance_count"`
	LowImportanceCount  int     `json:"low_importance_count"`
	LastUsed            string  `json:"last_used,omitempty"`
	EffectivenessScore  float64 `json:"effectiveness_score"`
}

// CalculateEffectiveness recomputes the score from cumulative counts.
// Weights: high=3, medium=1, low=0, normalized to [0,1] by the number of
// analysis runs this keyword contributed to.
func (k *KeywordStats) CalculateEffectiveness() {
	if k.TotalSearches == 0 {
		k.EffectivenessScore = 0.0
		return
	}

	weighted := float64(k.HighImportanceCount*3+k.MediumImportance) / float64(k.TotalSearches)
	score := weighted / 3.0
	if score > 1.0 {
		score = 1.0
	}
	k.EffectivenessScore = score
}
