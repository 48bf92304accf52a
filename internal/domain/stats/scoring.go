package stats

import "math"

// Scoring weights. ACSWeight is the single source of truth for the ACS
// coefficient; every point value in the system is derived through
// CalculatePoints so ingestion and display can never diverge.
const (
	KillWeight   = 2.0
	DeathWeight  = 1.0
	AssistWeight = 1.5
	ACSWeight    = 0.05
)

// CalculatePoints converts raw per-match counters into fantasy points,
// rounded half-up to two decimal places. Inputs are assumed non-negative;
// validation happens before ingestion.
func CalculatePoints(kills, deaths, assists, acs int) float64 {
	points := KillWeight*float64(kills) -
		DeathWeight*float64(deaths) +
		AssistWeight*float64(assists) +
		ACSWeight*float64(acs)

	return math.Round(points*100) / 100
}
