// file: internals/features/defense/evaluations/service/aggregate.go
package service

import "math"

/* =========================
   Aggregation Engine: weighted average
   ========================= */

// CriterionScoreInput: satu baris kriteria untuk agregasi.
// Score nil = belum dinilai; Weight nil = default 1.
type CriterionScoreInput struct {
	Score  *float64
	Weight *float64
}

type WeightedSummary struct {
	RowCount        int     `json:"row_count"`
	ScoredCount     int     `json:"scored_count"`
	WeightedAverage float64 `json:"weighted_average"`
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// ComputeWeightedSummary menghitung Σ(score×weight)/Σ(weight) hanya atas baris
// yang punya score finite. Baris tanpa score dikeluarkan dari pembilang DAN
// penyebut. Kalau tidak ada yang dinilai, hasilnya 0 (bukan NaN).
func ComputeWeightedSummary(rows []CriterionScoreInput) WeightedSummary {
	out := WeightedSummary{RowCount: len(rows)}

	var num, den float64
	for _, r := range rows {
		if r.Score == nil || !isFinite(*r.Score) {
			continue
		}
		w := 1.0
		if r.Weight != nil && isFinite(*r.Weight) {
			w = *r.Weight
		}
		out.ScoredCount++
		num += *r.Score * w
		den += w
	}
	if den != 0 {
		out.WeightedAverage = num / den
	}
	return out
}

// ScheduleSnapshot: statistik lintas-evaluation untuk satu jadwal.
// Evaluation tanpa satu pun kriteria ternilai dikeluarkan, bukan dihitung nol.
type ScheduleSnapshot struct {
	Count int     `json:"count"`
	Avg   float64 `json:"avg"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// SnapshotFromAverages merangkum rata-rata tertimbang per evaluation.
func SnapshotFromAverages(avgs []float64) ScheduleSnapshot {
	out := ScheduleSnapshot{Count: len(avgs)}
	if len(avgs) == 0 {
		return out
	}
	out.Min = avgs[0]
	out.Max = avgs[0]
	var sum float64
	for _, a := range avgs {
		sum += a
		if a < out.Min {
			out.Min = a
		}
		if a > out.Max {
			out.Max = a
		}
	}
	out.Avg = sum / float64(len(avgs))
	return out
}
