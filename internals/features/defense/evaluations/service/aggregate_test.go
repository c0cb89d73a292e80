// file: internals/features/defense/evaluations/service/aggregate_test.go
package service

import (
	"math"
	"testing"
)

func fptr(f float64) *float64 { return &f }

func TestComputeWeightedSummary(t *testing.T) {
	cases := []struct {
		name        string
		rows        []CriterionScoreInput
		wantAvg     float64
		wantScored  int
		wantRowsCnt int
	}{
		{
			name: "bobot berbeda",
			rows: []CriterionScoreInput{
				{Score: fptr(4), Weight: fptr(1)},
				{Score: fptr(2), Weight: fptr(3)},
			},
			wantAvg:     2.5,
			wantScored:  2,
			wantRowsCnt: 2,
		},
		{
			name: "baris tanpa score keluar dari pembilang dan penyebut",
			rows: []CriterionScoreInput{
				{Score: fptr(80), Weight: fptr(2)},
				{Score: nil, Weight: fptr(5)},
			},
			wantAvg:     80,
			wantScored:  1,
			wantRowsCnt: 2,
		},
		{
			name: "weight nil default 1",
			rows: []CriterionScoreInput{
				{Score: fptr(60)},
				{Score: fptr(100)},
			},
			wantAvg:     80,
			wantScored:  2,
			wantRowsCnt: 2,
		},
		{
			name:        "kosong total tetap 0 bukan NaN",
			rows:        nil,
			wantAvg:     0,
			wantScored:  0,
			wantRowsCnt: 0,
		},
		{
			name: "semua baris tanpa score",
			rows: []CriterionScoreInput{
				{Weight: fptr(2)},
				{Weight: fptr(3)},
			},
			wantAvg:     0,
			wantScored:  0,
			wantRowsCnt: 2,
		},
		{
			name: "score NaN diperlakukan seperti belum dinilai",
			rows: []CriterionScoreInput{
				{Score: fptr(math.NaN()), Weight: fptr(10)},
				{Score: fptr(50), Weight: fptr(1)},
			},
			wantAvg:     50,
			wantScored:  1,
			wantRowsCnt: 2,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeWeightedSummary(tc.rows)
			if got.RowCount != tc.wantRowsCnt {
				t.Fatalf("RowCount = %d, mau %d", got.RowCount, tc.wantRowsCnt)
			}
			if got.ScoredCount != tc.wantScored {
				t.Fatalf("ScoredCount = %d, mau %d", got.ScoredCount, tc.wantScored)
			}
			if math.Abs(got.WeightedAverage-tc.wantAvg) > 1e-9 {
				t.Fatalf("WeightedAverage = %v, mau %v", got.WeightedAverage, tc.wantAvg)
			}
		})
	}
}

func TestSnapshotFromAverages(t *testing.T) {
	t.Run("kosong", func(t *testing.T) {
		got := SnapshotFromAverages(nil)
		if got.Count != 0 || got.Avg != 0 || got.Min != 0 || got.Max != 0 {
			t.Fatalf("snapshot kosong harus nol semua, dapat %+v", got)
		}
	})

	t.Run("beberapa evaluation", func(t *testing.T) {
		got := SnapshotFromAverages([]float64{70, 90, 80})
		if got.Count != 3 {
			t.Fatalf("Count = %d", got.Count)
		}
		if got.Min != 70 || got.Max != 90 {
			t.Fatalf("Min/Max = %v/%v", got.Min, got.Max)
		}
		if math.Abs(got.Avg-80) > 1e-9 {
			t.Fatalf("Avg = %v", got.Avg)
		}
	})
}
