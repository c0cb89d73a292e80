// file: internals/features/defense/evaluations/dto/evaluation_dto_test.go
package dto

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

func fptr(v float64) *float64 { return &v }

// ID dari sistem lama tidak selalu UUID v4; validasi cukup bentuk UUID umum.
func TestRequestIDsAcceptAnyUUIDVersion(t *testing.T) {
	v := validator.New()
	v1ID := "6ba7b810-9dad-11d1-80b4-00c04fd430c8" // UUID v1

	if err := v.Struct(&CreateEvaluationRequest{ScheduleID: v1ID}); err != nil {
		t.Fatalf("schedule_id UUID non-v4 harus lolos, dapat %v", err)
	}
	if err := v.Struct(&UpsertScoreRequest{CriterionID: v1ID, Score: fptr(80)}); err != nil {
		t.Fatalf("criterion_id UUID non-v4 harus lolos, dapat %v", err)
	}

	if err := v.Struct(&CreateEvaluationRequest{ScheduleID: "bukan-uuid"}); err == nil {
		t.Fatal("schedule_id bukan UUID harus ditolak")
	}
	if err := v.Struct(&UpsertScoreRequest{CriterionID: v1ID, Score: nil}); err == nil {
		t.Fatal("score kosong harus ditolak")
	}
}
