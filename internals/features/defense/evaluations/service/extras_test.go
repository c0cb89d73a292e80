// file: internals/features/defense/evaluations/service/extras_test.go
package service

import "testing"

func TestExtractMemberScores(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []ExtractedScore
	}{
		{
			name: "array of objects",
			raw:  `{"member_scores":[{"member_id":"2019001234","score":85,"comment":"bagus"},{"student_id":"2019005678","nilai":"70.5"}]}`,
			want: []ExtractedScore{
				{MemberID: "2019001234", Score: fptr(85), Comment: sptr("bagus")},
				{MemberID: "2019005678", Score: fptr(70.5)},
			},
		},
		{
			name: "object map angka telanjang dan objek",
			raw:  `{"members":{"2019001234":88,"2019005678":{"skor":64,"catatan":"revisi bab 3"}}}`,
			want: []ExtractedScore{
				{MemberID: "2019001234", Score: fptr(88)},
				{MemberID: "2019005678", Score: fptr(64), Comment: sptr("revisi bab 3")},
			},
		},
		{
			name: "heuristik key top-level mirip identifier",
			raw:  `{"note":"x","550e8400-e29b-41d4-a716-446655440000":{"score":77},"meta":1}`,
			want: []ExtractedScore{
				{MemberID: "550e8400-e29b-41d4-a716-446655440000", Score: fptr(77)},
			},
		},
		{
			name: "bentuk asing hasil kosong tanpa error",
			raw:  `{"foo":"bar","baz":[1,2,3]}`,
			want: nil,
		},
		{
			name: "json rusak hasil kosong",
			raw:  `{not json`,
			want: nil,
		},
		{
			name: "container ada tapi kosong tetap dianggap cocok",
			raw:  `{"member_scores":[]}`,
			want: []ExtractedScore{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractMemberScores([]byte(tc.raw))
			if len(got) != len(tc.want) {
				t.Fatalf("jumlah hasil = %d, mau %d (%+v)", len(got), len(tc.want), got)
			}
			for i := range tc.want {
				if got[i].MemberID != tc.want[i].MemberID {
					t.Errorf("[%d] MemberID = %q, mau %q", i, got[i].MemberID, tc.want[i].MemberID)
				}
				if !eqFloatPtr(got[i].Score, tc.want[i].Score) {
					t.Errorf("[%d] Score = %v, mau %v", i, deref(got[i].Score), deref(tc.want[i].Score))
				}
				if !eqStrPtr(got[i].Comment, tc.want[i].Comment) {
					t.Errorf("[%d] Comment mismatch", i)
				}
			}
		})
	}
}

func TestExtractStrategyOrder(t *testing.T) {
	// array menang atas map ketika dua bentuk hadir sekaligus
	raw := `{"member_scores":[{"member_id":"2019001234","score":90}],"members":{"2019009999":10}}`
	got := ExtractMemberScores([]byte(raw))
	if len(got) != 1 || got[0].MemberID != "2019001234" {
		t.Fatalf("strategi array harus menang, dapat %+v", got)
	}
}

func sptr(s string) *string { return &s }

func eqFloatPtr(a, b *float64) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || *a == *b
}

func eqStrPtr(a, b *string) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || *a == *b
}

func deref(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}
