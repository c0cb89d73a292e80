// file: internals/features/defense/evaluations/service/extras.go
package service

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
)

/* =========================
   Ekstraksi nilai per-anggota dari blob extras (payload gaya lama)

   Bentuk payload lama tidak seragam. Strategi dicoba berurutan:
     1) array-of-objects di key umum (member_scores, members, ...)
     2) object-map ber-key member id di key yang sama
     3) scan heuristik key top-level yang berbentuk identifier
   Ekstraksi tidak pernah error: bentuk asing → hasil kosong.
   ========================= */

// ExtractedScore: hasil ekstraksi satu anggota.
type ExtractedScore struct {
	MemberID string   `json:"member_id"`
	Score    *float64 `json:"score,omitempty"`
	Comment  *string  `json:"comment,omitempty"`
}

var memberContainerKeys = []string{
	"member_scores", "memberScores",
	"members",
	"individual_scores", "individualScores",
}

var memberIDKeys = []string{"member_id", "memberId", "student_id", "studentId", "nim", "id"}
var scoreKeys = []string{"score", "skor", "nilai", "value", "total_score", "total"}
var commentKeys = []string{"comment", "komentar", "catatan", "note", "notes", "remark"}

var idLikePattern = regexp.MustCompile(`^([0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}|\d{6,})$`)

type extractStrategy struct {
	Name string
	Run  func(doc map[string]any) ([]ExtractedScore, bool)
}

func extractStrategies() []extractStrategy {
	return []extractStrategy{
		{Name: "ArrayField", Run: extractArrayField},
		{Name: "MapField", Run: extractMapField},
		{Name: "HeuristicIDScan", Run: extractHeuristicIDScan},
	}
}

// ExtractMemberScores mencoba semua strategi berurutan. Tidak pernah error.
func ExtractMemberScores(raw []byte) []ExtractedScore {
	if len(raw) == 0 {
		return nil
	}
	var doc map[string]any
	if err := sonic.Unmarshal(raw, &doc); err != nil {
		return nil
	}
	for _, st := range extractStrategies() {
		if out, ok := st.Run(doc); ok {
			return out
		}
	}
	return nil
}

/* =========================
   Strategi
   ========================= */

// (1) array-of-objects: {"member_scores": [{"member_id": "...", "score": 80}, ...]}
func extractArrayField(doc map[string]any) ([]ExtractedScore, bool) {
	for _, key := range memberContainerKeys {
		arr, ok := doc[key].([]any)
		if !ok {
			continue
		}
		out := []ExtractedScore{}
		for _, entry := range arr {
			m, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			id := firstStringValue(m, memberIDKeys)
			if id == "" {
				continue
			}
			score, comment := pickScoreComment(m)
			out = append(out, ExtractedScore{MemberID: id, Score: score, Comment: comment})
		}
		return out, true
	}
	return nil, false
}

// (2) object-map: {"member_scores": {"<member_id>": 80, "<member_id>": {"score": 75}}}
func extractMapField(doc map[string]any) ([]ExtractedScore, bool) {
	for _, key := range memberContainerKeys {
		m, ok := doc[key].(map[string]any)
		if !ok {
			continue
		}
		out := []ExtractedScore{}
		for _, id := range sortedKeys(m) {
			score, comment := pickScoreComment(m[id])
			out = append(out, ExtractedScore{MemberID: id, Score: score, Comment: comment})
		}
		return out, true
	}
	return nil, false
}

// (3) heuristik: key top-level yang berbentuk identifier (UUID atau NIM numerik)
func extractHeuristicIDScan(doc map[string]any) ([]ExtractedScore, bool) {
	out := []ExtractedScore{}
	for _, key := range sortedKeys(doc) {
		if !idLikePattern.MatchString(key) {
			continue
		}
		score, comment := pickScoreComment(doc[key])
		if score == nil && comment == nil {
			continue
		}
		out = append(out, ExtractedScore{MemberID: key, Score: score, Comment: comment})
	}
	if len(out) == 0 {
		return nil, false
	}
	return out, true
}

/* =========================
   Picker
   ========================= */

// pickScoreComment menerima angka telanjang, string angka, atau objek dengan
// salah satu alias field score/comment yang dikenal.
func pickScoreComment(v any) (*float64, *string) {
	switch t := v.(type) {
	case float64:
		if isFinite(t) {
			return &t, nil
		}
		return nil, nil
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil && isFinite(f) {
			return &f, nil
		}
		return nil, nil
	case map[string]any:
		var score *float64
		for _, k := range scoreKeys {
			raw, ok := t[k]
			if !ok {
				continue
			}
			if s, _ := pickScoreComment(raw); s != nil {
				score = s
				break
			}
		}
		var comment *string
		for _, k := range commentKeys {
			if s, ok := t[k].(string); ok && strings.TrimSpace(s) != "" {
				c := s
				comment = &c
				break
			}
		}
		return score, comment
	}
	return nil, nil
}

func firstStringValue(m map[string]any, keys []string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
