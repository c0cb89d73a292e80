// file: internals/features/users/users/service/resolver_service.go
package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"

	"github.com/google/uuid"

	model "sidangku_backend/internals/features/users/users/model"
)

var ErrUserNotFound = errors.New("user tidak ditemukan")

// UserStore: kebutuhan minimal resolver terhadap storage user.
type UserStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.UserModel, error)
}

// identifier UUID boleh tertanam di string panjang (mis. "Penguji: 9b2f...-... (ext)")
var uuidPattern = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)

// ExtractCandidateID menarik pola UUID dari teks bebas.
// Kalau tidak ketemu, kembalikan string mentah yang sudah di-trim (fallback).
func ExtractCandidateID(raw string) string {
	if m := uuidPattern.FindString(raw); m != "" {
		return strings.ToLower(m)
	}
	return strings.TrimSpace(raw)
}

// ResolverCache: cache eksplisit per batch request (bukan state global).
// Buat satu per operasi batch, buang setelah selesai.
type ResolverCache struct {
	mu    sync.RWMutex
	byKey map[string]*model.UserModel
}

func NewResolverCache() *ResolverCache {
	return &ResolverCache{byKey: make(map[string]*model.UserModel)}
}

func (rc *ResolverCache) get(key string) (*model.UserModel, bool) {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	u, ok := rc.byKey[key]
	return u, ok
}

func (rc *ResolverCache) put(key string, u *model.UserModel) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.byKey[key] = u
}

// ResolverService: Identity Resolver: id opaque → record user kanonik.
type ResolverService struct {
	Users UserStore
}

func NewResolverService(users UserStore) *ResolverService {
	return &ResolverService{Users: users}
}

// Resolve: lookup murni tanpa cache.
func (s *ResolverService) Resolve(ctx context.Context, candidate string) (*model.UserModel, error) {
	key := ExtractCandidateID(candidate)
	id, err := uuid.Parse(key)
	if err != nil {
		// bukan UUID sama sekali → tidak mungkin resolve
		return nil, ErrUserNotFound
	}
	u, err := s.Users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// ResolveWithCache: versi ber-cache untuk operasi batch (assign banyak staff sekaligus).
func (s *ResolverService) ResolveWithCache(ctx context.Context, cache *ResolverCache, candidate string) (*model.UserModel, error) {
	key := ExtractCandidateID(candidate)
	if cache != nil {
		if u, ok := cache.get(key); ok {
			if u == nil {
				return nil, ErrUserNotFound
			}
			return u, nil
		}
	}
	u, err := s.Resolve(ctx, key)
	if cache != nil && (err == nil || errors.Is(err, ErrUserNotFound)) {
		cache.put(key, u) // simpan juga negative hit supaya id rusak tidak di-query ulang
	}
	return u, err
}
