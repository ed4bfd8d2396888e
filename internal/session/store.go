package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/unirideapp/uniride-api/internal/cache"
	"github.com/unirideapp/uniride-api/internal/httperr"
	"github.com/unirideapp/uniride-api/internal/models"
)

// TTL alineado con la expiración del token.
const sessionTTL = 24 * time.Hour

const keyPrefix = "session:"

// Store persiste la foto del principal autenticado (el usuario sin su
// hash) bajo un id de sesión. La copia es un snapshot del login: las
// mutaciones posteriores del perfil no la refrescan.
type Store struct {
	cache *cache.Redis
}

func NewStore(c *cache.Redis) *Store {
	return &Store{cache: c}
}

func (s *Store) Create(ctx context.Context, principal *models.User) string {
	sid := uuid.NewString()
	s.cache.Set(ctx, keyPrefix+sid, principal, sessionTTL)
	return sid
}

func (s *Store) Get(ctx context.Context, sid string) (*models.User, error) {
	var principal models.User
	if !s.cache.Get(ctx, keyPrefix+sid, &principal) {
		return nil, httperr.ErrBusiness("no_session")
	}
	return &principal, nil
}

func (s *Store) Exists(ctx context.Context, sid string) bool {
	return s.cache.Exists(ctx, keyPrefix+sid)
}

// Delete cierra la sesión; es incondicional, sin error si no existía.
func (s *Store) Delete(ctx context.Context, sid string) {
	s.cache.Del(ctx, keyPrefix+sid)
}
