// File: internal/service/profile.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"ecarry-photography/internal/cache"
	"ecarry-photography/internal/database"
	"ecarry-photography/internal/events"
	"ecarry-photography/internal/model"
	"ecarry-photography/internal/store"
	"ecarry-photography/internal/worker"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

const (
	DefaultProfileCacheTTL = 10 * time.Minute
	publishTimeout         = 5 * time.Second
)

var (
	getProfileByUserID = store.GetProfileByUserID
	createProfile      = store.CreateProfile
	updateProfile      = store.UpdateProfile
)

func profileCacheKey(userID string) string {
	return "profile:" + userID
}

// ProfileService 個人資料的讀寫；Postgres 為準，Redis 只做讀取快取
type ProfileService struct {
	db        database.DB
	cache     cache.Cache
	publisher events.Publisher
	pool      worker.Pool
	clock     clockwork.Clock
	ttl       time.Duration
}

func NewProfileService(db database.DB, c cache.Cache, pub events.Publisher, pool worker.Pool, clock clockwork.Clock, ttl time.Duration) *ProfileService {
	if ttl <= 0 {
		ttl = DefaultProfileCacheTTL
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &ProfileService{db: db, cache: c, publisher: pub, pool: pool, clock: clock, ttl: ttl}
}

// GetProfile 取得目前使用者的 profile，第一次存取時以 token 資料建立
func (s *ProfileService) GetProfile(ctx context.Context, claims *CustomClaims) (*model.Profile, error) {
	userID := claims.UserID()
	if p, ok := s.cached(ctx, userID); ok {
		return p, nil
	}
	p, err := s.ensureProfile(ctx, claims)
	if err != nil {
		return nil, err
	}
	s.fill(ctx, p)
	return p, nil
}

// UpdateProfile 套用部分更新，以新資料覆寫快取並在背景發布 profile.updated
func (s *ProfileService) UpdateProfile(ctx context.Context, claims *CustomClaims, u store.ProfileUpdate) (*model.Profile, error) {
	if _, err := s.ensureProfile(ctx, claims); err != nil {
		return nil, err
	}
	p, err := updateProfile(ctx, s.db, claims.UserID(), u)
	if err != nil {
		return nil, err
	}
	s.replace(ctx, p)
	s.publishUpdated(p)

	log.Info().Str("user_id", p.UserID).Str("profile_id", p.ID.String()).Msg("profile updated")
	return p, nil
}

func (s *ProfileService) ensureProfile(ctx context.Context, claims *CustomClaims) (*model.Profile, error) {
	p, err := getProfileByUserID(ctx, s.db, claims.UserID())
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	return createProfile(ctx, s.db, &model.Profile{
		UserID:   claims.UserID(),
		Name:     claims.Name,
		Email:    claims.Email,
		ImageURL: claims.ImageURL,
	})
}

func (s *ProfileService) cached(ctx context.Context, userID string) (*model.Profile, bool) {
	raw, err := s.cache.Get(ctx, profileCacheKey(userID)).Bytes()
	if err != nil {
		if !cache.IsMiss(err) {
			log.Warn().Err(err).Str("user_id", userID).Msg("profile cache read failed")
		}
		return nil, false
	}
	var p model.Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("profile cache entry corrupted")
		return nil, false
	}
	return &p, true
}

// fill 只在 key 不存在時寫入，避免較晚完成的讀取蓋掉更新後的資料
func (s *ProfileService) fill(ctx context.Context, p *model.Profile) {
	data, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := s.cache.SetNX(ctx, profileCacheKey(p.UserID), data, s.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("user_id", p.UserID).Msg("profile cache write failed")
	}
}

// replace 以更新後的資料覆寫快取；寫入失敗時改為刪除
func (s *ProfileService) replace(ctx context.Context, p *model.Profile) {
	key := profileCacheKey(p.UserID)
	data, err := json.Marshal(p)
	if err == nil {
		err = s.cache.Set(ctx, key, data, s.ttl).Err()
	}
	if err == nil {
		return
	}
	log.Warn().Err(err).Str("user_id", p.UserID).Msg("profile cache write failed")
	if err := s.cache.Del(ctx, key).Err(); err != nil {
		log.Warn().Err(err).Str("user_id", p.UserID).Msg("profile cache invalidation failed")
	}
}

func (s *ProfileService) publishUpdated(p *model.Profile) {
	evt := events.ProfileUpdated{
		ID:         uuid.New(),
		ProfileID:  p.ID,
		UserID:     p.UserID,
		Name:       p.Name,
		ImageURL:   p.ImageURL,
		OccurredAt: s.clock.Now().UTC(),
	}
	ok := s.pool.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := events.PublishJSON(ctx, s.publisher, events.SubjectProfileUpdated, evt); err != nil {
			log.Error().Err(err).Str("user_id", evt.UserID).Msg("failed to emit profile.updated event")
		}
	})
	if !ok {
		log.Warn().Str("user_id", evt.UserID).Msg("worker pool full or stopped, profile.updated dropped")
	}
}
