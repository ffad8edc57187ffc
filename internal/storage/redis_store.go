package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ambi-feed/internal/model"

	"github.com/redis/go-redis/v9"
)

// RedisStore is the durable home of the account registry, the content
// pool, and per-day wave snapshots. Values are JSON; the pool is a sorted
// set scored by resonance so global top-N reads stay cheap.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func accountKey(id string) string {
	return fmt.Sprintf("feed:account:%s", id)
}

const accountsSetKey = "feed:accounts"

func postKey(id string) string {
	return fmt.Sprintf("feed:post:%s", id)
}

const poolZKey = "feed:pool"

func wavesKey(accountID, day string) string {
	return fmt.Sprintf("feed:waves:%s:%s", accountID, day)
}

func builtKey(accountID, day string) string {
	return fmt.Sprintf("feed:built:%s:%s", accountID, day)
}

// SaveAccount stores an account and registers its id for sweeps.
func (s *RedisStore) SaveAccount(ctx context.Context, acc model.Account) error {
	if err := acc.Validate(); err != nil {
		return err
	}
	b, err := json.Marshal(acc)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, accountKey(acc.ID), b, 0).Err(); err != nil {
		return err
	}
	return s.rdb.SAdd(ctx, accountsSetKey, acc.ID).Err()
}

// GetAccount loads one account by id.
func (s *RedisStore) GetAccount(ctx context.Context, id string) (model.Account, error) {
	b, err := s.rdb.Get(ctx, accountKey(id)).Bytes()
	if err == redis.Nil {
		return model.Account{}, fmt.Errorf("account not found: %s", id)
	}
	if err != nil {
		return model.Account{}, err
	}
	var acc model.Account
	if err := json.Unmarshal(b, &acc); err != nil {
		return model.Account{}, err
	}
	return acc, nil
}

// ListAccountIDs returns all registered account ids.
func (s *RedisStore) ListAccountIDs(ctx context.Context) ([]string, error) {
	return s.rdb.SMembers(ctx, accountsSetKey).Result()
}

// DeleteAccount removes an account and unregisters its id.
func (s *RedisStore) DeleteAccount(ctx context.Context, id string) error {
	if err := s.rdb.Del(ctx, accountKey(id)).Err(); err != nil {
		return err
	}
	return s.rdb.SRem(ctx, accountsSetKey, id).Err()
}

const activeAccountKey = "feed:active_account"

// ActiveAccountID returns the selected account id, empty when unset.
func (s *RedisStore) ActiveAccountID(ctx context.Context) (string, error) {
	id, err := s.rdb.Get(ctx, activeAccountKey).Result()
	if err == redis.Nil {
		return "", nil
	}
	return id, err
}

// SetActiveAccountID stores the selection. An empty id clears it.
func (s *RedisStore) SetActiveAccountID(ctx context.Context, id string) error {
	if id == "" {
		return s.rdb.Del(ctx, activeAccountKey).Err()
	}
	return s.rdb.Set(ctx, activeAccountKey, id, 0).Err()
}

// SavePost stores/updates a content item and scores it into the pool by
// its current resonance.
func (s *RedisStore) SavePost(ctx context.Context, item model.ContentItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	b, err := json.Marshal(item)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, postKey(item.ID), b, 0).Err(); err != nil {
		return err
	}
	z := redis.Z{Score: item.Attention.ResonanceScore, Member: item.ID}
	return s.rdb.ZAdd(ctx, poolZKey, z).Err()
}

// GetPost loads one content item by id.
func (s *RedisStore) GetPost(ctx context.Context, id string) (model.ContentItem, error) {
	b, err := s.rdb.Get(ctx, postKey(id)).Bytes()
	if err == redis.Nil {
		return model.ContentItem{}, fmt.Errorf("post not found: %s", id)
	}
	if err != nil {
		return model.ContentItem{}, err
	}
	var it model.ContentItem
	if err := json.Unmarshal(b, &it); err != nil {
		return model.ContentItem{}, err
	}
	return it, nil
}

// TopPosts retrieves up to n items from the pool, highest resonance first.
func (s *RedisStore) TopPosts(ctx context.Context, n int) ([]model.ContentItem, error) {
	ids, err := s.rdb.ZRevRange(ctx, poolZKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, err
	}
	out := make([]model.ContentItem, 0, len(ids))
	for _, id := range ids {
		it, err := s.GetPost(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, nil
}

// WaveSnapshot is one cached ranking pass for an account. Snapshots are a
// convenience cache; waves themselves are recomputed from scratch on every
// ranking pass.
type WaveSnapshot struct {
	AccountID string         `json:"account_id"`
	Day       string         `json:"day"`
	BuiltAt   time.Time      `json:"built_at"`
	Intensity float64        `json:"intensity"`
	Waves     []SnapshotWave `json:"waves"`
}

type SnapshotWave struct {
	Label       string         `json:"label"`
	Description string         `json:"description"`
	Items       []SnapshotItem `json:"items"`
}

type SnapshotItem struct {
	Post model.ContentItem `json:"post"`
	Hint string            `json:"hint"`
}

// SaveWaves stores a wave snapshot with an expiry.
func (s *RedisStore) SaveWaves(ctx context.Context, snap WaveSnapshot, ttl time.Duration) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, wavesKey(snap.AccountID, snap.Day), b, ttl).Err()
}

// GetWaves loads the snapshot for an account and day, if present.
func (s *RedisStore) GetWaves(ctx context.Context, accountID, day string) (WaveSnapshot, bool, error) {
	b, err := s.rdb.Get(ctx, wavesKey(accountID, day)).Bytes()
	if err == redis.Nil {
		return WaveSnapshot{}, false, nil
	}
	if err != nil {
		return WaveSnapshot{}, false, err
	}
	var snap WaveSnapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return WaveSnapshot{}, false, err
	}
	return snap, true, nil
}

// IsBuilt reports whether a snapshot was already built for the day.
func (s *RedisStore) IsBuilt(ctx context.Context, accountID, day string) (bool, error) {
	res, err := s.rdb.Get(ctx, builtKey(accountID, day)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return res == "1", nil
}

// MarkBuilt records that the day's snapshot exists.
func (s *RedisStore) MarkBuilt(ctx context.Context, accountID, day string, ttl time.Duration) error {
	return s.rdb.Set(ctx, builtKey(accountID, day), "1", ttl).Err()
}
