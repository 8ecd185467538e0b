package keywords

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/luciechendesign/industry-news-scanner/internal/model"
)

// Store persists keyword statistics wholesale. Load-mutate-save is not
// transactional; concurrent runs can lose updates (last writer wins).
type Store interface {
	Load() (map[string]model.KeywordStats, error)
	Save(stats map[string]model.KeywordStats) error
}

type statsDocument struct {
	LastUpdated string               `json:"last_updated"`
	Keywords    []model.KeywordStats `json:"keywords"`
}

// sortedKeywords orders records descending by effectiveness so the persisted
// store stays operator-readable.
func sortedKeywords(stats map[string]model.KeywordStats) []model.KeywordStats {
	records := make([]model.KeywordStats, 0, len(stats))
	for _, s := range stats {
		s.EffectivenessScore = math.Round(s.EffectivenessScore*1000) / 1000
		records = append(records, s)
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].EffectivenessScore > records[j].EffectivenessScore
	})
	return records
}

func decodeDocument(data []byte) (map[string]model.KeywordStats, error) {
	var doc statsDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	stats := make(map[string]model.KeywordStats, len(doc.Keywords))
	for _, k := range doc.Keywords {
		stats[k.Keyword] = k
	}
	return stats, nil
}

func encodeDocument(stats map[string]model.KeywordStats) ([]byte, error) {
	doc := statsDocument{
		LastUpdated: time.Now().Format(time.RFC3339),
		Keywords:    sortedKeywords(stats),
	}
	return json.MarshalIndent(doc, "", "  ")
}

// FileStore keeps keyword statistics in a JSON file.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() (map[string]model.KeywordStats, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]model.KeywordStats{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load keyword stats: %w", err)
	}

	stats, err := decodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("decode keyword stats: %w", err)
	}
	return stats, nil
}

func (s *FileStore) Save(stats map[string]model.KeywordStats) error {
	data, err := encodeDocument(stats)
	if err != nil {
		return fmt.Errorf("encode keyword stats: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("save keyword stats: %w", err)
	}
	return nil
}

const redisStatsKey = "newsscanner:keywords"

// RedisStore keeps the same JSON document under a single Redis key, for
// deployments where the working directory is not durable.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Load() (map[string]model.KeywordStats, error) {
	data, err := s.client.Get(context.Background(), redisStatsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return map[string]model.KeywordStats{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load keyword stats: %w", err)
	}

	stats, err := decodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("decode keyword stats: %w", err)
	}
	return stats, nil
}

func (s *RedisStore) Save(stats map[string]model.KeywordStats) error {
	data, err := encodeDocument(stats)
	if err != nil {
		return fmt.Errorf("encode keyword stats: %w", err)
	}
	if err := s.client.Set(context.Background(), redisStatsKey, data, 0).Err(); err != nil {
		return fmt.Errorf("save keyword stats: %w", err)
	}
	return nil
}
