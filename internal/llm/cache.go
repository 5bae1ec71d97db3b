package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type redisCacher interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// CachedClient envuelve un CompletionClient y reutiliza respuestas exitosas
// para la misma pregunta. Si Redis falla se consulta al cliente envuelto.
type CachedClient struct {
	next   CompletionClient
	client redisCacher
	ttl    time.Duration
	prefix string
	logger *zap.Logger
}

// NewCachedClient devuelve next sin envolver si no hay cliente de Redis.
func NewCachedClient(next CompletionClient, client *redis.Client, namespace string, ttl time.Duration, logger *zap.Logger) CompletionClient {
	if client == nil {
		return next
	}
	return newCachedClient(next, client, namespace, ttl, logger)
}

func newCachedClient(next CompletionClient, client redisCacher, namespace string, ttl time.Duration, logger *zap.Logger) *CachedClient {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedClient{
		next:   next,
		client: client,
		ttl:    ttl,
		prefix: "chat:completion:" + namespace + ":",
		logger: logger,
	}
}

func (c *CachedClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	key := c.prefix + cacheKey(req)

	getCtx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	cached, err := c.client.Get(getCtx, key).Result()
	cancel()
	switch {
	case err == nil && cached != "":
		c.logger.Debug("completion cache hit", zap.String("key", key))
		return cached, nil
	case err != nil && !errors.Is(err, redis.Nil):
		c.logger.Warn("completion cache get failed", zap.Error(err))
	}

	text, err := c.next.Complete(ctx, req)
	if err != nil {
		return "", err
	}

	setCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	if err := c.client.Set(setCtx, key, text, c.ttl).Err(); err != nil {
		c.logger.Warn("completion cache set failed", zap.Error(err))
	}
	return text, nil
}

// cacheKey colapsa los espacios del mensaje; mayusculas y minusculas cuentan como preguntas distintas.
func cacheKey(req CompletionRequest) string {
	h := sha256.New()
	h.Write([]byte(req.Instructions))
	h.Write([]byte{0})
	h.Write([]byte(req.Acknowledgment))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(strings.Fields(req.Message), " ")))
	return hex.EncodeToString(h.Sum(nil))
}
