package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"pharmavia_back_end/internal/database"
	"pharmavia_back_end/internal/utils"
)

const (
	// Décroissance exponentielle du score de popularité
	PopularityDecay = 0.95

	popularityKey    = "products:popular"
	popularityWindow = time.Minute
)

// DecayedScore calcule le nouveau score après une vue : old×0.95 + 1.
// Les produits consultés récemment dominent, les anciens s'estompent.
func DecayedScore(old float64) float64 {
	return old*PopularityDecay + 1
}

// popularityRedis couvre les commandes Redis dont le recorder a besoin ;
// *redis.Client le satisfait
type popularityRedis interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	ZScore(ctx context.Context, key, member string) *redis.FloatCmd
	ZAdd(ctx context.Context, key string, members ...redis.Z) *redis.IntCmd
}

// PopularityRecorder incrémente les scores de popularité, protégé par une
// fenêtre glissante (IP, produit) d'une mise à jour par minute
type PopularityRecorder struct {
	RDB popularityRedis
}

func (r *PopularityRecorder) Record(ctx context.Context, ip, productID string) error {
	limiterKey := fmt.Sprintf("popview:%s:%s", ip, productID)
	allowed, err := r.RDB.SetNX(ctx, limiterKey, 1, popularityWindow).Result()
	if err != nil {
		// Limiteur injoignable : on continue sans protection plutôt que de bloquer
		log.Printf("⚠️ Rate limiter popularité indisponible: %v", err)
	} else if !allowed {
		// Équivalent 429, ignoré en silence
		return nil
	}

	old, err := r.RDB.ZScore(ctx, popularityKey, productID).Result()
	if err != nil && err != redis.Nil {
		return err
	}

	return r.RDB.ZAdd(ctx, popularityKey, redis.Z{
		Score:  DecayedScore(old),
		Member: productID,
	}).Err()
}

// RecordProductView incrémente le score de popularité d'un produit.
// Entièrement best-effort : la fiche produit ne doit jamais échouer ici.
func RecordProductView(ip, productID string) {
	utils.RunBestEffort("popularité "+productID, func() error {
		rec := PopularityRecorder{RDB: database.Redis}
		return rec.Record(context.Background(), ip, productID)
	})
}

// TopProducts retourne les ids des produits les plus consultés
func TopProducts(ctx context.Context, limit int64) ([]string, error) {
	if limit <= 0 {
		limit = 10
	}
	return database.Redis.ZRevRange(ctx, popularityKey, 0, limit-1).Result()
}
