package services

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"pharmavia_back_end/internal/database"
)

// GenerateSignedURL génère une URL signée temporaire pour un packshot.
// Accepte soit un chemin objet relatif, soit une URL complète héritée.
func GenerateSignedURL(ctx context.Context, objectPath string, duration time.Duration) (string, error) {
	bucket := os.Getenv("MINIO_BUCKET")

	// Nettoie une éventuelle URL complète pour ne garder que la clé objet
	prefix := fmt.Sprintf("http://%s/%s/", os.Getenv("MINIO_ENDPOINT"), bucket)
	key := strings.TrimPrefix(objectPath, prefix)

	presignedURL, err := database.MinIO.PresignedGetObject(ctx, bucket, key, duration, make(url.Values))
	if err != nil {
		return "", err
	}

	return presignedURL.String(), nil
}
