package services

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/minio/minio-go/v7"

	"pharmavia_back_end/internal/database"
)

// UploadProductImage envoie un packshot dans le bucket et retourne son chemin
// objet ("products/<id>/<filename>")
func UploadProductImage(ctx context.Context, productID, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	bucket := os.Getenv("MINIO_BUCKET")
	objectName := fmt.Sprintf("products/%s/%s", productID, filename)

	_, err := database.MinIO.PutObject(ctx, bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}

	return objectName, nil
}

// DeleteProductImage supprime un packshot du bucket
func DeleteProductImage(ctx context.Context, objectName string) error {
	bucket := os.Getenv("MINIO_BUCKET")
	return database.MinIO.RemoveObject(ctx, bucket, objectName, minio.RemoveObjectOptions{})
}
