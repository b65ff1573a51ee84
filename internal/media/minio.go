// Package media est le pass-through vers l'hébergeur d'images (MinIO) :
// le backend ne stocke jamais les fichiers lui-même.
package media

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

type Store struct {
	client *minio.Client
	bucket string
}

func NewStore(client *minio.Client, bucket string) *Store {
	return &Store{client: client, bucket: bucket}
}

// EnsureBucket crée le bucket au premier démarrage si besoin.
func (s *Store) EnsureBucket(ctx context.Context) error {
	if s.client == nil {
		return fmt.Errorf("MinIO non initialisé")
	}
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if !exists {
		return s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
	}
	return nil
}

// Upload pousse le fichier tel quel et renvoie son URL publique.
// Le nom d'objet est préfixé d'un UUID pour éviter les collisions entre
// visuels homonymes.
func (s *Store) Upload(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("MinIO non initialisé")
	}

	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	objectName := path.Join("products", uuid.NewString()+"-"+file.Filename)
	_, err = s.client.PutObject(ctx, s.bucket, objectName, f, file.Size,
		minio.PutObjectOptions{ContentType: file.Header.Get("Content-Type")})
	if err != nil {
		return "", err
	}

	scheme := "http"
	if os.Getenv("MINIO_USE_SSL") == "true" {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, os.Getenv("MINIO_ENDPOINT"), s.bucket, objectName), nil
}
