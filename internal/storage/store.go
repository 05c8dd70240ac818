// Package storage persists uploaded images on disk or in S3.
package storage

import (
	"context"
	"fmt"

	"github.com/lenarsag/foodgram/backend/config"
	"github.com/lenarsag/foodgram/backend/internal/logging"
)

// Folders used for uploads.
const (
	RecipeFolder = "recipes"
	AvatarFolder = "avatars"
)

// ImageStore saves images and returns the reference clients use to fetch them.
type ImageStore interface {
	Save(ctx context.Context, img *Image, folder string) (string, error)
	Delete(ctx context.Context, ref string) error
}

// New builds the store selected by STORAGE_BACKEND.
func New(ctx context.Context, cfg *config.Config) (ImageStore, error) {
	switch cfg.StorageBackend {
	case config.StorageLocal:
		return NewLocalStore(cfg.MediaDir, cfg.MediaURL), nil
	case config.StorageS3:
		s3Cfg, err := cfg.NewS3Config(ctx)
		if err != nil {
			return nil, err
		}
		if err := s3Cfg.SetupBucketPolicy(ctx); err != nil {
			logging.Warn().Err(err).Str("bucket", s3Cfg.BucketName).Msg("could not apply public read policy")
		}
		return NewS3Store(s3Cfg), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
