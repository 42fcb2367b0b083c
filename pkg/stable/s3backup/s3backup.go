// Package s3backup copies the raw pages of regions to an S3-compatible bucket
// and back. One object per region holds its pages concatenated.
package s3backup

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/bookstore-service/pkg/stable"
)

type Config struct {
	Bucket    string `envconfig:"BACKUP_S3_BUCKET"`
	Region    string `envconfig:"BACKUP_S3_REGION" default:"us-east-1"`
	Endpoint  string `envconfig:"BACKUP_S3_ENDPOINT"`
	PathStyle bool   `envconfig:"BACKUP_S3_PATH_STYLE"`
	Prefix    string `envconfig:"BACKUP_S3_PREFIX" default:"bookstore"`
}

// Client is the part of *s3.Client the backup needs.
type Client interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type Backup struct {
	client Client
	cfg    Config
	log    *zap.Logger
}

func New(client Client, cfg Config, log *zap.Logger) *Backup {
	return &Backup{client: client, cfg: cfg, log: log.Named("backup")}
}

// NewClient builds an S3 client; credentials come from the default AWS chain.
func NewClient(ctx context.Context, cfg Config) (*s3.Client, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3 bucket required")
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
	if err != nil {
		return nil, errors.Wrap(err, "load aws config")
	}
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}

func (b *Backup) key(id stable.RegionID) string {
	return path.Join(b.cfg.Prefix, fmt.Sprintf("region-%03d.bin", id))
}

// Save uploads every listed region as currently persisted in the store.
func (b *Backup) Save(ctx context.Context, store stable.PageStore, ids ...stable.RegionID) error {
	for _, id := range ids {
		pages, err := store.Load(ctx, id)
		if err != nil {
			return errors.Wrapf(err, "load region %d", id)
		}
		body := bytes.Join(pages, nil)
		key := b.key(id)
		if _, err := b.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:        aws.String(b.cfg.Bucket),
			Key:           aws.String(key),
			Body:          bytes.NewReader(body),
			ContentLength: aws.Int64(int64(len(body))),
			ContentType:   aws.String("application/octet-stream"),
		}); err != nil {
			return errors.Wrapf(err, "put %s", key)
		}
		b.log.Info("region saved", zap.Uint8("region", uint8(id)), zap.Int("pages", len(pages)), zap.String("key", key))
	}
	return nil
}

var ErrRegionNotEmpty = errors.New("region already holds pages")

// Restore writes the backed up pages into the store. Every target region must
// be empty, and no server may hold the same medium open while it runs.
func (b *Backup) Restore(ctx context.Context, store stable.PageStore, ids ...stable.RegionID) error {
	for _, id := range ids {
		pages, err := store.Load(ctx, id)
		if err != nil {
			return errors.Wrapf(err, "load region %d", id)
		}
		if len(pages) > 0 {
			return errors.Wrapf(ErrRegionNotEmpty, "region %d has %d pages", id, len(pages))
		}
	}
	for _, id := range ids {
		key := b.key(id)
		out, err := b.client.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(b.cfg.Bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			return errors.Wrapf(err, "get %s", key)
		}
		body, err := io.ReadAll(out.Body)
		_ = out.Body.Close()
		if err != nil {
			return errors.Wrapf(err, "read %s", key)
		}
		if len(body)%stable.PageSize != 0 {
			return errors.Wrapf(stable.ErrCorrupted, "%s: %d bytes is not a whole number of pages", key, len(body))
		}
		pages := make([][]byte, 0, len(body)/stable.PageSize)
		for off := 0; off < len(body); off += stable.PageSize {
			pages = append(pages, body[off:off+stable.PageSize])
		}
		if len(pages) > 0 {
			if err := store.Store(ctx, id, 0, pages); err != nil {
				return errors.Wrapf(err, "store region %d", id)
			}
		}
		b.log.Info("region restored", zap.Uint8("region", uint8(id)), zap.Int("pages", len(pages)), zap.String("key", key))
	}
	return nil
}
