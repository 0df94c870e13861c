package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const transcriptKeyPrefix = "transcripts/"

// TranscriptArchiver stores raw transcripts and returns the object key.
type TranscriptArchiver interface {
	Archive(ctx context.Context, transcript string) (string, error)
}

// ArchiveConfig points at Supabase Storage's S3-compatible endpoint.
type ArchiveConfig struct {
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string

	// DisableSSL is only meant for local fakes.
	DisableSSL bool
}

type TranscriptArchive struct {
	s3     *s3.S3
	bucket string
	now    func() time.Time
	logger *zap.Logger
}

func NewTranscriptArchive(cfg ArchiveConfig, logger *zap.Logger) (*TranscriptArchive, error) {
	var missing []string
	for _, setting := range []struct{ name, value string }{
		{"SUPABASE_REGION", cfg.Region},
		{"SUPABASE_S3_ENDPOINT", cfg.Endpoint},
		{"SUPABASE_ACCESS_KEY", cfg.AccessKey},
		{"SUPABASE_SECRET_KEY", cfg.SecretKey},
		{"SUPABASE_BUCKET", cfg.Bucket},
	} {
		if setting.value == "" {
			missing = append(missing, setting.name)
		}
	}
	if len(missing) > 0 {
		return nil, &ConfigurationError{Component: "transcript archive", Missing: missing}
	}

	sess, err := session.NewSession(&aws.Config{
		Region:           aws.String(cfg.Region),
		Endpoint:         aws.String(cfg.Endpoint),
		DisableSSL:       aws.Bool(cfg.DisableSSL),
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		S3ForcePathStyle: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TranscriptArchive{
		s3:     s3.New(sess),
		bucket: cfg.Bucket,
		now:    time.Now,
		logger: logger.Named("archive"),
	}, nil
}

func (a *TranscriptArchive) Archive(ctx context.Context, transcript string) (string, error) {
	key := fmt.Sprintf("%s%s-%s.txt", transcriptKeyPrefix, a.now().UTC().Format("20060102T150405Z"), uuid.NewString())

	_, err := a.s3.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        strings.NewReader(transcript),
		ContentType: aws.String("text/plain; charset=utf-8"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload transcript to S3: %w", err)
	}
	a.logger.Info("archived transcript", zap.String("key", key), zap.Int("bytes", len(transcript)))
	return key, nil
}
