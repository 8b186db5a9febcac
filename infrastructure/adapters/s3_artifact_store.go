package adapters

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/TomBelfast/AiPodcast/application/ports/outbound"
	"github.com/TomBelfast/AiPodcast/config"
	"github.com/TomBelfast/AiPodcast/domain"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/rs/zerolog/log"
)

const signedURLValidity = 7 * 24 * time.Hour

type s3ArtifactStore struct {
	s3Svc  *s3.S3
	target *config.StorageTarget
}

// NewS3ArtifactStore builds the optional artifact mirror from an already
// resolved StorageTarget. Construction only fails on session setup; every
// provider fault afterwards is returned from Upload as a non-fatal error.
func NewS3ArtifactStore(target *config.StorageTarget) (outbound.RemoteArtifactStorePort, error) {
	sess, err := session.NewSession(&aws.Config{
		Endpoint:         aws.String(target.BaseURL()),
		Region:           aws.String("us-east-1"),
		Credentials:      credentials.NewStaticCredentials(target.AccessKey, target.SecretKey, ""),
		S3ForcePathStyle: aws.Bool(true),
		DisableSSL:       aws.Bool(!target.UseTLS),
	})
	if err != nil {
		return nil, err
	}

	return &s3ArtifactStore{
		s3Svc:  s3.New(sess),
		target: target,
	}, nil
}

func (s *s3ArtifactStore) Upload(ctx context.Context, audio []byte, jobID string, title string) (string, error) {
	if err := s.ensureBucket(ctx); err != nil {
		return "", fmt.Errorf("failed to ensure bucket %q: %w", s.target.Bucket, err)
	}
	s.applyPublicReadPolicy(ctx)

	key := domain.ArtifactFilename(title, jobID)

	putInput := &s3.PutObjectInput{
		Bucket:        aws.String(s.target.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(audio),
		ContentLength: aws.Int64(int64(len(audio))),
		ContentType:   aws.String("audio/mpeg"),
	}

	if _, err := s.s3Svc.PutObjectWithContext(ctx, putInput); err != nil {
		log.Error().
			Err(err).
			Str("bucket", s.target.Bucket).
			Str("key", key).
			Msg("Failed to upload artifact to object storage")
		return "", fmt.Errorf("failed to upload %q: %w", key, err)
	}

	url := s.issueURL(ctx, key)
	log.Debug().
		Str("url", url).
		Msg("Successfully uploaded artifact to object storage")

	return url, nil
}

// ensureBucket creates the target bucket on first use. A bucket that already
// exists, including one created by a concurrent upload, is not an error.
func (s *s3ArtifactStore) ensureBucket(ctx context.Context) error {
	_, err := s.s3Svc.HeadBucketWithContext(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.target.Bucket),
	})
	if err == nil {
		return nil
	}

	_, err = s.s3Svc.CreateBucketWithContext(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.target.Bucket),
	})
	if err != nil {
		var awsErr awserr.Error
		if errors.As(err, &awsErr) {
			switch awsErr.Code() {
			case s3.ErrCodeBucketAlreadyExists, s3.ErrCodeBucketAlreadyOwnedByYou:
				return nil
			}
		}
		return err
	}

	return nil
}

// applyPublicReadPolicy is best-effort: refusal to accept the policy must
// never block the upload itself.
func (s *s3ArtifactStore) applyPublicReadPolicy(ctx context.Context) {
	_, err := s.s3Svc.PutBucketPolicyWithContext(ctx, &s3.PutBucketPolicyInput{
		Bucket: aws.String(s.target.Bucket),
		Policy: aws.String(publicReadPolicy(s.target.Bucket)),
	})
	if err != nil {
		log.Warn().
			Err(err).
			Str("bucket", s.target.Bucket).
			Msg("Could not set public-read policy on bucket")
	}
}

// issueURL fails toward access: a confirmed-public bucket gets a direct URL,
// anything else, including a failed policy read, gets a seven-day signed one.
func (s *s3ArtifactStore) issueURL(ctx context.Context, key string) string {
	if s.bucketIsPublic(ctx) {
		return fmt.Sprintf("%s/%s/%s", s.target.BaseURL(), s.target.Bucket, key)
	}

	req, _ := s.s3Svc.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(s.target.Bucket),
		Key:    aws.String(key),
	})
	req.SetContext(ctx)
	signed, err := req.Presign(signedURLValidity)
	if err != nil {
		log.Warn().
			Err(err).
			Str("key", key).
			Msg("Failed to presign artifact URL, falling back to direct URL")
		return fmt.Sprintf("%s/%s/%s", s.target.BaseURL(), s.target.Bucket, key)
	}
	return signed
}

func (s *s3ArtifactStore) bucketIsPublic(ctx context.Context) bool {
	out, err := s.s3Svc.GetBucketPolicyWithContext(ctx, &s3.GetBucketPolicyInput{
		Bucket: aws.String(s.target.Bucket),
	})
	if err != nil || out.Policy == nil {
		return false
	}
	policy := *out.Policy
	return strings.Contains(policy, "s3:GetObject") && strings.Contains(policy, `"Principal": "*"`)
}

func publicReadPolicy(bucket string) string {
	return fmt.Sprintf(`{
  "Version": "2012-10-17",
  "Statement": [
    {
      "Effect": "Allow",
      "Principal": "*",
      "Action": ["s3:GetObject"],
      "Resource": ["arn:aws:s3:::%s/*"]
    }
  ]
}`, bucket)
}
