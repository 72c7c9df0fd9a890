package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"

	"github.com/bizreel/directory-api/internal/core/domain"
	"github.com/bizreel/directory-api/internal/core/ports"
)

const bucketWaitTimeout = 30 * time.Second

// S3Options configures an S3-compatible bucket such as MinIO.
type S3Options struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	// PublicURL prefixes object keys in stored paths. Defaults to the
	// path-style bucket URL.
	PublicURL string
}

func (o S3Options) endpointURL() string {
	if strings.Contains(o.Endpoint, "://") {
		return o.Endpoint
	}
	if o.UseSSL {
		return "https://" + o.Endpoint
	}
	return "http://" + o.Endpoint
}

// S3Store uploads files with the multipart upload manager.
type S3Store struct {
	client    *s3.Client
	uploader  *manager.Uploader
	bucket    string
	publicURL string
	log       zerolog.Logger
}

// NewS3Store connects to the bucket, creating it when it does not exist yet.
func NewS3Store(ctx context.Context, opts S3Options, log zerolog.Logger) (*S3Store, error) {
	if opts.Endpoint == "" || opts.Bucket == "" {
		return nil, errors.New("storage: s3 endpoint and bucket are required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: load aws config: %w", err)
	}

	endpoint := opts.endpointURL()
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	publicURL := strings.TrimRight(opts.PublicURL, "/")
	if publicURL == "" {
		publicURL = strings.TrimRight(endpoint, "/") + "/" + opts.Bucket
	}

	s := &S3Store{
		client:    client,
		uploader:  manager.NewUploader(client),
		bucket:    opts.Bucket,
		publicURL: publicURL,
		log:       log,
	}
	if err := s.ensureBucket(ctx, opts.Region); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *S3Store) ensureBucket(ctx context.Context, region string) error {
	headCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := s.client.HeadBucket(headCtx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)}); err == nil {
		return nil
	}

	s.log.Info().Str("bucket", s.bucket).Msg("bucket not found, creating")
	input := &s3.CreateBucketInput{Bucket: aws.String(s.bucket)}
	if region != "" && region != "us-east-1" {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(region),
		}
	}
	if _, err := s.client.CreateBucket(ctx, input); err != nil {
		return fmt.Errorf("storage: create bucket %s: %w", s.bucket, err)
	}

	waiter := s3.NewBucketExistsWaiter(s.client)
	if err := waiter.Wait(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)}, bucketWaitTimeout); err != nil {
		return fmt.Errorf("storage: wait for bucket %s: %w", s.bucket, err)
	}
	return nil
}

func (s *S3Store) Save(ctx context.Context, kind domain.UploadKind, meta ports.FileMeta, r io.Reader) (*domain.StoredFile, error) {
	name := storedName(meta.OriginalName)
	key := string(kind) + "/" + name
	body := &countingReader{r: r}

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if meta.MIMEType != "" {
		input.ContentType = aws.String(meta.MIMEType)
	}
	if _, err := s.uploader.Upload(ctx, input); err != nil {
		return nil, fmt.Errorf("storage: upload %s: %w", key, err)
	}

	return &domain.StoredFile{
		Kind:         kind,
		Filename:     name,
		OriginalName: meta.OriginalName,
		Path:         s.publicURL + "/" + key,
		Size:         body.n,
		MIMEType:     meta.MIMEType,
	}, nil
}

// Remove deletes the object behind a stored path. S3 treats deleting a
// missing key as success.
func (s *S3Store) Remove(ctx context.Context, publicPath string) error {
	key, err := s.objectKey(publicPath)
	if err != nil {
		return err
	}
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("storage: delete %s: %w", key, err)
	}
	return nil
}

func (s *S3Store) objectKey(publicPath string) (string, error) {
	key, ok := strings.CutPrefix(publicPath, s.publicURL+"/")
	if !ok || key == "" || strings.Contains(key, "..") {
		return "", fmt.Errorf("storage: %q is not a stored object", publicPath)
	}
	return key, nil
}
