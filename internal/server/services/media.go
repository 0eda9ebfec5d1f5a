package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	sc "github.com/ansuman15/salon-software-sub002/internal/server/config"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const presignTTL = 15 * time.Minute

// Upload kinds; each maps to a folder under the salon prefix.
const (
	MediaLogo    = "logo"
	MediaStaff   = "staff"
	MediaProduct = "product"
)

var imageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// MediaService hands out presigned S3 URLs so browsers upload images
// straight to object storage. Keys are confined to salons/<salonID>/.
type MediaService struct {
	config *sc.Config
}

func NewMediaService(config *sc.Config) *MediaService {
	return &MediaService{config: config}
}

// Upload is a presigned PUT the browser should use within ExpiresAt.
type Upload struct {
	Key       string
	URL       string
	ExpiresAt time.Time
}

func salonPrefix(salonID string) string {
	return "salons/" + salonID + "/"
}

func mediaKey(salonID, kind, ext string) string {
	return fmt.Sprintf("%s%s/%v%s", salonPrefix(salonID), kind, uuid.New(), ext)
}

func (s *MediaService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

// PresignUpload returns a PUT URL for a new image of the given kind.
func (s *MediaService) PresignUpload(ctx context.Context, salonID, kind, contentType string) (*Upload, error) {
	if err := oneOf("kind", kind, MediaLogo, MediaStaff, MediaProduct); err != nil {
		return nil, err
	}
	ext, ok := imageTypes[contentType]
	if !ok {
		return nil, invalid("contentType must be image/jpeg, image/png or image/webp")
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return nil, err
	}

	bucket := s.config.S3Bucket
	key := mediaKey(salonID, kind, ext)

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		ContentType: &contentType,
	}, s3.WithPresignExpires(presignTTL))
	if err != nil {
		return nil, err
	}

	return &Upload{Key: key, URL: req.URL, ExpiresAt: time.Now().Add(presignTTL)}, nil
}

// PresignDownload returns a GET URL for a key owned by the salon.
func (s *MediaService) PresignDownload(ctx context.Context, salonID, key string) (string, error) {
	if !strings.HasPrefix(key, salonPrefix(salonID)) || strings.Contains(key, "..") {
		return "", invalid("key does not belong to this salon")
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket
	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignTTL))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
