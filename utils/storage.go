package utils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/treenow/treenowbackend/config"
	"google.golang.org/api/option"
)

// MaxImagesPerUpload bounds a single upload request.
const MaxImagesPerUpload = 4

var ErrStorageDisabled = errors.New("image storage is not configured")

// ImageStore persists uploaded catalog images and returns their public URL.
type ImageStore interface {
	Upload(ctx context.Context, objectName, contentType string, body io.Reader) (string, error)
	Delete(ctx context.Context, objectName string) error
}

// NewImageStore picks the backend named by cfg.Driver. An empty driver
// yields ErrStorageDisabled.
func NewImageStore(ctx context.Context, cfg config.StorageConfig) (ImageStore, error) {
	switch cfg.Driver {
	case "r2":
		return NewR2Store(ctx, cfg)
	case "gcs":
		return NewGCSStore(ctx, cfg)
	default:
		return nil, ErrStorageDisabled
	}
}

// R2Store talks to Cloudflare R2 through the S3 API.
type R2Store struct {
	S3           *s3.Client
	Bucket       string
	PublicDomain string
}

func NewR2Store(ctx context.Context, cfg config.StorageConfig) (*R2Store, error) {
	if cfg.R2Bucket == "" || cfg.R2AccessKeyID == "" || cfg.R2SecretKey == "" || cfg.R2Endpoint == "" {
		return nil, fmt.Errorf("missing R2 env vars (R2_BUCKET, R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY, R2_ENDPOINT)")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.R2AccessKeyID, cfg.R2SecretKey, ""),
		),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("r2 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.R2Endpoint)
		o.UsePathStyle = true // required for R2
	})

	return &R2Store{S3: client, Bucket: cfg.R2Bucket, PublicDomain: strings.TrimRight(cfg.R2PublicDomain, "/")}, nil
}

func (r *R2Store) Upload(ctx context.Context, objectName, contentType string, body io.Reader) (string, error) {
	_, err := r.S3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(r.Bucket),
		Key:          aws.String(objectName),
		Body:         body,
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=86400"),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", objectName, err)
	}
	return fmt.Sprintf("%s/%s/%s", r.PublicDomain, r.Bucket, objectName), nil
}

func (r *R2Store) Delete(ctx context.Context, objectName string) error {
	_, err := r.S3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(r.Bucket),
		Key:    aws.String(objectName),
	})
	return err
}

// GCSStore writes to a Google Cloud Storage bucket.
type GCSStore struct {
	Client *storage.Client
	Bucket string
}

func NewGCSStore(ctx context.Context, cfg config.StorageConfig) (*GCSStore, error) {
	if cfg.GCSBucket == "" {
		return nil, fmt.Errorf("missing GCS_BUCKET env var")
	}
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithAuthCredentialsFile(option.ServiceAccount, cfg.CredentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage.NewClient: %w", err)
	}
	return &GCSStore{Client: client, Bucket: cfg.GCSBucket}, nil
}

func (g *GCSStore) Upload(ctx context.Context, objectName, contentType string, body io.Reader) (string, error) {
	w := g.Client.Bucket(g.Bucket).Object(objectName).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, body); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("upload copy: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("upload close: %w", err)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", g.Bucket, objectName), nil
}

func (g *GCSStore) Delete(ctx context.Context, objectName string) error {
	return g.Client.Bucket(g.Bucket).Object(objectName).Delete(ctx)
}

// UploadImages validates and stores files under folder/<slug>/, returning
// their public URLs in order. Already uploaded objects are removed when a
// later file fails.
func UploadImages(
	ctx context.Context,
	images ImageStore,
	v *FileValidator,
	folder string,
	name string,
	files []*multipart.FileHeader,
) ([]string, error) {
	if len(files) < 1 || len(files) > MaxImagesPerUpload {
		return nil, ValidationError(fmt.Sprintf("images must be 1 to %d", MaxImagesPerUpload))
	}

	slug := GenerateSlug(name)
	if slug == "" {
		slug = "untitled"
	}

	urls := make([]string, 0, len(files))
	uploaded := make([]string, 0, len(files))
	cleanup := func() {
		for _, obj := range uploaded {
			_ = images.Delete(ctx, obj)
		}
	}

	for _, fh := range files {
		ct, err := v.ValidateFile(fh)
		if err != nil {
			cleanup()
			return nil, ValidationError(err.Error())
		}
		ext := strings.ToLower(filepath.Ext(fh.Filename))
		objectName := fmt.Sprintf("%s/%s/%d-%s%s", folder, slug, time.Now().UTC().Unix(), uuid.New().String(), ext)

		f, err := fh.Open()
		if err != nil {
			cleanup()
			return nil, fmt.Errorf("open file: %w", err)
		}
		url, err := images.Upload(ctx, objectName, ct, f)
		_ = f.Close()
		if err != nil {
			cleanup()
			return nil, err
		}
		uploaded = append(uploaded, objectName)
		urls = append(urls, url)
	}
	return urls, nil
}

type FileValidator struct {
	allowedExt  map[string]bool
	allowedMime map[string]bool
	maxSize     int64
}

func NewImageValidator(maxSizeMB int) *FileValidator {
	if maxSizeMB <= 0 {
		maxSizeMB = 5
	}
	return &FileValidator{
		allowedExt: map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true},
		allowedMime: map[string]bool{
			"image/jpeg": true,
			"image/png":  true,
			"image/webp": true,
			"image/gif":  true,
		},
		maxSize: int64(maxSizeMB) << 20,
	}
}

// ValidateFile checks size, extension and the sniffed content type, and
// returns the content type to store the object with.
func (v *FileValidator) ValidateFile(fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader.Size > v.maxSize {
		return "", fmt.Errorf("file too large (max %d MB)", v.maxSize>>20)
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !v.allowedExt[ext] {
		return "", fmt.Errorf("invalid file extension")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read file header")
	}

	detectedMime := strings.ToLower(http.DetectContentType(buffer[:n]))
	if !v.allowedMime[detectedMime] {
		return "", fmt.Errorf("invalid file type")
	}
	if byExt := mime.TypeByExtension(ext); byExt != "" && !strings.HasPrefix(byExt, "image/") {
		return "", fmt.Errorf("invalid file type")
	}
	return detectedMime, nil
}
