package services

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/yashrajoria/storefront/apperrors"
	"github.com/yashrajoria/storefront/models"
	"github.com/yashrajoria/storefront/repository"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const (
	defaultUploadExpiry = 900
	maxUploadExpiry     = 3600
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// Presigner is implemented by *s3.PresignClient.
type Presigner interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// ImageStorage locates the bucket product images are uploaded to.
type ImageStorage struct {
	Bucket           string
	Prefix           string
	Region           string
	CloudFrontDomain string
}

// ImageService hands out presigned S3 PUT URLs so admins can upload product
// images directly to the bucket.
type ImageService struct {
	presigner   Presigner
	storage     ImageStorage
	productRepo repository.ProductRepo
}

func NewImageService(p Presigner, storage ImageStorage, pr repository.ProductRepo) *ImageService {
	return &ImageService{presigner: p, storage: storage, productRepo: pr}
}

// NewS3Presigner builds a presign client from AWS config. A non-empty
// endpoint switches to path-style addressing for LocalStack.
func NewS3Presigner(cfg sdkaws.Config, endpoint string) *s3.PresignClient {
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = sdkaws.String(endpoint)
			o.UsePathStyle = true
		}
	})
	return s3.NewPresignClient(client)
}

// CreateUpload returns a presigned PUT for a new image of the given product.
func (s *ImageService) CreateUpload(ctx context.Context, productID string, req models.ImageUploadRequest) (*models.ImageUpload, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, repoErr(err, "Product not found", "Failed to generate presigned upload")
	}

	contentType := strings.ToLower(strings.TrimSpace(req.ContentType))
	if contentType == "" {
		contentType = "image/jpeg"
	}
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return nil, apperrors.Validation("Invalid content type. Allowed: image/gif, image/jpeg, image/jpg, image/png, image/webp")
	}

	expires := req.ExpiresIn
	if expires <= 0 {
		expires = defaultUploadExpiry
	}
	if expires > maxUploadExpiry {
		expires = maxUploadExpiry
	}

	key := s.objectKey(productID, req.Filename, ext)
	presigned, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      sdkaws.String(s.storage.Bucket),
		Key:         sdkaws.String(key),
		ContentType: sdkaws.String(contentType),
	}, func(o *s3.PresignOptions) {
		o.Expires = time.Duration(expires) * time.Second
	})
	if err != nil {
		return nil, apperrors.Internal("Failed to generate presigned upload", fmt.Errorf("failed to presign put object: %w", err))
	}

	headers := make(map[string]string)
	for k, v := range presigned.SignedHeader {
		if len(v) > 0 {
			headers[k] = v[0]
		}
	}

	return &models.ImageUpload{
		UploadURL: presigned.URL,
		Method:    "PUT",
		Key:       key,
		PublicURL: s.publicURL(key),
		Headers:   headers,
		ExpiresIn: expires,
	}, nil
}

func (s *ImageService) objectKey(productID, filename, ext string) string {
	base := strings.TrimSuffix(path.Base(strings.ReplaceAll(filename, "\\", "/")), path.Ext(filename))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ' || r == '.':
			return '-'
		}
		return -1
	}, base)
	if base == "" || base == "-" {
		base = "upload"
	}
	return fmt.Sprintf("%s%s/%s-%s%s", s.storage.Prefix, productID, uuid.NewString()[:8], base, ext)
}

func (s *ImageService) publicURL(key string) string {
	if s.storage.CloudFrontDomain != "" {
		return fmt.Sprintf("https://%s/%s", strings.TrimSuffix(s.storage.CloudFrontDomain, "/"), key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.storage.Bucket, s.storage.Region, key)
}
