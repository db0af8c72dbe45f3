package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/educagestor/educagestor/internal/common"
	sc "github.com/educagestor/educagestor/internal/server/config"
	"github.com/educagestor/educagestor/internal/server/models"
	"github.com/educagestor/educagestor/internal/server/repositories/repomanager"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

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

// MaterialUpload is the response to an upload request: the created metadata
// row plus a presigned PUT URL the client uploads the bytes to.
type MaterialUpload struct {
	Material *models.Material
	PutURL   string
}

// MaterialService stores course material metadata in the database and the
// bytes in S3-compatible object storage, handing out presigned URLs so
// uploads and downloads bypass the API server.
type MaterialService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
}

func NewMaterialService(db *sql.DB, m repomanager.RepositoryManager, cfg *sc.Config) *MaterialService {
	return &MaterialService{db: db, repomanager: m, config: cfg}
}

func materialStorageKey(courseID string) string {
	d := time.Now()
	return fmt.Sprintf("courses/%s/%d/%d/%v", courseID, d.Year(), d.Month(), uuid.New())
}

func (s *MaterialService) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,     // MINIO_ROOT_USER
			s.config.S3RootPassword, // MINIO_ROOT_PASSWORD
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	})

	return newS3PresignClient(client), nil
}

// Upload registers material metadata for a course and returns a presigned
// PUT URL valid for 15 minutes.
func (s *MaterialService) Upload(ctx context.Context, courseID, title, contentType, uploadedBy string) (*MaterialUpload, error) {
	if title == "" {
		return nil, common.ErrorValidation
	}
	if _, err := s.repomanager.Courses(s.db).GetByID(ctx, courseID); err != nil {
		return nil, err
	}

	presignClient, err := s.getPresignClient()
	if err != nil {
		return nil, common.ErrorInternal
	}

	bucket := s.config.S3Bucket
	key := materialStorageKey(courseID)

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return nil, common.ErrorInternal
	}

	material, err := s.repomanager.Materials(s.db).Create(ctx, &models.Material{
		CourseID:    courseID,
		Title:       title,
		StorageKey:  key,
		ContentType: contentType,
		UploadedBy:  uploadedBy,
	})
	if err != nil {
		return nil, err
	}

	return &MaterialUpload{Material: material, PutURL: req.URL}, nil
}

// DownloadURL returns a presigned GET URL for the material's bytes.
func (s *MaterialService) DownloadURL(ctx context.Context, id string) (string, error) {
	material, err := s.repomanager.Materials(s.db).GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", common.ErrorInternal
	}

	bucket := s.config.S3Bucket

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &material.StorageKey,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", common.ErrorInternal
	}

	return req.URL, nil
}

func (s *MaterialService) ListByCourse(ctx context.Context, courseID string) ([]*models.Material, error) {
	return s.repomanager.Materials(s.db).ListByCourse(ctx, courseID)
}

func (s *MaterialService) Delete(ctx context.Context, id string) error {
	return s.repomanager.Materials(s.db).Delete(ctx, id)
}
