package services

import (
	"context"
	"fmt"
	"time"

	"github.com/charbel291291291/election2026/internal/common"
	sc "github.com/charbel291291291/election2026/internal/server/config"
	"github.com/charbel291291291/election2026/internal/server/models"
	"github.com/charbel291291291/election2026/internal/server/repositories/reports"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var validCategories = map[string]bool{
	"vote_count": true,
	"violation":  true,
	"survey":     true,
	"logistics":  true,
}

var validStatuses = map[string]bool{
	"pending":  true,
	"verified": true,
	"rejected": true,
}

type ReportService struct {
	reports reports.Repository
	config  *sc.Config
}

func NewReportService(repo reports.Repository, cfg *sc.Config) *ReportService {
	return &ReportService{reports: repo, config: cfg}
}

// Submit stores a report. Organization and author are always taken from the
// authenticated agent, never from the submitted payload, and the write is
// an upsert keyed by the client-assigned id so resubmission after an
// interrupted sync cannot duplicate a report.
//
// Malformed reports map to common.ErrValidation, which the transport layer
// surfaces as a terminal rejection.
func (s *ReportService) Submit(ctx context.Context, agent *models.Agent, report *models.Report) error {
	if report.ID == "" {
		return fmt.Errorf("%w: missing report id", common.ErrValidation)
	}
	if !validCategories[report.Category] {
		return fmt.Errorf("%w: unknown category %q", common.ErrValidation, report.Category)
	}
	if report.Status == "" {
		report.Status = "pending"
	}
	if !validStatuses[report.Status] {
		return fmt.Errorf("%w: unknown status %q", common.ErrValidation, report.Status)
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now().UTC()
	}

	report.OrganizationID = agent.OrganizationID
	report.AuthorID = agent.ID

	if err := s.reports.Upsert(ctx, report); err != nil {
		return common.ErrInternal
	}
	return nil
}

// List returns the reports of the given organization, newest first.
func (s *ReportService) List(ctx context.Context, orgID string) ([]models.Report, error) {
	result, err := s.reports.ListByOrg(ctx, orgID)
	if err != nil {
		return nil, common.ErrInternal
	}
	return result, nil
}

func randomStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("reports/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *ReportService) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	})

	return s3.NewPresignClient(client), nil
}

// GetPresignedPutUrl returns a fresh storage key and a presigned PUT URL
// the client can upload one photo attachment to.
func (s *ReportService) GetPresignedPutUrl(ctx context.Context) (string, string, error) {
	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", "", err
	}

	bucket := s.config.S3Bucket
	key := randomStorageKey()

	req, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", "", err
	}

	return key, req.URL, nil
}
