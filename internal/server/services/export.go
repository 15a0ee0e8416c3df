package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/surveychain/internal/logging"
	sc "github.com/dmitrijs2005/surveychain/internal/server/config"
	"github.com/dmitrijs2005/surveychain/internal/server/models"
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

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}

	now = time.Now
)

// ExportResult points at an uploaded export.
type ExportResult struct {
	Key  string
	URL  string
	Rows int
}

// ExportService writes a survey's responses as CSV to the S3-compatible
// export bucket and returns a time-limited download link.
type ExportService struct {
	surveys *SurveyService
	ledger  *LedgerService
	config  *sc.Config
	logger  logging.Logger
}

func NewExportService(surveys *SurveyService, ledger *LedgerService, config *sc.Config, l logging.Logger) *ExportService {
	return &ExportService{
		surveys: surveys,
		ledger:  ledger,
		config:  config,
		logger:  l.With("module", "export"),
	}
}

// GetExportStorageKey returns exports/surveys/<id>/<yyyy>/<mm>/<dd>/<uuid>.csv.
func GetExportStorageKey(surveyID int64, d time.Time) string {
	return fmt.Sprintf("exports/surveys/%d/%04d/%02d/%02d/%v.csv", surveyID, d.Year(), int(d.Month()), d.Day(), uuid.New())
}

func (s *ExportService) getClients() (*s3.Client, *s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return client, newS3PresignClient(client), nil
}

// Export uploads the responses of surveyID. A missing survey yields
// common.ErrSurveyNotFound.
func (s *ExportService) Export(ctx context.Context, surveyID int64) (*ExportResult, error) {
	if _, err := s.surveys.Get(ctx, surveyID); err != nil {
		return nil, err
	}

	responses, err := s.ledger.ResponsesFor(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	body, err := encodeResponsesCSV(responses)
	if err != nil {
		return nil, fmt.Errorf("error encoding export: %w", err)
	}

	client, presignClient, err := s.getClients()
	if err != nil {
		return nil, fmt.Errorf("error configuring storage: %w", err)
	}

	bucket := s.config.S3Bucket
	key := GetExportStorageKey(surveyID, now().UTC())

	if _, err := putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(body),
		ContentType: aws.String("text/csv"),
	}); err != nil {
		return nil, fmt.Errorf("error uploading export: %w", err)
	}

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.config.ExportLinkValidityDuration))
	if err != nil {
		return nil, fmt.Errorf("error presigning export: %w", err)
	}

	s.logger.Info(ctx, "responses exported", "survey_id", surveyID, "key", key, "rows", len(responses))
	return &ExportResult{Key: key, URL: req.URL, Rows: len(responses)}, nil
}

var csvHeader = []string{"id", "survey_id", "participant_email", "response", "description"}

func encodeResponsesCSV(responses []*models.Response) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, r := range responses {
		rec := []string{
			strconv.FormatInt(r.ID, 10),
			strconv.FormatInt(r.SurveyID, 10),
			r.ParticipantEmail,
			r.Content,
			r.Description,
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
