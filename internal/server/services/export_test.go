package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/surveychain/internal/common"
	"github.com/dmitrijs2005/surveychain/internal/logging"
	sc "github.com/dmitrijs2005/surveychain/internal/server/config"
	"github.com/dmitrijs2005/surveychain/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExportService(t *testing.T, rm *fakeRepoManager) *ExportService {
	t.Helper()
	db, _ := newSQLMockDB(t)
	t.Cleanup(func() { _ = db.Close() })
	cfg := &sc.Config{
		S3Region:                   "us-east-1",
		S3RootUser:                 "minioadmin",
		S3RootPassword:             "minioadmin",
		S3BaseEndpoint:             "http://127.0.0.1:9000",
		S3Bucket:                   "exports",
		ExportLinkValidityDuration: 5 * time.Minute,
	}
	return NewExportService(NewSurveyService(db, rm), NewLedgerService(db, rm, logging.Discard()), cfg, logging.Discard())
}

// stubStorage replaces the AWS seams for the duration of a test and records
// what was uploaded.
func stubStorage(t *testing.T) (*s3.PutObjectInput, *[]byte) {
	t.Helper()

	origLoad, origNew, origPre := loadDefaultAWSConfig, newS3ClientFromConfig, newS3PresignClient
	origPut, origGet, origNow := putObject, presignGetObject, now
	t.Cleanup(func() {
		loadDefaultAWSConfig, newS3ClientFromConfig, newS3PresignClient = origLoad, origNew, origPre
		putObject, presignGetObject, now = origPut, origGet, origNow
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		require.Equal(t, "us-east-1", lo.Region)
		return aws.Config{Region: lo.Region}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		var o s3.Options
		for _, fn := range optFns {
			fn(&o)
		}
		require.Equal(t, "http://127.0.0.1:9000", aws.ToString(o.BaseEndpoint))
		require.True(t, o.UsePathStyle)
		return &s3.Client{}
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient { return &s3.PresignClient{} }
	now = func() time.Time { return time.Date(2025, time.March, 7, 10, 0, 0, 0, time.UTC) }

	uploaded := &s3.PutObjectInput{}
	var data []byte
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		*uploaded = *in
		b, err := io.ReadAll(in.Body)
		require.NoError(t, err)
		data = b
		return &s3.PutObjectOutput{}, nil
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		var po s3.PresignOptions
		for _, fn := range optFns {
			fn(&po)
		}
		require.Equal(t, 5*time.Minute, po.Expires)
		return &v4.PresignedHTTPRequest{URL: "https://minio/" + aws.ToString(in.Key)}, nil
	}
	return uploaded, &data
}

func TestExport_UploadsCSVAndPresigns(t *testing.T) {
	uploaded, body := stubStorage(t)

	rm := newFakeStore()
	rm.r.stored = []*models.Response{
		{ID: 1, ParticipantEmail: "p1@example.com", SurveyID: 1, Content: digestYes, Description: "with, comma"},
		{ID: 2, ParticipantEmail: "p2@example.com", SurveyID: 1, Content: digestYes},
	}

	res, err := newExportService(t, rm).Export(context.Background(), 1)
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^exports/surveys/1/2025/03/07/[0-9a-f-]{36}\.csv$`), res.Key)
	assert.Equal(t, "https://minio/"+res.Key, res.URL)
	assert.Equal(t, 2, res.Rows)
	assert.Equal(t, "exports", aws.ToString(uploaded.Bucket))
	assert.Equal(t, "text/csv", aws.ToString(uploaded.ContentType))

	records, err := csv.NewReader(bytes.NewReader(*body)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, csvHeader, records[0])
	assert.Equal(t, []string{"1", "1", "p1@example.com", digestYes, "with, comma"}, records[1])
}

func TestExport_MissingSurvey(t *testing.T) {
	stubStorage(t)

	_, err := newExportService(t, newFakeStore()).Export(context.Background(), 77)
	require.ErrorIs(t, err, common.ErrSurveyNotFound)
}

func TestExport_UploadError(t *testing.T) {
	stubStorage(t)
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return nil, errors.New("bucket gone")
	}

	_, err := newExportService(t, newFakeStore()).Export(context.Background(), 1)
	require.ErrorContains(t, err, "error uploading export: bucket gone")
}

func TestExport_ConfigError(t *testing.T) {
	stubStorage(t)
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no creds")
	}

	_, err := newExportService(t, newFakeStore()).Export(context.Background(), 1)
	require.ErrorContains(t, err, "error configuring storage: no creds")
}

func TestGetExportStorageKey(t *testing.T) {
	k1 := GetExportStorageKey(12, time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC))
	k2 := GetExportStorageKey(12, time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC))
	assert.Regexp(t, `^exports/surveys/12/2024/12/01/.+\.csv$`, k1)
	assert.NotEqual(t, k1, k2)
}
