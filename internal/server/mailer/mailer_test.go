package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	in   *s3.PutObjectInput
	body []byte
	err  error
}

func (f *fakePutter) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	if in.Body != nil {
		f.body, _ = io.ReadAll(in.Body)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestSigninLinkMessage(t *testing.T) {
	m := SigninLinkMessage("a@b.co", "Ann", "http://x/signin/t")
	assert.Equal(t, "a@b.co", m.To)
	assert.Equal(t, "http://x/signin/t", m.Link)
	assert.True(t, strings.HasPrefix(m.Body, "Hi Ann,"))
	assert.Contains(t, m.Body, "http://x/signin/t")

	m = SigninLinkMessage("a@b.co", "", "l")
	assert.True(t, strings.HasPrefix(m.Body, "Hi,"))
}

func TestLogMailer_Send(t *testing.T) {
	require.NoError(t, NewLogMailer(nil).Send(context.Background(), Message{To: "a@b.co"}))
}

func TestS3Outbox_Send(t *testing.T) {
	oldNow := now
	now = func() time.Time { return time.Date(2026, 3, 4, 23, 0, 0, 0, time.UTC) }
	defer func() { now = oldNow }()

	f := &fakePutter{}
	o := &S3Outbox{client: f, bucket: "mail"}

	msg := SigninLinkMessage("a@b.co", "Ann", "http://x/signin/t")
	require.NoError(t, o.Send(context.Background(), msg))

	require.NotNil(t, f.in)
	assert.Equal(t, "mail", aws.ToString(f.in.Bucket))
	assert.True(t, strings.HasPrefix(aws.ToString(f.in.Key), "outbox/2026-03-04/"))
	assert.True(t, strings.HasSuffix(aws.ToString(f.in.Key), ".json"))
	assert.Equal(t, "application/json", aws.ToString(f.in.ContentType))

	var got Message
	require.NoError(t, json.Unmarshal(f.body, &got))
	assert.Equal(t, msg, got)
}

func TestS3Outbox_SendError(t *testing.T) {
	boom := errors.New("boom")
	o := &S3Outbox{client: &fakePutter{err: boom}, bucket: "mail"}

	err := o.Send(context.Background(), Message{To: "a@b.co"})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestNewS3Outbox_UsesSeams(t *testing.T) {
	oldLoad, oldNew := loadDefaultAWSConfig, newS3ClientFromConfig
	defer func() { loadDefaultAWSConfig, newS3ClientFromConfig = oldLoad, oldNew }()

	var gotOpts s3.Options
	f := &fakePutter{}
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*config.LoadOptions) error) (aws.Config, error) {
		var lo config.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		assert.Equal(t, "eu-west-1", lo.Region)
		return aws.Config{Region: lo.Region}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) putObjectAPI {
		for _, fn := range optFns {
			fn(&gotOpts)
		}
		return f
	}

	o, err := NewS3Outbox(context.Background(), S3Config{
		Bucket: "mail", Region: "eu-west-1", RootUser: "u", RootPassword: "p",
		BaseEndpoint: "http://minio:9000",
	})
	require.NoError(t, err)
	assert.Equal(t, "http://minio:9000", aws.ToString(gotOpts.BaseEndpoint))
	assert.True(t, gotOpts.UsePathStyle)

	require.NoError(t, o.Send(context.Background(), Message{To: "a@b.co"}))
	assert.NotNil(t, f.in)
}

func TestNewS3Outbox_ConfigError(t *testing.T) {
	oldLoad := loadDefaultAWSConfig
	defer func() { loadDefaultAWSConfig = oldLoad }()

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*config.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no config")
	}
	_, err := NewS3Outbox(context.Background(), S3Config{Bucket: "mail"})
	require.Error(t, err)
}
