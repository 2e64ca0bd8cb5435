package aws_s3

import (
	"context"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

type AWSS3 struct {
	bucket   string
	uploader *s3manager.Uploader
}

// UploadFile stores body under key and returns the public object URL.
func (a *AWSS3) UploadFile(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	result, err := a.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	return result.Location, nil
}

func NewAWSS3(bucket, region string) (*AWSS3, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, err
	}
	return &AWSS3{
		bucket:   bucket,
		uploader: s3manager.NewUploader(sess),
	}, nil
}
