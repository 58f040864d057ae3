package utils

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
)

// Uploader pushes category icons and provider documents to an S3-compatible
// object store. Credentials come from config, never from the binary.
type Uploader struct {
	client   *s3.S3
	bucket   string
	endpoint string
}

func NewUploader(endpoint, region, bucket, accessKey, secretKey string) (*Uploader, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(region),
		Endpoint:    aws.String(endpoint),
		Credentials: credentials.NewStaticCredentials(accessKey, secretKey, ""),
	})
	if err != nil {
		return nil, err
	}
	return &Uploader{
		client:   s3.New(sess),
		bucket:   bucket,
		endpoint: endpoint,
	}, nil
}

// UploadFile stores the payload under folder/<uuid><ext> and returns the
// public URL. The original file name only contributes its extension.
func (u *Uploader) UploadFile(file []byte, fileName, folder, contentType string) (string, error) {
	key := fmt.Sprintf("%s/%s%s", folder, uuid.NewString(), filepath.Ext(fileName))

	_, err := u.client.PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(file),
		ContentLength: aws.Int64(int64(len(file))),
		ContentType:   aws.String(contentType),
		ACL:           aws.String("public-read"),
	})
	if err != nil {
		return "", fmt.Errorf("unable to upload file to S3: %v", err)
	}

	return fmt.Sprintf("%s/%s/%s", u.endpoint, u.bucket, key), nil
}
