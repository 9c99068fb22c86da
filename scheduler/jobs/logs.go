package jobs

import (
	"context"
	"time"

	"clashfinder/pkg/logger"
)

// LogUploader sends the log file to the bucket.
type LogUploader interface {
	UploadToS3Bucket(ctx context.Context, objectKey string) error
	CleanFile()
}

// UploadLogs sends the scheduler log of the day to the bucket and starts a new file.
func UploadLogs(uploader LogUploader) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := uploader.UploadToS3Bucket(ctx, logger.ObjectKey("scheduler", time.Now())); err != nil {
		return err
	}

	uploader.CleanFile()
	return nil
}
