package logger

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	appConfig "clashfinder/pkg/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"
)

var ErrBucketNotConfigured = errors.New("log bucket is not configured")

// Logger writes structured lines to the console and to a temporary file that can be shipped to a bucket.
type Logger struct {
	mu       sync.Mutex
	logFile  *os.File
	filePath string
	log      zerolog.Logger
	bucket   appConfig.BucketConfiguration
}

// fileWriter serializes zerolog writes with the file truncation done after uploads.
type fileWriter struct {
	l *Logger
}

func (w fileWriter) Write(p []byte) (int, error) {
	w.l.mu.Lock()
	defer w.l.mu.Unlock()

	return w.l.logFile.Write(p)
}

// Create the log instance with a temporary file.
func CreateLogger(bucket appConfig.BucketConfiguration, level string) (*Logger, error) {
	f, err := os.CreateTemp("", "log-*.log")
	if err != nil {
		return nil, err
	}

	parsedLevel, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		parsedLevel = zerolog.InfoLevel
	}

	l := &Logger{
		logFile:  f,
		filePath: f.Name(),
		bucket:   bucket,
	}

	console := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.DateTime}
	l.log = zerolog.New(zerolog.MultiLevelWriter(console, fileWriter{l: l})).
		Level(parsedLevel).
		With().
		Timestamp().
		Logger()

	return l, nil
}

// NewNop returns a logger that discards everything, used on tests.
func NewNop() *Logger {
	return &Logger{log: zerolog.Nop()}
}

// NewWithWriter returns a logger writing JSON lines to w only.
func NewWithWriter(w io.Writer) *Logger {
	return &Logger{log: zerolog.New(w).With().Timestamp().Logger()}
}

// Log a simple info.
func (l *Logger) Infof(format string, args ...any) {
	l.log.Info().Msgf(format, args...)
}

// Log a warning.
func (l *Logger) Warnf(format string, args ...any) {
	l.log.Warn().Msgf(format, args...)
}

// Log a error.
func (l *Logger) Errorf(format string, args ...any) {
	l.log.Error().Msgf(format, args...)
}

// Log something only relevant while debugging.
func (l *Logger) Debugf(format string, args ...any) {
	l.log.Debug().Msgf(format, args...)
}

// Info starts a structured info event.
func (l *Logger) Info() *zerolog.Event {
	return l.log.Info()
}

// Warn starts a structured warning event.
func (l *Logger) Warn() *zerolog.Event {
	return l.log.Warn()
}

// Error starts a structured error event.
func (l *Logger) Error() *zerolog.Event {
	return l.log.Error()
}

// Write a empty line on the file.
func (l *Logger) EmptyLine() {
	if l.logFile == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.logFile.WriteString("\n")
}

// Clean the file contents.
func (l *Logger) CleanFile() {
	if l.logFile == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.cleanFile()
}

func (l *Logger) cleanFile() {
	l.logFile.Truncate(0)
	l.logFile.Seek(0, io.SeekStart)
}

// Close the log file and remove it from the disk.
func (l *Logger) Close() error {
	if l.logFile == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.logFile.Close(); err != nil {
		return err
	}
	return os.Remove(l.filePath)
}

// snapshot returns the current file contents and truncates it.
func (l *Logger) snapshot() ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.logFile.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind file: %w", err)
	}

	content, err := io.ReadAll(l.logFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read the log file: %w", err)
	}

	l.cleanFile()
	return content, nil
}

// Upload the log to a s3 bucket.
func (l *Logger) UploadToS3Bucket(ctx context.Context, objectKey string) error {
	if l.logFile == nil || !l.bucket.Enabled() {
		return ErrBucketNotConfigured
	}

	content, err := l.snapshot()
	if err != nil {
		return err
	}

	// Nothing was logged since the last upload.
	if len(content) == 0 {
		return nil
	}

	// Get the config.
	cfg := aws.Config{
		Region: l.bucket.Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(
				l.bucket.AccessKey,
				l.bucket.AccessSecret,
				"",
			),
		),
	}

	// Create the client.
	s3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if l.bucket.Endpoint != "" {
			o.BaseEndpoint = aws.String(l.bucket.Endpoint)
		}
	})

	// Run the put.
	_, err = s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(l.bucket.LogBucket),
		Key:    aws.String(objectKey),
		Body:   bytes.NewReader(content),
		ACL:    types.ObjectCannedACLPrivate,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s to S3 bucket: %w", objectKey, err)
	}

	return nil
}

// ObjectKey builds the bucket key for a service log.
func ObjectKey(service string, at time.Time) string {
	return fmt.Sprintf("%s/%s.log", service, at.UTC().Format("2006-01-02T15-04-05"))
}
