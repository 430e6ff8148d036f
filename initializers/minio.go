package initializers

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"gopkg.in/yaml.v3"
)

// MinioConfig holds poster storage settings.
type MinioConfig struct {
	Endpoint         string
	AccessKey        string
	SecretKey        string
	Bucket           string
	UseSSL           bool
	MaxSize          int64
	FileTypes        []string
	Expiry           time.Duration
	ExternalEndpoint string
	ExternalUseSSL   bool
}

var MinioClient *minio.Client
var ExternalMinioClient *minio.Client
var Conf MinioConfig

// uploadsConfigYAML defines optional YAML configuration for poster uploads.
// If present, it overrides environment variables for upload-related fields.
type uploadsConfigYAML struct {
	MaxFileSize        int64    `yaml:"max_file_size"`
	AllowedFileTypes   []string `yaml:"allowed_file_types"`
	PresignedURLExpiry int      `yaml:"presigned_url_expiry"` // seconds
}

func loadUploadsConfig() (*uploadsConfigYAML, error) {
	path := os.Getenv("UPLOADS_CONFIG_FILE")
	if strings.TrimSpace(path) == "" {
		path = "config/uploads.yaml"
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg uploadsConfigYAML
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// InitMinio connects to the object store holding event poster images and
// ensures the bucket exists.
func InitMinio() error {
	Conf = MinioConfig{
		Endpoint:         os.Getenv("MINIO_ENDPOINT"),
		AccessKey:        os.Getenv("MINIO_ACCESS_KEY"),
		SecretKey:        os.Getenv("MINIO_SECRET_KEY"),
		Bucket:           os.Getenv("MINIO_BUCKET"),
		UseSSL:           parseBool(os.Getenv("MINIO_USE_SSL")),
		MaxSize:          parseInt64(os.Getenv("MAX_FILE_SIZE"), 5242880),
		FileTypes:        parseFileTypes(os.Getenv("ALLOWED_FILE_TYPES")),
		Expiry:           parseExpiry(os.Getenv("PRESIGNED_URL_EXPIRY")),
		ExternalEndpoint: os.Getenv("MINIO_EXTERNAL_ENDPOINT"),
		// ExternalUseSSL controls the scheme of presigned URLs served to
		// browsers. If MINIO_EXTERNAL_USE_SSL is unset it is inferred from the
		// external endpoint's scheme, falling back to MINIO_USE_SSL.
		ExternalUseSSL: func() bool {
			raw := strings.TrimSpace(os.Getenv("MINIO_EXTERNAL_ENDPOINT"))
			if v := strings.TrimSpace(os.Getenv("MINIO_EXTERNAL_USE_SSL")); v != "" {
				return parseBool(v)
			}
			if strings.HasPrefix(raw, "https://") {
				return true
			}
			if strings.HasPrefix(raw, "http://") {
				return false
			}
			return parseBool(os.Getenv("MINIO_USE_SSL"))
		}(),
	}

	if yamlCfg, err := loadUploadsConfig(); err == nil && yamlCfg != nil {
		if yamlCfg.MaxFileSize > 0 {
			Conf.MaxSize = yamlCfg.MaxFileSize
		}
		if len(yamlCfg.AllowedFileTypes) > 0 {
			Conf.FileTypes = yamlCfg.AllowedFileTypes
		}
		if yamlCfg.PresignedURLExpiry > 0 {
			Conf.Expiry = time.Duration(yamlCfg.PresignedURLExpiry) * time.Second
		}
	}

	client, err := minio.New(Conf.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(Conf.AccessKey, Conf.SecretKey, ""),
		Secure: Conf.UseSSL,
	})
	if err != nil {
		return err
	}
	MinioClient = client
	exists, err := client.BucketExists(context.Background(), Conf.Bucket)
	if err != nil {
		return err
	}
	if !exists {
		if err := client.MakeBucket(context.Background(), Conf.Bucket, minio.MakeBucketOptions{}); err != nil {
			return err
		}
	}

	// Presigned URLs handed to browsers may need a different endpoint than the
	// one the server talks to. Initialize the external client once and reuse.
	extEndpoint := strings.TrimPrefix(strings.TrimPrefix(Conf.ExternalEndpoint, "https://"), "http://")
	if extEndpoint == "" || extEndpoint == Conf.Endpoint {
		ExternalMinioClient = MinioClient
	} else {
		external, err := minio.New(extEndpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(Conf.AccessKey, Conf.SecretKey, ""),
			Secure: Conf.ExternalUseSSL,
			Region: "us-east-1",
		})
		if err != nil {
			return err
		}
		ExternalMinioClient = external
	}

	return nil
}

func parseBool(val string) bool {
	return strings.ToLower(val) == "true"
}

func parseInt64(val string, def int64) int64 {
	if val == "" {
		return def
	}
	v, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return def
	}
	return v
}

func parseFileTypes(val string) []string {
	if val == "" {
		// Posters are images only.
		return []string{"image/jpeg", "image/png", "image/webp"}
	}
	return strings.Split(val, ",")
}

func parseExpiry(val string) time.Duration {
	if val == "" {
		return time.Hour
	}
	v, err := strconv.Atoi(val)
	if err != nil {
		return time.Hour
	}
	return time.Duration(v) * time.Second
}

func baseMIME(mime string) string {
	if mime == "" {
		return ""
	}
	return strings.TrimSpace(strings.Split(mime, ";")[0])
}

// CheckFileAllowed validates an upload against the server-side poster policy.
func CheckFileAllowed(size int64, mime string) error {
	if size > Conf.MaxSize {
		return fmt.Errorf("file size exceeds the limit")
	}
	incoming := baseMIME(mime)
	for _, t := range Conf.FileTypes {
		if baseMIME(t) == incoming {
			return nil
		}
	}
	return fmt.Errorf("file type is not allowed")
}

// GeneratePosterURL returns a presigned GET URL for a stored poster object.
func GeneratePosterURL(objectID string) (string, error) {
	reqParams := make(url.Values)
	reqParams.Set("response-content-disposition", "inline")

	client := ExternalMinioClient
	if client == nil {
		client = MinioClient
	}
	presignedURL, err := client.PresignedGetObject(context.Background(), Conf.Bucket, objectID, Conf.Expiry, reqParams)
	if err != nil {
		return "", fmt.Errorf("failed to create presigned url: %v", err)
	}
	return presignedURL.String(), nil
}
