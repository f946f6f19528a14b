package helper

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"mime/multipart"
	"path"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"

	"sekolahku_backend/internals/configs"
	helper "sekolahku_backend/internals/helpers"
)

// ImageUploader dipakai controller upload gambar; OSSService memenuhinya.
type ImageUploader interface {
	UploadImageAsWebP(ctx context.Context, fh *multipart.FileHeader, dir string) (string, error)
	DeleteByPublicURL(ctx context.Context, publicURL string) error
}

type OSSService struct {
	Client     *oss.Client
	Bucket     *oss.Bucket
	Endpoint   string
	BucketName string
	Prefix     string // root folder di bucket, mis. "sekolahku"
	PublicBase string // opsional, mis. CDN
	WebP       WebPOptions
}

var _ ImageUploader = (*OSSService)(nil)

func NewOSSServiceFromEnv(prefix string) (*OSSService, error) {
	endpoint := strings.TrimSpace(configs.GetEnv("ALI_OSS_ENDPOINT"))
	ak := strings.TrimSpace(configs.GetEnv("ALI_OSS_ACCESS_KEY"))
	sk := strings.TrimSpace(configs.GetEnv("ALI_OSS_SECRET_KEY"))
	bucketName := strings.TrimSpace(configs.GetEnv("ALI_OSS_BUCKET"))
	if endpoint == "" || ak == "" || sk == "" || bucketName == "" {
		return nil, errors.New("ALI_OSS_* env belum lengkap")
	}

	var opts []oss.ClientOption
	if st := strings.TrimSpace(configs.GetEnv("ALI_OSS_SECURITY_TOKEN")); st != "" {
		opts = append(opts, oss.SecurityToken(st))
	}
	client, err := oss.New(endpoint, ak, sk, opts...)
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}
	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	return &OSSService{
		Client:     client,
		Bucket:     bucket,
		Endpoint:   endpoint,
		BucketName: bucketName,
		Prefix:     strings.Trim(prefix, "/"),
		PublicBase: strings.TrimRight(configs.GetEnv("ALI_OSS_PUBLIC_BASE"), "/"),
		WebP:       DefaultWebPOptionsFromEnv(),
	}, nil
}

// UploadImageAsWebP: konversi ke webp lalu PutObject. Return public URL.
func (s *OSSService) UploadImageAsWebP(ctx context.Context, fh *multipart.FileHeader, dir string) (string, error) {
	if fh == nil {
		return "", errors.New("file kosong")
	}
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := ConvertToWebP(f, fh.Filename, s.WebP)
	if err != nil {
		return "", err
	}

	key := buildObjectKey(s.Prefix, dir, fh.Filename, time.Now())
	err = s.Bucket.PutObject(key, bytes.NewReader(data),
		oss.WithContext(ctx),
		oss.ContentType("image/webp"),
		oss.CacheControl("public, max-age=31536000, immutable"),
	)
	if err != nil {
		return "", fmt.Errorf("oss put: %w", err)
	}
	return s.PublicURL(key), nil
}

// DeleteByPublicURL: URL di luar bucket ini diabaikan.
func (s *OSSService) DeleteByPublicURL(ctx context.Context, publicURL string) error {
	key, ok := s.keyFromPublicURL(publicURL)
	if !ok {
		return nil
	}
	return s.Bucket.DeleteObject(key, oss.WithContext(ctx))
}

func (s *OSSService) PublicURL(key string) string {
	key = strings.TrimLeft(key, "/")
	if s.PublicBase != "" {
		return s.PublicBase + "/" + key
	}
	host := strings.TrimPrefix(strings.TrimPrefix(s.Endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.BucketName, host, key)
}

func (s *OSSService) keyFromPublicURL(u string) (string, bool) {
	base := s.PublicURL("")
	if u == "" || !strings.HasPrefix(u, base) {
		return "", false
	}
	key := strings.TrimPrefix(u, base)
	return key, key != ""
}

// <prefix>/<dir>/<yyyy>/<mm>/<slug>-<rand>.webp
func buildObjectKey(prefix, dir, filename string, now time.Time) string {
	name := strings.TrimSuffix(path.Base(filename), path.Ext(filename))
	slug := helper.Slugify(name, 60)
	parts := []string{}
	for _, p := range []string{prefix, dir} {
		if p = strings.Trim(p, "/"); p != "" {
			parts = append(parts, p)
		}
	}
	parts = append(parts,
		now.Format("2006"),
		now.Format("01"),
		fmt.Sprintf("%s-%s.webp", slug, randHex(4)),
	)
	return strings.Join(parts, "/")
}

func randHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%x", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}
