package utils

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/rs/zerolog"
)

var (
	unsafeChars    = regexp.MustCompile(`[^a-z0-9_-]+`)
	versionSegment = regexp.MustCompile(`^v\d+$`)
)

// CloudinaryBlobStore uploads event images under one fixed folder and hands
// out their secure URLs as image references.
type CloudinaryBlobStore struct {
	cld    *cloudinary.Cloudinary
	folder string
	logger zerolog.Logger
}

func NewCloudinaryBlobStore(cloudName, apiKey, apiSecret, folder string, logger zerolog.Logger) (*CloudinaryBlobStore, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary config error: %w", err)
	}
	return &CloudinaryBlobStore{cld: cld, folder: folder, logger: logger}, nil
}

// Upload stores the image under a generated name and returns its public URL.
// The name embeds the upload instant so two uploads of the same file never
// collide.
func (s *CloudinaryBlobStore) Upload(ctx context.Context, data []byte, filename string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	name := fmt.Sprintf("%d-%s", time.Now().UnixNano(), SanitizeFilename(filename))
	resp, err := s.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		Folder:   s.folder,
		PublicID: name,
	})
	if err != nil {
		return "", fmt.Errorf("upload error: %w", err)
	}
	return resp.SecureURL, nil
}

// Delete removes the blob behind a URL this store produced earlier. URLs
// whose public ID is not under our folder are skipped with a warning so a
// malformed or foreign reference never turns into a cross-folder deletion.
func (s *CloudinaryBlobStore) Delete(ctx context.Context, imageURL string) error {
	publicID, err := ExtractPublicID(imageURL)
	if err != nil || !strings.HasPrefix(publicID, s.folder+"/") {
		s.logger.Warn().Str("url", imageURL).Msg("skipping delete of foreign image reference")
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err = s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("delete error: %w", err)
	}
	return nil
}

// SanitizeFilename reduces an uploaded filename to a safe object-name stem:
// extension dropped, lowercased, anything outside [a-z0-9_-] collapsed to a
// dash.
func SanitizeFilename(filename string) string {
	stem := strings.TrimSuffix(path.Base(filename), path.Ext(filename))
	stem = unsafeChars.ReplaceAllString(strings.ToLower(stem), "-")
	stem = strings.Trim(stem, "-")
	if stem == "" {
		stem = "image"
	}
	return stem
}

// ExtractPublicID recovers the Cloudinary public ID (folder/name, no
// extension) from a delivery URL, e.g.
// https://res.cloudinary.com/demo/image/upload/v123/events/abc.jpg -> events/abc.
func ExtractPublicID(imageURL string) (string, error) {
	parsed, err := url.Parse(imageURL)
	if err != nil {
		return "", err
	}

	parts := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	upload := -1
	for i, p := range parts {
		if p == "upload" {
			upload = i
			break
		}
	}
	if upload < 0 || upload == len(parts)-1 {
		return "", fmt.Errorf("invalid cloudinary URL format")
	}

	rest := parts[upload+1:]
	if versionSegment.MatchString(rest[0]) {
		rest = rest[1:]
	}
	if len(rest) == 0 {
		return "", fmt.Errorf("invalid cloudinary URL format")
	}

	joined := path.Join(rest...)
	return strings.TrimSuffix(joined, path.Ext(joined)), nil
}
