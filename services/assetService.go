package services

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"os"
	"path"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Uploader is the asset-host boundary. Controllers only talk to this
// interface, so tests swap in a stub and the Cloudinary client stays an
// explicitly constructed dependency instead of package-level config.
type Uploader interface {
	UploadImage(ctx context.Context, file *multipart.FileHeader, folder string) (string, error)
	UploadFile(ctx context.Context, file *multipart.FileHeader, folder string) (string, error)
	DeleteFile(ctx context.Context, fileURL string) error
}

type cloudinaryService struct {
	cld *cloudinary.Cloudinary
}

var assetService Uploader

// InitAssetService builds the Cloudinary-backed uploader from
// CLOUDINARY_URL. Without it uploads are unavailable and endpoints that
// need them return errors.
func InitAssetService() {
	cldURL := os.Getenv("CLOUDINARY_URL")
	if cldURL == "" {
		log.Println("WARNING: CLOUDINARY_URL not set. Asset uploads will not be available.")
		return
	}

	cld, err := cloudinary.NewFromURL(cldURL)
	if err != nil {
		log.Printf("Failed to initialize Cloudinary client: %v", err)
		return
	}

	assetService = &cloudinaryService{cld: cld}
	log.Println("Asset service initialized successfully with Cloudinary")
}

func GetAssetService() Uploader {
	return assetService
}

// SetAssetService swaps the active uploader. Tests use this.
func SetAssetService(u Uploader) {
	assetService = u
}

func NewCloudinaryService(cld *cloudinary.Cloudinary) Uploader {
	return &cloudinaryService{cld: cld}
}

func (s *cloudinaryService) UploadImage(ctx context.Context, file *multipart.FileHeader, folder string) (string, error) {
	return s.upload(ctx, file, folder, "image")
}

func (s *cloudinaryService) UploadFile(ctx context.Context, file *multipart.FileHeader, folder string) (string, error) {
	return s.upload(ctx, file, folder, "raw")
}

func (s *cloudinaryService) upload(ctx context.Context, file *multipart.FileHeader, folder, resourceType string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := strings.TrimSuffix(file.Filename, path.Ext(file.Filename))
	publicID := fmt.Sprintf("%s_%d", name, time.Now().UnixMilli())

	resp, err := s.cld.Upload.Upload(ctx, src, uploader.UploadParams{
		PublicID:     publicID,
		Folder:       folder,
		ResourceType: resourceType,
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	return resp.SecureURL, nil
}

func (s *cloudinaryService) DeleteFile(ctx context.Context, fileURL string) error {
	publicID, resourceType, ok := parseAssetURL(fileURL)
	if !ok {
		return fmt.Errorf("not a cloudinary URL: %s", fileURL)
	}

	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: resourceType,
	})
	return err
}

// parseAssetURL pulls the public id and resource type back out of a
// delivery URL (…/<type>/upload/v123/folder/name.ext). Raw assets keep
// their extension in the public id, image assets do not.
func parseAssetURL(fileURL string) (publicID, resourceType string, ok bool) {
	idx := strings.Index(fileURL, "/upload/")
	if idx < 0 {
		return "", "", false
	}

	head := fileURL[:idx]
	resourceType = "image"
	if strings.HasSuffix(head, "/raw") {
		resourceType = "raw"
	}

	rest := fileURL[idx+len("/upload/"):]
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) == 2 && strings.HasPrefix(parts[0], "v") {
		rest = parts[1]
	}
	if resourceType == "image" {
		rest = strings.TrimSuffix(rest, path.Ext(rest))
	}
	if rest == "" {
		return "", "", false
	}
	return rest, resourceType, true
}
