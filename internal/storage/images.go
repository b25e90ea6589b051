package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const auctionImagePrefix = "/images/auctions/"

// ImageStore keeps auction listing images on local disk under the
// configured uploads directory and hands out relative URLs.
type ImageStore struct {
	root string
}

func NewImageStore(root string) (*ImageStore, error) {
	dir := filepath.Join(root, "images", "auctions")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return &ImageStore{root: root}, nil
}

// Root returns the uploads directory for static file serving.
func (s *ImageStore) Root() string {
	return s.root
}

// SaveAuctionImage stores the uploaded file under a fresh name and
// returns its relative URL.
func (s *ImageStore) SaveAuctionImage(file *multipart.FileHeader) (string, error) {
	name := uuid.New().String() + strings.ToLower(filepath.Ext(file.Filename))

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded image: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.root, "images", "auctions", name))
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write image file: %w", err)
	}

	return auctionImagePrefix + name, nil
}

// Remove deletes a previously stored image by its relative URL. URLs that
// did not come from SaveAuctionImage are ignored.
func (s *ImageStore) Remove(url string) error {
	name := filepath.Base(strings.TrimPrefix(url, auctionImagePrefix))
	if !strings.HasPrefix(url, auctionImagePrefix) || name == "." || name == "/" {
		return nil
	}

	err := os.Remove(filepath.Join(s.root, "images", "auctions", name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove image file: %w", err)
	}
	return nil
}
