package helpers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

const (
	CarsFolder = "cars"

	UserIDPrefix    = "USER_"
	CarIDPrefix     = "CAR_"
	BookingIDPrefix = "BOOK_"
	PaymentIDPrefix = "PAY_"
)

// GenerateID produces a short human-readable identifier, e.g. CAR_3F9A21BC.
func GenerateID(prefix string) string {
	fragment := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return prefix + fragment
}

// CalculateDays returns the number of billable days in [start, end),
// floored to a minimum of one day.
func CalculateDays(start, end time.Time) int {
	days := int(end.Sub(start).Hours() / 24)
	if days < 1 {
		return 1
	}
	return days
}

func CalculateTotalAmount(dailyRate float64, start, end time.Time) float64 {
	return dailyRate * float64(CalculateDays(start, end))
}

// ParseDate parses a calendar date and pins it to midnight UTC so that
// booking ranges compare as whole days.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return t.UTC(), nil
}

// HashPassword is a placeholder SHA-256 digest, matching the stored format.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func UploadImages(ctx context.Context, cld *cloudinary.Cloudinary, imageNames []string, imagePath string) ([]string, error) {
	var urls []string

	for i, filePath := range imageNames {
		if strings.TrimSpace(filePath) == "" {
			fmt.Printf("Skipping empty image path at index %d\n", i)
			continue
		}
		uploadResult, err := cld.Upload.Upload(ctx, filePath, uploader.UploadParams{
			Folder: imagePath,
			Tags:   []string{"carhive-app"},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to upload image %s: %v", filePath, err)
		}
		urls = append(urls, uploadResult.SecureURL)
	}

	return urls, nil
}
