package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"salonbook-backend/apperrors"
	"salonbook-backend/models"
	"salonbook-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ImageUpload is one uploaded file.
type ImageUpload struct {
	Name string
	Data []byte
}

// imageExtensions lists the accepted image types by sniffed content type.
var imageExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// imageExtension returns the file extension for the sniffed type of data.
func imageExtension(data []byte) (string, bool) {
	ext, ok := imageExtensions[http.DetectContentType(data)]
	return ext, ok
}

// validateUploads enforces the per-entity image limit and rejects non-images.
func validateUploads(uploads []ImageUpload, limit int) error {
	if len(uploads) > limit {
		return apperrors.Validation("images", fmt.Sprintf("maximum %d images allowed", limit))
	}
	for _, u := range uploads {
		if len(u.Data) == 0 {
			return apperrors.Validation("images", fmt.Sprintf("%s is empty", u.Name))
		}
		if _, ok := imageExtension(u.Data); !ok {
			return apperrors.Validation("images", fmt.Sprintf("%s is not a PNG, JPEG, GIF or WebP image", u.Name))
		}
	}
	return nil
}

// gallery moves uploads in and out of the image store and keeps the Media
// rows of an owner in step with it.
type gallery struct {
	store ImageStore
}

// stage writes uploads to the store. On failure nothing is left behind.
func (g gallery) stage(ctx context.Context, uploads []ImageUpload) ([]string, error) {
	refs := make([]string, 0, len(uploads))
	for _, u := range uploads {
		ref, err := g.store.Save(ctx, u.Name, u.Data)
		if err != nil {
			g.discard(ctx, refs)
			return nil, fmt.Errorf("store image %s: %w", u.Name, err)
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// replace swaps every Media row of owner for rows pointing at refs and
// returns the refs that were detached.
func (g gallery) replace(tx *gorm.DB, accountID uuid.UUID, owner models.ImageOwner, refs []string) ([]string, error) {
	ownerType, ownerID := owner.ImageOwner()

	var old []models.Media
	if err := tx.Where("owner_type = ? AND owner_id = ?", ownerType, ownerID).Find(&old).Error; err != nil {
		return nil, err
	}
	if len(old) > 0 {
		if err := tx.Where("owner_type = ? AND owner_id = ?", ownerType, ownerID).Delete(&models.Media{}).Error; err != nil {
			return nil, err
		}
	}

	if len(refs) > 0 {
		media := make([]models.Media, 0, len(refs))
		for _, ref := range refs {
			media = append(media, models.Media{
				AccountID: accountID,
				OwnerType: ownerType,
				OwnerID:   ownerID,
				Ref:       ref,
				URL:       g.store.URL(ref),
			})
		}
		if err := tx.Create(&media).Error; err != nil {
			return nil, err
		}
	}

	detached := make([]string, 0, len(old))
	for _, m := range old {
		detached = append(detached, m.Ref)
	}
	return detached, nil
}

// discard removes refs from the store, logging failures.
func (g gallery) discard(ctx context.Context, refs []string) {
	for _, ref := range refs {
		if err := g.store.Delete(ctx, ref); err != nil {
			utils.LoggerFromContext(ctx).Warn("Failed to delete image",
				slog.String("ref", ref),
				slog.String("error", err.Error()),
			)
		}
	}
}
