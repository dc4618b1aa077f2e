package controllers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"salonbook-backend/apperrors"
	"salonbook-backend/services"
	"salonbook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
)

// MaxImageSize is the largest single image accepted in a multipart upload.
const MaxImageSize = 5 << 20

// currentActor returns the tenant and user of an authenticated request.
func currentActor(c *gin.Context) (services.Actor, bool) {
	id, ok := utils.IdentityFromContext(c.Request.Context())
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Identity not found in context")
		return services.Actor{}, false
	}
	return services.ActorFor(id), true
}

func paramID(c *gin.Context, name, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid "+resource+" ID format")
		return uuid.Nil, false
	}
	return id, true
}

// queryID parses an optional uuid query parameter.
func queryID(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid "+name)
		return nil, false
	}
	return &id, true
}

// queryDate parses an optional YYYY-MM-DD query parameter.
func queryDate(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	day, err := utils.ParseDate(raw)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid "+name+", expected YYYY-MM-DD")
		return nil, false
	}
	return &day, true
}

// bindPayload binds a JSON body, or the "payload" field of a multipart form
// together with at most limit "images" files.
func bindPayload(c *gin.Context, dst interface{}, limit int) ([]services.ImageUpload, bool) {
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		if err := c.ShouldBindJSON(dst); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return nil, false
		}
		return nil, true
	}

	form, err := c.MultipartForm()
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return nil, false
	}
	payload := c.PostForm("payload")
	if payload == "" {
		payload = "{}"
	}
	if err := binding.JSON.BindBody([]byte(payload), dst); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return nil, false
	}

	files := form.File["images"]
	if len(files) > limit {
		utils.RespondWithAppError(c, apperrors.Validation("images", fmt.Sprintf("maximum %d images allowed", limit)))
		return nil, false
	}
	uploads := make([]services.ImageUpload, 0, len(files))
	for _, fh := range files {
		upload, err := readUpload(fh)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
			return nil, false
		}
		uploads = append(uploads, upload)
	}
	return uploads, true
}

func readUpload(fh *multipart.FileHeader) (services.ImageUpload, error) {
	if fh.Size > MaxImageSize {
		return services.ImageUpload{}, fmt.Errorf("image %s exceeds %d MB", fh.Filename, MaxImageSize>>20)
	}
	f, err := fh.Open()
	if err != nil {
		return services.ImageUpload{}, fmt.Errorf("read image %s: %w", fh.Filename, err)
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, MaxImageSize+1))
	if err != nil {
		return services.ImageUpload{}, fmt.Errorf("read image %s: %w", fh.Filename, err)
	}
	return services.ImageUpload{Name: fh.Filename, Data: data}, nil
}
