package controllers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	config "github.com/mwangikb/event-planner-go/config"
	models "github.com/mwangikb/event-planner-go/models"
	store "github.com/mwangikb/event-planner-go/store"
)

// imageField is the multipart key an uploaded event image arrives under.
const imageField = "eventImage"

// ---------------- LIST ----------------
func ListEvents(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		events, err := cfg.Events.List(c.Request.Context())
		if err != nil {
			cfg.Logger.Error().Err(err).Msg("could not list events")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not fetch events"})
			return
		}
		c.JSON(http.StatusOK, models.RenderAll(events))
	}
}

// ---------------- GET ----------------
func GetEvent(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ev, err := cfg.Events.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			abortStoreError(c, cfg, err, "could not fetch event")
			return
		}
		c.JSON(http.StatusOK, ev.Render())
	}
}

// ---------------- CREATE ----------------
func CreateEvent(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		fields, image, err := bindEventInput(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid form data"})
			return
		}

		ev, err := models.EventFromInput(fields)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		if image != nil {
			url, err := cfg.Blob.Upload(c.Request.Context(), image.data, image.filename)
			if err != nil {
				cfg.Logger.Error().Err(err).Str("file", image.filename).Msg("image upload failed")
				c.JSON(http.StatusInternalServerError, gin.H{"message": "image upload failed"})
				return
			}
			ev.ImageURL = url
		}

		id, err := cfg.Events.Create(c.Request.Context(), ev)
		if err != nil {
			cfg.Logger.Error().Err(err).Msg("could not create event")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not create event"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"id": id})
	}
}

// ---------------- UPDATE ----------------
func UpdateEvent(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		existing, err := cfg.Events.Get(c.Request.Context(), id)
		if err != nil {
			abortStoreError(c, cfg, err, "could not fetch event")
			return
		}

		fields, image, err := bindEventInput(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid form data"})
			return
		}

		ev, err := models.EventFromInput(fields)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		// Keep the current image unless a replacement was uploaded.
		ev.ImageURL = existing.ImageURL
		if image != nil {
			url, err := cfg.Blob.Upload(c.Request.Context(), image.data, image.filename)
			if err != nil {
				cfg.Logger.Error().Err(err).Str("file", image.filename).Msg("image upload failed")
				c.JSON(http.StatusInternalServerError, gin.H{"message": "image upload failed"})
				return
			}
			if existing.ImageURL != "" {
				if err := cfg.Blob.Delete(c.Request.Context(), existing.ImageURL); err != nil {
					cfg.Logger.Warn().Err(err).Str("url", existing.ImageURL).Msg("could not delete replaced image")
				}
			}
			ev.ImageURL = url
		}

		if err := cfg.Events.Update(c.Request.Context(), id, ev); err != nil {
			abortStoreError(c, cfg, err, "could not update event")
			return
		}

		ev.ID = id
		ev.CreatedAt = existing.CreatedAt
		c.JSON(http.StatusOK, gin.H{
			"message": "event updated",
			"event":   ev.Render(),
		})
	}
}

// ---------------- DELETE ----------------
func DeleteEvent(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		existing, err := cfg.Events.Get(c.Request.Context(), id)
		if err != nil {
			abortStoreError(c, cfg, err, "could not fetch event")
			return
		}

		if err := cfg.Events.Delete(c.Request.Context(), id); err != nil {
			abortStoreError(c, cfg, err, "could not delete event")
			return
		}

		// Image cleanup is best effort; an orphaned blob beats a failed delete.
		if existing.ImageURL != "" {
			if err := cfg.Blob.Delete(c.Request.Context(), existing.ImageURL); err != nil {
				cfg.Logger.Warn().Err(err).Str("url", existing.ImageURL).Msg("could not delete event image")
			}
		}

		c.JSON(http.StatusOK, gin.H{"message": "event deleted", "id": id})
	}
}

// ---------------- DELETE IMAGE ----------------
func DeleteEventImage(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		existing, err := cfg.Events.Get(c.Request.Context(), id)
		if err != nil {
			abortStoreError(c, cfg, err, "could not fetch event")
			return
		}

		if existing.ImageURL == "" {
			c.JSON(http.StatusOK, gin.H{"message": "no image to delete"})
			return
		}

		if err := cfg.Blob.Delete(c.Request.Context(), existing.ImageURL); err != nil {
			cfg.Logger.Warn().Err(err).Str("url", existing.ImageURL).Msg("could not delete event image")
		}

		if err := cfg.Events.SetImageURL(c.Request.Context(), id, ""); err != nil {
			abortStoreError(c, cfg, err, "could not update event")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "image deleted"})
	}
}

type uploadedImage struct {
	data     []byte
	filename string
}

// bindEventInput flattens the request body into the loose field map the
// validator expects. Accepts multipart or urlencoded forms and plain JSON
// objects of strings; a multipart body may also carry the image file.
func bindEventInput(c *gin.Context) (map[string]string, *uploadedImage, error) {
	fields := map[string]string{}

	if strings.HasPrefix(c.ContentType(), "application/json") {
		if err := c.ShouldBindJSON(&fields); err != nil {
			return nil, nil, err
		}
		return fields, nil, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		if !errors.Is(err, http.ErrNotMultipart) {
			return nil, nil, err
		}
		// Urlencoded form.
		if err := c.Request.ParseForm(); err != nil {
			return nil, nil, err
		}
		for key, values := range c.Request.PostForm {
			if len(values) > 0 {
				fields[key] = values[0]
			}
		}
		return fields, nil, nil
	}

	for key, values := range form.Value {
		if len(values) > 0 {
			fields[key] = values[0]
		}
	}

	files := form.File[imageField]
	if len(files) == 0 {
		return fields, nil, nil
	}

	file, err := files[0].Open()
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, nil, err
	}
	return fields, &uploadedImage{data: data, filename: files[0].Filename}, nil
}

// abortStoreError translates store errors to the right status without
// leaking backend detail.
func abortStoreError(c *gin.Context, cfg *config.Config, err error, logMsg string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "event not found"})
	case errors.Is(err, store.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid event id"})
	default:
		cfg.Logger.Error().Err(err).Msg(logMsg)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
	}
}
