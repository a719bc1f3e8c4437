package texture

import (
	"errors"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/humming-top/internal/logger"
)

// Pick shows a native file dialog for choosing a texture. ok is false when
// the user cancels or the dialog cannot be shown. Pick blocks; call it from
// a goroutine.
func Pick() (path string, ok bool) {
	path, err := dialog.File().
		Filter("Images", "png", "jpg", "jpeg", "gif", "bmp", "webp", "tif", "tiff", "tga").
		Filter("All Files", "*").
		Title("Open Texture").
		Load()
	if err != nil {
		if !errors.Is(err, dialog.ErrCancelled) {
			logger.Warn("file dialog failed", zap.Error(err))
		}
		return "", false
	}
	return path, true
}
