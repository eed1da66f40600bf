package restaurant

import (
	"net/http"
	"time"

	"github.com/meishi-app/meishi-backend/internal/pkg/apperror"
)

var (
	ErrNotFound     = apperror.New(http.StatusNotFound, "restaurant not found")
	ErrNameRequired = apperror.New(http.StatusBadRequest, "restaurant name is required")
	ErrNotOwner     = apperror.New(http.StatusNotFound, "restaurant not found")
)

// Restaurant is the catalog record booking systems hang off of. Search,
// photos and reactions live elsewhere; this module only anchors ownership.
type Restaurant struct {
	ID        int64
	OwnerID   string
	Name      string
	Address   string
	Cuisine   string
	CreatedAt time.Time
}
