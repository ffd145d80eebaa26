package utils

import (
	"crypto/sha1"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GenerateETag derives a strong ETag from a document id and its last
// modification time, so conditional GETs can short-circuit unchanged
// list and detail responses.
func GenerateETag(id primitive.ObjectID, updatedAt time.Time) string {
	sum := sha1.Sum([]byte(id.Hex() + "." + fmt.Sprint(updatedAt.UnixNano())))
	return fmt.Sprintf("%q", fmt.Sprintf("%x", sum))
}
