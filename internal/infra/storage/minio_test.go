package storage

import (
	"errors"
	"net/http"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
)

func TestNotFoundAsNil(t *testing.T) {
	assert.NoError(t, notFoundAsNil(minio.ErrorResponse{Code: "NoSuchKey", StatusCode: http.StatusNotFound}))
	assert.NoError(t, notFoundAsNil(minio.ErrorResponse{StatusCode: http.StatusNotFound}))

	err := notFoundAsNil(minio.ErrorResponse{Code: "AccessDenied", StatusCode: http.StatusForbidden})
	assert.Error(t, err)

	err = notFoundAsNil(errors.New("connection reset"))
	assert.ErrorContains(t, err, "connection reset")
}
