package response

import (
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/course-catalog/internal/models"
)

func TestStatusOKWithData(t *testing.T) {
	data := map[string]string{"key": "value"}
	resp := StatusOKWithData(data)

	assert.Equal(t, StatusOK, resp.Status)
	assert.Empty(t, resp.Error)
	assert.Equal(t, data, resp.Data)
}

func TestError(t *testing.T) {
	msg := "something went wrong"
	resp := Error(msg)

	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, msg, resp.Error)
}

func TestValidationError_CourseDraft(t *testing.T) {
	v := validator.New()
	draft := models.CourseDraft{
		Level:      "Expert",
		Rating:     7,
		Price:      -1,
		AccessType: "lifetime",
	}

	err := v.Struct(draft)
	require.Error(t, err)

	resp := ValidationError(err.(validator.ValidationErrors))

	assert.Equal(t, StatusError, resp.Status)
	assert.Contains(t, resp.Error, "field Title is a required field")
	assert.Contains(t, resp.Error, "field Level must be one of: Beginner Intermediate Advanced")
	assert.Contains(t, resp.Error, "field Rating must be at most 5")
	assert.Contains(t, resp.Error, "field Price must be at least 0")
	assert.Contains(t, resp.Error, "field AccessType must be one of: free premium subscription")
}

func TestValidationError_ValidDraft(t *testing.T) {
	v := validator.New()
	draft := models.CourseDraft{Title: "Go", Level: models.LevelAdvanced, AccessType: models.AccessPremium}

	assert.NoError(t, v.Struct(draft))
}
