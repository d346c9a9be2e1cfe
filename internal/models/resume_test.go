package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkillsRoundTrip(t *testing.T) {
	raw, err := EncodeSkills([]string{"X", "Y"})
	require.NoError(t, err)
	assert.Equal(t, `["X","Y"]`, raw)
	assert.Equal(t, []string{"X", "Y"}, DecodeSkills(raw))
}

func TestEncodeSkills_EmptySentinel(t *testing.T) {
	raw, err := EncodeSkills(nil)
	require.NoError(t, err)
	assert.Equal(t, "", raw)

	raw, err = EncodeSkills([]string{})
	require.NoError(t, err)
	assert.Equal(t, "", raw)
}

func TestDecodeSkills(t *testing.T) {
	assert.Equal(t, []string{}, DecodeSkills(""))
	assert.Equal(t, []string{}, DecodeSkills("null"))
	assert.Equal(t, []string{"Go, SQL"}, DecodeSkills("Go, SQL"))
}

func TestResumeView(t *testing.T) {
	name := "Jane Smith"
	r := Resume{ID: 7, Filename: "1-abc-cv.pdf", Name: &name, Skills: `["Python"]`}

	v := r.View()
	assert.Equal(t, uint(7), v.ID)
	assert.Equal(t, "1-abc-cv.pdf", v.Filename)
	assert.Equal(t, &name, v.Name)
	assert.Equal(t, []string{"Python"}, v.Skills)
}
