package i18n

import (
	"errors"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/pwakit/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslator_English(t *testing.T) {
	tr, err := New("en-US")
	require.NoError(t, err)

	assert.Equal(t, "en", tr.Locale())
	assert.Equal(t, "“foo.png” has been deleted.", tr.Lang(ImgDeleted, "foo.png"))
	assert.Equal(t, "The color code “#zz” is not a valid hex code.", tr.Lang(InvalidColor, "#zz"))
}

func TestTranslator_GermanFallsBackToEnglish(t *testing.T) {
	tr, err := New("de-DE")
	require.NoError(t, err)

	assert.Equal(t, "de", tr.Locale())
	assert.Equal(t, "Die Datei existiert nicht.", tr.Lang(StorageFileNoExist))
	// not translated into German
	assert.Equal(t, "Unable to move file.", tr.Lang(FileMoveUnsuccessful))
}

func TestTranslator_UnknownLocaleAndKey(t *testing.T) {
	tr, err := New("xx")
	require.NoError(t, err)

	assert.Equal(t, "en", tr.Locale())
	assert.Equal(t, "SOME_KEY", tr.Lang("SOME_KEY"))
}

func TestMessageKey(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{common.ErrEmptyPath, ImgDeletePathErr},
		{fmt.Errorf("delete: %w", common.ErrInvalidName), ImgDeleteNameErr},
		{common.NotFound("delete", "bar.png"), StorageFileNoExist},
		{common.ErrUploadEmpty, EmptyFileUpload},
		{common.ErrUploadExtension, DisallowedExtension},
		{common.ErrUploadContent, DisallowedContent},
		{common.ErrUploadMissing, NoUploadFormFound},
		{&common.UploadError{Err: common.ErrUploadExists, Args: []any{"foo.png"}}, UploadFileExists},
		{common.ErrFormInvalid, FormInvalid},
		{&common.ColorError{Color: "#zz"}, InvalidColor},
		{fmt.Errorf("%w: disk full", common.ErrFileMove), FileMoveUnsuccessful},
		{common.ErrTokenExpired, NoAuthOperation},
		{&common.StorageError{Op: "delete", Path: "a.png", Err: errors.New("permission denied")}, StorageError},
		{errors.New("boom"), GeneralError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MessageKey(tt.err), "err=%v", tt.err)
	}
}

func TestTranslator_Error(t *testing.T) {
	tr, err := New("en")
	require.NoError(t, err)

	assert.Equal(t, "No image was specified.", tr.Error(common.ErrEmptyPath))
}

func TestTranslator_ErrorWithArgs(t *testing.T) {
	tr, err := New("en")
	require.NoError(t, err)

	uerr := &common.UploadError{Err: common.ErrUploadExtension, Args: []any{"gif"}}
	assert.Equal(t, "The extension gif is not allowed.", tr.Error(uerr))

	exists := &common.UploadError{Err: common.ErrUploadExists, Args: []any{"foo.png"}}
	assert.Equal(t, "An image named “foo.png” already exists. Delete it before uploading a replacement.", tr.Error(exists))
}

func TestTranslator_ColorError(t *testing.T) {
	tr, err := New("en")
	require.NoError(t, err)

	assert.Equal(t, "The color code “#zz” is not a valid hex code.", tr.Error(&common.ColorError{Color: "#zz"}))
}
