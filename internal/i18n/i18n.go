// Package i18n translates administrator-facing message keys using
// golang.org/x/text catalogs. Unknown keys are returned as-is.
package i18n

import (
	"errors"

	"github.com/dmitrijs2005/pwakit/internal/common"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// BaseLocale is the fallback locale for every lookup.
var BaseLocale = language.English

var supported = []language.Tag{language.English, language.German}

// Translator renders message keys for one locale.
type Translator struct {
	tag     language.Tag
	printer *message.Printer
}

func newCatalog() (*catalog.Builder, error) {
	b := catalog.NewBuilder(catalog.Fallback(BaseLocale))
	for tag, msgs := range map[language.Tag]map[string]string{language.English: english, language.German: german} {
		// untranslated keys render in the base locale
		for key, msg := range english {
			if translated, ok := msgs[key]; ok {
				msg = translated
			}
			if err := b.SetString(tag, key, msg); err != nil {
				return nil, err
			}
		}
	}
	return b, nil
}

// New returns a Translator for the best supported match of locale.
func New(locale string) (*Translator, error) {
	cat, err := newCatalog()
	if err != nil {
		return nil, err
	}

	tag, _, _ := language.NewMatcher(supported).Match(language.Make(locale))
	base, _ := tag.Base()
	tag = language.Make(base.String())

	return &Translator{tag: tag, printer: message.NewPrinter(tag, message.Catalog(cat))}, nil
}

// Locale reports the matched locale.
func (t *Translator) Locale() string {
	return t.tag.String()
}

// Lang renders key with positional arguments.
func (t *Translator) Lang(key string, args ...any) string {
	return t.printer.Sprintf(key, args...)
}

// Error renders the message key associated with err, passing along any
// arguments the error carries.
func (t *Translator) Error(err error) string {
	var withArgs interface{ MessageArgs() []any }
	if errors.As(err, &withArgs) {
		return t.Lang(MessageKey(err), withArgs.MessageArgs()...)
	}
	return t.Lang(MessageKey(err))
}

// MessageKey maps sentinel errors to message keys.
func MessageKey(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, common.ErrFileMove):
		return FileMoveUnsuccessful
	case errors.Is(err, common.ErrEmptyPath):
		return ImgDeletePathErr
	case errors.Is(err, common.ErrInvalidName):
		return ImgDeleteNameErr
	case errors.Is(err, common.ErrorNotFound):
		return StorageFileNoExist
	case errors.Is(err, common.ErrUploadEmpty):
		return EmptyFileUpload
	case errors.Is(err, common.ErrUploadExtension):
		return DisallowedExtension
	case errors.Is(err, common.ErrUploadContent):
		return DisallowedContent
	case errors.Is(err, common.ErrUploadMissing):
		return NoUploadFormFound
	case errors.Is(err, common.ErrUploadExists):
		return UploadFileExists
	case errors.Is(err, common.ErrFormInvalid):
		return FormInvalid
	case errors.Is(err, common.ErrInvalidColor):
		return InvalidColor
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrTokenExpired):
		return NoAuthOperation
	}

	var se *common.StorageError
	if errors.As(err, &se) {
		return StorageError
	}
	return GeneralError
}
