package i18n

import "errors"

var ErrInvalidCatalog = errors.New("invalid translation catalog")
