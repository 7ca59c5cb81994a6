package driver

import (
	"errors"
	"fmt"
)

// Пофайловые отказы File Parser'а. Для каталога они не фатальны: файл
// пропускается, обход продолжается.
var (
	// ErrNotRecognized means the first non-empty line carries no dialect
	// marker: the file is not a configuration dump.
	ErrNotRecognized = errors.New("not a recognized configuration dump")

	// ErrEmptyInput means the file has no non-empty lines at all.
	ErrEmptyInput = errors.New("empty input")
)

// UnsupportedModelError means the marker line names a model that is either
// absent from the dialect registry or excluded by the caller's allow-list.
type UnsupportedModelError struct {
	Model string
}

func (e *UnsupportedModelError) Error() string {
	return fmt.Sprintf("unsupported model %q", e.Model)
}
