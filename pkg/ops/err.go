package ops

import "github.com/pkg/errors"

var (
	ErrNoArchive          = errors.New("archive not found")
	ErrUnsupportedArchive = errors.New("unsupported archive type")
	ErrUnknownFormat      = errors.New("unknown index format")
)

func track(err error) error {
	return errors.WithStack(err)
}
