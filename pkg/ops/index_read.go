package ops

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"lab47.dev/boardindex/pkg/data"
)

type IndexRead struct {
	common
}

// Read loads the index at path. A missing file is an empty index.
func (r *IndexRead) Read(path string) (*data.Index, error) {
	format, err := DetectFormat(path, "")
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			r.L().Debug("no existing index, starting empty", "path", path)
			return &data.Index{Packages: []*data.Package{}}, nil
		}

		return nil, err
	}

	defer f.Close()

	var idx data.Index

	switch format {
	case FormatYAML:
		err = yaml.NewDecoder(f).Decode(&idx)
	default:
		err = json.NewDecoder(f).Decode(&idx)
	}

	if err != nil {
		return nil, errors.Wrapf(err, "reading index %s", path)
	}

	if idx.Packages == nil {
		idx.Packages = []*data.Package{}
	}

	return &idx, nil
}
