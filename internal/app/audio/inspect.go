package audio

import (
	"os"
	"path/filepath"

	apperrors "a2t/internal/app/errors"
	"a2t/internal/app/model"
)

// Inspect confirms that path is an existing regular file and measures it.
func Inspect(path string) (model.FileInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.FileInfo{}, apperrors.Wrapf(apperrors.ErrFileNotFound, "'%s'", path)
		}
		return model.FileInfo{}, apperrors.UserInput("cannot read '%s'", path).WithCause(err)
	}
	if stat.IsDir() {
		return model.FileInfo{}, apperrors.Wrapf(apperrors.ErrNotAFile, "'%s'", path)
	}

	fullPath, err := filepath.Abs(path)
	if err != nil {
		return model.FileInfo{}, apperrors.UserInput("cannot resolve '%s'", path).WithCause(err)
	}

	return model.FileInfo{
		FullPath: fullPath,
		Name:     filepath.Base(fullPath),
		Size:     stat.Size(),
	}, nil
}
