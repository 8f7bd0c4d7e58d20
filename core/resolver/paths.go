package resolver

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"zhi-theme/core/dependency"
	"zhi-theme/core/storage"
)

var (
	// ErrUnknownBase is returned for base path types without a convention.
	ErrUnknownBase = errors.New("unknown base path type")
	// ErrEscapesBase is returned when a libpath points outside its base.
	ErrEscapesBase = errors.New("libpath escapes its base path")
)

// Paths holds the roots the base path conventions resolve against.
type Paths struct {
	// Workspace is the SiYuan workspace directory.
	Workspace string
	// RemotePrefix is the object key prefix of remote modules.
	RemotePrefix string
}

// Resolve returns the file path, or object key for Remote, of libpath under base.
func (p Paths) Resolve(libpath string, base dependency.BasePathType) (string, error) {
	if strings.TrimSpace(libpath) == "" {
		return "", errors.New("empty libpath")
	}

	switch base {
	case dependency.BasePathAbsolute:
		if !filepath.IsAbs(libpath) {
			return "", fmt.Errorf("libpath %q is not absolute", libpath)
		}
		return filepath.Clean(libpath), nil
	case dependency.BasePathRemote:
		clean := path.Clean(strings.TrimLeft(filepath.ToSlash(libpath), "/"))
		if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
			return "", fmt.Errorf("%w: %s", ErrEscapesBase, libpath)
		}
		return storage.ObjectKey(p.RemotePrefix, clean), nil
	}

	root, err := p.root(base)
	if err != nil {
		return "", err
	}
	full := filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(libpath, "/")))
	rel, err := filepath.Rel(root, full)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("%w: %s", ErrEscapesBase, libpath)
	}
	return full, nil
}

func (p Paths) root(base dependency.BasePathType) (string, error) {
	appearance := filepath.Join(p.Workspace, "conf", "appearance")
	switch base {
	case dependency.BasePathZhiTheme:
		return filepath.Join(appearance, "themes", "zhi"), nil
	case dependency.BasePathAppearance:
		return appearance, nil
	case dependency.BasePathData:
		return filepath.Join(p.Workspace, "data"), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBase, base)
	}
}
