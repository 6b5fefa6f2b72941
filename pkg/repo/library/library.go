package library

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/scienceol/equivalents/pkg/common/code"
	"github.com/scienceol/equivalents/pkg/middleware/logger"
	"github.com/scienceol/equivalents/pkg/repo"
	"github.com/scienceol/equivalents/pkg/repo/model"
)

// libraryImpl keeps the catalog in a single JSON file, the reagent
// library format: an array of objects keyed "name", "category",
// "molar mass" and the category specific properties.
type libraryImpl struct {
	path string
}

func New(path string) repo.CatalogRepo {
	return &libraryImpl{path: path}
}

func (l *libraryImpl) Load(ctx context.Context) ([]*model.Reagent, error) {
	b, err := os.ReadFile(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Warnf(ctx, "reagent library %s not found, starting empty", l.path)
		return []*model.Reagent{}, nil
	}
	if err != nil {
		return nil, code.ReadFileErr.WithErr(err)
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return []*model.Reagent{}, nil
	}

	rows := make([]*model.Reagent, 0, 32)
	if err := json.Unmarshal(b, &rows); err != nil {
		return nil, code.UnmarshalErr.WithErr(err)
	}
	return rows, nil
}

// Save overwrites the library atomically: the new content goes to a
// temporary file next to the target which is then renamed over it.
func (l *libraryImpl) Save(ctx context.Context, rows []*model.Reagent) error {
	if rows == nil {
		rows = []*model.Reagent{}
	}
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rows); err != nil {
		return code.MarshalErr.WithErr(err)
	}

	dir, base := filepath.Split(l.path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return code.WriteFileErr.WithErr(err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			if err := os.Remove(tmpName); err != nil && !errors.Is(err, fs.ErrNotExist) {
				logger.Warnf(ctx, "remove temp library %s err: %+v", tmpName, err)
			}
		}
	}()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		return code.WriteFileErr.WithErr(err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return code.WriteFileErr.WithErr(err)
	}
	if err := tmp.Sync(); err != nil {
		return code.WriteFileErr.WithErr(err)
	}
	if err := tmp.Close(); err != nil {
		return code.WriteFileErr.WithErr(err)
	}
	if err := os.Rename(tmpName, l.path); err != nil {
		return code.WriteFileErr.WithErr(err)
	}
	committed = true
	return nil
}

func (l *libraryImpl) Ping(context.Context) error {
	dir := filepath.Dir(l.path)
	info, err := os.Stat(dir)
	if err != nil {
		return code.ReadFileErr.WithErr(err)
	}
	if !info.IsDir() {
		return code.ReadFileErr.WithMsgf("%s is not a directory", dir)
	}
	return nil
}
