package viewer

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
)

type Page struct {
	BasePath string
	FileName string // defaults to "index.html"
}

func (p Page) getFileName() string {
	if p.FileName == "" {
		return "index.html"
	}
	return p.FileName
}

// Write renders info into the page file. Images are listed in index order.
func (p Page) Write(info Info) (err error) {
	images := append([]Image(nil), info.Images...)
	sort.Slice(images, func(i, j int) bool {
		return images[i].Index < images[j].Index
	})
	info.Images = images

	filename := filepath.Join(p.BasePath, p.getFileName())
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "failed to create file \"%s\"", filename)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "failed to close file \"%s\"", filename)
		}
	}()

	if err = tmpl.Execute(file, info); err != nil {
		return errors.Wrapf(err, "failed to render template of \"%s\"", filename)
	}
	return nil
}
