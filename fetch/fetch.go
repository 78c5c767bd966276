package fetch

import (
	"path/filepath"
	"sort"

	getter "github.com/hashicorp/go-getter"
	"github.com/gosuri/uiprogress"
	"github.com/pkg/errors"
)

// Asset is a named remote file or archive to place under the asset directory.
// go-getter semantics apply: archives are unpacked, checksums honored when
// present in the URL fragment.
type Asset struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// FetchAssets downloads assets into destDir, one subpath per asset name,
// with progress feedback. Failures are collected; the first error is
// returned after all assets have been attempted.
func FetchAssets(assets []Asset, destDir string) error {
	if len(assets) == 0 {
		return nil
	}
	sorted := make([]Asset, len(assets))
	copy(sorted, assets)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	uiprogress.Start()
	bar := uiprogress.AddBar(len(sorted)).AppendCompleted().PrependElapsed()

	var firstErr error
	for _, a := range sorted {
		dst := filepath.Join(destDir, a.Name)
		if err := getter.GetAny(dst, a.URL); err != nil && firstErr == nil {
			firstErr = errors.Wrapf(err, "fetch asset %s", a.Name)
		}
		bar.Incr()
	}
	uiprogress.Stop()
	return firstErr
}
