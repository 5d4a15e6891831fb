package logic

import (
	"os"
	"path/filepath"

	"github.com/gamecharts/leaderboard-dashboard/internal/models"
)

// defaultFiles maps region -> platform -> file name under the data directory.
var defaultFiles = map[models.Region]map[models.Platform]string{
	models.RegionUAE: {
		models.PlatformIOS:     "t25-uae-ios.csv",
		models.PlatformAndroid: "t25-uae-android.csv",
	},
	models.RegionSaudiArabia: {
		models.PlatformIOS:     "t25-ksa-ios.csv",
		models.PlatformAndroid: "t25-ksa-android.csv",
	},
	models.RegionEgypt: {
		models.PlatformIOS:     "t25-egypt-ios.csv",
		models.PlatformAndroid: "t25-egypt-android.csv",
	},
	models.RegionIraq: {
		models.PlatformIOS:     "t25-iraq-ios.csv",
		models.PlatformAndroid: "t25-iraq-android.csv",
	},
	models.RegionMorocco: {
		models.PlatformIOS:     "t25-morocco-ios.csv",
		models.PlatformAndroid: "t25-morocco-android.csv",
	},
}

// Catalog resolves (region, platform) to a default leaderboard file.
type Catalog struct {
	dir   string
	files map[models.Region]map[models.Platform]string
}

// NewCatalog builds the catalog of default files rooted at dir.
func NewCatalog(dir string) *Catalog {
	return &Catalog{dir: dir, files: defaultFiles}
}

// NewCatalogWithFiles builds a catalog from an explicit mapping.
func NewCatalogWithFiles(dir string, files map[models.Region]map[models.Platform]string) *Catalog {
	return &Catalog{dir: dir, files: files}
}

func (c *Catalog) Dir() string {
	return c.dir
}

// Path returns the mapped path for the pair, whether or not it exists.
func (c *Catalog) Path(region models.Region, platform models.Platform) (string, bool) {
	byPlatform, ok := c.files[region]
	if !ok {
		return "", false
	}
	name, ok := byPlatform[platform]
	if !ok || name == "" {
		return "", false
	}
	return filepath.Join(c.dir, name), true
}

// Resolve returns the mapped path only if it is an existing regular file.
func (c *Catalog) Resolve(region models.Region, platform models.Platform) (string, bool) {
	path, ok := c.Path(region, platform)
	if !ok {
		return "", false
	}
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return path, true
}

// Availability reports which default files exist for every region.
func (c *Catalog) Availability() []models.RegionAvailability {
	out := make([]models.RegionAvailability, 0, len(models.Regions))
	for _, r := range models.Regions {
		a := models.RegionAvailability{
			Code:      r,
			Name:      r.DisplayName(),
			Platforms: make(map[string]bool, len(models.Platforms)),
		}
		for _, p := range models.Platforms {
			_, ok := c.Resolve(r, p)
			a.Platforms[string(p)] = ok
		}
		out = append(out, a)
	}
	return out
}
