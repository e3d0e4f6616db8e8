package checker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	exif "github.com/dsoprea/go-exif/v3"

	"github.com/PuerkitoBio/goquery"
	"github.com/nao1215/sitecheck/internal/model"
	"github.com/nao1215/sitecheck/internal/site"
)

// AssetChecker verifies referenced image assets: every locally-referenced
// image must exist on disk, and JPEG/TIFF images should not carry EXIF
// metadata. Published marketing images with EXIF leak camera, software, and
// sometimes GPS data; the EXIF results are advisory warnings and do not
// affect the exit code.
type AssetChecker struct {
	// exifCapable matches image paths in formats that can carry EXIF.
	exifCapable *regexp.Regexp
}

// NewAssetChecker creates a new AssetChecker.
func NewAssetChecker() *AssetChecker {
	return &AssetChecker{
		exifCapable: regexp.MustCompile(`(?i)\.(jpe?g|tiff?)$`),
	}
}

// Name returns the checker name.
func (c *AssetChecker) Name() string {
	return "assets"
}

// Category returns the check category.
func (c *AssetChecker) Category() string {
	return model.CategoryAssets
}

// Check runs the asset battery across every loaded page.
func (c *AssetChecker) Check(ctx context.Context, target *Target) []model.CheckResult {
	results := make([]model.CheckResult, 0)
	seen := make(map[string]bool)

	for _, page := range target.Site.Pages {
		select {
		case <-ctx.Done():
			return results
		default:
		}

		if page.Missing {
			continue
		}

		page.Doc.Find("img[src]").Each(func(_ int, img *goquery.Selection) {
			src, _ := img.Attr("src")
			if !site.IsInternalLink(src) {
				return
			}
			if seen[src] {
				return
			}
			seen[src] = true

			results = append(results, c.checkImage(target.Site, page.Name, src)...)
		})
	}

	return results
}

// checkImage verifies a single locally-referenced image.
func (c *AssetChecker) checkImage(s *site.Site, pageName, src string) []model.CheckResult {
	results := make([]model.CheckResult, 0, 2)

	existsName := "image file exists: " + src
	if !s.ResolveFile(src) {
		results = append(results, model.Fail(c.Category(), existsName, pageName,
			fmt.Sprintf("image %s does not exist under the site root", site.CleanTarget(src))).WithValue(src))
		return results
	}
	results = append(results, model.Pass(c.Category(), existsName, pageName).WithValue(src))

	if !c.exifCapable.MatchString(site.CleanTarget(src)) {
		return results
	}

	path := filepath.Join(s.Root, filepath.FromSlash(site.CleanTarget(src)))
	data, err := os.ReadFile(path) //nolint:gosec // Path resolved under the site root above
	if err != nil {
		return results
	}

	results = append(results, c.checkEXIF(pageName, src, data))
	return results
}

// checkEXIF flags EXIF metadata in published images. GPS tags are called
// out explicitly in the diagnostic.
func (c *AssetChecker) checkEXIF(pageName, src string, data []byte) model.CheckResult {
	name := "image free of EXIF metadata: " + src

	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil || rawExif == nil {
		return model.Pass(c.Category(), name, pageName).WithValue(src)
	}

	entries, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil || len(entries) == 0 {
		return model.Pass(c.Category(), name, pageName).WithValue(src)
	}

	hasGPS := false
	for _, entry := range entries {
		if strings.HasPrefix(entry.TagName, "GPS") {
			hasGPS = true
			break
		}
	}

	detail := fmt.Sprintf("%d EXIF tags present; strip metadata before publishing", len(entries))
	if hasGPS {
		detail = fmt.Sprintf("%d EXIF tags present including GPS coordinates; strip metadata before publishing", len(entries))
	}
	return model.Warn(c.Category(), name, pageName, detail).WithValue(src)
}
