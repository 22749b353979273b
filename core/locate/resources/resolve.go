package resources

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"
	"strings"

	"github.com/npillmayer/thot/core"
	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

type resourceType int

// resource types
const (
	unknownResourceType resourceType = iota
	imageResourceType
	friendResourceType
)

// NotFound returns an application error for a missing resource.
func NotFound(res string, rtype resourceType) error {
	e := fmt.Errorf("resource missing: %v", res)
	var s string
	switch rtype {
	case imageResourceType:
		s = fmt.Sprintf("image not found: %s", res)
	case friendResourceType:
		s = fmt.Sprintf("cannot copy file %s", res)
	default:
		s = fmt.Sprintf("resource not found: %s", res)
	}
	return core.WrapError(e, core.EMISSING, s)
}

// --- Images ---------------------------------------------------------------

// ImageInfo describes a probed image.
type ImageInfo struct {
	Path   string // local path of the image file
	Format string // "png", "jpeg", "gif", …
	Width  int    // natural width in pixels
	Height int    // natural height in pixels
}

// IsRemote is true for URLs which have to be downloaded.
func IsRemote(url string) bool {
	return strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")
}

type infoPlusErr struct {
	info ImageInfo
	err  error
}

// ImagePromise delivers the result of ResolveImage.
type ImagePromise interface {
	ImageInfo() (ImageInfo, error)
	Await(ctx context.Context) (ImageInfo, error)
}

type imageLoader struct {
	await func(ctx context.Context) (ImageInfo, error)
}

func (loader imageLoader) ImageInfo() (ImageInfo, error) {
	return loader.await(context.Background())
}

func (loader imageLoader) Await(ctx context.Context) (ImageInfo, error) {
	return loader.await(ctx)
}

// ResolveImage probes an image file. Relative paths are interpreted relative
// to base. Remote images are downloaded into the cache directory first.
// Missing or undecodable images result in an EMISSING error.
func ResolveImage(url string, base string) ImagePromise {
	ch := make(chan infoPlusErr, 1)
	go func(ch chan<- infoPlusErr) {
		defer close(ch)
		result := infoPlusErr{}
		path := url
		if IsRemote(url) {
			var err error
			if path, err = CachedFile(url, "images"); err != nil {
				result.err = core.WrapError(err, core.EMISSING, "cannot download image %s", url)
				ch <- result
				return
			}
		} else {
			path = Relocate(url, base)
		}
		result.info, result.err = probe(path)
		if result.err != nil {
			tracer().Errorf("image %s: %v", url, result.err)
		}
		ch <- result
	}(ch)
	return imageLoader{
		await: func(ctx context.Context) (ImageInfo, error) {
			select {
			case <-ctx.Done():
				return ImageInfo{}, ctx.Err()
			case r := <-ch:
				return r.info, r.err
			}
		},
	}
}

func probe(path string) (ImageInfo, error) {
	info := ImageInfo{Path: path}
	file, err := os.Open(path)
	if err != nil {
		return info, NotFound(path, imageResourceType)
	}
	defer file.Close()
	cfg, format, err := image.DecodeConfig(file)
	if err != nil {
		return info, core.WrapError(err, core.EMISSING, "cannot decode image %s", path)
	}
	info.Format, info.Width, info.Height = format, cfg.Width, cfg.Height
	tracer().Debugf("image %s: %s %dx%d", path, format, cfg.Width, cfg.Height)
	return info, nil
}
