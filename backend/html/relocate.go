package html

import (
	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/thot/core/locate/resources"
)

var localImages = cascadia.MustCompile("img[src]")

// relocateImages copies local images to friend files next to the output
// and points their src attributes there. base is the path of the source
// document.
func (r *Renderer) relocateImages(base string) {
	for _, img := range localImages.MatchAll(r.page) {
		src := attr(img, "src")
		if resources.IsRemote(src) {
			continue
		}
		target, err := r.opts.Friends.Load(resources.Relocate(src, base))
		if err != nil {
			r.Warn(err)
			continue
		}
		tracer().Debugf("image %s relocated to %s", src, target)
		setAttr(img, "src", target)
	}
}
