package resources

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"

	"github.com/npillmayer/schuko/gconf"
)

// DownloadCachedFile will download a url to a local file (usually located in the
// user's cache directory).
func DownloadCachedFile(filepath string, url string) error {
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download of %s: %s", url, resp.Status)
	}
	out, err := os.Create(filepath)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.Copy(out, resp.Body)
	return err
}

// appKey is the application's folder in the user's cache directory, taken as
// `thot.app-key` from the global configuration.
func appKey() string {
	if key := gconf.GetString("thot.app-key"); key != "" {
		return key
	}
	return "thot"
}

// CacheDirPath checks and possibly creates a folder in the user's cache
// directory. The base cache directory is taken from `os.UserCacheDir()`, plus
// an application specific key (see appKey).
// Clients may specify a sequence of folder names, which will be appended to
// the base cache path. Non-existing sub-folders will be created as necessary
// (with permissions 755).
func CacheDirPath(subfolders ...string) (string, error) {
	cachedir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	subs := path.Join(subfolders...)
	cachedir = path.Join(cachedir, appKey(), subs)
	tracer().Infof("caching in %s", cachedir)
	_, err = os.Stat(cachedir)
	if os.IsNotExist(err) {
		err = os.MkdirAll(cachedir, 0755)
		if err != nil {
			return "", err
		}
	}
	return cachedir, nil
}

// CachedFile returns the local copy of a remote file, downloading it if it
// is not in the cache yet. Cached files are named after a hash of the URL.
func CachedFile(url string, subfolder string) (string, error) {
	dir, err := CacheDirPath(subfolder)
	if err != nil {
		return "", err
	}
	sum := sha1.Sum([]byte(url))
	name := hex.EncodeToString(sum[:]) + path.Ext(url)
	fpath := path.Join(dir, name)
	if _, err := os.Stat(fpath); err == nil {
		tracer().Debugf("%s found in cache", url)
		return fpath, nil
	}
	if err := DownloadCachedFile(fpath, url); err != nil {
		os.Remove(fpath)
		return "", err
	}
	return fpath, nil
}
