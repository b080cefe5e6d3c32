// Package web holds the monitor page.
package web

import (
	"embed"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
)

// DevEnv names the environment variable that makes Assets serve the page from
// the source tree, so that edits show up without rebuilding.
const DevEnv = "GATEPIPE_MONITOR_DEV"

//go:embed dist/*
var dist embed.FS

// Assets returns the file system that holds index.html.
func Assets() http.FileSystem {
	if devMode() {
		_, file, _, ok := runtime.Caller(0)
		if !ok {
			panic("cannot locate the monitor page sources")
		}

		return http.Dir(filepath.Join(filepath.Dir(file), "dist"))
	}

	sub, err := fs.Sub(dist, "dist")
	if err != nil {
		panic(err)
	}

	return http.FS(sub)
}

func devMode() bool {
	on, err := strconv.ParseBool(os.Getenv(DevEnv))

	return err == nil && on
}
