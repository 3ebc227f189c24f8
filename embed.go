// Package rolodex provides embedded runtime resources: the annotated default
// configuration written by "rolodex init".
package rolodex

import (
	"embed"
	"io/fs"
)

//go:embed templates/config.yaml
var rawTemplates embed.FS

// Templates is the embedded templates filesystem with the "templates/" prefix stripped.
var Templates = mustSub(rawTemplates, "templates")

// ConfigTemplate is the name of the default config file inside Templates.
const ConfigTemplate = "config.yaml"

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// DefaultConfig returns the annotated default configuration file.
func DefaultConfig() []byte {
	data, err := fs.ReadFile(Templates, ConfigTemplate)
	if err != nil {
		panic(err)
	}
	return data
}
