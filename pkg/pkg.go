// Package pkg holds the identity of the twig project: its name, summary,
// version and authors.
package pkg

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version is the semantic version of twig embedded at build time.
var Version = strings.TrimSpace(version)

const (
	// Name is the command name. It also names the configuration and cache
	// directories and the config.twig file.
	Name = "twig"
	// Description is the one-line summary shown in help output.
	Description = "Tree-walking interpreter for a tiny expression language"
)

// AuthorInfo represents an individual author's name and email address.
type AuthorInfo struct {
	Name  string
	Email string
}

// Author lists the primary author(s) of the project.
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
