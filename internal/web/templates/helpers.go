// Package templates holds the templ components of the catalog admin UI.
//
// Edit the .templ sources and regenerate with `templ generate`; the
// _templ.go files are generated code.
package templates

// maxThumbnails is how many images a table row shows.
const maxThumbnails = 3

// thumbnails returns the images shown in a table row.
func thumbnails(images []string) []string {
	if len(images) > maxThumbnails {
		return images[:maxThumbnails]
	}
	return images
}
