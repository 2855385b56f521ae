package dot

import (
	"fmt"
	"regexp"
	"strconv"
)

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="(-?[0-9.]+)\s+(-?[0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// ResponsiveSVG rewrites the root element of a Graphviz SVG so the image
// scales with its container: a zero-origin viewBox plus pixel width and
// height taken from it. SVGs without a usable viewBox are returned as-is.
// The xlink namespace is kept because icon nodes reference images with it.
func ResponsiveSVG(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	loc := svgTagRe.FindIndex(svg)
	out := make([]byte, 0, len(svg)+len(root))
	out = append(out, svg[:loc[0]]...)
	out = append(out, root...)
	return append(out, svg[loc[1]:]...)
}
