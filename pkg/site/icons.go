package site

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

const svgOpen = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24" width="32" height="32" fill="none" stroke="currentColor" stroke-width="1.5" stroke-linecap="round" stroke-linejoin="round" aria-hidden="true">`

// builtinIcons covers the default service icons.
var builtinIcons = map[string]string{
	"material-symbols:lightbulb-outline-rounded": svgOpen + `<path d="M9 18h6"/><path d="M10 21h4"/><path d="M12 3a6 6 0 0 0-3.5 10.9c.6.4 1 1.1 1 1.8V16h5v-.3c0-.7.4-1.4 1-1.8A6 6 0 0 0 12 3z"/></svg>`,
	"carbon:reference-architecture":              svgOpen + `<rect x="3" y="3" width="7" height="7"/><rect x="14" y="3" width="7" height="7"/><rect x="8.5" y="14" width="7" height="7"/><path d="M6.5 10v2h11v-2"/><path d="M12 12v2"/></svg>`,
	"fluent:view-desktop-mobile-20-regular":      svgOpen + `<rect x="2" y="4" width="14" height="10" rx="1"/><path d="M6 18h6"/><rect x="17" y="8" width="5" height="12" rx="1"/></svg>`,
	"tabler:device-analytics":                    svgOpen + `<rect x="3" y="4" width="18" height="12" rx="1"/><path d="M7 20h10"/><path d="M9 16v4"/><path d="M15 16v4"/><path d="M8 12l3-3 2 2 3-3"/></svg>`,
	"ic:round-security":                          svgOpen + `<path d="M12 3l8 3v6c0 4.5-3.4 8.3-8 9-4.6-.7-8-4.5-8-9V6l8-3z"/><path d="M9 12l2 2 4-4"/></svg>`,
	"gridicons:custom-post-type":                 svgOpen + `<rect x="3" y="3" width="18" height="18" rx="2"/><circle cx="8" cy="8" r="1.5"/><path d="M7 13h10"/><path d="M7 17h6"/></svg>`,
}

var (
	iconPolicyOnce sync.Once
	iconPolicy     *bluemonday.Policy
)

// IconMarkup returns sanitized inline SVG for a service. Custom markup wins
// over the named icon; unknown names yield "".
func IconMarkup(service Service) string {
	raw := strings.TrimSpace(service.IconSVG)
	if raw == "" {
		raw = builtinIcons[service.Icon]
	}
	return SanitizeIcon(raw)
}

// SanitizeIcon strips everything but a conservative SVG subset.
func SanitizeIcon(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(iconSanitizer().Sanitize(trimmed))
}

func iconSanitizer() *bluemonday.Policy {
	iconPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("svg", "g", "path", "circle", "rect", "line", "polyline", "polygon", "ellipse", "title")

		policy.AllowAttrs(
			"xmlns", "viewBox", "width", "height", "fill", "stroke",
			"stroke-width", "stroke-linecap", "stroke-linejoin", "aria-hidden",
			"role", "focusable", "class",
		).OnElements("svg")

		for _, el := range []string{"path", "circle", "rect", "line", "polyline", "polygon", "ellipse"} {
			policy.AllowAttrs(
				"d", "cx", "cy", "r", "x", "y", "x1", "y1", "x2", "y2",
				"points", "rx", "ry", "width", "height", "fill", "stroke",
				"stroke-width", "stroke-linecap", "stroke-linejoin", "class",
			).OnElements(el)
		}
		policy.AllowAttrs("class").OnElements("g")

		iconPolicy = policy
	})
	return iconPolicy
}
