// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package menu

import (
	"strconv"
	"strings"
)

// Variant selects the resize parameters for an image URL.
type Variant int

const (
	VariantCard Variant = iota
	VariantModal
	VariantThumbnail
	VariantHero
)

type resizeParams struct {
	width   int
	height  int
	quality int
	format  string
	resize  string
}

var variantParams = map[Variant]resizeParams{
	VariantCard:      {width: 400, quality: 70, format: "webp", resize: "cover"},
	VariantModal:     {width: 800, quality: 80, format: "webp", resize: "cover"},
	VariantThumbnail: {width: 150, quality: 60, format: "webp", resize: "cover"},
	VariantHero:      {width: 1200, quality: 85, format: "webp", resize: "cover"},
}

const (
	// DefaultLegacyPrefix is stripped from stored image paths that still
	// point at the old sub-path deployment.
	DefaultLegacyPrefix = "/bukhara/"

	placeholderPath = "/images/background/uzbek-pattern.jpg"
)

// DefaultResizeHosts are hosts whose storage resizes images on the fly.
var DefaultResizeHosts = []string{"supabase.co", "supabase.in"}

// ObjectStore maps object keys to public URLs and back.
type ObjectStore interface {
	FileURL(key string) string
	ExtractS3Key(rawURL string) (string, bool)
}

// ImageResolver turns stored image references into URLs a client can load.
type ImageResolver struct {
	basePath     string
	legacyPrefix string
	resizeHosts  []string
	objects      ObjectStore
}

// ImageOptions configures an ImageResolver. Zero values pick defaults.
type ImageOptions struct {
	BasePath     string
	LegacyPrefix string
	ResizeHosts  []string

	// Objects resolves bare object keys ("dishes/plov.jpg") to public
	// storage URLs. May be nil.
	Objects ObjectStore
}

// NewImageResolver creates an ImageResolver.
func NewImageResolver(opts ImageOptions) *ImageResolver {
	if opts.LegacyPrefix == "" {
		opts.LegacyPrefix = DefaultLegacyPrefix
	}
	if opts.ResizeHosts == nil {
		opts.ResizeHosts = DefaultResizeHosts
	}
	return &ImageResolver{
		basePath:     strings.TrimRight(opts.BasePath, "/"),
		legacyPrefix: opts.LegacyPrefix,
		resizeHosts:  opts.ResizeHosts,
		objects:      opts.Objects,
	}
}

// Placeholder returns the URL of the fallback image.
func (ir *ImageResolver) Placeholder() string {
	return ir.basePath + placeholderPath
}

// Resolve returns the URL for a stored image reference in the given
// variant, or the placeholder when ref is empty.
func (ir *ImageResolver) Resolve(ref string, v Variant) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ir.Placeholder()
	}

	var u string
	switch {
	case isAbsoluteURL(ref):
		u = ref
	case ir.objects != nil && !strings.HasPrefix(ref, "/"):
		u = ir.objects.FileURL(ref)
	default:
		u = ir.localPath(ref)
	}

	if ir.resizable(u) {
		return withResize(u, variantParams[v])
	}
	return u
}

func (ir *ImageResolver) localPath(ref string) string {
	if strings.HasPrefix(ref, ir.legacyPrefix) {
		ref = "/" + strings.TrimPrefix(ref, ir.legacyPrefix)
	}
	if !strings.HasPrefix(ref, "/") {
		ref = "/" + ref
	}
	return ir.basePath + ref
}

func (ir *ImageResolver) resizable(u string) bool {
	if !isAbsoluteURL(u) {
		return false
	}
	for _, h := range ir.resizeHosts {
		if strings.Contains(u, h) {
			return true
		}
	}
	if ir.objects != nil {
		if _, ok := ir.objects.ExtractS3Key(u); ok {
			return true
		}
	}
	return false
}

func isAbsoluteURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// withResize appends transformation parameters in the order the image
// service documents them: width, height, quality, format, resize.
func withResize(u string, p resizeParams) string {
	var params []string
	if p.width > 0 {
		params = append(params, "width="+strconv.Itoa(p.width))
	}
	if p.height > 0 {
		params = append(params, "height="+strconv.Itoa(p.height))
	}
	if p.quality > 0 {
		params = append(params, "quality="+strconv.Itoa(p.quality))
	}
	if p.format != "" {
		params = append(params, "format="+p.format)
	}
	if p.resize != "" {
		params = append(params, "resize="+p.resize)
	}
	if len(params) == 0 {
		return u
	}

	sep := "?"
	if strings.Contains(u, "?") {
		sep = "&"
	}
	return u + sep + strings.Join(params, "&")
}
