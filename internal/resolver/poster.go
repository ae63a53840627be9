package resolver

import (
	"context"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

// PosterCandidates lists the file names tried under images/<key>/, in priority order.
var PosterCandidates = []string{
	"poster2.png",
	"tmnt.png",
	"poster2.jpg",
	"poster3.jpg",
	"poster4.jpg",
	"poster5.jpg",
	"poster.jpg",
}

// resolvePoster returns the URL path of the first candidate poster that
// exists for key, or the fallback.
func (r *Resolver) resolvePoster(ctx context.Context, key string) string {
	if r.posters == nil || !safeKey(key) {
		return r.fallbackPoster
	}
	for _, name := range PosterCandidates {
		ok, err := r.posters.Exists(ctx, "images/"+key+"/"+name)
		if err != nil {
			r.log.Warn("Poster lookup failed", zap.Error(err), zap.String("key", key), zap.String("candidate", name))
			continue
		}
		if ok {
			return "/images/" + url.PathEscape(key) + "/" + name
		}
	}
	return r.fallbackPoster
}

func safeKey(key string) bool {
	if key == "" || key == "." || key == ".." {
		return false
	}
	return !strings.ContainsAny(key, `/\`)
}
