package middleware

import (
	"net"

	"github.com/gin-gonic/gin"
)

// AllowFunc returns true when a request bypasses the limiter.
type AllowFunc func(*gin.Context) bool

// AllowPrivateIP lets loopback and RFC 1918 clients through.
func AllowPrivateIP() AllowFunc {
	return func(c *gin.Context) bool {
		parsed := net.ParseIP(ipFromCtx(c))
		return parsed != nil && (parsed.IsLoopback() || parsed.IsPrivate())
	}
}

// AllowPaths bypasses the limiter for the given route patterns.
func AllowPaths(paths ...string) AllowFunc {
	set := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		set[p] = struct{}{}
	}
	return func(c *gin.Context) bool {
		_, ok := set[c.FullPath()]
		return ok
	}
}

// AnyAllow combines allow funcs; nil entries are skipped.
func AnyAllow(fns ...AllowFunc) AllowFunc {
	return func(c *gin.Context) bool {
		for _, fn := range fns {
			if fn != nil && fn(c) {
				return true
			}
		}
		return false
	}
}
