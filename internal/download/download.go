// Package download fetches remote resources into memory.
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/h2non/filetype"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; rv:109.0) Gecko/20100101 Firefox/115.0"

// MaxSize bounds a fetched body.
const MaxSize = 32 << 20

// Resource is a fetched body with the name and type derived from the response.
type Resource struct {
	Name string
	MIME string
	Ext  string
	Data []byte
}

// Client fetches URLs. The zero value uses a 60 second timeout.
type Client struct {
	HTTP *http.Client
}

// Fetch downloads url into memory. The type is sniffed from the content, falling back to the
// Content-Type header. The name comes from Content-Disposition or the URL path.
func (c *Client) Fetch(ctx context.Context, url string) (*Resource, error) {
	hc := c.HTTP
	if hc == nil {
		hc = &http.Client{Timeout: 60 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download: HTTP %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxSize+1))
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	if len(data) > MaxSize {
		return nil, fmt.Errorf("download: body larger than %d bytes", MaxSize)
	}

	res := &Resource{Data: data}
	if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
		res.MIME, res.Ext = kind.MIME.Value, "."+kind.Extension
	} else {
		res.MIME = mediaType(resp.Header.Get("Content-Type"))
	}
	name := filenameFromContentDisposition(resp.Header.Get("Content-Disposition"))
	if name == "" {
		name = filenameFromURL(url)
	}
	res.Name = sanitizeFilename(name)
	if res.Ext != "" && !strings.HasSuffix(strings.ToLower(res.Name), res.Ext) {
		res.Name += res.Ext
	}
	return res, nil
}

func mediaType(ct string) string {
	ct = strings.ToLower(strings.TrimSpace(ct))
	if idx := strings.Index(ct, ";"); idx >= 0 {
		ct = ct[:idx]
	}
	return strings.TrimSpace(ct)
}

func filenameFromContentDisposition(cd string) string {
	cd = strings.TrimSpace(cd)
	// filename="..."; or filename*=UTF-8''...
	if i := strings.Index(cd, "filename*=UTF-8''"); i >= 0 {
		s := cd[i+len("filename*=UTF-8''"):]
		if j := strings.IndexAny(s, ";\r\n"); j >= 0 {
			s = s[:j]
		}
		return strings.Trim(s, "\"")
	}
	if i := strings.Index(cd, "filename="); i >= 0 {
		s := cd[i+len("filename="):]
		if j := strings.IndexAny(s, ";\r\n"); j >= 0 {
			s = s[:j]
		}
		return strings.Trim(s, "\" ")
	}
	return ""
}

func filenameFromURL(url string) string {
	p := url
	if idx := strings.IndexAny(p, "?#"); idx >= 0 {
		p = p[:idx]
	}
	if i := strings.Index(p, "://"); i >= 0 {
		p = p[i+3:]
		if j := strings.Index(p, "/"); j >= 0 {
			p = p[j:]
		} else {
			p = ""
		}
	}
	base := path.Base(p)
	if base == "/" || base == "." {
		return ""
	}
	return base
}

var safeNameRe = regexp.MustCompile(`[^a-zA-Z0-9_.-]+`)

func sanitizeFilename(name string) string {
	if name == "" {
		return "download"
	}
	name = safeNameRe.ReplaceAllString(name, "_")
	if len(name) > 96 {
		name = name[:96]
	}
	return name
}
