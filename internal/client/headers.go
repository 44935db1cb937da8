package client

import (
	"fmt"
	"math/rand"
	"net/url"
	"sync"

	http "github.com/bogdanfinn/fhttp"
)

type profile struct {
	ua        string
	secCHUA   string
	platform  string
	langIdx   int
	cacheIdx  int
	encIdx    int
	sendCache bool
}

var (
	langOpts = []string{
		"en-US,en;q=0.9",
		"en-PH,en;q=0.9,en-US;q=0.8",
		"en-GB,en;q=0.9,en-US;q=0.8",
		"en,en-US;q=0.9",
	}
	encOpts = []string{
		"gzip, deflate, br",
		"gzip, deflate, br, zstd",
	}
	cacheOpts = []string{
		"no-cache",
		"max-age=0",
	}
	platforms = []string{"Windows", "macOS", "Linux"}

	headerOrder = []string{
		"Accept",
		"Accept-Language",
		"Accept-Encoding",
		"User-Agent",
		"Sec-CH-UA",
		"Sec-CH-UA-Mobile",
		"Sec-CH-UA-Platform",
		"Sec-Fetch-Site",
		"Sec-Fetch-Mode",
		"Sec-Fetch-Dest",
		"Cache-Control",
		"Referer",
		"Priority",
	}
)

var profilePool = sync.Pool{
	New: func() interface{} {
		return generateProfile()
	},
}

func generateProfile() profile {
	platform := platforms[rand.Intn(len(platforms))]
	major := rand.Intn(6) + 120
	var osPart string
	switch platform {
	case "Windows":
		osPart = "Windows NT 10.0; Win64; x64"
	case "macOS":
		osPart = "Macintosh; Intel Mac OS X 10_15_7"
	default:
		osPart = "X11; Linux x86_64"
	}
	ua := fmt.Sprintf(
		"Mozilla/5.0 (%s) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/%d.0.0.0 Safari/537.36",
		osPart, major,
	)
	return profile{
		ua:        ua,
		secCHUA:   fmt.Sprintf(`"Not_A Brand";v="8", "Chromium";v="%d", "Google Chrome";v="%d"`, major, major),
		platform:  platform,
		langIdx:   rand.Intn(len(langOpts)),
		cacheIdx:  rand.Intn(len(cacheOpts)),
		encIdx:    rand.Intn(len(encOpts)),
		sendCache: rand.Float64() < 0.5,
	}
}

// BuildHeaders returns browser-like headers for a same-origin JSON fetch of rawURL.
func BuildHeaders(rawURL string) http.Header {
	p := profilePool.Get().(profile)
	defer profilePool.Put(p)

	h := http.Header{}
	h.Set("Accept", "application/json, text/plain, */*")
	h.Set("Accept-Language", langOpts[p.langIdx])
	h.Set("Accept-Encoding", encOpts[p.encIdx])
	h.Set("User-Agent", p.ua)
	h.Set("Sec-CH-UA", p.secCHUA)
	h.Set("Sec-CH-UA-Mobile", "?0")
	h.Set("Sec-CH-UA-Platform", `"`+p.platform+`"`)
	h.Set("Sec-Fetch-Site", "same-origin")
	h.Set("Sec-Fetch-Mode", "cors")
	h.Set("Sec-Fetch-Dest", "empty")
	h.Set("Priority", "u=1, i")
	if p.sendCache {
		h.Set("Cache-Control", cacheOpts[p.cacheIdx])
	}
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		h.Set("Referer", u.Scheme+"://"+u.Host+"/")
	}

	h[http.HeaderOrderKey] = headerOrder
	return h
}

// InitProfilePool pre-generates count header profiles.
func InitProfilePool(count int) {
	for i := 0; i < count; i++ {
		profilePool.Put(generateProfile())
	}
}
