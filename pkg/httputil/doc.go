// Package httputil provides the HTTP client shared by all sources.
//
// # Overview
//
// [Client] wraps net/http with the pieces every scraper needs:
//
//   - A request timeout and a User-Agent header on every request
//   - Status classification into coded FETCH_FAILED errors
//   - A body size limit so a misbehaving server cannot exhaust memory
//   - Optional page caching via [cache.Cache] for pages that rarely change
//
// There are no retries: a failed request fails the run.
//
// # Usage
//
//	client := httputil.NewClient(cache.NewNullCache(),
//	    httputil.WithTimeout(10*time.Second),
//	    httputil.WithUserAgent(buildinfo.UserAgent()))
//	body, err := client.Get(ctx, "https://www.ajokeaday.com/")
//	page, err := client.GetCached(ctx, catalogURL, cache.TTLPage)
package httputil
