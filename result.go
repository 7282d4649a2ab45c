/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Seednode/flames/games/flames"
	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

const qrSize = 320

// siteRoot is the absolute URL of the prefix the request came in under.
func siteRoot(cfg *Config, r *http.Request) string {
	return requestScheme(r) + "://" + r.Host + cfg.prefix
}

// resultLink is the shareable result page for a pair of names under base.
func resultLink(base, nameA, nameB string) string {
	q := url.Values{}
	q.Set("a", nameA)
	q.Set("b", nameB)

	return base + "/result?" + q.Encode()
}

func resultURL(cfg *Config, r *http.Request, nameA, nameB string) string {
	return resultLink(siteRoot(cfg, r), nameA, nameB)
}

func resultCard(cfg *Config, round flames.Round, pageURL string) string {
	rel := round.Relationship
	nameA := round.NameA.Original
	nameB := round.NameB.Original

	var b strings.Builder

	b.WriteString(pageHead(cfg, html.EscapeString("FLAMES Result: "+rel.Name)))
	b.WriteString(`<body><main class="card">`)
	b.WriteString(fmt.Sprintf(`<div class="result %s">`, strings.ToLower(rel.Name)))
	b.WriteString(fmt.Sprintf(`<div class="result-icon">%s</div><h2>%s</h2>`, rel.Icon, html.EscapeString(rel.Name)))
	b.WriteString(fmt.Sprintf(`<div class="result-names"><span class="result-name">%s</span><span class="result-connector">&amp;</span><span class="result-name">%s</span></div>`,
		html.EscapeString(nameA), html.EscapeString(nameB)))
	b.WriteString(fmt.Sprintf(`<p>%s</p></div>`, html.EscapeString(rel.Message)))

	b.WriteString(`<ol class="trace">`)
	for _, s := range round.Elimination.Order {
		b.WriteString(fmt.Sprintf(`<li>Counted %d, struck <span class="struck">%s</span></li>`,
			round.Elimination.Count, s.Letter))
	}
	b.WriteString(`</ol>`)

	b.WriteString(`<div class="share-actions">`)
	for _, l := range flames.ShareLinks(nameA, nameB, rel, pageURL) {
		b.WriteString(fmt.Sprintf(`<a class="share-option" href="%s" target="_blank" rel="noopener">%s %s</a>`,
			html.EscapeString(l.URL), l.Icon, l.Name))
	}
	b.WriteString(`</div>`)

	q := url.Values{}
	q.Set("a", nameA)
	q.Set("b", nameB)
	b.WriteString(fmt.Sprintf(`<img class="qr" alt="QR code for this result" src="%s/result/qr?%s">`,
		cfg.prefix, html.EscapeString(q.Encode())))

	b.WriteString(fmt.Sprintf(`<pre class="share-text">%s</pre>`, html.EscapeString(flames.ShareText(nameA, nameB, rel))))
	b.WriteString(fmt.Sprintf(`<p><a class="flames-btn reset-btn" href="%s/">Try Another Pair</a></p>`, cfg.prefix))
	b.WriteString(`</main></body></html>`)

	return b.String()
}

func serveResultPage(cfg *Config, m *Metrics, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		startTime := time.Now()

		nameA, nameB := r.URL.Query().Get("a"), r.URL.Query().Get("b")

		round, err := flames.Play(nameA, nameB)
		if err != nil {
			status, msg, reason := roundStatus(err)
			m.refused("page", reason)

			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			securityHeaders(cfg, w)
			w.WriteHeader(status)

			if _, err := w.Write([]byte(newPage("FLAMES", msg))); err != nil {
				errs <- err
			}

			return
		}

		m.played("page", round.Relationship.Name)

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		securityHeaders(cfg, w)

		written, err := w.Write([]byte(resultCard(cfg, round, resultURL(cfg, r, nameA, nameB))))
		if err != nil {
			errs <- err

			return
		}

		logf(cfg, "SERVE: %s result page (%s) to %s in %s",
			round.Relationship.Name,
			humanReadableSize(int64(written)),
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}

// serveResultQR encodes the shareable result URL for the given names.
func serveResultQR(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		nameA, nameB := r.URL.Query().Get("a"), r.URL.Query().Get("b")
		if strings.TrimSpace(nameA) == "" || strings.TrimSpace(nameB) == "" {
			http.Error(w, "missing names", http.StatusBadRequest)
			return
		}

		writeQR(cfg, w, resultURL(cfg, r, nameA, nameB), errs)
	}
}

func writeQR(cfg *Config, w http.ResponseWriter, content string, errs chan<- error) {
	png, err := qrcode.Encode(content, qrcode.Medium, qrSize)
	if err != nil {
		http.Error(w, "qr generation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	securityHeaders(cfg, w)

	if _, err := w.Write(png); err != nil {
		errs <- err
	}
}

func registerResultPages(cfg *Config, m *Metrics, mux *httprouter.Router, errs chan<- error) {
	mux.GET(cfg.prefix+"/result", serveResultPage(cfg, m, errs))
	mux.GET(cfg.prefix+"/result/qr", serveResultQR(cfg, errs))
}
