// Package announce sends the startup pingback and caches the short
// announcement the server answers with.
//
// Pingback is fire-and-forget: it starts one goroutine per call and returns.
// The goroutine's outcome is only logged (and handed to an optional
// Recorder); nothing is ever reported back to the caller. The goroutine may
// still be running when the program exits.
package announce

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/net/http/httpproxy"

	"pingback/internal/fingerprint"
)

// MaxAnnouncementLen is the largest first line, in bytes, that is accepted
// as an announcement. Anything longer is assumed to come from a proxy.
const MaxAnnouncementLen = 140

// ErrDisabled is returned by URL when the endpoint is not an http(s) URL.
var ErrDisabled = errors.New("pingback disabled: endpoint is not an http(s) URL")

// Pinger holds what every attempt needs. It is copied into each worker
// goroutine, so changing it after Pingback has no effect on running attempts.
type Pinger struct {
	// Endpoint is the base URL for this platform; the escaped version is
	// appended to it verbatim.
	Endpoint string
	// Fingerprinter defaults to the native one for the build target.
	Fingerprinter fingerprint.Fingerprinter
	// Client is used for the request. When nil every attempt gets its own
	// zero-value http.Client.
	Client   *http.Client
	Recorder Recorder
	Log      zerolog.Logger
}

// pingContext is owned by exactly one worker goroutine.
type pingContext struct {
	id           string
	version      string
	announcePath string
}

// Pingback reports version and platform to the endpoint in the background
// and stores the announcement at announcePath. It never blocks and never
// fails observably.
func (p *Pinger) Pingback(version, announcePath string) {
	pc := pingContext{
		id:           newAttemptID(),
		version:      version,
		announcePath: announcePath,
	}

	w := *p
	go w.run(pc)
}

// URL returns the request URL a pingback for version would use, without
// sending anything.
func (p *Pinger) URL(version string) (string, error) {
	if !strings.HasPrefix(p.Endpoint, "http") {
		return "", ErrDisabled
	}

	fp, err := p.fingerprinter().Fingerprint()
	if err != nil {
		return "", fmt.Errorf("fingerprinting host: %w", err)
	}

	return p.Endpoint + fingerprint.Escape(version) + "?" + fp.Encode(), nil
}

func (p Pinger) fingerprinter() fingerprint.Fingerprinter {
	if p.Fingerprinter != nil {
		return p.Fingerprinter
	}
	fp, _ := fingerprint.New(fingerprint.KindNative)
	return fp
}

func (p Pinger) run(pc pingContext) Result {
	res := Result{
		ID:           pc.id,
		Version:      pc.version,
		AnnouncePath: pc.announcePath,
		Started:      time.Now(),
	}

	log := p.Log.With().Str("attempt", pc.id).Logger()
	p.attempt(pc, &res, log)

	res.Finished = time.Now()
	if p.Recorder != nil {
		p.Recorder.Record(res)
	}
	return res
}

func (p Pinger) attempt(pc pingContext, res *Result, log zerolog.Logger) {
	target, err := p.URL(pc.version)
	if errors.Is(err, ErrDisabled) {
		res.Outcome = OutcomeDisabled
		log.Debug().Str("endpoint", p.Endpoint).Msg("Pingback disabled")
		return
	}
	if err != nil {
		res.Outcome = OutcomeFingerprintFailed
		res.Error = err.Error()
		log.Debug().Err(err).Msg("Pingback skipped")
		return
	}
	res.URL = target

	client := p.Client
	if client == nil {
		client = &http.Client{}
	}

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, target, nil)
	if err != nil {
		res.Outcome = OutcomeTransportError
		res.Error = err.Error()
		log.Error().Err(err).Str("url", target).Msg("Pingback request failed")
		return
	}

	resp, err := client.Do(req)
	if err != nil {
		res.Outcome = OutcomeTransportError
		res.Error = err.Error()
		log.Error().Err(err).Str("url", target).Msg("Pingback request failed")
		return
	}
	defer resp.Body.Close()

	res.StatusCode = resp.StatusCode
	if resp.StatusCode != http.StatusOK {
		res.Outcome = OutcomeBadStatus
		log.Warn().Int("status", resp.StatusCode).Msg("Bad HTTP status")
		return
	}

	line, err := readFirstLine(resp.Body, MaxAnnouncementLen+1)
	if err != nil {
		res.Outcome = OutcomeTransportError
		res.Error = err.Error()
		log.Error().Err(err).Msg("Reading pingback response failed")
		return
	}

	if len(line) > MaxAnnouncementLen {
		res.Outcome = OutcomeTooLong
		log.Warn().
			Str("proxy", proxyFor(target)).
			Msg("Announcement string is too long (probably behind a proxy)")
		return
	}

	res.Announcement = line
	log.Info().Str("announcement", line).Msg("Announcement received")

	// Written even when empty: no announcement is an announcement too.
	if err := os.WriteFile(pc.announcePath, []byte(line), 0644); err != nil {
		res.Outcome = OutcomeWriteFailed
		res.Error = err.Error()
		log.Error().Err(err).Str("path", pc.announcePath).Msg("Failed to write announcement")
		return
	}
	res.Outcome = OutcomeWritten
}

// readFirstLine reads at most limit bytes and returns everything before the
// first newline.
func readFirstLine(r io.Reader, limit int64) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit))
	if err != nil {
		return "", err
	}
	if nl := bytes.IndexByte(data, '\n'); nl >= 0 {
		data = data[:nl]
	}
	return string(data), nil
}

// proxyFor names the environment proxy a default client would use for
// target, or "none".
func proxyFor(target string) string {
	u, err := url.Parse(target)
	if err != nil {
		return "none"
	}
	proxy, err := httpproxy.FromEnvironment().ProxyFunc()(u)
	if err != nil || proxy == nil {
		return "none"
	}
	return proxy.Redacted()
}

func newAttemptID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
