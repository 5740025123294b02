package installer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// InstallerMode is the line prepended to every script served to a command-line client.
const InstallerMode = "export TAVX_INSTALLER_MODE=true\n"

const (
	contentTypeHTML  = "text/html;charset=UTF-8"
	contentTypePlain = "text/plain;charset=UTF-8"
)

// ErrUpstreamStatus is reported when the script origin answers with a non-2xx status.
var ErrUpstreamStatus = errors.New("GitHub Error")

// StatusError carries the status code behind ErrUpstreamStatus.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return ErrUpstreamStatus.Error()
}

func (e *StatusError) Unwrap() error {
	return ErrUpstreamStatus
}

// Doer sends a single HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Response is a complete answer to one inbound request.
type Response struct {
	Status      int
	ContentType string
	Body        []byte
}

// #############################################################################
// # Core Installer
// #############################################################################

type Installer struct {
	Config Config

	client   Doer
	now      func() time.Time
	page     []byte
	dispatch map[ClientKind]func(ctx context.Context) Response
}

// Option customises an Installer.
type Option func(*Installer)

// WithDoer replaces the HTTP client used to fetch the script.
func WithDoer(d Doer) Option {
	return func(i *Installer) { i.client = d }
}

// WithClock replaces the clock used for the cache-busting parameter.
func WithClock(now func() time.Time) Option {
	return func(i *Installer) { i.now = now }
}

// NewInstaller creates an Installer and renders its landing page.
func NewInstaller(cfg Config, opts ...Option) (*Installer, error) {
	if _, err := url.Parse(cfg.ScriptURL); err != nil {
		return nil, fmt.Errorf("error parsing script URL: %w", err)
	}

	page, err := renderLandingPage(cfg.InstallCommand)
	if err != nil {
		return nil, err
	}

	i := &Installer{
		Config: cfg,
		client: &http.Client{
			Timeout: time.Second * time.Duration(cfg.Timeout),
		},
		now:  time.Now,
		page: page,
	}
	for _, opt := range opts {
		opt(i)
	}

	i.dispatch = map[ClientKind]func(ctx context.Context) Response{
		Browser: func(context.Context) Response {
			return i.LandingPage()
		},
		CommandLineClient: i.serveScript,
	}
	return i, nil
}

// Serve classifies the client by its User-Agent and builds the matching response.
func (i *Installer) Serve(ctx context.Context, userAgent string) Response {
	return i.dispatch[Classify(userAgent, i.Config.CLIAgents)](ctx)
}

// LandingPage returns the HTML page shown to browsers.
func (i *Installer) LandingPage() Response {
	return Response{
		Status:      http.StatusOK,
		ContentType: contentTypeHTML,
		Body:        i.page,
	}
}

func (i *Installer) serveScript(ctx context.Context) Response {
	script, err := i.FetchScript(ctx)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) {
			log.Printf("ERROR: script origin returned status %d", se.StatusCode)
		} else {
			log.Printf("ERROR: fetching script: %v", err)
		}
		return ErrorScript(err)
	}

	return Response{
		Status:      http.StatusOK,
		ContentType: contentTypePlain,
		Body:        Inject(script),
	}
}

// ScriptURL returns the script location with a fresh t=<unix ms> query parameter.
func (i *Installer) ScriptURL() string {
	u, _ := url.Parse(i.Config.ScriptURL)
	v := u.Query()
	v.Set("t", strconv.FormatInt(i.now().UnixMilli(), 10))
	u.RawQuery = v.Encode()
	return u.String()
}

// FetchScript downloads the script once. There are no retries.
func (i *Installer) FetchScript(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, i.ScriptURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("error building request: %w", err)
	}
	req.Header.Set("User-Agent", i.Config.UserAgent)
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := i.client.Do(req)
	if err != nil {
		// keep the cause only, the url.Error form quotes the whole URL
		var ue *url.Error
		if errors.As(err, &ue) {
			return nil, ue.Err
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading script body: %w", err)
	}
	return body, nil
}

// Inject prepends InstallerMode to script and leaves the rest untouched.
func Inject(script []byte) []byte {
	out := make([]byte, 0, len(InstallerMode)+len(script))
	out = append(out, InstallerMode...)
	return append(out, script...)
}

// ErrorScript turns a fetch failure into a 502 whose body is itself a shell
// script that prints the failure.
func ErrorScript(err error) Response {
	msg := err.Error()
	if errors.Is(err, ErrUpstreamStatus) {
		msg = ErrUpstreamStatus.Error()
	}
	return Response{
		Status:      http.StatusBadGateway,
		ContentType: contentTypePlain,
		Body:        []byte(fmt.Sprintf("#!/bin/bash\necho \"Error: Fetch failed - %s\"", msg)),
	}
}
