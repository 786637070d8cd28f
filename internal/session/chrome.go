package session

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"github.com/routelight/routelight/internal/auth"
)

// ChromeBrowser allocates isolated headless Chrome contexts via
// chromedp. Each context gets its own Chrome process with a private
// user data directory, so nothing is shared between sessions.
type ChromeBrowser struct {
	// execPath optionally pins the Chrome binary. Empty means chromedp's
	// default lookup.
	execPath string
}

// ChromeOption configures a ChromeBrowser.
type ChromeOption func(*ChromeBrowser)

// WithExecPath pins the Chrome binary to use instead of the default lookup.
func WithExecPath(path string) ChromeOption {
	return func(b *ChromeBrowser) {
		b.execPath = path
	}
}

// NewChromeBrowser creates a chromedp-backed Browser.
func NewChromeBrowser(opts ...ChromeOption) *ChromeBrowser {
	b := &ChromeBrowser{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewContext allocates a fresh headless Chrome context listening on the
// spec's debugging port, with a private temporary user data directory.
func (b *ChromeBrowser) NewContext(ctx context.Context, spec ContextSpec) (BrowserContext, error) {
	userDataDir, err := os.MkdirTemp("", "routelight-profile-*")
	if err != nil {
		return nil, fmt.Errorf("create user data dir: %w", err)
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserDataDir(userDataDir),
		chromedp.WindowSize(spec.Viewport.Width, spec.Viewport.Height),
		chromedp.Flag("remote-debugging-port", strconv.Itoa(spec.DebugPort)),
	)
	if b.execPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(b.execPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	tabCtx, tabCancel := chromedp.NewContext(allocCtx)

	// Start the browser process now rather than on first navigation, so
	// context allocation errors surface here and the debugging port is
	// already listening when the engine attaches.
	if err := chromedp.Run(tabCtx); err != nil {
		tabCancel()
		allocCancel()
		_ = os.RemoveAll(userDataDir) //nolint:errcheck // Best effort cleanup
		return nil, fmt.Errorf("start browser context: %w", err)
	}

	return &chromeContext{
		tabCtx:      tabCtx,
		tabCancel:   tabCancel,
		allocCancel: allocCancel,
		userDataDir: userDataDir,
	}, nil
}

// chromeContext is one isolated Chrome execution context.
type chromeContext struct {
	tabCtx      context.Context
	tabCancel   context.CancelFunc
	allocCancel context.CancelFunc
	userDataDir string
	closeOnce   sync.Once
}

// SetCookies injects credentials through the DevTools network domain.
// SameSite normalization happens here, at consumption time.
func (c *chromeContext) SetCookies(ctx context.Context, credentials []auth.Credential) error {
	runCtx, cancel := c.boundedCtx(ctx)
	defer cancel()

	return chromedp.Run(runCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		for i := range credentials {
			credential := &credentials[i]

			param := network.SetCookie(credential.Name, credential.Value).
				WithDomain(credential.Domain).
				WithPath(credential.Path).
				WithSecure(credential.Secure).
				WithHTTPOnly(credential.HTTPOnly).
				WithSameSite(cdpSameSite(credential.SameSite()))

			if credential.ExpiresAtEpoch > 0 {
				expires := cdp.TimeSinceEpoch(time.Unix(int64(credential.ExpiresAtEpoch), 0))
				param = param.WithExpires(&expires)
			}

			if err := param.Do(ctx); err != nil {
				return fmt.Errorf("set cookie %q: %w", credential.Name, err)
			}
		}
		return nil
	}))
}

// Navigate loads url and reports the main document's HTTP status.
// Returns 0 with a nil error when Chrome produced no HTTP response.
func (c *chromeContext) Navigate(ctx context.Context, url string) (int, error) {
	runCtx, cancel := c.boundedCtx(ctx)
	defer cancel()

	resp, err := chromedp.RunResponse(runCtx, chromedp.Navigate(url))
	if err != nil {
		return 0, err
	}
	if resp == nil {
		return 0, nil
	}
	return int(resp.Status), nil
}

// WaitVisible blocks until the selector matches a visible element or
// ctx is done.
func (c *chromeContext) WaitVisible(ctx context.Context, selector string) error {
	runCtx, cancel := c.boundedCtx(ctx)
	defer cancel()

	return chromedp.Run(runCtx, chromedp.WaitVisible(selector, chromedp.ByQuery))
}

// Close shuts the tab and browser down and removes the private user
// data directory. Idempotent.
func (c *chromeContext) Close() error {
	c.closeOnce.Do(func() {
		c.tabCancel()
		c.allocCancel()
		_ = os.RemoveAll(c.userDataDir) //nolint:errcheck // Best effort cleanup
	})
	return nil
}

// boundedCtx derives a child of the tab context carrying the caller's
// deadline and cancellation. Deriving from the tab context (not the
// caller's) keeps chromedp's tab identity; cancelling the child stops
// the operation without killing the tab. Caller cancellation (signal
// handling, sibling failure) must interrupt in-flight CDP work too,
// not just the deadline, hence the AfterFunc bridge.
func (c *chromeContext) boundedCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	var runCtx context.Context
	var cancel context.CancelFunc
	if deadline, ok := ctx.Deadline(); ok {
		runCtx, cancel = context.WithDeadline(c.tabCtx, deadline)
	} else {
		runCtx, cancel = context.WithCancel(c.tabCtx)
	}

	stop := context.AfterFunc(ctx, cancel)
	return runCtx, func() {
		stop()
		cancel()
	}
}

// cdpSameSite maps a normalized SameSite value to its CDP encoding.
func cdpSameSite(v auth.SameSite) network.CookieSameSite {
	switch v {
	case auth.SameSiteStrict:
		return network.CookieSameSiteStrict
	case auth.SameSiteNone:
		return network.CookieSameSiteNone
	default:
		return network.CookieSameSiteLax
	}
}
